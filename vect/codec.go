package vect

import (
	"encoding/json"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

func (v Vect) MarshalJSON() ([]byte, error) {
	return json.Marshal(&[2]Float{v.X, v.Y})
}

func (v *Vect) UnmarshalJSON(data []byte) error {
	vectData := [2]Float{}

	//try unmarshalling array form
	err := json.Unmarshal(data, &vectData)
	if err != nil {
		//try other form
		vectData := struct {
			X, Y Float
		}{}

		err := json.Unmarshal(data, &vectData)

		if err != nil {
			log.Printf("Error decoding Vect")
			return err
		}
		v.X = vectData.X
		v.Y = vectData.Y
		return nil
	}

	v.X = vectData[0]
	v.Y = vectData[1]

	return nil
}

func (v Vect) MarshalYAML() (interface{}, error) {
	return []Float{v.X, v.Y}, nil
}

//accepts both [x, y] and {x: .., y: ..}.
func (v *Vect) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var vectData []Float
		if err := node.Decode(&vectData); err != nil {
			log.Printf("Error decoding Vect")
			return err
		}
		if len(vectData) != 2 {
			return fmt.Errorf("vect: expected 2 components, got %d (line %d)", len(vectData), node.Line)
		}
		v.X = vectData[0]
		v.Y = vectData[1]
		return nil
	}

	vectData := struct {
		X Float `yaml:"x"`
		Y Float `yaml:"y"`
	}{}
	if err := node.Decode(&vectData); err != nil {
		log.Printf("Error decoding Vect")
		return err
	}
	v.X = vectData.X
	v.Y = vectData.Y
	return nil
}
