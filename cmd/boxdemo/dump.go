package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/vova616/boxworld"
	"github.com/vova616/boxworld/transform"
	"github.com/vova616/boxworld/vect"
)

type bodyState struct {
	ID              boxworld.BodyID     `json:"id"`
	Name            string              `json:"name,omitempty"`
	Transform       transform.Transform `json:"transform"`
	Velocity        vect.Vect           `json:"velocity"`
	AngularVelocity vect.Float          `json:"angular_velocity"`
	Grounded        bool                `json:"grounded,omitempty"`
}

type frameState struct {
	Stamp    uint64      `json:"stamp"`
	Arbiters int         `json:"arbiters"`
	Bodies   []bodyState `json:"bodies"`
}

// dumper writes one JSON line per step.
type dumper struct {
	enc   *json.Encoder
	frame frameState
}

func newDumper(w io.Writer) *dumper {
	return &dumper{enc: json.NewEncoder(w)}
}

func (d *dumper) write(lv *level) error {
	world := lv.world
	d.frame.Stamp = world.Stamp()
	d.frame.Arbiters = world.ArbiterCount()
	d.frame.Bodies = d.frame.Bodies[:0]

	bodies := world.Bodies()
	for i := range bodies {
		body := &bodies[i]
		if body.IsStatic() {
			continue
		}
		d.frame.Bodies = append(d.frame.Bodies, bodyState{
			ID:              body.ID(),
			Name:            lv.name(body.ID()),
			Transform:       body.Transform(),
			Velocity:        body.Velocity(),
			AngularVelocity: body.AngularVelocity(),
			Grounded:        body.IsGrounded(),
		})
	}
	return errors.Wrap(d.enc.Encode(&d.frame), "writing frame")
}
