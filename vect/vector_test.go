package vect

import (
	"testing"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

type addTest struct {
	in1, in2 Vect
	out      Vect
}

var addTests = []addTest{
	{Vect{0, 0}, Vect{0, 0}, Vect{0, 0}},
	{Vect{0, 1}, Vect{0, 0}, Vect{0, 1}},
	{Vect{1, 0}, Vect{0, 0}, Vect{1, 0}},
	{Vect{1, 2}, Vect{0, 0}, Vect{1, 2}},
	{Vect{0, 0}, Vect{0, 1}, Vect{0, 1}},
	{Vect{0, 0}, Vect{1, 0}, Vect{1, 0}},
	{Vect{0, 0}, Vect{1, 2}, Vect{1, 2}},
	{Vect{2, 4}, Vect{1, 3}, Vect{3, 7}},
	{Vect{3, 1}, Vect{4, 2}, Vect{7, 3}},
	{Vect{2, 4}, Vect{2, 4}, Vect{4, 8}},
	{Vect{5, 5}, Vect{2, 2}, Vect{7, 7}},
}

func TestAdd(t *testing.T) {
	for _, at := range addTests {
		v := Add(at.in1, at.in2)
		if !Equals(at.out, v) {
			t.Errorf("Add(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

type minTest struct {
	in1, in2 Vect
	out      Vect
}

var minTests = []minTest{
	{Vect{0, 0}, Vect{0, 0}, Vect{0, 0}},
	{Vect{1, 2}, Vect{9, 9}, Vect{1, 2}},
	{Vect{9, 9}, Vect{1, 2}, Vect{1, 2}},
	{Vect{5, 2}, Vect{1, 4}, Vect{1, 2}},
	{Vect{9, 6}, Vect{7, 8}, Vect{7, 6}},
}

func TestMin(t *testing.T) {
	for _, at := range minTests {
		v := Min(at.in1, at.in2)
		if !Equals(at.out, v) {
			t.Errorf("Min(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

type maxTest struct {
	in1, in2 Vect
	out      Vect
}

var maxTests = []maxTest{
	{Vect{0, 0}, Vect{0, 0}, Vect{0, 0}},
	{Vect{1, 2}, Vect{9, 9}, Vect{9, 9}},
	{Vect{9, 9}, Vect{1, 2}, Vect{9, 9}},
	{Vect{5, 2}, Vect{1, 4}, Vect{5, 4}},
	{Vect{9, 6}, Vect{7, 8}, Vect{9, 8}},
}

func TestMax(t *testing.T) {
	for _, at := range maxTests {
		v := Max(at.in1, at.in2)
		if !Equals(at.out, v) {
			t.Errorf("Max(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

type distTest struct {
	in1, in2 Vect
	out      Float
}

var distTests = []distTest{
	{Vect{0, 0}, Vect{0, 0}, 0},
	{Vect{0, 2}, Vect{0, 0}, 2},
	{Vect{2, 0}, Vect{0, 0}, 2},
	{Vect{0, 0}, Vect{4, 0}, 4},
	{Vect{0, 0}, Vect{0, 4}, 4},
	{Vect{1, 1}, Vect{0, 0}, Float(math32.Sqrt(2))},
	{Vect{1, 1}, Vect{2, 2}, Float(math32.Sqrt(2))},
}

func TestDist(t *testing.T) {
	for _, at := range distTests {
		v := Dist(at.in1, at.in2)
		if FAbs(at.out-v) > 1e-6 {
			t.Errorf("Dist(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

type crossTest struct {
	in1, in2 Vect
	out      Float
}

var crossTests = []crossTest{
	{Vect{1, 0}, Vect{0, 1}, 1},
	{Vect{0, 1}, Vect{1, 0}, -1},
	{Vect{2, 3}, Vect{2, 3}, 0},
	{Vect{1, 2}, Vect{3, 4}, -2},
}

func TestCross(t *testing.T) {
	for _, at := range crossTests {
		v := Cross(at.in1, at.in2)
		if v != at.out {
			t.Errorf("Cross(%v, %v) = %v, want %v.", at.in1, at.in2, v, at.out)
		}
	}
}

func TestCrossScalar(t *testing.T) {
	a := Vect{2, 3}
	if v := CrossVF(a, 2); !Equals(v, Vect{6, -4}) {
		t.Errorf("CrossVF(%v, 2) = %v, want %v.", a, v, Vect{6, -4})
	}
	if v := CrossFV(2, a); !Equals(v, Vect{-6, 4}) {
		t.Errorf("CrossFV(2, %v) = %v, want %v.", a, v, Vect{-6, 4})
	}
}

func TestLerp(t *testing.T) {
	v := Lerp(Vect{0, 0}, Vect{4, 2}, 0.5)
	if !Equals(v, Vect{2, 1}) {
		t.Errorf("Lerp = %v, want %v.", v, Vect{2, 1})
	}
}

func TestJSON(t *testing.T) {
	var v Vect
	if err := v.UnmarshalJSON([]byte(`[1.5, -2]`)); err != nil {
		t.Fatal(err)
	}
	if !Equals(v, Vect{1.5, -2}) {
		t.Errorf("array form = %v, want %v.", v, Vect{1.5, -2})
	}
	if err := v.UnmarshalJSON([]byte(`{"X": 3, "Y": 4}`)); err != nil {
		t.Fatal(err)
	}
	if !Equals(v, Vect{3, 4}) {
		t.Errorf("object form = %v, want %v.", v, Vect{3, 4})
	}
	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[3,4]" {
		t.Errorf("MarshalJSON = %s, want [3,4].", data)
	}
}

func TestYAML(t *testing.T) {
	var doc struct {
		A Vect `yaml:"a"`
		B Vect `yaml:"b"`
	}
	src := "a: [1, 2]\nb: {x: -3, y: 0.5}\n"
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatal(err)
	}
	if !Equals(doc.A, Vect{1, 2}) {
		t.Errorf("a = %v, want %v.", doc.A, Vect{1, 2})
	}
	if !Equals(doc.B, Vect{-3, 0.5}) {
		t.Errorf("b = %v, want %v.", doc.B, Vect{-3, 0.5})
	}
	if err := yaml.Unmarshal([]byte("a: [1, 2, 3]\n"), &doc); err == nil {
		t.Errorf("three components decoded without error")
	}
}
