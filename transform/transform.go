package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vova616/boxworld/vect"
)

type Rotation struct {
	//sine and cosine.
	C, S vect.Float
}

func NewRotation(angle vect.Float) Rotation {
	m := mgl32.Rotate2D(float32(angle))
	return Rotation{
		C: vect.Float(m[0]),
		S: vect.Float(m[1]),
	}
}

func (rot *Rotation) SetIdentity() {
	rot.S = 0
	rot.C = 1
}

func (rot *Rotation) SetAngle(angle vect.Float) {
	*rot = NewRotation(angle)
}

func (rot *Rotation) Angle() vect.Float {
	return vect.Float(math32.Atan2(float32(rot.S), float32(rot.C)))
}

//rotates the input vector.
func (rot *Rotation) RotateVect(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) - (v.Y * rot.S),
		Y: (v.X * rot.S) + (v.Y * rot.C),
	}
}

//rotates the input vector by the inverse rotation.
func (rot *Rotation) RotateVectInv(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: (v.X * rot.C) + (v.Y * rot.S),
		Y: (-v.X * rot.S) + (v.Y * rot.C),
	}
}

//returns the rotation as a column matrix.
func (rot *Rotation) Mat() Mat22 {
	return Mat22{
		Col1: vect.Vect{X: rot.C, Y: rot.S},
		Col2: vect.Vect{X: -rot.S, Y: rot.C},
	}
}

func RotateVect(v vect.Vect, r Rotation) vect.Vect {
	return r.RotateVect(v)
}

func RotateVectInv(v vect.Vect, r Rotation) vect.Vect {
	return r.RotateVectInv(v)
}

type Transform struct {
	Position vect.Vect
	Rotation
}

func NewTransform(pos vect.Vect, angle vect.Float) Transform {
	return Transform{
		Position: pos,
		Rotation: NewRotation(angle),
	}
}

func (xf *Transform) SetIdentity() {
	xf.Position = vect.Vect{}
	xf.Rotation.SetIdentity()
}

func (xf *Transform) Set(pos vect.Vect, rot vect.Float) {
	xf.Position = pos
	xf.SetAngle(rot)
}

//moves and rotates the input vector.
func (xf *Transform) TransformVect(v vect.Vect) vect.Vect {
	return vect.Add(xf.Position, xf.RotateVect(v))
}

//maps a world point back into the local frame.
func (xf *Transform) TransformVectInv(v vect.Vect) vect.Vect {
	return xf.RotateVectInv(vect.Sub(v, xf.Position))
}
