package boxworld

import (
	. "github.com/vova616/boxworld/vect"
)

// EdgeID names one edge of a box in its local frame: Edge1 is the top (+y)
// face, then counter clockwise Edge2 left, Edge3 bottom, Edge4 right.
type EdgeID uint8

const (
	NoEdge EdgeID = iota
	Edge1
	Edge2
	Edge3
	Edge4
)

// FeatureID records which edges produced a contact point: the edges entering
// and leaving the point on body A (1) and body B (2).
// Equal ids across frames mean the same contact.
type FeatureID struct {
	InEdge1, OutEdge1 EdgeID
	InEdge2, OutEdge2 EdgeID
}

// Key packs the id into one integer. Distinct ids have distinct keys.
func (f FeatureID) Key() uint32 {
	return uint32(f.InEdge1) | uint32(f.OutEdge1)<<8 | uint32(f.InEdge2)<<16 | uint32(f.OutEdge2)<<24
}

// Flip swaps the roles of the two boxes.
func (f FeatureID) Flip() FeatureID {
	return FeatureID{
		InEdge1:  f.InEdge2,
		OutEdge1: f.OutEdge2,
		InEdge2:  f.InEdge1,
		OutEdge2: f.OutEdge1,
	}
}

type Contact struct {
	p, n Vect
	dist Float

	r1, r2       Vect
	nMass, tMass Float
	bias         Float

	jnAcc, jtAcc, jBias Float

	feature FeatureID
}

func (con *Contact) reset(pos, norm Vect, dist Float, feature FeatureID) {
	con.p = pos
	con.n = norm
	con.dist = dist
	con.feature = feature

	con.jnAcc = 0.0
	con.jtAcc = 0.0
	con.jBias = 0.0
}

func (con *Contact) Position() Vect {
	return con.p
}

// Normal points from body A towards body B.
func (con *Contact) Normal() Vect {
	return con.n
}

// Separation is negative while the boxes overlap.
func (con *Contact) Separation() Float {
	return con.dist
}

func (con *Contact) Feature() FeatureID {
	return con.feature
}

// NormalImpulse is the impulse accumulated along the normal. Never negative.
func (con *Contact) NormalImpulse() Float {
	return con.jnAcc
}

func (con *Contact) TangentImpulse() Float {
	return con.jtAcc
}

// BiasImpulse is carried between frames with the other impulses but the
// solver folds position correction into the normal impulse and never reads it.
func (con *Contact) BiasImpulse() Float {
	return con.jBias
}
