package boxworld

import (
	"github.com/vova616/boxworld/transform"
	"github.com/vova616/boxworld/vect"
)

// The maximum number of contact points between two boxes.
const MaxPoints = 2

// Reference face hysteresis used by Collide.
const (
	RelativeTol = vect.Float(0.95)
	AbsoluteTol = vect.Float(0.01)
)

type axis int

const (
	faceAX axis = iota
	faceAY
	faceBX
	faceBY
)

type clipVertex struct {
	v  vect.Vect
	fp FeatureID
}

// keeps the part of the segment vIn behind the plane dot(normal, x) = offset.
// A point created on the plane is tagged with clipEdge.
func clipSegmentToLine(vOut, vIn *[2]clipVertex, normal vect.Vect, offset vect.Float, clipEdge EdgeID) int {
	numOut := 0

	// distance of end points to the line
	distance0 := vect.Dot(normal, vIn[0].v) - offset
	distance1 := vect.Dot(normal, vIn[1].v) - offset

	// points behind the plane
	if distance0 <= 0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// the points are on different sides of the plane
	if distance0*distance1 < 0 {
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].v = vect.Add(vIn[0].v, vect.Mult(vect.Sub(vIn[1].v, vIn[0].v), interp))
		if distance0 > 0 {
			vOut[numOut].fp = vIn[0].fp
			vOut[numOut].fp.InEdge1 = clipEdge
			vOut[numOut].fp.InEdge2 = NoEdge
		} else {
			vOut[numOut].fp = vIn[1].fp
			vOut[numOut].fp.OutEdge1 = clipEdge
			vOut[numOut].fp.OutEdge2 = NoEdge
		}
		numOut++
	}

	return numOut
}

// the edge of the box (h, pos, rot) whose outward normal is most anti-parallel to normal.
func computeIncidentEdge(c *[2]clipVertex, h, pos vect.Vect, rot transform.Mat22, normal vect.Vect) {
	// normal in the incident box's frame, flipped
	n := vect.Neg(rot.Transpose().MulV(normal))
	nAbs := vect.Abs(n)

	if nAbs.X > nAbs.Y {
		if n.X > 0 {
			c[0].v = vect.Vect{h.X, -h.Y}
			c[0].fp.InEdge2 = Edge3
			c[0].fp.OutEdge2 = Edge4

			c[1].v = vect.Vect{h.X, h.Y}
			c[1].fp.InEdge2 = Edge4
			c[1].fp.OutEdge2 = Edge1
		} else {
			c[0].v = vect.Vect{-h.X, h.Y}
			c[0].fp.InEdge2 = Edge1
			c[0].fp.OutEdge2 = Edge2

			c[1].v = vect.Vect{-h.X, -h.Y}
			c[1].fp.InEdge2 = Edge2
			c[1].fp.OutEdge2 = Edge3
		}
	} else {
		if n.Y > 0 {
			c[0].v = vect.Vect{h.X, h.Y}
			c[0].fp.InEdge2 = Edge4
			c[0].fp.OutEdge2 = Edge1

			c[1].v = vect.Vect{-h.X, h.Y}
			c[1].fp.InEdge2 = Edge1
			c[1].fp.OutEdge2 = Edge2
		} else {
			c[0].v = vect.Vect{-h.X, -h.Y}
			c[0].fp.InEdge2 = Edge2
			c[0].fp.OutEdge2 = Edge3

			c[1].v = vect.Vect{h.X, -h.Y}
			c[1].fp.InEdge2 = Edge3
			c[1].fp.OutEdge2 = Edge4
		}
	}

	c[0].v = vect.Add(pos, rot.MulV(c[0].v))
	c[1].v = vect.Add(pos, rot.MulV(c[1].v))
}

// Collide finds the contact points between the boxes of two bodies and
// writes them to contacts. It returns how many were written, at most MaxPoints.
// The pair is ordered by id first, so both argument orders give the same
// contacts, with normals pointing away from the body with the lower id.
func Collide(contacts *[MaxPoints]Contact, a, b *Body) int {
	a, b = newPair(a, b)
	return collide(contacts, a, b, RelativeTol, AbsoluteTol)
}

func collide(contacts *[MaxPoints]Contact, a, b *Body, relativeTol, absoluteTol vect.Float) int {
	hA := vect.Mult(a.width, 0.5)
	hB := vect.Mult(b.width, 0.5)

	posA := a.p
	posB := b.p

	rotA := a.rot.Mat()
	rotB := b.rot.Mat()

	rotAT := rotA.Transpose()
	rotBT := rotB.Transpose()

	dp := vect.Sub(posB, posA)
	dA := rotAT.MulV(dp)
	dB := rotBT.MulV(dp)

	c := rotAT.Mul(rotB)
	absC := c.Abs()
	absCT := absC.Transpose()

	// box A faces
	faceA := vect.Sub(vect.Sub(vect.Abs(dA), hA), absC.MulV(hB))
	if faceA.X > 0 || faceA.Y > 0 {
		return 0
	}

	// box B faces
	faceB := vect.Sub(vect.Sub(vect.Abs(dB), absCT.MulV(hA)), hB)
	if faceB.X > 0 || faceB.Y > 0 {
		return 0
	}

	// find the best axis, preferring earlier ones on near ties
	ax := faceAX
	separation := faceA.X
	normal := flipUnlessPositive(rotA.Col1, dA.X)

	if faceA.Y > relativeTol*separation+absoluteTol*hA.Y {
		ax = faceAY
		separation = faceA.Y
		normal = flipUnlessPositive(rotA.Col2, dA.Y)
	}

	if faceB.X > relativeTol*separation+absoluteTol*hB.X {
		ax = faceBX
		separation = faceB.X
		normal = flipUnlessPositive(rotB.Col1, dB.X)
	}

	if faceB.Y > relativeTol*separation+absoluteTol*hB.Y {
		ax = faceBY
		separation = faceB.Y
		normal = flipUnlessPositive(rotB.Col2, dB.Y)
	}

	// setup clipping plane data based on the separating axis
	var frontNormal, sideNormal vect.Vect
	var incidentEdge [2]clipVertex
	var front, negSide, posSide vect.Float
	var negEdge, posEdge EdgeID

	switch ax {
	case faceAX:
		frontNormal = normal
		front = vect.Dot(posA, frontNormal) + hA.X
		sideNormal = rotA.Col2
		side := vect.Dot(posA, sideNormal)
		negSide = -side + hA.Y
		posSide = side + hA.Y
		negEdge = Edge3
		posEdge = Edge1
		computeIncidentEdge(&incidentEdge, hB, posB, rotB, frontNormal)

	case faceAY:
		frontNormal = normal
		front = vect.Dot(posA, frontNormal) + hA.Y
		sideNormal = rotA.Col1
		side := vect.Dot(posA, sideNormal)
		negSide = -side + hA.X
		posSide = side + hA.X
		negEdge = Edge2
		posEdge = Edge4
		computeIncidentEdge(&incidentEdge, hB, posB, rotB, frontNormal)

	case faceBX:
		frontNormal = vect.Neg(normal)
		front = vect.Dot(posB, frontNormal) + hB.X
		sideNormal = rotB.Col2
		side := vect.Dot(posB, sideNormal)
		negSide = -side + hB.Y
		posSide = side + hB.Y
		negEdge = Edge3
		posEdge = Edge1
		computeIncidentEdge(&incidentEdge, hA, posA, rotA, frontNormal)

	case faceBY:
		frontNormal = vect.Neg(normal)
		front = vect.Dot(posB, frontNormal) + hB.Y
		sideNormal = rotB.Col1
		side := vect.Dot(posB, sideNormal)
		negSide = -side + hB.X
		posSide = side + hB.X
		negEdge = Edge2
		posEdge = Edge4
		computeIncidentEdge(&incidentEdge, hA, posA, rotA, frontNormal)
	}

	// clip the incident edge against the reference face side planes
	var clipPoints1, clipPoints2 [2]clipVertex

	if clipSegmentToLine(&clipPoints1, &incidentEdge, vect.Neg(sideNormal), negSide, negEdge) < 2 {
		return 0
	}
	if clipSegmentToLine(&clipPoints2, &clipPoints1, sideNormal, posSide, posEdge) < 2 {
		return 0
	}

	// keep the points behind the reference face, projected onto it
	numContacts := 0
	for i := range clipPoints2 {
		dist := vect.Dot(frontNormal, clipPoints2[i].v) - front
		if dist > 0 {
			continue
		}

		feature := clipPoints2[i].fp
		if ax == faceBX || ax == faceBY {
			feature = feature.Flip()
		}
		pos := vect.Sub(clipPoints2[i].v, vect.Mult(frontNormal, dist))
		contacts[numContacts].reset(pos, normal, dist, feature)
		numContacts++
	}

	return numContacts
}

func flipUnlessPositive(n vect.Vect, d vect.Float) vect.Vect {
	if d > 0 {
		return n
	}
	return vect.Neg(n)
}
