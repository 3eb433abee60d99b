package boxworld

import (
	"github.com/vova616/boxworld/vect"
)

// moment of inertia of a solid box of the given full size.
func boxMoment(mass vect.Float, width vect.Vect) vect.Float {
	return mass * (width.X*width.X + width.Y*width.Y) / 12.0
}

// corners of a box of the given full size around the origin, counter clockwise
// starting bottom left.
func boxVerts(width vect.Vect) [4]vect.Vect {
	hw := vect.FAbs(width.X / 2.0)
	hh := vect.FAbs(width.Y / 2.0)

	return [4]vect.Vect{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
}

// Vertices returns the world space corners of the body's box.
func (body *Body) Vertices() [4]vect.Vect {
	verts := boxVerts(body.width)
	xf := body.Transform()
	for i := range verts {
		verts[i] = xf.TransformVect(verts[i])
	}
	return verts
}

// AABB returns the world space bounds of the rotated box.
func (body *Body) AABB() AABB {
	verts := body.Vertices()
	bb := AABB{verts[0], verts[0]}
	for _, v := range verts[1:] {
		bb = Expand(bb, v)
	}
	return bb
}

// TestPoint reports whether the world point lies inside the box.
func (body *Body) TestPoint(point vect.Vect) bool {
	if bb := body.AABB(); !bb.ContainsVect(point) {
		return false
	}
	xf := body.Transform()
	local := xf.TransformVectInv(point)
	return vect.FAbs(local.X) <= body.width.X/2 && vect.FAbs(local.Y) <= body.width.Y/2
}
