package boxworld

import (
	"github.com/vova616/boxworld/vect"
)

//axis aligned bounding box.
type AABB struct {
	Lower, //l b
	Upper vect.Vect // r t
}

func (aabb *AABB) Valid() bool {
	return aabb.Lower.X <= aabb.Upper.X && aabb.Lower.Y <= aabb.Upper.Y
}

func NewAABB(l, b, r, t vect.Float) AABB {
	return AABB{vect.Vect{l, b}, vect.Vect{r, t}}
}

//returns the center of the aabb
func (aabb *AABB) Center() vect.Vect {
	return vect.Mult(vect.Add(aabb.Lower, aabb.Upper), 0.5)
}

//returns if v is contained inside this aabb.
func (aabb *AABB) ContainsVect(v vect.Vect) bool {
	return aabb.Lower.X <= v.X &&
		aabb.Upper.X >= v.X &&
		aabb.Lower.Y <= v.Y &&
		aabb.Upper.Y >= v.Y
}

func (aabb *AABB) Extents() vect.Vect {
	return vect.Mult(vect.Sub(aabb.Upper, aabb.Lower), .5)
}

//returns an AABB that holds both a and b.
func Combine(a, b AABB) AABB {
	return AABB{
		vect.Min(a.Lower, b.Lower),
		vect.Max(a.Upper, b.Upper),
	}
}

//returns an AABB that holds both a and v.
func Expand(a AABB, v vect.Vect) AABB {
	return AABB{
		vect.Min(a.Lower, v),
		vect.Max(a.Upper, v),
	}
}

//touching boxes overlap.
func TestOverlap(a, b AABB) bool {
	return (a.Lower.X <= b.Upper.X && b.Lower.X <= a.Upper.X && a.Lower.Y <= b.Upper.Y && b.Lower.Y <= a.Upper.Y)
}
