package transform

import (
	"github.com/vova616/boxworld/vect"
)

//2x2 matrix stored by columns.
type Mat22 struct {
	Col1, Col2 vect.Vect
}

func (m Mat22) Transpose() Mat22 {
	return Mat22{
		Col1: vect.Vect{X: m.Col1.X, Y: m.Col2.X},
		Col2: vect.Vect{X: m.Col1.Y, Y: m.Col2.Y},
	}
}

//m * v
func (m Mat22) MulV(v vect.Vect) vect.Vect {
	return vect.Vect{
		X: m.Col1.X*v.X + m.Col2.X*v.Y,
		Y: m.Col1.Y*v.X + m.Col2.Y*v.Y,
	}
}

//m * n
func (m Mat22) Mul(n Mat22) Mat22 {
	return Mat22{
		Col1: m.MulV(n.Col1),
		Col2: m.MulV(n.Col2),
	}
}

//element-wise absolute value.
func (m Mat22) Abs() Mat22 {
	return Mat22{
		Col1: vect.Abs(m.Col1),
		Col2: vect.Abs(m.Col2),
	}
}
