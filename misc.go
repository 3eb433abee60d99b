package boxworld

import (
	"log"

	"github.com/vova616/boxworld/vect"
)

func k_scalar_body(body *Body, r, n vect.Vect) vect.Float {
	rcn := vect.Cross(r, n)
	return body.m_inv + (body.invMoment() * rcn * rcn)
}

// inverse of the effective mass of the contact constraint along n.
func k_scalar(a, b *Body, r1, r2, n vect.Vect) vect.Float {
	value := k_scalar_body(a, r1, n) + k_scalar_body(b, r2, n)
	if value == 0.0 {
		log.Printf("Warning: Unsolvable collision or constraint.")
	}
	return value
}

func relative_velocity(a, b *Body, r1, r2 vect.Vect) vect.Vect {
	v1_sum := vect.Add(a.v, vect.CrossFV(a.w, r1))
	v2_sum := vect.Add(b.v, vect.CrossFV(b.w, r2))

	return vect.Sub(v2_sum, v1_sum)
}

func normal_relative_velocity(a, b *Body, r1, r2, n vect.Vect) vect.Float {
	return vect.Dot(relative_velocity(a, b, r1, r2), n)
}

func apply_impulses(a, b *Body, r1, r2, j vect.Vect) {
	apply_impulse(a, vect.Neg(j), r1)
	apply_impulse(b, j, r2)
}

func apply_impulse(body *Body, j, r vect.Vect) {
	body.v.Add(vect.Mult(j, body.m_inv))
	body.w += body.invMoment() * vect.Cross(r, j)
}
