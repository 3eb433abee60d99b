package boxworld

import (
	"github.com/vova616/boxworld/vect"
)

// Arbiter is the cached collision state of one pair of bodies. BodyA always
// has the lower id.
type Arbiter struct {
	// The two colliding bodies.
	BodyA, BodyB *Body
	// The contact points between the bodies.
	contacts [MaxPoints]Contact
	// The number of contact points.
	NumContacts int

	/// sqrt of the product of both friction coefficients.
	u vect.Float
}

type solverParams struct {
	invDt      vect.Float
	biasFactor vect.Float
	slop       vect.Float

	warmStarting       bool
	accumulateImpulses bool
	positionCorrection bool
}

func (arb *Arbiter) init(a, b *Body, contacts *[MaxPoints]Contact, numContacts int) {
	arb.BodyA, arb.BodyB = a, b
	arb.contacts = *contacts
	arb.NumContacts = numContacts
	arb.u = vect.FSqrt(a.friction * b.friction)
}

// Contacts returns the live contacts. The slice aliases the arbiter.
func (arb *Arbiter) Contacts() []Contact {
	return arb.contacts[:arb.NumContacts]
}

func (arb *Arbiter) Friction() vect.Float {
	return arb.u
}

// update replaces the contacts with a fresh set, carrying the accumulated
// impulses of every contact whose feature is still present.
func (arb *Arbiter) update(contacts *[MaxPoints]Contact, numContacts int, warmStarting bool) {
	var merged [MaxPoints]Contact

	for i := 0; i < numContacts; i++ {
		newC := &contacts[i]
		merged[i] = *newC

		for j := 0; j < arb.NumContacts; j++ {
			oldC := &arb.contacts[j]
			if newC.feature != oldC.feature {
				continue
			}
			if warmStarting {
				merged[i].jnAcc = oldC.jnAcc
				merged[i].jtAcc = oldC.jtAcc
				merged[i].jBias = oldC.jBias
			} else {
				merged[i].jnAcc = 0
				merged[i].jtAcc = 0
				merged[i].jBias = 0
			}
			break
		}
	}

	arb.contacts = merged
	arb.NumContacts = numContacts
	arb.u = vect.FSqrt(arb.BodyA.friction * arb.BodyB.friction)
}

func (arb *Arbiter) preStep(params *solverParams) {
	a := arb.BodyA
	b := arb.BodyB

	for i := 0; i < arb.NumContacts; i++ {
		con := &arb.contacts[i]

		// Calculate the offsets.
		con.r1 = vect.Sub(con.p, a.p)
		con.r2 = vect.Sub(con.p, b.p)

		// Calculate the mass normal and mass tangent.
		if k := k_scalar(a, b, con.r1, con.r2, con.n); k != 0 {
			con.nMass = 1.0 / k
		} else {
			con.nMass = 0
		}
		if k := k_scalar(a, b, con.r1, con.r2, vect.CrossVF(con.n, 1)); k != 0 {
			con.tMass = 1.0 / k
		} else {
			con.tMass = 0
		}

		// Calculate the target bias velocity.
		con.bias = 0
		if params.positionCorrection {
			con.bias = -params.biasFactor * params.invDt * vect.FMin(0.0, con.dist+params.slop)
		}

		if params.accumulateImpulses && params.warmStarting {
			// Apply the cached impulse.
			j := vect.Add(vect.Mult(con.n, con.jnAcc), vect.Mult(vect.CrossVF(con.n, 1), con.jtAcc))
			apply_impulses(a, b, con.r1, con.r2, j)
		}
	}
}

func (arb *Arbiter) applyImpulse(accumulate bool) {
	a := arb.BodyA
	b := arb.BodyB

	for i := 0; i < arb.NumContacts; i++ {
		con := &arb.contacts[i]
		n := con.n
		r1 := con.r1
		r2 := con.r2

		// Calculate and clamp the normal impulse.
		vrn := normal_relative_velocity(a, b, r1, r2, n)
		jn := con.nMass * (-vrn + con.bias)

		if accumulate {
			jnOld := con.jnAcc
			con.jnAcc = vect.FMax(jnOld+jn, 0.0)
			jn = con.jnAcc - jnOld
		} else {
			jn = vect.FMax(jn, 0.0)
		}

		apply_impulses(a, b, r1, r2, vect.Mult(n, jn))

		// Calculate and clamp the friction impulse.
		tangent := vect.CrossVF(n, 1)
		vrt := vect.Dot(relative_velocity(a, b, r1, r2), tangent)
		jt := con.tMass * -vrt

		if accumulate {
			jtMax := arb.u * con.jnAcc
			jtOld := con.jtAcc
			con.jtAcc = vect.FClamp(jtOld+jt, -jtMax, jtMax)
			jt = con.jtAcc - jtOld
		} else {
			jtMax := arb.u * jn
			jt = vect.FClamp(jt, -jtMax, jtMax)
		}

		apply_impulses(a, b, r1, r2, vect.Mult(tangent, jt))
	}
}
