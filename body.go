package boxworld

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/vova616/boxworld/transform"
	. "github.com/vova616/boxworld/vect"
)

// BodyID is a body's index in its World. It never changes.
type BodyID int

var Inf = Float(math32.Inf(1))

type Body struct {
	id BodyID

	/// Mass of the body. Inf for static bodies.
	m Float
	/// Mass inverse, 0 for static bodies.
	m_inv Float

	/// Moment of inertia of the body.
	i Float
	/// Moment of inertia inverse.
	i_inv Float

	/// Position of the rigid body's center of gravity.
	p Vect
	/// Velocity of the rigid body's center of gravity.
	v Vect
	/// Force acting on the rigid body's center of gravity. Cleared every step.
	f Vect

	/// Rotation of the body around it's center of gravity in radians.
	a Float
	/// Angular velocity of the body around it's center of gravity in radians/second.
	w Float
	/// Torque applied to the body around it's center of gravity. Cleared every step.
	t Float

	/// Cached rotation of the body, kept in sync with a.
	rot transform.Rotation

	/// Full box size.
	width Vect

	friction Float

	lockRotation bool
	grounded     bool

	/// User definable data.
	UserData interface{}
}

func (body *Body) init(id BodyID, pos, width Vect, mass Float) {
	if !(width.X > 0) || !(width.Y > 0) {
		panic("Box size must be positive.")
	}
	*body = Body{id: id, p: pos, width: width, friction: 0.2}
	body.setAngle(0)
	body.SetMass(mass)
}

func (body *Body) ID() BodyID {
	return body.id
}

// SetMass sets the mass and the box moment derived from it. Inf makes the body static.
func (body *Body) SetMass(mass Float) {
	if mass <= 0 || math.IsNaN(float64(mass)) {
		panic("Mass must be positive and non-zero.")
	}

	body.m = mass
	if math32.IsInf(float32(mass), 1) {
		body.m_inv = 0
		body.i = Inf
		body.i_inv = 0
		return
	}
	body.m_inv = 1 / mass
	body.i = boxMoment(mass, body.width)
	body.i_inv = 1 / body.i
}

func (body *Body) Mass() Float {
	return body.m
}

func (body *Body) InvMass() Float {
	return body.m_inv
}

func (body *Body) Moment() Float {
	return body.i
}

// inverse moment seen by the solver. Locked bodies never turn.
// invMoment is the inverse moment the solver sees. A locked body has none.
func (body *Body) invMoment() Float {
	if body.lockRotation {
		return 0
	}
	return body.i_inv
}

func (body *Body) IsStatic() bool {
	return body.m_inv == 0
}

func (body *Body) KineticEnergy() Float {
	vsq := Dot(body.v, body.v)
	wsq := body.w * body.w
	if vsq != 0 {
		vsq = vsq * body.m
	}
	if wsq != 0 {
		wsq = wsq * body.i
	}
	return vsq + wsq
}

func (body *Body) SetAngle(angle Float) {
	body.setAngle(angle)
}

func (body *Body) setAngle(angle Float) {
	body.a = angle
	body.rot = transform.NewRotation(angle)
}

func (body *Body) Angle() Float {
	return body.a
}

func (body *Body) Rot() transform.Rotation {
	return body.rot
}

func (body *Body) Transform() transform.Transform {
	return transform.Transform{Position: body.p, Rotation: body.rot}
}

func (body *Body) SetPosition(pos Vect) {
	body.p = pos
}

func (body *Body) Position() Vect {
	return body.p
}

func (body *Body) Width() Vect {
	return body.width
}

func (body *Body) AddForce(x, y Float) {
	body.f.X += x
	body.f.Y += y
}

func (body *Body) SetForce(x, y Float) {
	body.f.X = x
	body.f.Y = y
}

func (body *Body) Force() Vect {
	return body.f
}

func (body *Body) AddTorque(t Float) {
	body.t += t
}

func (body *Body) Torque() Float {
	return body.t
}

func (body *Body) SetVelocity(x, y Float) {
	body.v.X = x
	body.v.Y = y
}

func (body *Body) Velocity() Vect {
	return body.v
}

func (body *Body) SetAngularVelocity(w Float) {
	body.w = w
}

func (body *Body) AngularVelocity() Float {
	return body.w
}

func (body *Body) SetFriction(u Float) {
	body.friction = u
}

func (body *Body) Friction() Float {
	return body.friction
}

func (body *Body) SetLockRotation(lock bool) {
	body.lockRotation = lock
}

func (body *Body) LockRotation() bool {
	return body.lockRotation
}

// IsGrounded reports whether a contact in the last step pushed this body up.
func (body *Body) IsGrounded() bool {
	return body.grounded
}

// ApplyImpulse changes the velocity as if impulse j hit the body at offset r from its center.
func (body *Body) ApplyImpulse(j, r Vect) {
	apply_impulse(body, j, r)
}

func (body *Body) UpdateVelocity(gravity Vect, dt Float) {
	if body.m_inv == 0 {
		return
	}

	body.v = Add(body.v, Mult(Add(gravity, Mult(body.f, body.m_inv)), dt))
	// torque on a locked body is dropped, not stored
	if !body.lockRotation {
		body.w += body.t * body.i_inv * dt
	}
}

func (body *Body) UpdatePosition(dt Float) {
	body.p = Add(body.p, Mult(body.v, dt))
	if body.w != 0 {
		body.setAngle(body.a + body.w*dt)
	}

	body.f = Vector_Zero
	body.t = 0
}
