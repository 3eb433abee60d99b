package boxworld

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vova616/boxworld/config"
	"github.com/vova616/boxworld/hashtable"
	"github.com/vova616/boxworld/vect"
)

// MaxBodies is the fixed body capacity of a World.
const MaxBodies = 256

var ErrBodyCapacity = errors.New("boxworld: body capacity exceeded")

type World struct {

	/// Number of iterations to use in the impulse solver to solve contacts.
	Iterations int

	/// Gravity added to the velocity of every dynamic body each step.
	Gravity vect.Vect

	settings config.Settings

	bodies    [MaxBodies]Body
	numBodies int

	// arbiters holds the pairs touching in the last step, prevArbiters the
	// step before. Each step swaps them and rebuilds arbiters from scratch.
	arbiters     *hashtable.Table[Arbiter]
	prevArbiters *hashtable.Table[Arbiter]

	stamp uint64

	BroadPhaseTime    time.Duration
	ApplyImpulsesTime time.Duration
	StepTime          time.Duration
}

// NewWorld returns an empty world with default settings and the given gravity.
func NewWorld(gravity vect.Vect) *World {
	s := config.Default()
	s.Gravity = gravity
	world, err := NewWorldWithSettings(s)
	if err != nil {
		panic(err)
	}
	return world
}

func NewWorldWithSettings(s config.Settings) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "creating world")
	}

	world := &World{
		Iterations:   s.Iterations,
		Gravity:      s.Gravity,
		settings:     s,
		arbiters:     hashtable.New[Arbiter](s.ArbiterCapacity),
		prevArbiters: hashtable.New[Arbiter](s.ArbiterCapacity),
	}
	return world, nil
}

// NewWorldFromScene builds a world and its bodies. The returned ids follow
// the order of sc.Bodies.
func NewWorldFromScene(sc *config.Scene) (*World, []BodyID, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "creating world")
	}
	world, err := NewWorldWithSettings(sc.Settings)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]BodyID, 0, len(sc.Bodies))
	for i := range sc.Bodies {
		spec := &sc.Bodies[i]
		id, err := world.AddBody(spec.Position, spec.Size, vect.Float(spec.Mass))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "body %d (%s)", i, spec.Name)
		}
		body := world.Body(id)
		body.SetAngle(spec.Rotation)
		body.SetFriction(spec.FrictionValue())
		body.SetLockRotation(spec.LockRotation)
		body.UserData = spec.Name
		ids = append(ids, id)
	}
	return world, ids, nil
}

func (world *World) Settings() config.Settings {
	s := world.settings
	s.Gravity = world.Gravity
	s.Iterations = world.Iterations
	return s
}

// AddBody appends a box of full size width. A mass of Inf makes it static.
// Like SetMass it panics on a size that is not positive.
func (world *World) AddBody(pos, width vect.Vect, mass vect.Float) (BodyID, error) {
	if world.numBodies == MaxBodies {
		return -1, errors.Wrapf(ErrBodyCapacity, "adding body %d", world.numBodies+1)
	}

	id := BodyID(world.numBodies)
	world.bodies[id].init(id, pos, width, mass)
	world.numBodies++
	return id, nil
}

// MustAddBody is AddBody for callers that size their scenes statically.
func (world *World) MustAddBody(pos, width vect.Vect, mass vect.Float) *Body {
	id, err := world.AddBody(pos, width, mass)
	if err != nil {
		panic(err)
	}
	return world.Body(id)
}

func (world *World) Body(id BodyID) *Body {
	if id < 0 || int(id) >= world.numBodies {
		return nil
	}
	return &world.bodies[id]
}

// Bodies returns the live bodies, indexed by BodyID.
func (world *World) Bodies() []Body {
	return world.bodies[:world.numBodies]
}

func (world *World) NumBodies() int {
	return world.numBodies
}

// Clear removes every body and forgets all cached contacts.
func (world *World) Clear() {
	world.numBodies = 0
	world.arbiters.Clear()
	world.prevArbiters.Clear()
}

// Arbiter returns the arbiter of the pair from the last step.
func (world *World) Arbiter(a, b BodyID) (*Arbiter, bool) {
	if a > b {
		a, b = b, a
	}
	return world.arbiters.Get(uint64(hashPair(a, b)))
}

func (world *World) ArbiterCount() int {
	return world.arbiters.Len()
}

// EachArbiter calls fn for every pair touching in the last step.
func (world *World) EachArbiter(fn func(arb *Arbiter)) {
	world.arbiters.Each(func(_ uint64, arb *Arbiter) bool {
		fn(arb)
		return true
	})
}

// Stamp counts completed steps.
func (world *World) Stamp() uint64 {
	return world.stamp
}

func (world *World) Step(dt vect.Float) {
	stepStart := time.Now()

	world.beginStep()

	start := time.Now()
	world.broadPhase()
	world.BroadPhaseTime = time.Since(start)

	world.integrateForces(dt)

	params := world.solverParams(dt)
	world.preStep(&params)

	start = time.Now()
	world.applyImpulses(params.accumulateImpulses)
	world.ApplyImpulsesTime = time.Since(start)

	world.integrateVelocities(dt)

	world.stamp++
	world.StepTime = time.Since(stepStart)
}

func (world *World) solverParams(dt vect.Float) solverParams {
	invDt := vect.Float(0)
	if dt > 0 {
		invDt = 1 / dt
	}
	return solverParams{
		invDt:              invDt,
		biasFactor:         world.settings.BiasFactor,
		slop:               world.settings.AllowedPenetration,
		warmStarting:       world.settings.WarmStarting,
		accumulateImpulses: world.settings.AccumulateImpulses,
		positionCorrection: world.settings.PositionCorrection,
	}
}

func (world *World) beginStep() {
	world.arbiters, world.prevArbiters = world.prevArbiters, world.arbiters
	world.arbiters.Clear()

	for i := 0; i < world.numBodies; i++ {
		world.bodies[i].grounded = false
	}
}

func (world *World) broadPhase() {
	var contacts [MaxPoints]Contact
	relTol := world.settings.RelativeTol
	absTol := world.settings.AbsoluteTol

	for i := 0; i < world.numBodies; i++ {
		bi := &world.bodies[i]
		bbi := bi.AABB()

		for j := i + 1; j < world.numBodies; j++ {
			bj := &world.bodies[j]
			if bi.m_inv == 0 && bj.m_inv == 0 {
				continue
			}
			if !TestOverlap(bbi, bj.AABB()) {
				continue
			}

			numContacts := collide(&contacts, bi, bj, relTol, absTol)
			if numContacts <= 0 {
				continue // Bodies are not colliding.
			}

			markGrounded(bi, bj, &contacts, numContacts)

			// This is where the persistent contact magic comes from.
			key := uint64(hashPair(bi.id, bj.id))
			arb, _ := world.arbiters.Insert(key)
			if old, ok := world.prevArbiters.Get(key); ok {
				*arb = *old
				arb.update(&contacts, numContacts, world.settings.WarmStarting)
			} else {
				arb.init(bi, bj, &contacts, numContacts)
			}
		}
	}
}

// a contact whose normal points down from a body means that body rests on the
// other. Either side of the pair can be grounded: a normal pointing up into b
// grounds b, not only a normal pointing down from a.
func markGrounded(a, b *Body, contacts *[MaxPoints]Contact, numContacts int) {
	for i := 0; i < numContacts; i++ {
		n := contacts[i].n
		if n.Y < 0 {
			a.grounded = true
		} else if n.Y > 0 {
			b.grounded = true
		}
	}
}

func (world *World) integrateForces(dt vect.Float) {
	for i := 0; i < world.numBodies; i++ {
		world.bodies[i].UpdateVelocity(world.Gravity, dt)
	}
}

func (world *World) preStep(params *solverParams) {
	world.arbiters.Each(func(_ uint64, arb *Arbiter) bool {
		arb.preStep(params)
		return true
	})
}

func (world *World) applyImpulses(accumulate bool) {
	for i := 0; i < world.Iterations; i++ {
		world.arbiters.Each(func(_ uint64, arb *Arbiter) bool {
			arb.applyImpulse(accumulate)
			return true
		})
	}
}

func (world *World) integrateVelocities(dt vect.Float) {
	for i := 0; i < world.numBodies; i++ {
		world.bodies[i].UpdatePosition(dt)
	}
}
