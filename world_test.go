package boxworld

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/vova616/boxworld/config"
	"github.com/vova616/boxworld/vect"
)

const dt = vect.Float(1.0 / 60.0)

func TestRestingBoxSettles(t *testing.T) {
	world, floor, box := restingPair(t)

	for i := 0; i < 300; i++ {
		world.Step(dt)
	}

	prev := box.Position()
	world.Step(dt)
	if dy := vect.FAbs(box.Position().Y - prev.Y); dy > 1e-3 {
		t.Errorf("box still moving after settling: dy = %v", dy)
	}
	if floor.Position() != (vect.Vect{0, 0}) {
		t.Errorf("static floor moved to %v", floor.Position())
	}
	// resting at y = 1 minus at most a little more than the allowed penetration
	if y := box.Position().Y; y < 0.97 || y > 1.01 {
		t.Errorf("box rests at y = %v", y)
	}
	if vect.FAbs(box.Angle()) > 1e-3 {
		t.Errorf("box tipped to %v", box.Angle())
	}
	if !box.IsGrounded() {
		t.Errorf("resting box is not grounded")
	}
	if floor.IsGrounded() {
		t.Errorf("floor is grounded")
	}
}

func TestStackStaysUp(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	world.MustAddBody(vect.Vect{0, -0.5}, vect.Vect{20, 1}, Inf)
	var boxes []*Body
	for i := 0; i < 5; i++ {
		boxes = append(boxes, world.MustAddBody(vect.Vect{0, 0.51 + 1.05*vect.Float(i)}, vect.Vect{1, 1}, 1))
	}

	for i := 0; i < 600; i++ {
		world.Step(dt)
	}

	for i, box := range boxes {
		p := box.Position()
		if vect.FAbs(p.X) > 0.1 {
			t.Errorf("box %d drifted to x = %v", i, p.X)
		}
		want := 0.5 + vect.Float(i)
		if vect.FAbs(p.Y-want) > 0.1 {
			t.Errorf("box %d at y = %v, want about %v.", i, p.Y, want)
		}
	}
}

func TestFallingBoxPenetration(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	world.MustAddBody(vect.Vect{0, -0.5}, vect.Vect{20, 1}, Inf)
	box := world.MustAddBody(vect.Vect{0, 4}, vect.Vect{1, 1}, 1)

	for i := 0; i < 240; i++ {
		world.Step(dt)
		if y := box.Position().Y; y < 0.3 {
			t.Fatalf("step %d: box sank to y = %v", i, y)
		}
	}
}

func TestWarmStartCarriesImpulses(t *testing.T) {
	world, floor, box := restingPair(t)

	for i := 0; i < 60; i++ {
		world.Step(dt)
	}

	arb, ok := world.Arbiter(box.ID(), floor.ID())
	if !ok {
		t.Fatalf("no arbiter for the resting pair")
	}
	solved := make(map[FeatureID]vect.Float)
	for _, con := range arb.Contacts() {
		if con.NormalImpulse() <= 0 {
			t.Errorf("resting contact %+v has no normal impulse", con.Feature())
		}
		solved[con.Feature()] = con.NormalImpulse()
	}

	world.beginStep()
	world.broadPhase()

	arb, ok = world.Arbiter(floor.ID(), box.ID())
	if !ok {
		t.Fatalf("arbiter lost across steps")
	}
	for _, con := range arb.Contacts() {
		want, ok := solved[con.Feature()]
		if !ok {
			t.Errorf("feature %+v appeared from nowhere", con.Feature())
			continue
		}
		if con.NormalImpulse() != want {
			t.Errorf("feature %+v jnAcc = %v, want %v.", con.Feature(), con.NormalImpulse(), want)
		}
	}
}

func TestSeparatedPairDropsArbiter(t *testing.T) {
	world, floor, box := restingPair(t)
	world.Step(dt)
	if world.ArbiterCount() != 1 {
		t.Fatalf("ArbiterCount() = %d, want 1.", world.ArbiterCount())
	}

	box.SetPosition(vect.Vect{0, 5})
	world.Step(dt)
	if world.ArbiterCount() != 0 {
		t.Errorf("ArbiterCount() = %d after separating, want 0.", world.ArbiterCount())
	}
	if _, ok := world.Arbiter(floor.ID(), box.ID()); ok {
		t.Errorf("stale arbiter still returned")
	}
	if box.IsGrounded() {
		t.Errorf("airborne box is grounded")
	}
}

func TestStaticPairsIgnored(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	world.MustAddBody(vect.Vect{0, 0}, vect.Vect{2, 2}, Inf)
	world.MustAddBody(vect.Vect{0.5, 0}, vect.Vect{2, 2}, Inf)

	world.Step(dt)
	if world.ArbiterCount() != 0 {
		t.Errorf("ArbiterCount() = %d for two static bodies, want 0.", world.ArbiterCount())
	}
}

func TestBodyCapacity(t *testing.T) {
	world := NewWorld(vect.Vect{})
	for i := 0; i < MaxBodies; i++ {
		if _, err := world.AddBody(vect.Vect{vect.Float(i) * 2, 0}, vect.Vect{1, 1}, 1); err != nil {
			t.Fatalf("AddBody %d: %v", i, err)
		}
	}

	id, err := world.AddBody(vect.Vect{}, vect.Vect{1, 1}, 1)
	if errors.Cause(err) != ErrBodyCapacity {
		t.Errorf("AddBody past capacity: err = %v, want %v.", err, ErrBodyCapacity)
	}
	if id != -1 || world.NumBodies() != MaxBodies {
		t.Errorf("AddBody past capacity: id = %d, NumBodies() = %d", id, world.NumBodies())
	}
	if world.Body(MaxBodies) != nil || world.Body(-1) != nil {
		t.Errorf("Body() returned a body out of range")
	}
}

func TestZeroStep(t *testing.T) {
	world, _, box := restingPair(t)
	box.SetPosition(vect.Vect{0, 0.8})

	world.Step(0)

	p := box.Position()
	v := box.Velocity()
	for _, f := range []vect.Float{p.X, p.Y, v.X, v.Y, box.Angle(), box.AngularVelocity()} {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			t.Fatalf("Step(0) produced %v", f)
		}
	}
	if p != (vect.Vect{0, 0.8}) {
		t.Errorf("Step(0) moved the box to %v", p)
	}
}

func TestLockedBodyDoesNotSpin(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	world.MustAddBody(vect.Vect{0, -0.5}, vect.Vect{20, 1}, Inf)
	box := world.MustAddBody(vect.Vect{0, 1}, vect.Vect{1, 1}, 1)
	box.SetAngle(0.3)
	box.SetLockRotation(true)
	box.AddTorque(50)

	for i := 0; i < 120; i++ {
		world.Step(dt)
		if box.AngularVelocity() != 0 {
			t.Fatalf("step %d: locked box spins at %v", i, box.AngularVelocity())
		}
	}
	if box.Angle() != 0.3 {
		t.Errorf("locked box turned to %v", box.Angle())
	}
}

func TestGroundedEitherSide(t *testing.T) {
	for _, lowerFirst := range []bool{true, false} {
		world := NewWorld(vect.Vect{0, -10})
		var lower, upper *Body
		if lowerFirst {
			lower = world.MustAddBody(vect.Vect{0, 0}, vect.Vect{1, 1}, 1)
			upper = world.MustAddBody(vect.Vect{0, 0.95}, vect.Vect{1, 1}, 1)
		} else {
			upper = world.MustAddBody(vect.Vect{0, 0.95}, vect.Vect{1, 1}, 1)
			lower = world.MustAddBody(vect.Vect{0, 0}, vect.Vect{1, 1}, 1)
		}

		world.Step(dt)
		if world.ArbiterCount() != 1 {
			t.Fatalf("lowerFirst %v: ArbiterCount() = %d, want 1.", lowerFirst, world.ArbiterCount())
		}
		if !upper.IsGrounded() {
			t.Errorf("lowerFirst %v: upper box is not grounded", lowerFirst)
		}
		if lower.IsGrounded() {
			t.Errorf("lowerFirst %v: lower box is grounded", lowerFirst)
		}
	}
}

func TestFrictionStopsSliding(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	floor := world.MustAddBody(vect.Vect{0, 0}, vect.Vect{10, 1}, Inf)
	box := world.MustAddBody(vect.Vect{0, 0.99}, vect.Vect{1, 1}, 1)
	floor.SetFriction(1)
	box.SetFriction(1)
	box.SetVelocity(1, 0)

	for i := 0; i < 120; i++ {
		world.Step(dt)
	}
	if v := box.Velocity().X; vect.FAbs(v) > 1e-2 {
		t.Errorf("friction did not stop the box: vx = %v", v)
	}
	if x := box.Position().X; x > 0.5 {
		t.Errorf("box slid to x = %v", x)
	}
}

func TestClear(t *testing.T) {
	world, _, _ := restingPair(t)
	world.Step(dt)

	world.Clear()
	if world.NumBodies() != 0 || world.ArbiterCount() != 0 {
		t.Errorf("after Clear: %d bodies, %d arbiters", world.NumBodies(), world.ArbiterCount())
	}

	box := world.MustAddBody(vect.Vect{0, 3}, vect.Vect{1, 1}, 1)
	if box.ID() != 0 || box.Velocity() != vect.Vector_Zero {
		t.Errorf("reused body: id = %d, v = %v", box.ID(), box.Velocity())
	}
	world.Step(dt)
	if world.Stamp() != 2 {
		t.Errorf("Stamp() = %d, want 2.", world.Stamp())
	}
}

func TestEachArbiter(t *testing.T) {
	world := NewWorld(vect.Vect{0, -10})
	world.MustAddBody(vect.Vect{0, 0}, vect.Vect{10, 1}, Inf)
	world.MustAddBody(vect.Vect{-2, 0.95}, vect.Vect{1, 1}, 1)
	world.MustAddBody(vect.Vect{2, 0.95}, vect.Vect{1, 1}, 1)

	world.Step(dt)

	count := 0
	world.EachArbiter(func(arb *Arbiter) {
		count++
		if arb.BodyA.ID() >= arb.BodyB.ID() {
			t.Errorf("arbiter pair out of order: %d, %d", arb.BodyA.ID(), arb.BodyB.ID())
		}
		if arb.NumContacts == 0 {
			t.Errorf("arbiter without contacts")
		}
	})
	if count != 2 || world.ArbiterCount() != 2 {
		t.Errorf("visited %d arbiters, ArbiterCount() = %d, want 2.", count, world.ArbiterCount())
	}
}

const sceneYAML = `
settings:
  gravity: [0, -10]
  iterations: 20
bodies:
  - name: floor
    position: [0, -0.5]
    size: [20, 1]
    mass: inf
    friction: 0.8
  - name: player
    position: [0, 2]
    size: [1, 2]
    mass: 5
    rotation: 0.1
    lock_rotation: true
    player: true
`

func TestNewWorldFromScene(t *testing.T) {
	sc, err := config.Parse([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	world, ids, err := NewWorldFromScene(sc)
	if err != nil {
		t.Fatalf("NewWorldFromScene: %v", err)
	}
	if len(ids) != 2 || world.NumBodies() != 2 {
		t.Fatalf("ids = %v, NumBodies() = %d", ids, world.NumBodies())
	}
	if world.Iterations != 20 {
		t.Errorf("Iterations = %d, want 20.", world.Iterations)
	}

	floor := world.Body(ids[0])
	if !floor.IsStatic() || floor.Friction() != 0.8 || floor.UserData != "floor" {
		t.Errorf("floor = static %v, friction %v, data %v", floor.IsStatic(), floor.Friction(), floor.UserData)
	}

	player := world.Body(ids[1])
	if player.Mass() != 5 || !player.LockRotation() || player.Angle() != 0.1 {
		t.Errorf("player = mass %v, locked %v, angle %v", player.Mass(), player.LockRotation(), player.Angle())
	}
	if player.Friction() != config.DefaultFriction {
		t.Errorf("player friction = %v, want %v.", player.Friction(), config.DefaultFriction)
	}
}

func TestNewWorldWithBadSettings(t *testing.T) {
	s := config.Default()
	s.ArbiterCapacity = 100
	if _, err := NewWorldWithSettings(s); errors.Cause(err) != config.ErrInvalid {
		t.Errorf("NewWorldWithSettings: err = %v, want %v.", err, config.ErrInvalid)
	}
}
