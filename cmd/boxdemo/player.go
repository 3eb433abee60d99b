package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/vova616/boxworld"
	"github.com/vova616/boxworld/vect"
)

const (
	moveAccel = vect.Float(40)
	maxSpeed  = vect.Float(6)
	jumpSpeed = vect.Float(7)
	// Terminals report key presses, not releases: a press keeps pushing
	// until the key repeat refreshes it or this much time passes.
	holdTime = 150 * time.Millisecond
	// a jump still counts this long after walking off an edge
	coyoteTime = 200 * time.Millisecond

	landingSpeed = vect.Float(1)
)

// controller turns key presses into forces on the player body. The player
// only grips while it stands on something.
type controller struct {
	dir       vect.Float
	heldUntil time.Time
	jump      bool

	friction     vect.Float
	lastGrounded time.Time

	wasGrounded bool
	fallSpeed   vect.Float
}

func newController(player *boxworld.Body) controller {
	pc := controller{}
	if player != nil {
		pc.friction = player.Friction()
	}
	return pc
}

// handleKey reports whether the key was one of the controller's.
func (pc *controller) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		pc.hold(-1, now)
	case tcell.KeyRight:
		pc.hold(1, now)
	case tcell.KeyUp:
		pc.jump = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			pc.hold(-1, now)
		case 'd':
			pc.hold(1, now)
		case 'w', ' ':
			pc.jump = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (pc *controller) hold(dir vect.Float, now time.Time) {
	pc.dir = dir
	pc.heldUntil = now.Add(holdTime)
}

// apply pushes the player before a step.
func (pc *controller) apply(body *boxworld.Body, now time.Time) {
	if body == nil {
		return
	}
	if now.After(pc.heldUntil) {
		pc.dir = 0
	}

	if body.IsGrounded() {
		pc.lastGrounded = now
		body.SetFriction(pc.friction)
	} else {
		body.SetFriction(0)
	}

	v := body.Velocity()
	if pc.dir != 0 && v.X*pc.dir < maxSpeed {
		f := moveAccel * body.Mass() * pc.dir
		body.AddForce(f, 0)
	}

	if pc.jump {
		if now.Sub(pc.lastGrounded) <= coyoteTime {
			pc.lastGrounded = time.Time{}
			body.ApplyImpulse(vect.Vect{0, body.Mass() * jumpSpeed}, vect.Vector_Zero)
		}
		pc.jump = false
	}
	pc.fallSpeed = -v.Y
}

// landed reports a landing after a step, with the speed the body fell at.
func (pc *controller) landed(body *boxworld.Body) (vect.Float, bool) {
	if body == nil {
		return 0, false
	}
	grounded := body.IsGrounded()
	landed := grounded && !pc.wasGrounded && pc.fallSpeed > landingSpeed
	pc.wasGrounded = grounded
	return pc.fallSpeed, landed
}
