package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vova616/boxworld"
	"github.com/vova616/boxworld/vect"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2

var (
	staticStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	dynamicStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	playerStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	contactStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// camera maps world coordinates to terminal cells.
type camera struct {
	center vect.Vect
	zoom   float32 // cells per world unit, vertically
	width  int
	height int
	m      mgl32.Mat3
}

func newCamera(width, height int, center vect.Vect, zoom float32) *camera {
	cam := &camera{center: center, zoom: zoom}
	cam.resize(width, height)
	return cam
}

func (cam *camera) resize(width, height int) {
	cam.width, cam.height = width, height
	cam.update()
}

func (cam *camera) update() {
	toOrigin := mgl32.Translate2D(-float32(cam.center.X), -float32(cam.center.Y))
	// screen y grows downwards
	scale := mgl32.Scale2D(cam.zoom*cellAspect, -cam.zoom)
	toScreen := mgl32.Translate2D(float32(cam.width)/2, float32(cam.height)/2)
	cam.m = toScreen.Mul3(scale).Mul3(toOrigin)
}

// fit centers the camera on bb and zooms out until it is in view.
func (cam *camera) fit(bb boxworld.AABB) {
	if !bb.Valid() {
		return
	}
	cam.center = bb.Center()
	ext := bb.Extents()
	zx := float32(cam.width) / (cellAspect * 2 * float32(ext.X+1))
	zy := float32(cam.height) / (2 * float32(ext.Y+1))
	cam.zoom = zx
	if zy < zx {
		cam.zoom = zy
	}
	cam.update()
}

func (cam *camera) project(v vect.Vect) (int, int) {
	p := cam.m.Mul3x1(mgl32.Vec3{float32(v.X), float32(v.Y), 1})
	return roundCell(p.X()), roundCell(p.Y())
}

func roundCell(f float32) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

type renderer struct {
	screen tcell.Screen
	cam    *camera
}

func newRenderer(screen tcell.Screen) *renderer {
	w, h := screen.Size()
	return &renderer{
		screen: screen,
		cam:    newCamera(w, h, vect.Vect{0, 6}, 1.5),
	}
}

// frame fits the camera to the static bodies of the level.
func (r *renderer) frame(lv *level) {
	var bb boxworld.AABB
	found := false
	bodies := lv.world.Bodies()
	for i := range bodies {
		if !bodies[i].IsStatic() {
			continue
		}
		if !found {
			bb = bodies[i].AABB()
			found = true
			continue
		}
		bb = boxworld.Combine(bb, bodies[i].AABB())
	}
	if found {
		r.cam.fit(bb)
	}
}

func (r *renderer) resize() {
	w, h := r.screen.Size()
	r.cam.resize(w, h)
	r.screen.Sync()
}

func (r *renderer) draw(lv *level, paused bool) {
	r.screen.Clear()

	world := lv.world
	player := lv.Player()
	bodies := world.Bodies()
	for i := range bodies {
		body := &bodies[i]
		style := dynamicStyle
		switch {
		case body == player:
			style = playerStyle
		case body.IsStatic():
			style = staticStyle
		}
		r.drawBox(body, style)
	}

	world.EachArbiter(func(arb *boxworld.Arbiter) {
		for _, con := range arb.Contacts() {
			x, y := r.cam.project(con.Position())
			r.set(x, y, '*', contactStyle)
		}
	})

	status := ""
	if paused {
		status = " [paused]"
	}
	r.text(0, 0, fmt.Sprintf("bodies %d  arbiters %d  step %v  solve %v%s",
		world.NumBodies(), world.ArbiterCount(), world.StepTime, world.ApplyImpulsesTime, status), hudStyle)
	r.text(0, 1, "arrows/wasd move  space jump  p pause  n step  r reset  esc quit", hudStyle)

	r.screen.Show()
}

func (r *renderer) drawBox(body *boxworld.Body, style tcell.Style) {
	verts := body.Vertices()
	for i := range verts {
		x0, y0 := r.cam.project(verts[i])
		x1, y1 := r.cam.project(verts[(i+1)%len(verts)])
		r.line(x0, y0, x1, y1, '#', style)
	}
}

// Bresenham.
func (r *renderer) line(x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		r.set(x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (r *renderer) set(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.cam.width || y >= r.cam.height {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.set(x, y, ch, style)
		x++
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
