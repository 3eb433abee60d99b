package main

import (
	"github.com/pkg/errors"
	"github.com/vova616/boxworld"
	"github.com/vova616/boxworld/config"
)

const defaultScene = `
settings:
  gravity: [0, -10]
  iterations: 10
bodies:
  - name: ground
    position: [0, -0.5]
    size: [40, 1]
    mass: inf
    friction: 0.6
  - name: wall-left
    position: [-19.5, 5]
    size: [1, 10]
    mass: inf
  - name: wall-right
    position: [19.5, 5]
    size: [1, 10]
    mass: inf
  - name: ramp
    position: [-10, 1.5]
    size: [8, 0.5]
    rotation: 0.3
    mass: inf
  - {name: p0, position: [4, 0.5], size: [1, 1], mass: 1}
  - {name: p1, position: [5.1, 0.5], size: [1, 1], mass: 1}
  - {name: p2, position: [6.2, 0.5], size: [1, 1], mass: 1}
  - {name: p3, position: [4.55, 1.5], size: [1, 1], mass: 1}
  - {name: p4, position: [5.65, 1.5], size: [1, 1], mass: 1}
  - {name: p5, position: [5.1, 2.5], size: [1, 1], mass: 1}
  - name: plank
    position: [12, 3]
    size: [4, 0.4]
    rotation: -0.2
    mass: 2
    friction: 0.4
  - name: player
    position: [0, 2]
    size: [0.8, 1.6]
    mass: 5
    lock_rotation: true
    friction: 0.8
    player: true
`

func loadScene(path string) (*config.Scene, error) {
	if path == "" {
		return config.Parse([]byte(defaultScene))
	}
	return config.Load(path)
}

// level owns the world built from a scene and remembers which body the
// keyboard drives.
type level struct {
	scene  *config.Scene
	world  *boxworld.World
	ids    []boxworld.BodyID
	player boxworld.BodyID
}

func newLevel(sc *config.Scene) (*level, error) {
	lv := &level{scene: sc}
	if err := lv.reset(); err != nil {
		return nil, err
	}
	return lv, nil
}

// reset rebuilds the world from the scene.
func (lv *level) reset() error {
	world, ids, err := boxworld.NewWorldFromScene(lv.scene)
	if err != nil {
		return errors.Wrap(err, "building level")
	}
	lv.world = world
	lv.ids = ids
	lv.player = -1
	for i := range lv.scene.Bodies {
		if lv.scene.Bodies[i].Player {
			lv.player = ids[i]
		}
	}
	return nil
}

// Player returns the keyboard body, nil when the scene has none.
func (lv *level) Player() *boxworld.Body {
	return lv.world.Body(lv.player)
}

func (lv *level) name(id boxworld.BodyID) string {
	if name, ok := lv.world.Body(id).UserData.(string); ok {
		return name
	}
	return ""
}
