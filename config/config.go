// Package config loads world and solver tunables and initial scenes from YAML.
package config

import (
	"math/bits"
	"os"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/vova616/boxworld/vect"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is the cause of every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Settings holds the tunables of one world.
type Settings struct {
	Gravity vect.Vect `yaml:"gravity"`
	// Solver passes per step.
	Iterations int `yaml:"iterations"`
	// Baumgarte factor and the penetration the bias leaves uncorrected.
	BiasFactor         vect.Float `yaml:"bias_factor"`
	AllowedPenetration vect.Float `yaml:"allowed_penetration"`
	// Reference face hysteresis.
	RelativeTol vect.Float `yaml:"relative_tol"`
	AbsoluteTol vect.Float `yaml:"absolute_tol"`
	// Entries in each arbiter cache. Power of two.
	ArbiterCapacity int `yaml:"arbiter_capacity"`

	WarmStarting       bool `yaml:"warm_starting"`
	AccumulateImpulses bool `yaml:"accumulate_impulses"`
	PositionCorrection bool `yaml:"position_correction"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Gravity:            vect.Vect{X: 0, Y: -10},
		Iterations:         10,
		BiasFactor:         0.2,
		AllowedPenetration: 0.01,
		RelativeTol:        0.95,
		AbsoluteTol:        0.01,
		ArbiterCapacity:    1 << 15,
		WarmStarting:       true,
		AccumulateImpulses: true,
		PositionCorrection: true,
	}
}

func (s Settings) Validate() error {
	if s.Iterations < 0 {
		return errors.Wrapf(ErrInvalid, "iterations %d is negative", s.Iterations)
	}
	if s.ArbiterCapacity <= 0 || bits.OnesCount(uint(s.ArbiterCapacity)) != 1 {
		return errors.Wrapf(ErrInvalid, "arbiter_capacity %d is not a power of two", s.ArbiterCapacity)
	}
	if s.BiasFactor < 0 || s.BiasFactor > 1 {
		return errors.Wrapf(ErrInvalid, "bias_factor %v outside [0, 1]", s.BiasFactor)
	}
	if s.AllowedPenetration < 0 {
		return errors.Wrapf(ErrInvalid, "allowed_penetration %v is negative", s.AllowedPenetration)
	}
	if s.RelativeTol <= 0 || s.RelativeTol > 1 {
		return errors.Wrapf(ErrInvalid, "relative_tol %v outside (0, 1]", s.RelativeTol)
	}
	if s.AbsoluteTol < 0 {
		return errors.Wrapf(ErrInvalid, "absolute_tol %v is negative", s.AbsoluteTol)
	}
	return nil
}

// Mass is a body mass that may be the infinite sentinel, written "inf" in YAML.
type Mass vect.Float

func (m Mass) Infinite() bool {
	return math32.IsInf(float32(m), 1)
}

func (m Mass) MarshalYAML() (interface{}, error) {
	if m.Infinite() {
		return "inf", nil
	}
	return float32(m), nil
}

func (m *Mass) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "inf", "infinite", "static", ".inf":
		*m = Mass(math32.Inf(1))
		return nil
	}
	var f float32
	if err := node.Decode(&f); err != nil {
		return errors.Wrapf(err, "mass on line %d", node.Line)
	}
	*m = Mass(f)
	return nil
}

// BodySpec describes one body of a scene.
type BodySpec struct {
	Name         string      `yaml:"name"`
	Position     vect.Vect   `yaml:"position"`
	Size         vect.Vect   `yaml:"size"`
	Mass         Mass        `yaml:"mass"`
	Rotation     vect.Float  `yaml:"rotation"`
	Friction     *vect.Float `yaml:"friction"`
	LockRotation bool        `yaml:"lock_rotation"`
	// The body the keyboard drives in the demo host.
	Player bool `yaml:"player"`
}

// DefaultFriction applies to bodies that do not set one.
const DefaultFriction = vect.Float(0.2)

func (b *BodySpec) FrictionValue() vect.Float {
	if b.Friction == nil {
		return DefaultFriction
	}
	return *b.Friction
}

// Scene is a settings block plus the bodies to create.
type Scene struct {
	Settings Settings   `yaml:"settings"`
	Bodies   []BodySpec `yaml:"bodies"`
}

func (sc *Scene) Validate() error {
	if err := sc.Settings.Validate(); err != nil {
		return err
	}
	players := 0
	for i := range sc.Bodies {
		b := &sc.Bodies[i]
		if b.Size.X <= 0 || b.Size.Y <= 0 {
			return errors.Wrapf(ErrInvalid, "body %d (%s): size %v must be positive", i, b.Name, b.Size)
		}
		m := float32(b.Mass)
		if !b.Mass.Infinite() && (m <= 0 || math32.IsNaN(m) || math32.IsInf(m, 0)) {
			return errors.Wrapf(ErrInvalid, "body %d (%s): mass %v must be positive or inf", i, b.Name, m)
		}
		if f := b.FrictionValue(); f < 0 {
			return errors.Wrapf(ErrInvalid, "body %d (%s): friction %v is negative", i, b.Name, f)
		}
		if b.Player {
			players++
		}
	}
	if players > 1 {
		return errors.Wrapf(ErrInvalid, "%d bodies marked as player", players)
	}
	return nil
}

// Parse decodes a scene. Settings missing from the document keep their
// defaults.
func Parse(data []byte) (*Scene, error) {
	sc := &Scene{Settings: Default()}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %s", path)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return sc, nil
}
