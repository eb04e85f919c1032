package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/skul/controller"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec is the player prefab. Sizes are in tiles.
type PlayerSpec struct {
	Name         string       `yaml:"name"`
	Collider     ColliderSpec `yaml:"collider"`
	Mass         float64      `yaml:"mass"`
	GravityScale float64      `yaml:"gravity_scale"`
	Color        *YAMLColor   `yaml:"color"`
	Tuning       TuningSpec   `yaml:"tuning"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ParsePlayerSpec decodes a player prefab from raw YAML.
func ParsePlayerSpec(data []byte) (*PlayerSpec, error) {
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal player spec: %w", err)
	}
	return &spec, nil
}

// ControllerTuning converts the tuning block to controller tuning. Keys left out of the
// YAML keep their default values.
func (p *PlayerSpec) ControllerTuning() (controller.Tuning, error) {
	if p == nil {
		return controller.DefaultTuning(), nil
	}
	t := p.Tuning.Apply(controller.DefaultTuning())
	if err := t.Validate(); err != nil {
		return controller.Tuning{}, fmt.Errorf("prefabs: player %q: %w", p.Name, err)
	}
	return t.Normalized(), nil
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TuningSpec mirrors controller.Tuning with optional fields.
type TuningSpec struct {
	MoveSpeed               *float64 `yaml:"move_speed,omitempty"`
	JumpVelocity            *float64 `yaml:"jump_velocity,omitempty"`
	AmountOfJumps           *int     `yaml:"amount_of_jumps,omitempty"`
	GroundCheckRadius       *float64 `yaml:"ground_check_radius,omitempty"`
	WallCheckDistance       *float64 `yaml:"wall_check_distance,omitempty"`
	WallSlideSpeed          *float64 `yaml:"wall_slide_speed,omitempty"`
	MovementForceInAir      *float64 `yaml:"movement_force_in_air,omitempty"`
	AirDragMultiplier       *float64 `yaml:"air_drag_multiplier,omitempty"`
	VariableJumpMultiplier  *float64 `yaml:"variable_jump_multiplier,omitempty"`
	WallHopForce            *float64 `yaml:"wall_hop_force,omitempty"`
	WallJumpForce           *float64 `yaml:"wall_jump_force,omitempty"`
	WallHopDirection        *VecSpec `yaml:"wall_hop_direction,omitempty"`
	WallJumpDirection       *VecSpec `yaml:"wall_jump_direction,omitempty"`
	JumpBufferTime          *float64 `yaml:"jump_buffer_time,omitempty"`
	TurnLockTime            *float64 `yaml:"turn_lock_time,omitempty"`
	WallJumpCancelTime      *float64 `yaml:"wall_jump_cancel_time,omitempty"`
	GroundedVelocityEpsilon *float64 `yaml:"grounded_velocity_epsilon,omitempty"`
	WalkSpeedThreshold      *float64 `yaml:"walk_speed_threshold,omitempty"`
}

// Apply overlays the fields that are set onto base.
func (s TuningSpec) Apply(base controller.Tuning) controller.Tuning {
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setV := func(dst *controller.Vec2, v *VecSpec) {
		if v != nil {
			*dst = controller.Vec2{X: v.X, Y: v.Y}
		}
	}
	t := base
	setF(&t.MoveSpeed, s.MoveSpeed)
	setF(&t.JumpVelocity, s.JumpVelocity)
	if s.AmountOfJumps != nil {
		t.AmountOfJumps = *s.AmountOfJumps
	}
	setF(&t.GroundCheckRadius, s.GroundCheckRadius)
	setF(&t.WallCheckDistance, s.WallCheckDistance)
	setF(&t.WallSlideSpeed, s.WallSlideSpeed)
	setF(&t.MovementForceInAir, s.MovementForceInAir)
	setF(&t.AirDragMultiplier, s.AirDragMultiplier)
	setF(&t.VariableJumpMultiplier, s.VariableJumpMultiplier)
	setF(&t.WallHopForce, s.WallHopForce)
	setF(&t.WallJumpForce, s.WallJumpForce)
	setV(&t.WallHopDirection, s.WallHopDirection)
	setV(&t.WallJumpDirection, s.WallJumpDirection)
	setF(&t.JumpBufferTime, s.JumpBufferTime)
	setF(&t.TurnLockTime, s.TurnLockTime)
	setF(&t.WallJumpCancelTime, s.WallJumpCancelTime)
	setF(&t.GroundedVelocityEpsilon, s.GroundedVelocityEpsilon)
	setF(&t.WalkSpeedThreshold, s.WalkSpeedThreshold)
	return t
}

// TuningSpecOf returns a fully populated spec for t.
func TuningSpecOf(t controller.Tuning) TuningSpec {
	f := func(v float64) *float64 { return &v }
	vec := func(v controller.Vec2) *VecSpec { return &VecSpec{X: v.X, Y: v.Y} }
	jumps := t.AmountOfJumps
	return TuningSpec{
		MoveSpeed:               f(t.MoveSpeed),
		JumpVelocity:            f(t.JumpVelocity),
		AmountOfJumps:           &jumps,
		GroundCheckRadius:       f(t.GroundCheckRadius),
		WallCheckDistance:       f(t.WallCheckDistance),
		WallSlideSpeed:          f(t.WallSlideSpeed),
		MovementForceInAir:      f(t.MovementForceInAir),
		AirDragMultiplier:       f(t.AirDragMultiplier),
		VariableJumpMultiplier:  f(t.VariableJumpMultiplier),
		WallHopForce:            f(t.WallHopForce),
		WallJumpForce:           f(t.WallJumpForce),
		WallHopDirection:        vec(t.WallHopDirection),
		WallJumpDirection:       vec(t.WallJumpDirection),
		JumpBufferTime:          f(t.JumpBufferTime),
		TurnLockTime:            f(t.TurnLockTime),
		WallJumpCancelTime:      f(t.WallJumpCancelTime),
		GroundedVelocityEpsilon: f(t.GroundedVelocityEpsilon),
		WalkSpeedThreshold:      f(t.WalkSpeedThreshold),
	}
}

// MarshalTuning renders t as the YAML tuning block used in player.yaml.
func MarshalTuning(t controller.Tuning) ([]byte, error) {
	out, err := yaml.Marshal(map[string]TuningSpec{"tuning": TuningSpecOf(t)})
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	return out, nil
}

// UnmarshalTuning reads a tuning block as written by MarshalTuning over base.
func UnmarshalTuning(data []byte, base controller.Tuning) (controller.Tuning, error) {
	var doc struct {
		Tuning TuningSpec `yaml:"tuning"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return base, fmt.Errorf("prefabs: unmarshal tuning: %w", err)
	}
	t := doc.Tuning.Apply(base)
	if err := t.Validate(); err != nil {
		return base, err
	}
	return t.Normalized(), nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("prefabs: invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("prefabs: invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// Or returns the colour, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
