package settings

import (
	"fmt"
	"math"

	"github.com/milk9111/skul/controller"
)

// Knob is one adjustable tuning value in the pause menu.
type Knob struct {
	Name string
	Step float64
	get  func(controller.Tuning) float64
	set  func(*controller.Tuning, float64)
}

func (k Knob) Value(t controller.Tuning) float64 {
	return k.get(t)
}

// Adjust moves the knob by steps and returns the normalized result.
func (k Knob) Adjust(t controller.Tuning, steps int) controller.Tuning {
	v := k.get(t) + float64(steps)*k.Step
	// snap to the step grid
	v = math.Round(v/k.Step) * k.Step
	k.set(&t, math.Max(v, 0))
	return t.Normalized()
}

func (k Knob) Format(t controller.Tuning) string {
	if k.Step >= 1 {
		return fmt.Sprintf("%s: %.0f", k.Name, k.get(t))
	}
	return fmt.Sprintf("%s: %.2f", k.Name, k.get(t))
}

func floatKnob(name string, step float64, field func(*controller.Tuning) *float64) Knob {
	return Knob{
		Name: name,
		Step: step,
		get:  func(t controller.Tuning) float64 { return *field(&t) },
		set:  func(t *controller.Tuning, v float64) { *field(t) = v },
	}
}

// Knobs lists the values the pause menu exposes, in display order.
func Knobs() []Knob {
	return []Knob{
		floatKnob("move_speed", 0.5, func(t *controller.Tuning) *float64 { return &t.MoveSpeed }),
		floatKnob("jump_velocity", 0.5, func(t *controller.Tuning) *float64 { return &t.JumpVelocity }),
		{
			Name: "amount_of_jumps",
			Step: 1,
			get:  func(t controller.Tuning) float64 { return float64(t.AmountOfJumps) },
			set:  func(t *controller.Tuning, v float64) { t.AmountOfJumps = int(v) },
		},
		floatKnob("wall_slide_speed", 0.25, func(t *controller.Tuning) *float64 { return &t.WallSlideSpeed }),
		floatKnob("movement_force_in_air", 5, func(t *controller.Tuning) *float64 { return &t.MovementForceInAir }),
		floatKnob("air_drag_multiplier", 0.01, func(t *controller.Tuning) *float64 { return &t.AirDragMultiplier }),
		floatKnob("variable_jump_multiplier", 0.05, func(t *controller.Tuning) *float64 { return &t.VariableJumpMultiplier }),
		floatKnob("wall_hop_force", 1, func(t *controller.Tuning) *float64 { return &t.WallHopForce }),
		floatKnob("wall_jump_force", 1, func(t *controller.Tuning) *float64 { return &t.WallJumpForce }),
		floatKnob("jump_buffer_time", 0.01, func(t *controller.Tuning) *float64 { return &t.JumpBufferTime }),
		floatKnob("turn_lock_time", 0.01, func(t *controller.Tuning) *float64 { return &t.TurnLockTime }),
		floatKnob("wall_jump_cancel_time", 0.05, func(t *controller.Tuning) *float64 { return &t.WallJumpCancelTime }),
	}
}
