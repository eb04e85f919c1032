package controller

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTuning = errors.New("controller: invalid tuning")

// Tuning holds the movement constants. Distances are world units, times are seconds.
type Tuning struct {
	MoveSpeed    float64
	JumpVelocity float64
	// AmountOfJumps is the number of jumps available before touching ground again.
	AmountOfJumps int

	GroundCheckRadius float64
	WallCheckDistance float64

	WallSlideSpeed float64
	// MovementForceInAir is the horizontal force used for air control. Zero sets the
	// horizontal velocity directly instead.
	MovementForceInAir     float64
	AirDragMultiplier      float64
	VariableJumpMultiplier float64

	WallHopForce      float64
	WallJumpForce     float64
	WallHopDirection  Vec2
	WallJumpDirection Vec2

	JumpBufferTime     float64
	TurnLockTime       float64
	WallJumpCancelTime float64

	// GroundedVelocityEpsilon is the largest vertical velocity at which a grounded
	// character gets its jumps back.
	GroundedVelocityEpsilon float64
	WalkSpeedThreshold      float64
}

// DefaultTuning returns the stock values for a character about two units tall.
func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:               10,
		JumpVelocity:            16,
		AmountOfJumps:           2,
		GroundCheckRadius:       0.3,
		WallCheckDistance:       0.1,
		WallSlideSpeed:          2,
		MovementForceInAir:      50,
		AirDragMultiplier:       0.95,
		VariableJumpMultiplier:  0.5,
		WallHopForce:            10,
		WallJumpForce:           20,
		WallHopDirection:        Vec2{X: 1, Y: 0.5},
		WallJumpDirection:       Vec2{X: 1, Y: 2},
		JumpBufferTime:          0.15,
		TurnLockTime:            0.1,
		WallJumpCancelTime:      0.5,
		GroundedVelocityEpsilon: 0.01,
		WalkSpeedThreshold:      0.3,
	}.Normalized()
}

// Normalized returns a copy with unit direction vectors and every value pulled back
// into a usable range.
func (t Tuning) Normalized() Tuning {
	t.MoveSpeed = math.Abs(t.MoveSpeed)
	t.JumpVelocity = math.Abs(t.JumpVelocity)
	if t.AmountOfJumps < 0 {
		t.AmountOfJumps = 0
	}
	t.GroundCheckRadius = math.Abs(t.GroundCheckRadius)
	t.WallCheckDistance = math.Abs(t.WallCheckDistance)
	t.WallSlideSpeed = math.Abs(t.WallSlideSpeed)
	t.MovementForceInAir = math.Abs(t.MovementForceInAir)
	t.AirDragMultiplier = clamp01(t.AirDragMultiplier)
	t.VariableJumpMultiplier = clamp01(t.VariableJumpMultiplier)
	t.WallHopForce = math.Abs(t.WallHopForce)
	t.WallJumpForce = math.Abs(t.WallJumpForce)
	t.WallHopDirection = t.WallHopDirection.Normalize()
	t.WallJumpDirection = t.WallJumpDirection.Normalize()
	t.JumpBufferTime = math.Max(t.JumpBufferTime, 0)
	t.TurnLockTime = math.Max(t.TurnLockTime, 0)
	t.WallJumpCancelTime = math.Max(t.WallJumpCancelTime, 0)
	t.GroundedVelocityEpsilon = math.Abs(t.GroundedVelocityEpsilon)
	t.WalkSpeedThreshold = math.Abs(t.WalkSpeedThreshold)
	return t
}

// Validate reports values that normalization cannot repair.
func (t Tuning) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"move_speed", t.MoveSpeed},
		{"jump_velocity", t.JumpVelocity},
		{"ground_check_radius", t.GroundCheckRadius},
		{"wall_check_distance", t.WallCheckDistance},
		{"wall_slide_speed", t.WallSlideSpeed},
		{"movement_force_in_air", t.MovementForceInAir},
		{"air_drag_multiplier", t.AirDragMultiplier},
		{"variable_jump_multiplier", t.VariableJumpMultiplier},
		{"wall_hop_force", t.WallHopForce},
		{"wall_jump_force", t.WallJumpForce},
		{"wall_hop_direction.x", t.WallHopDirection.X},
		{"wall_hop_direction.y", t.WallHopDirection.Y},
		{"wall_jump_direction.x", t.WallJumpDirection.X},
		{"wall_jump_direction.y", t.WallJumpDirection.Y},
		{"jump_buffer_time", t.JumpBufferTime},
		{"turn_lock_time", t.TurnLockTime},
		{"wall_jump_cancel_time", t.WallJumpCancelTime},
		{"grounded_velocity_epsilon", t.GroundedVelocityEpsilon},
		{"walk_speed_threshold", t.WalkSpeedThreshold},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidTuning, f.name, f.value)
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
