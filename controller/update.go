package controller

import "math"

// tick carries the working copy of a state and the command being built.
type tick struct {
	s   State
	t   Tuning
	vel Vec2
	cmd Command
}

func (k *tick) setVelocity(v Vec2) {
	k.vel = v
	k.cmd.SetVelocity = true
	k.cmd.Velocity = v
}

func (k *tick) dir() int {
	return sign(k.s.MoveInput)
}

// Update runs the per-frame part of the controller: input handling, facing, jump
// eligibility, wall sliding and the jump timers. vel is the body's current velocity.
func Update(s State, in Input, c Contacts, vel Vec2, dt float64, t Tuning) (State, Command) {
	k := &tick{s: s, t: t, vel: vel}
	k.sense(c)
	k.checkIfCanJump()
	k.checkInput(in, dt)
	k.checkMovementDirection()
	k.checkIfWallSliding()
	k.checkJump(dt)
	k.animate()
	return k.s, k.cmd
}

// FixedUpdate runs the per-physics-step part of the controller: horizontal movement,
// air drag and the wall slide speed cap.
func FixedUpdate(s State, c Contacts, vel Vec2, t Tuning) (State, Command) {
	k := &tick{s: s, t: t, vel: vel}
	k.sense(c)
	k.applyMovement()
	k.animate()
	return k.s, k.cmd
}

func (k *tick) sense(c Contacts) {
	k.s.Grounded = c.Grounded
	k.s.TouchingWall = c.TouchingWall
	if k.s.Facing != -1 {
		k.s.Facing = 1
	}
}

func (k *tick) checkIfCanJump() {
	if k.s.Grounded && k.vel.Y <= k.t.GroundedVelocityEpsilon {
		k.s.JumpsLeft = k.t.AmountOfJumps
	}
	if k.s.TouchingWall {
		k.s.CheckJumpMultiplier = false
		k.s.CanWallJump = true
	} else {
		k.s.CanWallJump = false
	}
	k.s.CanNormalJump = k.s.JumpsLeft > 0
}

func (k *tick) checkInput(in Input, dt float64) {
	k.s.MoveInput = math.Max(-1, math.Min(1, in.Horizontal))
	dir := k.dir()

	if in.JumpPressed {
		if k.s.Grounded || (k.s.JumpsLeft > 0 && !k.s.TouchingWall) {
			k.normalJump()
		} else {
			k.s.JumpTimer = k.t.JumpBufferTime
			k.s.AttemptingJump = true
			k.cmd.Events |= EventJumpBuffered
		}
	}

	if in.HorizontalPressed && k.s.TouchingWall && !k.s.Grounded && dir != 0 && dir != k.s.Facing {
		k.lockTurn()
	}

	if k.s.TurnTimer > 0 {
		k.s.TurnTimer -= dt
		if k.s.TurnTimer <= 0 {
			k.s.TurnTimer = 0
			k.s.CanMove = true
			k.s.CanFlip = true
		}
	}

	if k.s.CheckJumpMultiplier && (!in.JumpHeld || in.JumpReleased) {
		k.s.CheckJumpMultiplier = false
		if k.vel.Y > 0 {
			k.setVelocity(Vec2{X: k.vel.X, Y: k.vel.Y * k.t.VariableJumpMultiplier})
			k.cmd.Events |= EventJumpCut
		}
	}
}

func (k *tick) lockTurn() {
	k.s.CanMove = false
	k.s.CanFlip = false
	k.s.TurnTimer = k.t.TurnLockTime
	k.cmd.Events |= EventTurnLock
	if k.s.TurnTimer <= 0 {
		k.s.CanMove = true
		k.s.CanFlip = true
	}
}

func (k *tick) checkMovementDirection() {
	dir := k.dir()
	if dir != 0 && dir != k.s.Facing {
		k.flip()
	}
	k.s.Walking = math.Abs(k.vel.X) >= k.t.WalkSpeedThreshold
}

func (k *tick) flip() {
	if k.s.WallSliding || !k.s.CanFlip {
		return
	}
	k.s.Facing = -k.s.Facing
	k.cmd.Flipped = true
	k.cmd.Events |= EventFlip
}

func (k *tick) checkIfWallSliding() {
	k.s.WallSliding = k.s.TouchingWall && !k.s.Grounded && k.dir() == k.s.Facing && k.vel.Y < 0
}

func (k *tick) checkJump(dt float64) {
	if k.s.JumpTimer > 0 {
		dir := k.dir()
		switch {
		case !k.s.Grounded && k.s.TouchingWall && dir != 0 && dir != k.s.Facing:
			k.wallJump()
		case !k.s.Grounded && k.s.TouchingWall && dir == 0:
			k.wallHop()
		case k.s.Grounded:
			k.normalJump()
		}
	}

	if k.s.AttemptingJump {
		k.s.JumpTimer -= dt
		if k.s.JumpTimer <= 0 {
			k.s.JumpTimer = 0
			k.s.AttemptingJump = false
		}
	}

	if k.s.WallJumpTimer > 0 {
		if k.s.HasWallJumped && k.dir() == -k.s.LastWallJumpDir {
			k.setVelocity(Vec2{X: k.vel.X, Y: 0})
			k.s.HasWallJumped = false
			k.cmd.Events |= EventWallJumpCancel
		} else {
			k.s.WallJumpTimer -= dt
			if k.s.WallJumpTimer <= 0 {
				k.s.WallJumpTimer = 0
				k.s.HasWallJumped = false
			}
		}
	}
}

func (k *tick) clearJumpAttempt() {
	k.s.JumpTimer = 0
	k.s.AttemptingJump = false
	k.s.CheckJumpMultiplier = true
}

func (k *tick) normalJump() {
	if !k.s.CanNormalJump || k.s.JumpsLeft <= 0 {
		return
	}
	k.setVelocity(Vec2{X: k.vel.X, Y: k.t.JumpVelocity})
	k.s.JumpsLeft--
	k.s.CanNormalJump = k.s.JumpsLeft > 0
	k.clearJumpAttempt()
	k.cmd.Events |= EventJump
}

func (k *tick) wallJump() {
	if !k.s.CanWallJump {
		return
	}
	dir := k.dir()
	k.setVelocity(Vec2{X: k.vel.X, Y: 0})
	k.s.WallSliding = false
	k.s.JumpsLeft = k.t.AmountOfJumps - 1
	if k.s.JumpsLeft < 0 {
		k.s.JumpsLeft = 0
	}
	k.s.CanNormalJump = k.s.JumpsLeft > 0
	k.cmd.Impulse = k.cmd.Impulse.Add(Vec2{
		X: k.t.WallJumpForce * k.t.WallJumpDirection.X * float64(dir),
		Y: k.t.WallJumpForce * k.t.WallJumpDirection.Y,
	})
	k.clearJumpAttempt()
	k.lockTurn()
	k.s.HasWallJumped = true
	k.s.WallJumpTimer = k.t.WallJumpCancelTime
	k.s.LastWallJumpDir = -k.s.Facing
	k.cmd.Events |= EventWallJump
}

func (k *tick) wallHop() {
	if k.s.JumpsLeft <= 0 || k.t.WallHopForce == 0 {
		return
	}
	k.s.WallSliding = false
	k.s.JumpsLeft--
	k.s.CanNormalJump = k.s.JumpsLeft > 0
	k.cmd.Impulse = k.cmd.Impulse.Add(Vec2{
		X: k.t.WallHopForce * k.t.WallHopDirection.X * float64(-k.s.Facing),
		Y: k.t.WallHopForce * k.t.WallHopDirection.Y,
	})
	k.clearJumpAttempt()
	k.cmd.Events |= EventWallHop
}

func (k *tick) applyMovement() {
	in := k.s.MoveInput
	switch {
	case !k.s.Grounded && !k.s.WallSliding && in == 0:
		k.setVelocity(Vec2{X: k.vel.X * k.t.AirDragMultiplier, Y: k.vel.Y})
	case k.s.Grounded:
		k.setVelocity(Vec2{X: k.t.MoveSpeed * in, Y: k.vel.Y})
	case k.s.CanMove && !k.s.WallSliding && k.t.MovementForceInAir > 0:
		k.cmd.Force = Vec2{X: k.t.MovementForceInAir * in}
		if math.Abs(k.vel.X) > k.t.MoveSpeed {
			k.setVelocity(Vec2{X: k.t.MoveSpeed * in, Y: k.vel.Y})
		}
	case k.s.CanMove && !k.s.WallSliding:
		k.setVelocity(Vec2{X: k.t.MoveSpeed * in, Y: k.vel.Y})
	}

	if k.s.WallSliding && k.vel.Y < -k.t.WallSlideSpeed {
		k.setVelocity(Vec2{X: k.vel.X, Y: -k.t.WallSlideSpeed})
	}
}

func (k *tick) animate() {
	k.cmd.Anim = AnimParams{
		Walking:     k.s.Walking,
		Grounded:    k.s.Grounded,
		YVelocity:   k.vel.Y,
		WallSliding: k.s.WallSliding,
		Facing:      k.s.Facing,
	}
}
