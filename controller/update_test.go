package controller

import (
	"math"
	"testing"
)

const dt = 0.02

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var (
	airborne = Contacts{}
	grounded = Contacts{Grounded: true}
	onWall   = Contacts{TouchingWall: true}
)

// wallJumped returns the state right after a wall jump off a wall on the right.
func wallJumped(t *testing.T, tu Tuning) (State, Command) {
	t.Helper()
	s := NewState(tu)
	s, cmd := Update(s, Input{Horizontal: -1, HorizontalPressed: true, JumpPressed: true, JumpHeld: true}, onWall, Vec2{Y: -1}, dt, tu)
	if !cmd.Events.Has(EventWallJump) {
		t.Fatalf("expected wall jump, got events %q", cmd.Events)
	}
	return s, cmd
}

func TestFixedUpdateHorizontal(t *testing.T) {
	tu := DefaultTuning()
	cases := []struct {
		name     string
		state    func() State
		contacts Contacts
		vel      Vec2
		wantSet  bool
		wantVel  Vec2
		wantF    Vec2
	}{
		{
			name:     "grounded_no_input_stops",
			state:    func() State { return NewState(tu) },
			contacts: grounded,
			vel:      Vec2{X: 5},
			wantSet:  true,
			wantVel:  Vec2{},
		},
		{
			name: "grounded_input_sets_speed",
			state: func() State {
				s := NewState(tu)
				s.MoveInput = -1
				return s
			},
			contacts: grounded,
			vel:      Vec2{X: 3, Y: -0.5},
			wantSet:  true,
			wantVel:  Vec2{X: -10, Y: -0.5},
		},
		{
			name: "grounded_ignores_move_lock",
			state: func() State {
				s := NewState(tu)
				s.MoveInput = 1
				s.CanMove = false
				return s
			},
			contacts: grounded,
			wantSet:  true,
			wantVel:  Vec2{X: 10},
		},
		{
			name:     "air_drag_without_input",
			state:    func() State { return NewState(tu) },
			contacts: airborne,
			vel:      Vec2{X: 10, Y: 2},
			wantSet:  true,
			wantVel:  Vec2{X: 9.5, Y: 2},
		},
		{
			name: "air_force_under_speed",
			state: func() State {
				s := NewState(tu)
				s.MoveInput = 1
				return s
			},
			contacts: airborne,
			vel:      Vec2{X: 4, Y: 1},
			wantF:    Vec2{X: 50},
		},
		{
			name: "air_force_clamps_overspeed",
			state: func() State {
				s := NewState(tu)
				s.MoveInput = 1
				return s
			},
			contacts: airborne,
			vel:      Vec2{X: 12, Y: 1},
			wantSet:  true,
			wantVel:  Vec2{X: 10, Y: 1},
			wantF:    Vec2{X: 50},
		},
		{
			name: "locked_air_control_does_nothing",
			state: func() State {
				s := NewState(tu)
				s.MoveInput = -1
				s.CanMove = false
				return s
			},
			contacts: airborne,
			vel:      Vec2{X: -4, Y: 3},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, cmd := FixedUpdate(c.state(), c.contacts, c.vel, tu)
			if cmd.SetVelocity != c.wantSet {
				t.Fatalf("SetVelocity = %v, want %v", cmd.SetVelocity, c.wantSet)
			}
			if c.wantSet && (!approx(cmd.Velocity.X, c.wantVel.X) || !approx(cmd.Velocity.Y, c.wantVel.Y)) {
				t.Fatalf("velocity = %+v, want %+v", cmd.Velocity, c.wantVel)
			}
			if !approx(cmd.Force.X, c.wantF.X) || !approx(cmd.Force.Y, c.wantF.Y) {
				t.Fatalf("force = %+v, want %+v", cmd.Force, c.wantF)
			}
		})
	}
}

func TestFixedUpdateDirectAirControl(t *testing.T) {
	tu := DefaultTuning()
	tu.MovementForceInAir = 0
	s := NewState(tu)
	s.MoveInput = 0.5
	_, cmd := FixedUpdate(s, airborne, Vec2{X: 1, Y: 4}, tu)
	if !cmd.SetVelocity || !approx(cmd.Velocity.X, 5) || !approx(cmd.Velocity.Y, 4) {
		t.Fatalf("velocity = %+v (set %v), want {5 4}", cmd.Velocity, cmd.SetVelocity)
	}
	if cmd.Force != (Vec2{}) {
		t.Fatalf("unexpected force %+v", cmd.Force)
	}
}

func TestWallSlideSpeedCap(t *testing.T) {
	tu := DefaultTuning()
	cases := []struct {
		name  string
		vy    float64
		wantY float64
		set   bool
	}{
		{"fast_fall_capped", -10, -2, true},
		{"slow_fall_untouched", -1, -1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState(tu)
			s.MoveInput = 1
			s, cmd := Update(s, Input{Horizontal: 1}, onWall, Vec2{Y: c.vy}, dt, tu)
			if !s.WallSliding {
				t.Fatalf("expected wall slide")
			}
			_, cmd = FixedUpdate(s, onWall, Vec2{Y: c.vy}, tu)
			got := c.vy
			if cmd.SetVelocity {
				got = cmd.Velocity.Y
			}
			if cmd.SetVelocity != c.set || !approx(got, c.wantY) {
				t.Fatalf("vy = %v (set %v), want %v", got, cmd.SetVelocity, c.wantY)
			}
			if got < -tu.WallSlideSpeed-1e-9 {
				t.Fatalf("vy %v below slide speed", got)
			}
		})
	}
}

func TestWallSlideSkipsAirControl(t *testing.T) {
	cases := []struct {
		name  string
		force float64
	}{
		{"force_mode", 50},
		{"direct_mode", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tu := DefaultTuning()
			tu.MovementForceInAir = c.force
			s := NewState(tu)
			s.MoveInput = 1
			s.WallSliding = true
			_, cmd := FixedUpdate(s, onWall, Vec2{X: 0, Y: -1}, tu)
			if cmd.SetVelocity || cmd.Force != (Vec2{}) {
				t.Fatalf("sliding applied air control: %+v", cmd)
			}
		})
	}
}

func TestWallSlideConditions(t *testing.T) {
	tu := DefaultTuning()
	cases := []struct {
		name     string
		in       float64
		contacts Contacts
		vy       float64
		want     bool
	}{
		{"into_wall_falling", 1, onWall, -3, true},
		{"rising", 1, onWall, 3, false},
		{"no_input", 0, onWall, -3, false},
		{"grounded", 1, Contacts{Grounded: true, TouchingWall: true}, -3, false},
		{"no_wall", 1, airborne, -3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, cmd := Update(NewState(tu), Input{Horizontal: c.in}, c.contacts, Vec2{Y: c.vy}, dt, tu)
			if s.WallSliding != c.want {
				t.Fatalf("WallSliding = %v, want %v", s.WallSliding, c.want)
			}
			if cmd.Anim.WallSliding != c.want {
				t.Fatalf("anim WallSliding = %v, want %v", cmd.Anim.WallSliding, c.want)
			}
		})
	}
}

func TestJumpWithoutJumpsLeft(t *testing.T) {
	cases := []struct {
		name     string
		jumps    int
		contacts Contacts
		vel      Vec2
	}{
		{"airborne_spent", 2, airborne, Vec2{Y: -3}},
		{"grounded_no_jumps_configured", 0, grounded, Vec2{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tu := DefaultTuning()
			tu.AmountOfJumps = c.jumps
			s := NewState(tu)
			s.JumpsLeft = 0
			s, cmd := Update(s, Input{JumpPressed: true, JumpHeld: true}, c.contacts, c.vel, dt, tu)
			if cmd.SetVelocity || cmd.Impulse != (Vec2{}) {
				t.Fatalf("expected no motion, got %+v", cmd)
			}
			if cmd.Events.Has(EventJump) || s.JumpsLeft != 0 {
				t.Fatalf("jump fired: events %q jumps %d", cmd.Events, s.JumpsLeft)
			}
		})
	}
}

func TestNormalJumpAndDoubleJump(t *testing.T) {
	tu := DefaultTuning()
	s := NewState(tu)
	s, cmd := Update(s, Input{JumpPressed: true, JumpHeld: true}, grounded, Vec2{}, dt, tu)
	if !cmd.Events.Has(EventJump) || !approx(cmd.Velocity.Y, tu.JumpVelocity) {
		t.Fatalf("ground jump: %+v", cmd)
	}
	if s.JumpsLeft != 1 || !s.CheckJumpMultiplier {
		t.Fatalf("after ground jump: jumps %d latch %v", s.JumpsLeft, s.CheckJumpMultiplier)
	}

	s, cmd = Update(s, Input{JumpHeld: true}, airborne, Vec2{Y: 10}, dt, tu)
	if cmd.Events.Has(EventJump) {
		t.Fatalf("held jump must not re-trigger")
	}

	s, cmd = Update(s, Input{JumpPressed: true, JumpHeld: true}, airborne, Vec2{Y: -2}, dt, tu)
	if !cmd.Events.Has(EventJump) || !approx(cmd.Velocity.Y, tu.JumpVelocity) {
		t.Fatalf("air jump: %+v", cmd)
	}
	if s.JumpsLeft != 0 || s.CanNormalJump {
		t.Fatalf("after air jump: jumps %d can %v", s.JumpsLeft, s.CanNormalJump)
	}
}

func TestJumpRefill(t *testing.T) {
	tu := DefaultTuning()
	cases := []struct {
		name     string
		contacts Contacts
		vy       float64
		want     int
	}{
		{"grounded_at_rest", grounded, 0, 2},
		{"grounded_within_epsilon", grounded, 0.005, 2},
		{"grounded_rising", grounded, 5, 0},
		{"wall_contact", onWall, -1, 0},
		{"airborne", airborne, -1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState(tu)
			s.JumpsLeft = 0
			s, _ = Update(s, Input{}, c.contacts, Vec2{Y: c.vy}, dt, tu)
			if s.JumpsLeft != c.want {
				t.Fatalf("JumpsLeft = %d, want %d", s.JumpsLeft, c.want)
			}
		})
	}
}

func TestJumpRefillStrictEpsilon(t *testing.T) {
	tu := DefaultTuning()
	tu.GroundedVelocityEpsilon = 0
	cases := []struct {
		name string
		vy   float64
		want int
	}{
		{"at_rest", 0, 2},
		{"settling_down", -0.2, 2},
		{"barely_rising", 0.005, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewState(tu)
			s.JumpsLeft = 0
			s, _ = Update(s, Input{}, grounded, Vec2{Y: c.vy}, dt, tu)
			if s.JumpsLeft != c.want {
				t.Fatalf("JumpsLeft = %d, want %d", s.JumpsLeft, c.want)
			}
		})
	}
}

func TestVariableJumpCutOncePerJump(t *testing.T) {
	tu := DefaultTuning()
	s := NewState(tu)
	s, _ = Update(s, Input{JumpPressed: true, JumpHeld: true}, grounded, Vec2{}, dt, tu)

	s, cmd := Update(s, Input{JumpReleased: true}, airborne, Vec2{Y: 12}, dt, tu)
	if !cmd.Events.Has(EventJumpCut) || !approx(cmd.Velocity.Y, 6) {
		t.Fatalf("expected cut to 6, got %+v", cmd)
	}

	for i := 0; i < 5; i++ {
		s, cmd = Update(s, Input{}, airborne, Vec2{Y: 6 - float64(i)}, dt, tu)
		if cmd.SetVelocity || cmd.Events.Has(EventJumpCut) {
			t.Fatalf("frame %d: second cut %+v", i, cmd)
		}
	}
}

func TestVariableJumpCutSkippedWhenFalling(t *testing.T) {
	tu := DefaultTuning()
	s := NewState(tu)
	s, _ = Update(s, Input{JumpPressed: true, JumpHeld: true}, grounded, Vec2{}, dt, tu)
	s, cmd := Update(s, Input{JumpReleased: true}, airborne, Vec2{Y: -1}, dt, tu)
	if cmd.SetVelocity || cmd.Events.Has(EventJumpCut) {
		t.Fatalf("cut applied while falling: %+v", cmd)
	}
	if s.CheckJumpMultiplier {
		t.Fatalf("latch should be disarmed")
	}
}

func TestJumpBuffer(t *testing.T) {
	tu := DefaultTuning()

	t.Run("fires_on_landing", func(t *testing.T) {
		s := NewState(tu)
		s.JumpsLeft = 0
		s, cmd := Update(s, Input{JumpPressed: true, JumpHeld: true}, airborne, Vec2{Y: -5}, dt, tu)
		if !cmd.Events.Has(EventJumpBuffered) || !s.AttemptingJump {
			t.Fatalf("press was not buffered: %+v", cmd)
		}
		s, cmd = Update(s, Input{JumpHeld: true}, grounded, Vec2{}, dt, tu)
		if !cmd.Events.Has(EventJump) || !approx(cmd.Velocity.Y, tu.JumpVelocity) {
			t.Fatalf("buffered jump did not fire: %+v", cmd)
		}
		if s.AttemptingJump || s.JumpTimer != 0 {
			t.Fatalf("buffer not cleared: attempting %v timer %v", s.AttemptingJump, s.JumpTimer)
		}
	})

	t.Run("expires", func(t *testing.T) {
		s := NewState(tu)
		s.JumpsLeft = 0
		s, _ = Update(s, Input{JumpPressed: true, JumpHeld: true}, airborne, Vec2{Y: -5}, dt, tu)
		for i := 0; i < 10; i++ {
			s, _ = Update(s, Input{}, airborne, Vec2{Y: -5}, dt, tu)
		}
		if s.AttemptingJump || s.JumpTimer != 0 {
			t.Fatalf("buffer did not expire: attempting %v timer %v", s.AttemptingJump, s.JumpTimer)
		}
		_, cmd := Update(s, Input{}, grounded, Vec2{}, dt, tu)
		if cmd.Events.Has(EventJump) || cmd.SetVelocity {
			t.Fatalf("expired buffer fired: %+v", cmd)
		}
	})
}

func TestWallJump(t *testing.T) {
	tu := DefaultTuning()
	s, cmd := wallJumped(t, tu)

	dir := Vec2{X: 1, Y: 2}.Normalize()
	want := Vec2{X: -tu.WallJumpForce * dir.X, Y: tu.WallJumpForce * dir.Y}
	if !approx(cmd.Impulse.X, want.X) || !approx(cmd.Impulse.Y, want.Y) {
		t.Fatalf("impulse = %+v, want %+v", cmd.Impulse, want)
	}
	if !cmd.SetVelocity || cmd.Velocity.Y != 0 {
		t.Fatalf("vertical velocity not zeroed: %+v", cmd)
	}
	if s.JumpsLeft != tu.AmountOfJumps-1 {
		t.Fatalf("JumpsLeft = %d, want %d", s.JumpsLeft, tu.AmountOfJumps-1)
	}
	if s.CanMove || s.CanFlip || s.Facing != 1 {
		t.Fatalf("expected locked turn facing the wall: %+v", s)
	}
	if !s.HasWallJumped || s.LastWallJumpDir != -1 || s.WallJumpTimer <= 0 {
		t.Fatalf("cancel window not open: %+v", s)
	}
}

func TestWallJumpTurnLock(t *testing.T) {
	tu := DefaultTuning()
	s, _ := wallJumped(t, tu)

	in := Input{Horizontal: -1, JumpHeld: true}
	s, cmd := Update(s, in, airborne, Vec2{X: -8, Y: 10}, dt, tu)
	if s.CanMove || s.CanFlip || s.Facing != 1 || cmd.Flipped {
		t.Fatalf("lock released early: %+v", s)
	}
	s.MoveInput = -1
	_, fixed := FixedUpdate(s, airborne, Vec2{X: -8, Y: 10}, tu)
	if fixed.SetVelocity || fixed.Force != (Vec2{}) {
		t.Fatalf("air control while locked: %+v", fixed)
	}

	flipped := false
	for i := 0; i < 10; i++ {
		s, cmd = Update(s, in, airborne, Vec2{X: -8, Y: 5}, dt, tu)
		flipped = flipped || cmd.Flipped
	}
	if !s.CanMove || !s.CanFlip || s.TurnTimer != 0 {
		t.Fatalf("lock never released: %+v", s)
	}
	if !flipped || s.Facing != -1 {
		t.Fatalf("expected flip after lock, facing %d", s.Facing)
	}
}

// Landing hands control back to the ground branch even while the flip lock from
// a wall jump is still counting down.
func TestLandingDuringTurnLock(t *testing.T) {
	tu := DefaultTuning()
	s, _ := wallJumped(t, tu)
	if s.CanMove || s.TurnTimer <= 0 {
		t.Fatalf("expected an armed turn lock: %+v", s)
	}

	s, cmd := FixedUpdate(s, grounded, Vec2{X: 3, Y: 0}, tu)
	if !cmd.SetVelocity || !approx(cmd.Velocity.X, -tu.MoveSpeed) {
		t.Fatalf("grounded movement blocked by lock: %+v", cmd)
	}
	if s.CanMove || s.CanFlip || s.TurnTimer <= 0 {
		t.Fatalf("landing should not clear the lock itself: %+v", s)
	}

	_, cmd = FixedUpdate(s, airborne, Vec2{X: 3, Y: 2}, tu)
	if cmd.SetVelocity || cmd.Force != (Vec2{}) {
		t.Fatalf("air control while still locked: %+v", cmd)
	}
}

func TestWallJumpCancel(t *testing.T) {
	tu := DefaultTuning()
	s, _ := wallJumped(t, tu)

	back := Input{Horizontal: 1, HorizontalPressed: true, JumpHeld: true}
	s, cmd := Update(s, back, airborne, Vec2{X: -8, Y: 10}, dt, tu)
	if !cmd.Events.Has(EventWallJumpCancel) {
		t.Fatalf("expected cancel, got %q", cmd.Events)
	}
	if !cmd.SetVelocity || cmd.Velocity.Y != 0 || !approx(cmd.Velocity.X, -8) {
		t.Fatalf("velocity = %+v, want {-8 0}", cmd.Velocity)
	}
	if s.HasWallJumped {
		t.Fatalf("HasWallJumped should clear after cancel")
	}

	_, cmd = Update(s, back, airborne, Vec2{X: -8, Y: -1}, dt, tu)
	if cmd.Events.Has(EventWallJumpCancel) {
		t.Fatalf("cancel fired twice")
	}
}

func TestWallJumpCancelWindowCloses(t *testing.T) {
	tu := DefaultTuning()
	s, _ := wallJumped(t, tu)
	away := Input{Horizontal: -1, JumpHeld: true}
	for i := 0; i < 40; i++ {
		s, _ = Update(s, away, airborne, Vec2{X: -5, Y: 1}, dt, tu)
	}
	if s.HasWallJumped || s.WallJumpTimer != 0 {
		t.Fatalf("window still open: %+v", s)
	}
	_, cmd := Update(s, Input{Horizontal: 1, JumpHeld: true}, airborne, Vec2{X: -5, Y: 1}, dt, tu)
	if cmd.Events.Has(EventWallJumpCancel) {
		t.Fatalf("cancel after window closed")
	}
}

func TestWallHop(t *testing.T) {
	tu := DefaultTuning()
	s, cmd := Update(NewState(tu), Input{JumpPressed: true, JumpHeld: true}, onWall, Vec2{Y: -1}, dt, tu)
	if !cmd.Events.Has(EventWallHop) {
		t.Fatalf("expected wall hop, got %q", cmd.Events)
	}
	dir := Vec2{X: 1, Y: 0.5}.Normalize()
	want := Vec2{X: -tu.WallHopForce * dir.X, Y: tu.WallHopForce * dir.Y}
	if !approx(cmd.Impulse.X, want.X) || !approx(cmd.Impulse.Y, want.Y) {
		t.Fatalf("impulse = %+v, want %+v", cmd.Impulse, want)
	}
	if s.JumpsLeft != 1 {
		t.Fatalf("JumpsLeft = %d, want 1", s.JumpsLeft)
	}
}

func TestFlip(t *testing.T) {
	tu := DefaultTuning()
	cases := []struct {
		name    string
		state   func() State
		in      float64
		want    int
		flipped bool
	}{
		{"turn_left", func() State { return NewState(tu) }, -1, -1, true},
		{"same_side", func() State { return NewState(tu) }, 1, 1, false},
		{"no_input", func() State { return NewState(tu) }, 0, 1, false},
		{"blocked_while_sliding", func() State {
			s := NewState(tu)
			s.WallSliding = true
			return s
		}, -1, 1, false},
		{"blocked_by_lock", func() State {
			s := NewState(tu)
			s.CanFlip = false
			s.TurnTimer = 1
			return s
		}, -1, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, cmd := Update(c.state(), Input{Horizontal: c.in}, grounded, Vec2{}, dt, tu)
			if s.Facing != c.want || cmd.Flipped != c.flipped {
				t.Fatalf("facing %d flipped %v, want %d %v", s.Facing, cmd.Flipped, c.want, c.flipped)
			}
			if cmd.Anim.Facing != c.want {
				t.Fatalf("anim facing %d", cmd.Anim.Facing)
			}
		})
	}
}

func TestTurnLockFromWallPress(t *testing.T) {
	tu := DefaultTuning()
	s, cmd := Update(NewState(tu), Input{Horizontal: -1, HorizontalPressed: true}, onWall, Vec2{Y: -1}, dt, tu)
	if !cmd.Events.Has(EventTurnLock) || s.CanMove || s.CanFlip {
		t.Fatalf("expected turn lock: %+v", s)
	}
	if s.Facing != 1 {
		t.Fatalf("facing changed under lock")
	}
}

func TestWalkingAndAnimParams(t *testing.T) {
	tu := DefaultTuning()
	_, cmd := Update(NewState(tu), Input{Horizontal: 1}, grounded, Vec2{X: 4, Y: 0}, dt, tu)
	if !cmd.Anim.Walking || !cmd.Anim.Grounded {
		t.Fatalf("anim = %+v", cmd.Anim)
	}
	_, cmd = Update(NewState(tu), Input{}, airborne, Vec2{X: 0.1, Y: -3}, dt, tu)
	if cmd.Anim.Walking || cmd.Anim.Grounded || cmd.Anim.YVelocity != -3 {
		t.Fatalf("anim = %+v", cmd.Anim)
	}
}

func TestInputClamp(t *testing.T) {
	tu := DefaultTuning()
	s, _ := Update(NewState(tu), Input{Horizontal: 3}, grounded, Vec2{}, dt, tu)
	if s.MoveInput != 1 {
		t.Fatalf("MoveInput = %v, want 1", s.MoveInput)
	}
}

func TestEventString(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{0, ""},
		{EventJump, "jump"},
		{EventWallJump | EventTurnLock, "wall_jump|turn_lock"},
		{EventJumpCut | EventFlip, "jump_cut|flip"},
	}
	for _, c := range cases {
		if got := c.ev.String(); got != c.want {
			t.Fatalf("%d: got %q want %q", c.ev, got, c.want)
		}
	}
}
