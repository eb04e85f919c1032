package controller

// Body is the physics body a controller drives.
type Body interface {
	Velocity() Vec2
	SetVelocity(v Vec2)
	ApplyImpulse(impulse Vec2)
	ApplyForce(force Vec2)
}

// Probe runs the ground and wall checks. facing is the direction the wall ray points.
type Probe interface {
	Contacts(facing int) Contacts
}

// Animator receives animation graph parameters.
type Animator interface {
	SetBool(name string, value bool)
	SetFloat(name string, value float64)
}

// InputSource produces one input sample per frame.
type InputSource interface {
	Sample() Input
}

// Animation parameter names.
const (
	ParamWalking     = "IsWalking"
	ParamGrounded    = "IsGrounded"
	ParamYVelocity   = "yVelocity"
	ParamWallSliding = "IsWallSliding"
)

// Controller binds the movement state machine to a body, a probe and an optional
// animator.
type Controller struct {
	tuning Tuning
	state  State

	body     Body
	probe    Probe
	animator Animator
	input    InputSource
	onEvent  func(Event)
}

type Option func(*Controller)

func WithAnimator(a Animator) Option {
	return func(c *Controller) { c.animator = a }
}

func WithInput(src InputSource) Option {
	return func(c *Controller) { c.input = src }
}

// OnEvent registers fn to be called once per event flag raised by a tick.
func OnEvent(fn func(Event)) Option {
	return func(c *Controller) { c.onEvent = fn }
}

func New(t Tuning, body Body, probe Probe, opts ...Option) *Controller {
	t = t.Normalized()
	c := &Controller{
		tuning: t,
		state:  NewState(t),
		body:   body,
		probe:  probe,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Update runs the frame logic with a fresh probe and applies the result to the body.
func (c *Controller) Update(in Input, dt float64) Command {
	if c == nil || c.body == nil {
		return Command{}
	}
	contacts := c.contacts()
	next, cmd := Update(c.state, in, contacts, c.body.Velocity(), dt, c.tuning)
	c.state = next
	c.apply(cmd)
	return cmd
}

// Poll samples the bound InputSource and runs Update with it. Without a source it
// runs Update with neutral input.
func (c *Controller) Poll(dt float64) Command {
	if c == nil {
		return Command{}
	}
	var in Input
	if c.input != nil {
		in = c.input.Sample()
	}
	return c.Update(in, dt)
}

// FixedUpdate runs the physics-step logic and applies the result to the body. Call it
// before stepping the physics world.
func (c *Controller) FixedUpdate() Command {
	if c == nil || c.body == nil {
		return Command{}
	}
	contacts := c.contacts()
	next, cmd := FixedUpdate(c.state, contacts, c.body.Velocity(), c.tuning)
	c.state = next
	c.apply(cmd)
	return cmd
}

func (c *Controller) State() State {
	if c == nil {
		return State{}
	}
	return c.state
}

func (c *Controller) Tuning() Tuning {
	if c == nil {
		return Tuning{}
	}
	return c.tuning
}

// SetTuning swaps the constants in place, keeping the current state.
func (c *Controller) SetTuning(t Tuning) {
	if c == nil {
		return
	}
	c.tuning = t.Normalized()
	if c.state.JumpsLeft > c.tuning.AmountOfJumps {
		c.state.JumpsLeft = c.tuning.AmountOfJumps
	}
	c.state.CanNormalJump = c.state.JumpsLeft > 0
}

// Reset puts the controller back to its initial state, as after a respawn.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.state = NewState(c.tuning)
}

func (c *Controller) contacts() Contacts {
	if c.probe == nil {
		return Contacts{}
	}
	return c.probe.Contacts(c.state.Facing)
}

func (c *Controller) apply(cmd Command) {
	if cmd.SetVelocity {
		c.body.SetVelocity(cmd.Velocity)
	}
	if cmd.Impulse != (Vec2{}) {
		c.body.ApplyImpulse(cmd.Impulse)
	}
	if cmd.Force != (Vec2{}) {
		c.body.ApplyForce(cmd.Force)
	}
	if c.animator != nil {
		c.animator.SetBool(ParamWalking, cmd.Anim.Walking)
		c.animator.SetBool(ParamGrounded, cmd.Anim.Grounded)
		c.animator.SetFloat(ParamYVelocity, cmd.Anim.YVelocity)
		c.animator.SetBool(ParamWallSliding, cmd.Anim.WallSliding)
	}
	if c.onEvent != nil && cmd.Events != 0 {
		cmd.Events.Each(c.onEvent)
	}
}
