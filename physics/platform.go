package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PlatformSpec describes a kinematic box that travels from its origin by (DX, DY)
// and back once per Period seconds.
type PlatformSpec struct {
	X, Y          float64
	Width, Height float64
	DX, DY        float64
	Period        float64
}

// Platform is a kinematic moving platform. It is driven by velocity so riders
// resting on it are carried by their contacts.
type Platform struct {
	body  *cp.Body
	shape *cp.Shape

	origin cp.Vector
	delta  cp.Vector

	out, back *gween.Tween
	returning bool
}

// AddPlatform creates a moving platform whose top-left corner starts at (X, Y).
func (w *World) AddPlatform(spec PlatformSpec) *Platform {
	if w == nil || spec.Width <= 0 || spec.Height <= 0 {
		return nil
	}
	body := cp.NewKinematicBody()
	origin := cp.Vector{X: spec.X + spec.Width/2, Y: spec.Y + spec.Height/2}
	body.SetPosition(origin)

	shape := cp.NewBox(body, spec.Width, spec.Height, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypePlatform)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	p := &Platform{
		body:   body,
		shape:  shape,
		origin: origin,
		delta:  cp.Vector{X: spec.DX, Y: spec.DY},
	}
	if spec.Period > 0 && (spec.DX != 0 || spec.DY != 0) {
		half := float32(spec.Period / 2)
		p.out = gween.New(0, 1, half, ease.InOutSine)
		p.back = gween.New(1, 0, half, ease.InOutSine)
	}
	w.platforms = append(w.platforms, p)
	return p
}

func (p *Platform) Body() *cp.Body   { return p.body }
func (p *Platform) Shape() *cp.Shape { return p.shape }

// Position returns the platform centre in world coordinates.
func (p *Platform) Position() (float64, float64) {
	pos := p.body.Position()
	return pos.X, pos.Y
}

func (p *Platform) progress(dt float32) float32 {
	tw := p.out
	if p.returning {
		tw = p.back
	}
	v, done := tw.Update(dt)
	if done {
		tw.Reset()
		p.returning = !p.returning
	}
	return v
}

// update sets the velocity that lands the platform on its next tweened position
// after a step of dt.
func (p *Platform) update(dt float64) {
	if p.out == nil {
		p.body.SetVelocity(0, 0)
		return
	}
	f := float64(p.progress(float32(dt)))
	target := p.origin.Add(p.delta.Mult(f))
	p.body.SetVelocityVector(target.Sub(p.body.Position()).Mult(1 / dt))
}
