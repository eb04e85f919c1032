package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"golang.org/x/image/colornames"
)

// drawDebug outlines every cp shape and the player's ground and wall probes.
func (g *Game) drawDebug(screen *ebiten.Image) {
	cp.DrawSpace(g.scene.Physics().Space(), &chipmunkDrawer{screen: screen, game: g})

	ecs.ForEach2(g.scene.World(), component.PlayerComponent.Kind(), component.CharacterComponent.Kind(), func(_ ecs.Entity, p *component.Player, c *component.Character) {
		if c.Body == nil || p.Controller == nil {
			return
		}
		t := p.Controller.Tuning()
		st := p.Controller.State()
		x, y := c.Body.Position()
		w, h := c.Body.Size()

		ground := colornames.Red
		if st.Grounded {
			ground = colornames.Lime
		}
		g.line(screen, x-t.GroundCheckRadius, y+h/2, x+t.GroundCheckRadius, y+h/2, ground)

		wall := colornames.Red
		if st.TouchingWall {
			wall = colornames.Lime
		}
		dir := float64(st.Facing)
		g.line(screen, x, y, x+dir*(w/2+t.WallCheckDistance), y, wall)
	})
}

func (g *Game) line(screen *ebiten.Image, x1, y1, x2, y2 float64, c color.Color) {
	ax, ay := g.toScreen(x1, y1)
	bx, by := g.toScreen(x2, y2)
	ebitenutil.DrawLine(screen, float64(ax), float64(ay), float64(bx), float64(by), c)
}

// chipmunkDrawer implements cp.Drawer in world tiles, mapped through the game camera.
type chipmunkDrawer struct {
	screen *ebiten.Image
	game   *Game
}

func (d *chipmunkDrawer) seg(a, b cp.Vector, c color.Color) {
	d.game.line(d.screen, a.X, a.Y, b.X, b.Y, c)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	const steps = 16
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.seg(prev, cur, c)
		prev = cur
	}
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.seg(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.seg(a, b, fcolorToRGBA(outline))
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.seg(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := 0.1
	c := fcolorToRGBA(fill)
	d.seg(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.seg(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil || shape.Body() == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	switch shape.Body().GetType() {
	case cp.BODY_STATIC:
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	case cp.BODY_KINEMATIC:
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	default:
		return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
