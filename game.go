package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skul/common"
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"github.com/milk9111/skul/ecs/system"
	"github.com/milk9111/skul/input"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/levels"
	"github.com/milk9111/skul/prefabs"
	"github.com/milk9111/skul/script"
	"github.com/milk9111/skul/settings"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	pixelsPerTile = 32.0
	fixedHz       = 50
	cameraEase    = 0.15
)

type Game struct {
	scene    *system.Scene
	level    *level.Level
	spec     *prefabs.PlayerSpec
	keyboard *input.Keyboard
	driver   *script.Driver
	watcher  *prefabs.Watcher
	store    *settings.Store

	ui         *ebitenui.UI
	knobLabels []*widget.Label

	tuning       controller.Tuning
	playerColor  color.Color
	paused       bool
	debug        bool
	clipboardOK  bool
	frames       int
	camX, camY   float64
	status       string
	statusFrames int
}

func NewGame(levelName, scriptName string, debug bool) (*Game, error) {
	lvl, err := level.Load(levels.FS, levels.Path(levelName))
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	tuning, err := spec.ControllerTuning()
	if err != nil {
		return nil, err
	}

	g := &Game{
		level:       lvl,
		spec:        spec,
		keyboard:    input.NewKeyboard(),
		debug:       debug,
		playerColor: spec.Color.Or(colornames.Burlywood),
	}

	if store, err := settings.Open("skul"); err != nil {
		log.Printf("settings: %v", err)
	} else {
		g.store = store
		if saved, ok, err := store.LoadTuning(tuning); err != nil {
			log.Printf("settings: %v", err)
		} else if ok {
			log.Printf("settings: using saved tuning")
			tuning = saved
		}
	}

	scene, err := system.NewScene(system.SceneConfig{
		Level:   lvl,
		Player:  spec,
		Input:   g.keyboard,
		FPS:     float64(ebiten.DefaultTPS),
		FixedHz: fixedHz,
		Debug:   debug,
	})
	if err != nil {
		return nil, err
	}
	g.scene = scene

	if scriptName != "" {
		driver, err := script.Load(scriptName, scene.Observe, 1/float64(ebiten.DefaultTPS))
		if err != nil {
			return nil, err
		}
		g.driver = driver
		scene.SetInput(driver)
	}

	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("prefabs: watcher disabled: %v", err)
	} else {
		g.watcher = w
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v", err)
	} else {
		g.clipboardOK = true
	}

	g.ui = newPauseUI(g)
	g.setTuning(tuning)
	g.centerCamera(1)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTuning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	g.scene.Update(1 / float64(ebiten.TPS()))
	g.centerCamera(cameraEase)
	if g.statusFrames > 0 {
		g.statusFrames--
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	g.watcher.Drain(func(name string) {
		switch {
		case name == "player.yaml":
			g.reloadSpec()
		case strings.HasSuffix(name, ".tengo") && g.driver != nil && strings.TrimSuffix(name, ".tengo") == g.driver.Name():
			src, err := prefabs.LoadScript(name)
			if err != nil {
				log.Printf("script: %v", err)
				return
			}
			if err := g.driver.Reload(src); err != nil {
				log.Printf("script: %v", err)
				return
			}
			g.flash("reloaded " + name)
		}
	})
}

func (g *Game) reloadSpec() {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("prefabs: %v", err)
		return
	}
	tuning, err := spec.ControllerTuning()
	if err != nil {
		log.Printf("prefabs: %v", err)
		return
	}
	g.spec = spec
	g.playerColor = spec.Color.Or(colornames.Burlywood)
	g.setTuning(tuning)
	g.flash("reloaded player.yaml")
}

// setTuning applies t to the player and refreshes the pause menu labels.
func (g *Game) setTuning(t controller.Tuning) {
	if err := g.scene.SetTuning(t); err != nil {
		log.Printf("game: %v", err)
		return
	}
	g.tuning = g.scene.Controller().Tuning()
	knobs := settings.Knobs()
	for i, label := range g.knobLabels {
		if i < len(knobs) {
			label.Label = knobs[i].Format(g.tuning)
		}
	}
}

func (g *Game) saveTuning() {
	if g.store == nil {
		g.flash("no settings storage")
		return
	}
	if err := g.store.SaveTuning(g.tuning); err != nil {
		log.Printf("settings: %v", err)
		g.flash("save failed")
		return
	}
	g.flash("tuning saved")
}

func (g *Game) resetTuning() {
	t, err := g.spec.ControllerTuning()
	if err != nil {
		log.Printf("prefabs: %v", err)
		return
	}
	if g.store != nil {
		if err := g.store.ResetTuning(); err != nil {
			log.Printf("settings: %v", err)
		}
	}
	g.setTuning(t)
	g.flash("tuning reset to player.yaml")
}

func (g *Game) copyTuning() {
	data, err := prefabs.MarshalTuning(g.tuning)
	if err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	if !g.clipboardOK {
		log.Printf("clipboard: unavailable, tuning follows\n%s", data)
		g.flash("clipboard unavailable, tuning logged")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.flash("tuning copied")
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusFrames = 2 * ebiten.DefaultTPS
}

func (g *Game) centerCamera(ease float64) {
	t, ok := ecs.Get(g.scene.World(), g.scene.Player(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	viewW := common.BaseWidth / pixelsPerTile
	viewH := common.BaseHeight / pixelsPerTile
	g.camX = common.Follow(g.camX, t.X, viewW, float64(g.level.Width), ease)
	g.camY = common.Follow(g.camY, t.Y, viewH, float64(g.level.Height), ease)
}

// toScreen maps a world point in tiles to pixels.
func (g *Game) toScreen(x, y float64) (float32, float32) {
	return float32((x - g.camX) * pixelsPerTile), float32((y - g.camY) * pixelsPerTile)
}

func (g *Game) fillRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	sx, sy := g.toScreen(x, y)
	vector.FillRect(screen, sx, sy, float32(w*pixelsPerTile), float32(h*pixelsPerTile), c, false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w := g.scene.World()

	ecs.ForEach(w, component.SolidComponent.Kind(), func(_ ecs.Entity, s *component.Solid) {
		g.fillRect(screen, s.X, s.Y, s.W, s.H, colornames.Slategray)
	})
	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.MovingPlatform, t *component.Transform) {
		if p.Platform == nil {
			return
		}
		bb := p.Platform.Shape().BB()
		g.fillRect(screen, bb.L, bb.B, bb.R-bb.L, bb.T-bb.B, colornames.Darkkhaki)
	})
	g.drawPlayer(screen)

	if g.debug {
		g.drawDebug(screen)
	}
	g.drawHUD(screen)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	w := g.scene.World()
	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, c *component.Character, t *component.Transform) {
		if c.Body == nil {
			return
		}
		bw, bh := c.Body.Size()
		g.fillRect(screen, t.X-bw/2, t.Y-bh/2, bw, bh, g.playerColor)
		// eye on the facing side
		eyeX := t.X + t.ScaleX*bw/4 - 0.08
		g.fillRect(screen, eyeX, t.Y-bh/3, 0.16, 0.16, colornames.Black)
	})
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.scene.Controller().State()
	anim, _ := ecs.Get(g.scene.World(), g.scene.Player(), component.AnimatorComponent.Kind())
	clip := ""
	if anim != nil {
		clip = anim.Clip
	}
	source := "keyboard"
	if g.driver != nil {
		source = "script " + g.driver.Name()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  FPS %.0f  TPS %.0f  input %s\n", g.level.Name, ebiten.ActualFPS(), ebiten.ActualTPS(), source)
	fmt.Fprintf(&b, "grounded %t  wall %t  slide %t  jumps %d  facing %d  clip %s\n",
		st.Grounded, st.TouchingWall, st.WallSliding, st.JumpsLeft, st.Facing, clip)
	b.WriteString("Esc tuning  R respawn  C copy tuning  F3 debug\n")
	if g.statusFrames > 0 {
		b.WriteString(g.status + "\n")
	}
	if g.driver != nil && g.driver.Err() != nil {
		fmt.Fprintf(&b, "script error: %v\n", g.driver.Err())
	}
	if g.debug {
		for _, line := range g.scene.RecentEvents() {
			b.WriteString(line + "\n")
		}
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
