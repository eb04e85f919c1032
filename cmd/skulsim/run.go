package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/levels"
	"github.com/milk9111/skul/prefabs"
	"github.com/milk9111/skul/script"
	"github.com/milk9111/skul/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	eventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type runOptions struct {
	Level   string
	Script  string
	Frames  int
	FPS     float64
	FixedHz float64
	Every   int
	Plot    string
	Config  string
}

// loadLevel reads an embedded level by name, or a .tmx file from disk when the
// name points at one.
func loadLevel(name string) (*level.Level, error) {
	if strings.HasSuffix(name, ".tmx") {
		if _, err := os.Stat(name); err == nil {
			return level.Load(os.DirFS("."), strings.TrimPrefix(name, "./"))
		}
	}
	return level.Load(levels.FS, levels.Path(name))
}

// effectiveTuning is player.yaml's tuning with the optional config file on top.
func effectiveTuning(spec *prefabs.PlayerSpec, config string) (controller.Tuning, error) {
	base, err := spec.ControllerTuning()
	if err != nil {
		return controller.Tuning{}, err
	}
	if config == "" {
		return base, nil
	}
	data, err := os.ReadFile(config)
	if err != nil {
		return controller.Tuning{}, fmt.Errorf("read config %s: %w", config, err)
	}
	return prefabs.UnmarshalTuning(data, base)
}

func run(out io.Writer, opts runOptions) error {
	if opts.Frames <= 0 {
		return errors.New("frames must be positive")
	}
	lvl, err := loadLevel(opts.Level)
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	tuning, err := effectiveTuning(spec, opts.Config)
	if err != nil {
		return err
	}

	r, err := sim.NewRunner(sim.Config{
		Level:   lvl,
		Player:  spec,
		Tuning:  &tuning,
		FPS:     opts.FPS,
		FixedHz: opts.FixedHz,
	})
	if err != nil {
		return err
	}
	driver, err := script.Load(opts.Script, r.Observe, r.FrameDt())
	if err != nil {
		return err
	}
	r.SetInput(driver)

	trace := r.Run(opts.Frames)
	if err := driver.Err(); err != nil {
		fmt.Fprintln(out, eventStyle.Render("script error: "+err.Error()))
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s on %s, %d frames", opts.Script, lvl.Name, len(trace))))
	if err := writeTrace(out, trace.Every(opts.Every)); err != nil {
		return err
	}
	writeSummary(out, trace)

	if opts.Plot != "" {
		graph, err := plot(trace, opts.Plot)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

func writeTrace(out io.Writer, trace sim.Trace) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "frame\tx\ty\tvx\tvy\tground\twall\tslide\tjumps\tevents")
	for _, s := range trace {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t%s\t%s\t%d\t%s\n",
			s.Frame, s.X, s.Y, s.VX, s.VY,
			flag(s.Grounded), flag(s.TouchingWall), flag(s.WallSliding),
			s.JumpsLeft, s.Events)
	}
	return w.Flush()
}

func writeSummary(out io.Writer, trace sim.Trace) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %.2f\n", labelStyle.Render("max height"), trace.MaxHeight())
	for _, ev := range []controller.Event{
		controller.EventJump,
		controller.EventWallJump,
		controller.EventWallHop,
		controller.EventJumpCut,
		controller.EventWallJumpCancel,
	} {
		fmt.Fprintf(out, "%s %d\n", labelStyle.Render(ev.String()), trace.Count(ev))
	}
}

func plot(trace sim.Trace, column string) (string, error) {
	data, err := trace.Column(column)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("nothing to plot")
	}
	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(column+" per frame"),
	), nil
}

func flag(b bool) string {
	if b {
		return "x"
	}
	return "-"
}

func listScripts(out io.Writer) error {
	names := prefabs.ScriptNames()
	if len(names) == 0 {
		return errors.New("no scripts embedded")
	}
	fmt.Fprintln(out, headerStyle.Render("scripts"))
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}

func printTuning(out io.Writer, config string) error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	t, err := effectiveTuning(spec, config)
	if err != nil {
		return err
	}
	data, err := prefabs.MarshalTuning(t)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
