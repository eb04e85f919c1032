package level

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strconv"

	"github.com/lafriks/go-tiled"
	"github.com/milk9111/skul/physics"
)

var ErrNoSpawn = errors.New("level: no spawn point")

const (
	solidLayer     = "solids"
	spawnGroup     = "spawn"
	platformsGroup = "platforms"
)

// Rect is an axis-aligned box in tiles with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// Platform is a moving platform. DX and DY are tiles, Period is seconds for a
// full round trip.
type Platform struct {
	Name string
	Rect
	DX, DY float64
	Period float64
}

// Level is the collision view of a Tiled map in tile units with y down.
type Level struct {
	Name      string
	Width     int
	Height    int
	TileSize  int
	Solids    []Rect
	SpawnX    float64
	SpawnY    float64
	Platforms []Platform
}

// Load parses a TMX map from fsys.
func Load(fsys fs.FS, path string) (*Level, error) {
	m, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", path, err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("level: load %s: bad tile size %dx%d", path, m.TileWidth, m.TileHeight)
	}

	lvl := &Level{
		Name:     path,
		Width:    m.Width,
		Height:   m.Height,
		TileSize: m.TileWidth,
	}
	tw := float64(m.TileWidth)
	th := float64(m.TileHeight)

	for _, layer := range m.Layers {
		if layer.Name != solidLayer {
			continue
		}
		if len(layer.Tiles) != m.Width*m.Height {
			return nil, fmt.Errorf("level: load %s: layer %s has %d tiles, want %d", path, layer.Name, len(layer.Tiles), m.Width*m.Height)
		}
		grid := make([]bool, len(layer.Tiles))
		for i, tile := range layer.Tiles {
			grid[i] = tile != nil && !tile.IsNil()
		}
		lvl.Solids = append(lvl.Solids, MergeSolids(grid, m.Width, m.Height)...)
	}

	spawned := false
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case spawnGroup:
			for _, o := range og.Objects {
				if spawned {
					log.Printf("level: %s: extra spawn %q ignored", path, o.Name)
					continue
				}
				lvl.SpawnX = o.X / tw
				lvl.SpawnY = o.Y / th
				spawned = true
			}
		case platformsGroup:
			for _, o := range og.Objects {
				p := Platform{
					Name: o.Name,
					Rect: Rect{X: o.X / tw, Y: o.Y / th, W: o.Width / tw, H: o.Height / th},
				}
				if p.DX, err = floatProp(o.Properties, "dx"); err != nil {
					return nil, fmt.Errorf("level: load %s: platform %q: %w", path, o.Name, err)
				}
				if p.DY, err = floatProp(o.Properties, "dy"); err != nil {
					return nil, fmt.Errorf("level: load %s: platform %q: %w", path, o.Name, err)
				}
				if p.Period, err = floatProp(o.Properties, "period"); err != nil {
					return nil, fmt.Errorf("level: load %s: platform %q: %w", path, o.Name, err)
				}
				lvl.Platforms = append(lvl.Platforms, p)
			}
		}
	}
	if !spawned {
		return nil, fmt.Errorf("level: load %s: %w", path, ErrNoSpawn)
	}
	return lvl, nil
}

func floatProp(props tiled.Properties, name string) (float64, error) {
	s := props.GetString(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", name, err)
	}
	return v, nil
}

// MergeSolids greedily merges filled cells of a w*h row-major grid into
// rectangles, extending each run right first and then down.
func MergeSolids(grid []bool, w, h int) []Rect {
	if w <= 0 || h <= 0 || len(grid) != w*h {
		return nil
	}
	var out []Rect
	processed := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if processed[idx] || !grid[idx] {
				continue
			}

			rw := 1
			for x+rw < w {
				i := y*w + x + rw
				if processed[i] || !grid[i] {
					break
				}
				rw++
			}

			rh := 1
		grow:
			for y+rh < h {
				for xi := x; xi < x+rw; xi++ {
					i := (y+rh)*w + xi
					if processed[i] || !grid[i] {
						break grow
					}
				}
				rh++
			}

			for yy := y; yy < y+rh; yy++ {
				for xx := x; xx < x+rw; xx++ {
					processed[yy*w+xx] = true
				}
			}
			out = append(out, Rect{X: float64(x), Y: float64(y), W: float64(rw), H: float64(rh)})
		}
	}
	return out
}

// Build adds the level's solids, bounds and platforms to world.
func (l *Level) Build(world *physics.World) {
	if l == nil || world == nil {
		return
	}
	for _, r := range l.Solids {
		world.AddSolid(r.X, r.Y, r.W, r.H)
	}
	world.AddBounds(float64(l.Width), float64(l.Height))
	for _, p := range l.Platforms {
		world.AddPlatform(physics.PlatformSpec{
			X: p.X, Y: p.Y, Width: p.W, Height: p.H,
			DX: p.DX, DY: p.DY, Period: p.Period,
		})
	}
}
