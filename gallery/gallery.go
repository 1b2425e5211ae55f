// Package gallery holds the small decorative physics demos shown beside
// the swarm: a double pendulum, two-source wave interference and a
// Lissajous curve. Each demo owns a square surface and advances one step
// per Draw.
package gallery

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/chaos-swarm/game"
	"github.com/pthm-cable/chaos-swarm/renderer"
)

// Palette shared by every demo.
var (
	Cyan   = mustHex("#00F5D4")
	Orange = mustHex("#FF7B00")

	transparent = color.NRGBA{}
)

func mustHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("gallery: bad palette color %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// alpha returns c with its alpha scaled to a in [0,1].
func alpha(c color.NRGBA, a float64) color.NRGBA {
	switch {
	case a <= 0:
		c.A = 0
	case a < 1:
		c.A = uint8(a*255 + 0.5)
	}
	return c
}

// Demo is one gallery simulation.
type Demo interface {
	Name() string
	// Draw advances the demo one step and redraws its surface.
	Draw()
}

// prepare sizes a demo surface to a square of the given logical edge.
func prepare(surf renderer.Surface, size, pixelRatio float64) error {
	if surf == nil {
		return errors.New("no surface")
	}
	if err := surf.Resize(size, size, pixelRatio); err != nil {
		return fmt.Errorf("sizing gallery surface: %w", err)
	}
	return nil
}

// Gallery animates a set of demos on the host's frame loop. A demo that
// panics is skipped for that frame; the others keep drawing.
type Gallery struct {
	host  game.Host
	demos []Demo

	frameID   game.FrameID
	started   bool
	destroyed bool
	frames    int64
	failures  map[string]int
}

// NewGallery creates a gallery over the given demos.
func NewGallery(host game.Host, demos ...Demo) *Gallery {
	slog.Info("gallery initialized", "demos", len(demos))
	return &Gallery{
		host:     host,
		demos:    demos,
		failures: make(map[string]int),
	}
}

// Start schedules the first frame. Calling it again is a no-op.
func (g *Gallery) Start() {
	if g.started || g.destroyed {
		return
	}
	g.started = true
	g.frameID = g.host.RequestFrame(g.frame)
}

func (g *Gallery) frame() {
	if g.destroyed {
		return
	}
	g.Draw()
	g.frameID = g.host.RequestFrame(g.frame)
}

// Draw draws every demo once and returns how many failed.
func (g *Gallery) Draw() int {
	if g.destroyed {
		return 0
	}
	g.frames++
	failed := 0
	for i, d := range g.demos {
		if err := drawSafe(d); err != nil {
			failed++
			name := d.Name()
			if g.failures[name] == 0 {
				slog.Warn("gallery demo failed", "index", i, "demo", name, "error", err)
			}
			g.failures[name]++
		}
	}
	return failed
}

func drawSafe(d Demo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	d.Draw()
	return nil
}

// Failures returns how many times the named demo has failed.
func (g *Gallery) Failures(name string) int {
	return g.failures[name]
}

// Frames returns the number of Draw calls that ran.
func (g *Gallery) Frames() int64 {
	return g.frames
}

// Demos returns the managed demos.
func (g *Gallery) Demos() []Demo {
	return g.demos
}

// Destroy cancels the pending frame. Safe to call more than once.
func (g *Gallery) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	if g.frameID != 0 {
		g.host.CancelFrame(g.frameID)
		g.frameID = 0
	}
}

// Destroyed reports whether Destroy has run.
func (g *Gallery) Destroyed() bool {
	return g.destroyed
}
