// Terminal swarm preview - runs the swarm on the software canvas and shows
// it with half-block cells.
//
// Usage: go run ./cmd/swarmterm [-variant gallery] [-seed 1]
//
// Any key or mouse input counts as activity; q, Esc or Ctrl-C quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/game"
	"github.com/pthm-cable/chaos-swarm/profile"
	"github.com/pthm-cable/chaos-swarm/renderer"
	"github.com/pthm-cable/chaos-swarm/ui"
)

// Logical pixels per terminal cell. Each cell shows two device pixels
// stacked vertically.
const (
	cellW = 8.0
	cellH = 16.0
)

func main() {
	configPath := flag.String("config", "", "Path to config file (empty = use embedded defaults)")
	variantName := flag.String("variant", "", "Swarm variant (empty = config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write JSON logs to this file")
	flag.Parse()

	if err := run(*configPath, *variantName, *seed, *fps, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "swarmterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, variantName string, seed int64, fps int, logPath string) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// The terminal is the whole hero: no height fraction or floor.
	cfg.Surface.HeightFraction = 1
	cfg.Surface.MinHeight = 0

	if variantName == "" {
		variantName = cfg.Swarm.Variant
	}
	variant, err := profile.VariantByName(cfg, variantName)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	sig := profile.Probe(cfg.Device, float64(cols)*cellW, float64(rows)*cellH, 1/cellW)
	host := game.NewManualHost(time.Now(), sig)

	canvas, err := renderer.NewCanvas(sig.ViewportW, sig.ViewportH, sig.PixelRatio)
	if err != nil {
		return err
	}
	indicator := &ui.MemoryIndicator{}
	driver, err := game.NewDriver(host, canvas, indicator, game.Options{
		Config:  cfg,
		Variant: variant,
		Rand:    rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return err
	}
	defer driver.Destroy()

	slog.Info("swarmterm started", "cols", cols, "rows", rows, "variant", variant.Name, "seed", seed, "driver", driver)

	presenter := renderer.NewTermPresenter(screen)
	driver.Start()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				host.EmitActivity()
			case *tcell.EventMouse:
				host.EmitActivity()
			case *tcell.EventResize:
				screen.Sync()
				c, r := ev.Size()
				host.SetViewport(float64(c)*cellW, float64(r)*cellH)
			}

		case now := <-ticker.C:
			host.Advance(now.Sub(last))
			last = now
			host.RunFrame()
			presenter.Present(canvas.Image())
			if indicator.Visible {
				drawBanner(screen, ui.PauseMessage)
			}
			drawStatus(screen, fmt.Sprintf(" %s  %d particles  %s ", variant.Name, driver.ParticleCount(), driver.Profile().Class))
			screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// drawBanner centers msg on the top row.
func drawBanner(screen tcell.Screen, msg string) {
	cols, _ := screen.Size()
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(255, 255, 255)).
		Background(tcell.NewRGBColor(45, 60, 85))
	drawText(screen, (cols-len(msg))/2, 0, msg, style)
}

// drawStatus writes a one-line status at the bottom left.
func drawStatus(screen tcell.Screen, msg string) {
	_, rows := screen.Size()
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(180, 190, 210)).
		Background(tcell.NewRGBColor(26, 35, 50))
	drawText(screen, 0, rows-1, msg, style)
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
