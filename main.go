package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/gallery"
	"github.com/pthm-cable/chaos-swarm/game"
	"github.com/pthm-cable/chaos-swarm/profile"
	"github.com/pthm-cable/chaos-swarm/renderer"
	"github.com/pthm-cable/chaos-swarm/telemetry"
	"github.com/pthm-cable/chaos-swarm/ui"
)

// runOptions carries the parsed command line.
type runOptions struct {
	maxTicks  int
	keepAlive bool
	seed      int64
	opts      game.Options
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics on a software canvas")
	variantName := flag.String("variant", "", "Swarm variant: desktop-hero or gallery (empty = use config)")
	noiseKind := flag.String("noise", "", "Noise field: simplex or opensimplex (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	keepAlive := flag.Bool("keep-alive", false, "Report activity every tick so the swarm never pauses")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variantName != "" {
		cfg.Swarm.Variant = *variantName
	}
	if *noiseKind != "" {
		cfg.Swarm.Noise = *noiseKind
	}

	variant, err := profile.VariantByName(cfg, cfg.Swarm.Variant)
	if err != nil {
		slog.Error("invalid variant", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	run := runOptions{
		maxTicks:  *maxTicks,
		keepAlive: *keepAlive,
		seed:      rngSeed,
		opts: game.Options{
			Config:    cfg,
			Variant:   variant,
			Rand:      rand.New(rand.NewSource(rngSeed)),
			Perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
			Collector: telemetry.NewSwarmCollector(cfg.Telemetry.StatsWindow, cfg.Screen.TargetFPS),
			Output:    output,
			LogStats:  *logStats,
		},
	}

	if *headless {
		err = runHeadless(cfg, run)
	} else {
		err = runWindowed(cfg, run)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the swarm on a manual clock at the target frame
// rate, as fast as the CPU allows.
func runHeadless(cfg *config.Config, run runOptions) error {
	sig := profile.Probe(cfg.Device, float64(cfg.Screen.Width), float64(cfg.Screen.Height), 1)
	host := game.NewManualHost(time.Now(), sig)

	canvas, err := renderer.NewCanvas(float64(cfg.Screen.Width), float64(cfg.Screen.Height), 1)
	if err != nil {
		return fmt.Errorf("creating canvas: %w", err)
	}
	driver, err := game.NewDriver(host, canvas, &ui.MemoryIndicator{}, run.opts)
	if err != nil {
		return err
	}
	defer driver.Destroy()

	slog.Info("starting headless simulation",
		"seed", run.seed,
		"max_ticks", run.maxTicks,
		"keep_alive", run.keepAlive,
		"driver", driver,
	)

	frame := time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	driver.Start()
	for {
		host.Advance(frame)
		if run.keepAlive {
			host.EmitActivity()
		}
		host.RunFrame()

		if run.maxTicks > 0 && int(driver.Ticks()) >= run.maxTicks {
			slog.Info("max ticks reached", "tick", driver.Ticks(), "particles", driver.ParticleCount())
			return nil
		}
	}
}

// runWindowed shows the swarm and the physics gallery in a raylib window.
func runWindowed(cfg *config.Config, run runOptions) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	host := game.NewRaylibHost(cfg.Device)
	geo := profile.SurfaceGeometry(host.Signals(), cfg.Surface)

	surface, err := renderer.NewScreenSurface(geo.Width, geo.Height, geo.PixelRatio)
	if err != nil {
		return err
	}
	defer surface.Unload()

	indicator := ui.NewPauseIndicator()
	driver, err := game.NewDriver(host, surface, indicator, run.opts)
	if err != nil {
		return err
	}
	defer driver.Destroy()

	// The gallery is optional: without it the swarm still runs.
	showGallery := true
	size := cfg.Gallery.Size
	demoSurfaces, demos, err := newGalleryDemos(func() (*renderer.ScreenSurface, error) {
		return renderer.NewScreenSurface(size, size, geo.PixelRatio)
	}, unloadSurface, size, geo.PixelRatio)
	if err != nil {
		slog.Warn("gallery unavailable", "error", err)
		showGallery = false
	} else {
		defer func() {
			for _, s := range demoSurfaces {
				unloadSurface(s)
			}
		}()
		gal := gallery.NewGallery(host, demos...)
		defer gal.Destroy()
		gal.Start()
	}

	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(int32(cfg.Screen.Width)-220, 10)
	showPerf := false

	driver.Start()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyF3) {
			showPerf = !showPerf
		}
		if rl.IsKeyPressed(rl.KeyG) && demoSurfaces != nil {
			showGallery = !showGallery
		}

		host.Poll()
		host.RunFrames()
		indicator.Update(rl.GetFrameTime())
		run.opts.Perf.RecordFrame()

		screenW := int32(rl.GetScreenWidth())
		screenH := int32(rl.GetScreenHeight())

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 15, G: 20, B: 30, A: 255})

		surface.Present(0, 0)
		if showGallery {
			_, heroH := surface.Size()
			size := float32(cfg.Gallery.Size)
			x := (float32(screenW) - 3*size - 40) / 2
			for _, s := range demoSurfaces {
				s.Present(x, float32(heroH)+20)
				x += size + 20
			}
		}
		indicator.Draw(screenW, 0)

		p := driver.Profile()
		hud.Draw(ui.HUDData{
			Title:     cfg.Screen.Title,
			Variant:   p.Variant,
			Class:     p.Class.String(),
			Particles: driver.ParticleCount(),
			Tick:      driver.Ticks(),
			FPS:       rl.GetFPS(),
			Paused:    driver.Paused(),
		})
		if showPerf {
			perfPanel.SetPosition(screenW-220, 10)
			perfPanel.Draw(run.opts.Perf.Stats())
		}
		hud.DrawControls(screenH, "[F3] perf  [G] gallery  [Esc] quit")

		rl.EndDrawing()

		if run.maxTicks > 0 && int(driver.Ticks()) >= run.maxTicks {
			break
		}
	}
	return nil
}

// newGalleryDemos creates the three gallery demos, each on a surface from
// create. On error every surface already created is passed to release.
func newGalleryDemos[S renderer.Surface](create func() (S, error), release func(S), size, pixelRatio float64) (surfaces []S, demos []gallery.Demo, err error) {
	defer func() {
		if err != nil {
			for _, s := range surfaces {
				release(s)
			}
			surfaces, demos = nil, nil
		}
	}()

	for range 3 {
		s, err := create()
		if err != nil {
			return surfaces, nil, fmt.Errorf("creating gallery surface: %w", err)
		}
		surfaces = append(surfaces, s)
	}

	pendulum, err := gallery.NewDoublePendulum(surfaces[0], size, pixelRatio)
	if err != nil {
		return surfaces, nil, err
	}
	waves, err := gallery.NewWaveInterference(surfaces[1], size, pixelRatio)
	if err != nil {
		return surfaces, nil, err
	}
	lissajous, err := gallery.NewLissajous(surfaces[2], size, pixelRatio)
	if err != nil {
		return surfaces, nil, err
	}
	return surfaces, []gallery.Demo{pendulum, waves, lissajous}, nil
}

func unloadSurface(s *renderer.ScreenSurface) {
	s.Unload()
}
