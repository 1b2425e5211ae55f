// Package game runs the particle swarm: the frame-driven driver, its
// pause state machine, resize debouncing and the hosts it runs in.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/profile"
	"github.com/pthm-cable/chaos-swarm/renderer"
	"github.com/pthm-cable/chaos-swarm/systems"
	"github.com/pthm-cable/chaos-swarm/telemetry"
	"github.com/pthm-cable/chaos-swarm/ui"
)

// Options configures a Driver.
type Options struct {
	Config  *config.Config
	Variant profile.Variant
	Noise   systems.NoiseField // nil selects from config
	Rand    *rand.Rand         // nil seeds from the clock

	// Telemetry, all optional
	Perf      *telemetry.PerfCollector
	Collector *telemetry.SwarmCollector
	Output    *telemetry.OutputManager
	LogStats  bool
}

// Driver owns one swarm simulation: its surface, particles, noise field,
// profile snapshot and run state. All methods run on the host's single
// frame thread.
type Driver struct {
	host      Host
	surface   renderer.Surface
	indicator ui.Indicator

	cfg        *config.Config
	variant    profile.Variant
	heuristics profile.Heuristics

	noise    systems.NoiseField
	swarm    *systems.SwarmSystem
	profile  *profile.Profile
	geometry profile.Geometry

	run    *RunState
	resize *Debouncer

	tick       int64
	frameCount int64
	frameID    FrameID
	started    bool
	disposed   bool
	removers   []func()

	perf      *telemetry.PerfCollector
	collector *telemetry.SwarmCollector
	output    *telemetry.OutputManager
	logStats  bool
	speedBuf  []float64
}

// NewDriver sizes the surface from the host's viewport, derives the
// profile and creates the initial population. The driver does nothing
// until Start.
func NewDriver(host Host, surface renderer.Surface, indicator ui.Indicator, opts Options) (*Driver, error) {
	if surface == nil {
		return nil, errors.New("no render surface")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	noise := opts.Noise
	if noise == nil {
		noise = systems.NewNoiseField(cfg.Swarm.Noise, cfg.Swarm.NoiseSeed)
	}

	d := &Driver{
		host:       host,
		surface:    surface,
		indicator:  indicator,
		cfg:        cfg,
		variant:    opts.Variant,
		heuristics: profile.HeuristicsFromConfig(cfg.Device),
		noise:      noise,
		run:        NewRunState(host.Now(), cfg.Derived.PauseTimeout),
		resize:     NewDebouncer(cfg.Derived.ResizeDebounce),
		perf:       opts.Perf,
		collector:  opts.Collector,
		output:     opts.Output,
		logStats:   opts.LogStats,
	}

	sig := host.Signals()
	d.geometry = profile.SurfaceGeometry(sig, cfg.Surface)
	if err := surface.Resize(d.geometry.Width, d.geometry.Height, d.geometry.PixelRatio); err != nil {
		return nil, fmt.Errorf("sizing surface: %w", err)
	}
	d.profile = profile.Derive(d.variant, sig, d.heuristics)

	d.swarm = systems.NewSwarmSystem(noise, rng, cfg.Swarm, d.profile, d.bounds())
	d.swarm.Spawn(d.profile.ParticleCount, false)

	return d, nil
}

func (d *Driver) bounds() r3.Vec {
	return r3.Vec{X: d.geometry.Width, Y: d.geometry.Height}
}

// Start subscribes to the host's resize and activity events and schedules
// the first frame. Calling it again, or after Destroy, does nothing.
func (d *Driver) Start() {
	if d.started || d.disposed {
		return
	}
	d.started = true
	d.removers = append(d.removers,
		d.host.OnResize(d.Resize),
		d.host.OnActivity(d.Activity),
	)
	d.emit(telemetry.EventStart)
	d.frameID = d.host.RequestFrame(d.frame)
}

// frame is the scheduled callback: one tick, then the next request.
func (d *Driver) frame() {
	if d.disposed {
		return
	}
	d.frameID = 0
	d.Tick()
	if d.disposed {
		return
	}
	d.frameID = d.host.RequestFrame(d.frame)
}

// Tick runs one frame: apply a due resize, check for inactivity, then
// fade the trails and step and draw the particles unless paused.
func (d *Driver) Tick() {
	if d.disposed {
		return
	}
	now := d.host.Now()
	d.tick++
	d.startTick()

	d.startPhase(telemetry.PhaseReflow)
	if d.resize.Due(now) {
		d.applyResize()
	}

	if d.run.Tick(now) == EnteredPause {
		d.setIndicator(true)
		if d.disposed {
			return
		}
		d.emit(telemetry.EventPause)
	}
	if d.run.Paused() {
		if d.collector != nil {
			d.collector.RecordPausedTick()
		}
		d.startPhase(telemetry.PhaseTelemetry)
		d.flushTelemetry()
		d.endTick()
		return
	}

	p := d.profile
	w, h := d.surface.Size()

	d.startPhase(telemetry.PhaseFade)
	d.surface.Begin()
	d.surface.SetBlendMode(renderer.BlendNormal)
	d.surface.FillRect(0, 0, w, h, renderer.WithAlpha(d.cfg.Derived.TrailColor, p.TrailOpacity))
	d.surface.SetBlendMode(renderer.BlendAdditive)

	d.frameCount++
	if d.frameCount%int64(p.UpdateEvery) == 0 {
		d.startPhase(telemetry.PhaseStep)
		d.swarm.StepAll(float64(now.UnixNano()) / float64(time.Millisecond))
	}

	d.startPhase(telemetry.PhaseRender)
	d.swarm.RenderAll(d.surface)
	d.surface.SetBlendMode(renderer.BlendNormal)
	d.surface.End()

	d.startPhase(telemetry.PhaseTelemetry)
	if d.collector != nil {
		d.collector.RecordFrame(d.swarm.TakeStats())
	}
	d.flushTelemetry()
	d.endTick()
}

// Resize records a viewport change. The reflow happens on the first tick
// after the debounce period.
func (d *Driver) Resize() {
	if d.disposed {
		return
	}
	d.resize.Request(d.host.Now())
}

// applyResize re-derives the profile and surface size and reflows the
// swarm into the new bounds.
func (d *Driver) applyResize() {
	sig := d.host.Signals()
	geo := profile.SurfaceGeometry(sig, d.cfg.Surface)
	if err := d.surface.Resize(geo.Width, geo.Height, geo.PixelRatio); err != nil {
		slog.Warn("surface resize failed", "width", geo.Width, "height", geo.Height, "error", err)
		return
	}
	d.geometry = geo
	d.profile = profile.Derive(d.variant, sig, d.heuristics)
	d.swarm.SetProfile(d.profile)

	res := d.swarm.Reflow(d.bounds(), d.profile.ParticleCount)
	slog.Debug("swarm reflowed",
		"width", geo.Width,
		"height", geo.Height,
		"class", d.profile.Class,
		"particles", d.swarm.Count(),
		"reset", res.Reset,
		"added", res.Added,
		"removed", res.Removed,
	)
	d.emit(telemetry.EventResize)
}

// Activity records a user interaction and resumes a paused driver.
func (d *Driver) Activity() {
	if d.disposed {
		return
	}
	if d.run.Activity(d.host.Now()) == Resumed {
		d.setIndicator(false)
		if d.disposed {
			return
		}
		d.emit(telemetry.EventResume)
	}
}

// Paused reports whether the driver is paused for inactivity.
func (d *Driver) Paused() bool {
	return d.run.Paused()
}

// Destroy stops the frame loop and releases everything the driver holds.
// It is safe to call more than once and from inside a frame callback.
func (d *Driver) Destroy() {
	if d.disposed {
		return
	}
	d.emit(telemetry.EventDestroy)
	d.disposed = true

	if d.frameID != 0 {
		d.host.CancelFrame(d.frameID)
		d.frameID = 0
	}
	d.resize.Cancel()

	for _, remove := range d.removers {
		remove()
	}
	d.removers = nil

	if d.indicator != nil {
		if err := d.indicator.Remove(); err != nil {
			slog.Warn("failed to remove pause indicator", "error", err)
		}
		d.indicator = nil
	}

	d.swarm.Clear()
	d.swarm = nil
	d.surface = nil
	d.noise = nil
	d.profile = nil
	d.speedBuf = nil
}

// Disposed reports whether Destroy has run.
func (d *Driver) Disposed() bool {
	return d.disposed
}

// ParticleCount returns the live population, zero after Destroy.
func (d *Driver) ParticleCount() int {
	if d.swarm == nil {
		return 0
	}
	return d.swarm.Count()
}

// Profile returns the current tuning snapshot, nil after Destroy.
func (d *Driver) Profile() *profile.Profile {
	return d.profile
}

// Bounds returns the simulation bounds in logical pixels.
func (d *Driver) Bounds() r3.Vec {
	return d.bounds()
}

// Geometry returns the current surface geometry.
func (d *Driver) Geometry() profile.Geometry {
	return d.geometry
}

// Ticks returns the number of ticks run.
func (d *Driver) Ticks() int64 {
	return d.tick
}

// Swarm exposes the particle system, nil after Destroy.
func (d *Driver) Swarm() *systems.SwarmSystem {
	return d.swarm
}

func (d *Driver) setIndicator(visible bool) {
	if d.indicator == nil {
		return
	}
	var err error
	if visible {
		err = d.indicator.Show()
	} else {
		err = d.indicator.Hide()
	}
	if err != nil {
		slog.Warn("pause indicator update failed", "visible", visible, "error", err)
	}
}
