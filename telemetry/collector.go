package telemetry

import "github.com/pthm-cable/chaos-swarm/systems"

// SwarmCollector accumulates swarm counters within windows of ticks and
// produces WindowStats.
type SwarmCollector struct {
	windowTicks     int64
	tickSeconds     float64
	windowStartTick int64

	swarm       systems.SwarmStats
	frames      int
	pausedTicks int
	resizes     int
}

// NewSwarmCollector creates a collector flushing every windowSec seconds
// of ticks at the given tick rate.
func NewSwarmCollector(windowSec float64, ticksPerSec int) *SwarmCollector {
	if ticksPerSec < 1 {
		ticksPerSec = 60
	}
	ticks := int64(windowSec * float64(ticksPerSec))
	if ticks < 1 {
		ticks = 1
	}
	return &SwarmCollector{
		windowTicks: ticks,
		tickSeconds: 1 / float64(ticksPerSec),
	}
}

// RecordFrame records a tick that ran the simulation, with the swarm
// counters it produced.
func (c *SwarmCollector) RecordFrame(s systems.SwarmStats) {
	c.frames++
	c.swarm.Steps += s.Steps
	c.swarm.Expired += s.Expired
	c.swarm.Escaped += s.Escaped
	c.swarm.Wrapped += s.Wrapped
	c.swarm.RenderFailures += s.RenderFailures
}

// RecordPausedTick records a tick skipped because the driver was paused.
func (c *SwarmCollector) RecordPausedTick() {
	c.pausedTicks++
}

// RecordEvent records a lifecycle event.
func (c *SwarmCollector) RecordEvent(e Event) {
	if e.Type == EventResize {
		c.resizes++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *SwarmCollector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds are the planar speeds of the live particles at window end.
func (c *SwarmCollector) Flush(tick int64, variant, class string, speeds []float64) WindowStats {
	mean, std, p50, p90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		ElapsedSec:      float64(tick) * c.tickSeconds,
		Variant:         variant,
		Class:           class,
		Particles:       len(speeds),
		Steps:           c.swarm.Steps,
		Expired:         c.swarm.Expired,
		Escaped:         c.swarm.Escaped,
		Wrapped:         c.swarm.Wrapped,
		RenderFailures:  c.swarm.RenderFailures,
		Frames:          c.frames,
		PausedTicks:     c.pausedTicks,
		Resizes:         c.resizes,
		SpeedMean:       mean,
		SpeedStd:        std,
		SpeedP50:        p50,
		SpeedP90:        p90,
	}

	c.windowStartTick = tick
	c.swarm = systems.SwarmStats{}
	c.frames = 0
	c.pausedTicks = 0
	c.resizes = 0

	return stats
}
