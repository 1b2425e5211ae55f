package game

import (
	"log/slog"

	"github.com/pthm-cable/chaos-swarm/telemetry"
)

func (d *Driver) startTick() {
	if d.perf != nil {
		d.perf.StartTick()
	}
}

func (d *Driver) startPhase(phase string) {
	if d.perf != nil {
		d.perf.StartPhase(phase)
	}
}

func (d *Driver) endTick() {
	if d.perf != nil {
		d.perf.EndTick()
	}
}

// flushTelemetry checks if the stats window should be flushed and writes it.
func (d *Driver) flushTelemetry() {
	if d.collector == nil || !d.collector.ShouldFlush(d.tick) {
		return
	}

	d.speedBuf = d.swarm.Speeds(d.speedBuf[:0])
	stats := d.collector.Flush(d.tick, d.profile.Variant, d.profile.Class.String(), d.speedBuf)

	var perfStats telemetry.PerfStats
	if d.perf != nil {
		perfStats = d.perf.Stats()
	}

	if d.logStats {
		stats.LogStats()
		if d.perf != nil {
			perfStats.LogStats()
		}
	}

	if err := d.output.WriteSwarm(stats); err != nil {
		slog.Error("failed to write swarm stats", "error", err)
	}
	if d.perf != nil {
		if err := d.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// emit records a lifecycle event.
func (d *Driver) emit(t telemetry.EventType) {
	class := ""
	if d.profile != nil {
		class = d.profile.Class.String()
	}
	e := telemetry.NewEvent(t, d.tick, d.ParticleCount(), d.geometry.Width, d.geometry.Height, class)

	if d.collector != nil {
		d.collector.RecordEvent(e)
	}
	if d.logStats {
		e.LogEvent()
	}
	if err := d.output.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}
