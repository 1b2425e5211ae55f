package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated swarm statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	ElapsedSec      float64 `csv:"elapsed"`

	Variant   string `csv:"variant"`
	Class     string `csv:"class"`
	Particles int    `csv:"particles"`

	// Step outcomes during the window
	Steps          int `csv:"steps"`
	Expired        int `csv:"expired"`
	Escaped        int `csv:"escaped"`
	Wrapped        int `csv:"wrapped"`
	RenderFailures int `csv:"render_failures"`

	// Driver state during the window
	Frames      int `csv:"frames"`
	PausedTicks int `csv:"paused_ticks"`
	Resizes     int `csv:"resizes"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats returns mean, sample standard deviation and the
// median and 90th percentile of speeds. values is not modified.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("elapsed", s.ElapsedSec),
		slog.String("variant", s.Variant),
		slog.String("class", s.Class),
		slog.Int("particles", s.Particles),
		slog.Int("steps", s.Steps),
		slog.Int("expired", s.Expired),
		slog.Int("escaped", s.Escaped),
		slog.Int("wrapped", s.Wrapped),
		slog.Int("render_failures", s.RenderFailures),
		slog.Int("frames", s.Frames),
		slog.Int("paused_ticks", s.PausedTicks),
		slog.Int("resizes", s.Resizes),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"elapsed", s.ElapsedSec,
		"variant", s.Variant,
		"class", s.Class,
		"particles", s.Particles,
		"steps", s.Steps,
		"expired", s.Expired,
		"escaped", s.Escaped,
		"wrapped", s.Wrapped,
		"render_failures", s.RenderFailures,
		"paused_ticks", s.PausedTicks,
		"resizes", s.Resizes,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
	)
}
