package profile

import (
	"math"
	"runtime"

	"github.com/pthm-cable/chaos-swarm/config"
)

// Signals are the device capability readings a profile is derived from.
type Signals struct {
	Touch      bool    // coarse pointer input
	Cores      int     // logical processors
	MemoryGB   float64 // 0 when unknown
	ViewportW  float64 // logical pixels
	ViewportH  float64 // logical pixels
	PixelRatio float64 // device pixels per logical pixel
}

// Probe reads the host's capabilities, applying config overrides.
func Probe(cfg config.DeviceConfig, viewportW, viewportH, pixelRatio float64) Signals {
	cores := cfg.Cores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	mem := cfg.MemoryGB
	if mem <= 0 {
		mem = probeMemoryGB()
	}
	return Signals{
		Touch:      cfg.Touch,
		Cores:      cores,
		MemoryGB:   mem,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		PixelRatio: pixelRatio,
	}
}

// Geometry is the hero surface size derived from the viewport.
type Geometry struct {
	Width, Height float64 // logical pixels
	PixelRatio    float64 // applied scale, capped per input class
}

// SurfaceGeometry sizes the hero surface: full viewport width, a fraction
// of its height with a floor, and a pixel ratio capped lower on touch
// devices.
func SurfaceGeometry(sig Signals, cfg config.SurfaceConfig) Geometry {
	h := math.Max(sig.ViewportH*cfg.HeightFraction, cfg.MinHeight)

	ratio := sig.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	limit := cfg.MaxPixelRatio
	if sig.Touch {
		limit = cfg.MaxPixelRatioTouch
	}
	if limit > 0 {
		ratio = math.Min(ratio, limit)
	}

	return Geometry{Width: sig.ViewportW, Height: h, PixelRatio: ratio}
}
