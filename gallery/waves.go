package gallery

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/renderer"
)

const (
	waveTimeStep = 0.15
	waveGrid     = 6
	waveMinAlpha = 0.08
)

// WaveSource is one circular wave emitter.
type WaveSource struct {
	Pos       r3.Vec
	Frequency float64
	Amplitude float64
}

// sourceOrbit describes how a source drifts around its anchor.
type sourceOrbit struct {
	anchor       r3.Vec // fraction of the surface size
	swayX, swayY float64
	rateX, rateY float64
}

var waveOrbits = [2]sourceOrbit{
	{anchor: r3.Vec{X: 0.3, Y: 0.4}, swayX: 20, swayY: 15, rateX: 0.3, rateY: 0.2},
	{anchor: r3.Vec{X: 0.7, Y: 0.6}, swayX: 18, swayY: 12, rateX: 0.25, rateY: 0.35},
}

// WaveInterference sums two drifting damped sine sources over a coarse
// grid and draws a dot per cell, cyan for crests and orange for troughs.
type WaveInterference struct {
	surf   renderer.Surface
	width  float64
	height float64
	time   float64

	sources [2]WaveSource
}

// NewWaveInterference sizes surf to a size×size square.
func NewWaveInterference(surf renderer.Surface, size, pixelRatio float64) (*WaveInterference, error) {
	if err := prepare(surf, size, pixelRatio); err != nil {
		return nil, err
	}
	w := &WaveInterference{surf: surf, width: size, height: size}
	w.sources[0] = WaveSource{Frequency: 0.08, Amplitude: 30}
	w.sources[1] = WaveSource{Frequency: 0.1, Amplitude: 25}
	for i, o := range waveOrbits {
		w.sources[i].Pos = r3.Vec{X: size * o.anchor.X, Y: size * o.anchor.Y}
	}
	return w, nil
}

// Name implements Demo.
func (w *WaveInterference) Name() string { return "waves" }

// Advance moves time forward one step and drifts the sources.
func (w *WaveInterference) Advance() {
	w.time += waveTimeStep
	for i, o := range waveOrbits {
		w.sources[i].Pos = r3.Vec{
			X: w.width*o.anchor.X + math.Sin(w.time*o.rateX)*o.swayX,
			Y: w.height*o.anchor.Y + math.Cos(w.time*o.rateY)*o.swayY,
		}
	}
}

// Amplitude returns the summed displacement at (x, y).
func (w *WaveInterference) Amplitude(x, y float64) float64 {
	sum := 0.0
	p := r3.Vec{X: x, Y: y}
	for _, s := range w.sources {
		d := r3.Norm(r3.Sub(p, s.Pos))
		sum += s.Amplitude * math.Sin(d*s.Frequency-w.time) / (d*0.03 + 1)
	}
	return sum
}

// Draw implements Demo.
func (w *WaveInterference) Draw() {
	s := w.surf
	s.Begin()
	defer s.End()
	s.Clear(transparent)

	w.Advance()
	for x := 0.0; x < w.width; x += waveGrid {
		for y := 0.0; y < w.height; y += waveGrid {
			amp := w.Amplitude(x, y)
			intensity := math.Abs(amp) / 40
			a := math.Min(intensity*0.6, 0.6)
			if a <= waveMinAlpha {
				continue
			}
			c := Orange
			if amp > 0 {
				c = Cyan
			}
			s.FillCircle(x, y, math.Max(1, intensity*3), alpha(c, a))
		}
	}
}

// Time returns the accumulated phase time.
func (w *WaveInterference) Time() float64 { return w.time }

// Sources returns the current emitters.
func (w *WaveInterference) Sources() [2]WaveSource { return w.sources }
