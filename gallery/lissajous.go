package gallery

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/renderer"
)

const (
	lissajousA      = 3
	lissajousB      = 2
	lissajousPhase  = math.Pi / 4
	lissajousScale  = 80
	lissajousTrail  = 500
	lissajousTimeDT = 0.025
)

// Lissajous traces x = sin(a·t), y = sin(b·t + φ) around the surface
// center with a two-tone fading trail.
type Lissajous struct {
	surf   renderer.Surface
	center r3.Vec
	time   float64
	point  r3.Vec
	trail  []r3.Vec
}

// NewLissajous sizes surf to a size×size square.
func NewLissajous(surf renderer.Surface, size, pixelRatio float64) (*Lissajous, error) {
	if err := prepare(surf, size, pixelRatio); err != nil {
		return nil, err
	}
	l := &Lissajous{surf: surf, center: r3.Vec{X: size / 2, Y: size / 2}}
	l.point = l.at(0)
	return l, nil
}

// Name implements Demo.
func (l *Lissajous) Name() string { return "lissajous" }

func (l *Lissajous) at(t float64) r3.Vec {
	return r3.Vec{
		X: l.center.X + lissajousScale*math.Sin(lissajousA*t),
		Y: l.center.Y + lissajousScale*math.Sin(lissajousB*t+lissajousPhase),
	}
}

// Advance moves the tracer one step and records it in the trail.
func (l *Lissajous) Advance() r3.Vec {
	l.time += lissajousTimeDT
	l.point = l.at(l.time)
	l.trail = pushTrail(l.trail, l.point, lissajousTrail)
	return l.point
}

// Draw implements Demo.
func (l *Lissajous) Draw() {
	s := l.surf
	s.Begin()
	defer s.End()
	s.Clear(transparent)

	pt := l.Advance()
	n := float64(len(l.trail))
	for i, p := range l.trail {
		mix := float64(i) / n
		c := Cyan
		if mix >= 0.5 {
			c = Orange
		}
		s.FillCircle(p.X, p.Y, 1.2, alpha(c, mix*0.8))
	}
	s.FillCircle(pt.X, pt.Y, 3, Orange)
}

// Point returns the current tracer position.
func (l *Lissajous) Point() r3.Vec { return l.point }

// Trail returns recent tracer positions, oldest first.
func (l *Lissajous) Trail() []r3.Vec { return l.trail }
