package gallery

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/renderer"
)

const (
	pendulumMass    = 10.0
	pendulumLength  = 60.0
	pendulumGravity = 5.0
	pendulumDT      = 0.08
	pendulumTrail   = 60
)

// DoublePendulum integrates two equal point masses on rigid arms with
// explicit Euler steps and draws a fading trail behind the lower bob.
type DoublePendulum struct {
	surf   renderer.Surface
	width  float64
	height float64

	m1, m2 float64
	l1, l2 float64
	g      float64

	a1, a2   float64 // angles from vertical
	v1, v2   float64 // angular velocities
	center   r3.Vec
	bob1     r3.Vec
	bob2     r3.Vec
	trail    []r3.Vec
	maxTrail int
}

// NewDoublePendulum sizes surf to a size×size square and starts the
// upper arm just past horizontal.
func NewDoublePendulum(surf renderer.Surface, size, pixelRatio float64) (*DoublePendulum, error) {
	if err := prepare(surf, size, pixelRatio); err != nil {
		return nil, err
	}
	p := &DoublePendulum{
		surf:     surf,
		width:    size,
		height:   size,
		m1:       pendulumMass,
		m2:       pendulumMass,
		l1:       pendulumLength,
		l2:       pendulumLength,
		g:        pendulumGravity,
		a1:       math.Pi/2 + 0.1,
		a2:       math.Pi / 2,
		center:   r3.Vec{X: size / 2, Y: size / 3},
		maxTrail: pendulumTrail,
	}
	p.bob1, p.bob2 = p.positions()
	return p, nil
}

// Name implements Demo.
func (p *DoublePendulum) Name() string { return "pendulum" }

// Update advances the pendulum one step and returns the bob positions.
func (p *DoublePendulum) Update() (r3.Vec, r3.Vec) {
	m1, m2, l1, l2, g := p.m1, p.m2, p.l1, p.l2, p.g
	d := p.a1 - p.a2
	sinD, cosD := math.Sin(d), math.Cos(d)

	num1 := -m2 * l1 * p.v1 * p.v1 * sinD * cosD
	num2 := -m2 * g * math.Sin(p.a2) * cosD
	num3 := -m2 * l2 * p.v2 * p.v2 * sinD
	num4 := -(m1 + m2) * g * math.Sin(p.a1)
	den1 := l1 * (m1 + m2 - m2*cosD*cosD)
	acc1 := (num1 + num2 + num3 + num4) / den1

	num5 := -m2 * l2 * p.v2 * p.v2 * sinD * cosD
	num6 := (m1 + m2) * g * math.Sin(p.a1) * cosD
	num7 := (m1 + m2) * l1 * p.v1 * p.v1 * sinD
	num8 := -(m1 + m2) * g * math.Sin(p.a2)
	den2 := l2 * (m1 + m2 - m2*cosD*cosD)
	acc2 := (num5 + num6 + num7 + num8) / den2

	p.v1 += acc1 * pendulumDT
	p.v2 += acc2 * pendulumDT
	p.a1 += p.v1 * pendulumDT
	p.a2 += p.v2 * pendulumDT

	p.bob1, p.bob2 = p.positions()
	p.trail = pushTrail(p.trail, p.bob2, p.maxTrail)
	return p.bob1, p.bob2
}

func (p *DoublePendulum) positions() (r3.Vec, r3.Vec) {
	b1 := r3.Vec{
		X: p.center.X + p.l1*math.Sin(p.a1),
		Y: p.center.Y + p.l1*math.Cos(p.a1),
	}
	b2 := r3.Vec{
		X: b1.X + p.l2*math.Sin(p.a2),
		Y: b1.Y + p.l2*math.Cos(p.a2),
	}
	return b1, b2
}

// Draw implements Demo.
func (p *DoublePendulum) Draw() {
	s := p.surf
	s.Begin()
	defer s.End()
	s.Clear(transparent)

	b1, b2 := p.Update()

	n := float64(len(p.trail))
	for i, pt := range p.trail {
		s.FillCircle(pt.X, pt.Y, 1.5, alpha(Cyan, float64(i)/n*0.6))
	}

	arm := alpha(Orange, 0.8)
	s.StrokeLine(p.center.X, p.center.Y, b1.X, b1.Y, 2, arm)
	s.StrokeLine(b1.X, b1.Y, b2.X, b2.Y, 2, arm)
	s.FillCircle(b1.X, b1.Y, 4, arm)
	s.FillCircle(b2.X, b2.Y, 4, arm)
}

// Angles returns the current arm angles.
func (p *DoublePendulum) Angles() (float64, float64) { return p.a1, p.a2 }

// Bobs returns the current bob positions.
func (p *DoublePendulum) Bobs() (r3.Vec, r3.Vec) { return p.bob1, p.bob2 }

// Center returns the pivot.
func (p *DoublePendulum) Center() r3.Vec { return p.center }

// Trail returns the lower bob's recent positions, oldest first.
func (p *DoublePendulum) Trail() []r3.Vec { return p.trail }

// pushTrail appends pt and drops the oldest points beyond limit.
func pushTrail(trail []r3.Vec, pt r3.Vec, limit int) []r3.Vec {
	trail = append(trail, pt)
	if over := len(trail) - limit; over > 0 {
		n := copy(trail, trail[over:])
		trail = trail[:n]
	}
	return trail
}
