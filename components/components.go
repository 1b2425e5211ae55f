// Package components defines ECS components for the particle swarm.
package components

import "math"

// Life tracks a particle's age against its lifespan, both in steps.
type Life struct {
	Age     float64
	MaxLife float64
}

// Ratio returns how far through its lifespan the particle is.
func (l *Life) Ratio() float64 {
	if l.MaxLife <= 0 {
		return 1
	}
	return l.Age / l.MaxLife
}

// Expired reports whether the particle has outlived its lifespan.
func (l *Life) Expired() bool {
	return l.Age > l.MaxLife
}

// Tint holds a particle's color phase.
type Tint struct {
	Hue float64 // degrees, [0, 360)
}

// Advance moves the hue forward by step degrees, wrapping at 360.
func (t *Tint) Advance(step float64) {
	t.Hue = math.Mod(t.Hue+step, 360)
}
