package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kinematics holds a particle's position, the position it had before its
// last step, and its velocity. Only X and Y are simulated; Z stays zero.
type Kinematics struct {
	Pos   r3.Vec
	Trail r3.Vec
	Vel   r3.Vec
}

// Speed2D returns the planar speed.
func (k *Kinematics) Speed2D() float64 {
	return math.Sqrt(k.Vel.X*k.Vel.X + k.Vel.Y*k.Vel.Y)
}

// AddScalar adds s to every component of v.
func AddScalar(v r3.Vec, s float64) r3.Vec {
	return r3.Vec{X: v.X + s, Y: v.Y + s, Z: v.Z + s}
}

// SubScalar subtracts s from every component of v.
func SubScalar(v r3.Vec, s float64) r3.Vec {
	return r3.Vec{X: v.X - s, Y: v.Y - s, Z: v.Z - s}
}

// Mul multiplies a and b component-wise.
func Mul(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Distance2D is the Euclidean distance between a and b ignoring Z.
func Distance2D(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// InBounds2D reports whether p lies within [0, bounds] on X and Y.
func InBounds2D(p, bounds r3.Vec) bool {
	return p.X >= 0 && p.X <= bounds.X && p.Y >= 0 && p.Y <= bounds.Y
}

// Wrap2D moves p to the opposite edge on the first axis found outside
// [0, bounds] and reports whether it did. Only one edge is handled per
// call, so callers that keep the particle must use WrapAll2D.
func Wrap2D(p *r3.Vec, bounds r3.Vec) bool {
	switch {
	case p.X > bounds.X:
		p.X = 0
	case p.X < 0:
		p.X = bounds.X
	case p.Y > bounds.Y:
		p.Y = 0
	case p.Y < 0:
		p.Y = bounds.Y
	default:
		return false
	}
	return true
}

// WrapAll2D wraps both axes of p into [0, bounds] and reports whether
// either axis moved.
func WrapAll2D(p *r3.Vec, bounds r3.Vec) bool {
	wrapped := false
	if p.X > bounds.X {
		p.X = 0
		wrapped = true
	} else if p.X < 0 {
		p.X = bounds.X
		wrapped = true
	}
	if p.Y > bounds.Y {
		p.Y = 0
		wrapped = true
	} else if p.Y < 0 {
		p.Y = bounds.Y
		wrapped = true
	}
	return wrapped
}
