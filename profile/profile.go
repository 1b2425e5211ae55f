// Package profile derives the swarm's tuning from device capabilities.
//
// Selection is a pure function of the device signals and a variant: it
// returns one of a closed set of classes, each mapped to an immutable
// Profile. Callers swap the whole *Profile on viewport changes.
package profile

import (
	"fmt"
	"math"

	"github.com/pthm-cable/chaos-swarm/config"
)

// Class identifies a device capability bucket.
type Class uint8

const (
	ClassFull Class = iota
	ClassConstrained
)

func (c Class) String() string {
	switch c {
	case ClassFull:
		return "full"
	case ClassConstrained:
		return "constrained"
	}
	return "unknown"
}

// ClassByName parses a class name.
func ClassByName(name string) (Class, bool) {
	switch name {
	case "full":
		return ClassFull, true
	case "constrained":
		return ClassConstrained, true
	}
	return ClassFull, false
}

// Boundary is what a particle does when a step carries it out of bounds.
type Boundary uint8

const (
	// BoundaryReset wraps to the opposite edge and then respawns the
	// particle, which keeps the swarm visually centered.
	BoundaryReset Boundary = iota
	// BoundaryWrap silently wraps both axes and keeps velocity and age.
	BoundaryWrap
)

func (b Boundary) String() string {
	if b == BoundaryWrap {
		return "wrap"
	}
	return "reset"
}

// ParseBoundary parses a boundary policy name.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "reset":
		return BoundaryReset, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return BoundaryReset, fmt.Errorf("unknown boundary policy %q", s)
}

// Named variants shipped in the default config.
const (
	VariantDesktopHero = "desktop-hero"
	VariantGallery     = "gallery"
)

// Bundle is the raw tuning of one class within a variant.
type Bundle struct {
	AreaPerParticle float64
	MaxParticles    int
	UpdateEvery     int
	RandomForce     float64
	TrailOpacity    float64
	NoiseGain       float64
	Damping         float64
	TimeScale       float64
	MaxVelocity     float64
	PositionScale   float64
}

// Variant is a named tuning set with its boundary policy.
type Variant struct {
	Name     string
	Boundary Boundary
	Bundles  [2]Bundle // indexed by Class
}

// VariantByName builds the named variant from config.
func VariantByName(cfg *config.Config, name string) (Variant, error) {
	vc, ok := cfg.Variant(name)
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant %q", name)
	}
	boundary, err := ParseBoundary(vc.Boundary)
	if err != nil {
		return Variant{}, fmt.Errorf("variant %q: %w", name, err)
	}
	v := Variant{Name: name, Boundary: boundary}
	v.Bundles[ClassFull] = bundleFromConfig(vc.Full)
	v.Bundles[ClassConstrained] = bundleFromConfig(vc.Constrained)
	return v, nil
}

func bundleFromConfig(b config.BundleConfig) Bundle {
	return Bundle{
		AreaPerParticle: b.AreaPerParticle,
		MaxParticles:    b.MaxParticles,
		UpdateEvery:     b.UpdateEvery,
		RandomForce:     b.RandomForce,
		TrailOpacity:    b.TrailOpacity,
		NoiseGain:       b.NoiseGain,
		Damping:         b.Damping,
		TimeScale:       b.TimeScale,
		MaxVelocity:     b.MaxVelocity,
		PositionScale:   b.PositionScale,
	}
}

// Profile is an immutable snapshot of the simulation tunables.
type Profile struct {
	Variant  string
	Class    Class
	Boundary Boundary

	ParticleCount int     // Target population
	UpdateEvery   int     // Step particles every Nth frame
	RandomForce   float64 // Random impulse magnitude
	TrailOpacity  float64 // Alpha of the trail fill
	NoiseGain     float64 // Weight of the noise sample in forcing
	Damping       float64 // Velocity multiplier per step
	TimeScale     float64 // Noise time flow multiplier
	MaxVelocity   float64 // Velocity magnitude cap
	PositionScale float64 // Displacement per unit velocity
}

// Heuristics holds the thresholds used to classify a device.
type Heuristics struct {
	Force            string // "" = detect
	LowEndCores      int
	LowEndMemoryGB   float64
	SmallScreenWidth float64
}

// HeuristicsFromConfig extracts classification thresholds from config.
func HeuristicsFromConfig(cfg config.DeviceConfig) Heuristics {
	return Heuristics{
		Force:            cfg.Class,
		LowEndCores:      cfg.LowEndCores,
		LowEndMemoryGB:   cfg.LowEndMemoryGB,
		SmallScreenWidth: cfg.SmallScreenWidth,
	}
}

// Classify buckets a device. Touch or small screens and low-end hardware
// (few cores, or little memory when memory is known) are constrained.
func Classify(sig Signals, h Heuristics) Class {
	if c, ok := ClassByName(h.Force); ok {
		return c
	}
	if sig.Touch || (h.SmallScreenWidth > 0 && sig.ViewportW <= h.SmallScreenWidth) {
		return ClassConstrained
	}
	if sig.Cores > 0 && sig.Cores <= h.LowEndCores {
		return ClassConstrained
	}
	if sig.MemoryGB > 0 && sig.MemoryGB <= h.LowEndMemoryGB {
		return ClassConstrained
	}
	return ClassFull
}

// Derive selects the profile for a device. It has no hidden state.
func Derive(v Variant, sig Signals, h Heuristics) *Profile {
	class := Classify(sig, h)
	b := v.Bundles[class]
	return &Profile{
		Variant:       v.Name,
		Class:         class,
		Boundary:      v.Boundary,
		ParticleCount: ParticleCount(b, sig.ViewportW*sig.ViewportH),
		UpdateEvery:   max(b.UpdateEvery, 1),
		RandomForce:   b.RandomForce,
		TrailOpacity:  b.TrailOpacity,
		NoiseGain:     b.NoiseGain,
		Damping:       b.Damping,
		TimeScale:     b.TimeScale,
		MaxVelocity:   b.MaxVelocity,
		PositionScale: b.PositionScale,
	}
}

// ParticleCount scales the population with viewport area up to the cap.
func ParticleCount(b Bundle, area float64) int {
	if area <= 0 || b.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(area / b.AreaPerParticle))
	return min(n, b.MaxParticles)
}
