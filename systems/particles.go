package systems

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/components"
	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/profile"
	"github.com/pthm-cable/chaos-swarm/renderer"
)

// StepResult reports what a single particle step did.
type StepResult uint8

const (
	// Moved means the particle integrated normally and stayed in bounds.
	Moved StepResult = iota
	// Expired means the particle outlived its lifespan and was reset.
	Expired
	// Escaped means the particle left the bounds and was reset.
	Escaped
	// Wrapped means the particle left the bounds and was wrapped back in.
	Wrapped
)

// SwarmStats counts step outcomes since the last TakeStats.
type SwarmStats struct {
	Steps          int
	Expired        int
	Escaped        int
	Wrapped        int
	RenderFailures int
}

// SwarmSystem owns the particle entities and integrates and draws them.
type SwarmSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Kinematics, components.Life, components.Tint]
	filter *ecs.Filter3[components.Kinematics, components.Life, components.Tint]

	noise   NoiseField
	rng     *rand.Rand
	params  config.SwarmConfig
	profile *profile.Profile
	bounds  r3.Vec

	count int
	stats SwarmStats

	// scratch buffer reused across render calls
	stops [3]renderer.GradientStop
}

// NewSwarmSystem creates an empty swarm inside bounds.
func NewSwarmSystem(noise NoiseField, rng *rand.Rand, params config.SwarmConfig, p *profile.Profile, bounds r3.Vec) *SwarmSystem {
	world := ecs.NewWorld()
	return &SwarmSystem{
		world:   world,
		mapper:  ecs.NewMap3[components.Kinematics, components.Life, components.Tint](world),
		filter:  ecs.NewFilter3[components.Kinematics, components.Life, components.Tint](world),
		noise:   noise,
		rng:     rng,
		params:  params,
		profile: p,
		bounds:  bounds,
	}
}

// Count returns the number of live particles.
func (s *SwarmSystem) Count() int {
	return s.count
}

// Bounds returns the simulation bounds.
func (s *SwarmSystem) Bounds() r3.Vec {
	return s.bounds
}

// SetProfile swaps the tuning snapshot used by subsequent steps.
func (s *SwarmSystem) SetProfile(p *profile.Profile) {
	s.profile = p
}

// Profile returns the active tuning snapshot.
func (s *SwarmSystem) Profile() *profile.Profile {
	return s.profile
}

// TakeStats returns the counters accumulated since the last call and
// zeroes them.
func (s *SwarmSystem) TakeStats() SwarmStats {
	st := s.stats
	s.stats = SwarmStats{}
	return st
}

// Spawn adds n fresh particles. With randomAge each starts part way
// through its lifespan so a batch does not expire together.
func (s *SwarmSystem) Spawn(n int, randomAge bool) {
	for i := 0; i < n; i++ {
		var kin components.Kinematics
		var life components.Life
		var tint components.Tint
		s.reset(&kin, &life, &tint)
		if randomAge {
			life.Age = s.rng.Float64() * life.MaxLife
		}
		s.mapper.NewEntity(&kin, &life, &tint)
		s.count++
	}
}

// Clear removes every particle.
func (s *SwarmSystem) Clear() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.mapper.Remove(e)
	}
	s.count = 0
}

// reset re-seeds a particle at a random in-bounds position at rest.
func (s *SwarmSystem) reset(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
	kin.Pos = r3.Vec{X: s.rng.Float64() * s.bounds.X, Y: s.rng.Float64() * s.bounds.Y}
	kin.Trail = kin.Pos
	kin.Vel = r3.Vec{}
	life.Age = 0
	life.MaxLife = s.params.MinLife + s.rng.Float64()*(s.params.MaxLife-s.params.MinLife)
	tint.Hue = s.rng.Float64() * 360
}

// Step advances one particle by one scheduled step at wall-clock nowMs.
func (s *SwarmSystem) Step(kin *components.Kinematics, life *components.Life, tint *components.Tint, nowMs float64) StepResult {
	life.Age++
	if life.Expired() {
		s.reset(kin, life, tint)
		return Expired
	}

	p := s.profile
	kin.Vel = r3.Scale(p.Damping, kin.Vel)

	nx := kin.Pos.X * s.params.NoiseScale
	ny := kin.Pos.Y * s.params.NoiseScale
	nt := nowMs * p.TimeScale / s.params.TimeDivisor

	angle := s.rng.Float64() * 2 * math.Pi
	impulse := s.rng.Float64() * p.RandomForce / s.params.RandomForceDivisor

	kin.Vel.X += impulse*math.Sin(angle) + s.noise.Sample(nx, ny, -nt)*p.NoiseGain
	kin.Vel.Y += impulse*math.Cos(angle) + s.noise.Sample(nx, ny, nt)*p.NoiseGain

	speed2 := kin.Vel.X*kin.Vel.X + kin.Vel.Y*kin.Vel.Y
	if speed2 > p.MaxVelocity*p.MaxVelocity {
		kin.Vel = r3.Scale(p.MaxVelocity/math.Sqrt(speed2), kin.Vel)
	}

	kin.Trail = kin.Pos
	kin.Pos = r3.Add(kin.Pos, r3.Vec{X: kin.Vel.X * p.PositionScale, Y: kin.Vel.Y * p.PositionScale})

	result := Moved
	switch p.Boundary {
	case profile.BoundaryReset:
		if components.Wrap2D(&kin.Pos, s.bounds) {
			s.reset(kin, life, tint)
			result = Escaped
		}
	case profile.BoundaryWrap:
		if components.WrapAll2D(&kin.Pos, s.bounds) {
			result = Wrapped
		}
	}

	tint.Advance(s.params.HueStep)
	return result
}

// StepAll steps every particle once at the same timestamp.
func (s *SwarmSystem) StepAll(nowMs float64) {
	query := s.filter.Query()
	for query.Next() {
		kin, life, tint := query.Get()
		switch s.Step(kin, life, tint, nowMs) {
		case Expired:
			s.stats.Expired++
		case Escaped:
			s.stats.Escaped++
		case Wrapped:
			s.stats.Wrapped++
		}
		s.stats.Steps++
	}
}

// Render draws one particle as an additive glow. Particles far outside
// the bounds are culled.
func (s *SwarmSystem) Render(surf renderer.Surface, kin *components.Kinematics, life *components.Life, tint *components.Tint) {
	m := s.params.CullMargin
	if kin.Pos.X < -m || kin.Pos.X > s.bounds.X+m || kin.Pos.Y < -m || kin.Pos.Y > s.bounds.Y+m {
		return
	}

	alpha := math.Max(0.1, 1-life.Ratio())
	speed := kin.Speed2D()
	lightness := math.Min(70, 40+speed*10) / 100
	radius := math.Max(12, speed*18+8)

	offsets := [3]float64{0, 0.6, 1}
	for i := range s.stops {
		s.stops[i] = renderer.GradientStop{
			Offset: offsets[i],
			Color:  renderer.HSLA(tint.Hue, s.params.Saturation, lightness, alpha*s.params.GlowStops[i]),
		}
	}
	surf.FillRadial(kin.Pos.X, kin.Pos.Y, radius, radius*s.params.GlowSpread, s.stops[:])
}

// RenderAll draws every particle. A panic while drawing one particle is
// recovered so the rest still draw; the first failure is logged. Returns
// the number of particles that failed.
func (s *SwarmSystem) RenderAll(surf renderer.Surface) int {
	failed := 0
	query := s.filter.Query()
	for query.Next() {
		kin, life, tint := query.Get()
		if err := s.renderSafe(surf, kin, life, tint); err != nil {
			if failed == 0 {
				slog.Warn("particle render failed", "error", err)
			}
			failed++
		}
	}
	s.stats.RenderFailures += failed
	return failed
}

func (s *SwarmSystem) renderSafe(surf renderer.Surface, kin *components.Kinematics, life *components.Life, tint *components.Tint) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()
	s.Render(surf, kin, life, tint)
	return nil
}

// Speeds appends the planar speed of every particle to dst.
func (s *SwarmSystem) Speeds(dst []float64) []float64 {
	query := s.filter.Query()
	for query.Next() {
		kin, _, _ := query.Get()
		dst = append(dst, kin.Speed2D())
	}
	return dst
}

// Each calls fn for every particle. fn must not add or remove particles.
func (s *SwarmSystem) Each(fn func(kin *components.Kinematics, life *components.Life, tint *components.Tint)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}
