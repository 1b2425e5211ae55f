package systems

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/components"
	"github.com/pthm-cable/chaos-swarm/config"
	"github.com/pthm-cable/chaos-swarm/profile"
	"github.com/pthm-cable/chaos-swarm/renderer"
)

type constantNoise float64

func (c constantNoise) Sample(x, y, z float64) float64 { return float64(c) }

// recordingSurface counts radial fills and can panic on a chosen call.
type recordingSurface struct {
	radials int
	panicAt int // 1-based call index that panics, 0 = never
}

func (r *recordingSurface) Resize(w, h, ratio float64) error { return nil }
func (r *recordingSurface) Size() (float64, float64) { return 0, 0 }
func (r *recordingSurface) Begin() {}
func (r *recordingSurface) End() {}
func (r *recordingSurface) Clear(color.NRGBA) {}
func (r *recordingSurface) SetBlendMode(renderer.BlendMode) {}
func (r *recordingSurface) FillRect(x, y, w, h float64, c color.NRGBA) {}
func (r *recordingSurface) FillCircle(x, y, rad float64, c color.NRGBA) {}
func (r *recordingSurface) StrokeLine(x0, y0, x1, y1, w float64, c color.NRGBA) {}
func (r *recordingSurface) FillRadial(cx, cy, rad, extent float64, stops []renderer.GradientStop) {
	r.radials++
	if r.radials == r.panicAt {
		panic("surface lost")
	}
}

func testParams(t *testing.T) config.SwarmConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg.Swarm
}

func testProfile(b profile.Boundary) *profile.Profile {
	return &profile.Profile{
		Variant:       "test",
		Boundary:      b,
		ParticleCount: 50,
		UpdateEvery:   1,
		RandomForce:   2.5,
		TrailOpacity:  0.25,
		NoiseGain:     0.08,
		Damping:       0.94,
		TimeScale:     2.5,
		MaxVelocity:   5,
		PositionScale: 2.5,
	}
}

func newTestSwarm(t *testing.T, b profile.Boundary) *SwarmSystem {
	t.Helper()
	return NewSwarmSystem(NewSimplexNoise(), rand.New(rand.NewSource(42)), testParams(t), testProfile(b), r3.Vec{X: 400, Y: 300})
}

func TestSwarm_SpawnCount(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(50, false)

	if s.Count() != 50 {
		t.Errorf("expected 50 particles, got %d", s.Count())
	}
	seen := 0
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		seen++
		if life.Age != 0 {
			t.Errorf("fresh particle should start at age 0, got %v", life.Age)
		}
		if life.MaxLife < 3000 || life.MaxLife >= 9000 {
			t.Errorf("max life %v outside [3000, 9000)", life.MaxLife)
		}
		if tint.Hue < 0 || tint.Hue >= 360 {
			t.Errorf("hue %v outside [0, 360)", tint.Hue)
		}
		if kin.Pos != kin.Trail {
			t.Errorf("trail should start at position")
		}
	})
	if seen != 50 {
		t.Errorf("expected to iterate 50 particles, got %d", seen)
	}

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("expected empty swarm after Clear, got %d", s.Count())
	}
}

func TestSwarm_StaysInBounds(t *testing.T) {
	for _, b := range []profile.Boundary{profile.BoundaryReset, profile.BoundaryWrap} {
		t.Run(b.String(), func(t *testing.T) {
			s := newTestSwarm(t, b)
			s.profile.MaxVelocity = 12
			s.profile.PositionScale = 6.5
			s.profile.RandomForce = 8
			s.Spawn(60, true)

			bounds := s.Bounds()
			for step := 0; step < 500; step++ {
				s.StepAll(float64(step) * 16)
				s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
					if !components.InBounds2D(kin.Pos, bounds) {
						t.Fatalf("step %d: position %v outside %v", step, kin.Pos, bounds)
					}
					if kin.Speed2D() > s.profile.MaxVelocity+1e-9 {
						t.Fatalf("step %d: speed %v over cap %v", step, kin.Speed2D(), s.profile.MaxVelocity)
					}
					if life.Age > life.MaxLife {
						t.Fatalf("step %d: age %v past max life %v", step, life.Age, life.MaxLife)
					}
				})
			}
		})
	}
}

func TestSwarm_VelocityClamp(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryWrap)
	s.noise = constantNoise(0)

	kin := components.Kinematics{Pos: r3.Vec{X: 200, Y: 150}, Vel: r3.Vec{X: 300, Y: -400}}
	life := components.Life{MaxLife: 5000}
	tint := components.Tint{}

	s.Step(&kin, &life, &tint, 0)

	if got := kin.Speed2D(); math.Abs(got-s.profile.MaxVelocity) > 1e-9 {
		t.Errorf("expected speed clamped to %v, got %v", s.profile.MaxVelocity, got)
	}
	// direction is preserved
	if kin.Vel.X <= 0 || kin.Vel.Y >= 0 {
		t.Errorf("clamping should keep direction, got %v", kin.Vel)
	}
}

func TestSwarm_AgeAndExpiry(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.noise = constantNoise(0)
	s.profile.RandomForce = 0

	kin := components.Kinematics{Pos: r3.Vec{X: 200, Y: 150}}
	life := components.Life{Age: 10, MaxLife: 12}
	tint := components.Tint{Hue: 359.95}

	if res := s.Step(&kin, &life, &tint, 0); res != Moved {
		t.Fatalf("expected Moved, got %v", res)
	}
	if life.Age != 11 {
		t.Errorf("expected age 11, got %v", life.Age)
	}
	if math.Abs(tint.Hue-0.05) > 1e-9 {
		t.Errorf("expected hue to wrap to 0.05, got %v", tint.Hue)
	}
	if kin.Trail != (r3.Vec{X: 200, Y: 150}) {
		t.Errorf("expected trail at previous position, got %v", kin.Trail)
	}

	s.Step(&kin, &life, &tint, 0) // age 12, still alive
	if res := s.Step(&kin, &life, &tint, 0); res != Expired {
		t.Fatalf("expected Expired, got %v", res)
	}
	if life.Age != 0 {
		t.Errorf("expected age reset to 0, got %v", life.Age)
	}
	if life.MaxLife < 3000 || life.MaxLife >= 9000 {
		t.Errorf("expected new max life in [3000, 9000), got %v", life.MaxLife)
	}
	if kin.Vel != (r3.Vec{}) {
		t.Errorf("expected velocity zeroed on reset, got %v", kin.Vel)
	}
}

func TestSwarm_BoundaryPolicies(t *testing.T) {
	start := func() (components.Kinematics, components.Life, components.Tint) {
		return components.Kinematics{Pos: r3.Vec{X: 399, Y: 150}, Vel: r3.Vec{X: 4}},
			components.Life{Age: 5, MaxLife: 5000},
			components.Tint{Hue: 10}
	}

	t.Run("reset", func(t *testing.T) {
		s := newTestSwarm(t, profile.BoundaryReset)
		s.noise = constantNoise(0)
		s.profile.RandomForce = 0
		kin, life, tint := start()

		if res := s.Step(&kin, &life, &tint, 0); res != Escaped {
			t.Fatalf("expected Escaped, got %v", res)
		}
		if life.Age != 0 || kin.Vel != (r3.Vec{}) {
			t.Errorf("expected full reset, got age %v vel %v", life.Age, kin.Vel)
		}
		if !components.InBounds2D(kin.Pos, s.Bounds()) {
			t.Errorf("expected in-bounds position after reset, got %v", kin.Pos)
		}
	})

	t.Run("wrap", func(t *testing.T) {
		s := newTestSwarm(t, profile.BoundaryWrap)
		s.noise = constantNoise(0)
		s.profile.RandomForce = 0
		kin, life, tint := start()

		if res := s.Step(&kin, &life, &tint, 0); res != Wrapped {
			t.Fatalf("expected Wrapped, got %v", res)
		}
		if kin.Pos.X != 0 || kin.Pos.Y != 150 {
			t.Errorf("expected wrap to left edge, got %v", kin.Pos)
		}
		if life.Age != 6 {
			t.Errorf("wrap should keep age, got %v", life.Age)
		}
		if kin.Vel.X <= 0 {
			t.Errorf("wrap should keep velocity, got %v", kin.Vel)
		}
	})
}

func TestSwarm_StepAllStats(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(20, false)
	s.StepAll(0)

	st := s.TakeStats()
	if st.Steps != 20 {
		t.Errorf("expected 20 steps, got %d", st.Steps)
	}
	if again := s.TakeStats(); again != (SwarmStats{}) {
		t.Errorf("expected counters cleared, got %+v", again)
	}
}

func TestSwarm_RenderCullsOffscreen(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	surf := &recordingSurface{}

	life := components.Life{MaxLife: 100}
	tint := components.Tint{}
	s.Render(surf, &components.Kinematics{Pos: r3.Vec{X: -60, Y: 10}}, &life, &tint)
	s.Render(surf, &components.Kinematics{Pos: r3.Vec{X: -40, Y: 10}}, &life, &tint)

	if surf.radials != 1 {
		t.Errorf("expected only the particle within the margin drawn, got %d draws", surf.radials)
	}
}

func TestSwarm_RenderIsolatesPanics(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(10, false)
	surf := &recordingSurface{panicAt: 3}

	failed := s.RenderAll(surf)

	if failed != 1 {
		t.Errorf("expected 1 failed particle, got %d", failed)
	}
	if surf.radials != 10 {
		t.Errorf("expected every particle attempted, got %d", surf.radials)
	}
	if st := s.TakeStats(); st.RenderFailures != 1 {
		t.Errorf("expected render failure counted, got %d", st.RenderFailures)
	}
}

func TestSwarm_RenderGlow(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	canvas, err := renderer.NewCanvas(100, 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	canvas.SetBlendMode(renderer.BlendAdditive)

	kin := components.Kinematics{Pos: r3.Vec{X: 50, Y: 50}}
	life := components.Life{MaxLife: 100}
	tint := components.Tint{Hue: 200}
	s.Render(canvas, &kin, &life, &tint)

	center := canvas.At(50, 50)
	if center.B == 0 {
		t.Errorf("expected bluish glow at center, got %v", center)
	}
	// Radius is 12 at rest; nothing beyond it.
	if far := canvas.At(50, 64); far != (color.RGBA{}) {
		t.Errorf("expected glow clipped at radius, got %v", far)
	}
}
