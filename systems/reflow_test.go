package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/components"
	"github.com/pthm-cable/chaos-swarm/profile"
)

func TestReflow_Grow(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(30, false)

	res := s.Reflow(r3.Vec{X: 800, Y: 600}, 45)

	if s.Count() != 45 || res.Added != 15 {
		t.Errorf("expected 45 particles (15 added), got %d (%d added)", s.Count(), res.Added)
	}
	// Grown particles start part way through their lifespans.
	aged := 0
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		if life.Age > 0 {
			aged++
		}
	})
	if aged == 0 {
		t.Error("expected added particles with randomized age")
	}
}

func TestReflow_ShrinkKeepsCenter(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(10, false)

	// Place particles on a line at increasing distance from the center.
	i := 0
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		kin.Pos = r3.Vec{X: 200 + float64(i)*15, Y: 150}
		i++
	})

	res := s.Reflow(s.Bounds(), 4)

	if s.Count() != 4 || res.Removed != 6 {
		t.Fatalf("expected 4 particles (6 removed), got %d (%d removed)", s.Count(), res.Removed)
	}
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		if kin.Pos.X > 200+3*15 {
			t.Errorf("expected only the 4 most central particles, found one at x=%v", kin.Pos.X)
		}
	})
}

func TestReflow_ScalesPositions(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(1, false)
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		kin.Pos = r3.Vec{X: 100, Y: 150}
		kin.Trail = kin.Pos
	})

	// 400x300 to 800x150: x doubles, y halves.
	s.Reflow(r3.Vec{X: 800, Y: 150}, 1)

	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		if kin.Pos != (r3.Vec{X: 200, Y: 75}) {
			t.Errorf("expected position scaled to (200,75), got %v", kin.Pos)
		}
		if kin.Trail != kin.Pos {
			t.Errorf("expected trail scaled with the position, got %v", kin.Trail)
		}
	})
}

func TestReflow_ResetsOutOfBounds(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.Spawn(1, false)
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		// Slightly past the edge, e.g. a wrap-policy particle mid-flight.
		kin.Pos = r3.Vec{X: 401, Y: 10}
	})

	res := s.Reflow(r3.Vec{X: 400, Y: 300}, 1)

	if res.Reset != 1 {
		t.Errorf("expected 1 reset, got %d", res.Reset)
	}
	s.Each(func(kin *components.Kinematics, life *components.Life, tint *components.Tint) {
		if !components.InBounds2D(kin.Pos, s.Bounds()) {
			t.Errorf("expected particle back in bounds, got %v", kin.Pos)
		}
	})
}

func TestReflow_FromEmptyBounds(t *testing.T) {
	s := newTestSwarm(t, profile.BoundaryReset)
	s.bounds = r3.Vec{}

	res := s.Reflow(r3.Vec{X: 640, Y: 400}, 50)

	if s.Count() != 50 || res.Added != 50 {
		t.Errorf("expected a fresh swarm of 50, got %d", s.Count())
	}
}
