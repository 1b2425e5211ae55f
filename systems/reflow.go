package systems

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/chaos-swarm/components"
)

// ReflowResult summarizes a Reflow call.
type ReflowResult struct {
	Reset   int // particles pushed out of bounds by the rescale
	Added   int
	Removed int
}

// Reflow adapts the swarm to new bounds and a new target population.
//
// Positions are scaled by the ratio of new to old bounds and any particle
// left outside is reset. The population then grows with particles of
// random age or shrinks by dropping those farthest from the new center.
// If either old dimension is zero the swarm is rebuilt from scratch.
func (s *SwarmSystem) Reflow(newBounds r3.Vec, target int) ReflowResult {
	var res ReflowResult
	old := s.bounds
	s.bounds = newBounds

	if s.count == 0 || old.X <= 0 || old.Y <= 0 {
		s.Clear()
		s.Spawn(target, false)
		res.Added = target
		return res
	}

	ratio := r3.Vec{X: newBounds.X / old.X, Y: newBounds.Y / old.Y}
	query := s.filter.Query()
	for query.Next() {
		kin, life, tint := query.Get()
		kin.Pos = components.Mul(kin.Pos, ratio)
		kin.Trail = components.Mul(kin.Trail, ratio)
		if !components.InBounds2D(kin.Pos, newBounds) {
			s.reset(kin, life, tint)
			res.Reset++
		}
	}

	switch {
	case target > s.count:
		res.Added = target - s.count
		s.Spawn(res.Added, true)
	case target < s.count:
		res.Removed = s.count - target
		s.dropFarthest(res.Removed)
	}
	return res
}

// dropFarthest removes the n particles farthest from the bounds center.
func (s *SwarmSystem) dropFarthest(n int) {
	type ranked struct {
		entity ecs.Entity
		dist   float64
	}
	center := r3.Scale(0.5, s.bounds)

	all := make([]ranked, 0, s.count)
	query := s.filter.Query()
	for query.Next() {
		kin, _, _ := query.Get()
		all = append(all, ranked{entity: query.Entity(), dist: components.Distance2D(kin.Pos, center)})
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].dist > all[j].dist })

	n = min(n, len(all))
	for _, r := range all[:n] {
		s.mapper.Remove(r.entity)
	}
	s.count -= n
}
