package flock

import (
	"context"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

const (
	// WrapMargin is how far past the domain edge an agent may go before it is wrapped.
	WrapMargin = 10.0
	// ReentryMargin is the offset past the opposite edge where a wrapped agent re-enters.
	ReentryMargin = 5.0
)

// Step advances every agent by one tick, drawing the tick's random decisions from src.
func (s *Store) Step(p Params, src Source) error {
	if src == nil {
		return ErrNilSource
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.Advance(p, DrawTick(src, p, len(s.agents)))
}

// Advance applies one tick using pre-drawn random decisions, one per agent.
// Every agent reads the start-of-tick snapshot, so the result does not depend on
// the order agents are processed in. On error the store is left untouched.
func (s *Store) Advance(p Params, draws []Draw) error {
	if err := s.check(p, draws); err != nil {
		return err
	}
	snapshot := s.Agents()
	for i := range snapshot {
		s.agents[i] = advanceAgent(i, snapshot, p, draws[i], s.domain)
	}
	return nil
}

// AdvanceParallel is Advance split over at most workers goroutines, each one
// owning a contiguous range of agents. The result is identical to Advance.
func (s *Store) AdvanceParallel(ctx context.Context, p Params, draws []Draw, workers int) error {
	if workers <= 1 {
		return s.Advance(p, draws)
	}
	if err := s.check(p, draws); err != nil {
		return err
	}

	snapshot := s.Agents()
	next := make([]Agent, len(snapshot))
	chunk := (len(snapshot) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(snapshot); lo += chunk {
		hi := min(lo+chunk, len(snapshot))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				next[i] = advanceAgent(i, snapshot, p, draws[i], s.domain)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	copy(s.agents, next)
	return nil
}

// advanceOrder is Advance visiting agents in the given permutation.
func (s *Store) advanceOrder(p Params, draws []Draw, order []int) error {
	if err := s.check(p, draws); err != nil {
		return err
	}
	snapshot := s.Agents()
	for _, i := range order {
		s.agents[i] = advanceAgent(i, snapshot, p, draws[i], s.domain)
	}
	return nil
}

func (s *Store) check(p Params, draws []Draw) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(draws) != len(s.agents) {
		return fmt.Errorf("%w: got %d draws for %d agents", ErrDrawCount, len(draws), len(s.agents))
	}
	return nil
}

// advanceAgent computes the next state of agent i from the tick snapshot.
func advanceAgent(i int, snapshot []Agent, p Params, d Draw, domain Domain) Agent {
	a := snapshot[i]
	if d.ApplyRules {
		a.Heading = steer(i, snapshot, p)
	}
	if d.SlowDown {
		a.Speed *= p.DecayFactor
	} else {
		a.Speed *= p.GrowthFactor
	}
	a.Position = Wrap(a.Position.Add(a.Velocity()), domain)
	return a
}

// steer blends the agent's own direction with the cohesion, alignment and
// separation contributions of its in-band neighbours and returns the new heading.
func steer(i int, snapshot []Agent, p Params) float64 {
	me := snapshot[i]

	var cohSum, aliSum, sepSum geometry.Vector2D
	var c, a, s int
	for j, other := range snapshot {
		if j == i {
			continue
		}
		d := me.Position.DistanceTo(other.Position)

		// The same distance is tested against every band: one neighbour may feed several rules.
		if p.Cohesion.Contains(d) {
			cohSum = cohSum.Add(other.Position)
			c++
		}
		if p.Alignment.Contains(d) {
			aliSum = aliSum.Add(other.Direction())
			a++
		}
		// d > Separation.Min >= 0 here.
		if p.Separation.Contains(d) {
			sepSum = sepSum.Add(me.Position.Sub(other.Position).Mul(1 / d))
			s++
		}
	}

	desired := me.Direction()
	if c > 0 {
		center := cohSum.Mul(1 / float64(c))
		desired = desired.Add(center.Sub(me.Position).Normalize().Mul(p.Cohesion.Weight))
	}
	if a > 0 {
		desired = desired.Add(aliSum.Mul(1 / float64(a)).Normalize().Mul(p.Alignment.Weight))
	}
	if s > 0 {
		desired = desired.Add(sepSum.Normalize().Mul(p.Separation.Weight))
	}
	return desired.Heading()
}

// Wrap moves a position that left the domain by more than WrapMargin to
// ReentryMargin past the opposite edge. Each axis is handled on its own.
func Wrap(pos geometry.Vector2D, d Domain) geometry.Vector2D {
	pos.X = wrapAxis(pos.X, d.Width)
	pos.Y = wrapAxis(pos.Y, d.Height)
	return pos
}

func wrapAxis(v, half float64) float64 {
	switch {
	case v > half+WrapMargin:
		return -(half + ReentryMargin)
	case v < -(half + WrapMargin):
		return half + ReentryMargin
	}
	return v
}
