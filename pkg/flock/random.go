package flock

import "math/rand/v2"

// Source is the random capability consumed by the flock.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// NewSource returns a PCG backed source, reproducible for a given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform samples a real in [lo, hi).
func uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Draw holds the two random decisions consumed by one agent during one tick.
type Draw struct {
	ApplyRules bool // evaluate cohesion, alignment and separation this tick
	SlowDown   bool // multiply speed by the decay factor instead of the growth factor
}

// DrawTick consumes the draws of a whole tick, two per agent in index order:
// a uniform real compared against p.ApplyProbability, then a coin flip in {0, 1}.
func DrawTick(src Source, p Params, n int) []Draw {
	draws := make([]Draw, n)
	for i := range draws {
		draws[i].ApplyRules = src.Float64() < p.ApplyProbability
		draws[i].SlowDown = src.IntN(2) == 1
	}
	return draws
}
