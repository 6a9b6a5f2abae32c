package flock

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPopulation  = errors.New("population must be strictly positive")
	ErrInvalidDomain      = errors.New("domain dimensions must be finite and strictly positive")
	ErrInvalidSpeed       = errors.New("speed must be finite and strictly positive")
	ErrInvalidAgent       = errors.New("agent state must be finite")
	ErrInvalidBand        = errors.New("band must satisfy 0 <= min < max")
	ErrInvalidWeight      = errors.New("rule weight must be finite")
	ErrInvalidProbability = errors.New("apply probability must be within [0, 1]")
	ErrInvalidDrift       = errors.New("drift factors must satisfy 0 < decay <= 1 <= growth")
	ErrDrawCount          = errors.New("one draw per agent is required")
	ErrNilSource          = errors.New("random source is nil")
)

// Band is an open distance interval (Min, Max).
type Band struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Contains reports whether Min < d < Max. Both bounds are exclusive.
func (b Band) Contains(d float64) bool {
	return b.Min < d && d < b.Max
}

func (b Band) validate() error {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min < 0 || b.Min >= b.Max {
		return fmt.Errorf("%w: got (%v, %v)", ErrInvalidBand, b.Min, b.Max)
	}
	return nil
}

// Rule pairs a distance band with the weight of its steering contribution.
type Rule struct {
	Band
	Weight float64 `json:"weight" toml:"weight"`
}

func (r Rule) validate(name string) error {
	if err := r.Band.validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
		return fmt.Errorf("%s: %w: got %v", name, ErrInvalidWeight, r.Weight)
	}
	return nil
}

// Params are the tunable thresholds and weights of one flocking step.
type Params struct {
	Cohesion   Rule
	Alignment  Rule
	Separation Rule

	// ApplyProbability is the per agent, per tick chance that the three rules are evaluated.
	ApplyProbability float64
	// DecayFactor and GrowthFactor are the two speed drift multipliers, chosen by a fair coin.
	DecayFactor  float64
	GrowthFactor float64
}

// DefaultParams returns the reference tuning of the fish simulation.
func DefaultParams() Params {
	return Params{
		Cohesion:         Rule{Band: Band{Min: 20, Max: 50}, Weight: 0.01},
		Alignment:        Rule{Band: Band{Min: 20, Max: 50}, Weight: 0.02},
		Separation:       Rule{Band: Band{Min: 5, Max: 20}, Weight: 0.03},
		ApplyProbability: 0.7,
		DecayFactor:      0.999,
		GrowthFactor:     1.001,
	}
}

// Validate checks every band, weight, probability and drift factor.
func (p Params) Validate() error {
	if err := p.Cohesion.validate("cohesion"); err != nil {
		return err
	}
	if err := p.Alignment.validate("alignment"); err != nil {
		return err
	}
	if err := p.Separation.validate("separation"); err != nil {
		return err
	}
	if !(p.ApplyProbability >= 0 && p.ApplyProbability <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidProbability, p.ApplyProbability)
	}
	if !(p.DecayFactor > 0 && p.DecayFactor <= 1 && p.GrowthFactor >= 1) || math.IsInf(p.GrowthFactor, 0) {
		return fmt.Errorf("%w: got decay=%v growth=%v", ErrInvalidDrift, p.DecayFactor, p.GrowthFactor)
	}
	return nil
}
