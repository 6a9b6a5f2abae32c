package flock

import (
	"fmt"
	"iter"
	"math"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// Agent is one fish of the flock.
// Displacement per tick is Speed * (sin Heading, cos Heading).
type Agent struct {
	Position geometry.Vector2D
	Speed    float64
	Heading  float64 // radians, not normalised into any range
}

// Direction returns the unit vector of the agent heading.
func (a Agent) Direction() geometry.Vector2D {
	return geometry.FromHeading(a.Heading)
}

// Velocity returns the displacement the agent applies on its next move.
func (a Agent) Velocity() geometry.Vector2D {
	return a.Direction().Mul(a.Speed)
}

func (a Agent) validate() error {
	if !a.Position.IsFinite() || math.IsNaN(a.Heading) || math.IsInf(a.Heading, 0) {
		return fmt.Errorf("%w: position %s heading %v", ErrInvalidAgent, a.Position, a.Heading)
	}
	return validateSpeed(a.Speed)
}

// Domain is the simulated plane, spanning [-Width, Width) x [-Height, Height).
// Width and Height are half extents: a window showing the whole domain is 2*Width wide.
type Domain struct {
	Width  float64
	Height float64
}

// Validate rejects non-positive or non-finite dimensions.
func (d Domain) Validate() error {
	if !(d.Width > 0 && d.Height > 0) || math.IsInf(d.Width, 0) || math.IsInf(d.Height, 0) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidDomain, d.Width, d.Height)
	}
	return nil
}

func validateSpeed(speed float64) error {
	if !(speed > 0) || math.IsInf(speed, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, speed)
	}
	return nil
}

// Store holds the ordered, fixed-size sequence of agents.
// Agents are never added or removed once the store exists.
type Store struct {
	domain Domain
	agents []Agent
}

// New creates count agents with positions uniform over the domain, headings
// uniform over [0, 2π) and the given initial speed.
// The source is consumed in agent order, three draws each: x, y, heading.
func New(count int, domain Domain, initialSpeed float64, src Source) (*Store, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPopulation, count)
	}
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	if err := validateSpeed(initialSpeed); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}

	agents := make([]Agent, count)
	for i := range agents {
		agents[i] = Agent{
			Position: geometry.Vector2D{
				X: uniform(src, -domain.Width, domain.Width),
				Y: uniform(src, -domain.Height, domain.Height),
			},
			Speed:   initialSpeed,
			Heading: uniform(src, 0, 2*math.Pi),
		}
	}
	return &Store{domain: domain, agents: agents}, nil
}

// FromAgents builds a store around explicitly placed agents. The slice is copied.
func FromAgents(domain Domain, agents []Agent) (*Store, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("%w: got 0", ErrInvalidPopulation)
	}
	if err := domain.Validate(); err != nil {
		return nil, err
	}
	for i, a := range agents {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
	}
	return &Store{domain: domain, agents: append([]Agent(nil), agents...)}, nil
}

// Len returns the population size.
func (s *Store) Len() int {
	return len(s.agents)
}

// Domain returns the plane the store was created for.
func (s *Store) Domain() Domain {
	return s.domain
}

// At returns a copy of agent i. Index 0 is the leader a host may highlight.
func (s *Store) At(i int) Agent {
	return s.agents[i]
}

// All iterates agents in stable insertion order.
func (s *Store) All() iter.Seq2[int, Agent] {
	return func(yield func(int, Agent) bool) {
		for i, a := range s.agents {
			if !yield(i, a) {
				return
			}
		}
	}
}

// Agents returns a copy of the whole sequence.
func (s *Store) Agents() []Agent {
	return append([]Agent(nil), s.agents...)
}
