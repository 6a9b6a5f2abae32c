package flock

import (
	"errors"
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

// scriptedSource replays fixed values so tests can pin every draw.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func TestNew_SamplesDomain(t *testing.T) {
	src := &scriptedSource{floats: []float64{
		0, 0.5, 0.25, // agent 0: left edge, middle, quarter turn
		0.75, 0, 0.5, // agent 1
	}}
	s, err := New(2, testDomain, 1.5, src)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []Agent{
		{Position: geometry.Vector2D{X: -400, Y: 0}, Speed: 1.5, Heading: math.Pi / 2},
		{Position: geometry.Vector2D{X: 200, Y: -300}, Speed: 1.5, Heading: math.Pi},
	}
	for i, w := range want {
		got := s.At(i)
		if !got.Position.Eq(w.Position) || got.Speed != w.Speed || math.Abs(got.Heading-w.Heading) > 1e-12 {
			t.Errorf("agent %d = %+v; want %+v", i, got, w)
		}
	}
	if len(src.floats) != 0 {
		t.Errorf("New() left %d draws unconsumed", len(src.floats))
	}
}

func TestNew_RandomPopulationStaysInDomain(t *testing.T) {
	s, err := New(1000, testDomain, 1, NewSource(99))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Len() != 1000 {
		t.Fatalf("Len() = %d; want 1000", s.Len())
	}
	for i, a := range s.All() {
		if a.Position.X < -testDomain.Width || a.Position.X >= testDomain.Width ||
			a.Position.Y < -testDomain.Height || a.Position.Y >= testDomain.Height {
			t.Errorf("agent %d position %v outside domain", i, a.Position)
		}
		if a.Heading < 0 || a.Heading >= 2*math.Pi {
			t.Errorf("agent %d heading %v outside [0, 2π)", i, a.Heading)
		}
	}
}

func TestNew_SameSeedSameFlock(t *testing.T) {
	a, _ := New(50, testDomain, 1, NewSource(2024))
	b, _ := New(50, testDomain, 1, NewSource(2024))
	for i := range a.Len() {
		if a.At(i) != b.At(i) {
			t.Fatalf("agent %d differs between identically seeded stores", i)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		domain  Domain
		speed   float64
		src     Source
		wantErr error
	}{
		{"zero population", 0, testDomain, 1, NewSource(1), ErrInvalidPopulation},
		{"negative population", -3, testDomain, 1, NewSource(1), ErrInvalidPopulation},
		{"zero width", 5, Domain{Width: 0, Height: 1}, 1, NewSource(1), ErrInvalidDomain},
		{"negative height", 5, Domain{Width: 1, Height: -1}, 1, NewSource(1), ErrInvalidDomain},
		{"NaN width", 5, Domain{Width: math.NaN(), Height: 1}, 1, NewSource(1), ErrInvalidDomain},
		{"zero speed", 5, testDomain, 0, NewSource(1), ErrInvalidSpeed},
		{"nil source", 5, testDomain, 1, nil, ErrNilSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.count, tt.domain, tt.speed, tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v; want %v", err, tt.wantErr)
			}
			if s != nil {
				t.Errorf("New() returned a store alongside an error")
			}
		})
	}
}

func TestFromAgents_Validation(t *testing.T) {
	tests := []struct {
		name    string
		agents  []Agent
		wantErr error
	}{
		{"empty", nil, ErrInvalidPopulation},
		{"NaN position", []Agent{{Position: geometry.Vector2D{X: math.NaN()}, Speed: 1}}, ErrInvalidAgent},
		{"infinite heading", []Agent{{Speed: 1, Heading: math.Inf(1)}}, ErrInvalidAgent},
		{"negative speed", []Agent{{Speed: -1}}, ErrInvalidSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromAgents(testDomain, tt.agents); !errors.Is(err, tt.wantErr) {
				t.Errorf("FromAgents() error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromAgents_CopiesInput(t *testing.T) {
	agents := []Agent{{Speed: 1}, {Position: geometry.Vector2D{X: 3}, Speed: 2}}
	s := mustStore(t, agents...)
	agents[0].Speed = 42

	if got := s.At(0).Speed; got != 1 {
		t.Errorf("store speed = %v after caller mutation; want 1", got)
	}
	out := s.Agents()
	out[1].Speed = 42
	if got := s.At(1).Speed; got != 2 {
		t.Errorf("store speed = %v after mutating Agents(); want 2", got)
	}
}

func TestStore_AllStopsEarly(t *testing.T) {
	s := mustStore(t, Agent{Speed: 1}, Agent{Speed: 2}, Agent{Speed: 3})
	var seen []int
	for i := range s.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("All() visited %v; want [0 1]", seen)
	}
}

func TestAgent_Velocity(t *testing.T) {
	a := Agent{Speed: 2, Heading: math.Pi / 2}
	if got, want := a.Velocity(), (geometry.Vector2D{X: 2, Y: 0}); !got.Eq(want) {
		t.Errorf("Velocity() = %v; want %v", got, want)
	}
}

func TestDrawTick(t *testing.T) {
	p := DefaultParams()
	src := &scriptedSource{
		floats: []float64{0.69, 0.7, 0.1},
		ints:   []int{1, 0, 0},
	}

	got := DrawTick(src, p, 3)
	want := []Draw{
		{ApplyRules: true, SlowDown: true},
		{ApplyRules: false, SlowDown: false},
		{ApplyRules: true, SlowDown: false},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestDrawTick_ApplyRate(t *testing.T) {
	p := DefaultParams()
	draws := DrawTick(NewSource(8), p, 20000)
	applied, slowed := 0, 0
	for _, d := range draws {
		if d.ApplyRules {
			applied++
		}
		if d.SlowDown {
			slowed++
		}
	}
	if rate := float64(applied) / float64(len(draws)); math.Abs(rate-0.7) > 0.02 {
		t.Errorf("apply rate = %v; want about 0.7", rate)
	}
	if rate := float64(slowed) / float64(len(draws)); math.Abs(rate-0.5) > 0.02 {
		t.Errorf("slow down rate = %v; want about 0.5", rate)
	}
}
