package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The flock actor speaks protobuf well-known types:
//
//	*wrapperspb.UInt32Value  advance that many ticks
//	*structpb.Struct         overlay flocking parameters, keyed like the config file
//	*emptypb.Empty           ask for the tick count, answered with *wrapperspb.UInt64Value

var ErrInvalidParamsMessage = errors.New("invalid parameters message")

// NewTick builds the message advancing the flock by n ticks.
func NewTick(n uint32) *wrapperspb.UInt32Value {
	return wrapperspb.UInt32(n)
}

// ParamsMessage encodes p with the same keys as the configuration file.
func ParamsMessage(p flock.Params) (*structpb.Struct, error) {
	rule := func(r flock.Rule) map[string]any {
		return map[string]any{"min": r.Min, "max": r.Max, "weight": r.Weight}
	}
	return structpb.NewStruct(map[string]any{
		"cohesion":         rule(p.Cohesion),
		"alignment":        rule(p.Alignment),
		"separation":       rule(p.Separation),
		"applyProbability": p.ApplyProbability,
		"decayFactor":      p.DecayFactor,
		"growthFactor":     p.GrowthFactor,
	})
}

// applyParamsMessage overlays the fields present in msg on base and validates the result.
// base is returned unchanged alongside any error.
func applyParamsMessage(base flock.Params, msg *structpb.Struct) (flock.Params, error) {
	p := base
	var err error
	for key, v := range msg.GetFields() {
		switch key {
		case "cohesion":
			err = applyRule(&p.Cohesion, key, v)
		case "alignment":
			err = applyRule(&p.Alignment, key, v)
		case "separation":
			err = applyRule(&p.Separation, key, v)
		case "applyProbability":
			p.ApplyProbability, err = number(key, v)
		case "decayFactor":
			p.DecayFactor, err = number(key, v)
		case "growthFactor":
			p.GrowthFactor, err = number(key, v)
		default:
			err = fmt.Errorf("%w: unknown key %q", ErrInvalidParamsMessage, key)
		}
		if err != nil {
			return base, err
		}
	}
	if err := p.Validate(); err != nil {
		return base, err
	}
	return p, nil
}

func applyRule(r *flock.Rule, name string, v *structpb.Value) error {
	s := v.GetStructValue()
	if s == nil {
		return fmt.Errorf("%w: %s must be an object", ErrInvalidParamsMessage, name)
	}
	var err error
	for key, fv := range s.GetFields() {
		switch key {
		case "min":
			r.Min, err = number(name+".min", fv)
		case "max":
			r.Max, err = number(name+".max", fv)
		case "weight":
			r.Weight, err = number(name+".weight", fv)
		default:
			err = fmt.Errorf("%w: unknown key %s.%s", ErrInvalidParamsMessage, name, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func number(name string, v *structpb.Value) (float64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidParamsMessage, name)
	}
	return n.NumberValue, nil
}
