package transition

import (
	"fmt"
	"math"
	"sort"

	"segue/internal/services"
)

// ParamType enumerates the value kinds a transition parameter can take.
type ParamType string

const (
	TypeInt    ParamType = "int"
	TypeFloat  ParamType = "float"
	TypeBool   ParamType = "bool"
	TypeString ParamType = "string"
	TypeEnum   ParamType = "enum"
)

// Param describes one schema entry: its type, default, numeric bounds or
// enum choices, and a human-readable description surfaced by the CLI.
type Param struct {
	Type        ParamType
	Default     any
	Min         float64
	Max         float64
	Choices     []string
	Description string
}

// Bounded reports whether the parameter carries numeric bounds.
func (p Param) Bounded() bool {
	return p.Min < p.Max
}

// Schema maps parameter names to their specifications.
type Schema map[string]Param

// Params holds effect-specific request parameters. Values usually arrive
// from JSON decoding, so numeric entries may be float64 even for int
// parameters; Resolve normalizes them.
type Params map[string]any

// Names returns the schema's parameter names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve validates the supplied parameters against the schema and returns a
// complete set with defaults filled in. Unknown names, type mismatches,
// out-of-bounds numbers, and unknown enum values all fail with a
// configuration error before any frame is computed.
func (s Schema) Resolve(params Params) (Params, error) {
	resolved := make(Params, len(s))
	for name, spec := range s {
		resolved[name] = spec.Default
	}
	for name, value := range params {
		spec, ok := s[name]
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, "unknown parameter", nil)
		}
		normalized, err := spec.normalize(name, value)
		if err != nil {
			return nil, err
		}
		resolved[name] = normalized
	}
	return resolved, nil
}

func (p Param) normalize(name string, value any) (any, error) {
	switch p.Type {
	case TypeInt:
		n, ok := toInt(value)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("expected int, got %T", value), nil)
		}
		if p.Bounded() && (float64(n) < p.Min || float64(n) > p.Max) {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("%d outside [%g, %g]", n, p.Min, p.Max), nil)
		}
		return n, nil
	case TypeFloat:
		f, ok := toFloat(value)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("expected float, got %T", value), nil)
		}
		if p.Bounded() && (f < p.Min || f > p.Max) {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("%g outside [%g, %g]", f, p.Min, p.Max), nil)
		}
		return f, nil
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("expected bool, got %T", value), nil)
		}
		return b, nil
	case TypeString:
		str, ok := value.(string)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("expected string, got %T", value), nil)
		}
		return str, nil
	case TypeEnum:
		str, ok := value.(string)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("expected string, got %T", value), nil)
		}
		for _, choice := range p.Choices {
			if str == choice {
				return str, nil
			}
		}
		return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("%q is not one of %v", str, p.Choices), nil)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "params", name, fmt.Sprintf("unsupported parameter type %q", p.Type), nil)
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Float returns the named parameter as a float64. Params produced by Resolve
// always carry the right types, so missing keys just return zero.
func (p Params) Float(name string) float64 {
	f, _ := toFloat(p[name])
	return f
}

// Int returns the named parameter as an int.
func (p Params) Int(name string) int {
	n, _ := toInt(p[name])
	return n
}

// String returns the named parameter as a string.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Bool returns the named parameter as a bool.
func (p Params) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}
