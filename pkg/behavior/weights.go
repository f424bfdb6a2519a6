package behavior

import (
	"fmt"
	"strings"
)

// Rule identifies one of the three steering rules.
type Rule int

const (
	Alignment Rule = iota
	Cohesion
	Separation
)

// Rules lists the steering rules in the order a boid applies them.
var Rules = [...]Rule{Alignment, Cohesion, Separation}

func (r Rule) String() string {
	switch r {
	case Alignment:
		return "alignment"
	case Cohesion:
		return "cohesion"
	case Separation:
		return "separation"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// ParseRule converts a rule name (case-insensitive) to a Rule.
func ParseRule(name string) (Rule, error) {
	for _, r := range Rules {
		if strings.EqualFold(name, r.String()) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rule %q", ErrInvalidConfig, name)
}

// Weights scales the contribution of each steering rule.
// A flock owns one instance and every boid reads it through a pointer,
// so a change is seen by all boids on their next step.
// Any value is accepted, including zero and negative ones.
type Weights struct {
	Alignment  float64 `json:"alignment"`
	Cohesion   float64 `json:"cohesion"`
	Separation float64 `json:"separation"`
}

// Get returns the weight of rule r.
func (w *Weights) Get(r Rule) float64 {
	switch r {
	case Alignment:
		return w.Alignment
	case Cohesion:
		return w.Cohesion
	case Separation:
		return w.Separation
	}
	return 0
}

// Set changes the weight of rule r.
func (w *Weights) Set(r Rule, value float64) error {
	switch r {
	case Alignment:
		w.Alignment = value
	case Cohesion:
		w.Cohesion = value
	case Separation:
		w.Separation = value
	default:
		return fmt.Errorf("%w: unknown rule %s", ErrInvalidConfig, r)
	}
	return nil
}
