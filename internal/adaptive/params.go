package adaptive

import "fmt"

// Params holds the weight and recency policy of a Selector.
type Params struct {
	// DefaultWeight is assigned to an item on first encounter.
	DefaultWeight float64 `yaml:"default_weight"`

	// MinWeight and MaxWeight bound every stored weight.
	MinWeight float64 `yaml:"min_weight"`
	MaxWeight float64 `yaml:"max_weight"`

	// Decay multiplies the weight after a correct answer. Must be in (0, 1).
	Decay float64 `yaml:"decay"`

	// Boost multiplies the weight after a wrong answer. Must be > 1.
	Boost float64 `yaml:"boost"`

	// RecencyWindow is the number of rounds after a presentation during
	// which an item's selection weight is discounted.
	RecencyWindow int `yaml:"recency_window"`

	// RecencyFloor is the discount applied to the item shown in the
	// immediately preceding round. Must be in (0, 1].
	RecencyFloor float64 `yaml:"recency_floor"`
}

// DefaultParams returns the standard drill tuning.
//
// A run of five misses takes an item from 1.0 to ~7.6 (capped at 10); five
// hits take it to ~0.33, so a learner's weak items dominate quickly without
// starving the rest of the pool.
func DefaultParams() Params {
	return Params{
		DefaultWeight: 1.0,
		MinWeight:     0.1,
		MaxWeight:     10.0,
		Decay:         0.8,
		Boost:         1.5,
		RecencyWindow: 3,
		RecencyFloor:  0.1,
	}
}

// Validate reports whether the parameters describe a bounded, monotonic policy.
func (p Params) Validate() error {
	switch {
	case p.MinWeight <= 0:
		return fmt.Errorf("%w: min_weight %v must be > 0", ErrInvalidParams, p.MinWeight)
	case p.MaxWeight <= p.MinWeight:
		return fmt.Errorf("%w: max_weight %v must be > min_weight %v", ErrInvalidParams, p.MaxWeight, p.MinWeight)
	case p.DefaultWeight <= p.MinWeight || p.DefaultWeight >= p.MaxWeight:
		return fmt.Errorf("%w: default_weight %v must be strictly between %v and %v",
			ErrInvalidParams, p.DefaultWeight, p.MinWeight, p.MaxWeight)
	case p.Decay <= 0 || p.Decay >= 1:
		return fmt.Errorf("%w: decay %v must be in (0, 1)", ErrInvalidParams, p.Decay)
	case p.Boost <= 1:
		return fmt.Errorf("%w: boost %v must be > 1", ErrInvalidParams, p.Boost)
	case p.RecencyWindow < 0:
		return fmt.Errorf("%w: recency_window %d must be >= 0", ErrInvalidParams, p.RecencyWindow)
	case p.RecencyFloor <= 0 || p.RecencyFloor > 1:
		return fmt.Errorf("%w: recency_floor %v must be in (0, 1]", ErrInvalidParams, p.RecencyFloor)
	}
	return nil
}

// clamp bounds w to [MinWeight, MaxWeight].
func (p Params) clamp(w float64) float64 {
	if w < p.MinWeight {
		return p.MinWeight
	}
	if w > p.MaxWeight {
		return p.MaxWeight
	}
	return w
}

// recencyFactor returns the selection multiplier for an item presented age
// rounds ago. age 1 is the most recent presentation.
func (p Params) recencyFactor(age uint64) float64 {
	if age == 0 || p.RecencyWindow == 0 || age > uint64(p.RecencyWindow) {
		return 1
	}
	step := (1 - p.RecencyFloor) / float64(p.RecencyWindow)
	return p.RecencyFloor + step*float64(age-1)
}
