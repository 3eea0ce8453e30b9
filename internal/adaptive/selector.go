package adaptive

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

// Selector picks drill items with probability proportional to their adaptive
// weight, discounted for items presented in the last few rounds. It is safe
// for concurrent use.
type Selector struct {
	mu     sync.Mutex
	params Params
	items  map[string]*ItemState
	round  uint64
	rng    *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source used by Select.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rng = r
	}
}

// WithSeed seeds the random source used by Select. A zero seed keeps the
// time-seeded default.
func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		if seed == 0 {
			return
		}
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewSelector creates a Selector with the given policy.
func NewSelector(params Params, opts ...Option) (*Selector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Selector{
		params: params,
		items:  make(map[string]*ItemState),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return s, nil
}

// Params returns the selector's policy.
func (s *Selector) Params() Params {
	return s.params
}

// Select returns one identifier from pool, drawn with probability
// proportional to weight times recency factor. Identifiers not yet known are
// registered at the default weight. Select does not mark the result as seen.
func (s *Selector) Select(pool []string) (string, error) {
	if len(pool) == 0 {
		return "", fmt.Errorf("select: %w", ErrEmptyPool)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(pool) == 1 {
		s.lookup(pool[0])
		return pool[0], nil
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, id := range pool {
		st := s.lookup(id)
		w := st.Weight * s.params.recencyFactor(st.Age(s.round))
		weights[i] = w
		total += w
	}

	u := s.rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if u < cum {
			return pool[i], nil
		}
	}
	return pool[len(pool)-1], nil
}

// MarkSeen records one presentation of id and advances the round clock.
// Call it exactly once per presented item.
func (s *Selector) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.lookup(id)
	st.LastSeenRound = s.round
	st.Seen = true
	st.Exposures++
	s.round++
}

// UpdateWeight applies answer feedback for id. A correct answer decays the
// weight toward MinWeight, a wrong answer boosts it toward MaxWeight.
func (s *Selector) UpdateWeight(id string, correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.lookup(id)
	if correct {
		st.Weight = s.params.clamp(st.Weight * s.params.Decay)
	} else {
		st.Weight = s.params.clamp(st.Weight * s.params.Boost)
	}
}

// Round returns the current value of the round clock.
func (s *Selector) Round() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// State returns a copy of the state for id, or false if id is unknown.
func (s *Selector) State(id string) (ItemState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.items[id]
	if !ok {
		return ItemState{}, false
	}
	return *st, true
}

// Weight returns the stored weight for id, or DefaultWeight if unknown.
func (s *Selector) Weight(id string) float64 {
	if st, ok := s.State(id); ok {
		return st.Weight
	}
	return s.params.DefaultWeight
}

// States returns copies of all item states, heaviest first.
func (s *Selector) States() []ItemState {
	s.mu.Lock()
	out := make([]ItemState, 0, len(s.items))
	for _, st := range s.items {
		out = append(out, *st)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of registered items.
func (s *Selector) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// lookup returns the state for id, registering it if needed. Caller holds mu.
func (s *Selector) lookup(id string) *ItemState {
	if st, ok := s.items[id]; ok {
		return st
	}
	st := &ItemState{ID: id, Weight: s.params.DefaultWeight}
	s.items[id] = st
	return st
}
