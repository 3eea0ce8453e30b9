package adaptive

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
)

func newTestSelector(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector(DefaultParams(), WithRand(rand.New(rand.NewPCG(42, 7))))
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return s
}

func countPicks(t *testing.T, s *Selector, pool []string, trials int) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		id, err := s.Select(pool)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		counts[id]++
	}
	return counts
}

func TestNewSelector_InvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Boost = 0.5
	_, err := NewSelector(p)
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("NewSelector() error = %v, want ErrInvalidParams", err)
	}
}

func TestSelect_EmptyPool(t *testing.T) {
	s := newTestSelector(t)
	id, err := s.Select(nil)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Select(nil) error = %v, want ErrEmptyPool", err)
	}
	if id != "" {
		t.Errorf("Select(nil) = %q, want empty", id)
	}
	if _, err := s.Select([]string{}); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("Select([]) error = %v, want ErrEmptyPool", err)
	}
}

func TestSelect_AutoRegisters(t *testing.T) {
	s := newTestSelector(t)
	got, err := s.Select([]string{"あ"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "あ" {
		t.Errorf("Select = %q, want あ", got)
	}
	st, ok := s.State("あ")
	if !ok {
		t.Fatal("expected あ to be registered")
	}
	if st.Weight != DefaultParams().DefaultWeight {
		t.Errorf("Weight = %v, want default", st.Weight)
	}
	if st.Seen || st.Exposures != 0 {
		t.Error("Select must not mark the item seen")
	}
}

func TestSelect_RegistersWholePool(t *testing.T) {
	s := newTestSelector(t)
	if _, err := s.Select([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Round() != 0 {
		t.Errorf("Round() = %d, want 0 (Select must not advance the clock)", s.Round())
	}
}

func TestSelect_SingleCandidateIgnoresRecency(t *testing.T) {
	s := newTestSelector(t)
	s.MarkSeen("x")
	for i := 0; i < 50; i++ {
		got, err := s.Select([]string{"x"})
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if got != "x" {
			t.Fatalf("Select = %q, want x", got)
		}
	}
}

func TestSelect_AlwaysFromPool(t *testing.T) {
	s := newTestSelector(t)
	pool := []string{"ka", "ki", "ku", "ke", "ko"}
	in := make(map[string]bool)
	for _, id := range pool {
		in[id] = true
	}
	s.UpdateWeight("zz", false) // known but not in pool
	for i := 0; i < 500; i++ {
		got, err := s.Select(pool)
		if err != nil {
			t.Fatalf("Select: %v", err)
		}
		if !in[got] {
			t.Fatalf("Select returned %q, not in pool", got)
		}
	}
}

func TestSelect_WeightedBias(t *testing.T) {
	s := newTestSelector(t)
	s.Restore(&Snapshot{Items: []ItemState{
		{ID: "A", Weight: 5},
		{ID: "B", Weight: 1},
	}})

	counts := countPicks(t, s, []string{"A", "B"}, 10000)
	if counts["B"] == 0 {
		t.Fatal("B never selected")
	}
	ratio := float64(counts["A"]) / float64(counts["B"])
	if ratio < 5*0.85 || ratio > 5*1.15 {
		t.Errorf("A/B ratio = %.2f (A=%d, B=%d), want 5 ± 15%%", ratio, counts["A"], counts["B"])
	}
}

func TestSelect_RecencySuppression(t *testing.T) {
	s := newTestSelector(t)
	pool := []string{"x", "y", "z"}
	s.MarkSeen("x")

	const trials = 3000
	counts := countPicks(t, s, pool, trials)

	// Equal raw weights would give x a third of the picks.
	rawExpected := trials / 3
	if counts["x"] >= rawExpected/2 {
		t.Errorf("x picked %d times, want well below %d", counts["x"], rawExpected)
	}
	if counts["x"] == 0 {
		t.Error("recency penalty must discount, not exclude")
	}
}

func TestSelect_RecencyWearsOff(t *testing.T) {
	s := newTestSelector(t)
	s.MarkSeen("x")
	s.MarkSeen("y")
	s.MarkSeen("z")
	s.MarkSeen("w") // x is now 4 rounds old

	st, _ := s.State("x")
	if f := s.params.recencyFactor(st.Age(s.Round())); f != 1 {
		t.Errorf("recency factor for x = %v, want 1 once outside the window", f)
	}
}

func TestEndToEnd_MissesHitsAndNeutral(t *testing.T) {
	s := newTestSelector(t)
	for i := 0; i < 5; i++ {
		s.UpdateWeight("a", false)
		s.UpdateWeight("b", true)
	}

	counts := countPicks(t, s, []string{"a", "b", "c"}, 1000)
	if !(counts["a"] > counts["c"] && counts["c"] > counts["b"]) {
		t.Errorf("counts = %v, want a > c > b", counts)
	}
}

func TestMarkSeen_AdvancesRound(t *testing.T) {
	s := newTestSelector(t)
	s.MarkSeen("a")
	s.MarkSeen("a")
	s.MarkSeen("b")

	if s.Round() != 3 {
		t.Errorf("Round() = %d, want 3", s.Round())
	}
	a, _ := s.State("a")
	if a.Exposures != 2 {
		t.Errorf("a.Exposures = %d, want 2", a.Exposures)
	}
	if a.LastSeenRound != 1 {
		t.Errorf("a.LastSeenRound = %d, want 1", a.LastSeenRound)
	}
	b, _ := s.State("b")
	if b.LastSeenRound != 2 || !b.Seen {
		t.Errorf("b = %+v, want seen at round 2", b)
	}
}

func TestUpdateWeight_MonotonicResponse(t *testing.T) {
	p := DefaultParams()
	s := newTestSelector(t)

	prev := s.Weight("miss")
	for i := 0; i < 20; i++ {
		s.UpdateWeight("miss", false)
		w := s.Weight("miss")
		if prev < p.MaxWeight && w <= prev {
			t.Fatalf("step %d: weight %v did not increase from %v", i, w, prev)
		}
		if prev == p.MaxWeight && w != p.MaxWeight {
			t.Fatalf("step %d: weight left the cap: %v", i, w)
		}
		prev = w
	}
	if prev != p.MaxWeight {
		t.Errorf("weight after 20 misses = %v, want clamped at %v", prev, p.MaxWeight)
	}

	prev = s.Weight("hit")
	for i := 0; i < 30; i++ {
		s.UpdateWeight("hit", true)
		w := s.Weight("hit")
		if prev > p.MinWeight && w >= prev {
			t.Fatalf("step %d: weight %v did not decrease from %v", i, w, prev)
		}
		prev = w
	}
	if prev != p.MinWeight {
		t.Errorf("weight after 30 hits = %v, want clamped at %v", prev, p.MinWeight)
	}
}

func TestUpdateWeight_ClampingInvariant(t *testing.T) {
	p := DefaultParams()
	s := newTestSelector(t)
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		s.UpdateWeight("k", r.IntN(3) == 0)
		w := s.Weight("k")
		if w < p.MinWeight || w > p.MaxWeight {
			t.Fatalf("step %d: weight %v outside [%v, %v]", i, w, p.MinWeight, p.MaxWeight)
		}
	}
}

func TestUpdateWeight_Factors(t *testing.T) {
	s := newTestSelector(t)
	s.UpdateWeight("x", false)
	if got := s.Weight("x"); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("after miss: %v, want 1.5", got)
	}
	s.UpdateWeight("x", true)
	if got := s.Weight("x"); math.Abs(got-1.2) > 1e-9 {
		t.Errorf("after hit: %v, want 1.2", got)
	}
}

func TestUpdateWeight_AutoRegisters(t *testing.T) {
	s := newTestSelector(t)
	s.UpdateWeight("new", true)
	st, ok := s.State("new")
	if !ok {
		t.Fatal("expected new to be registered")
	}
	if math.Abs(st.Weight-0.8) > 1e-9 {
		t.Errorf("Weight = %v, want 0.8", st.Weight)
	}
}

func TestStates_HeaviestFirst(t *testing.T) {
	s := newTestSelector(t)
	s.UpdateWeight("b", false)
	s.UpdateWeight("a", true)
	s.MarkSeen("c")

	got := s.States()
	if len(got) != 3 {
		t.Fatalf("len(States()) = %d, want 3", len(got))
	}
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("States()[%d] = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestItemsAreNeverForgotten(t *testing.T) {
	s := newTestSelector(t)
	s.MarkSeen("a")
	s.UpdateWeight("a", false)
	s.Restore(&Snapshot{Round: 5, Items: []ItemState{{ID: "b", Weight: 2}}})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, ok := s.State("a"); !ok {
		t.Error("a was dropped by Restore")
	}
	if s.Round() != 5 {
		t.Errorf("Round() = %d, want 5", s.Round())
	}
}

func TestWithSeed_Reproducible(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	run := func() []string {
		s, err := NewSelector(DefaultParams(), WithSeed(99))
		if err != nil {
			t.Fatalf("NewSelector: %v", err)
		}
		var out []string
		for i := 0; i < 20; i++ {
			id, _ := s.Select(pool)
			s.MarkSeen(id)
			out = append(out, id)
		}
		return out
	}
	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run diverged at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSelector_ConcurrentUse(t *testing.T) {
	s := newTestSelector(t)
	pool := []string{"a", "b", "c", "d", "e"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id, err := s.Select(pool)
				if err != nil {
					t.Errorf("Select: %v", err)
					return
				}
				s.MarkSeen(id)
				s.UpdateWeight(id, (i+g)%2 == 0)
			}
		}(g)
	}
	wg.Wait()

	if s.Round() != 8*200 {
		t.Errorf("Round() = %d, want %d", s.Round(), 8*200)
	}
	p := DefaultParams()
	for _, st := range s.States() {
		if st.Weight < p.MinWeight || st.Weight > p.MaxWeight {
			t.Errorf("%s weight %v out of bounds", st.ID, st.Weight)
		}
	}
}
