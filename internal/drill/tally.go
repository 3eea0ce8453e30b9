package drill

import "sort"

// Miss counts how often one item was answered wrongly in a session.
type Miss struct {
	Item  string
	Count int
}

// Tally accumulates per-session results for the summary screen.
type Tally struct {
	Rounds  int
	Correct int
	missed  map[string]int
}

// Add records one graded round covering items.
func (t *Tally) Add(items []string, correct bool) {
	t.Rounds++
	if correct {
		t.Correct++
		return
	}
	if t.missed == nil {
		t.missed = make(map[string]int)
	}
	for _, it := range items {
		t.missed[it]++
	}
}

// Accuracy returns the fraction of correct rounds, or 0 before any round.
func (t *Tally) Accuracy() float64 {
	if t.Rounds == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Rounds)
}

// TopMissed returns up to n missed items, most missed first.
func (t *Tally) TopMissed(n int) []Miss {
	out := make([]Miss, 0, len(t.missed))
	for it, c := range t.missed {
		out = append(out, Miss{Item: it, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Item < out[j].Item
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
