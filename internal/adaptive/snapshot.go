package adaptive

import "sort"

// SnapshotVersion is the current Snapshot layout version.
const SnapshotVersion = 1

// Snapshot is a serializable copy of a Selector's state.
type Snapshot struct {
	Version int         `json:"version"`
	Round   uint64      `json:"round"`
	Items   []ItemState `json:"items"`
}

// Snapshot exports the selector state. Items are ordered by ID.
func (s *Selector) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		Version: SnapshotVersion,
		Round:   s.round,
		Items:   make([]ItemState, 0, len(s.items)),
	}
	for _, st := range s.items {
		snap.Items = append(snap.Items, *st)
	}
	sort.Slice(snap.Items, func(i, j int) bool {
		return snap.Items[i].ID < snap.Items[j].ID
	})
	return snap
}

// Restore merges a snapshot into the selector. Weights are re-clamped to the
// current policy and the round clock never moves backwards. Items already
// known to the selector are overwritten.
func (s *Selector) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range snap.Items {
		if it.ID == "" {
			continue
		}
		st := it
		st.Weight = s.params.clamp(st.Weight)
		if st.Exposures < 0 {
			st.Exposures = 0
		}
		s.items[st.ID] = &st
	}
	if snap.Round > s.round {
		s.round = snap.Round
	}
}
