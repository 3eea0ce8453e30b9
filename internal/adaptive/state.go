package adaptive

// ItemState holds the adaptive selection state for a single drill item.
type ItemState struct {
	ID            string  `json:"id"`
	Weight        float64 `json:"weight"`
	LastSeenRound uint64  `json:"last_seen_round"`
	Seen          bool    `json:"seen"`
	Exposures     int     `json:"exposures"`
}

// Age returns how many rounds ago the item was last presented, relative to
// the given round. Returns 0 if the item has never been presented.
func (s *ItemState) Age(round uint64) uint64 {
	if !s.Seen || round <= s.LastSeenRound {
		return 0
	}
	return round - s.LastSeenRound
}
