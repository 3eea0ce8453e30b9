package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/kanadrill/internal/adaptive"
)

// ErrSnapshotNotFound is returned when no snapshot has been saved yet.
var ErrSnapshotNotFound = errors.New("store: snapshot not found")

// SnapshotDataVersion is written into every new snapshot.
const SnapshotDataVersion = 1

// SnapshotData captures the persisted learner state.
type SnapshotData struct {
	Version  int                `json:"version"`
	Selector *adaptive.Snapshot `json:"selector,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or ErrSnapshotNotFound.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// DeleteAll removes every snapshot.
	DeleteAll(ctx context.Context) error
}

// AnswerEventData captures one graded drill item.
type AnswerEventData struct {
	SessionID string
	Mode      string
	Item      string
	Correct   bool
}

// ItemStat aggregates answer events for one item.
type ItemStat struct {
	Item     string
	Attempts int
	Correct  int
}

// Accuracy returns the fraction of correct answers, or 0 with no attempts.
func (s ItemStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Totals summarises the whole answer log.
type Totals struct {
	Attempts int
	Correct  int
	Sessions int
}

// EventRepo provides append and aggregate access to answer events.
type EventRepo interface {
	// AppendAnswerEvent records one graded item.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// ItemStats aggregates attempts per item, weakest first. An empty mode
	// aggregates across all modes.
	ItemStats(ctx context.Context, mode string) ([]ItemStat, error)

	// Totals summarises all recorded events.
	Totals(ctx context.Context) (Totals, error)

	// DeleteAll removes every answer event.
	DeleteAll(ctx context.Context) error
}
