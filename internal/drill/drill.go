// Package drill builds quiz rounds on top of the adaptive selector and
// reports graded answers to a statistics sink.
package drill

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/kanadrill/internal/store"
)

// ErrPoolTooSmall is returned when the alphabet cannot fill a round.
var ErrPoolTooSmall = errors.New("drill: not enough items for a round")

// ErrWordTooLong is returned when a word has more letters than the tile rack
// can hold.
var ErrWordTooLong = errors.New("drill: word too long for the tile rack")

// Mode names a game mode in recorded outcomes.
type Mode string

const (
	ModeWord   Mode = "word"
	ModeRecall Mode = "recall"
)

// Picker is the adaptive selection engine as seen by a game mode.
type Picker interface {
	Select(pool []string) (string, error)
	MarkSeen(id string)
	UpdateWeight(id string, correct bool)
}

// Outcome is one graded item.
type Outcome struct {
	SessionID string
	Mode      Mode
	Item      string
	Correct   bool
}

// Sink receives graded outcomes.
type Sink interface {
	Record(ctx context.Context, o Outcome) error
}

// RecordingSink appends outcomes to the answer event log.
type RecordingSink struct {
	Repo store.EventRepo
}

// Record implements Sink.
func (s RecordingSink) Record(ctx context.Context, o Outcome) error {
	if s.Repo == nil {
		return nil
	}
	err := s.Repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: o.SessionID,
		Mode:      string(o.Mode),
		Item:      o.Item,
		Correct:   o.Correct,
	})
	if err != nil {
		return fmt.Errorf("record outcome for %q: %w", o.Item, err)
	}
	return nil
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Result describes a graded round.
type Result struct {
	Correct  bool
	Expected []string
	Score    int
}

// report applies feedback for every item and records it. Weights are always
// updated; the first sink error is returned after all items are handled.
func report(ctx context.Context, p Picker, sink Sink, sessionID string, mode Mode, items []string, correct bool) error {
	var firstErr error
	for _, it := range items {
		p.UpdateWeight(it, correct)
		if sink == nil {
			continue
		}
		err := sink.Record(ctx, Outcome{SessionID: sessionID, Mode: mode, Item: it, Correct: correct})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// dedupe returns items without repeats, preserving order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
