package drill

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/kanadrill/internal/kana"
)

// RecallGame shows one item at a time and expects its counterpart typed in.
type RecallGame struct {
	Picker    Picker
	Sink      Sink
	Set       *kana.Set
	SessionID string
	Reverse   bool

	score   int
	current string
}

// Current returns the prompt in play, or "" before the first Next.
func (g *RecallGame) Current() string {
	return g.current
}

// Score returns the number of correct answers so far.
func (g *RecallGame) Score() int {
	return g.score
}

// Next picks the next prompt. The previous prompt is excluded whenever the
// alphabet has anything else to offer.
func (g *RecallGame) Next() (string, error) {
	source := g.Set.Kana
	if g.Reverse {
		source = dedupe(g.Set.Romaji)
	}
	if len(source) == 0 {
		return "", fmt.Errorf("%w: empty alphabet", ErrPoolTooSmall)
	}

	pool := source
	if g.current != "" && len(source) > 1 {
		pool = make([]string, 0, len(source)-1)
		for _, c := range source {
			if c != g.current {
				pool = append(pool, c)
			}
		}
	}

	picked, err := g.Picker.Select(pool)
	if err != nil {
		return "", fmt.Errorf("pick prompt: %w", err)
	}
	g.Picker.MarkSeen(picked)
	g.current = picked
	return picked, nil
}

// Answer grades input against the current prompt. Comparison ignores case and
// surrounding whitespace. In reverse mode any kana with the prompted reading
// is correct.
func (g *RecallGame) Answer(ctx context.Context, input string) (Result, error) {
	if g.current == "" {
		return Result{}, fmt.Errorf("answer: no prompt in play")
	}
	want := g.expected()
	input = strings.TrimSpace(input)
	correct := false
	for _, w := range want {
		if strings.EqualFold(input, w) {
			correct = true
			break
		}
	}
	if correct {
		g.score++
	}

	err := report(ctx, g.Picker, g.Sink, g.SessionID, ModeRecall, []string{g.current}, correct)
	return Result{Correct: correct, Expected: want, Score: g.score}, err
}

func (g *RecallGame) expected() []string {
	if g.Reverse {
		return g.Set.Readings[g.current]
	}
	return []string{g.Set.ToRomaji[g.current]}
}
