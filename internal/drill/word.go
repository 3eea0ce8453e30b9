package drill

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/kanadrill/internal/kana"
)

// MaxTiles is the most tiles a round can lay out; the rack picks them with
// the digit keys 1-9.
const MaxTiles = 9

// Word is one word-building round: Items are the prompts chosen by the
// selector, Answers their counterparts in order, Tiles the shuffled answers
// plus distractors. Accepted lists, per slot, every tile that counts as
// correct; when it is nil only the matching answer does.
type Word struct {
	Items    []string
	Answers  []string
	Accepted [][]string
	Tiles    []string
}

// Check reports whether placed spells the answer, slot by slot.
func (w *Word) Check(placed []string) bool {
	if len(placed) != len(w.Answers) {
		return false
	}
	for i := range placed {
		if !w.accepts(i, placed[i]) {
			return false
		}
	}
	return true
}

func (w *Word) accepts(slot int, tile string) bool {
	if tile == w.Answers[slot] {
		return true
	}
	if slot < len(w.Accepted) {
		for _, a := range w.Accepted[slot] {
			if a == tile {
				return true
			}
		}
	}
	return false
}

// WordGame builds words from a kana set and grades them.
type WordGame struct {
	Picker      Picker
	Sink        Sink
	Set         *kana.Set
	SessionID   string
	WordLength  int
	Distractors int
	Reverse     bool
	Rand        *rand.Rand

	score   int
	current *Word
}

// Current returns the word in play, or nil before the first Next.
func (g *WordGame) Current() *Word {
	return g.current
}

// Score returns the running score.
func (g *WordGame) Score() int {
	return g.score
}

// Next builds a new word. Each letter is picked by the selector from the
// letters not yet used in this word and marked seen.
func (g *WordGame) Next() (*Word, error) {
	source, answers, toAnswer := g.alphabets()
	if len(source) < g.WordLength || g.WordLength <= 0 {
		return nil, fmt.Errorf("%w: %d letters for a word of %d", ErrPoolTooSmall, len(source), g.WordLength)
	}
	if g.WordLength > MaxTiles {
		return nil, fmt.Errorf("%w: %d letters, at most %d", ErrWordTooLong, g.WordLength, MaxTiles)
	}

	used := make(map[string]bool, g.WordLength)
	w := &Word{}
	for i := 0; i < g.WordLength; i++ {
		available := make([]string, 0, len(source)-len(used))
		for _, c := range source {
			if !used[c] {
				available = append(available, c)
			}
		}
		picked, err := g.Picker.Select(available)
		if err != nil {
			return nil, fmt.Errorf("pick letter %d: %w", i, err)
		}
		used[picked] = true
		g.Picker.MarkSeen(picked)
		w.Items = append(w.Items, picked)
		w.Answers = append(w.Answers, toAnswer[picked])
		if g.Reverse {
			w.Accepted = append(w.Accepted, g.Set.Readings[picked])
		}
	}

	w.Tiles = append(w.Tiles, w.Answers...)
	w.Tiles = append(w.Tiles, g.distractors(answers, w)...)
	g.rng().Shuffle(len(w.Tiles), func(i, j int) {
		w.Tiles[i], w.Tiles[j] = w.Tiles[j], w.Tiles[i]
	})

	g.current = w
	return w, nil
}

// Submit grades placed against the current word. Every letter of the word
// gets the same feedback. A correct word scores its length, a miss costs one
// point down to zero.
func (g *WordGame) Submit(ctx context.Context, placed []string) (Result, error) {
	if g.current == nil {
		return Result{}, fmt.Errorf("submit: no word in play")
	}
	w := g.current
	correct := w.Check(placed)
	if correct {
		g.score += len(w.Items)
	} else if g.score > 0 {
		g.score--
	}

	err := report(ctx, g.Picker, g.Sink, g.SessionID, ModeWord, w.Items, correct)
	return Result{Correct: correct, Expected: w.Answers, Score: g.score}, err
}

// alphabets returns the prompt alphabet, the answer alphabet and the mapping
// between them for the game direction.
func (g *WordGame) alphabets() (source, answers []string, toAnswer map[string]string) {
	if g.Reverse {
		return dedupe(g.Set.Romaji), g.Set.Kana, g.Set.ToKana
	}
	return g.Set.Kana, dedupe(g.Set.Romaji), g.Set.ToRomaji
}

// distractors draws wrong tiles uniformly from the answer alphabet. Tiles
// that would be accepted in any slot are never offered as distractors, and
// the rack never holds more than MaxTiles.
func (g *WordGame) distractors(alphabet []string, w *Word) []string {
	exclude := make(map[string]bool, len(w.Answers))
	for _, a := range w.Answers {
		exclude[a] = true
	}
	for _, slot := range w.Accepted {
		for _, a := range slot {
			exclude[a] = true
		}
	}
	var candidates []string
	for _, a := range alphabet {
		if !exclude[a] {
			candidates = append(candidates, a)
		}
	}

	n := min(g.Distractors, len(candidates), MaxTiles-len(w.Answers))
	if n <= 0 {
		return nil
	}
	r := g.rng()
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:n]
}

func (g *WordGame) rng() *rand.Rand {
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g.Rand
}
