package drill

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWordGame(t *testing.T, p Picker, sink Sink, groups ...string) *WordGame {
	t.Helper()
	return &WordGame{
		Picker:      p,
		Sink:        sink,
		Set:         mustSet(t, groups...),
		SessionID:   "session-1",
		WordLength:  3,
		Distractors: 3,
		Rand:        rand.New(rand.NewPCG(3, 4)),
	}
}

func TestWordGame_NextBuildsDistinctWord(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "hiragana/ka", "hiragana/sa")

	w, err := g.Next()
	require.NoError(t, err)
	require.Len(t, w.Items, 3)
	require.Len(t, w.Answers, 3)
	assert.Len(t, w.Tiles, 6)

	seen := map[string]bool{}
	for i, it := range w.Items {
		assert.False(t, seen[it], "letter %q repeated", it)
		seen[it] = true
		assert.Equal(t, g.Set.ToRomaji[it], w.Answers[i])
	}
	assert.Equal(t, w.Items, p.seen, "every picked letter is marked seen once, in order")

	// Each pick excludes the letters already in the word.
	require.Len(t, p.pools, 3)
	assert.Len(t, p.pools[0], 10)
	assert.Len(t, p.pools[1], 9)
	assert.Len(t, p.pools[2], 8)
	assert.NotContains(t, p.pools[1], w.Items[0])
	assert.NotContains(t, p.pools[2], w.Items[1])

	tiles := map[string]int{}
	for _, tile := range w.Tiles {
		tiles[tile]++
	}
	for _, a := range w.Answers {
		assert.Equal(t, 1, tiles[a], "answer %q must appear once among tiles", a)
	}
}

func TestWordGame_Reverse(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "katakana/a")
	g.Reverse = true

	w, err := g.Next()
	require.NoError(t, err)
	for i, it := range w.Items {
		assert.Contains(t, g.Set.Romaji, it)
		assert.Equal(t, g.Set.ToKana[it], w.Answers[i])
	}
	// Five letters, three used: only two distractors remain.
	assert.Len(t, w.Tiles, 5)
}

func TestWordGame_PoolTooSmall(t *testing.T) {
	g := newWordGame(t, newRecordingPicker(t), nil, "hiragana/wa")
	g.WordLength = 4
	_, err := g.Next()
	assert.ErrorIs(t, err, ErrPoolTooSmall)
}

func TestWordGame_SubmitCorrect(t *testing.T) {
	p := newRecordingPicker(t)
	sink := &memorySink{}
	g := newWordGame(t, p, sink, "hiragana")

	w, err := g.Next()
	require.NoError(t, err)

	res, err := g.Submit(context.Background(), w.Answers)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 3, res.Score)

	require.Len(t, sink.outcomes, 3)
	for i, o := range sink.outcomes {
		assert.Equal(t, w.Items[i], o.Item)
		assert.Equal(t, ModeWord, o.Mode)
		assert.Equal(t, "session-1", o.SessionID)
		assert.True(t, o.Correct)
	}
	for _, it := range w.Items {
		assert.Equal(t, []bool{true}, p.updates[it])
		assert.Less(t, p.Weight(it), 1.0)
	}
}

func TestWordGame_SubmitWrongBoostsEveryLetter(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "hiragana")

	w, err := g.Next()
	require.NoError(t, err)

	placed := []string{w.Answers[1], w.Answers[0], w.Answers[2]}
	if w.Answers[0] == w.Answers[1] {
		placed = w.Answers[:2]
	}
	res, err := g.Submit(context.Background(), placed)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, w.Answers, res.Expected)
	assert.Equal(t, 0, res.Score, "score never goes below zero")

	for _, it := range w.Items {
		assert.Greater(t, p.Weight(it), 1.0)
	}
}

func TestWordGame_ScorePenalty(t *testing.T) {
	g := newWordGame(t, newRecordingPicker(t), nil, "hiragana")
	ctx := context.Background()

	w, _ := g.Next()
	_, _ = g.Submit(ctx, w.Answers)
	_, _ = g.Next()
	res, _ := g.Submit(ctx, nil)
	assert.Equal(t, 2, res.Score)
}

func TestWordGame_SubmitWithoutWord(t *testing.T) {
	g := newWordGame(t, newRecordingPicker(t), nil, "hiragana")
	_, err := g.Submit(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestWordGame_SinkErrorStillUpdatesWeights(t *testing.T) {
	p := newRecordingPicker(t)
	sink := &memorySink{err: errors.New("offline")}
	g := newWordGame(t, p, sink, "hiragana")

	w, err := g.Next()
	require.NoError(t, err)
	_, err = g.Submit(context.Background(), nil)
	assert.Error(t, err)
	assert.Len(t, sink.outcomes, 3)
	for _, it := range w.Items {
		assert.Equal(t, []bool{false}, p.updates[it])
	}
}

func TestWord_Check(t *testing.T) {
	w := &Word{Answers: []string{"ka", "ki"}}
	assert.True(t, w.Check([]string{"ka", "ki"}))
	assert.False(t, w.Check([]string{"ki", "ka"}))
	assert.False(t, w.Check([]string{"ka"}))
	assert.False(t, w.Check(nil))
}

func TestWord_CheckAcceptedPerSlot(t *testing.T) {
	w := &Word{
		Answers:  []string{"か", "こ"},
		Accepted: [][]string{{"か", "カ"}, {"こ", "コ"}},
	}
	assert.True(t, w.Check([]string{"カ", "こ"}))
	assert.True(t, w.Check([]string{"か", "コ"}))
	assert.False(t, w.Check([]string{"コ", "か"}), "alternatives only count in their own slot")
}

func TestWordGame_ReverseBothScripts(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "hiragana/ka", "katakana/ka")
	g.Reverse = true
	g.WordLength = 1
	g.Distractors = 8

	for i := 0; i < 50; i++ {
		w, err := g.Next()
		require.NoError(t, err)
		reading := w.Items[0]
		require.Len(t, g.Set.Readings[reading], 2)

		for _, tile := range w.Tiles {
			if tile != w.Answers[0] {
				assert.False(t, g.Set.Reads(reading, tile), "%q offered as a wrong tile for %q", tile, reading)
			}
		}

		other := g.Set.Readings[reading][1]
		assert.True(t, w.Check([]string{other}), "%q should be accepted for %q", other, reading)
	}
}

func TestWordGame_ReverseOtherScriptIsCorrect(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "hiragana/ka", "katakana/ka")
	g.Reverse = true
	g.WordLength = 2

	w, err := g.Next()
	require.NoError(t, err)
	placed := []string{g.Set.Readings[w.Items[0]][1], g.Set.Readings[w.Items[1]][1]}

	res, err := g.Submit(context.Background(), placed)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	for _, it := range w.Items {
		assert.Less(t, p.Weight(it), 1.0)
	}
}

func TestWordGame_TilesFitTheRack(t *testing.T) {
	g := newWordGame(t, newRecordingPicker(t), nil, "hiragana")
	g.WordLength = 8
	g.Distractors = 3

	w, err := g.Next()
	require.NoError(t, err)
	assert.Len(t, w.Tiles, MaxTiles)
	for _, a := range w.Answers {
		assert.Contains(t, w.Tiles, a)
	}
}

func TestWordGame_WordTooLong(t *testing.T) {
	g := newWordGame(t, newRecordingPicker(t), nil, "hiragana")
	g.WordLength = MaxTiles + 1
	_, err := g.Next()
	assert.ErrorIs(t, err, ErrWordTooLong)
}

func TestWordGame_WeakLettersResurface(t *testing.T) {
	p := newRecordingPicker(t)
	g := newWordGame(t, p, nil, "hiragana/a", "hiragana/ka")
	g.WordLength = 1

	for i := 0; i < 6; i++ {
		p.UpdateWeight("け", false)
	}

	hits := 0
	for i := 0; i < 200; i++ {
		w, err := g.Next()
		require.NoError(t, err)
		if w.Items[0] == "け" {
			hits++
		}
	}
	// Uniform would be 20 of 200.
	assert.Greater(t, hits, 40)
}
