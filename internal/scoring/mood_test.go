package scoring

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vichi100/style-api-server/internal/config"
	"github.com/vichi100/style-api-server/internal/vectorstore/memory"
)

// vocabEmbedder maps known tokens onto fixed axes, making every cosine in
// a test predictable by hand. Unknown tokens are ignored.
type vocabEmbedder struct {
	vocab map[string]int
	dim   int
	calls int
}

var testTokenRe = regexp.MustCompile(`\p{L}+`)

func newVocabEmbedder(tokens ...string) *vocabEmbedder {
	vocab := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		// Aliases like "gym=sports" share one axis.
		if alias, canonical, ok := strings.Cut(tok, "="); ok {
			vocab[alias] = vocab[canonical]
			continue
		}
		vocab[tok] = len(vocab)
	}
	return &vocabEmbedder{vocab: vocab, dim: len(tokens) + 1}
}

func (e *vocabEmbedder) Name() string   { return "vocab" }
func (e *vocabEmbedder) Dimension() int { return e.dim }

func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	vec := make([]float32, e.dim)
	for _, tok := range testTokenRe.FindAllString(strings.ToLower(text), -1) {
		if axis, ok := e.vocab[tok]; ok {
			vec[axis]++
		}
	}
	return vec, nil
}

func TestMultiplierForBreakpoints(t *testing.T) {
	cfg := config.DefaultScoring().Mood
	cases := []struct {
		similarity float64
		want       float64
	}{
		{0.10, 0.4},
		{0.149, 0.4},
		{0.15, 0.7},
		{0.20, 0.7},
		{0.25, 1.0},
		{0.30, 1.0},
		{0.40, 1.0},
		{0.401, 1.1},
		{0.45, 1.1},
		{0.99, 1.1},
		{-0.2, 0.4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, multiplierFor(tc.similarity, cfg), "similarity %v", tc.similarity)
	}
}

func TestMoodMultiplierSkipsEmptyMood(t *testing.T) {
	emb := newVocabEmbedder("gym", "formal")
	svc := New(emb, memory.NewStore(), t.TempDir(), config.DefaultScoring(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	mult, sim, err := svc.moodMultiplier(context.Background(), "Top: sports bra", "")
	require.NoError(t, err)
	assert.Equal(t, 1.0, mult)
	assert.Zero(t, sim)
	assert.Zero(t, emb.calls, "empty mood must not trigger embedding calls")
}

func TestMoodMultiplierMismatchAndMatch(t *testing.T) {
	emb := newVocabEmbedder("sports", "gym=sports", "spandex", "leggings", "bra", "formal", "gala")
	svc := New(emb, memory.NewStore(), t.TempDir(), config.DefaultScoring(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	items := "Top: spandex leggings, sports bra"

	mult, sim, err := svc.moodMultiplier(context.Background(), items, "formal gala")
	require.NoError(t, err)
	assert.Zero(t, sim, "no shared axes")
	assert.Equal(t, 0.4, mult)

	mult, sim, err = svc.moodMultiplier(context.Background(), items, "gym sports session")
	require.NoError(t, err)
	assert.Greater(t, sim, 0.4)
	assert.Equal(t, 1.1, mult)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}), "zero vector has zero similarity")
}
