package scoring

import (
	"context"
	"math"

	"github.com/vichi100/style-api-server/internal/config"
)

// moodMultiplier computes the penalty/boost applied when a target occasion
// is specified. It embeds the outfit items (without the mood) and the mood
// separately and maps their cosine similarity through the configured
// breakpoints. An empty mood skips the gate entirely: no embedding calls,
// multiplier 1.0.
func (s *Service) moodMultiplier(ctx context.Context, itemsText, mood string) (multiplier, similarity float64, err error) {
	if mood == "" {
		return 1.0, 0, nil
	}
	itemsVec, err := s.embedder.Embed(ctx, itemsText)
	if err != nil {
		return 0, 0, err
	}
	moodVec, err := s.embedder.Embed(ctx, mood)
	if err != nil {
		return 0, 0, err
	}
	sim := cosine(itemsVec, moodVec)
	return multiplierFor(sim, s.cfg.Mood), sim, nil
}

// multiplierFor is the deterministic piecewise mapping from similarity to
// multiplier. Cosine similarity between short descriptor phrases and a
// one/two-word occasion label is a weak but cheap mismatch detector.
func multiplierFor(similarity float64, cfg config.MoodConfig) float64 {
	switch {
	case similarity < cfg.SevereBelow:
		return cfg.SevereMultiplier
	case similarity < cfg.ModerateBelow:
		return cfg.ModerateMultiplier
	case similarity > cfg.BoostAbove:
		return cfg.BoostMultiplier
	default:
		return 1.0
	}
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
