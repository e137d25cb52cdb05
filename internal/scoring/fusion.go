package scoring

import (
	"fmt"
	"math"

	"github.com/vichi100/style-api-server/internal/config"
	"github.com/vichi100/style-api-server/internal/domain"
	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// fuseScore combines per-fragment relevance contributions and the mood
// multiplier into a bounded total. Every retrieved fragment is cited in
// the breakdown; only those above the relevance threshold contribute
// points. The total is capped before the multiplier is applied and
// re-clamped after, never reaching zero.
func fuseScore(hits []vectorstore.Hit, multiplier, moodSimilarity float64, mood string, cfg config.ScoringConfig) domain.ScoreResult {
	total := cfg.BaseScore
	breakdown := make([]domain.BreakdownEntry, 0, len(hits))
	for _, hit := range hits {
		points := 0
		if hit.Similarity > cfg.RelevanceThreshold {
			points = int(math.Floor(hit.Similarity * 10))
			total += points
		}
		breakdown = append(breakdown, domain.BreakdownEntry{
			Criterion:    "Rule Relevance",
			Score:        points,
			RuleCitation: hit.Text,
			Similarity:   hit.Similarity,
		})
	}
	if total > cfg.MaxScore {
		total = cfg.MaxScore
	}
	if multiplier != 1.0 {
		total = int(float64(total) * multiplier)
	}
	if total > cfg.MaxScore {
		total = cfg.MaxScore
	}
	if total < cfg.MinScore {
		total = cfg.MinScore
	}

	topMatch := "None"
	if len(hits) > 0 {
		topMatch = hits[0].Text
	}
	critique := fmt.Sprintf("Analyzed against semantically relevant rules. Top match: %s.", topMatch)
	switch {
	case multiplier < 0.8:
		critique += fmt.Sprintf(" WARNING: Significant mismatch detected with occasion '%s' (Sim: %.2f).", mood, moodSimilarity)
	case multiplier > 1.0:
		critique += fmt.Sprintf(" Great fit for occasion '%s'!", mood)
	}

	return domain.ScoreResult{
		TotalScore: total,
		Breakdown:  breakdown,
		Critique:   critique,
	}
}
