package scoring

import (
	"context"
	"strings"

	"github.com/vichi100/style-api-server/internal/domain"
)

// ScoreOutfitSemantic scores an outfit against the rule corpus. The query
// is built from the item descriptors plus the target occasion; the mood
// gate embeds the items without the occasion so the two similarities stay
// independent. At least one of top/bottom must be present.
func (s *Service) ScoreOutfitSemantic(ctx context.Context, top, bottom *domain.OutfitItem, mood string) (*domain.ScoreResult, error) {
	if !s.ready.Load() {
		return nil, domain.ErrIndexUnavailable
	}
	desc := outfitDescriptors(top, bottom)
	if len(desc) == 0 {
		return nil, domain.ErrEmptyOutfit
	}
	itemsText := strings.Join(desc, " ")
	queryText := itemsText
	if mood != "" {
		queryText += " Target Occasion: " + mood
	}

	multiplier, moodSim, err := s.moodMultiplier(ctx, itemsText, mood)
	if err != nil {
		return nil, err
	}
	hits, err := s.Retrieve(ctx, queryText, s.cfg.RetrievalLimit, "")
	if err != nil {
		return nil, err
	}
	if multiplier != 1.0 {
		s.logger.Info("mood gate applied", "occasion", mood, "similarity", moodSim, "multiplier", multiplier)
	}
	result := fuseScore(hits, multiplier, moodSim, mood, s.cfg)
	return &result, nil
}
