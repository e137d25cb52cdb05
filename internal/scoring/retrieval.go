package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/vichi100/style-api-server/internal/domain"
	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// Retrieve embeds the query and returns the top-limit nearest rule
// fragments, optionally restricted to one source rule book. An empty hit
// list is a valid result; an uninitialized index is not.
func (s *Service) Retrieve(ctx context.Context, query string, limit int, sourceFilter string) ([]vectorstore.Hit, error) {
	if !s.ready.Load() {
		return nil, domain.ErrIndexUnavailable
	}
	if limit <= 0 {
		limit = s.cfg.RetrievalLimit
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	hits, err := s.store.Query(ctx, vec, limit, sourceFilter)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return hits, nil
}

// RetrieveRelevantRules returns retrieved rule text formatted as prompt
// context for the downstream generation step.
func (s *Service) RetrieveRelevantRules(ctx context.Context, query string, limit int) (string, error) {
	hits, err := s.Retrieve(ctx, query, limit, "")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, hit := range hits {
		fmt.Fprintf(&b, "Rule %d (Source: %s): %s\n", i+1, hit.Source, hit.Text)
	}
	return b.String(), nil
}

// RetrieveFromSource returns prompt context drawn from a single rule book
// only, e.g. the detailed colour dictionary.
func (s *Service) RetrieveFromSource(ctx context.Context, query, sourceFilename string, limit int) (string, error) {
	hits, err := s.Retrieve(ctx, query, limit, sourceFilename)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, hit := range hits {
		fmt.Fprintf(&b, "- %s\n", hit.Text)
	}
	return b.String(), nil
}
