package domain

import "errors"

var (
	// ErrIndexUnavailable is returned by retrieval operations before the
	// vector index has been initialized. It distinguishes "index not ready"
	// from a valid empty result set.
	ErrIndexUnavailable = errors.New("vector index not initialized")

	// ErrEmptyOutfit is returned when scoring is requested with neither a
	// top nor a bottom item.
	ErrEmptyOutfit = errors.New("outfit has no items")

	// ErrEmbedding wraps failures of the embedding service. During
	// ingestion it is fatal; during retrieval it propagates to the caller
	// instead of degrading into an empty result.
	ErrEmbedding = errors.New("embedding service failure")
)
