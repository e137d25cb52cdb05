package vectorstore

import "context"

// Point is the persisted form of a rule fragment: a strictly increasing
// integer id, the embedding vector, and the payload used to cite the rule
// on retrieval.
type Point struct {
	ID     uint64
	Vector []float32
	Source string
	Text   string
}

// Hit is one nearest-neighbour match, ordered by descending cosine
// similarity.
type Hit struct {
	ID         uint64
	Similarity float64
	Source     string
	Text       string
}

// Store persists embedding vectors in a similarity-searchable collection.
// Upserts happen only during ingestion; queries are read-only and safe for
// concurrent use.
type Store interface {
	// Exists reports whether the collection has been created.
	Exists(ctx context.Context) (bool, error)
	// Create creates the collection with the given vector dimension and
	// cosine distance. Calling Create on an existing collection is an error;
	// callers gate it behind Exists.
	Create(ctx context.Context, dimension int) error
	// Upsert writes points in a single batch.
	Upsert(ctx context.Context, points []Point) error
	// Query returns up to limit hits for the vector, optionally restricted
	// to points whose source equals sourceFilter. An empty result is valid.
	Query(ctx context.Context, vector []float32, limit int, sourceFilter string) ([]Hit, error)
	// Count returns the number of stored points.
	Count(ctx context.Context) (uint64, error)
	// Drop deletes the collection, for forced re-ingestion.
	Drop(ctx context.Context) error
}
