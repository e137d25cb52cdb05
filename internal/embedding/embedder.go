package embedding

import "context"

// Embedder converts free text into a dense vector of fixed dimensionality.
// Implementations are long-lived and safe for concurrent use.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}
