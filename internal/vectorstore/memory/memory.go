package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// Store is an in-process vector store using brute-force cosine similarity.
// It mirrors the collection lifecycle of the remote store so the scoring
// engine behaves identically against either.
type Store struct {
	mu        sync.RWMutex
	created   bool
	dimension int
	points    []vectorstore.Point
}

func NewStore() *Store { return &Store{} }

func (s *Store) Exists(context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.created, nil
}

func (s *Store) Create(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.created {
		return errors.New("collection already exists")
	}
	s.created = true
	s.dimension = dimension
	return nil
}

func (s *Store) Upsert(_ context.Context, points []vectorstore.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		return errors.New("collection does not exist")
	}
	for _, p := range points {
		if len(p.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	byID := make(map[uint64]int, len(s.points))
	for i, p := range s.points {
		byID[p.ID] = i
	}
	for _, p := range points {
		if i, ok := byID[p.ID]; ok {
			s.points[i] = p
			continue
		}
		byID[p.ID] = len(s.points)
		s.points = append(s.points, p)
	}
	return nil
}

func (s *Store) Query(_ context.Context, vector []float32, limit int, sourceFilter string) ([]vectorstore.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return nil, errors.New("collection does not exist")
	}
	if limit <= 0 {
		limit = 5
	}
	hits := make([]vectorstore.Hit, 0, len(s.points))
	for _, p := range s.points {
		if sourceFilter != "" && p.Source != sourceFilter {
			continue
		}
		hits = append(hits, vectorstore.Hit{
			ID:         p.ID,
			Similarity: cosine(p.Vector, vector),
			Source:     p.Source,
			Text:       p.Text,
		})
	}
	// Ties broken by id so repeated identical queries rank identically.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ID < hits[j].ID
	})
	if limit > len(hits) {
		limit = len(hits)
	}
	return hits[:limit], nil
}

func (s *Store) Count(context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return 0, errors.New("collection does not exist")
	}
	return uint64(len(s.points)), nil
}

func (s *Store) Drop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = false
	s.dimension = 0
	s.points = nil
	return nil
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
