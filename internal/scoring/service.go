package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vichi100/style-api-server/internal/config"
	"github.com/vichi100/style-api-server/internal/corpus"
	"github.com/vichi100/style-api-server/internal/embedding"
	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// embedPrefix disambiguates fragments from different rule books at
// embedding time. The stored payload text stays unprefixed.
const embedPrefix = "Rule from %s: %s"

// Service is the retrieval-augmented scoring engine. The embedder and
// store are long-lived and injected once; after Initialize has completed,
// every method is safe for concurrent use.
type Service struct {
	embedder  embedding.Embedder
	store     vectorstore.Store
	corpusDir string
	cfg       config.ScoringConfig
	logger    *slog.Logger

	initMu sync.Mutex
	ready  atomic.Bool
}

func New(embedder embedding.Embedder, store vectorstore.Store, corpusDir string, cfg config.ScoringConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		embedder:  embedder,
		store:     store,
		corpusDir: corpusDir,
		cfg:       cfg,
		logger:    logger,
	}
}

// Initialize prepares the vector collection, ingesting the rule corpus if
// the collection does not exist yet. It must complete before any retrieval
// is served. Concurrent calls are serialized; only the first one ingests.
func (s *Service) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.ready.Load() {
		return nil
	}
	exists, err := s.store.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		s.logger.Info("collection exists, skipping ingestion")
		s.ready.Store(true)
		return nil
	}
	if err := s.ingest(ctx); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

// Reindex drops the collection and rebuilds it from the corpus on disk.
// There is no incremental diffing; a corpus change means a full rebuild.
func (s *Service) Reindex(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	s.ready.Store(false)
	if err := s.store.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	if err := s.ingest(ctx); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

// ingest flattens every rule book, embeds each fragment, and upserts the
// whole batch. An embedding failure aborts the ingest: a partial index is
// worse than no index, and the caller must retry before serving.
func (s *Service) ingest(ctx context.Context) error {
	docs, err := corpus.LoadDir(s.corpusDir, s.logger)
	if err != nil {
		return err
	}
	if err := s.store.Create(ctx, s.embedder.Dimension()); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	var points []vectorstore.Point
	var id uint64
	for _, doc := range docs {
		for _, frag := range corpus.Flatten(doc) {
			vec, err := s.embedder.Embed(ctx, fmt.Sprintf(embedPrefix, frag.Source, frag.Text))
			if err != nil {
				return fmt.Errorf("embed fragment %d of %s: %w", id, frag.Source, err)
			}
			points = append(points, vectorstore.Point{
				ID:     id,
				Vector: vec,
				Source: frag.Source,
				Text:   frag.Text,
			})
			id++
		}
	}
	if err := s.store.Upsert(ctx, points); err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}
	s.logger.Info("ingested rule corpus", "documents", len(docs), "fragments", len(points))
	return nil
}

// Ready reports whether initialization has completed.
func (s *Service) Ready() bool { return s.ready.Load() }
