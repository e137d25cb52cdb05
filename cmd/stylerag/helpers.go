package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vichi100/style-api-server/internal/config"
	"github.com/vichi100/style-api-server/internal/embedding"
	"github.com/vichi100/style-api-server/internal/embedding/hashing"
	"github.com/vichi100/style-api-server/internal/embedding/openai"
	"github.com/vichi100/style-api-server/internal/scoring"
	"github.com/vichi100/style-api-server/internal/vectorstore"
	"github.com/vichi100/style-api-server/internal/vectorstore/memory"
	"github.com/vichi100/style-api-server/internal/vectorstore/qdrant"
)

func loadConfig() (*config.AppConfig, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

// buildService assembles the long-lived embedder and store singletons and
// injects them into the scoring engine.
func buildService(cfg *config.AppConfig) (*scoring.Service, error) {
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "hashing", "":
		h, err := hashing.NewEmbedder(cfg.Embedder.Dimension)
		if err != nil {
			return nil, fmt.Errorf("hashing embedder init failed: %w", err)
		}
		emb = h
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Dimension: cfg.Embedder.Dimension,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embedder init failed: %w", err)
		}
		emb = client
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st vectorstore.Store
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStore()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		st = qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	return scoring.New(emb, st, cfg.Corpus.Dir, cfg.Scoring, slog.Default()), nil
}
