package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vichi100/style-api-server/internal/vectorstore"
)

// Store is a minimal REST client to a Qdrant collection using cosine
// distance.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Store) Exists(ctx context.Context) (bool, error) {
	var resp struct {
		Result struct {
			Exists bool `json:"exists"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/exists", s.url, s.collection)
	if err := s.do(ctx, http.MethodGet, url, nil, &resp); err != nil {
		return false, err
	}
	return resp.Result.Exists, nil
}

func (s *Store) Create(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	return s.do(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":     p.ID,
			"vector": p.Vector,
			"payload": map[string]any{
				"source": p.Source,
				"text":   p.Text,
			},
		}
	}
	body := map[string]any{"points": payload}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	return s.do(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) Query(ctx context.Context, vector []float32, limit int, sourceFilter string) ([]vectorstore.Hit, error) {
	if limit <= 0 {
		limit = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if sourceFilter != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "source", "match": map[string]any{"value": sourceFilter}},
			},
		}
	}
	var resp struct {
		Result []struct {
			ID      uint64         `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}
	hits := make([]vectorstore.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hit := vectorstore.Hit{ID: r.ID, Similarity: r.Score}
		if v, ok := r.Payload["source"].(string); ok {
			hit.Source = v
		}
		if v, ok := r.Payload["text"].(string); ok {
			hit.Text = v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func (s *Store) Count(ctx context.Context) (uint64, error) {
	var resp struct {
		Result struct {
			Count uint64 `json:"count"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection)
	if err := s.do(ctx, http.MethodPost, url, map[string]any{"exact": true}, &resp); err != nil {
		return 0, err
	}
	return resp.Result.Count, nil
}

func (s *Store) Drop(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	return s.do(ctx, http.MethodDelete, url, nil, nil)
}

func (s *Store) do(ctx context.Context, method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
