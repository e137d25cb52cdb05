package openai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/vichi100/style-api-server/internal/domain"
)

// defaultRetryDelays is the schedule applied between attempts when the
// provider answers with a rate-limit error. Any other error class fails
// immediately.
var defaultRetryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	3 * time.Second,
	2 * time.Second,
}

// Client embeds text through an OpenAI-compatible embeddings endpoint.
type Client struct {
	client      *openai.Client
	model       string
	dimension   int
	retryDelays []time.Duration
	sleep       func(time.Duration)
}

// Config configures the embeddings client. Dimension must match the vector
// index the embeddings are stored in.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Dimension int
	Timeout   time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Dimension <= 0 {
		return nil, errors.New("embedding dimension must be positive")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		dimension:   cfg.Dimension,
		retryDelays: defaultRetryDelays,
		sleep:       time.Sleep,
	}, nil
}

func (c *Client) Name() string { return "openai" }

func (c *Client) Dimension() int { return c.dimension }

// Embed requests an embedding for text, retrying rate-limit responses
// according to the fixed delay schedule and re-raising on exhaustion.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: c.dimension,
	}
	for attempt := 0; ; attempt++ {
		resp, err := c.client.CreateEmbeddings(ctx, req)
		if err == nil {
			if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
				return nil, fmt.Errorf("%w: empty embedding response", domain.ErrEmbedding)
			}
			return resp.Data[0].Embedding, nil
		}
		if !isRateLimit(err) || attempt >= len(c.retryDelays) {
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
		}
		c.sleep(c.retryDelays[attempt] + jitter())
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEmbedding, ctx.Err())
		}
	}
}

// isRateLimit reports whether the error is the provider telling us to back
// off, as opposed to a genuine failure.
func isRateLimit(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}

func jitter() time.Duration {
	return time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
}
