package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vichi100/style-api-server/internal/domain"
)

const embeddingResponse = `{
	"object": "list",
	"data": [{"object": "embedding", "index": 0, "embedding": [0.1, 0.2, 0.3]}],
	"model": "text-embedding-3-small",
	"usage": {"prompt_tokens": 4, "total_tokens": 4}
}`

const rateLimitResponse = `{"error": {"message": "rate limited", "type": "requests"}}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	t.Setenv("TEST_OPENAI_KEY", "sk-test")
	c, err := NewClient(Config{
		BaseURL:   baseURL + "/v1",
		APIKeyEnv: "TEST_OPENAI_KEY",
		Model:     "text-embedding-3-small",
		Dimension: 3,
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestEmbedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(embeddingResponse))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	vec, err := c.Embed(context.Background(), "pink top")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedRetriesRateLimitWithFixedDelays(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitResponse))
			return
		}
		_, _ = w.Write([]byte(embeddingResponse))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }

	vec, err := c.Embed(context.Background(), "pink top")
	require.NoError(t, err)
	assert.Len(t, vec, 3)
	assert.Equal(t, 3, attempts)

	require.Len(t, slept, 2)
	assert.GreaterOrEqual(t, slept[0], defaultRetryDelays[0])
	assert.GreaterOrEqual(t, slept[1], defaultRetryDelays[1])
}

func TestEmbedExhaustsRetrySchedule(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(rateLimitResponse))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.sleep = func(time.Duration) {}

	_, err := c.Embed(context.Background(), "pink top")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbedding)
	assert.Equal(t, len(defaultRetryDelays)+1, attempts)
}

func TestEmbedDoesNotRetryOtherErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.sleep = func(time.Duration) { t.Fatal("must not sleep on non-rate-limit errors") }

	_, err := c.Embed(context.Background(), "pink top")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbedding)
	assert.Equal(t, 1, attempts)
}

func TestNewClientValidation(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "")
	_, err := NewClient(Config{APIKeyEnv: "TEST_OPENAI_KEY", Dimension: 3})
	assert.Error(t, err, "missing key must fail")

	t.Setenv("TEST_OPENAI_KEY", "sk-test")
	_, err = NewClient(Config{APIKeyEnv: "TEST_OPENAI_KEY", Dimension: 0})
	assert.Error(t, err, "dimension is required")
}
