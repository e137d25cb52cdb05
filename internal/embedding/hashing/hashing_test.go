package hashing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedDeterministic(t *testing.T) {
	e, err := NewEmbedder(DefaultDimension)
	require.NoError(t, err)

	first, err := e.Embed(context.Background(), "pink silk blouse with pearl buttons")
	require.NoError(t, err)
	require.Len(t, first, DefaultDimension)

	for n := 0; n < 3; n++ {
		again, err := e.Embed(context.Background(), "pink silk blouse with pearl buttons")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEmbedUnitNorm(t *testing.T) {
	e, err := NewEmbedder(64)
	require.NoError(t, err)
	vec, err := e.Embed(context.Background(), "linen trousers")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestEmbedStopwordsOnlyYieldsZeroVector(t *testing.T) {
	e, err := NewEmbedder(64)
	require.NoError(t, err)
	vec, err := e.Embed(context.Background(), "the and of")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestSharedTokensCorrelate(t *testing.T) {
	e, err := NewEmbedder(DefaultDimension)
	require.NoError(t, err)
	a, err := e.Embed(context.Background(), "pink blouse")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "pink skirt")
	require.NoError(t, err)

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	assert.Greater(t, dot, 0.0, "texts sharing a token should have positive similarity")
}

func TestInvalidDimension(t *testing.T) {
	_, err := NewEmbedder(0)
	assert.Error(t, err)
	_, err = NewEmbedder(-3)
	assert.Error(t, err)
}

func TestDimensionReported(t *testing.T) {
	e, err := NewEmbedder(128)
	require.NoError(t, err)
	assert.Equal(t, 128, e.Dimension())
	assert.Equal(t, "hashing", e.Name())
}
