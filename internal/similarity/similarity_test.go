package similarity

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarly/internal/core"
	"scholarly/internal/patterns"
)

type stubEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	s.calls++
	return s.vector, s.err
}

func TestFallbackVectorDeterministic(t *testing.T) {
	first := FallbackVector("sleep deprivation and memory", 64)
	second := FallbackVector("sleep deprivation and memory", 64)

	require.Len(t, first, 64)
	assert.Equal(t, first, second)
}

func TestFallbackVectorIsUnitLength(t *testing.T) {
	vector := FallbackVector("academic performance in college students", 32)

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestFallbackVectorEmptyTextStaysZero(t *testing.T) {
	vector := FallbackVector("", 16)

	require.Len(t, vector, 16)
	for _, v := range vector {
		assert.Zero(t, v)
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}

	assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	assert.Zero(t, CosineSimilarity(a, []float64{1, 2}), "mismatched lengths score zero")
	assert.Zero(t, CosineSimilarity(a, []float64{0, 0, 0}), "zero vectors score zero")
}

func TestMatrixSymmetricWithUnitDiagonal(t *testing.T) {
	vectors := [][]float64{
		FallbackVector("sleep and stress", 16),
		FallbackVector("memory and attention", 16),
		FallbackVector("social media use", 16),
	}

	matrix := Matrix(vectors)

	require.Len(t, matrix, 3)
	for i := range matrix {
		assert.InDelta(t, 1.0, matrix[i][i], 1e-9)
		for j := range matrix[i] {
			assert.InDelta(t, matrix[j][i], matrix[i][j], 1e-9)
		}
	}
}

func TestEmbedUsesServiceWhenAvailable(t *testing.T) {
	embedder := &stubEmbedder{vector: []float64{0.1, 0.2, 0.3}}
	engine := NewEngine(embedder, 3)

	outcome := engine.Embed(context.Background(), "some text")

	assert.Equal(t, core.OutcomeOK, outcome.Status)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, outcome.Value)
	assert.Equal(t, 1, embedder.calls)
}

func TestEmbedFallsBackOnServiceError(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	engine := NewEngine(embedder, 16)

	outcome := engine.Embed(context.Background(), "some text")

	assert.Equal(t, core.OutcomeFallback, outcome.Status)
	assert.Equal(t, FallbackVector("some text", 16), outcome.Value)
	assert.True(t, outcome.Usable())
}

func TestEmbedNilEmbedderAlwaysFallsBack(t *testing.T) {
	engine := NewEngine(nil, 8)

	outcome := engine.Embed(context.Background(), "offline text")

	assert.Equal(t, core.OutcomeFallback, outcome.Status)
	assert.Equal(t, FallbackVector("offline text", 8), outcome.Value)
}

func TestEmbedSourcesSubstitutesPerSource(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("unavailable")}
	engine := NewEngine(embedder, 8)
	sources := []core.Source{
		{ID: "s1", Title: "Sleep and memory"},
		{ID: "s2", Title: "Stress at work"},
	}

	vectors := engine.EmbedSources(context.Background(), sources)

	require.Len(t, vectors, 2)
	assert.Equal(t, FallbackVector(patterns.SourceText(sources[0]), 8), vectors["s1"])
	assert.Equal(t, FallbackVector(patterns.SourceText(sources[1]), 8), vectors["s2"])
	assert.Equal(t, 2, embedder.calls)
}

func TestNewEngineDefaultsDimensions(t *testing.T) {
	engine := NewEngine(nil, 0)

	outcome := engine.Embed(context.Background(), "text")

	assert.Len(t, outcome.Value, DefaultDimensions)
}
