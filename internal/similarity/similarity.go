// Package similarity embeds source text and computes pairwise cosine
// similarity. Embedding failures degrade per source to a deterministic
// pseudo-embedding with the same dimensionality, so downstream code never
// branches on which path produced a vector.
package similarity

import (
	"context"
	"math"

	"scholarly/internal/core"
	"scholarly/internal/logger"
	"scholarly/internal/patterns"
)

// DefaultDimensions matches the embedding model's output dimensionality.
const DefaultDimensions = 768

// Embedder is the external embedding service contract.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Engine embeds sources and builds similarity matrices.
type Engine struct {
	embedder   Embedder
	dimensions int
}

// NewEngine creates a similarity engine. A nil embedder routes every source
// through the fallback path, which keeps the engine usable offline.
func NewEngine(embedder Embedder, dimensions int) *Engine {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &Engine{embedder: embedder, dimensions: dimensions}
}

// Embed returns a vector for the given text, substituting the deterministic
// fallback when the embedding service fails. The outcome is tagged but never
// failed: one embedding failure must not block a batch.
func (e *Engine) Embed(ctx context.Context, text string) core.Outcome[[]float64] {
	if e.embedder != nil {
		vector, err := e.embedder.GenerateEmbedding(ctx, text)
		if err == nil && len(vector) > 0 {
			return core.Ok(vector)
		}
		if err != nil {
			logger.Warn("embedding call failed, using fallback vector", "error", err.Error())
		}
	}
	return core.Fallback(FallbackVector(text, e.dimensions))
}

// EmbedSources embeds every source's scan text, keyed by source id. Failures
// are independent and substituted per source.
func (e *Engine) EmbedSources(ctx context.Context, sources []core.Source) map[string][]float64 {
	vectors := make(map[string][]float64, len(sources))
	for _, source := range sources {
		outcome := e.Embed(ctx, patterns.SourceText(source))
		vectors[source.ID] = outcome.Value
	}
	return vectors
}

// FallbackVector computes a deterministic pseudo-embedding by hashing
// characters into a fixed-length accumulator and L2-normalizing. It preserves
// the downstream contract of a fixed-length numeric vector.
func FallbackVector(text string, dimensions int) []float64 {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	vector := make([]float64, dimensions)
	for i, r := range text {
		vector[i%dimensions] += float64(r % 97)
	}

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vector
	}
	for i := range vector {
		vector[i] /= norm
	}
	return vector
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matrix computes the symmetric pairwise similarity matrix for the given
// vectors, with 1.0 on the diagonal.
func Matrix(vectors [][]float64) [][]float64 {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := CosineSimilarity(vectors[i], vectors[j])
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix
}
