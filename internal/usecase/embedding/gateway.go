// Package embedding provides the dimension-validating gateway in front
// of the embedding provider chain.
package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
)

// MaxAPIBatchSize caps how many texts go into a single provider call.
const MaxAPIBatchSize = 256

// provider is the inner embedder contract.
type provider interface {
	domain.Embedder
	domain.BatchEmbedder
}

// Gateway is the single entry point for text vectorization. Every vector
// leaving it is guaranteed to have the configured dimensionality; a
// mismatch means the provider and index configuration have diverged and
// surfaces as domain.ErrEmbeddingDimMismatch.
type Gateway struct {
	inner     provider
	model     string
	dimension int
	logger    *zap.Logger
}

// NewGateway creates a validating gateway over an embedding provider.
func NewGateway(inner provider, model string, dimension int, logger *zap.Logger) *Gateway {
	return &Gateway{inner: inner, model: model, dimension: dimension, logger: logger}
}

// Model returns the configured embedding model name.
func (g *Gateway) Model() string { return g.model }

// Dimension returns the configured vector dimensionality.
func (g *Gateway) Dimension() int { return g.dimension }

// Embed vectorizes one text and validates the result dimension.
func (g *Gateway) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()

	result, err := g.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}

	if err := g.checkDim(result.Embedding); err != nil {
		return domain.EmbeddingResult{}, err
	}

	g.logger.Debug("Embedding completed",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("total_tokens", result.TotalTokens))

	return result, nil
}

// BatchEmbed vectorizes texts in provider-sized chunks and validates
// every returned vector.
func (g *Gateway) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if len(texts) == 0 {
		return domain.BatchEmbeddingResult{}, nil
	}

	start := time.Now()

	var all [][]float32
	var totalPrompt, totalTokens int

	for offset := 0; offset < len(texts); offset += MaxAPIBatchSize {
		end := min(offset+MaxAPIBatchSize, len(texts))
		chunk, err := g.inner.BatchEmbed(ctx, texts[offset:end])
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed (offset %d): %w", offset, err)
		}

		for i, vec := range chunk.Embeddings {
			if err := g.checkDim(vec); err != nil {
				return domain.BatchEmbeddingResult{}, fmt.Errorf("text %d: %w", offset+i, err)
			}
		}

		all = append(all, chunk.Embeddings...)
		totalPrompt += chunk.PromptTokens
		totalTokens += chunk.TotalTokens
	}

	g.logger.Debug("Batch embedding completed",
		zap.String("model", g.model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("batch_size", len(texts)),
		zap.Int("total_tokens", totalTokens))

	return domain.BatchEmbeddingResult{
		Embeddings:   all,
		PromptTokens: totalPrompt,
		TotalTokens:  totalTokens,
	}, nil
}

// HealthCheck delegates to the inner provider when it supports it.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	if hc, ok := g.inner.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding provider: %w", err)
		}
	}
	return nil
}

func (g *Gateway) checkDim(vec []float32) error {
	if len(vec) != g.dimension {
		return fmt.Errorf("%w: model %s returned %d dimensions, index expects %d",
			domain.ErrEmbeddingDimMismatch, g.model, len(vec), g.dimension)
	}
	return nil
}
