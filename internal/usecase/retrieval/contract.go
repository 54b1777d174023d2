package retrieval

import (
	"context"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
)

// Repository defines the storage contract for retrieval.
type Repository interface {
	SearchVector(ctx context.Context, vector []float32, k int) ([]result.Result, error)
	SearchLexical(ctx context.Context, text string, k int) ([]result.Result, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
