package rag

import (
	"context"

	"github.com/corvid-labs/ragdex/internal/domain/search/query"
	"github.com/corvid-labs/ragdex/internal/usecase/retrieval"
)

// Retriever executes validated queries against the document index.
type Retriever interface {
	Retrieve(ctx context.Context, q *query.Query) (retrieval.Response, error)
}
