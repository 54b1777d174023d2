package health

import "context"

// DBPinger checks store connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker verifies embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// DocumentCounter counts indexed documents.
type DocumentCounter interface {
	Count(ctx context.Context) (int, error)
}

// ModelInfo exposes the configured embedding model.
type ModelInfo interface {
	Model() string
	Dimension() int
}
