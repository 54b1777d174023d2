// Package health aggregates component health checks and index stats.
package health

import (
	"context"
	"fmt"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Stats describes the index and its embedding configuration.
type Stats struct {
	DocumentCount int
	Model         string
	Dimension     int
}

// Service coordinates health checks and stats collection.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	docs      DocumentCounter
	model     ModelInfo
}

// New creates a Service. embedding can be nil.
func New(db DBPinger, embedding EmbeddingChecker, docs DocumentCounter, model ModelInfo) *Service {
	return &Service{db: db, embedding: embedding, docs: docs, model: model}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

// CollectStats reports index size and the embedding configuration.
func (s *Service) CollectStats(ctx context.Context) (Stats, error) {
	count, err := s.docs.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count documents: %w", err)
	}
	return Stats{
		DocumentCount: count,
		Model:         s.model.Model(),
		Dimension:     s.model.Dimension(),
	}, nil
}
