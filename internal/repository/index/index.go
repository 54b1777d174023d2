// Package index bootstraps the document search index.
package index

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/db"
	"github.com/corvid-labs/ragdex/internal/domain"
)

// store is the consumer interface for index management (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Config holds index tuning parameters.
type Config struct {
	VectorDim       int
	HNSWM           int
	HNSWEFConstruct int
}

// Manager creates and rebuilds the document index.
type Manager struct {
	store  store
	cfg    Config
	logger *zap.Logger
}

// New creates an index manager.
func New(s store, cfg Config, logger *zap.Logger) *Manager {
	return &Manager{store: s, cfg: cfg, logger: logger}
}

// Ensure creates the document index when it does not exist yet.
// Safe to call on every startup.
func (m *Manager) Ensure(ctx context.Context) error {
	exists, err := m.store.IndexExists(ctx, domain.IndexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", domain.IndexName, err)
	}
	if exists {
		return nil
	}

	def := buildIndex(m.cfg)
	if err := m.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil // concurrent startup lost the race, index is there
		}
		return fmt.Errorf("create index %s: %w", domain.IndexName, err)
	}

	m.logger.Info("Created document index",
		zap.String("index", domain.IndexName),
		zap.Int("vector_dim", m.cfg.VectorDim))
	return nil
}

// Rebuild drops and recreates the index. Existing documents are re-indexed
// by the server in the background.
func (m *Manager) Rebuild(ctx context.Context) error {
	if err := m.store.DropIndex(ctx, domain.IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", domain.IndexName, err)
	}
	if err := m.store.CreateIndex(ctx, buildIndex(m.cfg)); err != nil {
		return fmt.Errorf("create index %s: %w", domain.IndexName, err)
	}
	return nil
}

// buildIndex declares the JSON index schema. The title carries double
// weight in BM25 scoring relative to the body.
func buildIndex(cfg Config) *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:        domain.IndexName,
		StorageType: db.StorageJSON,
		Prefixes:    []string{domain.DocKeyPrefix},
		Fields: []db.IndexField{
			{Name: "$.title", Alias: "title", Type: db.IndexFieldText, Weight: 2},
			{Name: "$.content", Alias: "content", Type: db.IndexFieldText},
			{Name: "$.category", Alias: "category", Type: db.IndexFieldTag},
			{Name: "$.tags[*]", Alias: "tags", Type: db.IndexFieldTag},
			{
				Name:              "$.embedding",
				Alias:             "embedding",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         cfg.VectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           cfg.HNSWM,
				VectorEFConstruct: cfg.HNSWEFConstruct,
			},
		},
	}
}
