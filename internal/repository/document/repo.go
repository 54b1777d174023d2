// Package document persists documents as JSON values in Redis.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/corvid-labs/ragdex/internal/db"
	"github.com/corvid-labs/ragdex/internal/domain"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
)

// store is the consumer interface for document persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put writes a document, replacing any previous value at the same id.
func (r *Repo) Put(ctx context.Context, doc *domdoc.Document) error {
	key := domain.DocKey(doc.ID())
	data, err := json.Marshal(buildJSONDoc(doc))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a document by id.
func (r *Repo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	key := domain.DocKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Document{}, domain.ErrDocumentNotFound
		}
		return domdoc.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseJSONGetResult(raw)
}

// Exists reports whether a document with the given id is stored.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	key := domain.DocKey(id)
	ok, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	return ok, nil
}

// Delete removes a document. Returns domain.ErrDocumentNotFound when absent.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := domain.DocKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored documents via the search index.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, domain.IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}
