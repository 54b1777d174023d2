// Package document manages the document lifecycle: create, update, delete.
package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

// Input carries the caller-supplied document fields.
type Input struct {
	ID       string
	Title    string
	Content  string
	Category string
	Tags     []string
	Metadata map[string]meta.Value
}

// Service implements the document lifecycle. Updates to the same id are
// serialized so concurrent re-embeds cannot interleave and leave a stale
// vector behind a newer body.
type Service struct {
	repo   Repository
	embed  Embedder
	locks  keyedLocks
	logger *zap.Logger
	now    func() time.Time
}

// New creates a document lifecycle service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		embed:  embed,
		logger: logger,
		now:    time.Now,
	}
}

// Add creates a document. An empty id gets a generated UUID; an id that
// already exists fails with domain.ErrDuplicateID.
func (s *Service) Add(ctx context.Context, in *Input) (domdoc.Document, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	doc, err := domdoc.New(id, in.Title, in.Content, in.Category, in.Tags, in.Metadata)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domdoc.Document{}, fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
	}

	embRes, err := s.embed.Embed(ctx, doc.EmbeddingText())
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("embed document: %w", err)
	}

	now := s.now().UTC()
	doc = doc.WithVector(embRes.Embedding).WithTimestamps(now, now)

	if err := s.repo.Put(ctx, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("store document: %w", err)
	}

	s.logger.Info("Document added",
		zap.String("id", doc.ID()),
		zap.String("category", doc.Category()),
		zap.Int("content_bytes", len(doc.Content())))

	return doc, nil
}

// Update replaces a document's fields. The embedding is regenerated only
// when the embedded text (title or content) actually changed; either the
// whole update lands, vector included, or none of it does.
func (s *Service) Update(ctx context.Context, in *Input) (domdoc.Document, error) {
	if in.ID == "" {
		return domdoc.Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidQuery)
	}

	unlock := s.locks.lock(in.ID)
	defer unlock()

	current, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("load document: %w", err)
	}

	doc, err := domdoc.New(in.ID, in.Title, in.Content, in.Category, in.Tags, in.Metadata)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	vector := current.Vector()
	if doc.EmbeddingText() != current.EmbeddingText() {
		embRes, err := s.embed.Embed(ctx, doc.EmbeddingText())
		if err != nil {
			return domdoc.Document{}, fmt.Errorf("re-embed document: %w", err)
		}
		vector = embRes.Embedding
	}

	doc = doc.WithVector(vector).WithTimestamps(current.CreatedAt(), s.now().UTC())

	if err := s.repo.Put(ctx, &doc); err != nil {
		return domdoc.Document{}, fmt.Errorf("store document: %w", err)
	}

	s.logger.Info("Document updated",
		zap.String("id", doc.ID()),
		zap.Bool("re_embedded", doc.EmbeddingText() != current.EmbeddingText()))

	return doc, nil
}

// Get returns a stored document by id.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	s.logger.Info("Document deleted", zap.String("id", id))
	return nil
}

// keyedLocks serializes operations per document id.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedLocks) lock(id string) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	e, ok := k.locks[id]
	if !ok {
		e = &lockEntry{}
		k.locks[id] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
