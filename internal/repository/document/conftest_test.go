package document

import (
	"context"
	"testing"
	"time"

	"github.com/corvid-labs/ragdex/internal/db"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn     func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn     func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	searchCountFn func(ctx context.Context, index, query string) (int, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func testDoc(t *testing.T, id string) domdoc.Document {
	t.Helper()
	doc, err := domdoc.New(id, "Test Title", "test content body", "testing",
		[]string{"go", "redis"},
		map[string]meta.Value{"author": meta.String("team")},
	)
	if err != nil {
		t.Fatalf("build test doc: %v", err)
	}
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	return doc.WithVector([]float32{0.1, 0.2, 0.3}).WithTimestamps(now, now)
}
