package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	domdoc "github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
	documentuc "github.com/corvid-labs/ragdex/internal/usecase/document"
	healthuc "github.com/corvid-labs/ragdex/internal/usecase/health"
	raguc "github.com/corvid-labs/ragdex/internal/usecase/rag"
	retrievaluc "github.com/corvid-labs/ragdex/internal/usecase/retrieval"
)

type mockSearchRepo struct {
	vectorFn  func(ctx context.Context, vector []float32, k int) ([]result.Result, error)
	lexicalFn func(ctx context.Context, text string, k int) ([]result.Result, error)
}

func (m *mockSearchRepo) SearchVector(ctx context.Context, vector []float32, k int) ([]result.Result, error) {
	if m.vectorFn != nil {
		return m.vectorFn(ctx, vector, k)
	}
	return nil, nil
}

func (m *mockSearchRepo) SearchLexical(ctx context.Context, text string, k int) ([]result.Result, error) {
	if m.lexicalFn != nil {
		return m.lexicalFn(ctx, text, k)
	}
	return nil, nil
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

// mockDocRepo keeps documents in a map for lifecycle handler tests.
type mockDocRepo struct {
	docs  map[string]domdoc.Document
	putFn func(ctx context.Context, doc *domdoc.Document) error
}

func newMockDocRepo() *mockDocRepo {
	return &mockDocRepo{docs: make(map[string]domdoc.Document)}
}

func (m *mockDocRepo) Put(ctx context.Context, doc *domdoc.Document) error {
	if m.putFn != nil {
		return m.putFn(ctx, doc)
	}
	m.docs[doc.ID()] = *doc
	return nil
}

func (m *mockDocRepo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *mockDocRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.docs[id]
	return ok, nil
}

func (m *mockDocRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type mockCounter struct {
	count int
}

func (m *mockCounter) Count(ctx context.Context) (int, error) { return m.count, nil }

type mockModelInfo struct{}

func (mockModelInfo) Model() string  { return "test-model" }
func (mockModelInfo) Dimension() int { return 3 }

// testEnv bundles the mocks behind a fully wired router.
type testEnv struct {
	search *mockSearchRepo
	embed  *mockEmbedder
	docs   *mockDocRepo
	db     *mockPinger
	count  *mockCounter
}

func newTestEnv() *testEnv {
	return &testEnv{
		search: &mockSearchRepo{},
		embed:  &mockEmbedder{},
		docs:   newMockDocRepo(),
		db:     &mockPinger{},
		count:  &mockCounter{},
	}
}

func newTestRouter(env *testEnv) *chirouter.Mux {
	logger := zap.NewNop()

	engine := retrievaluc.New(env.search, env.embed, retrievaluc.DefaultWeights, logger)
	assembler := raguc.New(engine, raguc.DefaultExcerpts, logger)
	documents := documentuc.New(env.docs, env.embed, logger)
	health := healthuc.New(env.db, nil, env.count, mockModelInfo{})

	srv := NewServer(engine, assembler, documents, health, logger)

	r := chirouter.NewRouter()
	srv.Register(r)
	return r
}

func doJSON(t *testing.T, r *chirouter.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return v
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	return decodeBody[ErrorResponse](t, rr)
}

func mustResult(t *testing.T, id string, score float64, title, content, category string) result.Result {
	t.Helper()
	return result.New(id, score, result.SignalVector, title, content, category, nil, nil, testTime())
}

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}
