package chi

import (
	"fmt"
	"time"

	"github.com/corvid-labs/ragdex/internal/domain/document"
	"github.com/corvid-labs/ragdex/internal/domain/document/meta"
	"github.com/corvid-labs/ragdex/internal/domain/search/filter"
	"github.com/corvid-labs/ragdex/internal/domain/search/mode"
	"github.com/corvid-labs/ragdex/internal/domain/search/query"
	"github.com/corvid-labs/ragdex/internal/domain/search/result"
	documentuc "github.com/corvid-labs/ragdex/internal/usecase/document"
	raguc "github.com/corvid-labs/ragdex/internal/usecase/rag"
	retrievaluc "github.com/corvid-labs/ragdex/internal/usecase/retrieval"
)

// maxSearchContentChars caps how much document text a search response carries.
// Full content stays available via GET /documents/{id}.
const maxSearchContentChars = 500

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeDocumentNotFound     = "document_not_found"
	codeDuplicateID          = "duplicate_id"
	codeEmbeddingDimMismatch = "embedding_dim_mismatch"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeRetrievalUnavailable = "retrieval_unavailable"
	codeRetrievalTimeout     = "retrieval_timeout"
	codeInternalError        = "internal_error"
)

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query      string         `json:"query"`
	SearchType string         `json:"search_type,omitempty"`
	MaxResults int            `json:"max_results,omitempty"`
	MinScore   *float64       `json:"min_score,omitempty"`
	Category   string         `json:"category,omitempty"`
	Tags       []string       `json:"tags,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// SearchResultItem is one hit in a SearchResponse.
type SearchResultItem struct {
	ID        string                `json:"id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	Category  string                `json:"category"`
	Tags      []string              `json:"tags,omitempty"`
	Metadata  map[string]meta.Value `json:"metadata,omitempty"`
	Score     float64               `json:"score"`
	Signal    string                `json:"signal"`
	IndexedAt *time.Time            `json:"indexed_at,omitempty"`
}

// SearchResponse is the POST /search reply.
type SearchResponse struct {
	Query      string             `json:"query"`
	SearchType string             `json:"search_type"`
	Results    []SearchResultItem `json:"results"`
	Total      int                `json:"total"`
	TookMs     float64            `json:"took_ms"`
}

// RAGRequest is the POST /rag-query body.
type RAGRequest struct {
	Query          string   `json:"query"`
	MaxContext     int      `json:"max_context,omitempty"`
	MinScore       *float64 `json:"min_score,omitempty"`
	IncludeSources *bool    `json:"include_sources,omitempty"`
}

// SourceItem attributes one context excerpt in a RAGResponse.
type SourceItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Excerpt  string  `json:"excerpt"`
}

// RAGResponse is the POST /rag-query reply.
type RAGResponse struct {
	Query          string       `json:"query"`
	EnhancedPrompt string       `json:"enhanced_prompt"`
	ContextCount   int          `json:"context_count"`
	Sources        []SourceItem `json:"sources,omitempty"`
	TookMs         float64      `json:"took_ms"`
}

// DocumentRequest is the POST /documents and PUT /documents/{id} body.
type DocumentRequest struct {
	ID       string         `json:"id,omitempty"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Category string         `json:"category"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DocumentResponse is the stored document without its raw vector.
type DocumentResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Content      string                `json:"content"`
	Category     string                `json:"category"`
	Tags         []string              `json:"tags,omitempty"`
	Metadata     map[string]meta.Value `json:"metadata,omitempty"`
	HasEmbedding bool                  `json:"has_embedding"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// HealthResponse is the GET /health reply.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// StatsResponse is the GET /stats reply.
type StatsResponse struct {
	DocumentCount  int    `json:"document_count"`
	EmbeddingModel string `json:"embedding_model"`
	Dimension      int    `json:"dimension"`
}

// queryFromDTO validates the request and builds the domain query.
// An absent search_type means vector; unknown values are rejected.
func queryFromDTO(req *SearchRequest) (query.Query, error) {
	m := mode.Vector
	if req.SearchType != "" {
		var err error
		m, err = mode.Parse(req.SearchType)
		if err != nil {
			return query.Query{}, err
		}
	}

	metadata, err := meta.MapFromAny(req.Metadata)
	if err != nil {
		return query.Query{}, fmt.Errorf("parse metadata filter: %w", err)
	}

	minScore := query.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	filters := filter.New(req.Category, req.Tags, metadata)
	return query.New(req.Query, m, req.MaxResults, minScore, filters)
}

// inputFromDTO converts a document request into lifecycle input.
func inputFromDTO(req *DocumentRequest) (*documentuc.Input, error) {
	metadata, err := meta.MapFromAny(req.Metadata)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &documentuc.Input{
		ID:       req.ID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
		Metadata: metadata,
	}, nil
}

func searchResponseFromDomain(req *SearchRequest, searchType string, resp retrievaluc.Response) SearchResponse {
	items := make([]SearchResultItem, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchItemFromResult(&resp.Results[i])
	}
	return SearchResponse{
		Query:      req.Query,
		SearchType: searchType,
		Results:    items,
		Total:      len(items),
		TookMs:     durationMs(resp.Took),
	}
}

func searchItemFromResult(r *result.Result) SearchResultItem {
	item := SearchResultItem{
		ID:       r.ID(),
		Title:    r.Title(),
		Content:  truncate(r.Content(), maxSearchContentChars),
		Category: r.Category(),
		Tags:     r.Tags(),
		Metadata: r.Metadata(),
		Score:    r.Score(),
		Signal:   string(r.Signal()),
	}
	if !r.IndexedAt().IsZero() {
		t := r.IndexedAt().UTC()
		item.IndexedAt = &t
	}
	return item
}

func ragResponseFromDomain(res raguc.Result) RAGResponse {
	resp := RAGResponse{
		Query:          res.OriginalQuery,
		EnhancedPrompt: res.Prompt,
		ContextCount:   res.ContextCount,
		TookMs:         durationMs(res.Took),
	}
	if len(res.Sources) > 0 {
		resp.Sources = make([]SourceItem, len(res.Sources))
		for i, s := range res.Sources {
			resp.Sources[i] = SourceItem{
				ID:       s.ID,
				Title:    s.Title,
				Category: s.Category,
				Score:    s.Score,
				Excerpt:  s.Excerpt,
			}
		}
	}
	return resp
}

func documentToDTO(doc *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID(),
		Title:        doc.Title(),
		Content:      doc.Content(),
		Category:     doc.Category(),
		Tags:         doc.Tags(),
		Metadata:     doc.Metadata(),
		HasEmbedding: len(doc.Vector()) > 0,
		CreatedAt:    doc.CreatedAt().UTC(),
		UpdatedAt:    doc.UpdatedAt().UTC(),
	}
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
