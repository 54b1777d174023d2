// Package chi exposes the HTTP API over a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/corvid-labs/ragdex/internal/domain"
	"github.com/corvid-labs/ragdex/internal/metrics"
	documentuc "github.com/corvid-labs/ragdex/internal/usecase/document"
	healthuc "github.com/corvid-labs/ragdex/internal/usecase/health"
	raguc "github.com/corvid-labs/ragdex/internal/usecase/rag"
	retrievaluc "github.com/corvid-labs/ragdex/internal/usecase/retrieval"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use cases to HTTP handlers.
type Server struct {
	retrieval     *retrievaluc.Engine
	rag           *raguc.Assembler
	documents     *documentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retrieval *retrievaluc.Engine,
	rag *raguc.Assembler,
	documents *documentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		retrieval: retrieval,
		rag:       rag,
		documents: documents,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrDuplicateID, http.StatusConflict, codeDuplicateID),
		sentinelHandler(domain.ErrEmbeddingDimMismatch, http.StatusInternalServerError, codeEmbeddingDimMismatch),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrRetrievalTimeout, http.StatusGatewayTimeout, codeRetrievalTimeout),
		sentinelHandler(domain.ErrRetrievalUnavailable, http.StatusServiceUnavailable, codeRetrievalUnavailable),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chirouter.Router) {
	r.Post("/search", s.Search)
	r.Post("/rag-query", s.RAGQuery)
	r.Post("/documents", s.CreateDocument)
	r.Get("/documents/{id}", s.GetDocument)
	r.Put("/documents/{id}", s.UpdateDocument)
	r.Delete("/documents/{id}", s.DeleteDocument)
	r.Get("/health", s.HealthCheck)
	r.Get("/stats", s.Stats)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := queryFromDTO(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	searchType := string(q.Mode())
	resp, err := s.retrieval.Retrieve(r.Context(), &q)
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(searchType, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(searchType, "success").Inc()
	metrics.RetrievalDuration.WithLabelValues(searchType).Observe(resp.Took.Seconds())

	writeJSON(w, http.StatusOK, searchResponseFromDomain(&req, searchType, resp))
}

// RAGQuery handles POST /rag-query.
func (s *Server) RAGQuery(w http.ResponseWriter, r *http.Request) {
	var req RAGRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	minScore := 0.7
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	includeSources := true
	if req.IncludeSources != nil {
		includeSources = *req.IncludeSources
	}

	res, err := s.rag.Assemble(r.Context(), &raguc.Request{
		Query:          req.Query,
		MaxContext:     req.MaxContext,
		MinScore:       minScore,
		IncludeSources: includeSources,
	})
	if err != nil {
		metrics.RAGAssembliesTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, err)
		return
	}

	outcome := "with_context"
	if res.ContextCount == 0 {
		outcome = "empty"
	}
	metrics.RAGAssembliesTotal.WithLabelValues(outcome).Inc()

	writeJSON(w, http.StatusOK, ragResponseFromDomain(res))
}

// CreateDocument handles POST /documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, err := inputFromDTO(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	doc, err := s.documents.Add(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/documents/"+doc.ID())
	writeJSON(w, http.StatusCreated, documentToDTO(&doc))
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// UpdateDocument handles PUT /documents/{id}.
func (s *Server) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// The path id is authoritative; a conflicting body id is rejected.
	id := chirouter.URLParam(r, "id")
	if req.ID != "" && req.ID != id {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "body id does not match path id")
		return
	}
	req.ID = id

	in, err := inputFromDTO(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	doc, err := s.documents.Update(r.Context(), in)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	if err := s.documents.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.health.CollectStats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		DocumentCount:  stats.DocumentCount,
		EmbeddingModel: stats.Model,
		Dimension:      stats.Dimension,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrDocumentNotFound,
		domain.ErrDuplicateID,
		domain.ErrEmbeddingDimMismatch,
		domain.ErrEmbeddingUnavailable,
		domain.ErrRetrievalTimeout,
		domain.ErrRetrievalUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
