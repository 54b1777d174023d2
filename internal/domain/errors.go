package domain

import "errors"

var (
	// ErrInvalidQuery signals malformed or out-of-range search input.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDuplicateID signals an attempt to add a document under an existing id.
	ErrDuplicateID = errors.New("document id already exists")

	// ErrEmbeddingUnavailable signals that the embedding provider cannot be reached.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrEmbeddingDimMismatch signals a vector dimension mismatch.
	// Unlike ErrEmbeddingUnavailable this is a configuration fault, not retryable.
	ErrEmbeddingDimMismatch = errors.New("embedding dimension mismatch")

	// ErrRetrievalUnavailable signals that the document store cannot be reached.
	ErrRetrievalUnavailable = errors.New("retrieval backend unavailable")
	// ErrRetrievalTimeout signals that a retrieval deadline was exceeded.
	ErrRetrievalTimeout = errors.New("retrieval timed out")
)
