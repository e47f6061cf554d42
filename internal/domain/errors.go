package domain

import "errors"

var (
	// ErrInvalidInput signals a contract violation from the caller, such as a
	// query vector whose dimensionality does not match the index. Rejected
	// before any backend contact.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRetrievalUnavailable signals that a retrieval backend is unreachable
	// or erroring. Non-fatal: the affected stage degrades to zero candidates.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrMalformedCandidate signals a single item whose payload cannot be
	// parsed. The item is skipped, never the batch.
	ErrMalformedCandidate = errors.New("malformed candidate")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
