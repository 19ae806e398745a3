package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed input: empty text, text beyond
	// the configured bounds, or out-of-range matching parameters. The
	// request is rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexNotLoaded indicates matching was requested before an
	// embedding index snapshot was loaded. Fatal for the request,
	// recoverable at the next load.
	ErrIndexNotLoaded = errors.New("embedding index not loaded")

	// ErrModelIncompatible indicates a persisted risk model whose
	// feature order does not match the running predictor. The model is
	// rejected outright rather than silently mis-scoring through
	// misaligned features.
	ErrModelIncompatible = errors.New("risk model incompatible")

	// ErrChatServiceUnavailable indicates the external conversational
	// reply call failed. It is surfaced to the caller and never retried
	// internally.
	ErrChatServiceUnavailable = errors.New("chat service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service is
	// configured, so an index cannot be built or queried.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
