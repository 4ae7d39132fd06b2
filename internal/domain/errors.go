package domain

import "errors"

// ErrEmbeddingUnavailable marks a failed call to the embedding endpoint.
// It is the only retrieval failure that aborts a query; vector-store and
// lexical-scoring failures degrade to empty or zero-scored results instead.
var ErrEmbeddingUnavailable = errors.New("embedding unavailable")
