package domain

import "context"

// Embedder generates a raw embedding vector for the given text, selecting
// the model by language. Dimension normalization happens downstream in the
// retrieval pipeline, so implementations return the model output as-is.
type Embedder interface {
	Embed(ctx context.Context, text string, lang Language) ([]float32, error)
	ModelFor(lang Language) string
}
