package retrieval

import (
	"bilingual-rag/internal/domain"
)

// StageContext carries data between pipeline stages for one retrieval call.
// The pipeline is linear: Embed -> SearchVectors -> ScoreLexical -> Fuse.
// A context is never shared between concurrent queries.
type StageContext struct {
	// Input
	RetrievalID string
	Query       string
	Language    domain.Language

	// Embed stage output, normalized to ExpectedSize
	QueryVector []float32

	// SearchVectors stage output, deduplicated, backend rank order
	Candidates []domain.Candidate

	// Fuse stage output
	Results []domain.RankedResult

	// Config values (set once at init)
	ExpectedSize  int
	Collection    string
	SearchLimit   int
	LexicalWeight float64
}
