package domain

import "context"

// DocumentHit is a raw vector-search hit before candidate conversion.
// Optional metadata may be absent; defaulting happens at the boundary
// where hits become Candidates.
type DocumentHit struct {
	Text        string
	Score       float64
	Source      string
	ChunkID     int
	TotalChunks int
	Language    string
	KeyPhrases  []string
}

// DocumentStore searches language-specific collections of embedded chunks.
// Implementations must be safe for concurrent use by simultaneous queries.
type DocumentStore interface {
	// CollectionExists reports whether the named collection is queryable.
	CollectionExists(ctx context.Context, collection string) (bool, error)
	// Search returns the nearest chunks in backend rank order.
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]DocumentHit, error)
}
