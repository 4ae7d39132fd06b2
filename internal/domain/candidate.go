package domain

// Candidate is a retrieved document chunk prior to final ranking.
// Candidates live for a single retrieval call: they are built from
// vector-search hits, enriched in place with a lexical score, then
// consumed to produce RankedResults.
type Candidate struct {
	// Text is the chunk content and the deduplication key.
	Text string
	// DenseScore is the similarity score from vector search.
	DenseScore float64
	// LexicalScore is the BM25 score, 0 until lexical scoring runs.
	LexicalScore float64
	Source       string
	ChunkID      int
	TotalChunks  int
	Language     Language
	KeyPhrases   []string
}

// RankedResult is a Candidate with the fused score used for final ordering.
type RankedResult struct {
	Candidate
	FusedScore float64
}
