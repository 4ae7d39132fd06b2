package usecase

import (
	"fmt"

	"bilingual-rag/internal/domain"
)

// RetrievalConfig holds the per-language retrieval parameters. It is
// read-only after construction and shared by all concurrent queries.
type RetrievalConfig struct {
	// EmbeddingDims is the fixed vector dimension per language collection.
	EmbeddingDims map[domain.Language]int
	// LexicalWeights scales the BM25 score before fusion with the dense
	// score. Defaults of 0.5 (english) and 1.2 (arabic) are carried over
	// from the production system as-is, not re-derived.
	LexicalWeights map[domain.Language]float64
	// Collections names the vector-store collection per language.
	Collections map[domain.Language]string
	// SearchLimit is the over-fetch count for vector search. Fetching more
	// than will be shown gives the lexical re-ranker material to reorder.
	SearchLimit int
}

// DefaultRetrievalConfig returns the production defaults: bge-m3 dimensions
// for both languages and one collection per language.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		EmbeddingDims: map[domain.Language]int{
			domain.LanguageEnglish: 1024,
			domain.LanguageArabic:  1024,
		},
		LexicalWeights: map[domain.Language]float64{
			domain.LanguageEnglish: 0.5,
			domain.LanguageArabic:  1.2,
		},
		Collections: map[domain.Language]string{
			domain.LanguageEnglish: "rag_docs_en",
			domain.LanguageArabic:  "rag_docs_ar",
		},
		SearchLimit: 20,
	}
}

// Validate checks that every supported language is fully configured.
func (c RetrievalConfig) Validate() error {
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	for _, lang := range []domain.Language{domain.LanguageEnglish, domain.LanguageArabic} {
		if dim, ok := c.EmbeddingDims[lang]; !ok || dim <= 0 {
			return fmt.Errorf("embedding dimension for %s must be positive, got %d", lang, dim)
		}
		if _, ok := c.LexicalWeights[lang]; !ok {
			return fmt.Errorf("lexical weight for %s is not configured", lang)
		}
		if name, ok := c.Collections[lang]; !ok || name == "" {
			return fmt.Errorf("collection for %s is not configured", lang)
		}
	}
	return nil
}
