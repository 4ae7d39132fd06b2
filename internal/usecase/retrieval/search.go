package retrieval

import (
	"context"
	"log/slog"
	"time"

	"bilingual-rag/internal/domain"
)

// SearchVectors queries the language collection and converts hits into
// deduplicated candidates (Stage 2). Vector search is best-effort: a missing
// collection or any store error degrades to zero candidates and is logged,
// never returned to the caller.
func SearchVectors(
	ctx context.Context,
	sc *StageContext,
	store domain.DocumentStore,
	logger *slog.Logger,
) {
	sc.Candidates = []domain.Candidate{}

	exists, err := store.CollectionExists(ctx, sc.Collection)
	if err != nil {
		logger.Warn("vector_store_unavailable",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("collection", sc.Collection),
			slog.String("error", err.Error()))
		return
	}
	if !exists {
		logger.Warn("collection_missing",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("collection", sc.Collection))
		return
	}

	start := time.Now()
	hits, err := store.Search(ctx, sc.Collection, sc.QueryVector, sc.SearchLimit)
	if err != nil {
		logger.Warn("vector_search_failed",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("collection", sc.Collection),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return
	}

	seen := make(map[string]bool, len(hits))
	for _, hit := range hits {
		// First occurrence wins; backend rank order is preserved.
		if seen[hit.Text] {
			continue
		}
		seen[hit.Text] = true
		sc.Candidates = append(sc.Candidates, candidateFromHit(hit, sc.Language))
	}

	logger.Info("vector_search_completed",
		slog.String("retrieval_id", sc.RetrievalID),
		slog.String("collection", sc.Collection),
		slog.Int("hit_count", len(hits)),
		slog.Int("unique_count", len(sc.Candidates)),
		slog.Duration("elapsed", time.Since(start)))
}

// candidateFromHit maps a raw hit to a validated Candidate, defaulting the
// optional metadata fields the backend may omit.
func candidateFromHit(hit domain.DocumentHit, queryLang domain.Language) domain.Candidate {
	source := hit.Source
	if source == "" {
		source = "Unknown"
	}
	totalChunks := hit.TotalChunks
	if totalChunks <= 0 {
		totalChunks = 1
	}
	lang := domain.Language(hit.Language)
	if !lang.Valid() {
		lang = queryLang
	}
	keyPhrases := hit.KeyPhrases
	if keyPhrases == nil {
		keyPhrases = []string{}
	}
	return domain.Candidate{
		Text:        hit.Text,
		DenseScore:  hit.Score,
		Source:      source,
		ChunkID:     hit.ChunkID,
		TotalChunks: totalChunks,
		Language:    lang,
		KeyPhrases:  keyPhrases,
	}
}
