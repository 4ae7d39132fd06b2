package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bilingual-rag/internal/domain"
)

// Embed generates the query embedding and normalizes its dimension (Stage 1).
// An embedder failure is fatal for the query and surfaces as
// domain.ErrEmbeddingUnavailable; there is no automatic retry.
func Embed(
	ctx context.Context,
	sc *StageContext,
	embedder domain.Embedder,
	logger *slog.Logger,
) error {
	start := time.Now()

	vec, err := embedder.Embed(ctx, sc.Query, sc.Language)
	if err != nil {
		logger.Error("query_embed_failed",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("language", string(sc.Language)),
			slog.String("model", embedder.ModelFor(sc.Language)),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	rawSize := len(vec)
	sc.QueryVector = normalizeDimension(vec, sc.ExpectedSize)

	logger.Info("query_embed_completed",
		slog.String("retrieval_id", sc.RetrievalID),
		slog.String("language", string(sc.Language)),
		slog.Int("raw_size", rawSize),
		slog.Int("size", len(sc.QueryVector)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// normalizeDimension right-pads with zeros or truncates so the vector matches
// the collection's fixed dimension. The adjustment is silent: the vector store
// rejects any other length, so a mismatched model output must not error here.
func normalizeDimension(vec []float32, size int) []float32 {
	switch {
	case size <= 0 || len(vec) == size:
		return vec
	case len(vec) > size:
		return vec[:size]
	default:
		padded := make([]float32, size)
		copy(padded, vec)
		return padded
	}
}
