package retrieval

import (
	"log/slog"
	"sort"

	"bilingual-rag/internal/domain"
)

// Fuse combines dense and lexical scores into the final ranking (Stage 4).
// fused = lexical * weight + dense, with the weight leaning on the lexical
// signal for Arabic, whose dense embeddings are comparatively weaker. The two
// score scales are not normalized beyond this fixed linear weight. The sort
// is stable: ties keep their insertion order from deduplication.
func Fuse(sc *StageContext, logger *slog.Logger) {
	results := make([]domain.RankedResult, 0, len(sc.Candidates))
	for _, c := range sc.Candidates {
		results = append(results, domain.RankedResult{
			Candidate:  c,
			FusedScore: c.LexicalScore*sc.LexicalWeight + c.DenseScore,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FusedScore > results[j].FusedScore
	})
	sc.Results = results

	logger.Info("fusion_completed",
		slog.String("retrieval_id", sc.RetrievalID),
		slog.String("language", string(sc.Language)),
		slog.Float64("lexical_weight", sc.LexicalWeight),
		slog.Int("result_count", len(results)))
}
