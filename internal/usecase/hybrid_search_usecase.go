package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/usecase/retrieval"
)

// HybridSearchInput defines the input parameters for HybridSearch.
type HybridSearchInput struct {
	Query    string
	Language domain.Language
}

// HybridSearchOutput defines the output for HybridSearch. Results is never
// nil: a query with no retrievable documents yields an empty slice so the
// caller can render a "no relevant documents" state.
type HybridSearchOutput struct {
	Results []domain.RankedResult
}

// HybridSearchUsecase runs the hybrid retrieval pipeline:
// embed -> vector search -> lexical scoring -> fusion.
type HybridSearchUsecase interface {
	Execute(ctx context.Context, input HybridSearchInput) (*HybridSearchOutput, error)
}

type hybridSearchUsecase struct {
	embedder domain.Embedder
	store    domain.DocumentStore
	config   RetrievalConfig
	logger   *slog.Logger
}

// NewHybridSearchUsecase creates a new HybridSearchUsecase. The config is
// copied in at construction time so independent test instances can run with
// mock backends and their own tables.
func NewHybridSearchUsecase(
	embedder domain.Embedder,
	store domain.DocumentStore,
	config RetrievalConfig,
	logger *slog.Logger,
) HybridSearchUsecase {
	return &hybridSearchUsecase{
		embedder: embedder,
		store:    store,
		config:   config,
		logger:   logger,
	}
}

func (u *hybridSearchUsecase) Execute(ctx context.Context, input HybridSearchInput) (*HybridSearchOutput, error) {
	if input.Query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	lang := input.Language
	if !lang.Valid() {
		lang = domain.LanguageEnglish
	}

	sc := &retrieval.StageContext{
		RetrievalID:   uuid.New().String(),
		Query:         input.Query,
		Language:      lang,
		ExpectedSize:  u.config.EmbeddingDims[lang],
		Collection:    u.config.Collections[lang],
		SearchLimit:   u.config.SearchLimit,
		LexicalWeight: u.config.LexicalWeights[lang],
	}

	u.logger.Info("retrieval_started",
		slog.String("retrieval_id", sc.RetrievalID),
		slog.String("language", string(lang)),
		slog.String("collection", sc.Collection))

	// Stage 1: embedding failure is the only hard stop.
	if err := retrieval.Embed(ctx, sc, u.embedder, u.logger); err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Stage 2: degrades to zero candidates on any backend failure.
	retrieval.SearchVectors(ctx, sc, u.store, u.logger)
	if len(sc.Candidates) == 0 {
		u.logger.Info("retrieval_short_circuited",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("collection", sc.Collection))
		return &HybridSearchOutput{Results: []domain.RankedResult{}}, nil
	}

	// Stages 3 and 4 cannot fail the query.
	retrieval.ScoreLexical(sc, u.logger)
	retrieval.Fuse(sc, u.logger)

	return &HybridSearchOutput{Results: sc.Results}, nil
}
