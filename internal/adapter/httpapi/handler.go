package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/usecase"
)

// Handler exposes hybrid search and answer generation over HTTP.
type Handler struct {
	searchUsecase usecase.HybridSearchUsecase
	answerUsecase usecase.AnswerUsecase
	detector      domain.LanguageDetector
}

// NewHandler creates a new Handler.
func NewHandler(
	searchUsecase usecase.HybridSearchUsecase,
	answerUsecase usecase.AnswerUsecase,
	detector domain.LanguageDetector,
) *Handler {
	return &Handler{
		searchUsecase: searchUsecase,
		answerUsecase: answerUsecase,
		detector:      detector,
	}
}

type searchRequest struct {
	Query string `json:"query"`
	// Language is optional: empty or "auto" resolves via detection.
	Language string `json:"language,omitempty"`
}

type resultJSON struct {
	Text         string   `json:"text"`
	FusedScore   float64  `json:"fused_score"`
	DenseScore   float64  `json:"dense_score"`
	LexicalScore float64  `json:"lexical_score"`
	Source       string   `json:"source"`
	ChunkID      int      `json:"chunk_id"`
	TotalChunks  int      `json:"total_chunks"`
	Language     string   `json:"language"`
	KeyPhrases   []string `json:"key_phrases"`
}

type searchResponse struct {
	Query    string       `json:"query"`
	Language string       `json:"language"`
	Results  []resultJSON `json:"results"`
}

// Search runs the hybrid retrieval pipeline for a query.
// (POST /v1/search)
func (h *Handler) Search(ctx echo.Context) error {
	var req searchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	lang := h.resolveLanguage(ctx, req.Language, req.Query)

	output, err := h.searchUsecase.Execute(ctx.Request().Context(), usecase.HybridSearchInput{
		Query:    req.Query,
		Language: lang,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmbeddingUnavailable) {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"error": "embedding service unavailable"})
		}
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, searchResponse{
		Query:    req.Query,
		Language: string(lang),
		Results:  toResultJSON(output.Results),
	})
}

type answerRequest struct {
	Query             string  `json:"query"`
	Language          string  `json:"language,omitempty"`
	MaxLength         int     `json:"max_length,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	TopK              int     `json:"top_k,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

type answerResponse struct {
	Answer   string       `json:"answer"`
	Language string       `json:"language"`
	Contexts []resultJSON `json:"contexts"`
}

// Answer retrieves context and generates a language-appropriate answer.
// (POST /v1/answer)
func (h *Handler) Answer(ctx echo.Context) error {
	var req answerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	input := usecase.AnswerInput{
		Query: req.Query,
		Options: domain.GenerationOptions{
			MaxLength:         req.MaxLength,
			Temperature:       req.Temperature,
			TopK:              req.TopK,
			RepetitionPenalty: req.RepetitionPenalty,
		},
	}
	// An explicit language skips detection inside the usecase.
	if req.Language != "" && req.Language != "auto" {
		input.Language = domain.ParseLanguage(req.Language)
	}

	output, err := h.answerUsecase.Execute(ctx.Request().Context(), input)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, answerResponse{
		Answer:   output.Answer,
		Language: string(output.Language),
		Contexts: toResultJSON(output.Contexts),
	})
}

func (h *Handler) resolveLanguage(ctx echo.Context, requested, query string) domain.Language {
	if requested != "" && requested != "auto" {
		return domain.ParseLanguage(requested)
	}
	lang, err := h.detector.Detect(ctx.Request().Context(), query)
	if err != nil {
		return domain.LanguageEnglish
	}
	return lang
}

func toResultJSON(results []domain.RankedResult) []resultJSON {
	out := make([]resultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, resultJSON{
			Text:         r.Text,
			FusedScore:   r.FusedScore,
			DenseScore:   r.DenseScore,
			LexicalScore: r.LexicalScore,
			Source:       r.Source,
			ChunkID:      r.ChunkID,
			TotalChunks:  r.TotalChunks,
			Language:     string(r.Language),
			KeyPhrases:   r.KeyPhrases,
		})
	}
	return out
}
