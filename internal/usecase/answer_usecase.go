package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"bilingual-rag/internal/domain"
)

// AnswerInput defines the input parameters for Answer. Language is optional:
// when unset the query language is resolved with the detector.
type AnswerInput struct {
	Query    string
	Language domain.Language
	Options  domain.GenerationOptions
}

// AnswerOutput carries the cleaned answer plus the retrieved contexts that
// were shown alongside it.
type AnswerOutput struct {
	Answer   string
	Language domain.Language
	Contexts []domain.RankedResult
}

// AnswerUsecase resolves the query language, retrieves supporting documents,
// and generates a language-appropriate answer.
type AnswerUsecase interface {
	Execute(ctx context.Context, input AnswerInput) (*AnswerOutput, error)
}

type answerUsecase struct {
	detector domain.LanguageDetector
	search   HybridSearchUsecase
	prompts  PromptBuilder
	llm      domain.LLMClient
	cleaner  *AnswerCleaner
	defaults domain.GenerationOptions
	logger   *slog.Logger
}

// NewAnswerUsecase creates a new AnswerUsecase. The defaults fill any zero
// generation options on a per-field basis.
func NewAnswerUsecase(
	detector domain.LanguageDetector,
	search HybridSearchUsecase,
	prompts PromptBuilder,
	llm domain.LLMClient,
	cleaner *AnswerCleaner,
	defaults domain.GenerationOptions,
	logger *slog.Logger,
) AnswerUsecase {
	return &answerUsecase{
		detector: detector,
		search:   search,
		prompts:  prompts,
		llm:      llm,
		cleaner:  cleaner,
		defaults: defaults,
		logger:   logger,
	}
}

func (u *answerUsecase) Execute(ctx context.Context, input AnswerInput) (*AnswerOutput, error) {
	if input.Query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	lang := input.Language
	if !lang.Valid() {
		detected, err := u.detector.Detect(ctx, input.Query)
		if err != nil {
			u.logger.Warn("language_detection_failed",
				slog.String("error", err.Error()))
			detected = domain.LanguageEnglish
		}
		lang = detected
	}

	// Retrieval is best-effort for answering: generation takes the raw query,
	// so a retrieval failure degrades to an answer without contexts instead
	// of failing the request.
	contexts := []domain.RankedResult{}
	searchOut, err := u.search.Execute(ctx, HybridSearchInput{Query: input.Query, Language: lang})
	if err != nil {
		u.logger.Warn("answer_retrieval_failed",
			slog.String("language", string(lang)),
			slog.String("error", err.Error()))
	} else {
		contexts = searchOut.Results
	}

	prompt := u.prompts.Build(input.Query, lang)
	opts := u.mergeOptions(input.Options)

	resp, err := u.llm.Generate(ctx, prompt, lang, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	u.logger.Info("answer_generated",
		slog.String("language", string(lang)),
		slog.String("model", u.llm.ModelFor(lang)),
		slog.Int("context_count", len(contexts)),
		slog.Bool("done", resp.Done))

	return &AnswerOutput{
		Answer:   u.cleaner.Clean(resp.Text, lang),
		Language: lang,
		Contexts: contexts,
	}, nil
}

func (u *answerUsecase) mergeOptions(opts domain.GenerationOptions) domain.GenerationOptions {
	if opts.MaxLength <= 0 {
		opts.MaxLength = u.defaults.MaxLength
	}
	if opts.Temperature <= 0 {
		opts.Temperature = u.defaults.Temperature
	}
	if opts.TopK <= 0 {
		opts.TopK = u.defaults.TopK
	}
	if opts.RepetitionPenalty <= 0 {
		opts.RepetitionPenalty = u.defaults.RepetitionPenalty
	}
	return opts
}
