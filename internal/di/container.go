package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bilingual-rag/internal/adapter/azure"
	"bilingual-rag/internal/adapter/ollama"
	"bilingual-rag/internal/adapter/repository"
	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/infra/config"
	"bilingual-rag/internal/infra/httpclient"
	"bilingual-rag/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Store    domain.DocumentStore
	Embedder domain.Embedder
	Detector domain.LanguageDetector

	SearchUsecase usecase.HybridSearchUsecase
	AnswerUsecase usecase.AnswerUsecase

	RetrievalConfig usecase.RetrievalConfig
}

// NewApplicationComponents wires all dependencies from config and the
// database pool.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	// Shared HTTP clients with connection pooling
	embedHTTP := httpclient.NewPooledClient(time.Duration(cfg.EmbedTimeout) * time.Second)
	generateHTTP := httpclient.NewPooledClient(time.Duration(cfg.GenerateTimeout) * time.Second)
	detectHTTP := httpclient.NewPooledClient(time.Duration(cfg.DetectTimeout) * time.Second)

	// External clients
	embedder := ollama.NewEmbedder(cfg.OllamaURL, map[domain.Language]string{
		domain.LanguageEnglish: cfg.EmbeddingModelEnglish,
		domain.LanguageArabic:  cfg.EmbeddingModelArabic,
	}, embedHTTP)
	generator := ollama.NewGenerator(cfg.OllamaURL, map[domain.Language]string{
		domain.LanguageEnglish: cfg.GenerationModelEnglish,
		domain.LanguageArabic:  cfg.GenerationModelArabic,
	}, generateHTTP, log)
	detector := azure.NewLanguageDetector(cfg.AzureLanguageEndpoint, cfg.AzureLanguageKey, detectHTTP, log)

	// Document store
	store := repository.NewDocumentRepository(pool)

	// Retrieval config
	retrievalConfig := usecase.RetrievalConfig{
		EmbeddingDims: map[domain.Language]int{
			domain.LanguageEnglish: cfg.EmbeddingDimEnglish,
			domain.LanguageArabic:  cfg.EmbeddingDimArabic,
		},
		LexicalWeights: map[domain.Language]float64{
			domain.LanguageEnglish: cfg.LexicalWeightEnglish,
			domain.LanguageArabic:  cfg.LexicalWeightArabic,
		},
		Collections: map[domain.Language]string{
			domain.LanguageEnglish: cfg.CollectionEnglish,
			domain.LanguageArabic:  cfg.CollectionArabic,
		},
		SearchLimit: cfg.SearchLimit,
	}
	if err := retrievalConfig.Validate(); err != nil {
		return nil, err
	}

	// Usecases
	searchUsecase := usecase.NewHybridSearchUsecase(embedder, store, retrievalConfig, log)
	answerUsecase := usecase.NewAnswerUsecase(
		detector,
		searchUsecase,
		usecase.NewBilingualPromptBuilder(),
		generator,
		usecase.NewAnswerCleaner(),
		domain.GenerationOptions{
			MaxLength:         cfg.AnswerMaxLength,
			Temperature:       cfg.AnswerTemperature,
			TopK:              cfg.AnswerTopK,
			RepetitionPenalty: cfg.AnswerRepetitionPenalty,
		},
		log,
	)

	return &ApplicationComponents{
		Store:           store,
		Embedder:        embedder,
		Detector:        detector,
		SearchUsecase:   searchUsecase,
		AnswerUsecase:   answerUsecase,
		RetrievalConfig: retrievalConfig,
	}, nil
}
