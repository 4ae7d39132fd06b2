package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-driven setting for the service.
type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	OllamaURL       string
	EmbedTimeout    int
	GenerateTimeout int

	// Embedding models per language; bge-m3 serves both by default.
	EmbeddingModelEnglish string
	EmbeddingModelArabic  string

	// Generation models per language.
	GenerationModelEnglish string
	GenerationModelArabic  string

	// Azure Text Analytics language detection.
	AzureLanguageEndpoint string
	AzureLanguageKey      string
	DetectTimeout         int

	// Retrieval parameters.
	EmbeddingDimEnglish  int
	EmbeddingDimArabic   int
	LexicalWeightEnglish float64
	LexicalWeightArabic  float64
	SearchLimit          int
	CollectionEnglish    string
	CollectionArabic     string

	// Generation defaults, overridable per request.
	AnswerMaxLength         int
	AnswerTemperature       float64
	AnswerTopK              int
	AnswerRepetitionPenalty float64
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "rag-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "rag_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "rag_password"),
		DBName:     getEnv("DB_NAME", "rag_db"),

		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedTimeout:    getEnvInt("EMBED_TIMEOUT_SECONDS", 30),
		GenerateTimeout: getEnvInt("GENERATE_TIMEOUT_SECONDS", 120),

		EmbeddingModelEnglish: getEnv("EMBEDDING_MODEL_EN", "bge-m3"),
		EmbeddingModelArabic:  getEnv("EMBEDDING_MODEL_AR", "bge-m3"),

		GenerationModelEnglish: getEnv("GENERATION_MODEL_EN", "gemma3:1b"),
		GenerationModelArabic:  getEnv("GENERATION_MODEL_AR", "phi4-mini:3.8b"),

		AzureLanguageEndpoint: getEnv("AZURE_LANGUAGE_ENDPOINT", ""),
		AzureLanguageKey:      getSecret("AZURE_LANGUAGE_KEY", "AZURE_LANGUAGE_KEY_FILE", ""),
		DetectTimeout:         getEnvInt("DETECT_TIMEOUT_SECONDS", 10),

		EmbeddingDimEnglish:  getEnvInt("EMBEDDING_DIM_EN", 1024),
		EmbeddingDimArabic:   getEnvInt("EMBEDDING_DIM_AR", 1024),
		LexicalWeightEnglish: getEnvFloat("LEXICAL_WEIGHT_EN", 0.5),
		LexicalWeightArabic:  getEnvFloat("LEXICAL_WEIGHT_AR", 1.2),
		SearchLimit:          getEnvInt("SEARCH_LIMIT", 20),
		CollectionEnglish:    getEnv("COLLECTION_EN", "rag_docs_en"),
		CollectionArabic:     getEnv("COLLECTION_AR", "rag_docs_ar"),

		AnswerMaxLength:         getEnvInt("ANSWER_MAX_LENGTH", 256),
		AnswerTemperature:       getEnvFloat("ANSWER_TEMPERATURE", 0.7),
		AnswerTopK:              getEnvInt("ANSWER_TOP_K", 50),
		AnswerRepetitionPenalty: getEnvFloat("ANSWER_REPETITION_PENALTY", 1.2),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret reads the value from the environment, then from the file named
// by fileEnvKey (the Docker/Kubernetes secret convention), then falls back.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
