package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilingual-rag/internal/infra/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "9020", cfg.Port)
	assert.Equal(t, "bge-m3", cfg.EmbeddingModelEnglish)
	assert.Equal(t, "bge-m3", cfg.EmbeddingModelArabic)
	assert.Equal(t, "gemma3:1b", cfg.GenerationModelEnglish)
	assert.Equal(t, "phi4-mini:3.8b", cfg.GenerationModelArabic)
	assert.Equal(t, 1024, cfg.EmbeddingDimEnglish)
	assert.Equal(t, 0.5, cfg.LexicalWeightEnglish)
	assert.Equal(t, 1.2, cfg.LexicalWeightArabic)
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, "rag_docs_en", cfg.CollectionEnglish)
	assert.Equal(t, "rag_docs_ar", cfg.CollectionArabic)
	assert.Equal(t, 256, cfg.AnswerMaxLength)
	assert.Equal(t, 0.7, cfg.AnswerTemperature)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SEARCH_LIMIT", "5")
	t.Setenv("LEXICAL_WEIGHT_AR", "0.9")
	t.Setenv("COLLECTION_EN", "docs_en_v2")

	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 0.9, cfg.LexicalWeightArabic)
	assert.Equal(t, "docs_en_v2", cfg.CollectionEnglish)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SEARCH_LIMIT", "not-a-number")
	t.Setenv("LEXICAL_WEIGHT_EN", "")

	cfg := config.Load()
	assert.Equal(t, 20, cfg.SearchLimit)
	assert.Equal(t, 0.5, cfg.LexicalWeightEnglish)
}

func TestLoad_SecretFromFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(secretPath, []byte("s3cret\n"), 0o600))
	t.Setenv("DB_PASSWORD_FILE", secretPath)

	cfg := config.Load()
	assert.Equal(t, "s3cret", cfg.DBPassword, "file content is trimmed")
}

func TestLoad_EnvSecretWinsOverFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(secretPath, []byte("from-file"), 0o600))
	t.Setenv("DB_PASSWORD_FILE", secretPath)
	t.Setenv("DB_PASSWORD", "from-env")

	cfg := config.Load()
	assert.Equal(t, "from-env", cfg.DBPassword)
}
