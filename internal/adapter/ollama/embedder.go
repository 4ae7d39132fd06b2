package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bilingual-rag/internal/domain"
)

// Embedder calls Ollama's embed endpoint with the model configured for the
// query language. The same model may serve both languages.
type Embedder struct {
	BaseURL string
	Models  map[domain.Language]string
	Client  *http.Client
}

// NewEmbedder constructs an Embedder for the given endpoint and per-language
// model table.
func NewEmbedder(baseURL string, models map[domain.Language]string, client *http.Client) *Embedder {
	return &Embedder{
		BaseURL: baseURL,
		Models:  models,
		Client:  client,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *Embedder) Embed(ctx context.Context, text string, lang domain.Language) ([]float32, error) {
	model := e.ModelFor(lang)
	start := time.Now()

	reqBody := embedRequest{
		Model: model,
		Input: []string{text},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		slog.Error("ollama_embed_failed",
			slog.String("model", model),
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Error("ollama_embed_bad_status",
			slog.String("model", model),
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("ollama returned status: %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	if len(respBody.Embeddings) == 0 {
		return nil, fmt.Errorf("ollama returned no embeddings")
	}

	slog.Info("ollama_embed_completed",
		slog.String("model", model),
		slog.Int("size", len(respBody.Embeddings[0])),
		slog.Duration("elapsed", time.Since(start)))

	return respBody.Embeddings[0], nil
}

// ModelFor returns the embedding model configured for the language, falling
// back to the English model when a language has no entry.
func (e *Embedder) ModelFor(lang domain.Language) string {
	if model, ok := e.Models[lang]; ok {
		return model
	}
	return e.Models[domain.LanguageEnglish]
}

var _ domain.Embedder = (*Embedder)(nil)
