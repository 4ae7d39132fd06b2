package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bilingual-rag/internal/domain"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string                 `json:"model"`
	Messages []chatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Generator sends prompts to Ollama's chat endpoint using the model
// configured for the answer language.
type Generator struct {
	BaseURL string
	Models  map[domain.Language]string
	Client  *http.Client
	logger  *slog.Logger
}

// NewGenerator constructs a Generator for the given endpoint and per-language
// model table.
func NewGenerator(baseURL string, models map[domain.Language]string, client *http.Client, logger *slog.Logger) *Generator {
	return &Generator{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Models:  models,
		Client:  client,
		logger:  logger,
	}
}

// Generate sends the prompt to Ollama and returns the assistant message.
func (g *Generator) Generate(ctx context.Context, prompt string, lang domain.Language, opts domain.GenerationOptions) (*domain.LLMResponse, error) {
	model := g.ModelFor(lang)
	start := time.Now()

	options := map[string]interface{}{}
	if opts.Temperature > 0 {
		options["temperature"] = opts.Temperature
	}
	if opts.TopK > 0 {
		options["top_k"] = opts.TopK
	}
	if opts.RepetitionPenalty > 0 {
		options["repeat_penalty"] = opts.RepetitionPenalty
	}
	if opts.MaxLength > 0 {
		options["num_predict"] = opts.MaxLength
	}

	reqBody := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  options,
	}
	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", g.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call generation endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	g.logger.Info("ollama_generate_completed",
		slog.String("model", model),
		slog.String("language", string(lang)),
		slog.Bool("done", chatResp.Done),
		slog.Duration("elapsed", time.Since(start)))

	return &domain.LLMResponse{
		Text: strings.TrimSpace(chatResp.Message.Content),
		Done: chatResp.Done,
	}, nil
}

// ModelFor returns the generation model configured for the language, falling
// back to the English model when a language has no entry.
func (g *Generator) ModelFor(lang domain.Language) string {
	if model, ok := g.Models[lang]; ok {
		return model
	}
	return g.Models[domain.LanguageEnglish]
}

var _ domain.LLMClient = (*Generator)(nil)
