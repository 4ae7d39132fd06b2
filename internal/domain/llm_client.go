package domain

import "context"

// GenerationOptions are the tunable decoding parameters exposed to callers.
type GenerationOptions struct {
	MaxLength         int
	Temperature       float64
	TopK              int
	RepetitionPenalty float64
}

// LLMResponse carries the model output and whether generation finished.
type LLMResponse struct {
	Text string
	Done bool
}

// LLMClient sends prompts to a chat model selected by language and returns
// the textual answer.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, lang Language, opts GenerationOptions) (*LLMResponse, error)
	ModelFor(lang Language) string
}
