package narrative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"chimera/internal/narrative/metrics"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingKey is returned when a Gemini client is requested without a key.
var ErrMissingKey = errors.New("gemini API key is required")

// Gemini is a TextModel backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client for model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// GenerateJSON asks the model for a JSON response to prompt.
func (g *Gemini) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

// unavailableModel stands in when a client could not be built, so every
// request reports the construction error.
type unavailableModel struct {
	err error
}

func (m unavailableModel) GenerateJSON(context.Context, string) (string, error) {
	return "", m.err
}

// dial builds the model FromKey uses for a non-empty key. Tests replace it.
var dial = func(ctx context.Context, apiKey, model string) (TextModel, error) {
	return NewGemini(ctx, apiKey, model)
}

// FromKey builds a generator for apiKey. An empty key yields a generator that
// reports the missing credential; a client that cannot be built yields one
// that reports generation offline.
func FromKey(ctx context.Context, apiKey, model string, logger *slog.Logger, m *metrics.Metrics) *Generator {
	if apiKey == "" {
		return New(nil, logger, m)
	}
	client, err := dial(ctx, apiKey, model)
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "narrative model unavailable", "error", err)
		}
		return New(unavailableModel{err: err}, logger, m)
	}
	return New(client, logger, m)
}
