package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Gemini provides an implementation of the LLM interface for Google's Gemini models
// through the Gemini Developer API.
type Gemini struct {
	model  string
	params Parameters

	client *genai.Client
	logger *slog.Logger
}

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// NewGemini creates a new Gemini instance. baseURL overrides the API endpoint and is
// normally empty.
func NewGemini(ctx context.Context, apiKey, model, baseURL string, params Parameters, logger *slog.Logger) (Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return Gemini{}, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return Gemini{
		model:  model,
		params: params,
		client: client,
		logger: logger.With(slog.String("module", "gemini")),
	}, nil
}

// Generate sends the prompt to the GenerateContent endpoint and returns the text of the
// first candidate that has any.
func (g Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withDefaultTimeout(ctx, 1*time.Minute)
	defer cancel()

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.contentConfig())
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}

	var response strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part != nil && part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	text := cleanResponse(response.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("Content generated",
		slog.Int("responseLength", len(text)),
		slog.Duration("duration", time.Since(start)),
	)

	return text, nil
}

func (g Gemini) contentConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      g.params.Temperature,
		TopP:             g.params.TopP,
		PresencePenalty:  g.params.PresencePenalty,
		FrequencyPenalty: g.params.FrequencyPenalty,
		StopSequences:    g.params.Stop,
	}

	if g.params.TopK != nil {
		cfg.TopK = genai.Ptr(float32(*g.params.TopK))
	}
	if g.params.Seed != nil {
		cfg.Seed = genai.Ptr(int32(*g.params.Seed))
	}
	if g.params.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*g.params.MaxTokens)
	}

	return cfg
}
