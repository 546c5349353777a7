package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// OpenRouter provides an implementation of the LLM interface for interacting with OpenRouter's language models.
type OpenRouter struct {
	apiKey   string
	model    string
	endpoint string

	params Parameters

	client *http.Client
	logger *slog.Logger
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

type openRouterChatRequest struct {
	Model    string              `json:"model"`
	Messages []openRouterMessage `json:"messages"`

	Temperature       *float32       `json:"temperature,omitempty"`
	TopP              *float32       `json:"top_p,omitempty"`
	TopK              *int           `json:"top_k,omitempty"`
	FrequencyPenalty  *float32       `json:"frequency_penalty,omitempty"`
	PresencePenalty   *float32       `json:"presence_penalty,omitempty"`
	RepetitionPenalty *float32       `json:"repetition_penalty,omitempty"`
	MinP              *float32       `json:"min_p,omitempty"`
	TopA              *float32       `json:"top_a,omitempty"`
	Seed              *int           `json:"seed,omitempty"`
	MaxTokens         *int           `json:"max_tokens,omitempty"`
	LogitBias         map[string]int `json:"logit_bias,omitempty"`
	Stop              []string       `json:"stop,omitempty"`
	IncludeReasoning  *bool          `json:"include_reasoning,omitempty"`
}

type openRouterResponse struct {
	Choices []openRouterChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type openRouterChoice struct {
	Message openRouterMessage `json:"message"`
}

const (
	openRouterAPIEndpoint = "https://openrouter.ai/api/v1"
)

// NewOpenRouter creates a new OpenRouter instance.
func NewOpenRouter(apiKey, model string, params Parameters, logger *slog.Logger) OpenRouter {
	return OpenRouter{
		apiKey:   apiKey,
		model:    model,
		endpoint: openRouterAPIEndpoint,
		params:   params,
		client:   &http.Client{},
		logger:   logger.With(slog.String("module", "openrouter")),
	}
}

// Generate sends the prompt as a single user message to the OpenRouter API.
func (o OpenRouter) Generate(ctx context.Context, prompt string) (string, error) {
	msgs := []openRouterMessage{
		{
			Role:    "user",
			Content: prompt,
		},
	}

	ctx, cancel := withDefaultTimeout(ctx, 1*time.Minute)
	defer cancel()

	resp, err := o.doRequest(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	var res openRouterResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("error decoding response: %w", err)
	}

	// OpenRouter may report upstream provider errors with a 200 status.
	if res.Error != nil {
		return "", fmt.Errorf("provider error: %s", res.Error.Message)
	}
	if len(res.Choices) == 0 {
		return "", ErrNoChoices
	}

	text := cleanResponse(res.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func (o OpenRouter) doRequest(ctx context.Context, messages []openRouterMessage) (*http.Response, error) {
	reqBody := openRouterChatRequest{
		Model:    o.model,
		Messages: messages,

		Temperature:       o.params.Temperature,
		TopP:              o.params.TopP,
		TopK:              o.params.TopK,
		FrequencyPenalty:  o.params.FrequencyPenalty,
		PresencePenalty:   o.params.PresencePenalty,
		RepetitionPenalty: o.params.RepetitionPenalty,
		MinP:              o.params.MinP,
		TopA:              o.params.TopA,
		Seed:              o.params.Seed,
		MaxTokens:         o.params.MaxTokens,
		LogitBias:         o.params.LogitBias,
		Stop:              o.params.Stop,
		IncludeReasoning:  o.params.IncludeReasoning,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	o.logger.Debug("Request Body", slog.String("body", string(jsonBody)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.endpoint+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("X-Title", "go-light-qa")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
