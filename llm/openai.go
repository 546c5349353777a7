package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAI provides an implementation of the LLM interface for OpenAI's language models
// and for any server exposing an OpenAI-compatible chat completions API.
type OpenAI struct {
	model  string
	params Parameters

	client *goopenai.Client
	logger *slog.Logger
}

// NewOpenAI creates a new OpenAI instance.
func NewOpenAI(apiKey, model string, params Parameters, logger *slog.Logger) OpenAI {
	return OpenAI{
		model:  model,
		params: params,
		client: goopenai.NewClient(apiKey),
		logger: logger.With(slog.String("module", "openai")),
	}
}

// NewOpenAICompat creates an OpenAI instance talking to an OpenAI-compatible server such as
// vLLM, LM Studio or llama.cpp. The host should include the API prefix, e.g. http://localhost:8000/v1.
func NewOpenAICompat(host, apiKey, model string, params Parameters, logger *slog.Logger) OpenAI {
	config := goopenai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimSuffix(host, "/")

	return OpenAI{
		model:  model,
		params: params,
		client: goopenai.NewClientWithConfig(config),
		logger: logger.With(slog.String("module", "openaicompat"), slog.String("host", config.BaseURL)),
	}
}

// Generate sends the prompt as a single user message to the chat completions API.
func (o OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	req := o.chatRequest([]goopenai.ChatCompletionMessage{
		{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt,
		},
	})

	ctx, cancel := withDefaultTimeout(ctx, 1*time.Minute)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	o.logger.Debug("Chat completion received",
		slog.String("finishReason", string(resp.Choices[0].FinishReason)),
		slog.Int("totalTokens", resp.Usage.TotalTokens),
	)

	text := cleanResponse(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func (o OpenAI) chatRequest(messages []goopenai.ChatCompletionMessage) goopenai.ChatCompletionRequest {
	req := goopenai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	}

	if o.params.Temperature != nil {
		req.Temperature = *o.params.Temperature
	}
	if o.params.TopP != nil {
		req.TopP = *o.params.TopP
	}
	if o.params.Stop != nil {
		req.Stop = o.params.Stop
	}
	if o.params.PresencePenalty != nil {
		req.PresencePenalty = *o.params.PresencePenalty
	}
	if o.params.Seed != nil {
		req.Seed = o.params.Seed
	}
	if o.params.FrequencyPenalty != nil {
		req.FrequencyPenalty = *o.params.FrequencyPenalty
	}
	if o.params.LogitBias != nil {
		req.LogitBias = o.params.LogitBias
	}
	if o.params.MaxTokens != nil {
		req.MaxTokens = *o.params.MaxTokens
	}

	return req
}
