package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	golightqa "github.com/MegaGrindStone/go-light-qa"
)

// Config selects and configures the remote model. It is validated once, at startup, by New.
type Config struct {
	// Provider is one of gemini, openai, openaicompat, ollama, anthropic or openrouter.
	Provider string `yaml:"provider"`
	// APIKey falls back to the provider's environment variable when empty.
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
	// Host is the server address for ollama and openaicompat, or a custom endpoint for gemini.
	Host string `yaml:"host"`
	// MaxTokens is the response limit Anthropic requires. It defaults to parameters.max_tokens, then 1024.
	MaxTokens int `yaml:"max_tokens"`
	// Timeout bounds each remote call.
	Timeout time.Duration `yaml:"timeout"`

	Parameters Parameters `yaml:"parameters"`
}

// Supported providers.
const (
	ProviderGemini       = "gemini"
	ProviderOpenAI       = "openai"
	ProviderOpenAICompat = "openaicompat"
	ProviderOllama       = "ollama"
	ProviderAnthropic    = "anthropic"
	ProviderOpenRouter   = "openrouter"
)

// DefaultTimeout bounds a single remote call.
const DefaultTimeout = 60 * time.Second

var (
	// ErrMissingCredential is returned when a provider that needs an API key has none,
	// neither in the configuration nor in the environment.
	ErrMissingCredential = errors.New("missing credential")
	// ErrUnsupportedProvider is returned for an unknown provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrInvalidConfig is returned for other configuration problems.
	ErrInvalidConfig = errors.New("invalid llm configuration")
	// ErrEmptyResponse is returned when the model answered with no text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrNoChoices is returned when a chat completion has no choices.
	ErrNoChoices = errors.New("no choices found")
)

var (
	defaultModels = map[string]string{
		ProviderGemini:     DefaultGeminiModel,
		ProviderOpenAI:     "gpt-4o-mini",
		ProviderOllama:     "llama3.2",
		ProviderAnthropic:  "claude-3-5-haiku-latest",
		ProviderOpenRouter: "google/gemini-2.0-flash-001",
	}

	apiKeyEnvs = map[string][]string{
		ProviderGemini:       {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
		ProviderOpenAI:       {"OPENAI_API_KEY"},
		ProviderOpenAICompat: {"OPENAI_API_KEY"},
		ProviderAnthropic:    {"ANTHROPIC_API_KEY"},
		ProviderOpenRouter:   {"OPENROUTER_API_KEY"},
	}
)

// WithDefaults returns a copy of c with the provider, model, timeout and API key filled in.
func (c Config) WithDefaults() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.APIKey == "" {
		for _, env := range apiKeyEnvs[c.Provider] {
			if v := os.Getenv(env); v != "" {
				c.APIKey = v
				break
			}
		}
	}
	return c
}

// Validate checks the configuration. Call it on a Config returned by WithDefaults.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("%w: %s requires an API key (set api_key or %s)",
				ErrMissingCredential, c.Provider, strings.Join(apiKeyEnvs[c.Provider], " or "))
		}
	case ProviderOpenAICompat:
		if c.Host == "" {
			return fmt.Errorf("%w: %s requires a host", ErrInvalidConfig, c.Provider)
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("%w: %s requires a model", ErrInvalidConfig, c.Provider)
	}

	return nil
}

// New builds the configured remote model. Defaults are applied first, then the
// configuration is validated; every call of the returned LLM is bounded by cfg.Timeout.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (golightqa.LLM, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		model golightqa.LLM
		err   error
	)

	switch cfg.Provider {
	case ProviderGemini:
		model, err = NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Host, cfg.Parameters, logger)
	case ProviderOpenAI:
		model = NewOpenAI(cfg.APIKey, cfg.Model, cfg.Parameters, logger)
	case ProviderOpenAICompat:
		model = NewOpenAICompat(cfg.Host, cfg.APIKey, cfg.Model, cfg.Parameters, logger)
	case ProviderOllama:
		model, err = NewOllama(cfg.Host, cfg.Model, cfg.Parameters, logger)
	case ProviderAnthropic:
		maxTokens := cfg.MaxTokens
		if maxTokens <= 0 && cfg.Parameters.MaxTokens != nil {
			maxTokens = *cfg.Parameters.MaxTokens
		}
		model = NewAnthropic(cfg.APIKey, cfg.Model, maxTokens, cfg.Parameters, logger)
	case ProviderOpenRouter:
		model = NewOpenRouter(cfg.APIKey, cfg.Model, cfg.Parameters, logger)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Remote model configured",
		slog.String("provider", cfg.Provider),
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
	)

	return timeoutLLM{llm: model, timeout: cfg.Timeout}, nil
}

type timeoutLLM struct {
	llm     golightqa.LLM
	timeout time.Duration
}

func (t timeoutLLM) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.llm.Generate(ctx, prompt)
}
