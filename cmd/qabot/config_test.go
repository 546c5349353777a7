package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
dataset:
  csv: data/qa.csv
  bolt: data/qa.db
  bolt_bucket: trivia
  redis_addr: localhost:6379
  redis_key: qa:trivia
matcher:
  threshold: 75
  max_prompt_tokens: 512
llm:
  provider: openai
  model: gpt-4o-mini
  timeout: 30s
  parameters:
    temperature: 0.2
    max_tokens: 256
log_level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := loadConfig(path, true)
		require.NoError(t, err)

		assert.Equal(t, "data/qa.csv", cfg.Dataset.CSV)
		assert.Equal(t, "data/qa.db", cfg.Dataset.Bolt)
		assert.Equal(t, "trivia", cfg.Dataset.BoltBucket)
		assert.Equal(t, "localhost:6379", cfg.Dataset.RedisAddr)
		assert.Equal(t, "qa:trivia", cfg.Dataset.RedisKey)
		assert.Equal(t, 75, cfg.Matcher.Threshold)
		assert.Equal(t, 512, cfg.Matcher.MaxPromptTokens)
		assert.Equal(t, "openai", cfg.LLM.Provider)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
		require.NotNil(t, cfg.LLM.Parameters.Temperature)
		assert.InDelta(t, 0.2, *cfg.LLM.Parameters.Temperature, 0.0001)
		require.NotNil(t, cfg.LLM.Parameters.MaxTokens)
		assert.Equal(t, 256, *cfg.LLM.Parameters.MaxTokens)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("Missing default file is ignored", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.yaml"), false)
		require.NoError(t, err)
		assert.True(t, cfg.Dataset.empty())
	})

	t.Run("Missing explicit file fails", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "config.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("Malformed file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("matcher: [unclosed"), 0o600))

		_, err := loadConfig(path, false)
		assert.Error(t, err)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), "level %q", in)
	}
}

func TestThresholdFlagHelp(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("threshold")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "0 or below means the default of 80")
}
