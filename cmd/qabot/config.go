package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/MegaGrindStone/go-light-qa/llm"
	"gopkg.in/yaml.v2"
)

type config struct {
	Dataset datasetConfig `yaml:"dataset"`
	Matcher matcherConfig `yaml:"matcher"`
	LLM     llm.Config    `yaml:"llm"`

	LogLevel string `yaml:"log_level"`
}

type datasetConfig struct {
	// CSV is the path of the CSV dataset. It defaults to the bundled file when no
	// other source is configured.
	CSV string `yaml:"csv"`

	Bolt       string `yaml:"bolt"`
	BoltBucket string `yaml:"bolt_bucket"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisKey      string `yaml:"redis_key"`
}

type matcherConfig struct {
	Threshold       int `yaml:"threshold"`
	MaxPromptTokens int `yaml:"max_prompt_tokens"`
}

const defaultConfigPath = "config.yaml"

// loadConfig reads the YAML file at path. A missing file is only an error when
// the path was set explicitly; otherwise the zero config is used.
func loadConfig(path string, explicit bool) (config, error) {
	var cfg config

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

func (d datasetConfig) empty() bool {
	return d.CSV == "" && d.Bolt == "" && d.RedisAddr == ""
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
