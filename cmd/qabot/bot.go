package main

import (
	"context"
	"fmt"
	"log/slog"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/MegaGrindStone/go-light-qa/llm"
)

// loadRecords opens the configured dataset and reads it once. Sources that fail to open are
// logged and skipped; the others still load. Dataset problems never stop the bot.
func loadRecords(ctx context.Context, c datasetConfig, logger *slog.Logger) []golightqa.QARecord {
	src, closeSource, err := openSource(c)
	if err != nil {
		logger.Warn("Failed to open dataset source, continuing without it", slog.String("error", err.Error()))
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warn("Failed to close dataset", slog.String("error", err.Error()))
		}
	}()

	// A nil src is reported by LoadDataset as unavailable data.
	records, _ := golightqa.LoadDataset(ctx, src, logger)
	return records
}

// newChatbot wires the dataset, the remote model and the matcher settings from c.
// Only remote model configuration errors are fatal.
func newChatbot(ctx context.Context, c config, logger *slog.Logger) (*golightqa.Chatbot, error) {
	records := loadRecords(ctx, c.Dataset, logger)

	llmCfg := c.LLM.WithDefaults()
	remote, err := llm.New(ctx, llmCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error configuring remote model: %w", err)
	}

	return golightqa.NewChatbot(records, remote, logger,
		golightqa.WithThreshold(c.Matcher.Threshold),
		golightqa.WithMaxPromptTokens(c.Matcher.MaxPromptTokens),
		golightqa.WithModelLabel(llmCfg.Model),
	), nil
}
