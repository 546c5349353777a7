package golightqa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MegaGrindStone/go-light-qa/internal"
)

// Chatbot answers user questions from a fixed dataset, falling back to a remote model.
// The records are never modified after construction, so a Chatbot is safe for concurrent use.
type Chatbot struct {
	records []QARecord
	matcher Matcher
	llm     LLM

	modelLabel      string
	maxPromptTokens int

	logger *slog.Logger
}

// ChatbotOption configures a Chatbot.
type ChatbotOption func(*Chatbot)

// WithThreshold sets the minimum similarity score for dataset answers.
func WithThreshold(threshold int) ChatbotOption {
	return func(c *Chatbot) {
		c.matcher.Threshold = threshold
	}
}

// WithScorer replaces the similarity metric.
func WithScorer(scorer Scorer) ChatbotOption {
	return func(c *Chatbot) {
		c.matcher.Scorer = scorer
	}
}

// WithModelLabel sets the name shown as the source of remote answers, e.g. "gemini-2.0-flash".
func WithModelLabel(label string) ChatbotOption {
	return func(c *Chatbot) {
		c.modelLabel = label
	}
}

// WithMaxPromptTokens rejects remote calls for queries longer than n tokens. Zero disables the check.
func WithMaxPromptTokens(n int) ChatbotOption {
	return func(c *Chatbot) {
		c.maxPromptTokens = n
	}
}

// NewChatbot creates a Chatbot over the given records. The slice is copied.
func NewChatbot(records []QARecord, llm LLM, logger *slog.Logger, opts ...ChatbotOption) *Chatbot {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Chatbot{
		records: append([]QARecord(nil), records...),
		llm:     llm,
		logger:  logger.With(slog.String("module", "chatbot")),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Records returns a copy of the dataset the Chatbot answers from.
func (c *Chatbot) Records() []QARecord {
	return append([]QARecord(nil), c.records...)
}

// AnswerQuery resolves a single user turn. It never fails: remote errors are returned as
// a displayable answer attributed to the remote source.
func (c *Chatbot) AnswerQuery(ctx context.Context, query string) AnswerEnvelope {
	env := resolve(ctx, query, c.records, c.matcher, c.llm, c.maxPromptTokens, c.logger)
	if env.Source == SourceRemote {
		env.Model = c.modelLabel
	}
	return env
}

// Resolve answers query from records when the matcher finds a close enough question,
// otherwise it asks llm exactly once with the raw query. Failures of the remote call,
// including an empty response, are folded into the returned text.
func Resolve(
	ctx context.Context,
	query string,
	records []QARecord,
	matcher Matcher,
	llm LLM,
	logger *slog.Logger,
) AnswerEnvelope {
	if logger == nil {
		logger = slog.Default()
	}
	return resolve(ctx, query, records, matcher, llm, 0, logger)
}

func resolve(
	ctx context.Context,
	query string,
	records []QARecord,
	matcher Matcher,
	llm LLM,
	maxPromptTokens int,
	logger *slog.Logger,
) AnswerEnvelope {
	res := matcher.Match(query, records)
	if res.Found {
		logger.Debug("Answered from dataset",
			slog.Int("score", res.Score),
			slog.Int("index", res.Index),
		)
		return AnswerEnvelope{
			Text:   res.Answer,
			Source: SourceDataset,
			Score:  res.Score,
		}
	}

	logger.Debug("No dataset match, calling remote model",
		slog.Int("bestScore", res.Score),
		slog.Int("records", len(records)),
	)

	text, err := generate(ctx, query, llm, maxPromptTokens)
	if err != nil {
		logger.Warn("Remote generation failed", slog.String("error", err.Error()))
		return AnswerEnvelope{
			Text:   fmt.Sprintf("Error with remote model: %v", err),
			Source: SourceRemote,
			Score:  res.Score,
			Err:    err,
		}
	}

	return AnswerEnvelope{
		Text:   text,
		Source: SourceRemote,
		Score:  res.Score,
	}
}

func generate(ctx context.Context, query string, llm LLM, maxPromptTokens int) (text string, err error) {
	if llm == nil {
		return "", fmt.Errorf("%w: no remote model configured", ErrRemoteFailure)
	}

	if maxPromptTokens > 0 {
		n, err := internal.CountTokens(query)
		if err != nil {
			return "", fmt.Errorf("%w: failed to count prompt tokens: %w", ErrRemoteFailure, err)
		}
		if n > maxPromptTokens {
			return "", fmt.Errorf("%w: prompt has %d tokens, limit is %d", ErrRemoteFailure, n, maxPromptTokens)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrRemoteFailure, r)
		}
	}()

	text, err = llm.Generate(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRemoteFailure, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", ErrRemoteFailure)
	}

	return text, nil
}
