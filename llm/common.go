package llm

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var thinkTagsRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// RemoveThinkTags removes <think> tags and everything in between them from a string.
func RemoveThinkTags(input string) string {
	return thinkTagsRe.ReplaceAllString(input, "")
}

// cleanResponse strips reasoning blocks and surrounding whitespace from a model answer.
func cleanResponse(input string) string {
	return strings.TrimSpace(RemoveThinkTags(input))
}

// withDefaultTimeout bounds ctx by d unless the caller already set a deadline.
func withDefaultTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
