package openai

import (
	"context"
	"strings"
	"time"
)

// truncateWords limits text to at most maxWords whitespace-separated words.
// Text within the limit is returned unchanged.
func truncateWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}

// timeoutFunc derives a bounded context for one upstream call.
type timeoutFunc func(ctx context.Context) (context.Context, context.CancelFunc)

func boundedBy(timeout time.Duration) timeoutFunc {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(ctx, timeout)
	}
}
