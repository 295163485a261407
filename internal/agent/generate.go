// Package agent implements the persona-conditioned answering engine:
// persona synthesis, answering policy, per-question model calls with
// validation, and the submission session tying them together.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/raphaelgruber/formghost/internal/llm"
)

// maxAttempts bounds every logical model request (persona or answer).
// There is no backoff between attempts.
const maxAttempts = 3

// Generator is the model capability the engine consumes. internal/llm
// satisfies it; tests use scripted fakes.
type Generator interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// withRetries runs fn up to maxAttempts times and wraps the final failure
// in the given sentinel. Fatal provider errors and context cancellation
// stop the loop early; retrying them cannot help.
func withRetries[T any](ctx context.Context, sentinel error, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		lastErr = err
		slog.Debug("attempt failed", "attempt", attempt, "error", err)

		if errors.Is(err, llm.ErrFatalAPI) || ctx.Err() != nil {
			break
		}
	}

	return zero, fmt.Errorf("%w: %w", sentinel, lastErr)
}

// decodeJSON parses a model reply as a JSON object, tolerating markdown
// code fences some providers wrap around JSON-mode output.
func decodeJSON(raw string, v any) error {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return json.Unmarshal([]byte(strings.TrimSpace(s)), v)
}
