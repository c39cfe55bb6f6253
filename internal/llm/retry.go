package llm

import (
	"context"
	"log/slog"
	"time"
)

// Retrying wraps a Completer with a fixed-attempt retry policy. The wrapped
// completer still issues exactly one request per attempt.
type Retrying struct {
	next     Completer
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

// WithRetry returns c unchanged when attempts <= 1.
func WithRetry(c Completer, attempts int, backoff time.Duration, logger *slog.Logger) Completer {
	if attempts <= 1 {
		return c
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying{next: c, attempts: attempts, backoff: backoff, logger: logger}
}

func (r *Retrying) Complete(ctx context.Context, prompt string) (string, bool) {
	for attempt := 1; ; attempt++ {
		reply, ok := r.next.Complete(ctx, prompt)
		if ok {
			return reply, true
		}
		if attempt >= r.attempts {
			r.logger.Warn("llm.retry.exhausted", "attempts", attempt)
			return "", false
		}
		delay := r.backoff * time.Duration(attempt)
		r.logger.Info("llm.retry.scheduled", "attempt", attempt, "delay_ms", delay.Milliseconds())

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", false
		case <-timer.C:
		}
	}
}
