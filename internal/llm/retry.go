package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential backoff.
// Schema failures are retried once; truncation, client errors and context
// errors are returned immediately.
type RetryProvider struct {
	inner  Provider
	cfg    RetryConfig
	logger *slog.Logger

	// sleep waits for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p with retries. A nil logger discards retry logs.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, cfg: cfg, logger: logger, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	retriedInvalid := false

	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if retriedInvalid {
				return nil, err
			}
			retriedInvalid = true
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		r.logger.Warn("llm request failed, retrying",
			"purpose", req.Purpose,
			"attempt", attempt,
			"wait", wait,
			"error", err,
		)
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is the wait after the given 1-based attempt. A provider
// Retry-After wins; otherwise InitialWait*Multiplier^(attempt-1), capped at
// MaxWait, with ±20% jitter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		wait *= r.cfg.Multiplier
	}
	if r.cfg.MaxWait > 0 {
		wait = min(wait, float64(r.cfg.MaxWait))
	}
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
