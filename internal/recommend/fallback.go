package recommend

import (
	"context"
	"log/slog"

	"github.com/careerpath/advisor/internal/llm"
)

type fallback struct {
	primary Recommender
	backup  Recommender
	logger  *slog.Logger
}

// WithFallback returns a Recommender that uses backup whenever primary
// fails, unless ctx itself is done.
func WithFallback(primary, backup Recommender, logger *slog.Logger) Recommender {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &fallback{primary: primary, backup: backup, logger: logger}
}

func (f *fallback) Recommend(ctx context.Context, in Input) ([]Recommendation, error) {
	recs, err := f.primary.Recommend(ctx, in)
	if err == nil {
		return recs, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	f.logger.Warn("recommendation fallback", "error", err)
	return f.backup.Recommend(ctx, in)
}

// New returns the recommender the app uses: the LLM with a static
// fallback when provider is non-nil, the static catalog otherwise.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) Recommender {
	static := NewStatic()
	if cfg.Count > 0 {
		static.Count = cfg.Count
	}
	if provider == nil {
		return static
	}
	return WithFallback(NewLLMRecommender(provider, cfg), static, logger)
}
