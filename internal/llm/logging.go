package llm

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/careerpath/advisor/internal/store"
)

// recordingProvider stores one event per Generate call, successful or not.
type recordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging records every request made through p in events. name is the
// provider name stored with each event; "" uses the model ID. A nil logger
// discards.
func WithLogging(p Provider, name string, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &recordingProvider{
		inner:    p,
		provider: cmp.Or(name, p.ModelID()),
		events:   events,
		logger:   logger,
	}
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     cmp.Or(req.Purpose, "unknown"),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	if resp != nil {
		ev.Model = cmp.Or(resp.Model, ev.Model)
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	r.logger.Debug("llm request",
		"purpose", ev.Purpose,
		"model", ev.Model,
		"latency_ms", ev.LatencyMs,
		"tokens_in", ev.InputTokens,
		"tokens_out", ev.OutputTokens,
		"success", ev.Success,
	)

	// A request that succeeded is never failed by bookkeeping. The event is
	// written even if ctx was canceled mid-request.
	if werr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		r.logger.Warn("llm event not recorded", "error", werr)
	}
	return resp, err
}

func (r *recordingProvider) ModelID() string {
	return r.inner.ModelID()
}

// describeRequest renders req as the plain-text transcript stored with the
// event and shown by `advisor llm view`.
func describeRequest(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", title, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		def, err := json.MarshalIndent(req.Schema.Definition, "", "  ")
		if err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
