package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// LoggingProvider writes one structured log record per request.
type LoggingProvider struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps p. A nil logger discards everything.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingProvider{inner: p, logger: logger.With("component", "llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	attrs := []any{
		"purpose", PurposeFrom(ctx),
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if resp != nil {
		attrs = append(attrs,
			"served_by", resp.Model,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
		)
		if c := LookupCost(resp.Model); c != nil {
			attrs = append(attrs, "cost_usd", c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}

	if err != nil {
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, "error", err)...)
		return resp, err
	}

	l.logger.InfoContext(ctx, "llm request", attrs...)
	if l.logger.Enabled(ctx, slog.LevelDebug) {
		l.logger.DebugContext(ctx, "llm exchange",
			"request", describeRequest(req),
			"response", string(resp.Content),
		)
	}
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders a request as readable text for debug logs.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
