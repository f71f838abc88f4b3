package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{TotalTokens: 3}})

	resp, err := m.Generate(context.Background(), Request{System: "s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Model != "mock" || resp.Usage.TotalTokens != 3 {
		t.Errorf("resp = %+v", resp)
	}

	_, err = m.Generate(context.Background(), Request{})
	var u *ErrProviderUnavailable
	if !errors.As(err, &u) {
		t.Errorf("empty queue error = %T, want ErrProviderUnavailable", err)
	}

	calls := m.Calls()
	if len(calls) != 2 || calls[0].System != "s" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"words":"nope"}`)})
	_, err := m.Generate(context.Background(), Request{Schema: wordSchema()})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{}`)}
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{ok}, false, 1},
		{"unavailable then ok", []MockResponse{{Err: &ErrProviderUnavailable{}}, ok}, false, 2},
		{"rate limited then ok", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, false, 2},
		{"gives up", []MockResponse{{Err: errors.New("a")}, {Err: errors.New("b")}, {Err: errors.New("c")}, ok}, true, 3},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"invalid retried once", []MockResponse{{Err: &ErrInvalidResponse{}}, {Err: &ErrInvalidResponse{}}, ok}, true, 2},
		{"canceled not retried", []MockResponse{{Err: context.Canceled}, ok}, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(tt.responses...)
			_, err := WithRetry(m, fastRetry()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if m.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", m.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour}})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := WithRetry(m, fastRetry()).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	plain := errors.New("x")

	for attempt, limit := range []time.Duration{120 * time.Millisecond, 240 * time.Millisecond, 360 * time.Millisecond, 360 * time.Millisecond} {
		if got := r.backoff(attempt, plain); got < 0 || got > limit {
			t.Errorf("backoff(%d) = %v, want <= %v", attempt, got, limit)
		}
	}
	if got := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("backoff with RetryAfter = %v, want 7s", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"words":["cat"]}`), Usage: Usage{InputTokens: 5, OutputTokens: 2}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(m, logger)
	ctx := WithPurpose(context.Background(), "wordgen")

	if _, err := p.Generate(ctx, Request{System: "be brief", Schema: wordSchema()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	out := buf.String()
	for _, want := range []string{`"msg":"llm request"`, `"purpose":"wordgen"`, `"input_tokens":5`, `"msg":"llm exchange"`, `[system]`, `"msg":"llm request failed"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "hints")); got != "hints" {
		t.Errorf("PurposeFrom = %q", got)
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"words":["cat","dog"]}`, false},
		{"missing field", `{}`, true},
		{"wrong type", `{"words":[1]}`, true},
		{"too few", `{"words":[]}`, true},
		{"not json", `words`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(wordSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) || string(invalid.Content) != tt.raw {
					t.Errorf("error = %#v", err)
				}
			}
		})
	}

	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Errorf("nil schema: %v", err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("gpt-4o-mini not priced")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("unknown model priced")
	}
}
