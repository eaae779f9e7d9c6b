package assistant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReplyFromUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"CCS is the common fast-charging standard."}}]}`))
	}))
	defer upstream.Close()

	a := New(upstream.URL, "test-key", "test-model")
	reply, fallback := a.Reply(context.Background(), "what connector do I need?")
	if fallback {
		t.Error("expected upstream answer, got fallback")
	}
	if !strings.Contains(reply, "CCS") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestReplyFallbackOnRateLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	a := New(upstream.URL, "k", "m")
	reply, fallback := a.Reply(context.Background(), "how much does charging cost?")
	if !fallback {
		t.Error("expected canned fallback on 429")
	}
	if !strings.Contains(strings.ToLower(reply), "kwh") {
		t.Errorf("expected cost-themed canned reply, got %q", reply)
	}
}

func TestReplyFallbackOnUnreachableUpstream(t *testing.T) {
	a := New("http://127.0.0.1:1", "k", "m")
	reply, fallback := a.Reply(context.Background(), "hello")
	if !fallback || reply == "" {
		t.Errorf("expected non-empty canned reply, got fallback=%v reply=%q", fallback, reply)
	}
}

func TestCannedReplyTopics(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"which connectors fit my car", "CCS"},
		{"plan a trip to Jaipur", "trip planner"},
		{"what is the price", "kWh"},
	}
	for _, tt := range tests {
		if got := cannedReply(tt.message); !strings.Contains(got, tt.want) {
			t.Errorf("cannedReply(%q) = %q, want substring %q", tt.message, got, tt.want)
		}
	}
}
