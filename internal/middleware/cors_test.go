package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmsight/farmsight-api/internal/origin"
	"go.uber.org/zap"
)

func corsChain(raw string, next http.Handler) http.Handler {
	return CORS(origin.ParsePolicy(raw), zap.NewNop())(next)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	nextCalled := false
	handler := corsChain("*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/origin-policy", nil)
	req.Header.Set("Origin", "https://anything.example")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("preflight body = %q, want empty", body)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://anything.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the literal origin", got)
	}
	if nextCalled {
		t.Error("preflight must not reach route handlers")
	}
}

func TestCORSActualRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		corsOrigin string
		reqOrigin  string
		wantEcho   string
	}{
		{"default local dev origin", "", "http://localhost:4200", "http://localhost:4200"},
		{"blocked origin", "https://a.example,https://b.example", "https://c.example", ""},
		{"absent origin", "", "", ""},
		{"allow-all echoes origin", "*", "https://c.example", "https://c.example"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nextCalled := false
			handler := corsChain(tt.corsOrigin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.reqOrigin != "" {
				req.Header.Set("Origin", tt.reqOrigin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			resp := w.Result()
			defer func() { _ = resp.Body.Close() }()

			if !nextCalled {
				t.Error("non-preflight requests must continue down the pipeline")
			}
			if got := resp.Header.Get("Access-Control-Allow-Origin"); got != tt.wantEcho {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantEcho)
			}
		})
	}
}

func TestCORSHeadersSetOnNonPreflight(t *testing.T) {
	t.Parallel()

	// Actual requests carry the grant headers too, so the browser-side
	// check passes against the cached preflight decision.
	handler := corsChain("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://127.0.0.1:4200")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	for _, name := range []string{
		"Access-Control-Allow-Credentials",
		"Access-Control-Allow-Methods",
		"Access-Control-Allow-Headers",
		"Access-Control-Max-Age",
	} {
		if resp.Header.Get(name) == "" {
			t.Errorf("header %s missing on actual request", name)
		}
	}
}
