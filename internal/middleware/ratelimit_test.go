package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitMemoryStore(t *testing.T) {
	store, err := NewRateLimitStore(nil)
	if err != nil {
		t.Fatalf("NewRateLimitStore: %v", err)
	}
	mw, err := RateLimit(store, "2-M")
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/origin-policy", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		statuses = append(statuses, w.Result().StatusCode)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestRateLimitRejectsBadRate(t *testing.T) {
	store, err := NewRateLimitStore(nil)
	if err != nil {
		t.Fatalf("NewRateLimitStore: %v", err)
	}
	if _, err := RateLimit(store, "not-a-rate"); err == nil {
		t.Error("expected error for malformed rate")
	}
}

func TestRateLimitDefaultsEmptyRate(t *testing.T) {
	store, err := NewRateLimitStore(nil)
	if err != nil {
		t.Fatalf("NewRateLimitStore: %v", err)
	}
	if _, err := RateLimit(store, ""); err != nil {
		t.Errorf("empty rate should fall back to default, got %v", err)
	}
}
