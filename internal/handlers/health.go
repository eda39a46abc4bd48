package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthChecker handles health check requests.
type HealthChecker struct {
	redisClient *redis.Client // nil when rate limiting uses the in-memory store
}

// NewHealthChecker creates a health checker. redisClient may be nil.
func NewHealthChecker(redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{redisClient: redisClient}
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint. Basic mode only reports that
// the process is serving; ?mode=extended also probes dependencies.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	statusCode := http.StatusOK
	if r.URL.Query().Get("mode") == "extended" {
		checks := make(map[string]string)

		if h.redisClient == nil {
			checks["ratelimit_store"] = "memory"
		} else if err := h.pingRedis(r.Context()); err != nil {
			response.Status = "unhealthy"
			checks["ratelimit_store"] = "unhealthy: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		} else {
			checks["ratelimit_store"] = "healthy"
		}

		response.Checks = checks
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Body write failed after headers; nothing useful left to do.
		_ = err
	}
}

func (h *HealthChecker) pingRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}
