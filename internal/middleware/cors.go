package middleware

import (
	"net/http"

	logpkg "github.com/farmsight/farmsight-api/internal/logger"
	"github.com/farmsight/farmsight-api/internal/origin"
	"go.uber.org/zap"
)

// CORS returns middleware that authorizes the declared request origin and
// answers preflight requests. Every request is resolved against the policy
// before route handlers run; headers are set on actual requests too, so the
// browser-side check passes against the cached preflight decision.
//
// Preflight (OPTIONS) requests are fully satisfied here with 204 and an
// empty body; they never reach route handlers. Blocked origins are not
// refused at the transport level, the response simply lacks the grant
// headers the browser requires.
func CORS(policy *origin.Policy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqOrigin := r.Header.Get("Origin")
			decision := origin.Resolve(reqOrigin, policy)
			decision.ApplyHeaders(w.Header())

			if !decision.Allow {
				logger.Debug("origin_not_granted",
					zap.String("origin", logpkg.SanitizeString(reqOrigin, 200)),
					zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
