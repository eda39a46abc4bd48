package origin

import (
	"net/http"
	"strconv"
	"strings"
)

// MaxAgeSeconds is how long browsers may cache a preflight result.
const MaxAgeSeconds = 86400

var (
	allowedMethods = []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPut,
		http.MethodPatch,
		http.MethodPost,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders = []string{
		"Content-Type",
		"Authorization",
		"Accept",
		"X-CSRF-Token",
		"X-Requested-With",
		"Origin",
	}
)

// Methods returns the fixed method list granted to allowed origins.
func Methods() []string {
	out := make([]string, len(allowedMethods))
	copy(out, allowedMethods)
	return out
}

// RequestHeaders returns the fixed request-header list granted to allowed
// origins.
func RequestHeaders() []string {
	out := make([]string, len(allowedHeaders))
	copy(out, allowedHeaders)
	return out
}

// Decision is the outcome of authorizing one declared origin. It is computed
// per request and discarded; no state is carried between requests.
type Decision struct {
	Allow            bool
	EchoOrigin       string // empty when there is nothing to echo
	AllowCredentials bool
	Methods          []string
	Headers          []string
	MaxAgeSeconds    int
}

// Resolve authorizes a declared origin against the policy. It is pure: the
// same origin and policy always yield the same decision, and a blocked
// origin is a non-grant, never an error.
//
// An empty origin means the request declared none (same-origin, non-browser
// client, or tooling) and is always allowed with nothing to echo. In
// allow-all mode the literal requesting origin is echoed rather than "*",
// because a wildcard origin cannot be combined with credentialed responses.
func Resolve(reqOrigin string, p *Policy) Decision {
	d := Decision{
		AllowCredentials: true,
		Methods:          allowedMethods,
		Headers:          allowedHeaders,
		MaxAgeSeconds:    MaxAgeSeconds,
	}

	if reqOrigin == "" {
		d.Allow = true
		return d
	}

	if p.Allows(reqOrigin) {
		d.Allow = true
		d.EchoOrigin = reqOrigin
	}
	return d
}

// ApplyHeaders writes the decision onto a response header map. Only granted
// cross-origin decisions produce headers: a same-origin response needs none,
// and a blocked origin must not receive Access-Control-Allow-Origin. The
// request itself is never refused here; enforcement is left to the browser.
func (d Decision) ApplyHeaders(h http.Header) {
	if !d.Allow || d.EchoOrigin == "" {
		return
	}
	h.Set("Access-Control-Allow-Origin", d.EchoOrigin)
	if d.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(d.Methods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(d.Headers, ", "))
	h.Set("Access-Control-Max-Age", strconv.Itoa(d.MaxAgeSeconds))
	// The allow-origin value depends on the request, so caches must key on it.
	h.Add("Vary", "Origin")
}
