package origin

import "strings"

// Mode selects how a Policy treats declared request origins.
type Mode int

const (
	// ModeAllowList grants only origins in the effective allow-set.
	ModeAllowList Mode = iota
	// ModeAllowAll grants any declared origin.
	ModeAllowAll
)

// String returns the mode name used in logs and API responses.
func (m Mode) String() string {
	if m == ModeAllowAll {
		return "allow_all"
	}
	return "allow_list"
}

// DefaultOrigins are always part of the allow-set in allow-list mode:
// the production frontend plus the local development servers.
var DefaultOrigins = []string{
	"https://app.farmsight.io",
	"http://localhost:4200",
	"http://127.0.0.1:4200",
}

// Policy is the process-wide origin authorization policy. It is built once
// at startup and never mutated afterwards, so concurrent readers need no
// locking.
type Policy struct {
	mode    Mode
	allowed map[string]struct{}
	origins []string // insertion order, for introspection
}

// ParsePolicy builds a Policy from the raw CORS_ORIGIN value. The wildcard
// marker "*" selects allow-all mode. Anything else is treated as a
// comma-separated list of origins merged with DefaultOrigins; entries are
// trimmed, and empty or duplicate entries are discarded. The configured list
// extends the defaults, it never replaces them.
func ParsePolicy(raw string) *Policy {
	raw = strings.TrimSpace(raw)
	if raw == "*" {
		return &Policy{mode: ModeAllowAll}
	}

	p := &Policy{
		mode:    ModeAllowList,
		allowed: make(map[string]struct{}),
	}
	for _, o := range DefaultOrigins {
		p.add(o)
	}
	for _, part := range strings.Split(raw, ",") {
		p.add(strings.TrimSpace(part))
	}
	return p
}

func (p *Policy) add(o string) {
	if o == "" {
		return
	}
	if _, ok := p.allowed[o]; ok {
		return
	}
	p.allowed[o] = struct{}{}
	p.origins = append(p.origins, o)
}

// Mode reports the operating mode.
func (p *Policy) Mode() Mode { return p.mode }

// Origins returns a copy of the effective allow-list in insertion order.
// Empty in allow-all mode.
func (p *Policy) Origins() []string {
	out := make([]string, len(p.origins))
	copy(out, p.origins)
	return out
}

// Allows reports whether the declared origin is granted by the policy.
func (p *Policy) Allows(o string) bool {
	if p.mode == ModeAllowAll {
		return true
	}
	_, ok := p.allowed[o]
	return ok
}
