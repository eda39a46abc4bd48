package origin

import (
	"reflect"
	"testing"
)

func TestParsePolicyModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantMode Mode
	}{
		{"unset", "", ModeAllowList},
		{"wildcard", "*", ModeAllowAll},
		{"wildcard with whitespace", "  *  ", ModeAllowAll},
		{"single origin", "https://other.example", ModeAllowList},
		{"list", "https://a.example,https://b.example", ModeAllowList},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ParsePolicy(tt.raw)
			if p.Mode() != tt.wantMode {
				t.Errorf("ParsePolicy(%q).Mode() = %v, want %v", tt.raw, p.Mode(), tt.wantMode)
			}
		})
	}
}

func TestParsePolicyDefaultsOnly(t *testing.T) {
	t.Parallel()

	p := ParsePolicy("")
	if !reflect.DeepEqual(p.Origins(), DefaultOrigins) {
		t.Errorf("Origins() = %v, want defaults %v", p.Origins(), DefaultOrigins)
	}
}

func TestParsePolicyUnionNeverReplaces(t *testing.T) {
	t.Parallel()

	p := ParsePolicy("https://other.example")
	for _, o := range DefaultOrigins {
		if !p.Allows(o) {
			t.Errorf("default origin %q must stay allowed when CORS_ORIGIN is set", o)
		}
	}
	if !p.Allows("https://other.example") {
		t.Error("configured origin should be allowed")
	}
}

func TestParsePolicyTrimsAndDedupes(t *testing.T) {
	t.Parallel()

	p := ParsePolicy(" ,, https://a.example , https://a.example, http://localhost:4200 ,")
	want := len(DefaultOrigins) + 1 // only https://a.example is new
	if got := len(p.Origins()); got != want {
		t.Errorf("effective allow-list has %d entries (%v), want %d", got, p.Origins(), want)
	}
	if !p.Allows("https://a.example") {
		t.Error("trimmed entry should be allowed")
	}
	if p.Allows("") {
		t.Error("empty entry must be discarded")
	}
}

func TestPolicyAllows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		origin string
		want   bool
	}{
		{"allow-all grants anything", "*", "https://anything.example", true},
		{"default local dev origin", "", "http://localhost:4200", true},
		{"default loopback IP origin", "", "http://127.0.0.1:4200", true},
		{"unknown origin", "", "https://evil.example", false},
		{"configured list miss", "https://a.example,https://b.example", "https://c.example", false},
		{"configured list hit", "https://a.example,https://b.example", "https://b.example", true},
		{"exact match only", "", "http://localhost:4200/", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ParsePolicy(tt.raw)
			if got := p.Allows(tt.origin); got != tt.want {
				t.Errorf("ParsePolicy(%q).Allows(%q) = %v, want %v", tt.raw, tt.origin, got, tt.want)
			}
		})
	}
}
