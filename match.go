package objpath

import (
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// wildcard characters recognized by the glob syntax
const globSpecial = `*?[{\`

// MatchSpec is a compiled filter for listing: a glob pattern anchored at a
// base key, plus the case and hidden-entry flags. When the pattern contains
// no wildcard the spec resolves to exact-key mode, signalled by Exact();
// callers can then probe the single key directly instead of listing.
//
// Supports: *, ?, [abc], [a-z], {alt1,alt2} and ** for crossing separators.
type MatchSpec struct {
	full          string
	prefix        string
	exact         bool
	caseSensitive bool
	hidden        bool
	matcher       glob.Glob
}

// NewMatchSpec builds a MatchSpec from the base key a listing starts at, the
// glob pattern relative to it, and the listing options.
func NewMatchSpec(base, pattern string, opts ListOptions) (*MatchSpec, error) {
	full := pattern
	if base != "" {
		full = strings.TrimSuffix(base, "/") + "/" + pattern
	}

	m := &MatchSpec{
		full:          full,
		caseSensitive: opts.CaseSensitive,
		hidden:        opts.Hidden,
	}

	if !strings.ContainsAny(pattern, globSpecial) {
		m.exact = true
		m.prefix = full
		return m, nil
	}

	m.prefix = wildcardPrefix(full)

	compile := full
	if !opts.CaseSensitive {
		compile = strings.ToLower(compile)
	}
	g, err := glob.Compile(compile, '/')
	if err != nil {
		return nil, &AddressError{URI: pattern, Reason: "bad glob pattern: " + err.Error()}
	}
	m.matcher = g
	return m, nil
}

// Exact reports whether the pattern contains no wildcard, in which case
// ExactKey names the only key that can match and no listing is needed.
func (m *MatchSpec) Exact() bool {
	return m.exact
}

// ExactKey returns the single candidate key in exact mode.
func (m *MatchSpec) ExactKey() string {
	return m.full
}

// Prefix returns the literal portion of the pattern before its first
// wildcard. It scopes the backend listing; the matcher remains the sole
// correctness filter.
func (m *MatchSpec) Prefix() string {
	return m.prefix
}

// Match tests a fully-qualified candidate key against the spec.
func (m *MatchSpec) Match(candidate string) bool {
	if !m.hidden && strings.HasPrefix(path.Base(strings.TrimSuffix(candidate, "/")), ".") {
		return false
	}

	if m.exact {
		if m.caseSensitive {
			return candidate == m.full
		}
		return strings.EqualFold(candidate, m.full)
	}

	if !m.caseSensitive {
		candidate = strings.ToLower(candidate)
	}
	return m.matcher.Match(candidate)
}

// wildcardPrefix returns the part of pattern before the first unescaped
// wildcard character.
func wildcardPrefix(pattern string) string {
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' {
			i++
			continue
		}
		if strings.IndexByte(globSpecial, c) >= 0 {
			return pattern[:i]
		}
	}
	return pattern
}
