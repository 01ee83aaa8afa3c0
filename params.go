package objpath

import (
	"net/url"
	"strings"
)

// Params is an ordered set of free-form key/value options attached to a path
// and passed through to every remote call (ACL, storage class, encryption,
// metadata, and so on). Keys are normalized to lower case with underscores
// folded to hyphens, so "Storage_Class", "storage_class" and "storage-class"
// all name the same option.
//
// Insertion order is preserved; setting an existing key updates its value in
// place without moving it.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns an empty Params.
func NewParams() *Params {
	return &Params{values: make(map[string]string)}
}

// NormalizeParamKey returns the canonical form of an option key.
func NormalizeParamKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Set stores the value under the normalized key.
func (p *Params) Set(key, value string) {
	key = NormalizeParamKey(key)
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for the normalized key, and whether it was present.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[NormalizeParamKey(key)]
	return v, ok
}

// Has reports whether the key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[NormalizeParamKey(key)]
	return ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of options.
func (p *Params) Len() int {
	return len(p.keys)
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	c := NewParams()
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}
	return c
}

// Merge overlays other on top of p and returns the result as a new Params.
// Keys from other win over keys already in p. This is the documented
// precedence rule for paths built from a URI: merge the query parameters
// first, then the explicitly supplied options, so explicit options win.
func (p *Params) Merge(other *Params) *Params {
	m := p.Clone()
	if other == nil {
		return m
	}
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
	return m
}

// ParseQuery parses a URI query string into Params, preserving the order the
// keys appear in. A key repeated in the query keeps its last value. Keys are
// normalized as in Set.
func ParseQuery(rawQuery string) (*Params, error) {
	p := NewParams()
	for pair := range strings.SplitSeq(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		value, err = url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		p.Set(key, value)
	}
	return p, nil
}

// Encode renders the params as a query string in insertion order.
func (p *Params) Encode() string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}
