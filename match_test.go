package objpath

import "testing"

func TestMatchSpecExact(t *testing.T) {
	spec, err := NewMatchSpec("data", "2026/report.csv", NewListOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !spec.Exact() {
		t.Fatal("wildcard-free pattern should be exact")
	}
	if got := spec.ExactKey(); got != "data/2026/report.csv" {
		t.Errorf("ExactKey() = %q", got)
	}
	if !spec.Match("data/2026/report.csv") {
		t.Error("exact key should match itself")
	}
	if spec.Match("data/2026/report.csv.bak") {
		t.Error("exact mode must not match other keys")
	}
}

func TestMatchSpecWildcard(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		pattern   string
		opts      []ListOption
		candidate string
		want      bool
	}{
		{"star within segment", "logs", "2026-*.gz", nil, "logs/2026-01.gz", true},
		{"star does not cross separator", "logs", "*.gz", nil, "logs/deep/x.gz", false},
		{"doublestar crosses separators", "logs", "**.gz", nil, "logs/deep/x.gz", true},
		{"question mark", "", "file?.txt", nil, "file1.txt", true},
		{"char class", "", "report-[0-9].csv", nil, "report-7.csv", true},
		{"alternation", "", "*.{csv,tsv}", nil, "data.tsv", true},
		{"no match", "logs", "2026-*.gz", nil, "logs/2025-01.gz", false},
		{"case sensitive by default", "", "*.CSV", nil, "data.csv", false},
		{"case insensitive", "", "*.CSV", []ListOption{CaseInsensitive()}, "data.csv", true},
		{"hidden skipped by default", "", "*", nil, ".hidden", false},
		{"hidden included on request", "", "*", []ListOption{IncludeHidden()}, ".hidden", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewMatchSpec(tt.base, tt.pattern, NewListOptions(tt.opts...))
			if err != nil {
				t.Fatal(err)
			}
			if spec.Exact() {
				t.Fatal("wildcard pattern should not be exact")
			}
			if got := spec.Match(tt.candidate); got != tt.want {
				t.Errorf("Match(%q) = %v; want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestMatchSpecPrefix(t *testing.T) {
	tests := []struct {
		base    string
		pattern string
		want    string
	}{
		{"logs", "2026-*.gz", "logs/2026-"},
		{"", "*.csv", ""},
		{"data", "sub/x?.bin", "data/sub/x"},
		{"a", "b/c", "a/b/c"},
	}

	for _, tt := range tests {
		spec, err := NewMatchSpec(tt.base, tt.pattern, NewListOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got := spec.Prefix(); got != tt.want {
			t.Errorf("Prefix(%q, %q) = %q; want %q", tt.base, tt.pattern, got, tt.want)
		}
	}
}

func TestMatchSpecBadPattern(t *testing.T) {
	if _, err := NewMatchSpec("", "[unclosed", NewListOptions()); err == nil {
		t.Error("expected error for unclosed character class")
	}
}
