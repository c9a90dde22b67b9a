package scanner

import (
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreMatcher decides whether a directory path is excluded by the
// configured ignore patterns. Patterns are glob-style and apply to
// individual path segments: a directory is excluded when its own name or
// any ancestor's name matches a pattern.
//
// The matching is an explicit predicate over segment sequences rather than
// a globbing library's traversal semantics, so the ancestor rules stay
// testable on their own.
type IgnoreMatcher struct {
	globs []glob.Glob
}

// NewIgnoreMatcher compiles the given patterns. Invalid patterns are skipped.
func NewIgnoreMatcher(patterns []string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		m.globs = append(m.globs, g)
	}
	return m
}

// MatchSegment reports whether a single path segment matches any pattern.
func (m *IgnoreMatcher) MatchSegment(name string) bool {
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Excluded reports whether a slash-separated relative path is excluded,
// checking every segment in its ancestry.
func (m *IgnoreMatcher) Excluded(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if segment == "" {
			continue
		}
		if m.MatchSegment(segment) {
			return true
		}
	}
	return false
}
