// Package util provides common utility functions.
package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTagName returns the canonical stored form of a tag name.
// Names are compared exactly after normalization, so case is preserved.
//
//	"  focus "     → "focus"
//	"cafe\u0301"     → "caf\u00e9" (composed)
func NormalizeTagName(input string) string {
	return norm.NFC.String(strings.TrimSpace(input))
}

// NormalizeTagNames normalizes names, drops empties and collapses duplicates,
// keeping the first occurrence of each name.
func NormalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := NormalizeTagName(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
