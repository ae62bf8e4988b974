// Package strings provides small string helpers shared across the service
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /signup or /meta
// ensures a single leading slash and no trailing slash except for the root itself
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// FirstCSV returns the first non-empty comma-separated entry of s, trimmed
// returns "" when s has no usable entry
func FirstCSV(s string) string {
	for part := range std.SplitSeq(s, ",") {
		if v := std.TrimSpace(part); v != "" {
			return v
		}
	}
	return ""
}

// EqualFold reports whether a and b match case-insensitively
func EqualFold(a, b string) bool { return std.EqualFold(a, b) }
