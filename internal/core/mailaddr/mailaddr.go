// Package mailaddr holds the syntactic email check used by the signup flow.
// The check is deliberately loose: one @, no whitespace, a dotted domain.
// Anything stricter belongs to the contact provider, not to us.
package mailaddr

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether s looks like an email address
// Pure function, no I/O; runs before any external call is made
func Valid(s string) bool {
	return s != "" && emailRe.MatchString(s)
}
