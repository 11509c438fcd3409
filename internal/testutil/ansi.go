// Package testutil provides shared helpers for tests.
package testutil

import "regexp"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape sequences from a string, so tests can
// assert on terminal output regardless of the active theme.
func StripAnsiCodes(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
