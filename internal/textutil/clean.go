// Package textutil holds small string helpers shared by the CLI and API
package textutil

import (
	"regexp"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators = regexp.MustCompile(`[\s-]+`)
	dashable   = regexp.MustCompile(`[\s_]`)
)

// LowerASCII lowercases the letters A-Z and leaves every other byte as is.
// Unicode case folding would turn runes such as the Kelvin sign into ASCII.
func LowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// CleanString converts s into a lowercase, dash-separated string usable
// in a URL
func CleanString(s string) string {
	s = LowerASCII(s)
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, " ")
	return dashable.ReplaceAllString(s, "-")
}
