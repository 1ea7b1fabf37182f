package utils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lower-cases a slug field and collapses every whitespace run into a
// single hyphen. Leading whitespace is dropped; any other character,
// punctuation included, passes through untouched. A trailing whitespace run
// therefore becomes a trailing hyphen, which is what the backend stores.
func Slugify(s string) string {
	s = strings.TrimLeft(s, " \t\n\r")
	s = strings.ToLower(s)
	return whitespaceRun.ReplaceAllString(s, "-")
}

// NormalizeCode upper-cases a discount code and strips surrounding whitespace.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
