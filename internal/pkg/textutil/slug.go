// Package textutil provides pure helpers that derive note metadata from text.
package textutil

import (
	"regexp"
	"strings"
)

var (
	// Matches every character that may not appear in a slug. Word characters,
	// whitespace and hyphens survive; whitespace and underscores are folded
	// into hyphens afterwards.
	slugDisallowedRe = regexp.MustCompile(`[^\w\s-]`)
	// Matches runs of whitespace, underscores and hyphens.
	slugSeparatorRe = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a note title to its canonical URL slug. The slug is the
// public identity of a note, so the rules are fixed:
//
//  1. Lowercase and trim surrounding whitespace
//  2. Drop characters that are not word characters, whitespace or hyphens
//  3. Collapse runs of whitespace, underscores and hyphens into one hyphen
//  4. Strip leading and trailing hyphens
//
// Example:
//
//	Slugify("Intro to Anatomy!! 101") // "intro-to-anatomy-101"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDisallowedRe.ReplaceAllString(s, "")
	s = slugSeparatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
