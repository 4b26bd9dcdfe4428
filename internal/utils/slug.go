package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	// Anything outside the unreserved URL characters (letters, digits, - . _ ~).
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}\s\-._~]+`)
	hyphenRuns  = regexp.MustCompile(`-{2,}`)
)

// FallbackSlug is used when a name has no URL-safe characters at all.
const FallbackSlug = "untitled"

// Slugify lowercases s, drops characters that are not URL-safe and replaces
// every run of whitespace with a hyphen. The result is usable as a single
// path segment.
func Slugify(s string) string {
	slug := unsafeChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
	slug = whitespace.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = strings.Trim(hyphenRuns.ReplaceAllString(slug, "-"), "-")
	if slug == "" || slug == "." || slug == ".." {
		return FallbackSlug
	}
	return slug
}

// ExistsFunc reports whether a candidate value is already taken.
type ExistsFunc func(candidate string) (bool, error)

// FirstFree returns the first candidate(attempt) that is not taken, trying
// attempt 0, 1, 2, ...
func FirstFree(candidate func(attempt int) string, exists ExistsFunc) (string, error) {
	for attempt := 0; ; attempt++ {
		value := candidate(attempt)
		taken, err := exists(value)
		if err != nil {
			return "", err
		}
		if !taken {
			return value, nil
		}
	}
}

// UniqueValue returns base if it is free, otherwise the first free value of
// base+sep+"1", base+sep+"2", ... The suffix always applies to base.
func UniqueValue(base, sep string, exists ExistsFunc) (string, error) {
	return FirstFree(func(attempt int) string {
		if attempt == 0 {
			return base
		}
		return fmt.Sprintf("%s%s%d", base, sep, attempt)
	}, exists)
}

// UniqueSlug slugifies name and resolves collisions with a numeric suffix.
func UniqueSlug(name string, exists ExistsFunc) (string, error) {
	return UniqueValue(Slugify(name), "-", exists)
}

// TruncateRunes shortens s to at most n characters and trims trailing spaces
// left by the cut.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:max(n, 0)]), " ")
}
