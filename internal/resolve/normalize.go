// Package resolve implements the identity-resolution core: name/date
// normalization, the alias index, the multi-pass registry builder, the
// deterministic joiner, gated fuzzy matching, review workbook scoring,
// and override application.
package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suffixTokens are generational suffixes dropped as trailing words when
// building a NameKey. "v" is only ever dropped as a trailing token, so
// ordinary names are unaffected.
var suffixTokens = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9 ]+`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	isoDateRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// foldDiacritics decomposes accented characters and drops the combining
// marks, so "José" and "Jose" produce the same key.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NameKey derives the normalized comparison key for a full name:
// lowercase, diacritics folded, all punctuation stripped (including
// interior hyphens and apostrophes), generational suffixes removed as
// trailing words, whitespace collapsed. Total and idempotent:
// unrecognized input degrades to "" rather than an error.
func NameKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	words := strings.Fields(s)
	for len(words) > 1 {
		if _, ok := suffixTokens[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}

	return strings.Join(words, " ")
}

// DateKey derives the exact blocking key for a birth date: the first 10
// characters when they form a YYYY-MM-DD prefix (date-time strings are
// truncated to the date), else the raw trimmed string, else "".
// Never fuzzy-compared.
func DateKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if isoDateRe.MatchString(s) {
		return s[:10]
	}
	return s
}
