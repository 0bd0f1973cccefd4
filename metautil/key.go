package metautil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldDiacritics decomposes s, drops combining marks and recomposes it
// in NFKC.
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFKC.String(s)
	}
	return out
}

// NormalizeKey turns s into a comparison key: diacritics folded,
// everything but letters and digits removed, lowercased.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range FoldDiacritics(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Dedupe removes empty and repeated values, trimming whitespace. Order is
// preserved.
func Dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
