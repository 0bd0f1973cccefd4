package metautil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const basePunctuation = " /:;,=(["

// DefaultAbbreviations are words whose trailing period is kept.
var DefaultAbbreviations = []string{
	"co", "corp", "dr", "ed", "eds", "esq", "etc", "inc", "jr", "ltd",
	"no", "nos", "op", "pt", "rev", "sr", "st", "vol", "vols",
}

// Punctuation strips the punctuation ISBD cataloging leaves at the end of
// field values.
type Punctuation struct {
	abbrev map[string]struct{}
}

// NewPunctuation returns a Punctuation that keeps trailing periods after
// the given abbreviations, or after DefaultAbbreviations when abbrev is nil.
func NewPunctuation(abbrev []string) *Punctuation {
	if abbrev == nil {
		abbrev = DefaultAbbreviations
	}
	p := &Punctuation{abbrev: make(map[string]struct{}, len(abbrev))}
	for _, a := range abbrev {
		p.abbrev[strings.ToLower(strings.TrimSuffix(a, "."))] = struct{}{}
	}
	return p
}

// StripTrailingPunctuation removes trailing separators, a final period
// that does not end an initial or abbreviation, and unbalanced closing
// brackets.
func (p *Punctuation) StripTrailingPunctuation(s string) string {
	s = strings.TrimRight(s, basePunctuation)
	if strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "...") && !p.keepPeriod(s) {
		s = strings.TrimRight(s[:len(s)-1], basePunctuation)
	}
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		if strings.HasSuffix(s, pair[1]) && strings.Count(s, pair[0]) < strings.Count(s, pair[1]) {
			s = strings.TrimRight(s[:len(s)-1], basePunctuation)
		}
	}
	return s
}

func (p *Punctuation) keepPeriod(s string) bool {
	word := s[:len(s)-1]
	if i := strings.LastIndexAny(word, " ,("); i >= 0 {
		word = word[i+1:]
	}
	if word == "" {
		return false
	}
	if r, size := utf8.DecodeRuneInString(word); size == len(word) && unicode.IsUpper(r) {
		return true
	}
	if strings.Contains(word, ".") {
		return true
	}
	_, ok := p.abbrev[strings.ToLower(word)]
	return ok
}

// HasTrailingPunctuation reports whether s already ends in a separator.
func HasTrailingPunctuation(s string) bool {
	s = strings.TrimRight(s, " ")
	return s != "" && strings.ContainsAny(s[len(s)-1:], ":;/.,=")
}
