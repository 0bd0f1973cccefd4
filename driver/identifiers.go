package driver

import (
	"regexp"
	"strings"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/metautil"
)

var (
	issnPattern = regexp.MustCompile(`^(\d{4})-?(\d{3}[\dXx])`)
	ismnPattern = regexp.MustCompile(`[0-9]{13}`)

	oclcPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\((?:ocolc|ocm|ocn)\)(?:oc[mn])?0*(\d+)`),
		regexp.MustCompile(`^oc[mn]0*(\d+)`),
		regexp.MustCompile(`^on0*(\d+)`),
	}
	oclcPrefixes = []string{"(ocolc)", "ocm", "ocn", "on"}

	// controlNumberPatterns are the 035 sources trusted as unique IDs.
	controlNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\((CONSER|DLC|OCoLC)\)(.+)$`),
		regexp.MustCompile(`^\((EXLNZ-[^)]+)\)(.+)$`),
		regexp.MustCompile(`^\((EXLCZ)\)(.+)$`),
		regexp.MustCompile(`^\(([A-Z]{2}-[A-Za-z0-9:/-]+)\)(.+)$`),
	}

	// standardIDSources maps the first indicator of 024.
	standardIDSources = map[string]string{
		"0": "istc",
		"1": "upc",
		"2": "ismn",
		"3": "ian",
		"4": "sici",
		"8": "unk",
	}
)

// ISBNs returns the record's ISBNs in 13-digit form. Unparsable values are
// dropped with a warning.
func (m *Marc) ISBNs() []string {
	var out []string
	for _, f := range m.rec.DataField("020") {
		v := strings.TrimSpace(f.Subfield("a"))
		if v == "" {
			continue
		}
		isbn, ok := metautil.NormalizeISBN(v)
		if !ok {
			m.rec.Warn("invalid ISBN")
			continue
		}
		out = append(out, isbn)
	}
	return metautil.Dedupe(out)
}

// ISSNs returns ISSNs as cataloged in the record and its linking fields.
func (m *Marc) ISSNs() []string {
	return m.all("022a", "440x", "490x", "730x", "776x", "780x", "785x")
}

// ValidISSNs returns the record's own ISSNs from 022 in "1234-567X" form.
// Malformed values are dropped with a warning.
func (m *Marc) ValidISSNs() []string {
	var out []string
	for _, f := range m.rec.DataField("022") {
		v := strings.TrimSpace(f.Subfield("a"))
		if v == "" {
			continue
		}
		if n, ok := normalizeISSN(v); ok {
			out = append(out, n)
		} else {
			m.rec.Warn("invalid ISSN")
		}
	}
	return metautil.Dedupe(out)
}

func normalizeISSN(s string) (string, bool) {
	mm := issnPattern.FindStringSubmatch(strings.TrimSpace(s))
	if mm == nil {
		return "", false
	}
	return mm[1] + "-" + strings.ToUpper(mm[2]), true
}

// OCLCNumbers returns OCLC control numbers found in 035 without prefixes
// or leading zeros.
func (m *Marc) OCLCNumbers() []string {
	var out []string
	for _, f := range m.rec.DataField("035") {
		id := strings.ToLower(strings.TrimSpace(f.Subfield("a")))
		if !hasAnyPrefix(id, oclcPrefixes) {
			continue
		}
		for _, p := range oclcPatterns {
			if mm := p.FindStringSubmatch(id); mm != nil {
				out = append(out, mm[1])
				break
			}
		}
	}
	return metautil.Dedupe(out)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// LCCN returns the Library of Congress control number.
func (m *Marc) LCCN() string {
	return strings.TrimSpace(m.first(specs(marcidx.Normal, "010a")))
}

// ControlNumbers returns 035 $a values.
func (m *Marc) ControlNumbers() []string {
	return m.all("035a")
}

// UniqueIDs returns source-prefixed identifiers, such as "(lccn)n79021164",
// that identify the same resource across sources.
func (m *Marc) UniqueIDs() []string {
	var out []string
	add := func(src, nr string) {
		if src != "" && nr != "" {
			out = append(out, "("+strings.ToLower(src)+")"+nr)
		}
	}
	if f, ok := m.rec.Field("010").(marcidx.DataField); ok {
		add("lccn", metautil.NormalizeKey(f.Subfield("a")))
		add("nucmc", metautil.NormalizeKey(f.Subfield("b")))
	}
	for _, tag := range []string{"015", "016"} {
		if f, ok := m.rec.Field(tag).(marcidx.DataField); ok {
			add(f.Subfield("2"), metautil.NormalizeKey(firstWord(f.Subfield("a"))))
		}
	}
	if f, ok := m.rec.Field("024").(marcidx.DataField); ok {
		nr := f.Subfield("a")
		src, known := standardIDSources[f.Indicator(1)]
		if f.Indicator(1) == "7" {
			src, known = f.Subfield("2"), true
		}
		switch src {
		case "ian":
			nr = firstWord(nr)
		case "ismn":
			nr = ismnPattern.FindString(strings.ReplaceAll(nr, "-", ""))
		}
		if known {
			add(src, metautil.NormalizeKey(nr))
		}
	}
	for _, f := range m.rec.DataField("035") {
		v := strings.TrimSpace(f.Subfield("a"))
		for _, p := range controlNumberPatterns {
			if mm := p.FindStringSubmatch(v); mm != nil {
				add(mm[1], metautil.NormalizeKey(mm[2]))
				break
			}
		}
	}
	return metautil.Dedupe(out)
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
