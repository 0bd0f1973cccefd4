package driver

import (
	"regexp"
	"strings"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/metautil"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Languages returns language codes from 008/35-37 and 041 $a and $d. Runs
// of codes such as "engfre" in 041 are split into three-letter codes.
func (m *Marc) Languages() []string {
	var out []string
	if code := strings.ToLower(strings.TrimSpace(substr(m.rec.ControlValue("008"), 35, 38))); len(code) == 3 && code != "|||" {
		out = append(out, code)
	}
	for _, v := range m.rec.FieldsSubfields(specs(marcidx.Normal, "041ad"), marcidx.SplitSubfields()) {
		v = strings.ToLower(strings.TrimSpace(v))
		for len(v) >= 3 {
			out = append(out, v[:3])
			v = v[3:]
		}
	}
	return metautil.Dedupe(out)
}

// Publishers returns publisher names from 260 $b and from 264 $b when the
// 264 is a publication statement.
func (m *Marc) Publishers() []string {
	return m.publication("b")
}

// PublishDates returns the date from 008/07-10 when it is a year, else the
// years found in 260 $c and publication 264 $c.
func (m *Marc) PublishDates() []string {
	if y := substr(m.rec.ControlValue("008"), 7, 11); isYear(y) {
		return []string{y}
	}
	var out []string
	for _, v := range m.publication("c") {
		out = append(out, yearPattern.FindAllString(v, -1)...)
	}
	return metautil.Dedupe(out)
}

// PublishDateSort returns the first publication year.
func (m *Marc) PublishDateSort() string {
	if d := m.PublishDates(); len(d) > 0 {
		return d[0]
	}
	return ""
}

func (m *Marc) publication(code string) []string {
	out := m.rec.FieldsSubfields(specs(marcidx.Both, "260"+code))
	for _, f := range m.rec.DataField("264") {
		if f.Indicator(2) != "1" {
			continue
		}
		vals := f.SubfieldsArray(code)
		if alt, ok := m.rec.LinkedField(f); ok {
			vals = append(vals, alt.SubfieldsArray(code)...)
		}
		for _, v := range vals {
			out = append(out, m.strip(v))
		}
	}
	return metautil.Dedupe(out)
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func substr(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

// PhysicalDescriptions returns 300 and 530 statements.
func (m *Marc) PhysicalDescriptions() []string {
	return m.all("300abcefg", "530abcd")
}

// Editions returns edition statements.
func (m *Marc) Editions() []string {
	return m.all("250a")
}

// Contents returns formatted contents notes, one value per subfield.
func (m *Marc) Contents() []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Normal, "505at"), marcidx.SplitSubfields()))
}

// Descriptions returns summary notes.
func (m *Marc) Descriptions() []string {
	return m.all("520a")
}

// DateSpans returns dates of publication and sequential designation.
func (m *Marc) DateSpans() []string {
	return m.all("362a")
}

// URLs returns electronic locations.
func (m *Marc) URLs() []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Normal, "856u"),
		marcidx.SplitSubfields(), marcidx.KeepPunctuation()))
}

// AllFields joins the text of every data field from 100 to 899, skipping
// numeric control subfields such as $6 and $8.
func (m *Marc) AllFields() string {
	var parts []string
	for _, tag := range m.rec.Tags() {
		if tag < "100" || tag > "899" {
			continue
		}
		for _, f := range m.rec.DataField(tag) {
			for _, sf := range f.SubFields {
				if sf.Code == "" || (sf.Code[0] >= '0' && sf.Code[0] <= '9') {
					continue
				}
				if v := strings.TrimSpace(sf.Value); v != "" {
					parts = append(parts, v)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
