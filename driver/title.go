package driver

import (
	"strings"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/metautil"
)

var titlePunctuation = map[string]string{
	"b": " : ",
	"n": ". ",
	"p": ", ",
}

// Title returns the title proper with its remainder, part number and part
// name from 245, falling back to 240. With forFiling the leading
// non-filing characters given by the second indicator are dropped.
func (m *Marc) Title(forFiling bool) string {
	for _, tag := range []string{"245", "240"} {
		fields := m.rec.DataField(tag)
		if len(fields) == 0 || len(fields[0].SubFields) == 0 {
			continue
		}
		f := fields[0]
		title := f.Subfield("a")
		if forFiling {
			title = skipChars(title, nonFiling(f, 2))
		}
		punct := metautil.HasTrailingPunctuation(title)
		for _, sf := range f.SubFields {
			sep, ok := titlePunctuation[sf.Code]
			if !ok || sf.Value == "" {
				continue
			}
			switch {
			case title == "":
			case punct:
				title += " "
			default:
				title += sep
			}
			title += sf.Value
			punct = metautil.HasTrailingPunctuation(sf.Value)
		}
		return m.strip(strings.TrimSpace(title))
	}
	return ""
}

// TitleSort returns the filing form of the title, lowercased.
func (m *Marc) TitleSort() string {
	return strings.ToLower(m.Title(true))
}

// TitleShort returns 245 $a.
func (m *Marc) TitleShort() string {
	return m.first(specs(marcidx.Normal, "245a"))
}

// TitleSub returns the remainder of the title from 245.
func (m *Marc) TitleSub() string {
	return m.first(specs(marcidx.Normal, "245bnp"))
}

// TitleFull returns the complete title statement.
func (m *Marc) TitleFull() string {
	return m.first(specs(marcidx.Normal, "245abcfgknps"))
}

// TitleAlt returns uniform, varying and added titles, including their
// alternate-script forms and the alternate-script title statement.
func (m *Marc) TitleAlt() []string {
	s := specs(marcidx.Both, "130adfgklnpst", "240adfgklmnoprs", "246abnp", "730adfgklmnoprst", "740anp")
	s = append(s, specs(marcidx.Alt, "245ab")...)
	return metautil.Dedupe(m.rec.FieldsSubfields(s))
}

// TitleOld returns preceding titles.
func (m *Marc) TitleOld() []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Normal, "780ast")))
}

// TitleNew returns succeeding titles.
func (m *Marc) TitleNew() []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Normal, "785ast")))
}

// Series returns series statements and added entries.
func (m *Marc) Series() []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Both,
		"440ap", "490a", "800abcdfpqt", "810abcdfpqt", "811acdefpqt", "830ap")))
}

func (m *Marc) first(s []marcidx.Spec) string {
	if v := m.rec.FieldsSubfields(s, marcidx.FirstOnly()); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (m *Marc) all(s ...string) []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Normal, s...)))
}
