package driver

import (
	"regexp"
	"strings"

	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/metautil"
)

// WorkPart is one author or title of a work. Type is "author" for names,
// "uniform" for uniform titles and "title" otherwise.
type WorkPart struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// WorkIDSet identifies one intellectual work described by a record.
// Alternate-script forms are kept apart from the cataloged forms.
type WorkIDSet struct {
	Authors          []WorkPart `json:"authors,omitempty"`
	AuthorsAltScript []WorkPart `json:"authors_alt_script,omitempty"`
	Titles           []WorkPart `json:"titles,omitempty"`
	TitlesAltScript  []WorkPart `json:"titles_alt_script,omitempty"`
}

// workTitle describes how a title field is read for work clustering.
type workTitle struct {
	tag   string
	typ   string
	codes string
	// nonFiling is the indicator holding the skip count, 0 for none.
	nonFiling int
}

var workAuthors = []string{"100ab", "110ab", "111ac"}

var workTitles = []workTitle{
	{tag: "130", typ: "uniform", codes: "np", nonFiling: 1},
	{tag: "240", typ: "uniform", codes: "npmr", nonFiling: 2},
	{tag: "245", typ: "title", codes: "bnp", nonFiling: 2},
	{tag: "246", typ: "title", codes: "bnp"},
	{tag: "247", typ: "title", codes: "bnp", nonFiling: 2},
}

var analyticalTags = []string{"700", "710", "711"}

// WorkIdentificationData returns the primary work, when the record has a
// title, followed by every analytical entry: a 700, 710 or 711 with second
// indicator 2 and a $t naming a work contained in the item.
func (m *Marc) WorkIdentificationData() []WorkIDSet {
	var out []WorkIDSet
	var primary WorkIDSet
	for _, def := range workAuthors {
		fields := m.rec.DataField(def[:3])
		if len(fields) == 0 {
			continue
		}
		f := fields[0]
		primary.Authors = m.appendWorkPart(primary.Authors, "author", f.Subfields(def[3:]))
		if alt, ok := m.rec.LinkedField(f); ok {
			primary.AuthorsAltScript = m.appendWorkPart(primary.AuthorsAltScript, "author", alt.Subfields(def[3:]))
		}
		break
	}
	for _, t := range workTitles {
		for _, f := range m.rec.DataField(t.tag) {
			primary.Titles = m.appendWorkPart(primary.Titles, t.typ, workTitleValue(f, t))
			if alt, ok := m.rec.LinkedField(f); ok {
				primary.TitlesAltScript = m.appendWorkPart(primary.TitlesAltScript, t.typ, workTitleValue(alt, t))
			}
		}
	}
	if len(primary.Titles) > 0 {
		out = append(out, primary)
	}

	for _, f := range m.rec.DataField(analyticalTags...) {
		if f.Indicator(2) != "2" || !f.HasSubfield("t") {
			continue
		}
		set := m.analyticalEntry(f)
		if alt, ok := m.rec.LinkedField(f); ok {
			a := m.analyticalEntry(alt)
			set.AuthorsAltScript = a.Authors
			set.TitlesAltScript = a.Titles
		}
		if len(set.Titles) > 0 {
			out = append(out, set)
		}
	}
	return out
}

func (m *Marc) analyticalEntry(f marcidx.DataField) WorkIDSet {
	var set WorkIDSet
	var name []string
	for _, sf := range f.SubFields {
		// The name ends where the title begins.
		if sf.Code == "t" {
			break
		}
		if sf.Code != "" && strings.Contains(analyticalNameCodes(f.Tag), sf.Code) {
			name = append(name, sf.Value)
		}
	}
	set.Authors = m.appendWorkPart(nil, "author", strings.Join(name, " "))
	set.Titles = m.appendWorkPart(nil, "title", f.Subfields("tnpmr"))
	return set
}

func analyticalNameCodes(tag string) string {
	if tag == "711" {
		return "acdn"
	}
	return "abcd"
}

func workTitleValue(f marcidx.DataField, t workTitle) string {
	title := f.Subfield("a")
	if t.nonFiling > 0 {
		title = skipChars(title, nonFiling(f, t.nonFiling))
	}
	return joinNonEmpty(" ", append([]string{title}, f.SubfieldsArray(t.codes)...)...)
}

func (m *Marc) appendWorkPart(parts []WorkPart, typ, value string) []WorkPart {
	if value = m.strip(strings.TrimSpace(value)); value == "" {
		return parts
	}
	for _, p := range parts {
		if p.Type == typ && p.Value == value {
			return parts
		}
	}
	return append(parts, WorkPart{Type: typ, Value: value})
}

var pageCountPattern = regexp.MustCompile(`(\d+)\s*(?:p\b|pp\b|pages|s\b|sivua)`)

// DedupKeys bundles the values deduplication compares records on.
type DedupKeys struct {
	TitleKey        string   `json:"title_key"`
	ISBNKeys        []string `json:"isbn_keys,omitempty"`
	ISSNKeys        []string `json:"issn_keys,omitempty"`
	IDKeys          []string `json:"id_keys,omitempty"`
	Format          string   `json:"format"`
	PublicationYear string   `json:"publication_year,omitempty"`
	PageCount       string   `json:"page_count,omitempty"`
	SeriesISSN      string   `json:"series_issn,omitempty"`
	SeriesNumbering string   `json:"series_numbering,omitempty"`
}

// DedupKeys computes the record's deduplication keys.
func (m *Marc) DedupKeys() DedupKeys {
	k := DedupKeys{
		TitleKey:        metautil.NormalizeKey(m.Title(true)),
		ISBNKeys:        m.ISBNs(),
		ISSNKeys:        m.ValidISSNs(),
		IDKeys:          m.UniqueIDs(),
		Format:          m.Format(),
		PublicationYear: m.PublishDateSort(),
		PageCount:       m.PageCount(),
	}
	for _, f := range m.rec.DataField("490") {
		if k.SeriesISSN == "" {
			if issn, ok := normalizeISSN(f.Subfield("x")); ok {
				k.SeriesISSN = issn
			}
		}
		if k.SeriesNumbering == "" {
			k.SeriesNumbering = m.strip(strings.TrimSpace(f.Subfield("v")))
		}
	}
	return k
}

// PageCount returns the page count stated in 300 $a.
func (m *Marc) PageCount() string {
	for _, f := range m.rec.DataField("300") {
		if mm := pageCountPattern.FindStringSubmatch(f.Subfield("a")); mm != nil {
			return mm[1]
		}
	}
	return ""
}

// AddDedupKey records the key of the duplicate group the record belongs
// to. An empty key removes it.
func (m *Marc) AddDedupKey(key string) {
	m.rec.AddDedupKey(key)
}
