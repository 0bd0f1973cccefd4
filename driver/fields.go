package driver

import (
	"fmt"

	"github.com/mitlibraries/marcidx"
)

// FieldMap is the flat document handed to the indexer. Values are string
// or []string; empty values are never stored.
type FieldMap map[string]any

func (f FieldMap) set(key, value string) {
	if value != "" {
		f[key] = value
	}
}

func (f FieldMap) list(key string, values []string) {
	if len(values) > 0 {
		f[key] = values
	}
}

// String returns the scalar stored under key.
func (f FieldMap) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Strings returns the list stored under key.
func (f FieldMap) Strings(key string) []string {
	s, _ := f[key].([]string)
	return s
}

// IndexFields derives the index document. The full record is stored as
// ISO2709, or as MARCXML when the record is too large for ISO2709.
func (m *Marc) IndexFields() (FieldMap, error) {
	doc := FieldMap{}
	doc.set("record_format", RecordFormat)

	full, format, err := m.rec.FullRecord()
	if err != nil {
		return nil, fmt.Errorf("full record: %w", err)
	}
	if format == marcidx.FormatMARCXML {
		m.stats.Fallback()
		m.logger.Warn("record stored as MARCXML", "id", m.ID(), "reason", "exceeds ISO2709 limits")
	}
	doc.set("fullrecord", string(full))
	doc.set("allfields", m.AllFields())
	doc.set("format", m.Format())

	doc.set("title", m.Title(false))
	doc.set("title_short", m.TitleShort())
	doc.set("title_full", m.TitleFull())
	doc.set("title_sub", m.TitleSub())
	doc.set("title_sort", m.TitleSort())
	doc.list("title_alt", m.TitleAlt())
	doc.list("title_old", m.TitleOld())
	doc.list("title_new", m.TitleNew())
	doc.list("series", m.Series())

	primary := m.PrimaryAuthors()
	doc.list("author", primary.Names)
	doc.list("author_role", primary.Roles)
	doc.list("author_fuller", primary.Fuller)
	secondary := m.SecondaryAuthors()
	doc.list("author2", secondary.Names)
	doc.list("author2_role", secondary.Roles)
	doc.list("author2_fuller", secondary.Fuller)
	corporate := m.CorporateAuthors()
	doc.list("author_corporate", corporate.Names)
	doc.list("author_corporate_role", corporate.Roles)
	doc.set("author_sort", m.MainAuthor())

	doc.list("publisher", m.Publishers())
	doc.list("publishDate", m.PublishDates())
	doc.set("publishDateSort", m.PublishDateSort())
	doc.list("physical", m.PhysicalDescriptions())
	doc.list("edition", m.Editions())
	doc.list("contents", m.Contents())
	doc.list("description", m.Descriptions())
	doc.list("dateSpan", m.DateSpans())
	doc.list("url", m.URLs())
	if m.Illustrated() {
		doc.set("illustrated", "Illustrated")
	} else {
		doc.set("illustrated", "Not Illustrated")
	}

	doc.list("isbn", m.ISBNs())
	doc.list("issn", m.ISSNs())
	doc.set("lccn", m.LCCN())
	doc.list("ctrlnum", m.ControlNumbers())
	doc.list("oclc_num", m.OCLCNumbers())

	doc.list("topic", m.Topics())
	doc.list("topic_facet", m.TopicFacets())
	doc.list("genre", m.Genres())
	doc.list("genre_facet", m.GenreFacets())
	doc.list("geographic", m.Geographic())
	doc.list("geographic_facet", m.GeographicFacets())
	doc.list("era", m.Eras())
	doc.list("era_facet", m.EraFacets())
	doc.list("language", m.Languages())
	doc.list("building", m.Building())

	shapes, centers := m.LocationGeo()
	doc.list("location_geo", shapes)
	doc.list("center_coords", centers)

	doc.list("callnumber-raw", m.CallNumbers())
	if lc, ok := m.LC(); ok {
		doc.set("callnumber-first", lc.First)
		doc.set("callnumber-subject", lc.Subject)
		doc.set("callnumber-label", lc.Label)
		doc.set("callnumber-sort", lc.Sort)
		doc.set("callnumber-category", lc.Category)
	}
	if d, ok := m.Dewey(); ok {
		doc.set("dewey-hundreds", d.Hundreds)
		doc.set("dewey-tens", d.Tens)
		doc.set("dewey-ones", d.Ones)
		doc.set("dewey-full", d.Full)
		doc.set("dewey-sort", d.Sort)
		doc.set("dewey-raw", d.Raw)
	}
	return doc, nil
}
