package driver

import (
	"github.com/mitlibraries/marcidx"
	"github.com/mitlibraries/marcidx/metautil"
)

// Subject headings as displayed; each field becomes one value.
var (
	topicFields = []string{
		"600abcdfgklmnopqrstuvxyz", "610abcdfgklmnoprstuvxyz", "611acdefgjklnpqstuvxyz",
		"630adfgklmnoprstvxyz", "650abcdevxyz", "653a", "656a",
	}
	genreFields      = []string{"655abcvxyz"}
	geographicFields = []string{"651aevxyz"}
	eraFields        = []string{"648avxyz"}
)

// Facet tables; each subfield becomes one value.
var (
	topicFacetFields = []string{
		"600x", "610x", "611x", "630x", "648x", "650a", "650x", "651x", "655x",
	}
	genreFacetFields = []string{
		"600v", "610v", "611v", "630v", "648v", "650v", "651v", "655a", "655v",
	}
	geographicFacetFields = []string{
		"600z", "610z", "611z", "630z", "648z", "650z", "651a", "651z", "655z",
	}
	eraFacetFields = []string{
		"600d", "610y", "611y", "630y", "648a", "648y", "650y", "651y", "655y",
	}
)

func (m *Marc) headings(defs []string) []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Both, defs...)))
}

func (m *Marc) facets(defs []string) []string {
	return metautil.Dedupe(m.rec.FieldsSubfields(specs(marcidx.Both, defs...), marcidx.SplitSubfields()))
}

// Topics returns topical subject headings.
func (m *Marc) Topics() []string { return m.headings(topicFields) }

// TopicFacets returns topical facet values.
func (m *Marc) TopicFacets() []string { return m.facets(topicFacetFields) }

// Genres returns genre and form headings.
func (m *Marc) Genres() []string { return m.headings(genreFields) }

// GenreFacets returns genre facet values.
func (m *Marc) GenreFacets() []string { return m.facets(genreFacetFields) }

// Geographic returns geographic subject headings.
func (m *Marc) Geographic() []string { return m.headings(geographicFields) }

// GeographicFacets returns geographic facet values.
func (m *Marc) GeographicFacets() []string { return m.facets(geographicFacetFields) }

// Eras returns chronological subject headings.
func (m *Marc) Eras() []string { return m.headings(eraFields) }

// EraFacets returns chronological facet values.
func (m *Marc) EraFacets() []string { return m.facets(eraFacetFields) }
