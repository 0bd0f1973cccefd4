package driver

import (
	"strings"

	"github.com/mitlibraries/marcidx"
)

// Authors holds names in record order with one role per name. Fuller forms
// are listed where the field carries one.
type Authors struct {
	Names  []string
	Roles  []string
	Fuller []string
}

type authorSpec struct {
	tag      string
	codes    string
	relators map[string]struct{}
	// bare accepts fields without any relator.
	bare bool
}

func relatorSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, r := range list {
		if r = normalizeRelator(r); r != "" {
			set[r] = struct{}{}
		}
	}
	return set
}

func normalizeRelator(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), " .,"))
}

// PrimaryAuthors returns the main personal entry when its relator marks
// the person as an author, or when it carries no relator.
func (m *Marc) PrimaryAuthors() Authors {
	return m.authorsByRelator([]authorSpec{
		{tag: "100", codes: "abcd", relators: relatorSet(m.settings.PrimaryAuthorRelators), bare: true},
	})
}

// SecondaryAuthors returns added personal entries and main entries whose
// relator is secondary only.
func (m *Marc) SecondaryAuthors() Authors {
	primary := relatorSet(m.settings.PrimaryAuthorRelators)
	secondary := relatorSet(m.settings.SecondaryAuthorRelators)
	secondaryOnly := make(map[string]struct{}, len(secondary))
	for r := range secondary {
		if _, ok := primary[r]; !ok {
			secondaryOnly[r] = struct{}{}
		}
	}
	if len(secondaryOnly) == 0 {
		secondaryOnly = nil
	}
	specs := []authorSpec{{tag: "700", codes: "abcd", relators: secondary, bare: true}}
	if secondaryOnly != nil {
		specs = append([]authorSpec{{tag: "100", codes: "abcd", relators: secondaryOnly}}, specs...)
	}
	return m.authorsByRelator(specs)
}

// CorporateAuthors returns corporate and meeting names from main and added
// entries.
func (m *Marc) CorporateAuthors() Authors {
	rel := relatorSet(m.settings.CorporateAuthorRelators)
	return m.authorsByRelator([]authorSpec{
		{tag: "110", codes: "ab", relators: rel, bare: true},
		{tag: "111", codes: "acdn", relators: rel, bare: true},
		{tag: "710", codes: "ab", relators: rel, bare: true},
		{tag: "711", codes: "acdn", relators: rel, bare: true},
	})
}

func (m *Marc) authorsByRelator(specs []authorSpec) Authors {
	var out Authors
	for _, s := range specs {
		for _, f := range m.rec.DataField(s.tag) {
			var rels []string
			for _, r := range f.SubfieldsArray("4e") {
				if r = normalizeRelator(r); r != "" {
					rels = append(rels, r)
				}
			}
			if !relatorMatch(rels, s) {
				continue
			}
			m.appendAuthor(&out, f, s.codes, rels)
			if alt, ok := m.rec.LinkedField(f); ok {
				m.appendAuthor(&out, alt, s.codes, rels)
			}
		}
	}
	return out
}

func relatorMatch(rels []string, s authorSpec) bool {
	if len(s.relators) == 0 {
		return true
	}
	if len(rels) == 0 {
		return s.bare
	}
	for _, r := range rels {
		if _, ok := s.relators[r]; ok {
			return true
		}
	}
	return false
}

func (m *Marc) appendAuthor(out *Authors, f marcidx.DataField, codes string, rels []string) {
	name := m.strip(f.Subfields(codes))
	if name == "" {
		return
	}
	role := "-"
	if len(rels) > 0 {
		role = rels[0]
	}
	out.Names = append(out.Names, name)
	out.Roles = append(out.Roles, role)
	if fuller := m.strip(f.Subfield("q")); fuller != "" {
		out.Fuller = append(out.Fuller, fuller)
	}
}

// MainAuthor returns the first primary author, or the first corporate
// author when there is none.
func (m *Marc) MainAuthor() string {
	if a := m.PrimaryAuthors(); len(a.Names) > 0 {
		return a.Names[0]
	}
	if a := m.CorporateAuthors(); len(a.Names) > 0 {
		return a.Names[0]
	}
	return ""
}
