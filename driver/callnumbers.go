package driver

import (
	"regexp"
	"strings"

	"github.com/mitlibraries/marcidx"
)

var lcLabelPattern = regexp.MustCompile(`^([A-Z]{1,3})\s*(\d+(?:\.\d+)?)`)

// lcFields are the local and LC-assigned call number fields, in priority
// order.
var lcFields = []string{"090ab", "050ab"}

// CallNumbers returns the raw LC call numbers.
func (m *Marc) CallNumbers() []string {
	return m.all(lcFields...)
}

// LCParts holds the facet and sort forms of an LC call number.
type LCParts struct {
	First    string
	Subject  string
	Label    string
	Sort     string
	Category string
}

// LC parses the raw call numbers in order and returns the parts of the
// first valid one.
func (m *Marc) LC() (LCParts, bool) {
	for _, raw := range m.CallNumbers() {
		cn := m.lc(raw)
		if !cn.IsValid() {
			continue
		}
		out := LCParts{Sort: cn.SortKey(), Category: cn.Category()}
		if mm := lcLabelPattern.FindStringSubmatch(strings.ToUpper(raw)); mm != nil {
			out.First = mm[1][:1]
			out.Subject = mm[1]
			out.Label = mm[1] + mm[2]
		}
		return out, true
	}
	return LCParts{}, false
}

// DeweyParts holds the facet and sort forms of a Dewey number.
type DeweyParts struct {
	Raw      string
	Hundreds string
	Tens     string
	Ones     string
	Full     string
	Sort     string
}

// Dewey parses 082 $a and returns the parts of the first valid number.
func (m *Marc) Dewey() (DeweyParts, bool) {
	for _, raw := range m.rec.FieldsSubfields(specs(marcidx.Normal, "082a"), marcidx.SplitSubfields(), marcidx.KeepPunctuation()) {
		d := m.dewey(raw)
		if !d.IsValid() {
			continue
		}
		return DeweyParts{
			Raw:      raw,
			Hundreds: d.Number(100),
			Tens:     d.Number(10),
			Ones:     d.Number(1),
			Full:     d.SearchString(),
			Sort:     d.SortKey(),
		}, true
	}
	return DeweyParts{}, false
}
