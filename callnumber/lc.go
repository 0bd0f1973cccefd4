// Package callnumber parses Library of Congress and Dewey Decimal call
// numbers into sortable and facetable parts.
package callnumber

import (
	"fmt"
	"regexp"
	"strings"
)

var lcPattern = regexp.MustCompile(`^([A-HJ-NP-VZ][A-Z]{0,2})\s*(\d{1,4})(\.\d+)?\s*(.*)$`)

// lcClasses are the main classes of the LC outline.
var lcClasses = map[byte]string{
	'A': "General Works",
	'B': "Philosophy, Psychology, Religion",
	'C': "Auxiliary Sciences of History",
	'D': "World History",
	'E': "History of the Americas",
	'F': "History of the Americas",
	'G': "Geography, Anthropology, Recreation",
	'H': "Social Sciences",
	'J': "Political Science",
	'K': "Law",
	'L': "Education",
	'M': "Music",
	'N': "Fine Arts",
	'P': "Language and Literature",
	'Q': "Science",
	'R': "Medicine",
	'S': "Agriculture",
	'T': "Technology",
	'U': "Military Science",
	'V': "Naval Science",
	'Z': "Bibliography, Library Science",
}

// LC is a parsed Library of Congress call number.
type LC struct {
	Raw     string
	Alpha   string
	Number  string
	Decimal string
	Cutters string
	valid   bool
}

// ParseLC parses raw. The result reports IsValid false when raw does not
// start with an LC class and class number.
func ParseLC(raw string) LC {
	c := LC{Raw: strings.TrimSpace(raw)}
	m := lcPattern.FindStringSubmatch(strings.ToUpper(c.Raw))
	if m == nil {
		return c
	}
	c.Alpha, c.Number, c.Decimal, c.Cutters = m[1], m[2], m[3], strings.TrimSpace(m[4])
	c.valid = true
	return c
}

// IsValid reports whether the call number parsed.
func (c LC) IsValid() bool {
	return c.valid
}

// Class returns the class part, for example "QA76.73".
func (c LC) Class() string {
	return c.Alpha + c.Number + c.Decimal
}

// SortKey returns a key that sorts call numbers in shelf order.
func (c LC) SortKey() string {
	if !c.valid {
		return strings.ToUpper(c.Raw)
	}
	number := strings.Repeat("0", 4-len(c.Number)) + c.Number
	key := fmt.Sprintf("%-3s%s%s", c.Alpha, number, c.Decimal)
	if cutters := sortCutters(c.Cutters); cutters != "" {
		key += " " + cutters
	}
	return key
}

// Category returns the name of the main class.
func (c LC) Category() string {
	if !c.valid {
		return ""
	}
	return lcClasses[c.Alpha[0]]
}

func sortCutters(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	return strings.Join(strings.Fields(s), " ")
}
