package callnumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var deweyPattern = regexp.MustCompile(`^(\d{1,3})(\.\d+)?\s*(.*)$`)

// Dewey is a parsed Dewey Decimal classification number.
type Dewey struct {
	Raw     string
	Integer int
	Decimal string
	Cutters string
	valid   bool
}

// ParseDewey parses raw, ignoring the segmentation marks / and '.
func ParseDewey(raw string) Dewey {
	d := Dewey{Raw: strings.TrimSpace(raw)}
	m := deweyPattern.FindStringSubmatch(cleanDewey(d.Raw))
	if m == nil {
		return d
	}
	d.Integer, _ = strconv.Atoi(m[1])
	d.Decimal = m[2]
	d.Cutters = strings.TrimSpace(m[3])
	d.valid = true
	return d
}

func cleanDewey(s string) string {
	return strings.NewReplacer("/", "", "'", "").Replace(s)
}

// IsValid reports whether the number parsed.
func (d Dewey) IsValid() bool {
	return d.valid
}

// Number returns the class number rounded down to scale, such as 100 for
// the hundreds facet. A scale below 1 returns the full number.
func (d Dewey) Number(scale int) string {
	if !d.valid {
		return ""
	}
	if scale < 1 {
		return fmt.Sprintf("%03d%s", d.Integer, d.Decimal)
	}
	return fmt.Sprintf("%03d", d.Integer/scale*scale)
}

// SortKey returns a key that sorts numbers in shelf order.
func (d Dewey) SortKey() string {
	if !d.valid {
		return strings.ToUpper(d.Raw)
	}
	key := fmt.Sprintf("%03d%-15s", d.Integer, d.Decimal)
	if d.Cutters != "" {
		key += " " + strings.ToUpper(sortCutters(d.Cutters))
	}
	return strings.TrimRight(key, " ")
}

// SearchString returns the number without segmentation marks or cutters.
func (d Dewey) SearchString() string {
	if !d.valid {
		return ""
	}
	return d.Number(0)
}
