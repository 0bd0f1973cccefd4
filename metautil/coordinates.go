package metautil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dmsPattern     = regexp.MustCompile(`^([EWNSewns])(\d{3})(\d{2})?(\d{2})?$`)
	hemiDecPattern = regexp.MustCompile(`^([EWNSewns])(\d+\.\d*)$`)
)

// CoordinateToDecimal converts a MARC 034 coordinate to decimal degrees.
// It accepts hdddmmss, hddd.ddd and signed decimal degrees; west and south
// hemispheres are negative. ok is false for empty or unparsable values.
func CoordinateToDecimal(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, false
	}
	if m := dmsPattern.FindStringSubmatch(s); m != nil {
		deg, _ := strconv.ParseFloat(m[2], 64)
		if m[3] != "" {
			min, _ := strconv.ParseFloat(m[3], 64)
			deg += min / 60
		}
		if m[4] != "" {
			sec, _ := strconv.ParseFloat(m[4], 64)
			deg += sec / 3600
		}
		return hemisphere(m[1], deg), true
	}
	if m := hemiDecPattern.FindStringSubmatch(s); m != nil {
		deg, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		return hemisphere(m[1], deg), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hemisphere(h string, deg float64) float64 {
	switch h {
	case "W", "w", "S", "s":
		return -deg
	}
	return deg
}

// FormatDegrees renders a coordinate without trailing zeros.
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
