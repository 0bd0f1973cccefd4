package driver

import (
	"fmt"

	"github.com/mitlibraries/marcidx/metautil"
)

// Shape is a geographic location read from one 034 field.
type Shape struct {
	West, East, North, South float64
}

// IsPoint reports whether the shape has no extent.
func (s Shape) IsPoint() bool {
	return s.West == s.East && s.North == s.South
}

// String renders the shape in WKT-like form as the index expects it:
// "POINT(lon lat)" or "ENVELOPE(west, east, north, south)".
func (s Shape) String() string {
	d := metautil.FormatDegrees
	if s.IsPoint() {
		return fmt.Sprintf("POINT(%s %s)", d(s.West), d(s.North))
	}
	return fmt.Sprintf("ENVELOPE(%s, %s, %s, %s)", d(s.West), d(s.East), d(s.North), d(s.South))
}

// Center returns "lon lat" of the middle of the shape.
func (s Shape) Center() string {
	d := metautil.FormatDegrees
	return d((s.West+s.East)/2) + " " + d((s.North+s.South)/2)
}

// Coordinates returns the valid shapes described by 034 $d, $e, $f and $g.
// Fields with missing or out of range values are skipped with a warning.
// Inverted bounds are swapped.
func (m *Marc) Coordinates() []Shape {
	var out []Shape
	for _, f := range m.rec.DataField("034") {
		wRaw, eRaw, nRaw, sRaw := f.Subfield("d"), f.Subfield("e"), f.Subfield("f"), f.Subfield("g")
		if wRaw == "" && eRaw == "" && nRaw == "" && sRaw == "" {
			continue
		}
		west, okW := metautil.CoordinateToDecimal(wRaw)
		north, okN := metautil.CoordinateToDecimal(nRaw)
		if !okW || !okN {
			m.rec.Warn("invalid coordinates in 034")
			continue
		}
		east, okE := metautil.CoordinateToDecimal(eRaw)
		if !okE {
			if eRaw != "" {
				m.rec.Warn("invalid coordinates in 034")
				continue
			}
			east = west
		}
		south, okS := metautil.CoordinateToDecimal(sRaw)
		if !okS {
			if sRaw != "" {
				m.rec.Warn("invalid coordinates in 034")
				continue
			}
			south = north
		}
		if !inRange(west, 180) || !inRange(east, 180) || !inRange(north, 90) || !inRange(south, 90) {
			m.rec.Warn("coordinates out of range in 034")
			continue
		}
		if west > east {
			west, east = east, west
		}
		if south > north {
			north, south = south, north
		}
		out = append(out, Shape{West: west, East: east, North: north, South: south})
	}
	return out
}

func inRange(v, limit float64) bool {
	return v >= -limit && v <= limit
}

// LocationGeo returns the rendered shapes and their centers.
func (m *Marc) LocationGeo() (shapes, centers []string) {
	for _, s := range m.Coordinates() {
		shapes = append(shapes, s.String())
		centers = append(centers, s.Center())
	}
	return metautil.Dedupe(shapes), metautil.Dedupe(centers)
}
