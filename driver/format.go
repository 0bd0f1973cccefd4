package driver

import (
	"strings"

	"github.com/mitlibraries/marcidx/metautil"
)

// Format labels the record's bibliographic format. The physical
// description in 007 decides first, then the leader type, then the leader
// bibliographic level combined with whether the resource is online.
func (m *Marc) Format() string {
	online := false
	for _, cf := range m.rec.ControlField("007") {
		if label, isOnline, ok := carrierFormat(cf.Value); ok {
			return label
		} else if isOnline {
			// An online computer resource only flags the record; the
			// bibliographic level decides between eBook, eJournal and so on.
			online = true
		}
	}

	leader := m.rec.LeaderString()
	if label, ok := typeFormat(upper(leader[6])); ok {
		return label
	}

	f008 := m.rec.ControlValue("008")
	if !online {
		online = charAt(f008, 23) == 'o'
	}
	switch upper(leader[7]) {
	case 'M':
		return pick(online, "eBook", "Book")
	case 'S':
		switch upper(charAt(f008, 21)) {
		case 'N':
			return pick(online, "eNewspaper", "Newspaper")
		case 'P':
			return pick(online, "eJournal", "Journal")
		}
		return pick(online, "eSerial", "Serial")
	case 'A':
		return pick(online, "eBookSection", "BookSection")
	case 'B':
		return pick(online, "eArticle", "Article")
	case 'C':
		return "Collection"
	case 'D':
		return "SubUnit"
	case 'I':
		return "ContinuouslyUpdatedResource"
	}
	return "Other"
}

func pick(online bool, e, p string) string {
	if online {
		return e
	}
	return p
}

// carrierFormat maps one 007 value to a label. Category C with subcategory
// R returns online and no label.
func carrierFormat(v string) (label string, online bool, ok bool) {
	cat, sub := upper(charAt(v, 0)), upper(charAt(v, 1))
	switch cat {
	case 'A':
		if sub == 'D' {
			return "Atlas", false, true
		}
		return "Map", false, true
	case 'C':
		switch sub {
		case 'A':
			return "TapeCartridge", false, true
		case 'B':
			return "ChipCartridge", false, true
		case 'C':
			return "DiscCartridge", false, true
		case 'F':
			return "TapeCassette", false, true
		case 'H':
			return "TapeReel", false, true
		case 'J':
			return "FloppyDisk", false, true
		case 'M', 'O':
			return "CDROM", false, true
		case 'R':
			return "", true, false
		}
		return "Electronic", false, true
	case 'D':
		return "Globe", false, true
	case 'F':
		return "Braille", false, true
	case 'G':
		switch sub {
		case 'C', 'D':
			return "Filmstrip", false, true
		case 'T':
			return "Transparency", false, true
		}
		return "Slide", false, true
	case 'H':
		return "Microfilm", false, true
	case 'K':
		switch sub {
		case 'C':
			return "Collage", false, true
		case 'D':
			return "Drawing", false, true
		case 'E':
			return "Painting", false, true
		case 'F', 'J':
			return "Print", false, true
		case 'G':
			return "Photonegative", false, true
		case 'L':
			return "TechnicalDrawing", false, true
		case 'N':
			return "Chart", false, true
		case 'O':
			return "FlashCard", false, true
		}
		return "Photo", false, true
	case 'M':
		switch sub {
		case 'F':
			return "VideoCassette", false, true
		case 'R':
			return "Filmstrip", false, true
		}
		return "MotionPicture", false, true
	case 'O':
		return "Kit", false, true
	case 'Q':
		return "MusicalScore", false, true
	case 'R':
		return "SensorImage", false, true
	case 'S':
		switch sub {
		case 'D':
			return "SoundDisc", false, true
		case 'S':
			return "SoundCassette", false, true
		}
		return "SoundRecording", false, true
	case 'V':
		switch upper(charAt(v, 4)) {
		case 'S':
			return "BluRay", false, true
		case 'V':
			return "DVD", false, true
		}
		switch sub {
		case 'C':
			return "VideoCartridge", false, true
		case 'D':
			return "VideoDisc", false, true
		case 'F':
			return "VideoCassette", false, true
		case 'R':
			return "VideoReel", false, true
		}
		return "Video", false, true
	}
	return "", false, false
}

// typeFormat maps leader position 6.
func typeFormat(t byte) (string, bool) {
	switch t {
	case 'C', 'D':
		return "MusicalScore", true
	case 'E', 'F':
		return "Map", true
	case 'G':
		return "Slide", true
	case 'I':
		return "SoundRecording", true
	case 'J':
		return "MusicRecording", true
	case 'K':
		return "Photo", true
	case 'M':
		return "Electronic", true
	case 'O', 'P':
		return "Kit", true
	case 'R':
		return "PhysicalObject", true
	case 'T':
		return "Manuscript", true
	}
	return "", false
}

const illustratedCodes = "abcdefghijklmop"

// Illustrated reports whether the record describes an illustrated item.
func (m *Marc) Illustrated() bool {
	if t := m.rec.LeaderString()[6]; t == 'a' || t == 't' {
		f008 := m.rec.ControlValue("008")
		for pos := 18; pos <= 21; pos++ {
			if c := charAt(f008, pos); c != 0 && strings.IndexByte(illustratedCodes, c) >= 0 {
				return true
			}
		}
		for _, cf := range m.rec.ControlField("006") {
			for pos := 1; pos <= 4; pos++ {
				if c := charAt(cf.Value, pos); c != 0 && strings.IndexByte(illustratedCodes, c) >= 0 {
					return true
				}
			}
		}
	}
	for _, f := range m.rec.DataField("300") {
		b := strings.ToLower(f.Subfield("b"))
		for _, s := range m.settings.IllustrationStrings {
			if s != "" && strings.Contains(b, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

// Building returns location facet values, "location" or
// "location/sub-location", from the configured holdings fields.
func (m *Marc) Building() []string {
	var out []string
	for _, spec := range m.settings.BuildingFields {
		for _, f := range m.rec.DataField(spec.Tag) {
			loc := strings.TrimSpace(f.Subfield(spec.Location))
			if loc == "" {
				continue
			}
			if spec.SubLocation != "" {
				if sub := strings.TrimSpace(f.Subfield(spec.SubLocation)); sub != "" {
					loc += "/" + sub
				}
			}
			out = append(out, loc)
		}
	}
	return metautil.Dedupe(out)
}
