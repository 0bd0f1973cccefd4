package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitlibraries/marcidx"
)

func TestTitle(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("245", "1", "4", "a", "The annotated Alice :", "b", "Alice's adventures", "n", "Part 1", "c", "by Lewis Carroll."),
	)
	assert.Equal(t, "The annotated Alice : Alice's adventures. Part 1", m.Title(false))
	assert.Equal(t, "annotated alice : alice's adventures. part 1", m.TitleSort())
	assert.Equal(t, "The annotated Alice", m.TitleShort())
	assert.Equal(t, "The annotated Alice : Alice's adventures Part 1 by Lewis Carroll", m.TitleFull())

	t.Run("falls back to 240", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("240", "1", "0", "a", "Works.", "p", "Selections"))
		assert.Equal(t, "Works. Selections", m.Title(false))
	})
	t.Run("no title", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader)
		assert.Empty(t, m.Title(false))
	})
}

func TestAlternateScriptTitles(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("245", "1", "0", "6", "880-01", "a", "Voina i mir"),
		df("246", "3", " ", "a", "War and peace"),
		df("880", "1", "0", "6", "245-01", "a", "Война и мир"),
		df("880", "1", "0", "6", "245-02", "a", "Unlinked"),
	)
	assert.Equal(t, []string{"War and peace", "Война и мир"}, m.TitleAlt())
}

func TestAuthors(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("100", "1", " ", "a", "Smith, John,", "q", "(John Adam)", "d", "1950-", "4", "aut"),
		df("700", "1", " ", "a", "Doe, Jane,", "e", "editor."),
		df("700", "1", " ", "a", "Roe, Rick."),
		df("700", "1", " ", "a", "Ignored, Person,", "e", "binder"),
		df("710", "2", " ", "a", "MIT Press."),
	)

	primary := m.PrimaryAuthors()
	assert.Equal(t, []string{"Smith, John, 1950-"}, primary.Names)
	assert.Equal(t, []string{"aut"}, primary.Roles)
	assert.Equal(t, []string{"(John Adam)"}, primary.Fuller)

	secondary := m.SecondaryAuthors()
	assert.Equal(t, []string{"Doe, Jane", "Roe, Rick"}, secondary.Names)
	assert.Equal(t, []string{"editor", "-"}, secondary.Roles)

	corporate := m.CorporateAuthors()
	assert.Equal(t, []string{"MIT Press"}, corporate.Names)
	assert.Equal(t, []string{"-"}, corporate.Roles)

	assert.Equal(t, "Smith, John, 1950-", m.MainAuthor())

	t.Run("secondary-only relator on main entry", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("100", "1", " ", "a", "Editor, Ed.", "4", "edt"))
		assert.Empty(t, m.PrimaryAuthors().Names)
		assert.Equal(t, []string{"Editor, Ed."}, m.SecondaryAuthors().Names)
	})
	t.Run("alternate script name", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader,
			df("100", "1", " ", "6", "880-01", "a", "Tolstoy, Leo,"),
			df("880", "1", " ", "6", "100-01", "a", "Толстой, Лев,"),
		)
		assert.Equal(t, []string{"Tolstoy, Leo", "Толстой, Лев"}, m.PrimaryAuthors().Names)
		assert.Equal(t, []string{"-", "-"}, m.PrimaryAuthors().Roles)
	})
}

func TestISBNs(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("020", " ", " ", "a", "0-19-852663-6"),
		df("020", " ", " ", "a", "123"),
		df("020", " ", " ", "a", "9780198526636 (pbk.)"),
	)
	assert.Equal(t, []string{"9780198526636"}, m.ISBNs())
	assert.Contains(t, m.Warnings(), "invalid ISBN")

	bad := newMarcFrom(t, bookLeader,
		df("020", " ", " ", "a", "0198526630"),
		df("020", " ", " ", "a", "9780198526630"),
	)
	assert.Empty(t, bad.ISBNs())
	assert.Equal(t, []string{"invalid ISBN"}, bad.Warnings())
}

func TestISSNs(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("022", " ", " ", "a", "0028-0836"),
		df("022", " ", " ", "a", "1234567x"),
		df("022", " ", " ", "a", "bad"),
		df("490", "1", " ", "a", "Series", "x", "1111-2222"),
	)
	assert.Equal(t, []string{"0028-0836", "1234567x", "bad", "1111-2222"}, m.ISSNs())
	assert.Equal(t, []string{"0028-0836", "1234-567X"}, m.ValidISSNs())
	assert.Contains(t, m.Warnings(), "invalid ISSN")
}

func TestOCLCNumbers(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("035", " ", " ", "a", "(OCoLC)ocm00012345"),
		df("035", " ", " ", "a", "ocn000987"),
		df("035", " ", " ", "a", "on1234"),
		df("035", " ", " ", "a", "(DLC)   92005291"),
	)
	assert.Equal(t, []string{"12345", "987", "1234"}, m.OCLCNumbers())
}

func TestUniqueIDs(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("010", " ", " ", "a", "  n79021164 ", "b", "ms 68-1234"),
		df("015", " ", " ", "a", "GB9345678 bnb", "2", "bnb"),
		df("024", "2", " ", "a", "979-0-2600-0043-8"),
		df("035", " ", " ", "a", "(OCoLC)ocm12345"),
		df("035", " ", " ", "a", "(FI-MELINDA)000123"),
		df("035", " ", " ", "a", "(Foo)123"),
	)
	assert.Equal(t, []string{
		"(lccn)n79021164",
		"(nucmc)ms681234",
		"(bnb)gb9345678",
		"(ismn)9790260000438",
		"(ocolc)ocm12345",
		"(fi-melinda)000123",
	}, m.UniqueIDs())

	t.Run("invalid ismn is dropped silently", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("024", "2", " ", "a", "12345"))
		assert.Empty(t, m.UniqueIDs())
		assert.Empty(t, m.Warnings())
	})
	t.Run("source from subfield 2", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("024", "7", " ", "a", "10.1000/182", "2", "DOI"))
		assert.Equal(t, []string{"(doi)101000182"}, m.UniqueIDs())
	})
}

func TestCoordinates(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("034", "1", " ", "a", "a", "d", "200", "f", "45"))
		shapes, centers := m.LocationGeo()
		assert.Empty(t, shapes)
		assert.Empty(t, centers)
		assert.Contains(t, m.Warnings(), "coordinates out of range in 034")
	})
	t.Run("inverted bounds are swapped", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("034", "1", " ", "d", "10", "e", "5", "f", "50", "g", "40"))
		shapes, centers := m.LocationGeo()
		assert.Equal(t, []string{"ENVELOPE(5, 10, 50, 40)"}, shapes)
		assert.Equal(t, []string{"7.5 45"}, centers)
	})
	t.Run("point from degrees minutes seconds", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("034", "1", " ", "d", "W0750000", "e", "W0750000", "f", "N0450000", "g", "N0450000"))
		shapes, centers := m.LocationGeo()
		assert.Equal(t, []string{"POINT(-75 45)"}, shapes)
		assert.Equal(t, []string{"-75 45"}, centers)
	})
	t.Run("point without east and south", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("034", "1", " ", "d", "E0100000", "f", "N0453000"))
		shapes, _ := m.LocationGeo()
		assert.Equal(t, []string{"POINT(10 45.5)"}, shapes)
	})
	t.Run("unparsable", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("034", "1", " ", "d", "west", "f", "N0450000"))
		shapes, _ := m.LocationGeo()
		assert.Empty(t, shapes)
		assert.Contains(t, m.Warnings(), "invalid coordinates in 034")
	})
}

func TestCallNumbers(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("050", "0", "0", "a", "QA76.73.J38", "b", "S53 2015"),
		df("082", "0", "4", "a", "005.13/3", "2", "23"),
	)
	assert.Equal(t, []string{"QA76.73.J38 S53 2015"}, m.CallNumbers())

	lc, ok := m.LC()
	require.True(t, ok)
	assert.Equal(t, "Q", lc.First)
	assert.Equal(t, "QA", lc.Subject)
	assert.Equal(t, "QA76.73", lc.Label)
	assert.Equal(t, "Science", lc.Category)
	assert.NotEmpty(t, lc.Sort)

	d, ok := m.Dewey()
	require.True(t, ok)
	assert.Equal(t, "005.13/3", d.Raw)
	assert.Equal(t, "000", d.Hundreds)
	assert.Equal(t, "000", d.Tens)
	assert.Equal(t, "005", d.Ones)
	assert.Equal(t, "005.133", d.Full)

	t.Run("injected parser", func(t *testing.T) {
		m := New(m.Record(), WithLCParser(func(string) LCCallNumber { return invalidLC{} }))
		_, ok := m.LC()
		assert.False(t, ok)
	})
}

type invalidLC struct{}

func (invalidLC) IsValid() bool { return false }
func (invalidLC) SortKey() string { return "" }
func (invalidLC) Category() string { return "" }

func TestDescription(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		cf("008", fixed(40, map[int]byte{7: '1', 8: '9', 9: '9', 10: '3', 35: 'e', 36: 'n', 37: 'g'})),
		df("041", "0", " ", "a", "engfre", "d", "ger"),
		df("250", " ", " ", "a", "2nd ed."),
		df("260", " ", " ", "a", "San Diego :", "b", "Harcourt Brace Jovanovich,", "c", "c1993."),
		df("264", " ", "4", "b", "Copyright holder", "c", "©1990"),
		df("300", " ", " ", "a", "xii, 350 p. :", "b", "ill. ;", "c", "24 cm."),
		df("505", "0", " ", "t", "Chapter one --", "t", "Chapter two."),
		df("856", "4", "0", "u", "http://example.org/item."),
	)
	assert.Equal(t, []string{"eng", "fre", "ger"}, m.Languages())
	assert.Equal(t, []string{"1993"}, m.PublishDates())
	assert.Equal(t, "1993", m.PublishDateSort())
	assert.Equal(t, []string{"Harcourt Brace Jovanovich"}, m.Publishers())
	assert.Equal(t, []string{"2nd ed."}, m.Editions())
	assert.Equal(t, []string{"xii, 350 p. : ill. ; 24 cm"}, m.PhysicalDescriptions())
	assert.Equal(t, "350", m.PageCount())
	assert.Equal(t, []string{"Chapter one --", "Chapter two"}, m.Contents())
	assert.Equal(t, []string{"http://example.org/item."}, m.URLs())

	t.Run("dates from 264 without 008", func(t *testing.T) {
		m := newMarcFrom(t, bookLeader, df("264", " ", "1", "b", "Publisher,", "c", "[2019]"))
		assert.Equal(t, []string{"2019"}, m.PublishDates())
		assert.Equal(t, []string{"Publisher"}, m.Publishers())
	})
}

func TestSubjects(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		df("650", " ", "0", "a", "Computer programming", "x", "History", "y", "20th century."),
		df("651", " ", "0", "a", "Finland", "v", "Maps."),
		df("655", " ", "7", "a", "Novels."),
		df("648", " ", "7", "a", "1900-1999"),
	)
	assert.Equal(t, []string{"Computer programming History 20th century"}, m.Topics())
	assert.Equal(t, []string{"Computer programming", "History"}, m.TopicFacets())
	assert.Equal(t, []string{"Finland Maps"}, m.Geographic())
	assert.Equal(t, []string{"Finland"}, m.GeographicFacets())
	assert.Equal(t, []string{"Novels"}, m.Genres())
	assert.Equal(t, []string{"Maps", "Novels"}, m.GenreFacets())
	assert.Equal(t, []string{"1900-1999"}, m.Eras())
	assert.Equal(t, []string{"1900-1999", "20th century"}, m.EraFacets())
}

func TestAllFields(t *testing.T) {
	m := newMarcFrom(t, bookLeader,
		cf("001", "id"),
		df("020", " ", " ", "a", "0198526636"),
		df("245", "1", "0", "6", "880-01", "a", "Title", "b", "rest"),
		df("900", " ", " ", "a", "local"),
	)
	assert.Equal(t, "Title rest", m.AllFields())
}

func TestWarningsDoNotAbort(t *testing.T) {
	rec := marcidx.New()
	rec.Add(df("020", " ", " ", "a", "bad"))
	rec.Add(df("020", " ", " ", "a", "also bad"))
	m := New(rec)
	assert.Empty(t, m.ISBNs())
	assert.Equal(t, []string{"invalid ISBN"}, m.Warnings())
}
