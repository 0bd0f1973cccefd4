package marcidx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionXML = `<?xml version="1.0" encoding="UTF-8"?>
<marc:collection xmlns:marc="http://www.loc.gov/MARC21/slim">
  <marc:record>
    <marc:leader>00000cam a2200000 a 4500</marc:leader>
    <marc:controlfield tag="001">x123</marc:controlfield>
    <marc:datafield tag="245" ind1="1" ind2="0">
      <marc:subfield code="a">Title :</marc:subfield>
      <marc:subfield code="b">subtitle</marc:subfield>
    </marc:datafield>
    <marc:datafield tag="650" ind2="0">
      <marc:subfield code="a">Topic</marc:subfield>
    </marc:datafield>
  </marc:record>
  <marc:record>
    <marc:controlfield tag="001">second</marc:controlfield>
  </marc:record>
</marc:collection>`

func TestMARCXMLDecode(t *testing.T) {
	r, err := Parse([]byte(collectionXML))
	require.NoError(t, err)

	assert.Equal(t, []string{LeaderTag, "001", "245", "650"}, r.Tags())
	assert.Equal(t, "x123", r.ControlNum())
	assert.Equal(t, "00000cam a2200000 a 4500", r.LeaderString())
	assert.Equal(t, []SubField{{Code: "a", Value: "Title :"}, {Code: "b", Value: "subtitle"}}, r.DataField("245")[0].SubFields)

	f := r.DataField("650")[0]
	assert.Equal(t, " ", f.Indicator1)
	assert.Equal(t, "0", f.Indicator2)
	assert.Equal(t, []string{"missing ind1 in field 650"}, r.Warnings())
}

func TestMARCXMLBareRecord(t *testing.T) {
	r, err := Parse([]byte(`<record><controlfield tag="001">bare</controlfield></record>`))
	require.NoError(t, err)
	assert.Equal(t, "bare", r.ControlNum())
}

func TestMARCXMLRoundTrip(t *testing.T) {
	out, err := sampleRecord().EncodeMARCXML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `<record xmlns="http://www.loc.gov/MARC21/slim">`))

	decoded, err := Parse(out)
	require.NoError(t, err)
	assertSameFields(t, sampleRecord(), decoded)
	assert.Equal(t, sampleRecord().LeaderString(), decoded.LeaderString())

	again, err := decoded.EncodeMARCXML()
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestMARCXMLOmitsEmptySubfields(t *testing.T) {
	r := New()
	r.Add(data("245", "0", "0", "a", "Kept", "b", ""))
	out, err := r.EncodeMARCXML()
	require.NoError(t, err)
	assert.NotContains(t, string(out), `code="b"`)
	assert.NotContains(t, string(out), "<leader>")

	decoded, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []SubField{{Code: "a", Value: "Kept"}}, decoded.DataField("245")[0].SubFields)
}

func TestMARCXMLErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := Parse([]byte(`<record><datafield tag="245"></record>`))
		assert.ErrorIs(t, err, ErrXMLParse)
		assert.Contains(t, err.Error(), "line 1")
	})
	t.Run("no record", func(t *testing.T) {
		_, err := Parse([]byte(`<collection></collection>`))
		assert.ErrorIs(t, err, ErrXMLParse)
	})
}
