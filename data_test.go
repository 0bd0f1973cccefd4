package marcidx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperPunctuator struct{}

func (upperPunctuator) StripTrailingPunctuation(s string) string {
	return strings.ToUpper(s)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{input: `  {"v":3}`, expected: FormatStorage},
		{input: "\n<record/>", expected: FormatMARCXML},
		{input: "00042nam a2200037 a 4500", expected: FormatISO2709},
		{input: "", expected: FormatISO2709},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectFormat([]byte(tt.input)), tt.input)
	}
	assert.Equal(t, "json", FormatStorage.String())
	assert.Equal(t, "marcxml", FormatMARCXML.String())
	assert.Equal(t, "iso2709", FormatISO2709.String())
}

func TestSetData(t *testing.T) {
	raw, err := sampleRecord().EncodeISO2709()
	require.NoError(t, err)

	r := New()
	require.NoError(t, r.SetData(raw))
	assert.Equal(t, "92005291", r.ControlNum())
	assert.ErrorIs(t, r.SetData(raw), ErrDataAlreadySet)

	empty := New()
	assert.ErrorIs(t, empty.SetData([]byte("  \n")), ErrEmptyInput)

	failed := New()
	assert.Error(t, failed.SetData([]byte(`{"v":9}`)))
	assert.Empty(t, failed.Tags())
	require.NoError(t, failed.SetData(raw))
}

func TestParseOptions(t *testing.T) {
	r, err := Parse([]byte(`{"v":3,"f":{"245":[{"i1":"0","i2":"0","s":[{"a":"title /"}]}]}}`), WithPunctuator(upperPunctuator{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"TITLE /"}, r.FieldsSubfields([]Spec{{Tag: "245", Codes: "a"}}))
	assert.Equal(t, "X", r.StripTrailingPunctuation("x"))
}

func TestNormalize(t *testing.T) {
	r := New()
	r.Add(control(LeaderTag, "00000nam"))
	r.Add(control("001", "id"))
	r.Add(data("245", "", "0", "a", "Title", "b", "", "", "orphan"))
	r.Add(data("500", " ", " ", "a", ""))
	r.Add(data("650", " ", "0", "a", "Kept"))
	r.Normalize()

	assert.Equal(t, "00000nam                ", r.ControlValue(LeaderTag))
	assert.Equal(t, []string{LeaderTag, "001", "245", "650"}, r.Tags())
	d := r.DataField("245")[0]
	assert.Equal(t, " ", d.Indicator1)
	assert.Equal(t, []SubField{{Code: "a", Value: "Title"}}, d.SubFields)
}

func TestAddDedupKey(t *testing.T) {
	r := New()
	r.Add(control("001", "id"))
	r.AddDedupKey("first")
	r.AddDedupKey("second")
	require.Len(t, r.DataField(DedupKeyTag), 1)
	assert.Equal(t, "second", r.DataField(DedupKeyTag)[0].Subfield("a"))
	assert.Equal(t, []string{"001", DedupKeyTag}, r.Tags())

	r.AddDedupKey("")
	assert.Empty(t, r.DataField(DedupKeyTag))
	assert.Equal(t, []string{"001"}, r.Tags())
}

func TestWarningsDeduplicate(t *testing.T) {
	r := New()
	r.Warn("invalid ISBN %s", "123")
	r.Warn("invalid ISBN %s", "123")
	r.Warn("invalid ISBN %s", "456")
	assert.Equal(t, []string{"invalid ISBN 123", "invalid ISBN 456"}, r.Warnings())

	var w Warnings
	assert.Equal(t, 0, w.Len())
	w.Add("a")
	w.Add("a")
	assert.Equal(t, 1, w.Len())
}
