package marcidx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameFields(t *testing.T, want, got *Record) {
	t.Helper()
	require.Equal(t, want.Tags(), got.Tags())
	for _, tag := range want.Tags() {
		if tag == LeaderTag {
			continue
		}
		assert.Equal(t, want.Fields(tag), got.Fields(tag), "tag %s", tag)
	}
}

func TestISO2709RoundTrip(t *testing.T) {
	first, err := sampleRecord().EncodeISO2709()
	require.NoError(t, err)

	decoded, err := Parse(first)
	require.NoError(t, err)
	second, err := decoded.EncodeISO2709()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := Parse(second)
	require.NoError(t, err)
	assertSameFields(t, decoded, again)
	assert.Equal(t, decoded.LeaderString(), again.LeaderString())
	assertSameFields(t, sampleRecord(), decoded)
}

func TestISO2709Layout(t *testing.T) {
	r := New()
	r.Add(control(LeaderTag, "00000nam a2200000 a 4500"))
	r.Add(control("001", "abc"))
	r.Add(data("245", "1", "0", "a", "T"))
	out, err := r.EncodeISO2709()
	require.NoError(t, err)

	// base address 49: leader, two directory entries, directory terminator
	want := "00060nam a22" + "00049" + " a 4500" +
		"001000400000" + "245000600004" + "\x1e" +
		"abc\x1e" + "10\x1faT\x1e" + "\x1d"
	assert.Equal(t, want, string(out))
	assert.Len(t, out, 60)
}

func TestISO2709DecodeErrors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Parse(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
	t.Run("short", func(t *testing.T) {
		_, err := Parse([]byte("00010nam"))
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("bad base address", func(t *testing.T) {
		_, err := Parse([]byte("00042nam a22000xx a 4500001000400000\x1eabc\x1e\x1d"))
		assert.ErrorIs(t, err, ErrMalformed)
	})
	t.Run("missing field terminator", func(t *testing.T) {
		_, err := Parse([]byte("00042nam a2200037 a 4500001000400000\x1eabcd\x1d"))
		assert.ErrorIs(t, err, ErrMissingTerminator)
	})
	t.Run("field past the end", func(t *testing.T) {
		_, err := Parse([]byte("00042nam a2200037 a 4500001009900000\x1eabc\x1e\x1d"))
		assert.ErrorIs(t, err, ErrMalformed)
	})

	directory := []struct {
		name  string
		input string
	}{
		{name: "signed length", input: "00042nam a2200037 a 4500245-00100005\x1eabc\x1e\x1d"},
		{name: "signed start", input: "00042nam a2200037 a 45002450004-0001\x1eabc\x1e\x1d"},
		{name: "zero length", input: "00042nam a2200037 a 4500245000000000\x1eabc\x1e\x1d"},
		{name: "signed base address", input: "00042nam a22+0037 a 4500001000400000\x1eabc\x1e\x1d"},
		{name: "spaces in length", input: "00042nam a2200037 a 4500001 00400000\x1eabc\x1e\x1d"},
	}
	for _, tt := range directory {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestISO2709MissingIndicators(t *testing.T) {
	r, err := Parse([]byte("00046nam a2200037 a 4500245000800000\x1e\x1faTitle\x1e\x1d"))
	require.NoError(t, err)
	f := r.DataField("245")[0]
	assert.Equal(t, " ", f.Indicator1)
	assert.Equal(t, " ", f.Indicator2)
	assert.Equal(t, "Title", f.Subfield("a"))
	assert.Contains(t, r.Warnings(), "missing indicators in field 245")
}

func TestISO2709Limits(t *testing.T) {
	t.Run("field too long", func(t *testing.T) {
		r := New()
		r.Add(control(LeaderTag, "00000nam a2200000 a 4500"))
		r.Add(data("520", " ", " ", "a", strings.Repeat("x", maxFieldLen)))
		_, err := r.EncodeISO2709()
		assert.ErrorIs(t, err, ErrCannotEncode)

		out, format, err := r.FullRecord()
		require.NoError(t, err)
		assert.Equal(t, FormatMARCXML, format)
		assert.True(t, strings.HasPrefix(string(out), "<record"))
	})
	t.Run("record too long", func(t *testing.T) {
		r := New()
		for i := 0; i < 12; i++ {
			r.Add(data("500", " ", " ", "a", strings.Repeat("y", 9000)))
		}
		_, err := r.EncodeISO2709()
		assert.ErrorIs(t, err, ErrCannotEncode)
	})
	t.Run("within limits", func(t *testing.T) {
		out, format, err := sampleRecord().FullRecord()
		require.NoError(t, err)
		assert.Equal(t, FormatISO2709, format)
		assert.Equal(t, byte(rt), out[len(out)-1])
	})
}

func TestISO2709SkipsBadTags(t *testing.T) {
	r := New()
	r.Add(control(LeaderTag, "00000nam a2200000 a 4500"))
	r.Add(control("01", "short"))
	r.Add(control("001", "ok"))
	out, err := r.EncodeISO2709()
	require.NoError(t, err)

	decoded, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, []string{LeaderTag, "001"}, decoded.Tags())
	assert.Equal(t, []string{`invalid tag "01" skipped`}, r.Warnings())
}
