package metautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTrailingPunctuation(t *testing.T) {
	p := NewPunctuation(nil)
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "slash before statement of responsibility", input: "Title /", expected: "Title"},
		{name: "comma after name", input: "Smith, John,", expected: "Smith, John"},
		{name: "final period", input: "Juvenile poetry.", expected: "Juvenile poetry"},
		{name: "initial keeps period", input: "Smith, A.", expected: "Smith, A."},
		{name: "abbreviation keeps period", input: "Fish, etc.", expected: "Fish, etc."},
		{name: "dotted acronym keeps period", input: "History of the U.S.A.", expected: "History of the U.S.A."},
		{name: "ellipsis kept", input: "And then...", expected: "And then..."},
		{name: "colon and spaces", input: "Main title : ", expected: "Main title"},
		{name: "unbalanced parenthesis", input: "Poems)", expected: "Poems"},
		{name: "balanced parenthesis kept", input: "Poems (selected)", expected: "Poems (selected)"},
		{name: "empty", input: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.StripTrailingPunctuation(tt.input))
		})
	}
}

func TestCustomAbbreviations(t *testing.T) {
	p := NewPunctuation([]string{"mr."})
	assert.Equal(t, "Letters to Mr.", p.StripTrailingPunctuation("Letters to Mr."))
	assert.Equal(t, "Fish, etc", p.StripTrailingPunctuation("Fish, etc."))
}

func TestHasTrailingPunctuation(t *testing.T) {
	assert.True(t, HasTrailingPunctuation("Title :"))
	assert.True(t, HasTrailingPunctuation("Title."))
	assert.False(t, HasTrailingPunctuation("Title"))
	assert.False(t, HasTrailingPunctuation(""))
}
