package metautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "n79021164", NormalizeKey(" n 79-021164 "))
	assert.Equal(t, "cafeemigre", NormalizeKey("Café Émigré"))
	assert.Equal(t, "", NormalizeKey("--"))
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Societe", FoldDiacritics("Société"))
}

func TestDedupe(t *testing.T) {
	assert.Nil(t, Dedupe(nil))
	assert.Equal(t, []string{"foo", "bar"}, Dedupe([]string{" foo ", "bar", "foo", "", "  "}))
}
