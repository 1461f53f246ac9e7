package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterEmpty(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.True(t, f.Match("AAPL"))
	assert.True(t, f.Match(""))
}

func TestParseFilterExactSet(t *testing.T) {
	f, err := ParseFilter("aapl, GOOG,")
	require.NoError(t, err)
	assert.True(t, f.Match("AAPL"))
	assert.True(t, f.Match("GOOG"))
	assert.False(t, f.Match("MSFT"))
	assert.False(t, f.Match("AAP"))
}

func TestParseFilterGlob(t *testing.T) {
	f, err := ParseFilter("A*")
	require.NoError(t, err)
	assert.True(t, f.Match("AAPL"))
	assert.True(t, f.Match("ABT"))
	assert.False(t, f.Match("MMM"))

	f, err = ParseFilter("A??")
	require.NoError(t, err)
	assert.True(t, f.Match("ABT"))
	assert.False(t, f.Match("AAPL"))
}

func TestParseFilterRegex(t *testing.T) {
	f, err := ParseFilter("/^A.{2}$/")
	require.NoError(t, err)
	assert.True(t, f.Match("ABT"))
	assert.False(t, f.Match("AAPL"))

	_, err = ParseFilter("/[/")
	assert.Error(t, err)
}

func TestParseFilterSubstring(t *testing.T) {
	f, err := ParseFilter("ap")
	require.NoError(t, err)
	assert.True(t, f.Match("AAPL"))
	assert.False(t, f.Match("GOOG"))
}
