package classcodes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader("BIO101\n chem200 \n\nbio101\nMATH300,Calculus III\nBIO102\n"))
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	assert.True(t, c.Contains("bio101"))
	assert.True(t, c.Contains(" Chem200"))
	assert.True(t, c.Contains("MATH300"))
	assert.False(t, c.Contains("BIO10"))
	assert.False(t, c.Contains(""))
}

func TestSuggest(t *testing.T) {
	c := New([]string{"BIO101", "BIO102", "BIO103", "BIO201", "BIO202", "BIO301", "CHEM100"})

	assert.Equal(t, []string{"BIO101", "BIO102", "BIO103", "BIO201", "BIO202"}, c.Suggest("bio", SuggestionLimit))
	assert.Equal(t, []string{"BIO201", "BIO202"}, c.Suggest("Bio2", SuggestionLimit))
	assert.Equal(t, []string{"CHEM100"}, c.Suggest(" chem", SuggestionLimit))
	assert.Empty(t, c.Suggest("PHYS", SuggestionLimit))
	assert.Empty(t, c.Suggest("", SuggestionLimit))
	assert.Equal(t, []string{"BIO101"}, c.Suggest("B", 1))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class_codes.csv")
	require.NoError(t, os.WriteFile(path, []byte("CS101\nCS102\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101", "CS102"}, c.Suggest("cs", SuggestionLimit))

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
