package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageDataResolvesSingleProvider(t *testing.T) {
	cfg := LanguageConfig{Name: "go", LineComment: "//", IndentUnit: "\t"}
	c, err := Resolve(LanguageData.Of(cfg))
	require.NoError(t, err)
	assert.Equal(t, "go", LanguageData.Read(c).Name)
	assert.Equal(t, "//", LanguageData.Read(c).LineComment)
}

func TestClosingBracketLookup(t *testing.T) {
	cfg := LanguageConfig{BracketPairs: map[string]string{"(": ")", "[": "]"}}
	close, ok := cfg.ClosingBracket("(")
	require.True(t, ok)
	assert.Equal(t, ")", close)

	_, ok = cfg.ClosingBracket("<")
	assert.False(t, ok)
}

func TestLoadPresetYAMLBuildsLanguageDataAndTabSize(t *testing.T) {
	doc := []byte(`
- name: go
  tabSize: 4
  language: go
  lineComment: "//"
  blockComment: ["/*", "*/"]
  indentUnit: "\t"
  bracketPairs:
    "(": ")"
    "{": "}"
`)
	ext, err := LoadPresetYAML(doc, "go")
	require.NoError(t, err)

	c, err := Resolve(ext)
	require.NoError(t, err)
	assert.Equal(t, 4, TabSize.Read(c))
	lang := LanguageData.Read(c)
	assert.Equal(t, "go", lang.Name)
	assert.Equal(t, [2]string{"/*", "*/"}, lang.BlockComment)
	assert.Equal(t, "}", lang.BracketPairs["{"])
}

func TestLoadPresetYAMLUnknownNameErrors(t *testing.T) {
	doc := []byte(`
- name: go
  tabSize: 4
`)
	_, err := LoadPresetYAML(doc, "rust")
	assert.Error(t, err)
}
