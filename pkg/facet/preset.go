package facet

import "gopkg.in/yaml.v3"

// TabSize is how many columns a tab character occupies, combined by
// taking the first (highest-precedence) contribution — the "one value
// wins" combine for singleton settings, as opposed to
// concatenating-combine facets like keymaps. With no contribution it is 4.
var TabSize = Define[int, int]("tabSize", firstOr(4))

func firstOr(deflt int) func([]int) int {
	return func(vs []int) int {
		if len(vs) == 0 {
			return deflt
		}
		return vs[0]
	}
}

// Preset is the on-disk shape LoadPresetYAML parses: a named bundle of
// the ambient settings a caller would otherwise build by hand out of
// several Facet.Of calls. This is deliberately separate from
// EditorState's JSON snapshot format — a Preset configures an Extension
// tree, it does not capture a specific document's live state — in the
// same spirit as the teacher's config-by-data style (EngineConfig,
// seen in weave/engine.go, parsed from a struct rather than assembled by
// hand at each call site).
type Preset struct {
	Name         string            `yaml:"name"`
	TabSize      int               `yaml:"tabSize"`
	Language     string            `yaml:"language"`
	LineComment  string            `yaml:"lineComment"`
	BlockComment []string          `yaml:"blockComment"` // [open, close]
	IndentUnit   string            `yaml:"indentUnit"`
	BracketPairs map[string]string `yaml:"bracketPairs"`
}

// LoadPresetYAML parses a YAML document holding one or more named
// presets and returns the Extension for the preset called name.
func LoadPresetYAML(doc []byte, name string) (Extension, error) {
	var presets []Preset
	if err := yaml.Unmarshal(doc, &presets); err != nil {
		return Extension{}, err
	}
	for _, p := range presets {
		if p.Name != name {
			continue
		}
		return presetExtension(p), nil
	}
	return Extension{}, presetNotFoundError(name)
}

func presetExtension(p Preset) Extension {
	cfg := LanguageConfig{
		Name:         p.Language,
		LineComment:  p.LineComment,
		IndentUnit:   p.IndentUnit,
		BracketPairs: p.BracketPairs,
	}
	if len(p.BlockComment) == 2 {
		cfg.BlockComment = [2]string{p.BlockComment[0], p.BlockComment[1]}
	}
	exts := []Extension{LanguageData.Of(cfg)}
	if p.TabSize > 0 {
		exts = append(exts, TabSize.Of(p.TabSize))
	}
	return Extensions(exts...)
}

type presetNotFoundError string

func (e presetNotFoundError) Error() string {
	return "facet: no preset named " + string(e)
}
