package facet

import "github.com/dlclark/regexp2"

// LanguageConfig is the per-document configuration a language attaches to
// an EditorState through the LanguageData facet: comment syntax, indent
// unit, and the bracket pairs a structural command (close-brackets,
// fold-all) should recognize. This generalizes the teacher's
// weave/engine.EngineConfig — a per-document configuration struct with
// defaulted fields, resolved once when the engine/state is built — away
// from AI-weaving settings (AIEnabled, AIModel, HistoryLimit) to plain
// language configuration (comment tokens, indent unit, bracket pairs),
// since that per-document "small config struct with sensible zero-value
// defaults" shape fits language data just as well as it fit weave's engine
// config.
type LanguageConfig struct {
	Name          string
	LineComment   string
	BlockComment  [2]string // [0]=open, [1]=close; both empty if unsupported
	IndentUnit    string
	BracketPairs  map[string]string // open -> close
	IndentPattern *regexp2.Regexp   // lines matching this increase indent on Enter
}

// LanguageData is a facet with no default value: an Extension must supply
// exactly one LanguageConfig (via Of) for a given region of the document
// to get indent/comment/bracket behavior, mirroring the core's rule that
// facets without a combine default are meant to be set by exactly one
// provider per effective configuration.
var LanguageData *Facet[LanguageConfig, LanguageConfig] = Define[LanguageConfig, LanguageConfig]("languageData", firstConfig)

func firstConfig(inputs []LanguageConfig) LanguageConfig {
	if len(inputs) == 0 {
		return LanguageConfig{}
	}
	return inputs[0]
}

// MatchesIndentPattern reports whether line should trigger an extra indent
// step when cfg was configured with an IndentPattern.
func (cfg LanguageConfig) MatchesIndentPattern(line string) bool {
	if cfg.IndentPattern == nil {
		return false
	}
	m, err := cfg.IndentPattern.MatchString(line)
	return err == nil && m
}

// ClosingBracket returns the closing bracket for open, and whether cfg
// defines one.
func (cfg LanguageConfig) ClosingBracket(open string) (string, bool) {
	close, ok := cfg.BracketPairs[open]
	return close, ok
}
