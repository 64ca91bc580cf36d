// Command texere-editor is a minimal, non-interactive demonstration of the
// editor state core: it builds an EditorState from a language preset,
// applies a few transactions (including an undo and a redo), and prints
// the document and selection after each step. It exists to give the core
// packages a real caller — rendering, input handling, and persistence are
// all out of scope, per the core's own non-goals.
package main

import (
	"fmt"
	"log"

	"github.com/texere-dev/edit/pkg/change"
	"github.com/texere-dev/edit/pkg/facet"
	"github.com/texere-dev/edit/pkg/selection"
	"github.com/texere-dev/edit/pkg/state"
	"github.com/texere-dev/edit/pkg/syntax"
	"github.com/texere-dev/edit/pkg/text"
)

var goPreset = []byte(`
- name: go
  tabSize: 4
  language: go
  lineComment: "//"
  blockComment: ["/*", "*/"]
  indentUnit: "\t"
  bracketPairs:
    "(": ")"
    "{": "}"
    "[": "]"
`)

func main() {
	langExt, err := facet.LoadPresetYAML(goPreset, "go")
	if err != nil {
		log.Fatalf("load preset: %v", err)
	}

	syntaxField := state.NewSyntaxField(syntax.WordParser{})

	s, err := state.Create(state.Config{
		Doc:        text.New("package main\n"),
		Extensions: facet.Extensions(langExt, state.SyntaxExtension(syntaxField)),
		Fields:     []state.Field{state.HistoryField, syntaxField},
	})
	if err != nil {
		log.Fatalf("create state: %v", err)
	}
	report("initial", s)

	s = mustUpdate(s, insertAt(s, 13, "\nfunc main() {}\n"))
	report("after insert", s)

	undoSpec, ok := state.Undo(s)
	if !ok {
		log.Fatal("expected an undoable transaction")
	}
	s = mustUpdate(s, undoSpec)
	report("after undo", s)

	redoSpec, ok := state.Redo(s)
	if !ok {
		log.Fatal("expected a redoable transaction")
	}
	s = mustUpdate(s, redoSpec)
	report("after redo", s)

	cfg := facet.LanguageData.Read(s.Config())
	fmt.Printf("language: %s, indent unit: %q, tab size: %d\n",
		cfg.Name, cfg.IndentUnit, facet.TabSize.Read(s.Config()))

	if tree := state.SyntaxTree.Read(s.Config()); tree != nil && tree.Root != nil {
		fmt.Printf("syntax tree: %s node spanning [%d, %d), %d children\n",
			tree.Root.Type.Name, tree.Root.From, tree.Root.To, len(tree.Root.Children))
	}
}

func insertAt(s *state.EditorState, pos int, text string) state.TransactionSpec {
	cs, err := change.Of([]change.Spec{{From: pos, To: pos, Insert: text}}, s.Doc().Length(), false)
	if err != nil {
		log.Fatalf("build change: %v", err)
	}
	return state.TransactionSpec{
		Changes:   cs,
		Selection: selection.Single(selection.Cursor(pos + len([]rune(text)))),
	}
}

func mustUpdate(s *state.EditorState, spec state.TransactionSpec) *state.EditorState {
	tr, err := s.Update(spec)
	if err != nil {
		log.Fatalf("update: %v", err)
	}
	return tr.State()
}

func report(label string, s *state.EditorState) {
	fmt.Printf("--- %s ---\n%s\nselection main range: [%d, %d)\n\n",
		label, s.Doc().String(), s.Selection().Main().From(), s.Selection().Main().To())
}
