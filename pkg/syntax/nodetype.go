// Package syntax implements the core's incremental syntax tree: an
// immutable Tree of SyntaxNodes built by a Parser, with TreeCursor for
// efficient traversal and TreeFragment-based reuse so editing a large
// document doesn't require reparsing it from scratch.
//
// Grounded on the teacher's pkg/weave/engine/engine.go for the general
// shape of "coordinate incremental recomputation against an edited
// document" (weave's engine recomputes derived state incrementally the
// same way this package's parser coordinator does for syntax trees), and
// on other_examples' aretext parser.go for the parse-function/cached-
// computation-reuse contract that TreeFragment generalizes from tokens
// to a full tree.
package syntax

import "github.com/dlclark/regexp2"

// NodeType describes one kind of syntax node a language's grammar can
// produce — e.g. "Identifier", "BinaryExpression" — along with the
// properties attached to that kind (indentation rules, bracket matching,
// code folding).
type NodeType struct {
	ID    int
	Name  string
	props map[string]any
}

// NodeProp is a typed key into a NodeType's property map.
type NodeProp[T any] struct {
	name string
}

// DefineProp declares a new node property kind.
func DefineProp[T any](name string) NodeProp[T] { return NodeProp[T]{name: name} }

// Get reads p's value from t, with ok reporting whether it was set.
func (p NodeProp[T]) Get(t *NodeType) (T, bool) {
	var zero T
	if t == nil || t.props == nil {
		return zero, false
	}
	v, ok := t.props[p.name]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Set returns a NodeType equal to t but with p set to value.
func (p NodeProp[T]) Set(t *NodeType, value T) *NodeType {
	props := map[string]any{}
	for k, v := range t.props {
		props[k] = v
	}
	props[p.name] = value
	return &NodeType{ID: t.ID, Name: t.Name, props: props}
}

// NewNodeType creates a NodeType with no properties set.
func NewNodeType(id int, name string) *NodeType {
	return &NodeType{ID: id, Name: name}
}

// Common node properties every language's node set can opt into.
var (
	// OpenedBy/ClosedBy name the matching bracket node types for bracket
	// matching — e.g. "(" node's ClosedBy is ")"'s name.
	OpenedBy = DefineProp[[]string]("openedBy")
	ClosedBy = DefineProp[[]string]("closedBy")
	// Foldable marks that a node of this type can be collapsed in the
	// editor's code-folding UI.
	Foldable = DefineProp[bool]("foldable")
	// TopProp/ErrorProp mark a grammar's root node type and its recovery
	// node type respectively, mirroring lezer's NodeType.isTop/isError.
	// Group lists the node-group names (e.g. "Statement", "Expression")
	// callers like indentation/folding rules match against instead of a
	// single concrete type name.
	TopProp   = DefineProp[bool]("top")
	ErrorProp = DefineProp[bool]("error")
	Group     = DefineProp[[]string]("group")
)

// IsTop reports whether t is the root node type of its grammar.
func (t *NodeType) IsTop() bool {
	v, _ := TopProp.Get(t)
	return v
}

// IsError reports whether t marks a parse-error recovery node.
func (t *NodeType) IsError() bool {
	v, _ := ErrorProp.Get(t)
	return v
}

// IsAnonymous reports whether t has no name — a synthetic node a parser
// introduces for its own bookkeeping (grouping, repetition) rather than
// one that corresponds to a grammar rule a caller would ever ask for by
// name.
func (t *NodeType) IsAnonymous() bool {
	return t.Name == ""
}

// InGroup reports whether t was placed in the named group via Group.Set.
func (t *NodeType) InGroup(name string) bool {
	groups, ok := Group.Get(t)
	if !ok {
		return false
	}
	for _, g := range groups {
		if g == name {
			return true
		}
	}
	return false
}

// BracketRegexp is the regexp2-backed matcher a language can register to
// recognize bracket characters inside leaf token text without a full
// grammar rule per bracket kind — dlclark/regexp2 because the core's
// bracket lists are user-configurable regular expressions, which need
// .NET-style regex features (balancing groups, lookbehind) Go's RE2-based
// regexp package doesn't support.
type BracketRegexp struct {
	re *regexp2.Regexp
}

// NewBracketRegexp compiles pattern with default regexp2 options.
func NewBracketRegexp(pattern string) (*BracketRegexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &BracketRegexp{re: re}, nil
}

// MatchString reports whether s is recognized as a bracket character by
// this matcher.
func (b *BracketRegexp) MatchString(s string) bool {
	m, err := b.re.MatchString(s)
	return err == nil && m
}

// NodeSet is the fixed table of NodeTypes a language's parser can
// produce, indexed by ID for compact storage in a Tree.
type NodeSet struct {
	types []*NodeType
}

// NewNodeSet builds a NodeSet from types, indexed by their position.
func NewNodeSet(types []*NodeType) *NodeSet {
	return &NodeSet{types: types}
}

// Type returns the NodeType with the given id.
func (s *NodeSet) Type(id int) *NodeType {
	if id < 0 || id >= len(s.types) {
		return nil
	}
	return s.types[id]
}

// Extend returns a NodeSet with every type's props updated by fn,
// mirroring the core's NodeSet.extend(...) used to layer per-language
// properties (bracket lists, fold predicates) onto a shared base grammar.
func (s *NodeSet) Extend(fn func(*NodeType) *NodeType) *NodeSet {
	out := make([]*NodeType, len(s.types))
	for i, t := range s.types {
		out[i] = fn(t)
	}
	return &NodeSet{types: out}
}
