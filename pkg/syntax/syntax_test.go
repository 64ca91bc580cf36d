package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texere-dev/edit/internal/budget"
	"github.com/texere-dev/edit/pkg/text"
)

var (
	docType  = NewNodeType(0, "Document")
	wordType = NewNodeType(1, "Word")
	nodes    = NewNodeSet([]*NodeType{docType, wordType})
)

// wordParser splits the document on spaces into Word leaves under one
// Document root, a minimal stand-in for a real grammar used to exercise
// the Tree/Coordinator contract end to end.
type wordParser struct{}

func (wordParser) Parse(_ context.Context, doc *text.Text, _ []TreeFragment, _ *budget.Budget) (*Tree, bool) {
	s := doc.String()
	var children []*SyntaxNode
	start := -1
	for i, ch := range s {
		if ch == ' ' {
			if start >= 0 {
				children = append(children, Leaf(wordType, start, i))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		children = append(children, Leaf(wordType, start, len(s)))
	}
	root := Inner(docType, children)
	root.To = len(s)
	return &Tree{Root: root, Set: nodes}, true
}

func TestResolveFindsInnermostNode(t *testing.T) {
	doc := text.New("foo bar baz")
	tree, done := wordParser{}.Parse(context.Background(), doc, nil, nil)
	require.True(t, done)

	n := tree.Resolve(5, 1)
	assert.Equal(t, wordType, n.Type)
	assert.Equal(t, 4, n.From)
	assert.Equal(t, 7, n.To)
}

func TestCursorPreOrderVisitsEveryNode(t *testing.T) {
	doc := text.New("a b c")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)

	c := tree.Cursor()
	count := 1
	for c.Next() {
		count++
	}
	assert.Equal(t, 4, count) // Document + 3 Words
}

func TestCoordinatorRunsParserToCompletion(t *testing.T) {
	co := NewCoordinator(wordParser{})
	doc := text.New("hello world")
	done := co.Work(context.Background(), doc)
	assert.True(t, done)
	assert.Equal(t, docType, co.Tree().Root.Type)
}

func TestFragmentsFromEditsSkipsEditedSpan(t *testing.T) {
	doc := text.New("aaaa bbbb cccc")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)
	frags := FragmentsFromEdits(tree, []Edit{{From: 5, To: 9, InsertedLen: 2}}, 0)
	require.Len(t, frags, 2)
	assert.Equal(t, 0, frags[0].From)
	assert.Equal(t, 5, frags[0].To)
	assert.Equal(t, 9, frags[1].From)
}

func TestCursorPrevMirrorsNext(t *testing.T) {
	doc := text.New("a b c")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)

	forward := tree.Cursor()
	var forwardOrder []*SyntaxNode
	forwardOrder = append(forwardOrder, forward.Node())
	for forward.Next() {
		forwardOrder = append(forwardOrder, forward.Node())
	}

	backward := tree.Cursor()
	for backward.LastChild() {
	}
	var backwardOrder []*SyntaxNode
	backwardOrder = append(backwardOrder, backward.Node())
	for backward.Prev() {
		backwardOrder = append(backwardOrder, backward.Node())
	}

	require.Equal(t, len(forwardOrder), len(backwardOrder))
	for i, n := range forwardOrder {
		assert.Same(t, n, backwardOrder[len(backwardOrder)-1-i])
	}
}

func TestChildAfterAndChildBefore(t *testing.T) {
	doc := text.New("aa bb cc")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)

	c := tree.Cursor()
	require.True(t, c.ChildAfter(2))
	assert.Equal(t, 3, c.From())

	c2 := tree.Cursor()
	require.True(t, c2.ChildBefore(7))
	assert.Equal(t, 6, c2.From())
}

func TestMoveToFindsInnermostNode(t *testing.T) {
	doc := text.New("foo bar baz")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)

	c := tree.Cursor()
	c.FirstChild()
	require.True(t, c.MoveTo(5, 1))
	assert.Equal(t, wordType, c.Node().Type)
	assert.Equal(t, 4, c.From())
}

func TestMatchContextChecksAncestorChain(t *testing.T) {
	doc := text.New("foo bar")
	tree, _ := wordParser{}.Parse(context.Background(), doc, nil, nil)

	c := tree.Cursor()
	c.FirstChild()
	assert.True(t, c.MatchContext([]string{"Document"}))
	assert.False(t, c.MatchContext([]string{"Word"}))
}

func TestNodeTypePropertiesIsTopIsErrorInGroup(t *testing.T) {
	top := TopProp.Set(NewNodeType(0, "Document"), true)
	errType := ErrorProp.Set(NewNodeType(1, "⚠"), true)
	grouped := Group.Set(NewNodeType(2, "Word"), []string{"Token"})

	assert.True(t, top.IsTop())
	assert.False(t, top.IsError())
	assert.True(t, errType.IsError())
	assert.True(t, grouped.InGroup("Token"))
	assert.False(t, grouped.InGroup("Statement"))
	assert.True(t, (&NodeType{}).IsAnonymous())
}

func TestTreeBufferBuildAssemblesNestedTree(t *testing.T) {
	buf := &TreeBuffer{
		Set: nodes,
		Entries: []BufferEntry{
			{Type: wordType.ID, From: 0, To: 3},
			{Type: wordType.ID, From: 4, To: 7},
			{Type: docType.ID, From: 0, To: 7, ChildCount: 2},
		},
	}
	root := buf.Build()
	require.Equal(t, docType, root.Type)
	require.Len(t, root.Children, 2)
	assert.Equal(t, 0, root.Children[0].From)
	assert.Equal(t, 3, root.Children[0].To)
	assert.Equal(t, 4, root.Children[1].From)
	assert.Equal(t, 7, root.Children[1].To)
}
