package node_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/node"
)

func TestListAt(t *testing.T) {
	root := parseRoot(t, "let a, b;")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	require.Equal(t, 2, idents.Size())

	first, err := idents.At(0)
	require.NoError(t, err)
	assert.Equal(t, "a", first.RenderCompact())

	_, err = idents.At(2)
	assert.ErrorIs(t, err, node.ErrIndexOutOfRange)
	_, err = idents.At(-1)
	assert.ErrorIs(t, err, node.ErrIndexOutOfRange)
}

func TestListFirstLastEmpty(t *testing.T) {
	root := parseRoot(t, "let a;")

	none := root.FindChildrenOfType(node.ClassLiteral, nil, false)
	assert.Equal(t, 0, none.Size())
	assert.Nil(t, none.First())
	assert.Nil(t, none.Last())

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	assert.Equal(t, "a", idents.First().RenderCompact())
	assert.Equal(t, "a", idents.Last().RenderCompact())
}

func TestListFilterIsDestructive(t *testing.T) {
	root := parseRoot(t, "let alpha, beta, also;")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	require.Equal(t, 3, idents.Size())

	filtered := idents.Filter(func(n *node.Node) bool {
		return strings.HasPrefix(n.Raw().(*ast.Identifier).Name, "a")
	})
	assert.Same(t, idents, filtered)
	assert.Equal(t, 2, idents.Size())
	assert.Equal(t, "also", idents.Last().RenderCompact())
}

func TestListCopySharesPositions(t *testing.T) {
	root := parseRoot(t, "a(); b();")

	stmts := root.FindChildrenOfType(node.ExpressionStatement, nil, false)
	require.Equal(t, 2, stmts.Size())

	cp := stmts.Copy()
	require.NoError(t, cp.RemoveAll())

	// The original list keeps its length, but its positions are gone from
	// the tree.
	assert.Equal(t, 2, stmts.Size())
	assert.True(t, stmts.First().Stale())
	assert.Equal(t, "", root.RenderCompact())
}

func TestListRemoveAllSkipsRequiredSlots(t *testing.T) {
	root := parseRoot(t, "let a = 1;")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	require.Equal(t, 1, idents.Size())
	require.NoError(t, idents.RemoveAll())
	assert.Equal(t, "let a = 1;", root.RenderCompact())
}

func TestListMap(t *testing.T) {
	root := parseRoot(t, "let a = 1, b = 2;")

	inits := root.FindChildrenOfType(node.VariableDeclarator, nil, false).
		Map(func(n *node.Node) *node.Node {
			return n.FindFirstChildOfType(node.NumberLiteral, nil, false)
		})
	require.Equal(t, 2, inits.Size())
	assert.Equal(t, "1", inits.First().RenderCompact())
	assert.Equal(t, "2", inits.Last().RenderCompact())
}

func TestListHas(t *testing.T) {
	root := parseRoot(t, "let a = 1;")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	assert.True(t, idents.Has(func(n *node.Node) bool {
		return n.Raw().(*ast.Identifier).Name == "a"
	}))
	assert.False(t, idents.Has(func(n *node.Node) bool {
		return n.Raw().(*ast.Identifier).Name == "z"
	}))
}

func TestListConcat(t *testing.T) {
	root := parseRoot(t, "let a = 1; f(b);")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	nums := root.FindChildrenOfType(node.NumberLiteral, nil, false)

	_, err := idents.Concat(nums)
	assert.ErrorIs(t, err, node.ErrTypeMismatch)

	more := root.FindChildrenOfType(node.Identifier, nil, false)
	joined, err := idents.Concat(more)
	require.NoError(t, err)
	assert.Equal(t, idents.Size()+more.Size(), joined.Size())
}

func TestListNodes(t *testing.T) {
	root := parseRoot(t, "let a, b;")

	raw := root.FindChildrenOfType(node.Identifier, nil, false).Nodes()
	require.Len(t, raw, 2)
	assert.Equal(t, "a", raw[0].(*ast.Identifier).Name)
	assert.Equal(t, "b", raw[1].(*ast.Identifier).Name)
}
