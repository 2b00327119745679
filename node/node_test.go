package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/parser"

	"github.com/jsmorph/jsmorph/astpath"
	"github.com/jsmorph/jsmorph/builder"
	"github.com/jsmorph/jsmorph/node"
)

func parseRoot(t *testing.T, src string) *node.Node {
	t.Helper()
	prog, err := parser.ParseFile(src)
	require.NoError(t, err)
	return node.FromPath(astpath.NewTree(prog).Path())
}

func TestFindIdentifiers(t *testing.T) {
	root := parseRoot(t, "let foo, bar; let baz;")

	idents := root.FindChildrenOfType(node.Identifier, nil, false)
	require.Equal(t, 3, idents.Size())

	names := make([]string, 0, 3)
	idents.ForEach(func(n *node.Node) {
		names = append(names, n.Raw().(*ast.Identifier).Name)
	})
	assert.Equal(t, []string{"foo", "bar", "baz"}, names)

	last, err := idents.At(2)
	require.NoError(t, err)
	assert.Equal(t, "baz", last.RenderCompact())
	assert.True(t, last.Is(node.Identifier))
}

func TestReplaceLiteral(t *testing.T) {
	root := parseRoot(t, "const foo = 42;")

	num := root.FindFirstChildOfType(node.NumberLiteral, nil, false)
	require.NotNil(t, num)
	require.NoError(t, num.Replace(builder.Number(23)))
	assert.Equal(t, "const foo = 23;", root.RenderCompact())
}

func TestRemoveMethods(t *testing.T) {
	root := parseRoot(t, "class Foo { constructor() {} render() { return this.x; } }")

	cls := root.FindFirstChildOfType(node.ClassLiteral, nil, false)
	require.NotNil(t, cls)

	method := cls.FindFirstChildOfType(node.MethodDefinition, nil, false)
	require.NotNil(t, method)

	require.NoError(t, cls.RemoveChildren(func(n *node.Node) bool {
		return n.Is(node.MethodDefinition)
	}))
	assert.Equal(t, "class Foo {}", root.RenderCompact())

	assert.True(t, method.Stale())
	assert.ErrorIs(t, method.Repair(), astpath.ErrDetached)
}

func TestRemoveChildrenAll(t *testing.T) {
	root := parseRoot(t, "function f() { a(); b(); }")

	body := root.FindFirstChildOfType(node.BlockStatement, nil, false)
	require.NotNil(t, body)
	require.NoError(t, body.RemoveChildren(nil))
	assert.Equal(t, "function f() {}", root.RenderCompact())
}

func TestRemoveChildrenKeepsRequiredSlots(t *testing.T) {
	root := parseRoot(t, "let a = 1;")

	decl := root.FindFirstChildOfType(node.VariableDeclarator, nil, false)
	require.NotNil(t, decl)
	require.NoError(t, decl.RemoveChildren(nil))
	// The binding target is required; only the initializer goes.
	assert.Equal(t, "let a;", root.RenderCompact())
}

func TestRemoveDescendants(t *testing.T) {
	root := parseRoot(t, "debugger; function f() { debugger; g(); }")

	require.NoError(t, root.RemoveDescendants(func(n *node.Node) bool {
		return n.Is(node.DebuggerStatement)
	}))
	assert.Equal(t, "function f() { g(); }", root.RenderCompact())
}

func TestRemoveDescendantsAcrossSiblingDeclarators(t *testing.T) {
	root := parseRoot(t, "let x = 1, y = 2;")

	// The second declarator's removal reallocates the declarator slice;
	// the first initializer's removal must still land in the live tree.
	require.NoError(t, root.RemoveDescendants(func(n *node.Node) bool {
		switch raw := n.Raw().(type) {
		case *ast.NumberLiteral:
			return raw.Value == 1
		case *ast.VariableDeclarator:
			id, ok := raw.Target.Target.(*ast.Identifier)
			return ok && id.Name == "y"
		}
		return false
	}))
	assert.Equal(t, "let x;", root.RenderCompact())
}

func TestListRemoveAllAcrossSiblingDeclarators(t *testing.T) {
	root := parseRoot(t, "let x = 1, y = 2;")

	nums := root.FindChildrenOfType(node.NumberLiteral, nil, false)
	require.Equal(t, 2, nums.Size())
	require.NoError(t, nums.RemoveAll())
	assert.Equal(t, "let x, y;", root.RenderCompact())
}

func TestRemoveRootIsNoop(t *testing.T) {
	root := parseRoot(t, "let a;")
	require.NoError(t, root.Remove())
	assert.Equal(t, "let a;", root.RenderCompact())
}

func isComponentClass(n *node.Node) bool {
	c, ok := n.Raw().(*ast.ClassLiteral)
	if !ok || c.SuperClass == nil {
		return false
	}
	super, ok := c.SuperClass.Expr.(*ast.Identifier)
	return ok && super.Name == "Component"
}

func TestCapabilityView(t *testing.T) {
	component := &node.Type{Name: "Component", Check: isComponentClass}
	root := parseRoot(t, "class Foo extends Component { render() {} } class Bar {}")

	found := root.FindChildrenOfType(component, nil, false)
	require.Equal(t, 1, found.Size())
	foo := found.First()
	assert.True(t, foo.Is(component))
	assert.Same(t, component, foo.Type())
	assert.Equal(t, "ClassLiteral", foo.Category())

	bar := root.FindFirstChildOfType(node.ClassLiteral, func(n *node.Node) bool {
		c := n.Raw().(*ast.ClassLiteral)
		return c.Name != nil && c.Name.Name == "Bar"
	}, false)
	require.NotNil(t, bar)
	assert.False(t, bar.CanCastTo(component))

	// Casting to a checked type always succeeds; CanCastTo is advisory.
	cast, err := bar.CastTo(component)
	require.NoError(t, err)
	assert.True(t, cast.Is(component))
	assert.Same(t, bar.Raw(), cast.Raw())
}

func TestCastIdempotent(t *testing.T) {
	component := &node.Type{Name: "Component", Check: isComponentClass}
	root := parseRoot(t, "class Foo extends Component {}")

	foo := root.FindFirstChildOfType(component, nil, false)
	require.NotNil(t, foo)
	again, err := foo.CastTo(component)
	require.NoError(t, err)
	assert.Same(t, foo, again)
}

func TestCastWithoutCheckFails(t *testing.T) {
	root := parseRoot(t, "let a;")

	ident := root.FindFirstChildOfType(node.Identifier, nil, false)
	require.NotNil(t, ident)
	_, err := ident.CastTo(node.ClassLiteral)
	assert.ErrorIs(t, err, node.ErrUncastableType)
}

func TestDescendShortCircuits(t *testing.T) {
	root := parseRoot(t, "let foo = bar;")

	calls := 0
	found := root.Descend(func(n *node.Node) bool {
		calls++
		return n.Is(node.Identifier)
	})
	require.NotNil(t, found)
	assert.Equal(t, "foo", found.Raw().(*ast.Identifier).Name)
	// VariableDeclaration, VariableDeclarator, then the match.
	assert.Equal(t, 3, calls)
}

func TestDescendNoMatch(t *testing.T) {
	root := parseRoot(t, "let a;")
	assert.Nil(t, root.Descend(func(n *node.Node) bool { return false }))
}

func TestAscendAndScopes(t *testing.T) {
	root := parseRoot(t, "function outer() { let x = 1; }")

	num := root.FindFirstChildOfType(node.NumberLiteral, nil, false)
	require.NotNil(t, num)

	assert.Equal(t, "VariableDeclarator", num.Parent().Category())
	assert.NotNil(t, num.FindParentOfType(node.VariableDeclarator))
	assert.Nil(t, num.FindParentOfType(node.VariableDeclaration))

	decl := num.FindClosestParentOfType(node.VariableDeclaration)
	require.NotNil(t, decl)
	assert.Equal(t, "VariableDeclaration", decl.Category())

	scope := num.FindClosestScope()
	require.NotNil(t, scope)
	assert.Equal(t, "FunctionLiteral", scope.Category())

	assert.Equal(t, "Program", num.Root().Category())
}

func TestRootOfDetachedSubtree(t *testing.T) {
	built, err := builder.BuildNode("Identifier", builder.Props{"name": "x"})
	require.NoError(t, err)
	assert.Same(t, built, built.Root())
	assert.Nil(t, built.Parent())
}

func TestInsertSiblings(t *testing.T) {
	root := parseRoot(t, "a(); c();")

	first := root.FindFirstChildOfType(node.ExpressionStatement, nil, false)
	require.NotNil(t, first)

	call, err := builder.Build("CallExpression", builder.Props{"callee": "b"})
	require.NoError(t, err)
	stmt, err := builder.Build("ExpressionStatement", nil, call)
	require.NoError(t, err)

	inserted, err := first.InsertAfter(stmt)
	require.NoError(t, err)
	assert.Equal(t, "ExpressionStatement", inserted.Category())
	assert.Equal(t, 1, inserted.Path().Index())
	assert.Equal(t, "a(); b(); c();", root.RenderCompact())
}

func TestInsertNotInList(t *testing.T) {
	root := parseRoot(t, "let a = 1;")

	num := root.FindFirstChildOfType(node.NumberLiteral, nil, false)
	require.NotNil(t, num)
	_, err := num.InsertBefore(builder.Number(2))
	assert.ErrorIs(t, err, astpath.ErrNotInList)
}

func TestStaleSiblingRepairs(t *testing.T) {
	root := parseRoot(t, "a(); b();")

	stmts := root.FindChildrenOfType(node.ExpressionStatement, nil, false)
	require.Equal(t, 2, stmts.Size())
	second, err := stmts.At(1)
	require.NoError(t, err)

	require.NoError(t, stmts.First().Remove())
	assert.True(t, second.Stale())
	require.NoError(t, second.Repair())
	assert.Equal(t, 0, second.Path().Index())
	assert.Equal(t, "b();", root.RenderCompact())
}

func TestAliasedWrappersShareMutations(t *testing.T) {
	root := parseRoot(t, "let a = 1; f(a);")

	first := root.FindFirstChildOfType(node.Identifier, nil, false)
	same := root.Descend(func(n *node.Node) bool { return n.Is(node.Identifier) })
	require.NotNil(t, first)
	require.NotNil(t, same)

	first.Raw().(*ast.Identifier).Name = "z"
	assert.Equal(t, "z", same.RenderCompact())
	assert.Equal(t, "let z = 1; f(a);", root.RenderCompact())
}

func TestFindChildrenOfTypes(t *testing.T) {
	root := parseRoot(t, "let a = 1; f(\"s\");")

	lits := root.FindChildrenOfTypes([]*node.Type{node.NumberLiteral, node.StringLiteral}, nil, false)
	require.Equal(t, 2, lits.Size())
	assert.Equal(t, "NumberLiteral", lits.First().Category())
	assert.Equal(t, "StringLiteral", lits.Last().Category())
}

func TestFindChildrenIncludeSelf(t *testing.T) {
	root := parseRoot(t, "let a;")

	all := root.FindChildren(nil, true)
	withoutSelf := root.FindChildren(nil, false)
	assert.Equal(t, all.Size(), withoutSelf.Size()+1)
	assert.Equal(t, "Program", all.First().Category())
}

func TestChildren(t *testing.T) {
	root := parseRoot(t, "let a; f();")

	kids := root.Children()
	require.Equal(t, 2, kids.Size())
	assert.Equal(t, "VariableDeclaration", kids.First().Category())
	assert.Equal(t, "ExpressionStatement", kids.Last().Category())
}

func TestWrapDegradesUnknownCategory(t *testing.T) {
	n := node.Wrap(&ast.EmptyStatement{})
	assert.Nil(t, n.Type())
	assert.Equal(t, "EmptyStatement", n.Category())
}
