package react_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/codemod"
	"github.com/jsmorph/jsmorph/node"
	"github.com/jsmorph/jsmorph/transform/react"
)

func TestComponents(t *testing.T) {
	root, err := codemod.Parse(`
		class Foo extends Component { render() {} }
		class Bar extends React.Component { render() {} }
		class Baz extends Other {}
		class Plain {}
	`)
	require.NoError(t, err)

	found := react.Components(root)
	require.Equal(t, 2, found.Size())

	names := make([]string, 0, 2)
	found.ForEach(func(n *node.Node) {
		names = append(names, n.Raw().(*ast.ClassLiteral).Name.Name)
	})
	assert.Equal(t, []string{"Foo", "Bar"}, names)
}

func TestComponentCast(t *testing.T) {
	root, err := codemod.Parse("class Baz extends Other {}")
	require.NoError(t, err)

	cls := root.FindFirstChildOfType(node.ClassLiteral, nil, false)
	require.NotNil(t, cls)
	assert.False(t, cls.CanCastTo(react.Component))

	cast, err := cls.CastTo(react.Component)
	require.NoError(t, err)
	assert.True(t, cast.Is(react.Component))
}

func TestComponentRegistered(t *testing.T) {
	assert.Same(t, react.Component, node.DefaultRegistry.Lookup("Component"))
}
