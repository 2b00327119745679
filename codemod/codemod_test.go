package codemod_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsmorph/jsmorph/codemod"
	"github.com/jsmorph/jsmorph/node"
	"github.com/jsmorph/jsmorph/transform/renameident"
	_ "github.com/jsmorph/jsmorph/transform/stripdebug"
)

func TestParseAndPrint(t *testing.T) {
	root, err := codemod.Parse("let a = 1;")
	require.NoError(t, err)
	assert.Equal(t, "Program", root.Category())
	assert.Equal(t, "let a = 1;\n", codemod.Print(root))
}

func TestParseErrorNamesFile(t *testing.T) {
	_, err := codemod.Parse("if (", codemod.WithFilename("test.js"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.js")
}

func TestPrintFromAnyWrapper(t *testing.T) {
	root, err := codemod.Parse("let a = 1; f(a);")
	require.NoError(t, err)

	num := root.FindFirstChildOfType(node.NumberLiteral, nil, false)
	require.NotNil(t, num)
	// Print always renders the whole tree the wrapper belongs to.
	assert.Equal(t, "let a = 1;\nf(a);\n", codemod.Print(num))
}

func TestRunStripDebug(t *testing.T) {
	strip := codemod.LookupTransform("strip-debug")
	require.NotNil(t, strip)

	res, err := codemod.Run(
		"let a = 1; debugger; console.log(a); f(a);",
		[]codemod.Transform{strip}, nil)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "let a = 1;\nf(a);\n", res.Output)
}

func TestRunRenameIdent(t *testing.T) {
	res, err := codemod.Run(
		"let a = 1; f(a);",
		[]codemod.Transform{renameident.New("a", "b")}, nil)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "let b = 1;\nf(b);\n", res.Output)
}

func TestRunCompactOutput(t *testing.T) {
	res, err := codemod.Run(
		"let a = 1; f(a);",
		[]codemod.Transform{renameident.New("a", "b")}, nil,
		codemod.WithCompactOutput())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "let b = 1; f(b);", res.Output)
}

func TestRunUnchanged(t *testing.T) {
	res, err := codemod.Run(
		"let a = 1;",
		[]codemod.Transform{renameident.New("missing", "b")}, nil)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, "let a = 1;\n", res.Output)
}

type stubTransform struct {
	name string
	err  error
}

func (s stubTransform) Name() string                { return s.name }
func (s stubTransform) Apply(root *node.Node) error { return s.err }

func TestRunTransformError(t *testing.T) {
	boom := assert.AnError
	_, err := codemod.Run("let a;", []codemod.Transform{stubTransform{name: "boom", err: boom}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "transform boom")
}

func TestTransformRegistry(t *testing.T) {
	codemod.RegisterTransform(stubTransform{name: "aaa-stub"})
	codemod.RegisterTransform(stubTransform{name: "zzz-stub"})

	assert.NotNil(t, codemod.LookupTransform("aaa-stub"))
	assert.Nil(t, codemod.LookupTransform("never-registered"))

	names := codemod.TransformNames()
	assert.IsType(t, []string{}, names)
	assert.Contains(t, names, "strip-debug")
	assert.True(t, sortedStrings(names))
}

func sortedStrings(ss []string) bool {
	for i := 1; i < len(ss); i++ {
		if ss[i-1] > ss[i] {
			return false
		}
	}
	return true
}
