// Package renameident renames every identifier with a given name. Renaming
// is purely syntactic; shadowing is not analyzed.
package renameident

import (
	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/node"
)

// Transform implements codemod.Transform for one from→to rename.
type Transform struct {
	From, To string
}

// New returns a rename transform.
func New(from, to string) Transform {
	return Transform{From: from, To: to}
}

// Name implements codemod.Transform.
func (t Transform) Name() string { return "rename-ident" }

// Apply rewrites matching identifiers in place through the raw-node escape
// hatch; the tree shape is untouched.
func (t Transform) Apply(root *node.Node) error {
	root.FindChildrenOfType(node.Identifier, func(n *node.Node) bool {
		return n.Raw().(*ast.Identifier).Name == t.From
	}, false).ForEach(func(n *node.Node) {
		n.Raw().(*ast.Identifier).Name = t.To
	})
	return nil
}
