// Package stripdebug removes debugging leftovers: debugger statements and
// console.* calls.
package stripdebug

import (
	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/codemod"
	"github.com/jsmorph/jsmorph/node"
)

func init() {
	codemod.RegisterTransform(Transform{})
}

// Transform implements codemod.Transform.
type Transform struct{}

// Name implements codemod.Transform.
func (Transform) Name() string { return "strip-debug" }

// Apply prunes every debugger statement and every statement-level
// console.* call in one pass.
func (Transform) Apply(root *node.Node) error {
	return root.RemoveDescendants(func(n *node.Node) bool {
		switch raw := n.Raw().(type) {
		case *ast.DebuggerStatement:
			return true
		case *ast.ExpressionStatement:
			call, ok := raw.Expression.Expr.(*ast.CallExpression)
			return ok && isConsoleCall(call)
		}
		return false
	})
}

// isConsoleCall recognizes console.log(...) and friends.
func isConsoleCall(call *ast.CallExpression) bool {
	member, ok := call.Callee.Expr.(*ast.MemberExpression)
	if !ok {
		return false
	}
	obj, ok := member.Object.Expr.(*ast.Identifier)
	return ok && obj.Name == "console"
}
