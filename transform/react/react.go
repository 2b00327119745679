// Package react defines capability views over React-flavored classes.
package react

import (
	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/node"
)

// Component matches any class whose superclass is Component or
// React.Component, regardless of how the class is declared.
var Component = &node.Type{Name: "Component", Check: isComponent}

func init() {
	node.DefaultRegistry.Register(Component)
}

// Components returns every component class beneath root, in document order.
func Components(root *node.Node) *node.List {
	return root.FindChildrenOfType(Component, nil, true)
}

func isComponent(n *node.Node) bool {
	c, ok := n.Raw().(*ast.ClassLiteral)
	if !ok || c.SuperClass == nil {
		return false
	}
	switch super := c.SuperClass.Expr.(type) {
	case *ast.Identifier:
		return super.Name == "Component"
	case *ast.MemberExpression:
		obj, ok := super.Object.Expr.(*ast.Identifier)
		if !ok || obj.Name != "React" {
			return false
		}
		prop, ok := super.Property.Prop.(*ast.Identifier)
		return ok && prop.Name == "Component"
	}
	return false
}
