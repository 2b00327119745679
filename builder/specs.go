package builder

import (
	"fmt"
	"strconv"

	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/token"
)

// Ident returns a raw identifier node.
func Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

// Number returns a raw number literal with its source form.
func Number(v float64) *ast.NumberLiteral {
	raw := strconv.FormatFloat(v, 'f', -1, 64)
	return &ast.NumberLiteral{Value: v, Raw: &raw}
}

// Str returns a raw string literal with a double-quoted source form.
func Str(v string) *ast.StringLiteral {
	raw := strconv.Quote(v)
	return &ast.StringLiteral{Value: v, Raw: &raw}
}

// Bool returns a raw boolean literal.
func Bool(v bool) *ast.BooleanLiteral {
	return &ast.BooleanLiteral{Value: v}
}

// Null returns a raw null literal.
func Null() *ast.NullLiteral {
	return &ast.NullLiteral{}
}

func asExpr(v any) (*ast.Expression, error) {
	if v == nil {
		return nil, nil
	}
	e, ok := v.(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("%T is not an expression", v)
	}
	return &ast.Expression{Expr: e}, nil
}

func asExprs(vs []any) (ast.Expressions, error) {
	out := make(ast.Expressions, 0, len(vs))
	for _, v := range vs {
		e, err := asExpr(v)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// asStmt lifts a value into a statement, wrapping bare expressions in an
// expression statement.
func asStmt(v any) (*ast.Statement, error) {
	if s, ok := v.(ast.Stmt); ok {
		return &ast.Statement{Stmt: s}, nil
	}
	if e, ok := v.(ast.Expr); ok {
		return &ast.Statement{Stmt: &ast.ExpressionStatement{Expression: &ast.Expression{Expr: e}}}, nil
	}
	return nil, fmt.Errorf("%T is not a statement", v)
}

func asTarget(v any) (*ast.BindingTarget, error) {
	t, ok := v.(ast.Target)
	if !ok {
		return nil, fmt.Errorf("%T is not a binding target", v)
	}
	return &ast.BindingTarget{Target: t}, nil
}

// identOrSelf lets name-like arguments take either a string or an
// identifier node.
func identOrSelf(v any) (any, error) {
	if s, ok := v.(string); ok {
		return Ident(s), nil
	}
	return v, nil
}

func toKind(v any) (any, error) {
	switch k := v.(type) {
	case token.Token:
		return k, nil
	case string:
		switch k {
		case "var":
			return token.Var, nil
		case "let":
			return token.Let, nil
		case "const":
			return token.Const, nil
		}
		return nil, fmt.Errorf("unknown declaration kind %q", k)
	}
	return nil, fmt.Errorf("%T is not a declaration kind", v)
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return nil, fmt.Errorf("%T is not a number", v)
}

var anyExpr = []string{"*"}

var calleeTypes = []string{
	"Identifier", "MemberExpression", "CallExpression", "NewExpression",
	"FunctionLiteral", "ArrowFunctionLiteral", "ThisExpression", "SuperExpression",
}

func classLiteral(args []any) (*ast.ClassLiteral, error) {
	c := &ast.ClassLiteral{}
	if args[0] != nil {
		c.Name = args[0].(*ast.Identifier)
	}
	super, err := asExpr(args[1])
	if err != nil {
		return nil, err
	}
	c.SuperClass = super
	for _, e := range args[2].([]any) {
		el, ok := e.(ast.Element)
		if !ok {
			return nil, fmt.Errorf("%T is not a class element", e)
		}
		c.Body = append(c.Body, ast.ClassElement{Element: el})
	}
	return c, nil
}

var classArgs = []Arg{
	{Name: "name", Types: []string{"Identifier"}, Convert: identOrSelf, Default: nil, HasDefault: true},
	{Name: "superClass", Types: calleeTypes, Default: nil, HasDefault: true},
	{Name: "body", Types: []string{"MethodDefinition", "FieldDefinition", "ClassStaticBlock"}, Multiple: true},
}

func init() {
	Register(&Spec{
		Category: "Identifier",
		Args:     []Arg{{Name: "name"}},
		New: func(args []any) (ast.Node, error) {
			name, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%T is not a name", args[0])
			}
			return Ident(name), nil
		},
	})
	Register(&Spec{
		Category: "NumberLiteral",
		Args:     []Arg{{Name: "value", Convert: toFloat}},
		New: func(args []any) (ast.Node, error) {
			return Number(args[0].(float64)), nil
		},
	})
	Register(&Spec{
		Category: "StringLiteral",
		Args:     []Arg{{Name: "value"}},
		New: func(args []any) (ast.Node, error) {
			v, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%T is not a string value", args[0])
			}
			return Str(v), nil
		},
	})
	Register(&Spec{
		Category: "BooleanLiteral",
		Args:     []Arg{{Name: "value"}},
		New: func(args []any) (ast.Node, error) {
			v, ok := args[0].(bool)
			if !ok {
				return nil, fmt.Errorf("%T is not a boolean value", args[0])
			}
			return Bool(v), nil
		},
	})
	Register(&Spec{
		Category: "VariableDeclarator",
		Args: []Arg{
			{Name: "target", Types: []string{"Identifier", "ArrayPattern", "ObjectPattern"}, Convert: identOrSelf},
			{Name: "init", Types: anyExpr, Default: nil, HasDefault: true},
		},
		New: func(args []any) (ast.Node, error) {
			target, err := asTarget(args[0])
			if err != nil {
				return nil, err
			}
			init, err := asExpr(args[1])
			if err != nil {
				return nil, err
			}
			return &ast.VariableDeclarator{Target: target, Initializer: init}, nil
		},
	})
	Register(&Spec{
		Category: "VariableDeclaration",
		Args: []Arg{
			{Name: "kind", Convert: toKind, Default: "var", HasDefault: true},
			{Name: "declarators", Types: []string{"VariableDeclarator"}, Multiple: true},
		},
		New: func(args []any) (ast.Node, error) {
			kind, err := toKind(args[0])
			if err != nil {
				return nil, err
			}
			decl := &ast.VariableDeclaration{Token: kind.(token.Token)}
			for _, d := range args[1].([]any) {
				vd, ok := d.(*ast.VariableDeclarator)
				if !ok {
					return nil, fmt.Errorf("%T is not a declarator", d)
				}
				decl.List = append(decl.List, *vd)
			}
			return decl, nil
		},
	})
	Register(&Spec{
		Category: "CallExpression",
		Args: []Arg{
			{Name: "callee", Types: calleeTypes, Convert: identOrSelf},
			{Name: "arguments", Types: anyExpr, Multiple: true},
		},
		New: func(args []any) (ast.Node, error) {
			callee, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			list, err := asExprs(args[1].([]any))
			if err != nil {
				return nil, err
			}
			return &ast.CallExpression{Callee: callee, ArgumentList: list}, nil
		},
	})
	Register(&Spec{
		Category: "NewExpression",
		Args: []Arg{
			{Name: "callee", Types: calleeTypes, Convert: identOrSelf},
			{Name: "arguments", Types: anyExpr, Multiple: true},
		},
		New: func(args []any) (ast.Node, error) {
			callee, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			list, err := asExprs(args[1].([]any))
			if err != nil {
				return nil, err
			}
			return &ast.NewExpression{Callee: callee, ArgumentList: list}, nil
		},
	})
	Register(&Spec{
		Category: "MemberExpression",
		Args: []Arg{
			{Name: "object", Types: calleeTypes, Convert: identOrSelf},
			{Name: "property", Types: []string{"Identifier", "StringLiteral", "NumberLiteral", "PrivateIdentifier"}, Convert: identOrSelf},
		},
		New: func(args []any) (ast.Node, error) {
			object, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			property, err := asExpr(args[1])
			if err != nil {
				return nil, err
			}
			prop := &ast.MemberProperty{}
			if ident, ok := property.Expr.(*ast.Identifier); ok {
				prop.Prop = ident
			} else {
				prop.Prop = &ast.ComputedProperty{Expr: property}
			}
			return &ast.MemberExpression{Object: object, Property: prop}, nil
		},
	})
	Register(&Spec{
		Category: "ExpressionStatement",
		Args:     []Arg{{Name: "expression", Types: anyExpr}},
		New: func(args []any) (ast.Node, error) {
			e, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			return &ast.ExpressionStatement{Expression: e}, nil
		},
	})
	Register(&Spec{
		Category: "ReturnStatement",
		Args:     []Arg{{Name: "argument", Types: anyExpr, Default: nil, HasDefault: true}},
		New: func(args []any) (ast.Node, error) {
			e, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			return &ast.ReturnStatement{Argument: e}, nil
		},
	})
	Register(&Spec{
		Category: "BlockStatement",
		Args:     []Arg{{Name: "body", Types: anyExpr, Multiple: true}},
		New: func(args []any) (ast.Node, error) {
			b := &ast.BlockStatement{}
			for _, v := range args[0].([]any) {
				s, err := asStmt(v)
				if err != nil {
					return nil, err
				}
				b.List = append(b.List, *s)
			}
			return b, nil
		},
	})
	Register(&Spec{
		Category: "IfStatement",
		Args: []Arg{
			{Name: "test", Types: anyExpr},
			{Name: "consequent", Types: anyExpr},
			{Name: "alternate", Types: anyExpr, Default: nil, HasDefault: true},
		},
		New: func(args []any) (ast.Node, error) {
			test, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			cons, err := asStmt(args[1])
			if err != nil {
				return nil, err
			}
			stmt := &ast.IfStatement{Test: test, Consequent: cons}
			if args[2] != nil {
				alt, err := asStmt(args[2])
				if err != nil {
					return nil, err
				}
				stmt.Alternate = alt
			}
			return stmt, nil
		},
	})
	Register(&Spec{
		Category: "FunctionLiteral",
		Args: []Arg{
			{Name: "name", Types: []string{"Identifier"}, Convert: identOrSelf, Default: nil, HasDefault: true},
			{Name: "params", Types: []string{"VariableDeclarator", "Identifier"}, Multiple: true},
			{Name: "body", Types: []string{"BlockStatement"}, Default: func() any { return &ast.BlockStatement{} }, HasDefault: true},
		},
		New: func(args []any) (ast.Node, error) {
			fn := &ast.FunctionLiteral{Body: args[2].(*ast.BlockStatement)}
			if args[0] != nil {
				fn.Name = args[0].(*ast.Identifier)
			}
			for _, p := range args[1].([]any) {
				switch d := p.(type) {
				case *ast.VariableDeclarator:
					fn.ParameterList.List = append(fn.ParameterList.List, *d)
				case *ast.Identifier:
					fn.ParameterList.List = append(fn.ParameterList.List, ast.VariableDeclarator{
						Target: &ast.BindingTarget{Target: d},
					})
				default:
					return nil, fmt.Errorf("%T is not a parameter", p)
				}
			}
			return fn, nil
		},
	})
	Register(&Spec{
		Category: "MethodDefinition",
		Args: []Arg{
			{Name: "key", Types: []string{"Identifier", "StringLiteral"}, Convert: identOrSelf},
			{Name: "kind", Default: ast.PropertyKindMethod, HasDefault: true},
			{Name: "body", Types: []string{"FunctionLiteral"}, Default: func() any {
				return &ast.FunctionLiteral{Body: &ast.BlockStatement{}}
			}, HasDefault: true},
			{Name: "static", Default: false, HasDefault: true},
		},
		New: func(args []any) (ast.Node, error) {
			key, err := asExpr(args[0])
			if err != nil {
				return nil, err
			}
			kind, ok := args[1].(ast.PropertyKind)
			if !ok {
				s, ok := args[1].(string)
				if !ok {
					return nil, fmt.Errorf("%T is not a method kind", args[1])
				}
				kind = ast.PropertyKind(s)
			}
			return &ast.MethodDefinition{
				Key:    key,
				Kind:   kind,
				Body:   args[2].(*ast.FunctionLiteral),
				Static: args[3].(bool),
			}, nil
		},
	})
	Register(&Spec{
		Category: "ClassLiteral",
		Args:     classArgs,
		New: func(args []any) (ast.Node, error) {
			c, err := classLiteral(args)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	})
	Register(&Spec{
		Category: "ClassDeclaration",
		Args:     classArgs,
		New: func(args []any) (ast.Node, error) {
			c, err := classLiteral(args)
			if err != nil {
				return nil, err
			}
			return &ast.ClassDeclaration{Class: c}, nil
		},
	})
}
