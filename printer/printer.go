// Package printer renders a go-fast AST back to JavaScript source text.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/t14raptor/go-fast/ast"
)

// Print renders node as indented source text, one statement per line.
func Print(node ast.Node) string {
	s := &state{
		out:    &strings.Builder{},
		node:   node,
		parent: &state{},
	}
	gen(s)
	return s.out.String()
}

// PrintCompact renders node on a single line with minimal whitespace, for
// terse assertions and diffs.
func PrintCompact(node ast.Node) string {
	s := &state{
		out:     &strings.Builder{},
		node:    node,
		parent:  &state{compact: true},
		compact: true,
	}
	gen(s)
	return strings.TrimSpace(s.out.String())
}

func gen(s *state) {
	switch n := s.node.(type) {
	case nil:
	case *ast.Program:
		for _, b := range n.Body {
			gen(s.wrap(b.Stmt))
			s.line()
		}
	case *ast.BlockStatement:
		if len(n.List) == 0 {
			s.out.WriteString("{}")
			return
		}
		s.out.WriteString("{")
		s.indent++
		for _, st := range n.List {
			s.lineAndPad()
			gen(s.wrap(st.Stmt))
		}
		s.indent--
		s.lineAndPad()
		s.out.WriteString("}")
	case *ast.EmptyStatement:
		s.out.WriteString(";")
	case *ast.DebuggerStatement:
		s.out.WriteString("debugger;")
	case *ast.ExpressionStatement:
		gen(s.wrap(n.Expression.Expr))
		s.out.WriteString(";")
		if len(n.Comment) > 0 && !s.compact {
			s.out.WriteString(" // " + n.Comment)
		}
	case *ast.VariableDeclaration:
		genVarDecl(s, n, true)
	case *ast.VariableDeclarator:
		gen(s.wrap(n.Target.Target))
		if n.Initializer != nil {
			s.out.WriteString(" = ")
			gen(s.wrap(n.Initializer.Expr))
		}
	case *ast.FunctionDeclaration:
		gen(s.wrap(n.Function))
	case *ast.ClassDeclaration:
		gen(s.wrap(n.Class))
	case *ast.FunctionLiteral:
		if n.Async {
			s.out.WriteString("async ")
		}
		s.out.WriteString("function")
		if n.Generator {
			s.out.WriteString("*")
		}
		if n.Name != nil {
			s.out.WriteString(" " + n.Name.Name)
		}
		genParams(s, &n.ParameterList)
		s.out.WriteString(" ")
		gen(s.wrap(n.Body))
	case *ast.ArrowFunctionLiteral:
		if n.Async {
			s.out.WriteString("async ")
		}
		genParams(s, &n.ParameterList)
		s.out.WriteString(" => ")
		switch body := n.Body.Body.(type) {
		case *ast.Expression:
			gen(s.wrap(body.Expr))
		default:
			gen(s.wrap(body))
		}
	case *ast.ParameterList:
		genParams(s, n)
	case *ast.ClassLiteral:
		s.out.WriteString("class")
		if n.Name != nil {
			s.out.WriteString(" " + n.Name.Name)
		}
		if n.SuperClass != nil {
			s.out.WriteString(" extends ")
			gen(s.wrap(n.SuperClass.Expr))
		}
		if len(n.Body) == 0 {
			s.out.WriteString(" {}")
			return
		}
		s.out.WriteString(" {")
		s.indent++
		for i := range n.Body {
			s.lineAndPad()
			gen(s.wrap(&n.Body[i]))
		}
		s.indent--
		s.lineAndPad()
		s.out.WriteString("}")
	case *ast.ClassElement:
		gen(s.wrap(n.Element.(ast.Node)))
	case *ast.MethodDefinition:
		if n.Static {
			s.out.WriteString("static ")
		}
		if n.Kind == ast.PropertyKindGet || n.Kind == ast.PropertyKindSet {
			s.out.WriteString(string(n.Kind) + " ")
		}
		if n.Body != nil && n.Body.Async {
			s.out.WriteString("async ")
		}
		if n.Body != nil && n.Body.Generator {
			s.out.WriteString("*")
		}
		genKey(s, n.Key, n.Computed)
		genParams(s, &n.Body.ParameterList)
		s.out.WriteString(" ")
		gen(s.wrap(n.Body.Body))
	case *ast.FieldDefinition:
		if n.Static {
			s.out.WriteString("static ")
		}
		genKey(s, n.Key, n.Computed)
		if n.Initializer != nil {
			s.out.WriteString(" = ")
			gen(s.wrap(n.Initializer.Expr))
		}
		s.out.WriteString(";")
	case *ast.ClassStaticBlock:
		s.out.WriteString("static ")
		gen(s.wrap(n.Block))
	case *ast.ReturnStatement:
		s.out.WriteString("return")
		if n.Argument != nil {
			s.out.WriteString(" ")
			gen(s.wrap(n.Argument.Expr))
		}
		s.out.WriteString(";")
	case *ast.ThrowStatement:
		s.out.WriteString("throw ")
		gen(s.wrap(n.Argument.Expr))
		s.out.WriteString(";")
	case *ast.BreakStatement:
		s.out.WriteString("break")
		if n.Label != nil {
			s.out.WriteString(" " + n.Label.Name)
		}
		s.out.WriteString(";")
	case *ast.ContinueStatement:
		s.out.WriteString("continue")
		if n.Label != nil {
			s.out.WriteString(" " + n.Label.Name)
		}
		s.out.WriteString(";")
	case *ast.LabelledStatement:
		s.out.WriteString(n.Label.Name + ": ")
		gen(s.wrap(n.Statement.Stmt))
	case *ast.IfStatement:
		s.out.WriteString("if (")
		gen(s.wrap(n.Test.Expr))
		s.out.WriteString(") ")
		gen(s.wrap(n.Consequent.Stmt))
		if n.Alternate != nil {
			s.out.WriteString(" else ")
			gen(s.wrap(n.Alternate.Stmt))
		}
	case *ast.SwitchStatement:
		s.out.WriteString("switch (")
		gen(s.wrap(n.Discriminant.Expr))
		s.out.WriteString(") {")
		s.indent++
		for i := range n.Body {
			s.lineAndPad()
			gen(s.wrap(&n.Body[i]))
		}
		s.indent--
		if len(n.Body) > 0 {
			s.lineAndPad()
		}
		s.out.WriteString("}")
	case *ast.CaseStatement:
		if n.Test != nil {
			s.out.WriteString("case ")
			gen(s.wrap(n.Test.Expr))
			s.out.WriteString(": ")
		} else {
			s.out.WriteString("default: ")
		}
		for i := range n.Consequent {
			if i > 0 {
				s.out.WriteString(" ")
			}
			gen(s.wrap(n.Consequent[i].Stmt))
		}
	case *ast.TryStatement:
		s.out.WriteString("try ")
		gen(s.wrap(n.Body))
		if n.Catch != nil {
			s.out.WriteString(" catch ")
			if n.Catch.Parameter != nil {
				s.out.WriteString("(")
				gen(s.wrap(n.Catch.Parameter.Target))
				s.out.WriteString(") ")
			}
			gen(s.wrap(n.Catch.Body))
		}
		if n.Finally != nil {
			s.out.WriteString(" finally ")
			gen(s.wrap(n.Finally))
		}
	case *ast.WhileStatement:
		s.out.WriteString("while (")
		gen(s.wrap(n.Test.Expr))
		s.out.WriteString(") ")
		gen(s.wrap(n.Body.Stmt))
	case *ast.DoWhileStatement:
		s.out.WriteString("do ")
		gen(s.wrap(n.Body.Stmt))
		s.out.WriteString(" while (")
		gen(s.wrap(n.Test.Expr))
		s.out.WriteString(");")
	case *ast.WithStatement:
		s.out.WriteString("with (")
		gen(s.wrap(n.Object.Expr))
		s.out.WriteString(") ")
		gen(s.wrap(n.Body.Stmt))
	case *ast.ForStatement:
		s.out.WriteString("for (")
		if n.Initializer != nil {
			genForInit(s, n.Initializer.Initializer)
		}
		s.out.WriteString("; ")
		if n.Test != nil {
			gen(s.wrap(n.Test.Expr))
		}
		s.out.WriteString("; ")
		if n.Update != nil {
			gen(s.wrap(n.Update.Expr))
		}
		s.out.WriteString(") ")
		gen(s.wrap(n.Body.Stmt))
	case *ast.ForInStatement:
		genForInOf(s, n.Into, n.Source, n.Body, "in")
	case *ast.ForOfStatement:
		genForInOf(s, n.Into, n.Source, n.Body, "of")
	case *ast.Identifier:
		s.out.WriteString(n.Name)
	case *ast.PrivateIdentifier:
		s.out.WriteString("#" + n.Identifier.Name)
	case *ast.NumberLiteral:
		if n.Raw != nil {
			s.out.WriteString(*n.Raw)
		} else {
			s.out.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
		}
	case *ast.StringLiteral:
		if n.Raw != nil {
			s.out.WriteString(*n.Raw)
		} else {
			s.out.WriteString(strconv.Quote(n.Value))
		}
	case *ast.BooleanLiteral:
		s.out.WriteString(strconv.FormatBool(n.Value))
	case *ast.NullLiteral:
		s.out.WriteString("null")
	case *ast.RegExpLiteral:
		s.out.WriteString(n.Literal)
	case *ast.TemplateLiteral:
		if n.Tag != nil {
			gen(s.wrap(n.Tag.Expr))
		}
		s.out.WriteString("`")
		for i := range n.Elements {
			s.out.WriteString(n.Elements[i].Literal)
			if i < len(n.Expressions) {
				s.out.WriteString("${")
				gen(s.wrap(n.Expressions[i].Expr))
				s.out.WriteString("}")
			}
		}
		s.out.WriteString("`")
	case *ast.ThisExpression:
		s.out.WriteString("this")
	case *ast.SuperExpression:
		s.out.WriteString("super")
	case *ast.MetaProperty:
		s.out.WriteString(n.Meta.Name + "." + n.Property.Name)
	case *ast.SpreadElement:
		s.out.WriteString("...")
		gen(s.wrap(n.Expression.Expr))
	case *ast.SequenceExpression:
		switch s.parent.node.(type) {
		case *ast.BinaryExpression, *ast.ConditionalExpression, *ast.AssignExpression, *ast.CallExpression:
			s.out.WriteString("(")
			defer s.out.WriteString(")")
		}
		for i, e := range n.Sequence {
			gen(s.wrap(e.Expr))
			if i < len(n.Sequence)-1 {
				s.out.WriteString(", ")
			}
		}
	case *ast.UnaryExpression:
		s.out.WriteString(n.Operator.String())
		if len(n.Operator.String()) > 2 {
			s.out.WriteString(" ")
		}
		switch n.Operand.Expr.(type) {
		case *ast.BinaryExpression, *ast.ConditionalExpression, *ast.AssignExpression, *ast.UnaryExpression:
			s.out.WriteString("(")
			gen(s.wrap(n.Operand.Expr))
			s.out.WriteString(")")
		default:
			gen(s.wrap(n.Operand.Expr))
		}
	case *ast.UpdateExpression:
		if !n.Postfix {
			s.out.WriteString(n.Operator.String())
		}
		gen(s.wrap(n.Operand.Expr))
		if n.Postfix {
			s.out.WriteString(n.Operator.String())
		}
	case *ast.BinaryExpression:
		if pn, ok := s.parent.node.(*ast.BinaryExpression); ok {
			prec := n.Operator.Precedence(true)
			parentPrec := pn.Operator.Precedence(true)
			if prec < parentPrec || prec == parentPrec && pn.Right.Expr == n {
				s.out.WriteString("(")
				defer s.out.WriteString(")")
			}
		}
		gen(s.wrap(n.Left.Expr))
		s.out.WriteString(" " + n.Operator.String() + " ")
		gen(s.wrap(n.Right.Expr))
	case *ast.AssignExpression:
		if _, ok := s.parent.node.(*ast.BinaryExpression); ok {
			s.out.WriteString("(")
			defer s.out.WriteString(")")
		}
		gen(s.wrap(n.Left.Expr))
		s.out.WriteString(" " + n.Operator.String() + " ")
		gen(s.wrap(n.Right.Expr))
	case *ast.ConditionalExpression:
		if _, ok := s.parent.node.(*ast.BinaryExpression); ok {
			s.out.WriteString("(")
			defer s.out.WriteString(")")
		}
		gen(s.wrap(n.Test.Expr))
		s.out.WriteString(" ? ")
		gen(s.wrap(n.Consequent.Expr))
		s.out.WriteString(" : ")
		gen(s.wrap(n.Alternate.Expr))
	case *ast.CallExpression:
		if _, ok := n.Callee.Expr.(*ast.FunctionLiteral); ok {
			s.out.WriteString("(")
			gen(s.wrap(n.Callee.Expr))
			s.out.WriteString(")")
		} else {
			gen(s.wrap(n.Callee.Expr))
		}
		genArgs(s, n.ArgumentList)
	case *ast.NewExpression:
		s.out.WriteString("new ")
		gen(s.wrap(n.Callee.Expr))
		genArgs(s, n.ArgumentList)
	case *ast.MemberExpression:
		gen(s.wrap(n.Object.Expr))
		switch prop := n.Property.Prop.(type) {
		case *ast.Identifier:
			s.out.WriteString("." + prop.Name)
		case *ast.ComputedProperty:
			s.out.WriteString("[")
			gen(s.wrap(prop.Expr.Expr))
			s.out.WriteString("]")
		default:
			s.out.WriteString("[")
			gen(s.wrap(n.Property.Prop))
			s.out.WriteString("]")
		}
	case *ast.ComputedProperty:
		s.out.WriteString("[")
		gen(s.wrap(n.Expr.Expr))
		s.out.WriteString("]")
	case *ast.PrivateDotExpression:
		gen(s.wrap(n.Left.Expr))
		s.out.WriteString(".#" + n.Identifier.Identifier.Name)
	case *ast.OptionalChain:
		gen(s.wrap(n.Base.Expr))
	case *ast.Optional:
		gen(s.wrap(n.Expr.Expr))
	case *ast.YieldExpression:
		s.out.WriteString("yield")
		if n.Delegate {
			s.out.WriteString("*")
		}
		if n.Argument != nil {
			s.out.WriteString(" ")
			gen(s.wrap(n.Argument.Expr))
		}
	case *ast.AwaitExpression:
		s.out.WriteString("await ")
		gen(s.wrap(n.Argument.Expr))
	case *ast.ArrayLiteral:
		s.out.WriteString("[")
		for i, ex := range n.Value {
			if ex.Expr != nil {
				gen(s.wrap(ex.Expr))
			}
			if i < len(n.Value)-1 {
				s.out.WriteString(", ")
			}
		}
		s.out.WriteString("]")
	case *ast.ArrayPattern:
		s.out.WriteString("[")
		for i, ex := range n.Elements {
			if ex.Expr != nil {
				gen(s.wrap(ex.Expr))
			}
			if i < len(n.Elements)-1 {
				s.out.WriteString(", ")
			}
		}
		if n.Rest != nil {
			s.out.WriteString(", ...")
			gen(s.wrap(n.Rest.Expr))
		}
		s.out.WriteString("]")
	case *ast.ObjectLiteral:
		if len(n.Value) == 0 {
			s.out.WriteString("{}")
			return
		}
		s.out.WriteString("{")
		s.indent++
		for i := range n.Value {
			s.lineAndPad()
			gen(s.wrap(n.Value[i].Prop.(ast.Node)))
			if i < len(n.Value)-1 {
				s.out.WriteString(",")
			}
		}
		s.indent--
		s.lineAndPad()
		s.out.WriteString("}")
	case *ast.ObjectPattern:
		s.out.WriteString("{")
		for i := range n.Properties {
			if i > 0 {
				s.out.WriteString(", ")
			}
			gen(s.wrap(n.Properties[i].Prop.(ast.Node)))
		}
		if n.Rest != nil {
			s.out.WriteString(", ...")
			gen(s.wrap(n.Rest))
		}
		s.out.WriteString("}")
	case *ast.PropertyShort:
		s.out.WriteString(n.Name.Name)
		if n.Initializer != nil {
			s.out.WriteString(" = ")
			gen(s.wrap(n.Initializer.Expr))
		}
	case *ast.PropertyKeyed:
		genKey(s, n.Key, n.Computed)
		s.out.WriteString(": ")
		gen(s.wrap(n.Value.Expr))
	default:
		panic(fmt.Sprintf("printer: unexpected node type %T", n))
	}
}

func genVarDecl(s *state, n *ast.VariableDeclaration, semicolon bool) {
	s.out.WriteString(n.Token.String() + " ")
	for i := range n.List {
		gen(s.wrap(&n.List[i]))
		if i < len(n.List)-1 {
			s.out.WriteString(", ")
		}
	}
	if semicolon {
		s.out.WriteString(";")
		if len(n.Comment) > 0 && !s.compact {
			s.out.WriteString(" // " + n.Comment)
		}
	}
}

func genForInit(s *state, init ast.ForLoopInit) {
	switch n := init.(type) {
	case *ast.VariableDeclaration:
		genVarDecl(s, n, false)
	case *ast.Expression:
		gen(s.wrap(n.Expr))
	}
}

func genForInOf(s *state, into *ast.ForInto, source *ast.Expression, body *ast.Statement, op string) {
	s.out.WriteString("for (")
	switch n := into.Into.(type) {
	case *ast.VariableDeclaration:
		genVarDecl(s, n, false)
	case *ast.Expression:
		gen(s.wrap(n.Expr))
	}
	s.out.WriteString(" " + op + " ")
	gen(s.wrap(source.Expr))
	s.out.WriteString(") ")
	gen(s.wrap(body.Stmt))
}

func genParams(s *state, pl *ast.ParameterList) {
	s.out.WriteString("(")
	for i := range pl.List {
		gen(s.wrap(&pl.List[i]))
		if i < len(pl.List)-1 {
			s.out.WriteString(", ")
		}
	}
	if pl.Rest != nil {
		if len(pl.List) > 0 {
			s.out.WriteString(", ")
		}
		s.out.WriteString("...")
		gen(s.wrap(pl.Rest))
	}
	s.out.WriteString(")")
}

func genArgs(s *state, args ast.Expressions) {
	s.out.WriteString("(")
	for i, a := range args {
		gen(s.wrap(a.Expr))
		if i < len(args)-1 {
			s.out.WriteString(", ")
		}
	}
	s.out.WriteString(")")
}

func genKey(s *state, key *ast.Expression, computed bool) {
	if computed {
		s.out.WriteString("[")
		gen(s.wrap(key.Expr))
		s.out.WriteString("]")
		return
	}
	gen(s.wrap(key.Expr))
}
