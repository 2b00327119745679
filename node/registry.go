package node

import (
	"github.com/jsmorph/jsmorph/astpath"
)

// CheckFunc decides whether a node qualifies as a richer variant of its
// syntactic category, e.g. "a class whose superclass is Component".
type CheckFunc func(*Node) bool

// Type describes a wrapper type: either a plain syntactic category (Check is
// nil, membership is the category tag) or a capability view (Check decides
// membership regardless of the tag).
type Type struct {
	Name  string
	Check CheckFunc
}

// Registry maps category and view names to wrapper types. Re-registration
// overwrites silently.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register records t under its name, overwriting any previous entry.
func (r *Registry) Register(t *Type) {
	r.types[t.Name] = t
}

// Lookup returns the type registered under name, or nil.
func (r *Registry) Lookup(name string) *Type {
	return r.types[name]
}

// Create wraps a tree position. When the position's category has a registered
// type the wrapper carries it; unknown categories degrade to a plain wrapper
// so traversal over an incompletely modeled grammar keeps working.
func (r *Registry) Create(p *astpath.Path) *Node {
	return &Node{path: p, typ: r.types[p.Category()], reg: r}
}

// Plain syntactic types for the categories codemods touch most. Richer
// capability views are registered by callers next to their check predicates.
var (
	Identifier          = &Type{Name: "Identifier"}
	PrivateIdentifier   = &Type{Name: "PrivateIdentifier"}
	NumberLiteral       = &Type{Name: "NumberLiteral"}
	StringLiteral       = &Type{Name: "StringLiteral"}
	BooleanLiteral      = &Type{Name: "BooleanLiteral"}
	NullLiteral         = &Type{Name: "NullLiteral"}
	RegExpLiteral       = &Type{Name: "RegExpLiteral"}
	TemplateLiteral     = &Type{Name: "TemplateLiteral"}
	ArrayLiteral        = &Type{Name: "ArrayLiteral"}
	ObjectLiteral       = &Type{Name: "ObjectLiteral"}
	FunctionLiteral     = &Type{Name: "FunctionLiteral"}
	ArrowFunction       = &Type{Name: "ArrowFunctionLiteral"}
	ClassLiteral        = &Type{Name: "ClassLiteral"}
	ClassDeclaration    = &Type{Name: "ClassDeclaration"}
	FunctionDeclaration = &Type{Name: "FunctionDeclaration"}
	VariableDeclaration = &Type{Name: "VariableDeclaration"}
	VariableDeclarator  = &Type{Name: "VariableDeclarator"}
	MethodDefinition    = &Type{Name: "MethodDefinition"}
	FieldDefinition     = &Type{Name: "FieldDefinition"}
	CallExpression      = &Type{Name: "CallExpression"}
	NewExpression       = &Type{Name: "NewExpression"}
	MemberExpression    = &Type{Name: "MemberExpression"}
	BinaryExpression    = &Type{Name: "BinaryExpression"}
	AssignExpression    = &Type{Name: "AssignExpression"}
	UnaryExpression     = &Type{Name: "UnaryExpression"}
	ThisExpression      = &Type{Name: "ThisExpression"}
	SequenceExpression  = &Type{Name: "SequenceExpression"}
	ExpressionStatement = &Type{Name: "ExpressionStatement"}
	BlockStatement      = &Type{Name: "BlockStatement"}
	ReturnStatement     = &Type{Name: "ReturnStatement"}
	IfStatement         = &Type{Name: "IfStatement"}
	ForStatement        = &Type{Name: "ForStatement"}
	WhileStatement      = &Type{Name: "WhileStatement"}
	SwitchStatement     = &Type{Name: "SwitchStatement"}
	ThrowStatement      = &Type{Name: "ThrowStatement"}
	TryStatement        = &Type{Name: "TryStatement"}
	DebuggerStatement   = &Type{Name: "DebuggerStatement"}
	Program             = &Type{Name: "Program"}
)

// DefaultRegistry carries the plain types above; most callers share it.
var DefaultRegistry = func() *Registry {
	r := NewRegistry()
	for _, t := range []*Type{
		Identifier, PrivateIdentifier, NumberLiteral, StringLiteral,
		BooleanLiteral, NullLiteral, RegExpLiteral, TemplateLiteral,
		ArrayLiteral, ObjectLiteral, FunctionLiteral, ArrowFunction,
		ClassLiteral, ClassDeclaration, FunctionDeclaration,
		VariableDeclaration, VariableDeclarator, MethodDefinition,
		FieldDefinition, CallExpression, NewExpression, MemberExpression,
		BinaryExpression, AssignExpression, UnaryExpression, ThisExpression,
		SequenceExpression, ExpressionStatement, BlockStatement,
		ReturnStatement, IfStatement, ForStatement, WhileStatement,
		SwitchStatement, ThrowStatement, TryStatement, DebuggerStatement,
		Program,
	} {
		r.Register(t)
	}
	return r
}()
