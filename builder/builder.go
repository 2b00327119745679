// Package builder constructs raw tree nodes from declarative property bags
// and child lists, driven by per-category binding specifications.
package builder

import (
	"errors"
	"fmt"

	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/astpath"
	"github.com/jsmorph/jsmorph/node"
)

var (
	// ErrUnknownCategory reports a build request for a category without a
	// registered specification.
	ErrUnknownCategory = errors.New("unknown builder category")
	// ErrMissingBinding reports a declared argument that could not be bound
	// from props, children, or a default.
	ErrMissingBinding = errors.New("missing binding")
	// ErrUnconsumedChildren reports children left over after every binding
	// rule has run; callers never silently drop structure.
	ErrUnconsumedChildren = errors.New("unconsumed children")
	// ErrBuilderFailure reports a raw-node constructor that failed.
	ErrBuilderFailure = errors.New("builder failure")
	// ErrEmptyBuilderResult reports a constructor that produced no node.
	ErrEmptyBuilderResult = errors.New("empty builder result")
)

// Converter normalizes a bound value before it reaches the constructor.
type Converter func(any) (any, error)

// Arg is one binding rule of a specification. Rules are evaluated in
// declaration order and consume from a shared child pool: a child claimed by
// one rule is unavailable to the rules after it.
type Arg struct {
	// Name binds a property of the same name when present.
	Name string
	// Types lists the child categories this argument accepts; "*" accepts
	// any. An argument with no Types never binds from children.
	Types []string
	// Multiple binds every remaining matching child (possibly none) as an
	// ordered []ast.Node instead of a single node.
	Multiple bool
	// Default is used when nothing else bound; a func() any is evaluated.
	// Only consulted when HasDefault is set, so nil is a usable default.
	Default    any
	HasDefault bool
	// Convert, when set, normalizes the bound value.
	Convert Converter
}

// Spec is the builder specification for one category: ordered binding rules
// plus the constructor invoked with the bound values in rule order.
type Spec struct {
	Category string
	Args     []Arg
	New      func(args []any) (ast.Node, error)
}

var specs = make(map[string]*Spec)

// Register records a specification under its category, overwriting any
// previous entry.
func Register(s *Spec) {
	specs[s.Category] = s
}

// Lookup returns the specification for a category, or nil.
func Lookup(category string) *Spec {
	return specs[category]
}

// Props is the property bag consulted by name before the child pool.
type Props map[string]any

// Build produces one raw node for the category from props and children.
// Children may be wrappers, raw nodes, or arbitrarily nested slices of
// either; nesting is flattened before binding begins.
func Build(category string, props Props, children ...any) (ast.Node, error) {
	spec := specs[category]
	if spec == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	pool, err := flatten(children)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBuilderFailure, category, err)
	}

	bound := make([]any, 0, len(spec.Args))
	for _, arg := range spec.Args {
		v, ok, err := bindArg(&arg, props, &pool)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrBuilderFailure, category, arg.Name, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: argument %q of %s", ErrMissingBinding, arg.Name, category)
		}
		bound = append(bound, v)
	}

	if len(pool) > 0 {
		return nil, fmt.Errorf("%w: %s left %s", ErrUnconsumedChildren, category, describe(pool))
	}

	n, err := spec.New(bound)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBuilderFailure, category, err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyBuilderResult, category)
	}
	return n, nil
}

// BuildNode is Build wrapped as a detached node wrapper, ready to traverse
// or insert.
func BuildNode(category string, props Props, children ...any) (*node.Node, error) {
	n, err := Build(category, props, children...)
	if err != nil {
		return nil, err
	}
	return node.Wrap(n), nil
}

func bindArg(arg *Arg, props Props, pool *[]ast.Node) (any, bool, error) {
	if v, ok := props[arg.Name]; ok {
		if arg.Multiple {
			// Prop-bound multi arguments take the same shape the child
			// pool produces: a flattened []any of converted nodes.
			nodes, err := flatten([]any{v})
			if err != nil {
				return nil, false, err
			}
			out := make([]any, len(nodes))
			for i, c := range nodes {
				cv, err := convert(arg, c)
				if err != nil {
					return nil, false, err
				}
				out[i] = cv
			}
			return out, true, nil
		}
		v, err := convert(arg, unwrap(v))
		return v, err == nil, err
	}
	if arg.Multiple {
		var taken []ast.Node
		var rest []ast.Node
		for _, c := range *pool {
			if accepts(arg, c) {
				taken = append(taken, c)
			} else {
				rest = append(rest, c)
			}
		}
		*pool = rest
		out := make([]any, len(taken))
		for i, c := range taken {
			v, err := convert(arg, c)
			if err != nil {
				return nil, false, err
			}
			out[i] = v
		}
		return out, true, nil
	}
	for i, c := range *pool {
		if accepts(arg, c) {
			*pool = append((*pool)[:i:i], (*pool)[i+1:]...)
			v, err := convert(arg, c)
			return v, err == nil, err
		}
	}
	if arg.HasDefault {
		if fn, ok := arg.Default.(func() any); ok {
			return fn(), true, nil
		}
		return arg.Default, true, nil
	}
	return nil, false, nil
}

func accepts(arg *Arg, c ast.Node) bool {
	cat := astpath.Category(c)
	for _, t := range arg.Types {
		if t == "*" || t == cat {
			return true
		}
	}
	return false
}

func convert(arg *Arg, v any) (any, error) {
	if arg.Convert == nil {
		return v, nil
	}
	return arg.Convert(v)
}

// unwrap lowers a wrapper to its raw node; other values pass through.
func unwrap(v any) any {
	if n, ok := v.(*node.Node); ok {
		return n.Raw()
	}
	return v
}

// flatten normalizes the variadic child list: wrappers become raw nodes,
// nested slices flatten to arbitrary depth, nils are dropped.
func flatten(children []any) ([]ast.Node, error) {
	var out []ast.Node
	var add func(v any) error
	add = func(v any) error {
		switch c := v.(type) {
		case nil:
			return nil
		case *node.Node:
			out = append(out, c.Raw())
		case *node.List:
			out = append(out, c.Nodes()...)
		case ast.Node:
			out = append(out, c)
		case []ast.Node:
			for _, e := range c {
				if err := add(e); err != nil {
					return err
				}
			}
		case []any:
			for _, e := range c {
				if err := add(e); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%T is not a node or node list", v)
		}
		return nil
	}
	for _, c := range children {
		if err := add(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func describe(pool []ast.Node) string {
	s := ""
	for i, c := range pool {
		if i > 0 {
			s += ", "
		}
		s += astpath.Category(c)
	}
	return fmt.Sprintf("%d unbound: %s", len(pool), s)
}
