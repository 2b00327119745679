// Package node implements the typed, navigable wrapper over a parsed tree:
// querying, casting, structural mutation and rendering, without touching raw
// tree plumbing at call sites.
package node

import (
	"fmt"

	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/astpath"
	"github.com/jsmorph/jsmorph/printer"
)

// Node is a typed handle over one tree position. It is a view: it owns no
// tree data, aliases freely, and mutation through any wrapper is immediately
// visible through every other wrapper into the same subtree.
type Node struct {
	path *astpath.Path
	typ  *Type // view the node was created or cast as; nil for plain
	reg  *Registry
}

// Wrap roots a raw node in a fresh tree and returns its wrapper. A subtree
// wrapped this way is its own root until it is inserted somewhere.
func Wrap(n ast.Node) *Node {
	return DefaultRegistry.Create(astpath.NewTree(n).Path())
}

// FromPath wraps an existing tree position using the default registry.
func FromPath(p *astpath.Path) *Node {
	return DefaultRegistry.Create(p)
}

func (n *Node) child(p *astpath.Path) *Node {
	return n.reg.Create(p)
}

// Category returns the syntactic tag of the underlying node.
func (n *Node) Category() string { return n.path.Category() }

// Raw returns the underlying raw node, bypassing the wrapper layer.
func (n *Node) Raw() ast.Node { return n.path.Node() }

// Path returns the underlying tree position.
func (n *Node) Path() *astpath.Path { return n.path }

// Type returns the view the node currently carries, or nil.
func (n *Node) Type() *Type { return n.typ }

// Stale reports whether a structural edit elsewhere has outdated this
// wrapper's position; see Repair.
func (n *Node) Stale() bool { return n.path.Stale() }

// Repair re-resolves the wrapper's position against the mutated tree.
func (n *Node) Repair() error { return n.path.Repair() }

// Render delegates to the printer and returns indented source text.
func (n *Node) Render() string { return printer.Print(n.Raw()) }

// RenderCompact returns single-line source text for terse assertions.
func (n *Node) RenderCompact() string { return printer.PrintCompact(n.Raw()) }

// Is reports instanceof-style membership: the node was created or cast as t,
// or its category tag is t's name.
func (n *Node) Is(t *Type) bool {
	return n.typ == t || n.Category() == t.Name
}

// CanCastTo reports whether the node qualifies as t: direct membership, or
// t's check predicate accepting it.
func (n *Node) CanCastTo(t *Type) bool {
	if n.Is(t) {
		return true
	}
	return t.Check != nil && t.Check(n)
}

// CastTo reinterprets the node as t without copying or mutating the tree.
// A node already a member of t is returned as is. For any other type that
// carries a check predicate the cast succeeds regardless of the predicate's
// verdict; CanCastTo is the advisory check to run first. Casting to a type
// without a predicate fails with ErrUncastableType.
func (n *Node) CastTo(t *Type) (*Node, error) {
	if n.Is(t) {
		return n, nil
	}
	if t.Check == nil {
		return nil, fmt.Errorf("%w: %s has no check predicate", ErrUncastableType, t.Name)
	}
	return &Node{path: n.path, typ: t, reg: n.reg}, nil
}

// matches implements the type-membership test traversal filters use: the
// check predicate when the type declares one, the category tag otherwise.
func (n *Node) matches(t *Type) bool {
	if t.Check != nil {
		return t.Check(n)
	}
	return n.Category() == t.Name
}

// Predicate filters nodes during traversal.
type Predicate func(*Node) bool

// Descend returns the first node strictly below this one, in pre-order,
// satisfying pred (any node when pred is nil). The walk short-circuits at
// the match; nothing beneath or after it is visited. Returns nil when no
// node matches.
func (n *Node) Descend(pred Predicate) *Node {
	var found *Node
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path {
			return astpath.Continue
		}
		c := n.child(p)
		if pred == nil || pred(c) {
			found = c
			return astpath.Stop
		}
		return astpath.Continue
	})
	return found
}

// FindChildren returns every descendant satisfying pred, in pre-order,
// descending past matches. The node itself is only considered when
// includeSelf is set.
func (n *Node) FindChildren(pred Predicate, includeSelf bool) *List {
	out := NewList(nil)
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path && !includeSelf {
			return astpath.Continue
		}
		if c := n.child(p); pred == nil || pred(c) {
			out.PushPath(p)
		}
		return astpath.Continue
	})
	return out
}

// FindFirstChildOfType returns the first descendant that is a t (capability
// semantics) and satisfies pred, upgraded to t, or nil.
func (n *Node) FindFirstChildOfType(t *Type, pred Predicate, includeSelf bool) *Node {
	var found *Node
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path && !includeSelf {
			return astpath.Continue
		}
		c := n.child(p)
		if c.matches(t) && (pred == nil || pred(c)) {
			found, _ = c.CastTo(t)
			return astpath.Stop
		}
		return astpath.Continue
	})
	return found
}

// FindChildrenOfType returns every descendant that is a t and satisfies
// pred, as a list typed t.
func (n *Node) FindChildrenOfType(t *Type, pred Predicate, includeSelf bool) *List {
	out := NewList(t)
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path && !includeSelf {
			return astpath.Continue
		}
		if c := n.child(p); c.matches(t) && (pred == nil || pred(c)) {
			out.PushPath(p)
		}
		return astpath.Continue
	})
	return out
}

// FindChildrenOfTypes returns every descendant matching any of the given
// types and satisfying pred, as an untyped list.
func (n *Node) FindChildrenOfTypes(types []*Type, pred Predicate, includeSelf bool) *List {
	out := NewList(nil)
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path && !includeSelf {
			return astpath.Continue
		}
		c := n.child(p)
		for _, t := range types {
			if c.matches(t) && (pred == nil || pred(c)) {
				out.PushPath(p)
				break
			}
		}
		return astpath.Continue
	})
	return out
}

// Ascend walks the ancestor chain and returns the first ancestor satisfying
// pred, the immediate parent when pred is nil, or nil.
func (n *Node) Ascend(pred Predicate) *Node {
	for p := n.path.Parent(); p != nil; p = p.Parent() {
		c := n.child(p)
		if pred == nil || pred(c) {
			return c
		}
	}
	return nil
}

// Parent returns the immediate parent, or nil at the root.
func (n *Node) Parent() *Node {
	return n.Ascend(nil)
}

// FindParentOfType returns the immediate parent upgraded to t when it is a
// t, nil otherwise.
func (n *Node) FindParentOfType(t *Type) *Node {
	p := n.Parent()
	if p == nil || !p.matches(t) {
		return nil
	}
	cast, _ := p.CastTo(t)
	return cast
}

// FindClosestParentOfType ascends until an ancestor is a t and returns it
// upgraded to t, or nil.
func (n *Node) FindClosestParentOfType(t *Type) *Node {
	p := n.Ascend(func(c *Node) bool { return c.matches(t) })
	if p == nil {
		return nil
	}
	cast, _ := p.CastTo(t)
	return cast
}

// FindClosestScope returns the nearest enclosing lexical scope boundary, as
// recognized by the path engine, or nil for a detached fragment.
func (n *Node) FindClosestScope() *Node {
	return n.Ascend(func(c *Node) bool { return astpath.IsScopeBoundary(c.Raw()) })
}

// Root walks to the top of the tree this node hangs off. A node with no
// parent, including a freshly built subtree, is its own root.
func (n *Node) Root() *Node {
	if top := n.Ascend(func(c *Node) bool { return c.Path().IsRoot() }); top != nil {
		return top
	}
	return n
}

// Children returns the direct structural children in traversal order.
func (n *Node) Children() *List {
	out := NewList(nil)
	for _, p := range n.path.Children() {
		out.PushPath(p)
	}
	return out
}
