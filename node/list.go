package node

import (
	"fmt"

	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/astpath"
)

// List is an ordered, lazily-wrapping collection of tree positions. Element
// order is insertion/discovery order. A list with a declared element type
// wraps elements as that type on access; an untyped list infers each
// element's type from the registry.
type List struct {
	paths []*astpath.Path
	typ   *Type
	reg   *Registry
}

// NewList returns an empty list with the given declared element type (nil
// for untyped).
func NewList(t *Type) *List {
	return &List{typ: t, reg: DefaultRegistry}
}

func (l *List) wrap(p *astpath.Path) *Node {
	if l.typ != nil {
		return &Node{path: p, typ: l.typ, reg: l.reg}
	}
	return l.reg.Create(p)
}

// Size returns the number of elements.
func (l *List) Size() int { return len(l.paths) }

// First returns the first element, or nil for an empty list.
func (l *List) First() *Node {
	if len(l.paths) == 0 {
		return nil
	}
	return l.wrap(l.paths[0])
}

// Last returns the last element, or nil for an empty list.
func (l *List) Last() *Node {
	if len(l.paths) == 0 {
		return nil
	}
	return l.wrap(l.paths[len(l.paths)-1])
}

// At returns the i-th element; ErrIndexOutOfRange when i is at or beyond
// Size.
func (l *List) At(i int) (*Node, error) {
	if i < 0 || i >= len(l.paths) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l.paths))
	}
	return l.wrap(l.paths[i]), nil
}

// ForEach calls fn on every element in order.
func (l *List) ForEach(fn func(*Node)) {
	for _, p := range l.paths {
		fn(l.wrap(p))
	}
}

// Map returns a new list of the same declared type holding fn's non-nil
// results, in order.
func (l *List) Map(fn func(*Node) *Node) *List {
	out := NewList(l.typ)
	for _, p := range l.paths {
		if m := fn(l.wrap(p)); m != nil {
			out.PushPath(m.Path())
		}
	}
	return out
}

// Filter removes elements not satisfying pred from the list in place and
// returns the receiver. Callers needing the original must Copy first.
func (l *List) Filter(pred Predicate) *List {
	kept := l.paths[:0]
	for _, p := range l.paths {
		if pred(l.wrap(p)) {
			kept = append(kept, p)
		}
	}
	l.paths = kept
	return l
}

// Has reports whether any element satisfies pred.
func (l *List) Has(pred Predicate) bool {
	for _, p := range l.paths {
		if pred(l.wrap(p)) {
			return true
		}
	}
	return false
}

// Push appends a wrapper's position.
func (l *List) Push(n *Node) { l.paths = append(l.paths, n.Path()) }

// PushPath appends a position.
func (l *List) PushPath(p *astpath.Path) { l.paths = append(l.paths, p) }

// RemoveAll prunes every element from the underlying tree, not just from the
// list. Elements whose slot cannot be vacated are skipped, like
// Node.RemoveChildren.
func (l *List) RemoveAll() error {
	for i := len(l.paths) - 1; i >= 0; i-- {
		if err := l.paths[i].Prune(); err != nil {
			continue
		}
	}
	return nil
}

// Copy returns a shallow duplicate: the path sequence is copied, the
// positions are shared. Pruning through the copy still prunes the tree
// positions the original refers to.
func (l *List) Copy() *List {
	out := NewList(l.typ)
	out.paths = append(out.paths, l.paths...)
	return out
}

// Concat returns a new list holding both lists' positions in order. Lists
// with different declared element types fail with ErrTypeMismatch.
func (l *List) Concat(o *List) (*List, error) {
	if l.typ != o.typ {
		return nil, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, typeName(l.typ), typeName(o.typ))
	}
	out := NewList(l.typ)
	out.paths = append(out.paths, l.paths...)
	out.paths = append(out.paths, o.paths...)
	return out, nil
}

// Nodes returns the raw underlying nodes, bypassing the wrapper layer.
func (l *List) Nodes() []ast.Node {
	out := make([]ast.Node, len(l.paths))
	for i, p := range l.paths {
		out[i] = p.Node()
	}
	return out
}

func typeName(t *Type) string {
	if t == nil {
		return "untyped"
	}
	return t.Name
}
