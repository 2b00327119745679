package astpath

import (
	"errors"
	"fmt"

	"github.com/t14raptor/go-fast/ast"
)

var (
	// ErrBadSlot reports a slot access that the parent's grammar does not
	// permit: unknown field, out-of-range index, or an incompatible node.
	ErrBadSlot = errors.New("bad slot")
	// ErrNotInList reports a sibling insertion against a node whose parent
	// slot is not list-valued.
	ErrNotInList = errors.New("node is not in a list slot")
	// ErrDetached reports a path whose position no longer exists in the tree.
	ErrDetached = errors.New("path is detached from the tree")
)

// Tree owns the root of a raw AST and a generation counter. Every structural
// edit bumps the generation; a Path carrying an older generation is stale and
// must be repaired before it can be trusted again.
type Tree struct {
	root ast.Node
	gen  uint64
}

// NewTree wraps an already-parsed root node.
func NewTree(root ast.Node) *Tree {
	return &Tree{root: root, gen: 1}
}

// Root returns the current root node.
func (t *Tree) Root() ast.Node { return t.root }

// Generation returns the current mutation generation.
func (t *Tree) Generation() uint64 { return t.gen }

func (t *Tree) bump() { t.gen++ }

// Path returns a path addressing the tree root.
func (t *Tree) Path() *Path {
	return &Path{tree: t, node: t.root, index: -1, gen: t.gen}
}

// Path identifies one tree position: the node occupying it, the chain of
// ancestors above it, and the slot (parent field plus list index) it fills.
// A path is a view; it owns no tree data and aliases freely.
type Path struct {
	tree   *Tree
	parent *Path
	field  string
	index  int // -1 for single-valued slots
	node   ast.Node

	gen    uint64
	pruned bool
}

// Node returns the raw node at this position.
func (p *Path) Node() ast.Node { return p.node }

// Parent returns the parent path, or nil at the root.
func (p *Path) Parent() *Path { return p.parent }

// Field returns the parent slot's field name; empty at the root.
func (p *Path) Field() string { return p.field }

// Index returns the position within a list-valued parent slot, -1 otherwise.
func (p *Path) Index() int { return p.index }

// Tree returns the owning tree.
func (p *Path) Tree() *Tree { return p.tree }

// IsRoot reports whether the path has no parent.
func (p *Path) IsRoot() bool { return p.parent == nil }

// Category returns the syntactic category of the node at this position.
func (p *Path) Category() string { return Category(p.node) }

// Stale reports whether a structural edit has happened elsewhere in the tree
// since this path was created or last repaired. A stale path may still point
// at the right node; Repair re-resolves it.
func (p *Path) Stale() bool {
	return p.pruned || p.gen != p.tree.gen
}

// Repair re-resolves the path against the mutated tree, preferring node
// identity over slot position. It fails with ErrDetached when the position
// has been pruned.
func (p *Path) Repair() error {
	if p.pruned {
		return fmt.Errorf("%w: node was pruned", ErrDetached)
	}
	if p.parent == nil {
		p.node = p.tree.root
		p.gen = p.tree.gen
		return nil
	}
	if err := p.parent.Repair(); err != nil {
		return err
	}
	for _, s := range ChildSlots(p.parent.node) {
		if s.Node == p.node {
			p.field, p.index = s.Field, s.Index
			p.gen = p.tree.gen
			return nil
		}
	}
	// Value-struct list elements change address when their slice is copied,
	// so identity can miss; fall back to the recorded slot.
	if n, err := ResolveSlot(p.parent.node, p.field, p.index); err == nil {
		p.node = n
		p.gen = p.tree.gen
		return nil
	}
	return fmt.Errorf("%w: %s.%s no longer resolves", ErrDetached, p.parent.Category(), p.field)
}

// refresh marks the path and its ancestors current after an edit through it.
func (p *Path) refresh() {
	for q := p; q != nil; q = q.parent {
		q.gen = p.tree.gen
	}
}

// ensureCurrent repairs the path before a write goes through it. Value-struct
// list elements move when a sibling edit reallocates their slice; writing
// through a stale ancestor chain would mutate a detached copy and the edit
// would be silently lost.
func (p *Path) ensureCurrent() error {
	if !p.Stale() {
		return nil
	}
	return p.Repair()
}

// Child resolves a direct child position by slot.
func (p *Path) Child(field string, index int) (*Path, error) {
	n, err := ResolveSlot(p.node, field, index)
	if err != nil {
		return nil, err
	}
	return &Path{tree: p.tree, parent: p, field: field, index: index, node: n, gen: p.gen}, nil
}

// Children returns paths for every structural child, in field order.
func (p *Path) Children() []*Path {
	slots := ChildSlots(p.node)
	out := make([]*Path, 0, len(slots))
	for _, s := range slots {
		out = append(out, &Path{tree: p.tree, parent: p, field: s.Field, index: s.Index, node: s.Node, gen: p.gen})
	}
	return out
}

// InList reports whether this position occupies a list-valued parent slot.
func (p *Path) InList() bool {
	return p.parent != nil && p.index >= 0
}

// Replace substitutes n at this position. At the root the tree re-roots onto
// n directly. Descendant paths of the old node become stale.
func (p *Path) Replace(n ast.Node) error {
	if p.parent == nil {
		p.tree.root = n
		p.node = n
		p.tree.bump()
		p.refresh()
		return nil
	}
	if err := p.ensureCurrent(); err != nil {
		return err
	}
	if err := WriteSlot(p.parent.node, p.field, p.index, n); err != nil {
		return err
	}
	p.node = n
	p.tree.bump()
	p.refresh()
	return nil
}

// Prune detaches this position from its parent. The path itself becomes
// permanently detached; sibling paths after a removed list element become
// stale and repairable.
func (p *Path) Prune() error {
	if p.parent == nil {
		return fmt.Errorf("%w: cannot prune the root", ErrBadSlot)
	}
	if err := p.ensureCurrent(); err != nil {
		return err
	}
	if err := DeleteSlot(p.parent.node, p.field, p.index); err != nil {
		return err
	}
	p.tree.bump()
	p.parent.refresh()
	p.pruned = true
	return nil
}

// InsertBefore inserts n as the preceding sibling of this position, which
// must occupy a list-valued slot; otherwise ErrNotInList is returned.
func (p *Path) InsertBefore(n ast.Node) (*Path, error) {
	return p.insertAt(n, 0)
}

// InsertAfter inserts n as the following sibling of this position, which
// must occupy a list-valued slot; otherwise ErrNotInList is returned.
func (p *Path) InsertAfter(n ast.Node) (*Path, error) {
	return p.insertAt(n, 1)
}

func (p *Path) insertAt(n ast.Node, offset int) (*Path, error) {
	if !p.InList() {
		return nil, fmt.Errorf("%w: %s in %s.%s", ErrNotInList, p.Category(), Category(parentNode(p)), p.field)
	}
	if err := p.ensureCurrent(); err != nil {
		return nil, err
	}
	at := p.index + offset
	if err := InsertSlot(p.parent.node, p.field, at, n); err != nil {
		return nil, err
	}
	p.tree.bump()
	if offset == 0 {
		p.index++
	}
	p.refresh()
	np := &Path{tree: p.tree, parent: p.parent, field: p.field, index: at, node: n, gen: p.tree.gen}
	return np, nil
}

func parentNode(p *Path) ast.Node {
	if p.parent == nil {
		return nil
	}
	return p.parent.node
}
