package node

import (
	"errors"
	"fmt"

	"github.com/t14raptor/go-fast/ast"

	"github.com/jsmorph/jsmorph/astpath"
)

// rawOf accepts the values mutation methods take: a wrapper or a raw node.
func rawOf(v any) (ast.Node, error) {
	switch n := v.(type) {
	case *Node:
		return n.Raw(), nil
	case ast.Node:
		return n, nil
	}
	return nil, fmt.Errorf("%w: cannot place %T in a tree", astpath.ErrBadSlot, v)
}

// Replace substitutes v (a wrapper or raw node) at this position. On a tree
// root the wrapper re-roots itself onto v directly.
func (n *Node) Replace(v any) error {
	raw, err := rawOf(v)
	if err != nil {
		return err
	}
	return n.path.Replace(raw)
}

// Remove detaches this node's subtree from its parent. Removing a root is a
// no-op.
func (n *Node) Remove() error {
	if n.path.IsRoot() {
		return nil
	}
	return n.path.Prune()
}

// InsertBefore inserts v as the preceding sibling. The node must occupy a
// list-valued parent slot; otherwise astpath.ErrNotInList is returned.
func (n *Node) InsertBefore(v any) (*Node, error) {
	raw, err := rawOf(v)
	if err != nil {
		return nil, err
	}
	p, err := n.path.InsertBefore(raw)
	if err != nil {
		return nil, err
	}
	return n.child(p), nil
}

// InsertAfter inserts v as the following sibling. The node must occupy a
// list-valued parent slot; otherwise astpath.ErrNotInList is returned.
func (n *Node) InsertAfter(v any) (*Node, error) {
	raw, err := rawOf(v)
	if err != nil {
		return nil, err
	}
	p, err := n.path.InsertAfter(raw)
	if err != nil {
		return nil, err
	}
	return n.child(p), nil
}

// RemoveChildren prunes direct children satisfying pred (all children when
// pred is nil). Children in required single slots are skipped; a bulk prune
// never leaves a node grammatically incomplete.
func (n *Node) RemoveChildren(pred Predicate) error {
	children := n.path.Children()
	for i := len(children) - 1; i >= 0; i-- {
		p := children[i]
		if pred != nil && !pred(n.child(p)) {
			continue
		}
		if err := p.Prune(); err != nil {
			if errors.Is(err, astpath.ErrBadSlot) {
				continue
			}
			return err
		}
	}
	return nil
}

// RemoveDescendants prunes every descendant satisfying pred, at any depth.
// Matches are collected in one pre-order pass and pruned deepest-last so
// list indices stay coherent; a pruned match's own descendants are not
// visited.
func (n *Node) RemoveDescendants(pred Predicate) error {
	var matches []*astpath.Path
	astpath.Walk(n.path, func(p *astpath.Path) astpath.Action {
		if p == n.path {
			return astpath.Continue
		}
		if pred(n.child(p)) {
			matches = append(matches, p)
			return astpath.SkipChildren
		}
		return astpath.Continue
	})
	for i := len(matches) - 1; i >= 0; i-- {
		if err := matches[i].Prune(); err != nil {
			if errors.Is(err, astpath.ErrBadSlot) || errors.Is(err, astpath.ErrDetached) {
				continue
			}
			return err
		}
	}
	return nil
}
