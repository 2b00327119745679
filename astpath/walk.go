package astpath

// Action tells Walk how to proceed after visiting a position.
type Action int

const (
	// Continue descends into the visited node's children.
	Continue Action = iota
	// SkipChildren moves on to the next sibling without descending.
	SkipChildren
	// Stop halts the walk entirely.
	Stop
)

// Walk visits the subtree rooted at p in depth-first pre-order, calling fn
// for every position including p itself. Traversal order is document order;
// fn's Action controls descent and termination.
func Walk(p *Path, fn func(*Path) Action) {
	walk(p, fn)
}

func walk(p *Path, fn func(*Path) Action) Action {
	switch fn(p) {
	case Stop:
		return Stop
	case SkipChildren:
		return Continue
	}
	for _, c := range p.Children() {
		if walk(c, fn) == Stop {
			return Stop
		}
	}
	return Continue
}
