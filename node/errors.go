package node

import "errors"

var (
	// ErrUncastableType reports a CastTo against a type that has no
	// capability check predicate.
	ErrUncastableType = errors.New("uncastable type")
	// ErrIndexOutOfRange reports a List index at or beyond its size.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrTypeMismatch reports concatenation of lists with different declared
	// element types.
	ErrTypeMismatch = errors.New("type mismatch")
)
