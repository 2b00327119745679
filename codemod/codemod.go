// Package codemod ties the engine boundary together: parse source text into
// a wrapped tree, apply named transforms, and render the result.
package codemod

import (
	"fmt"
	"sort"

	"github.com/t14raptor/go-fast/parser"
	"go.uber.org/zap"

	"github.com/jsmorph/jsmorph/astpath"
	"github.com/jsmorph/jsmorph/node"
	"github.com/jsmorph/jsmorph/printer"
)

// Options is the opaque configuration bag forwarded to the parser boundary
// and the runner. Dialect and comment-handling knobs land here as the engine
// grows them.
type Options struct {
	Filename string
	Compact  bool
}

// Option mutates Options.
type Option func(*Options)

// WithFilename attaches a file name for diagnostics and logging.
func WithFilename(name string) Option {
	return func(o *Options) { o.Filename = name }
}

// WithCompactOutput makes Run render single-line output.
func WithCompactOutput() Option {
	return func(o *Options) { o.Compact = true }
}

// Parse converts source text into a wrapped tree rooted at the program node.
func Parse(src string, opts ...Option) (*node.Node, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	prog, err := parser.ParseFile(src)
	if err != nil {
		if o.Filename != "" {
			return nil, fmt.Errorf("parse %s: %w", o.Filename, err)
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	return node.FromPath(astpath.NewTree(prog).Path()), nil
}

// Print renders the tree a wrapper belongs to back to source text.
func Print(n *node.Node) string {
	return printer.Print(n.Root().Raw())
}

// PrintCompact renders the tree a wrapper belongs to on a single line.
func PrintCompact(n *node.Node) string {
	return printer.PrintCompact(n.Root().Raw())
}

// Transform is one codemod: a stable name and a mutation of the tree
// reachable from the root wrapper.
type Transform interface {
	Name() string
	Apply(root *node.Node) error
}

var transforms = make(map[string]Transform)

// RegisterTransform records t under its name, overwriting silently.
func RegisterTransform(t Transform) {
	transforms[t.Name()] = t
}

// LookupTransform returns the transform registered under name, or nil.
func LookupTransform(name string) Transform {
	return transforms[name]
}

// TransformNames returns the registered transform names, sorted.
func TransformNames() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Result is the outcome of one Run: the rendered output and whether any
// transform changed the tree relative to the rendered input.
type Result struct {
	Output  string
	Changed bool
}

// Run parses src, applies the transforms in order, and renders the result.
// Changed compares against the render of the unmodified tree, so formatting
// normalization alone does not count as a change.
func Run(src string, ts []Transform, log *zap.Logger, opts ...Option) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	render := Print
	if o.Compact {
		render = PrintCompact
	}

	baseline, err := Parse(src, opts...)
	if err != nil {
		return Result{}, err
	}
	before := render(baseline)

	root, err := Parse(src, opts...)
	if err != nil {
		return Result{}, err
	}
	for _, t := range ts {
		if err := t.Apply(root); err != nil {
			return Result{}, fmt.Errorf("transform %s: %w", t.Name(), err)
		}
		log.Debug("applied transform", zap.String("transform", t.Name()))
	}

	out := render(root)
	return Result{Output: out, Changed: out != before}, nil
}
