package printer

import (
	"strings"
)

type state struct {
	out     *strings.Builder
	node    any
	parent  *state
	indent  int
	compact bool
}

func (s *state) wrap(node any) *state {
	return &state{
		out:     s.out,
		node:    node,
		parent:  s,
		indent:  s.indent,
		compact: s.compact,
	}
}

func (s *state) line() {
	if s.compact {
		s.out.WriteString(" ")
		return
	}
	s.out.WriteString("\n")
}

func (s *state) lineAndPad() {
	s.line()
	if !s.compact {
		s.out.WriteString(strings.Repeat("    ", s.indent))
	}
}
