// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"github.com/gogpu/hlslc/lexer"
)

type bodyState uint8

const (
	bodyCode bodyState = iota
	bodyLineComment
	bodyBlockComment
	bodyString
	bodyChar
)

// bodyScanner follows raw function body text closely enough to tell code
// characters from characters inside comments and literals.
type bodyScanner struct {
	lineComment  []rune
	blockBegin   []rune
	blockEnd     []rune
	state        bodyState
	escaped      bool
	tail         []rune
	tailCapacity int
}

func newBodyScanner(opts *lexer.Options) *bodyScanner {
	s := &bodyScanner{
		lineComment: []rune(opts.SingleLineComment),
		blockBegin:  []rune(opts.MultiLineCommentBegin),
		blockEnd:    []rune(opts.MultiLineCommentEnd),
	}
	s.tailCapacity = max(len(s.lineComment), len(s.blockBegin), len(s.blockEnd))
	return s
}

// feed consumes c and returns it if it is a code character, or 0 if it
// belongs to a comment or literal.
func (s *bodyScanner) feed(c rune) rune {
	switch s.state {
	case bodyLineComment:
		if c == '\n' {
			s.enter(bodyCode)
		}
		return 0

	case bodyBlockComment:
		if s.push(c, s.blockEnd) {
			s.enter(bodyCode)
		}
		return 0

	case bodyString, bodyChar:
		quote := '"'
		if s.state == bodyChar {
			quote = '\''
		}
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == quote:
			s.enter(bodyCode)
		}
		return 0
	}

	switch {
	case c == '"':
		s.enter(bodyString)
		return 0
	case c == '\'':
		s.enter(bodyChar)
		return 0
	}
	if s.push(c, s.lineComment) {
		s.enter(bodyLineComment)
		return 0
	}
	if s.endsWith(s.blockBegin) {
		s.enter(bodyBlockComment)
		return 0
	}
	return c
}

func (s *bodyScanner) enter(st bodyState) {
	s.state = st
	s.escaped = false
	s.tail = s.tail[:0]
}

// push records c and reports whether the recorded text ends with marker.
func (s *bodyScanner) push(c rune, marker []rune) bool {
	s.tail = append(s.tail, c)
	if len(s.tail) > s.tailCapacity {
		s.tail = s.tail[1:]
	}
	return s.endsWith(marker)
}

func (s *bodyScanner) endsWith(marker []rune) bool {
	if len(marker) == 0 || len(s.tail) < len(marker) {
		return false
	}
	off := len(s.tail) - len(marker)
	for i, r := range marker {
		if s.tail[off+i] != r {
			return false
		}
	}
	return true
}
