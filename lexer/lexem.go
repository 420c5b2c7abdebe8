// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"fmt"
	"strings"

	"modernc.org/token"
)

// ContentType classifies a Lexem.
type ContentType uint8

const (
	Unknown ContentType = iota
	Identifier
	Keyword
	Operator
	Comment
	ConstantString
	ConstantChar
	ConstantInteger
	ConstantFloat
	EndOfStream
)

// String returns the name of the content type.
func (t ContentType) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case Operator:
		return "Operator"
	case Comment:
		return "Comment"
	case ConstantString:
		return "ConstantString"
	case ConstantChar:
		return "ConstantChar"
	case ConstantInteger:
		return "ConstantInteger"
	case ConstantFloat:
		return "ConstantFloat"
	case EndOfStream:
		return "EndOfStream"
	default:
		return fmt.Sprintf("ContentType(%d)", uint8(t))
	}
}

// Lexem is one classified unit of source text. Exactly one of the value
// fields is meaningful, selected by Kind:
//
//	ConstantChar     Char
//	ConstantInteger  Int
//	ConstantFloat    Float
//	Keyword/Operator ID
type Lexem struct {
	Pos  token.Position
	Kind ContentType
	Raw  string

	Char  rune
	Int   uint64
	Float float64
	ID    DeclID
}

// Value returns the processed value selected by Kind, or nil for kinds
// that only carry raw text.
func (l Lexem) Value() any {
	switch l.Kind {
	case ConstantChar:
		return l.Char
	case ConstantInteger:
		return l.Int
	case ConstantFloat:
		return l.Float
	case Keyword, Operator:
		return l.ID
	default:
		return nil
	}
}

// StringValue returns the text of a string constant without its quotes.
// Escape sequences are left as written.
func (l Lexem) StringValue() string {
	if l.Kind != ConstantString {
		return ""
	}
	s := strings.TrimPrefix(l.Raw, `"`)
	return strings.TrimSuffix(s, `"`)
}

// Is reports whether the lexem has the given kind and declaration id.
func (l Lexem) Is(kind ContentType, id DeclID) bool {
	return l.Kind == kind && l.ID == id
}

// String implements fmt.Stringer.
func (l Lexem) String() string {
	if l.Kind == EndOfStream {
		return fmt.Sprintf("%d:%d EndOfStream", l.Pos.Line, l.Pos.Column)
	}
	if l.Kind == ConstantChar {
		return fmt.Sprintf("%d:%d %s %q (%q)", l.Pos.Line, l.Pos.Column, l.Kind, l.Raw, l.Char)
	}
	if v := l.Value(); v != nil {
		return fmt.Sprintf("%d:%d %s %q (%v)", l.Pos.Line, l.Pos.Column, l.Kind, l.Raw, v)
	}
	return fmt.Sprintf("%d:%d %s %q", l.Pos.Line, l.Pos.Column, l.Kind, l.Raw)
}
