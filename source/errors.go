// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package source

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/token"
)

// ErrorKind categorizes front-end errors.
type ErrorKind uint8

const (
	// ErrLexical indicates malformed characters, literals or comments.
	ErrLexical ErrorKind = iota

	// ErrSyntax indicates an unexpected lexem or a construct not allowed
	// in its context.
	ErrSyntax

	// ErrNotImplemented flags valid HLSL this front end deliberately does
	// not handle (typedef, initializers, annotations, packoffset).
	ErrNotImplemented
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrLexical:
		return "lexical"
	case ErrSyntax:
		return "syntax"
	case ErrNotImplemented:
		return "not implemented"
	default:
		return "unknown"
	}
}

// Error is a diagnostic with its source location. Once an Error is
// returned the lexer or parser that produced it must be discarded.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Pos is the location of the offending character or lexem.
	// A zero Pos means the error is not tied to the source (for example
	// invalid lexer options).
	Pos token.Position

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos.Line == 0 {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.Pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s error: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s error: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

// Errorf creates an Error with a formatted message.
func Errorf(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsLexical returns true if the error is ErrLexical.
func (e *Error) IsLexical() bool {
	return e.Kind == ErrLexical
}

// IsSyntax returns true if the error is ErrSyntax.
func (e *Error) IsSyntax() bool {
	return e.Kind == ErrSyntax
}

// IsNotImplemented returns true if the error is ErrNotImplemented.
func (e *Error) IsNotImplemented() bool {
	return e.Kind == ErrNotImplemented
}

// KindOf extracts the ErrorKind of err. The second result is false when err
// does not wrap an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// FormatWithContext returns the error message followed by the offending
// line of text and a caret under the error column. text must be the
// newline-normalized source the error was produced from.
func (e *Error) FormatWithContext(text string) string {
	if text == "" || e.Pos.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(text, "\n")
	lineNum := e.Pos.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := []rune(lines[lineNum-1])
	col := e.Pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s error: %s\n", e.Kind, e.Message)
	if e.Pos.Filename != "" {
		fmt.Fprintf(&sb, "  --> %s:%d:%d\n", e.Pos.Filename, lineNum, col)
	} else {
		fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	}
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, string(line))
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// Normalize converts every newline form to '\n' the same way Reader does,
// so that error positions can be mapped back onto the text.
func Normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			sb.WriteByte('\n')
		case '\n':
			if i+1 < len(text) && text[i+1] == '\r' {
				i++
			}
			sb.WriteByte('\n')
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
