// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"fmt"
	"unicode/utf8"
)

type escapeMode uint8

const (
	escapeNone escapeMode = iota
	escapeWaiting
	escapeOctal
	escapeHexadecimal
	escapeUnicodeShort // \uXXXX
	escapeUnicodeLong  // \UXXXXXXXX
)

type escapeResult uint8

const (
	// escapeMore means the character was consumed and the sequence goes on.
	escapeMore escapeResult = iota

	// escapeDone means the character completed the sequence.
	escapeDone

	// escapeDoneBefore means the sequence ended before the character, which
	// must be handled again by the caller.
	escapeDoneBefore
)

var simpleEscapes = map[rune]rune{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// escapeMachine decodes one escape sequence after its backslash.
type escapeMachine struct {
	mode   escapeMode
	value  rune
	digits int
}

func (e *escapeMachine) active() bool {
	return e.mode != escapeNone
}

func (e *escapeMachine) start() {
	e.mode = escapeWaiting
	e.value = 0
	e.digits = 0
}

// feed advances the sequence by c. On escapeDone or escapeDoneBefore the
// decoded character is in e.value and the machine is idle again.
func (e *escapeMachine) feed(c rune) (escapeResult, error) {
	switch e.mode {
	case escapeWaiting:
		if v, ok := simpleEscapes[c]; ok {
			e.value = v
			e.mode = escapeNone
			return escapeDone, nil
		}
		switch {
		case c == 'x':
			e.mode = escapeHexadecimal
		case c == 'u':
			e.mode = escapeUnicodeShort
		case c == 'U':
			e.mode = escapeUnicodeLong
		case c >= '0' && c <= '7':
			e.mode = escapeOctal
			e.value = c - '0'
			e.digits = 1
		default:
			return 0, fmt.Errorf("unrecognized escape sequence \\%c", c)
		}
		return escapeMore, nil

	case escapeOctal:
		if c < '0' || c > '7' {
			e.mode = escapeNone
			return escapeDoneBefore, nil
		}
		e.value = e.value*8 + (c - '0')
		if e.value > 0xFF {
			return 0, fmt.Errorf("octal escape sequence out of range")
		}
		e.digits++
		return escapeMore, nil

	case escapeHexadecimal:
		d, ok := hexValue(c)
		if !ok {
			if e.digits == 0 {
				return 0, fmt.Errorf("\\x used with no following hex digits")
			}
			e.mode = escapeNone
			return escapeDoneBefore, nil
		}
		e.value = e.value*16 + rune(d)
		if e.value > 0xFF {
			return 0, fmt.Errorf("hex escape sequence out of range")
		}
		e.digits++
		return escapeMore, nil

	case escapeUnicodeShort, escapeUnicodeLong:
		want := 4
		if e.mode == escapeUnicodeLong {
			want = 8
		}
		d, ok := hexValue(c)
		if !ok {
			return 0, fmt.Errorf("incomplete universal character name: %d of %d hex digits", e.digits, want)
		}
		e.value = e.value*16 + rune(d)
		if e.value > utf8.MaxRune {
			return 0, fmt.Errorf("universal character name out of range")
		}
		e.digits++
		if e.digits < want {
			return escapeMore, nil
		}
		if !utf8.ValidRune(e.value) {
			return 0, fmt.Errorf("universal character name U+%X is not a valid character", e.value)
		}
		e.mode = escapeNone
		return escapeDone, nil
	}
	return 0, fmt.Errorf("escape sequence not started")
}

func hexValue(c rune) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
