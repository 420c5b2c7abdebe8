// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package source

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"modernc.org/token"
)

// EOF is the sentinel returned by NextChar at the end of the stream.
const EOF rune = 0

// Stream is the raw input boundary: read the next rune and seek back by
// exactly one rune.
type Stream = io.RuneScanner

// maxPushBack is the number of characters PushBack can hold at once.
const maxPushBack = 2

// ErrPushBackLimit is recorded by PushBack when more than maxPushBack
// characters are returned to the source.
var ErrPushBackLimit = errors.New("source: too many characters pushed back")

// Reader is a character source with newline normalization, line/column
// bookkeeping and a two-character pushback stack.
type Reader struct {
	name   string
	stream Stream
	err    error
	done   bool // the stream is exhausted or failed

	pushed []pushedChar

	next cursor                  // position of the next character
	hist [maxPushBack + 1]cursor // positions of the last returned characters, newest first
}

type pushedChar struct {
	c  rune
	at cursor
}

type cursor struct {
	offset int
	line   int
	column int
}

// NewReader creates a Reader over r. If r is not already an io.RuneScanner
// it is buffered.
func NewReader(name string, r io.Reader) *Reader {
	stream, ok := r.(Stream)
	if !ok {
		stream = bufio.NewReader(r)
	}
	start := cursor{line: 1, column: 1}
	return &Reader{
		name:   name,
		stream: stream,
		next:   start,
		hist:   [maxPushBack + 1]cursor{start, start, start},
	}
}

// NewStringReader creates a Reader over an in-memory source text.
func NewStringReader(name, text string) *Reader {
	return NewReader(name, strings.NewReader(text))
}

// Name returns the name given to the source, usually a file path.
func (r *Reader) Name() string {
	return r.name
}

// Err returns the first read error other than io.EOF, if any.
func (r *Reader) Err() error {
	return r.err
}

// Done reports whether the end of the stream has been reached. A NUL
// character in the input is returned as EOF while Done is still false.
func (r *Reader) Done() bool {
	return r.done && len(r.pushed) == 0
}

// NextChar returns the next normalized character, or EOF at the end of the
// stream. It never fails; read errors are recorded and reported by Err.
// Once the end has been reached every further call returns EOF.
func (r *Reader) NextChar() rune {
	if n := len(r.pushed); n > 0 {
		p := r.pushed[n-1]
		r.pushed = r.pushed[:n-1]
		r.next = p.at
		r.advance(p.c)
		return p.c
	}

	c := r.readRaw()
	if c == EOF && r.done {
		r.hist[0] = r.next
		return EOF
	}
	switch c {
	case '\r':
		r.consumePartner('\n')
		c = '\n'
	case '\n':
		r.consumePartner('\r')
	}
	r.advance(c)
	return c
}

// PushBack returns c, the last character NextChar produced, to the source
// so that the next NextChar yields it again. Up to two characters may be
// held; they come back in reverse order of pushing, with their original
// positions. Pushing EOF has no effect.
func (r *Reader) PushBack(c rune) {
	if c == EOF {
		return
	}
	if len(r.pushed) == maxPushBack {
		if r.err == nil {
			r.err = ErrPushBackLimit
		}
		return
	}
	r.pushed = append(r.pushed, pushedChar{c: c, at: r.hist[0]})
	r.next = r.hist[0]
	copy(r.hist[:], r.hist[1:])
}

// Pos returns the position of the next character.
func (r *Reader) Pos() token.Position {
	return r.position(r.next)
}

// LastPos returns the position of the most recently returned character.
func (r *Reader) LastPos() token.Position {
	return r.position(r.hist[0])
}

// Offset returns the number of normalized characters consumed so far.
func (r *Reader) Offset() int {
	return r.next.offset
}

func (r *Reader) position(c cursor) token.Position {
	return token.Position{
		Filename: r.name,
		Offset:   c.offset,
		Line:     c.line,
		Column:   c.column,
	}
}

func (r *Reader) advance(c rune) {
	copy(r.hist[1:], r.hist[:len(r.hist)-1])
	r.hist[0] = r.next
	r.next.offset++
	if c == '\n' {
		r.next.line++
		r.next.column = 1
		return
	}
	r.next.column++
}

func (r *Reader) readRaw() rune {
	if r.stream == nil || r.done {
		r.done = true
		return EOF
	}
	c, _, err := r.stream.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && r.err == nil {
			r.err = err
		}
		r.done = true
		return EOF
	}
	return c
}

// consumePartner swallows the second half of a \r\n or \n\r pair.
func (r *Reader) consumePartner(partner rune) {
	c, _, err := r.stream.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && r.err == nil {
			r.err = err
		}
		r.done = true
		return
	}
	if c != partner {
		if uerr := r.stream.UnreadRune(); uerr != nil && r.err == nil {
			r.err = uerr
		}
	}
}
