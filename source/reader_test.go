// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package source

import (
	"errors"
	"io"
	"testing"
)

func readAll(r *Reader) string {
	var out []rune
	for c := r.NextChar(); c != EOF; c = r.NextChar() {
		out = append(out, c)
	}
	return string(out)
}

func TestReaderNewlineNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lf", "a\nb", "a\nb"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lfcr", "a\n\rb", "a\nb"},
		{"lone_cr", "a\rb", "a\nb"},
		{"cr_cr_lf", "a\r\r\nb", "a\n\nb"},
		{"lf_cr_lf", "a\n\r\nb", "a\n\nb"},
		{"trailing_cr", "a\r", "a\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(NewStringReader("", tt.input))
			if got != tt.want {
				t.Errorf("NextChar sequence = %q, want %q", got, tt.want)
			}
			if norm := Normalize(tt.input); norm != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, norm, tt.want)
			}
		})
	}
}

func TestReaderLineColumn(t *testing.T) {
	r := NewStringReader("test.hlsl", "ab\r\ncd")

	want := []struct {
		c    rune
		line int
		col  int
	}{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 1, 3},
		{'c', 2, 1},
		{'d', 2, 2},
	}
	for i, w := range want {
		c := r.NextChar()
		pos := r.LastPos()
		if c != w.c || pos.Line != w.line || pos.Column != w.col {
			t.Errorf("char %d = %q at %d:%d, want %q at %d:%d", i, c, pos.Line, pos.Column, w.c, w.line, w.col)
		}
		if pos.Filename != "test.hlsl" {
			t.Errorf("Filename = %q, want test.hlsl", pos.Filename)
		}
	}
	if c := r.NextChar(); c != EOF {
		t.Errorf("expected EOF, got %q", c)
	}
	if r.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", r.Offset())
	}
}

func TestReaderPushBack(t *testing.T) {
	r := NewStringReader("", "x\ny")

	if c := r.NextChar(); c != 'x' {
		t.Fatalf("got %q, want 'x'", c)
	}
	nl := r.NextChar()
	if r.Pos().Line != 2 {
		t.Fatalf("after newline Pos().Line = %d, want 2", r.Pos().Line)
	}

	r.PushBack(nl)
	if pos := r.Pos(); pos.Line != 1 || pos.Column != 2 {
		t.Errorf("after pushback Pos() = %d:%d, want 1:2", pos.Line, pos.Column)
	}
	if c := r.NextChar(); c != '\n' {
		t.Errorf("re-read %q, want newline", c)
	}
	if c := r.NextChar(); c != 'y' {
		t.Errorf("got %q, want 'y'", c)
	}
	if pos := r.LastPos(); pos.Line != 2 || pos.Column != 1 {
		t.Errorf("'y' at %d:%d, want 2:1", pos.Line, pos.Column)
	}
}

func TestReaderPushBackEOFIgnored(t *testing.T) {
	r := NewStringReader("", "")
	r.PushBack(EOF)
	if c := r.NextChar(); c != EOF {
		t.Errorf("got %q, want EOF", c)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReaderRecordsReadErrors(t *testing.T) {
	r := NewReader("broken", failingReader{})
	if c := r.NextChar(); c != EOF {
		t.Fatalf("got %q, want EOF", c)
	}
	if r.Err() == nil || r.Err().Error() != "disk on fire" {
		t.Errorf("Err() = %v, want disk on fire", r.Err())
	}

	clean := NewStringReader("", "a")
	readAll(clean)
	if errors.Is(clean.Err(), io.EOF) || clean.Err() != nil {
		t.Errorf("io.EOF must not be reported, got %v", clean.Err())
	}
}

func TestReaderDoublePushBack(t *testing.T) {
	r := NewStringReader("", "abc")

	a := r.NextChar()
	b := r.NextChar()
	r.PushBack(b)
	r.PushBack(a)
	if pos := r.Pos(); pos.Column != 1 || pos.Offset != 0 {
		t.Errorf("after two pushbacks Pos() = %d:%d offset %d, want 1:1 offset 0", pos.Line, pos.Column, pos.Offset)
	}

	want := []struct {
		c   rune
		col int
	}{
		{'a', 1},
		{'b', 2},
		{'c', 3},
	}
	for _, w := range want {
		if c := r.NextChar(); c != w.c {
			t.Fatalf("got %q, want %q", c, w.c)
		}
		if pos := r.LastPos(); pos.Line != 1 || pos.Column != w.col {
			t.Errorf("%q at %d:%d, want 1:%d", w.c, pos.Line, pos.Column, w.col)
		}
	}
	if c := r.NextChar(); c != EOF || !r.Done() {
		t.Errorf("got %q, Done() = %v; want EOF at the end", c, r.Done())
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestReaderPushBackLimit(t *testing.T) {
	r := NewStringReader("", "abc")
	a, b, c := r.NextChar(), r.NextChar(), r.NextChar()
	r.PushBack(c)
	r.PushBack(b)
	r.PushBack(a)
	if !errors.Is(r.Err(), ErrPushBackLimit) {
		t.Errorf("Err() = %v, want ErrPushBackLimit", r.Err())
	}
	if got := readAll(r); got != "bc" {
		t.Errorf("drained %q, want %q", got, "bc")
	}
}

func TestReaderEmbeddedNUL(t *testing.T) {
	r := NewStringReader("", "a\x00b")

	if c := r.NextChar(); c != 'a' {
		t.Fatalf("got %q, want 'a'", c)
	}
	if c := r.NextChar(); c != EOF || r.Done() {
		t.Fatalf("NUL: got %q, Done() = %v; want EOF with Done() false", c, r.Done())
	}
	if pos := r.LastPos(); pos.Column != 2 {
		t.Errorf("NUL at column %d, want 2", pos.Column)
	}
	if c := r.NextChar(); c != 'b' {
		t.Errorf("got %q, want 'b'", c)
	}
	for range 3 {
		if c := r.NextChar(); c != EOF || !r.Done() {
			t.Errorf("past the end: got %q, Done() = %v", c, r.Done())
		}
	}
}
