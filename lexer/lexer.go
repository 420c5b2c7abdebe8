// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode"

	"modernc.org/token"

	"github.com/gogpu/hlslc/source"
)

// CharType is the class of a single source character.
type CharType uint8

const (
	CharUnknown CharType = iota
	CharSpace
	CharDigit
	CharSpecial
	CharAlphabetic
)

func (c CharType) bit() uint8 {
	return 1 << c
}

// String returns the name of the character class.
func (c CharType) String() string {
	switch c {
	case CharSpace:
		return "Space"
	case CharDigit:
		return "Digit"
	case CharSpecial:
		return "Special"
	case CharAlphabetic:
		return "Alphabetic"
	default:
		return "Unknown"
	}
}

const anyChar = 0xFF

// continues maps the content type of the lexem being built to the classes
// of the next character that do NOT force the lexem to be committed.
var continues = [...]uint8{
	Identifier:      1<<CharAlphabetic | 1<<CharDigit,
	Keyword:         1<<CharAlphabetic | 1<<CharDigit,
	Operator:        1 << CharSpecial,
	Comment:         anyChar,
	ConstantString:  anyChar,
	ConstantChar:    anyChar,
	ConstantInteger: 1<<CharDigit | 1<<CharAlphabetic | 1<<CharSpecial,
	ConstantFloat:   1 << CharDigit,
}

type state uint8

const (
	stateUnknown state = iota
	stateString
	stateChar
	stateInteger
	stateFloat
	stateCommentOrOperator
	stateCommentSingleLine
	stateCommentMultipleLine
	stateIdentifierOrKeyword
)

var states = [...]struct {
	name string
	// requiresClosing marks states for which the end of the stream is an
	// error rather than the end of the lexem.
	requiresClosing bool
}{
	stateUnknown:             {"unknown", false},
	stateString:              {"string constant", true},
	stateChar:                {"character constant", true},
	stateInteger:             {"integer constant", false},
	stateFloat:               {"float constant", false},
	stateCommentOrOperator:   {"operator", false},
	stateCommentSingleLine:   {"single-line comment", false},
	stateCommentMultipleLine: {"multi-line comment", true},
	stateIdentifierOrKeyword: {"identifier", false},
}

// step tells the driver what to do with the character just processed.
type step uint8

const (
	// stepAppend keeps the character in the lexem and reads on.
	stepAppend step = iota

	// stepAppendCommit keeps the character and finishes the lexem.
	stepAppendCommit

	// stepRewindCommit pushes the character back and finishes the lexem.
	stepRewindCommit
)

// Lexer is a character-driven state machine producing Lexems on demand.
type Lexer struct {
	src  *source.Reader
	opts Options

	special          map[rune]struct{}
	operatorCands    []candidate
	keywordCands     []candidate
	multiLineEnd     []rune
	decimalDelimiter rune

	err error

	// per-lexem state, reset by Next
	state    state
	start    token.Position
	kind     ContentType
	raw      strings.Builder
	matcher  candidateMatcher
	escape   escapeMachine
	escaped  bool
	written  bool
	char     rune
	intValue uint64
	base     uint64
	switched bool
	digits   int
	tail     []rune
	bodyLen  int
	id       DeclID
}

// New creates a Lexer reading from src. The options are validated once and
// copied; an invalid configuration is reported here, never while lexing.
func New(src *source.Reader, opts *Options) (*Lexer, error) {
	if opts == nil {
		return nil, invalidf("nil options")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cands := make([]candidate, 0, len(opts.Operators)+2)
	cands = append(cands,
		candidate{kind: candidateSingleLineComment, text: []rune(opts.SingleLineComment)},
		candidate{kind: candidateMultiLineComment, text: []rune(opts.MultiLineCommentBegin)},
	)
	cands = append(cands, toCandidates(candidateOperator, opts.Operators)...)

	return &Lexer{
		src:              src,
		opts:             *opts,
		special:          opts.specials(),
		operatorCands:    cands,
		keywordCands:     toCandidates(candidateKeyword, opts.Keywords),
		multiLineEnd:     []rune(opts.MultiLineCommentEnd),
		decimalDelimiter: opts.DecimalDelimiter,
	}, nil
}

// Source returns the character source the lexer reads from. The parser
// uses it to copy function bodies verbatim.
func (l *Lexer) Source() *source.Reader {
	return l.src
}

// Options returns the configuration the lexer was built with.
func (l *Lexer) Options() *Options {
	return &l.opts
}

// Classify returns the class of c under the lexer's special alphabet.
func (l *Lexer) Classify(c rune) CharType {
	if _, ok := l.special[c]; ok {
		return CharSpecial
	}
	switch {
	case c >= '0' && c <= '9':
		return CharDigit
	case c == '_' || unicode.IsLetter(c):
		return CharAlphabetic
	case unicode.IsSpace(c):
		return CharSpace
	}
	return CharUnknown
}

// Tokenize reads lexems up to and including EndOfStream.
func (l *Lexer) Tokenize() ([]Lexem, error) {
	var out []Lexem
	for {
		lx, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, lx)
		if lx.Kind == EndOfStream {
			return out, nil
		}
	}
}

// Next returns the next lexem. After the first error the lexer is unusable
// and keeps returning that error.
func (l *Lexer) Next() (Lexem, error) {
	if l.err != nil {
		return Lexem{}, l.err
	}
	lx, err := l.next()
	if err != nil {
		l.err = err
	}
	return lx, err
}

func (l *Lexer) reset() {
	l.state = stateUnknown
	l.kind = Unknown
	l.raw.Reset()
	l.escape = escapeMachine{}
	l.escaped = false
	l.written = false
	l.char = 0
	l.intValue = 0
	l.base = 10
	l.switched = false
	l.digits = 0
	l.tail = l.tail[:0]
	l.bodyLen = 0
	l.id = 0
}

func (l *Lexer) next() (Lexem, error) {
	l.reset()
	for {
		c := l.src.NextChar()
		if c == source.EOF {
			if err := l.src.Err(); err != nil {
				return Lexem{}, fmt.Errorf("read %s: %w", l.src.Name(), err)
			}
			if !l.src.Done() {
				return Lexem{}, l.errorf(l.src.LastPos(), "invalid character %q", c)
			}
			if l.state == stateUnknown {
				return Lexem{Pos: l.src.Pos(), Kind: EndOfStream}, nil
			}
			if states[l.state].requiresClosing {
				return Lexem{}, l.errorf(l.start, "unterminated %s: unexpected end of stream", states[l.state].name)
			}
			return l.finish()
		}

		ct := l.Classify(c)
		if ct == CharUnknown && !l.inText() {
			return Lexem{}, l.errorf(l.src.LastPos(), "invalid character %q", c)
		}

		if l.state == stateUnknown {
			if ct == CharSpace {
				continue
			}
			l.begin(c, ct)
			if l.state == stateString || l.state == stateChar {
				// the opening quote only selects the state
				l.raw.WriteRune(c)
				continue
			}
		} else if l.forcesCommit(c, ct) {
			l.src.PushBack(c)
			return l.finish()
		}

		st, err := l.process(c, ct)
		if err != nil {
			return Lexem{}, err
		}
		switch st {
		case stepAppend:
			l.raw.WriteRune(c)
		case stepAppendCommit:
			l.raw.WriteRune(c)
			return l.finish()
		case stepRewindCommit:
			l.src.PushBack(c)
			return l.finish()
		}
	}
}

// inText reports whether the current state accepts characters of any
// class.
func (l *Lexer) inText() bool {
	switch l.state {
	case stateString, stateChar, stateCommentSingleLine, stateCommentMultipleLine:
		return true
	}
	return false
}

func (l *Lexer) forcesCommit(c rune, ct CharType) bool {
	mask := continues[l.kind]
	if mask&ct.bit() == 0 {
		return true
	}
	return l.kind == ConstantInteger && ct == CharSpecial && c != l.decimalDelimiter
}

// begin selects the state from the first significant character.
func (l *Lexer) begin(c rune, ct CharType) {
	l.start = l.src.LastPos()
	switch {
	case c == '"':
		l.state, l.kind = stateString, ConstantString
	case c == '\'':
		l.state, l.kind = stateChar, ConstantChar
	case ct == CharDigit:
		l.state, l.kind = stateInteger, ConstantInteger
	case ct == CharAlphabetic:
		l.state, l.kind = stateIdentifierOrKeyword, Keyword
		l.matcher.reset(l.keywordCands)
	case ct == CharSpecial:
		l.state, l.kind = stateCommentOrOperator, Operator
		l.matcher.reset(l.operatorCands)
	}
}

func (l *Lexer) process(c rune, ct CharType) (step, error) {
	switch l.state {
	case stateString:
		return l.processString(c), nil
	case stateChar:
		return l.processChar(c)
	case stateInteger:
		return l.processInteger(c, ct)
	case stateFloat:
		return l.processFloat(c)
	case stateCommentOrOperator:
		return l.processOperator(c)
	case stateCommentSingleLine:
		return l.processSingleLineComment(c), nil
	case stateCommentMultipleLine:
		return l.processMultiLineComment(c), nil
	case stateIdentifierOrKeyword:
		l.matcher.feed(c)
		return stepAppend, nil
	}
	return 0, l.errorf(l.src.LastPos(), "lexer in unknown state")
}

func (l *Lexer) processString(c rune) step {
	switch {
	case l.escaped:
		l.escaped = false
	case c == '\\':
		l.escaped = true
	case c == '"':
		return stepAppendCommit
	}
	return stepAppend
}

func (l *Lexer) processChar(c rune) (step, error) {
	if l.escape.active() {
		res, err := l.escape.feed(c)
		if err != nil {
			return 0, l.errorf(l.src.LastPos(), "%v", err)
		}
		switch res {
		case escapeMore:
			return stepAppend, nil
		case escapeDone:
			return stepAppend, l.writeChar(l.escape.value)
		case escapeDoneBefore:
			if err := l.writeChar(l.escape.value); err != nil {
				return 0, err
			}
		}
	}

	switch c {
	case '\\':
		if l.written {
			return 0, l.errorf(l.src.LastPos(), "multiple characters in character constant")
		}
		l.escape.start()
		return stepAppend, nil
	case '\'':
		if !l.written {
			return 0, l.errorf(l.start, "empty character constant")
		}
		return stepAppendCommit, nil
	}
	return stepAppend, l.writeChar(c)
}

func (l *Lexer) writeChar(c rune) error {
	if l.written {
		return l.errorf(l.src.LastPos(), "multiple characters in character constant")
	}
	l.char = c
	l.written = true
	return nil
}

func (l *Lexer) processInteger(c rune, ct CharType) (step, error) {
	if d, ok := l.digitValue(c); ok {
		if d >= l.base {
			return 0, l.errorf(l.src.LastPos(), "invalid digit %q in base %d constant", c, l.base)
		}
		hi, v := bits.Mul64(l.intValue, l.base)
		v, carry := bits.Add64(v, d, 0)
		if hi != 0 || carry != 0 {
			return 0, l.errorf(l.start, "integer constant overflows 64 bits")
		}
		l.intValue = v
		l.digits++
		return stepAppend, nil
	}

	switch ct {
	case CharAlphabetic:
		if l.intValue != 0 || l.switched {
			return stepRewindCommit, nil
		}
		if base, ok := l.notation(c); ok {
			l.base = base
			l.switched = true
			l.digits = 0
			return stepAppend, nil
		}
		return stepRewindCommit, nil

	case CharSpecial:
		if c == l.decimalDelimiter && !l.switched {
			l.state, l.kind = stateFloat, ConstantFloat
			return stepAppend, nil
		}
	}
	return stepRewindCommit, nil
}

// digitValue decodes c as a digit of the current base. Letters only count
// as digits once a hexadecimal notation switched the base.
func (l *Lexer) digitValue(c rune) (uint64, bool) {
	if c >= '0' && c <= '9' {
		return uint64(c - '0'), true
	}
	if l.base == 16 {
		return hexValue(c)
	}
	return 0, false
}

func (l *Lexer) notation(c rune) (uint64, bool) {
	lc := unicode.ToLower(c)
	switch {
	case l.opts.HexDelimiter != 0 && lc == unicode.ToLower(l.opts.HexDelimiter):
		return 16, true
	case l.opts.OctalDelimiter != 0 && lc == unicode.ToLower(l.opts.OctalDelimiter):
		return 8, true
	case l.opts.BinaryDelimiter != 0 && lc == unicode.ToLower(l.opts.BinaryDelimiter):
		return 2, true
	}
	return 0, false
}

func (l *Lexer) processFloat(c rune) (step, error) {
	if c >= '0' && c <= '9' {
		return stepAppend, nil
	}
	return stepRewindCommit, nil
}

func (l *Lexer) processOperator(c rune) (step, error) {
	if !l.matcher.feed(c) {
		if l.raw.Len() == 0 {
			return 0, l.errorf(l.start, "unknown operator %q", c)
		}
		return stepRewindCommit, nil
	}

	full, ok := l.matcher.matched()
	if !ok {
		return stepAppend, nil
	}
	switch full.kind {
	case candidateSingleLineComment:
		l.state, l.kind = stateCommentSingleLine, Comment
		return stepAppend, nil
	case candidateMultiLineComment:
		l.state, l.kind = stateCommentMultipleLine, Comment
		return stepAppend, nil
	}
	l.id = full.id
	if !l.matcher.longerAlive() {
		return stepAppendCommit, nil
	}
	return stepAppend, nil
}

func (l *Lexer) processSingleLineComment(c rune) step {
	if c == '\n' {
		return stepRewindCommit
	}
	return stepAppend
}

func (l *Lexer) processMultiLineComment(c rune) step {
	l.bodyLen++
	l.tail = append(l.tail, c)
	if len(l.tail) > len(l.multiLineEnd) {
		l.tail = l.tail[1:]
	}
	if l.bodyLen < len(l.multiLineEnd) || len(l.tail) != len(l.multiLineEnd) {
		return stepAppend
	}
	for i, r := range l.multiLineEnd {
		if l.tail[i] != r {
			return stepAppend
		}
	}
	return stepAppendCommit
}

// finish validates and emits the lexem built so far.
func (l *Lexer) finish() (Lexem, error) {
	lx := Lexem{
		Pos:  l.start,
		Kind: l.kind,
		Raw:  l.raw.String(),
	}

	switch l.state {
	case stateIdentifierOrKeyword:
		if kw, ok := l.matcher.exact(); ok {
			lx.ID = kw.id
		} else {
			lx.Kind = Identifier
		}

	case stateCommentOrOperator:
		// every accepted character extended some candidate, so a missing
		// full match means the text stopped inside a longer operator
		op, ok := l.matcher.matched()
		if !ok {
			return Lexem{}, l.errorf(l.start, "incomplete operator %q", lx.Raw)
		}
		lx.ID = op.id

	case stateInteger:
		if l.switched && l.digits == 0 {
			return Lexem{}, l.errorf(l.start, "missing digits after %q", lx.Raw)
		}
		lx.Int = l.intValue

	case stateFloat:
		text := lx.Raw
		if l.decimalDelimiter != '.' {
			text = strings.Replace(text, string(l.decimalDelimiter), ".", 1)
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Lexem{}, l.errorf(l.start, "malformed float constant %q", lx.Raw)
		}
		lx.Float = f

	case stateChar:
		lx.Char = l.char
	}

	l.state = stateUnknown
	return lx, nil
}

func (l *Lexer) errorf(pos token.Position, format string, args ...any) error {
	return source.Errorf(source.ErrLexical, pos, format, args...)
}
