// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"errors"
	"fmt"
	"unicode"
)

// DeclID identifies a keyword or operator declared in Options.
type DeclID uint16

// Decl binds an identifier to the text of a keyword or operator.
type Decl struct {
	ID   DeclID
	Text string
}

// Options configures the lexer. It is the only external configuration of
// the front end and is validated once when a Lexer is created.
type Options struct {
	// Keywords lists the reserved words. Order is preserved.
	Keywords []Decl

	// Operators lists the operator and punctuation strings. Order is
	// preserved; the longest match always wins.
	Operators []Decl

	// SingleLineComment starts a comment running to the end of the line.
	SingleLineComment string

	// MultiLineCommentBegin and MultiLineCommentEnd delimit block comments.
	MultiLineCommentBegin string
	MultiLineCommentEnd   string

	// HexDelimiter, OctalDelimiter and BinaryDelimiter switch the base of an
	// integer constant when they follow a leading zero ("0x1A"). Zero means
	// the notation is not available. Matching is case-insensitive.
	HexDelimiter    rune
	OctalDelimiter  rune
	BinaryDelimiter rune

	// DecimalDelimiter separates the integer and fractional parts of a
	// floating point constant.
	DecimalDelimiter rune
}

// ErrInvalidOptions is wrapped by every error returned from Validate.
var ErrInvalidOptions = errors.New("invalid lexer options")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// Validate checks the invariants the lexer relies on.
func (o *Options) Validate() error {
	if o.SingleLineComment == "" {
		return invalidf("single-line comment marker is empty")
	}
	if o.MultiLineCommentBegin == "" || o.MultiLineCommentEnd == "" {
		return invalidf("multi-line comment markers must not be empty")
	}
	for _, marker := range []string{o.SingleLineComment, o.MultiLineCommentBegin, o.MultiLineCommentEnd} {
		if err := checkSpecialText("comment marker", marker); err != nil {
			return err
		}
	}
	if o.SingleLineComment == o.MultiLineCommentBegin {
		return invalidf("single-line and multi-line comment markers are both %q", o.SingleLineComment)
	}

	opIDs := make(map[DeclID]string, len(o.Operators))
	opTexts := make(map[string]struct{}, len(o.Operators))
	for _, op := range o.Operators {
		if err := checkSpecialText("operator", op.Text); err != nil {
			return err
		}
		if prev, dup := opIDs[op.ID]; dup {
			return invalidf("operator id %d used by both %q and %q", op.ID, prev, op.Text)
		}
		if _, dup := opTexts[op.Text]; dup {
			return invalidf("operator %q declared twice", op.Text)
		}
		if op.Text == o.SingleLineComment || op.Text == o.MultiLineCommentBegin {
			return invalidf("operator %q collides with a comment marker", op.Text)
		}
		opIDs[op.ID] = op.Text
		opTexts[op.Text] = struct{}{}
	}

	kwIDs := make(map[DeclID]string, len(o.Keywords))
	kwTexts := make(map[string]struct{}, len(o.Keywords))
	for _, kw := range o.Keywords {
		if !isWord(kw.Text) {
			return invalidf("keyword %q must be alphanumeric", kw.Text)
		}
		if prev, dup := kwIDs[kw.ID]; dup {
			return invalidf("keyword id %d used by both %q and %q", kw.ID, prev, kw.Text)
		}
		if _, dup := kwTexts[kw.Text]; dup {
			return invalidf("keyword %q declared twice", kw.Text)
		}
		kwIDs[kw.ID] = kw.Text
		kwTexts[kw.Text] = struct{}{}
	}

	seen := make(map[rune]string, 3)
	for _, d := range []struct {
		name string
		r    rune
	}{
		{"hexadecimal", o.HexDelimiter},
		{"octal", o.OctalDelimiter},
		{"binary", o.BinaryDelimiter},
	} {
		if d.r == 0 {
			continue
		}
		if !unicode.IsLetter(d.r) {
			return invalidf("%s delimiter %q is not alphabetic", d.name, d.r)
		}
		folded := unicode.ToLower(d.r)
		if other, dup := seen[folded]; dup {
			return invalidf("%s and %s delimiters are both %q", other, d.name, d.r)
		}
		seen[folded] = d.name
	}

	if !canBeSpecial(o.DecimalDelimiter) {
		return invalidf("decimal delimiter %q is not a special character", o.DecimalDelimiter)
	}
	return nil
}

// specials returns the special-character alphabet: every rune used by an
// operator, a comment marker, the decimal delimiter and the quote runes.
func (o *Options) specials() map[rune]struct{} {
	set := map[rune]struct{}{
		'"':                {},
		'\'':               {},
		o.DecimalDelimiter: {},
	}
	add := func(s string) {
		for _, r := range s {
			set[r] = struct{}{}
		}
	}
	add(o.SingleLineComment)
	add(o.MultiLineCommentBegin)
	add(o.MultiLineCommentEnd)
	for _, op := range o.Operators {
		add(op.Text)
	}
	return set
}

func checkSpecialText(what, text string) error {
	if text == "" {
		return invalidf("%s is empty", what)
	}
	for _, r := range text {
		if !canBeSpecial(r) || isQuote(r) {
			return invalidf("%s %q contains non-special character %q", what, text, r)
		}
	}
	return nil
}

// canBeSpecial reports whether r may belong to the special alphabet.
func canBeSpecial(r rune) bool {
	if r == 0 || r == '_' {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return false
	}
	return unicode.IsGraphic(r)
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}
