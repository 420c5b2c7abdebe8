// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lexer implements a configurable, character-driven tokenizer.
//
// The Lexer is a finite state machine fed one character at a time from a
// source.Reader. Each character is classified as Space, Digit, Special or
// Alphabetic; the special alphabet is derived from the operators and
// comment markers declared in Options. The class of the next character
// decides whether the lexem being built is committed, and the first
// significant character of a lexem selects its state:
//
//	"   string constant        '   character constant
//	0-9 integer / float        a-z identifier or keyword
//	special                    operator or comment
//
// Operators, comment markers and keywords are recognized by greedy
// narrowing of a candidate list so that the longest match always wins:
// with the operators "<", "<=", "<<" and "<<=", the input "<<=" is a
// single operator.
//
// Integer constants switch base only through an explicit notation prefix
// ("0x1A", "0b101"); "0755" is decimal unless an octal delimiter is
// declared and used.
//
// Usage:
//
//	lx, err := lexer.New(source.NewStringReader("a.hlsl", text), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    lexem, err := lx.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if lexem.Kind == lexer.EndOfStream {
//	        break
//	    }
//	    fmt.Println(lexem)
//	}
package lexer
