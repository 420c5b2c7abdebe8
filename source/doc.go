// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package source provides the character source consumed by the HLSL lexer
// and the diagnostics shared by the lexer and the parser.
//
// A Reader wraps any io.Reader, normalizes every newline form (\n, \r,
// \r\n, \n\r) to a single '\n', tracks line and column, and supports two
// characters of pushback:
//
//	src := source.NewStringReader("shader.hlsl", text)
//	for c := src.NextChar(); !src.Done(); c = src.NextChar() {
//	    ...
//	}
//
// Errors raised while lexing or parsing are *Error values carrying an
// ErrorKind (lexical, syntax, not implemented) and the position of the
// offending character.
package source
