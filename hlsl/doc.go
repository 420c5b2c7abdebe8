// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl parses the declaration level of HLSL (High-Level Shading
// Language) into a tree of scopes.
//
// The parser understands structs, cbuffers, global variables and
// functions, including register and semantic bindings. Function bodies
// are not parsed: they are copied verbatim from the source text and kept
// for a later compilation stage.
//
// # Usage
//
//	reg := hlsl.DefaultRegistry()
//	lx, err := lexer.New(source.NewStringReader("shader.hlsl", text), hlsl.LexerOptions(reg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shader, err := hlsl.NewParser(lx, hlsl.WithRegistry(reg)).ParseShader()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hlsl.Dump(os.Stdout, shader.Global)
//
// # Scopes
//
// Built-in types live in the superglobal scope of a TypeRegistry, which
// is read-only and may be shared by concurrent parses. Each parse adds a
// global scope on top of it; struct fields, cbuffer members and function
// arguments get scopes of their own. Names resolve from the innermost
// scope outwards.
//
// # Register Binding
//
//	cbuffer : register(b#, space#)  // Constant buffers
//	Texture : register(t#, space#)  // Textures/SRVs
//	Sampler : register(s#, space#)  // Samplers
//	Constant: register(c#)          // Individual constants
//	RWTexture: register(u#, space#) // UAVs
//
// Register spaces need Shader Model 5.1. WithShaderModel makes the parser
// reject spaces and system values the targeted model lacks.
package hlsl
