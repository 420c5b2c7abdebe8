// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	shader := mustParse(t, `
struct VSIn { float4 pos : POSITION; float2 uv : TEXCOORD0; };
cbuffer Camera : register(b1) { row_major float4x4 viewProj; };
Texture2D tex : register(t0);
float4 main(VSIn input, out float depth : DEPTH) : SV_Target { return 0; }
float helper(float x);
struct { int n; } anon;
`)

	want := strings.Join([]string{
		"struct VSIn",
		"\tfloat4 pos : POSITION",
		"\tfloat2 uv : TEXCOORD0",
		"cbuffer Camera : register(b1)",
		"\trow_major float4x4 viewProj",
		"Texture2D tex : register(t0)",
		"float4 main(in VSIn input, out float depth : DEPTH) : SV_Target",
		"\tbody \" return 0; \"",
		"float helper(in float x)",
		"\tprototype",
		"struct __AnonymousStruct_0",
		"\tint n",
		"__AnonymousStruct_0 anon",
		"",
	}, "\n")

	var sb strings.Builder
	if err := Dump(&sb, shader.Global); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpBuiltins(t *testing.T) {
	var sb strings.Builder
	if err := Dump(&sb, NewTypeRegistry().Scope()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := sb.String()
	for _, line := range []string{"type void = void\n", "type dword = uint\n", "type sampler = SamplerState\n"} {
		if !strings.Contains(out, line) {
			t.Errorf("dump of built-ins lacks %q", line)
		}
	}
}

func TestDumpBodyWithNewlines(t *testing.T) {
	shader := mustParse(t, "void f() {\n\tx = \"%d\";\n}")
	var sb strings.Builder
	if err := Dump(&sb, shader.Global); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := "void f()\n\tbody \"\\n\\tx = \\\"%d\\\";\\n\"\n"
	if got := sb.String(); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}
