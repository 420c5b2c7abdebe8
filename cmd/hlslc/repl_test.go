package main

import (
	"strings"
	"testing"
)

func TestEvalLineTokenize(t *testing.T) {
	var sb strings.Builder
	if evalLine(&sb, "float4 x;") {
		t.Fatal("tokenizing ended the session")
	}
	out := sb.String()
	for _, want := range []string{`Keyword "float4"`, `Identifier "x"`, `Operator ";"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %s:\n%s", want, out)
		}
	}
}

func TestEvalLineParse(t *testing.T) {
	var sb strings.Builder
	evalLine(&sb, ":parse Texture2D tex : register(t3);")
	if got, want := sb.String(), "Texture2D tex : register(t3)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEvalLineQuit(t *testing.T) {
	var sb strings.Builder
	if !evalLine(&sb, "  :quit") {
		t.Error(":quit did not end the session")
	}
}
