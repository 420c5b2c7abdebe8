// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"testing"
)

func TestScopeAddLookup(t *testing.T) {
	s := NewScope(nil)
	a := &Variable{Name: "a"}
	b := &Variable{Name: "b"}
	for _, v := range []*Variable{a, b} {
		if err := s.Add(v); err != nil {
			t.Fatalf("Add(%s): %v", v.Name, err)
		}
	}

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if defs := s.Definitions(); defs[0] != a || defs[1] != b {
		t.Error("definitions not kept in declaration order")
	}
	if got, ok := s.Lookup("b"); !ok || got != b {
		t.Errorf("Lookup(b) = %v, %v", got, ok)
	}

	err := s.Add(&Variable{Name: "a"})
	if !errors.Is(err, ErrRedefinition) {
		t.Errorf("duplicate Add = %v, want ErrRedefinition", err)
	}
}

func TestScopeResolve(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)
	x := &Variable{Name: "x"}
	shadow := &Variable{Name: "x"}
	y := &Variable{Name: "y"}
	_ = outer.Add(x)
	_ = outer.Add(y)
	_ = inner.Add(shadow)

	if inner.Parent() != outer {
		t.Error("Parent not recorded")
	}
	if got, _ := inner.Resolve("x"); got != shadow {
		t.Error("inner definition does not shadow the outer one")
	}
	if got, _ := inner.Resolve("y"); got != y {
		t.Error("outer definition not found from inner scope")
	}
	if _, ok := inner.Lookup("y"); ok {
		t.Error("Lookup searched the parent scope")
	}
	if _, ok := inner.Resolve("z"); ok {
		t.Error("Resolve found an undeclared name")
	}
}

func TestScopeCBufferMembers(t *testing.T) {
	global := NewScope(nil)
	members := NewScope(global)
	m := &Variable{Name: "m"}
	_ = members.Add(m)

	if err := global.Add(&CBuffer{Name: "C", Members: members}); err != nil {
		t.Fatalf("Add(cbuffer): %v", err)
	}
	if got, ok := global.Lookup("m"); !ok || got != m {
		t.Error("cbuffer member not found through the enclosing scope")
	}
	if err := global.Add(&Variable{Name: "m"}); !errors.Is(err, ErrRedefinition) {
		t.Errorf("Add clashing with a cbuffer member = %v", err)
	}

	clash := NewScope(global)
	_ = clash.Add(&Variable{Name: "C"})
	if err := global.Add(&CBuffer{Name: "D", Members: clash}); !errors.Is(err, ErrRedefinition) {
		t.Errorf("cbuffer with a member named like a global = %v", err)
	}
	if global.Len() != 1 {
		t.Errorf("failed Add changed the scope: Len = %d", global.Len())
	}
}

func TestTypeModifierString(t *testing.T) {
	tests := []struct {
		mods TypeModifier
		want string
	}{
		{0, ""},
		{Const, "const"},
		{Static | Const, "const static"},
		{RowMajor | Uniform | NoInterpolation, "row_major uniform nointerpolation"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("TypeModifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
	if !(Static | Const).Has(Const) || Const.Has(Static|Const) {
		t.Error("Has does not test for all bits")
	}
}
