// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"modernc.org/token"
)

// ExprColon is a binding annotation written after a ':' on a variable,
// argument, cbuffer or function return. It is one of *Register or
// *Semantic.
type ExprColon interface {
	exprColon()
	String() string
}

// RegisterType represents the HLSL register type.
type RegisterType uint8

const (
	// RegisterTypeB is for constant buffers (cbuffer).
	RegisterTypeB RegisterType = iota

	// RegisterTypeT is for textures and shader resource views.
	RegisterTypeT

	// RegisterTypeC is for individual constants (legacy SM 2/3 bindings).
	RegisterTypeC

	// RegisterTypeS is for samplers.
	RegisterTypeS

	// RegisterTypeU is for unordered access views (UAV).
	RegisterTypeU
)

// String returns the single-character register prefix.
func (rt RegisterType) String() string {
	switch rt {
	case RegisterTypeB:
		return "b"
	case RegisterTypeT:
		return "t"
	case RegisterTypeC:
		return "c"
	case RegisterTypeS:
		return "s"
	case RegisterTypeU:
		return "u"
	default:
		return fmt.Sprintf("RegisterType(%d)", uint8(rt))
	}
}

var registerLetters = map[byte]RegisterType{
	'b': RegisterTypeB,
	't': RegisterTypeT,
	'c': RegisterTypeC,
	's': RegisterTypeS,
	'u': RegisterTypeU,
}

// ParseRegisterType maps a register prefix letter to its RegisterType.
// Letters are matched case-insensitively.
func ParseRegisterType(letter byte) (RegisterType, bool) {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	rt, ok := registerLetters[letter]
	return rt, ok
}

// Register is an explicit register(x#[, space#]) binding.
type Register struct {
	Kind  RegisterType
	Index uint32

	// Space is the register space; zero when not written.
	Space uint32

	Pos token.Position
}

func (*Register) exprColon() {}

// String returns the binding as written in HLSL.
func (r *Register) String() string {
	if r.Space != 0 {
		return fmt.Sprintf("register(%s%d, space%d)", r.Kind, r.Index, r.Space)
	}
	return fmt.Sprintf("register(%s%d)", r.Kind, r.Index)
}

// parseRegisterSlot splits "b0" or "t12" into its type and index.
func parseRegisterSlot(slot string) (RegisterType, uint32, error) {
	if len(slot) < 2 {
		return 0, 0, fmt.Errorf("register %q: expected a letter followed by digits", slot)
	}
	kind, ok := ParseRegisterType(slot[0])
	if !ok {
		return 0, 0, fmt.Errorf("unknown register type %q", slot[:1])
	}
	index, err := parseDecimal(slot[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("register %q: %w", slot, err)
	}
	return kind, index, nil
}

// parseSpace parses "space3" into 3.
func parseSpace(s string) (uint32, error) {
	const prefix = "space"
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return 0, fmt.Errorf("expected space#, found %q", s)
	}
	return parseDecimal(s[len(prefix):])
}

func parseDecimal(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("missing index")
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid index %q", s)
		}
		v = v*10 + uint64(c-'0')
		if v > 1<<32-1 {
			return 0, fmt.Errorf("index %q out of range", s)
		}
	}
	return uint32(v), nil
}
