// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"

	"modernc.org/token"

	"github.com/gogpu/hlslc/lexer"
)

// TypeModifier is a bitmask of storage and layout modifiers preceding a
// declaration.
type TypeModifier uint16

const (
	Const TypeModifier = 1 << iota
	RowMajor
	ColumnMajor
	Static
	Uniform
	Extern
	Volatile
	Precise
	GroupShared
	NoInterpolation
	NoPerspective
	Centroid
)

var modifierNames = []struct {
	mod  TypeModifier
	name string
}{
	{Const, "const"},
	{RowMajor, "row_major"},
	{ColumnMajor, "column_major"},
	{Static, "static"},
	{Uniform, "uniform"},
	{Extern, "extern"},
	{Volatile, "volatile"},
	{Precise, "precise"},
	{GroupShared, "groupshared"},
	{NoInterpolation, "nointerpolation"},
	{NoPerspective, "noperspective"},
	{Centroid, "centroid"},
}

// Has reports whether all modifiers in o are set.
func (m TypeModifier) Has(o TypeModifier) bool {
	return m&o == o
}

// String returns the modifiers in declaration order, space separated.
func (m TypeModifier) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}

var modifierKeywords = map[lexer.DeclID]TypeModifier{
	KwConst:           Const,
	KwRowMajor:        RowMajor,
	KwColumnMajor:     ColumnMajor,
	KwStatic:          Static,
	KwUniform:         Uniform,
	KwExtern:          Extern,
	KwVolatile:        Volatile,
	KwPrecise:         Precise,
	KwGroupShared:     GroupShared,
	KwNoInterpolation: NoInterpolation,
	KwNoPerspective:   NoPerspective,
	KwCentroid:        Centroid,
}

// Definition is a named, typed declaration owned by a Scope.
type Definition interface {
	DefName() string
	DefType() Type
	Modifiers() TypeModifier
	Pos() token.Position
}

// TypeDef binds a name to a type: a built-in type in the superglobal scope
// or a struct declared in source.
type TypeDef struct {
	Name     string
	Type     Type
	Position token.Position
}

// Variable is a variable, struct field, cbuffer member or function
// argument.
type Variable struct {
	Name string
	Type Type
	Mods TypeModifier

	// ArraySize is zero for non-array variables.
	ArraySize uint64

	// Binding is the ': expr' annotation, nil when absent.
	Binding ExprColon

	Position token.Position
}

// Direction is the parameter passing mode of a function argument.
type Direction uint8

const (
	In Direction = iota
	Out
	InOut
)

// String returns the HLSL keyword for the direction.
func (d Direction) String() string {
	switch d {
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return "in"
	}
}

// Argument is a function parameter.
type Argument struct {
	*Variable
	Direction Direction
}

// Function is a function declaration. The body is kept verbatim, without
// its enclosing braces; it is not parsed.
type Function struct {
	Name       string
	ReturnType Type
	Mods       TypeModifier
	Arguments  []*Argument

	// ReturnSemantic is nil when the function has none.
	ReturnSemantic *Semantic

	Body string

	// Prototype is true until a body has been seen.
	Prototype bool

	Position token.Position
}

// CBuffer is a constant buffer. Its members are visible as globals of the
// enclosing scope.
type CBuffer struct {
	Name     string
	Register *Register
	Members  *Scope
	Position token.Position
}

func (d *TypeDef) DefName() string          { return d.Name }
func (d *TypeDef) DefType() Type            { return d.Type }
func (d *TypeDef) Modifiers() TypeModifier  { return 0 }
func (d *TypeDef) Pos() token.Position      { return d.Position }
func (v *Variable) DefName() string         { return v.Name }
func (v *Variable) DefType() Type           { return v.Type }
func (v *Variable) Modifiers() TypeModifier { return v.Mods }
func (v *Variable) Pos() token.Position     { return v.Position }
func (f *Function) DefName() string         { return f.Name }
func (f *Function) DefType() Type           { return f.ReturnType }
func (f *Function) Modifiers() TypeModifier { return f.Mods }
func (f *Function) Pos() token.Position     { return f.Position }
func (c *CBuffer) DefName() string          { return c.Name }
func (c *CBuffer) DefType() Type            { return nil }
func (c *CBuffer) Modifiers() TypeModifier  { return 0 }
func (c *CBuffer) Pos() token.Position      { return c.Position }

// sameSignature reports whether g declares the same function as f.
func (f *Function) sameSignature(g *Function) bool {
	if f.ReturnType != g.ReturnType || len(f.Arguments) != len(g.Arguments) {
		return false
	}
	for i, a := range f.Arguments {
		b := g.Arguments[i]
		if a.Type != b.Type || a.ArraySize != b.ArraySize || a.Direction != b.Direction {
			return false
		}
	}
	return true
}
