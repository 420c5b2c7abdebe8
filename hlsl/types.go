// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
)

// DataType is the element type of scalars, vectors and matrices.
type DataType uint8

const (
	Bool DataType = iota
	Int
	Uint
	Half
	Float
	Double
	Min16Float
	Min16Int
	Min16Uint
)

var dataTypeNames = [...]string{
	Bool:       "bool",
	Int:        "int",
	Uint:       "uint",
	Half:       "half",
	Float:      "float",
	Double:     "double",
	Min16Float: "min16float",
	Min16Int:   "min16int",
	Min16Uint:  "min16uint",
}

// String returns the HLSL spelling of the data type.
func (d DataType) String() string {
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return fmt.Sprintf("DataType(%d)", uint8(d))
}

// Type is an HLSL type. Built-in types are singletons owned by a
// TypeRegistry and compare equal by pointer; struct types are created by
// the parser.
type Type interface {
	// TypeName returns the HLSL spelling of the type.
	TypeName() string

	isType()
}

// VoidType is the return type of functions returning nothing.
type VoidType struct{}

// ScalarType is a single value of DataType.
type ScalarType struct {
	DataType DataType
}

// VectorType is a vector of 1 to 4 components.
type VectorType struct {
	DataType DataType
	Count    uint8
}

// MatrixType is a matrix of 1 to 4 rows and columns.
type MatrixType struct {
	DataType DataType
	Rows     uint8
	Cols     uint8
}

// Texture2DType is the Texture2D resource type.
type Texture2DType struct{}

// TextureCubeType is the TextureCube resource type.
type TextureCubeType struct{}

// SamplerType is a sampler state object.
type SamplerType struct {
	// Comparison marks SamplerComparisonState.
	Comparison bool
}

// StructType is a user-defined struct. Anonymous structs get a generated
// name of the form __AnonymousStruct_N.
type StructType struct {
	Name      string
	Fields    *Scope
	Anonymous bool
}

func (*VoidType) TypeName() string { return "void" }

func (t *ScalarType) TypeName() string { return t.DataType.String() }

func (t *VectorType) TypeName() string {
	return fmt.Sprintf("%s%d", t.DataType, t.Count)
}

func (t *MatrixType) TypeName() string {
	return fmt.Sprintf("%s%dx%d", t.DataType, t.Rows, t.Cols)
}

func (*Texture2DType) TypeName() string { return "Texture2D" }

func (*TextureCubeType) TypeName() string { return "TextureCube" }

func (t *SamplerType) TypeName() string {
	if t.Comparison {
		return "SamplerComparisonState"
	}
	return "SamplerState"
}

func (t *StructType) TypeName() string { return t.Name }

func (*VoidType) isType()        {}
func (*ScalarType) isType()      {}
func (*VectorType) isType()      {}
func (*MatrixType) isType()      {}
func (*Texture2DType) isType()   {}
func (*TextureCubeType) isType() {}
func (*SamplerType) isType()     {}
func (*StructType) isType()      {}

// IsVoid reports whether t is the void type.
func IsVoid(t Type) bool {
	_, ok := t.(*VoidType)
	return ok
}

// acceptsSemantic reports whether variables of type t may carry a semantic.
func acceptsSemantic(t Type) bool {
	switch t.(type) {
	case *ScalarType, *VectorType:
		return true
	}
	return false
}
