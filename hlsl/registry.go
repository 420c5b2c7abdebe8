// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"sort"
	"sync"
)

// TypeRegistry owns the built-in types and the superglobal scope they are
// declared in. A registry is immutable once built and may be shared by
// concurrent parses.
type TypeRegistry struct {
	scope *Scope
	names []string

	void      *VoidType
	scalars   map[DataType]*ScalarType
	vectors   map[DataType]*[4]*VectorType
	matrices  map[DataType]*[4][4]*MatrixType
	tex2D     *Texture2DType
	texCube   *TextureCubeType
	sampler   *SamplerType
	samplerCp *SamplerType
}

var defaultRegistry = sync.OnceValue(NewTypeRegistry)

// DefaultRegistry returns the process-wide registry, building it on first
// use.
func DefaultRegistry() *TypeRegistry {
	return defaultRegistry()
}

// scalarNames lists the scalar spellings and the data type they denote.
// dword is an alias of uint.
var scalarNames = []struct {
	name string
	dt   DataType
}{
	{"bool", Bool},
	{"int", Int},
	{"uint", Uint},
	{"dword", Uint},
	{"half", Half},
	{"float", Float},
	{"double", Double},
	{"min16float", Min16Float},
	{"min16int", Min16Int},
	{"min16uint", Min16Uint},
}

// NewTypeRegistry builds a registry holding void, every scalar, vector
// (1 to 4 components) and matrix (1 to 4 rows and columns) type, the
// texture types and the sampler types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		scope:     NewScope(nil),
		void:      &VoidType{},
		scalars:   make(map[DataType]*ScalarType),
		vectors:   make(map[DataType]*[4]*VectorType),
		matrices:  make(map[DataType]*[4][4]*MatrixType),
		tex2D:     &Texture2DType{},
		texCube:   &TextureCubeType{},
		sampler:   &SamplerType{},
		samplerCp: &SamplerType{Comparison: true},
	}

	r.declare("void", r.void)
	for _, sn := range scalarNames {
		dt := sn.dt
		if _, ok := r.scalars[dt]; !ok {
			r.scalars[dt] = &ScalarType{DataType: dt}
			vecs := new([4]*VectorType)
			mats := new([4][4]*MatrixType)
			for n := uint8(1); n <= 4; n++ {
				vecs[n-1] = &VectorType{DataType: dt, Count: n}
				for c := uint8(1); c <= 4; c++ {
					mats[n-1][c-1] = &MatrixType{DataType: dt, Rows: n, Cols: c}
				}
			}
			r.vectors[dt] = vecs
			r.matrices[dt] = mats
		}

		r.declare(sn.name, r.scalars[dt])
		for n := 1; n <= 4; n++ {
			r.declare(fmt.Sprintf("%s%d", sn.name, n), r.vectors[dt][n-1])
			for c := 1; c <= 4; c++ {
				r.declare(fmt.Sprintf("%s%dx%d", sn.name, n, c), r.matrices[dt][n-1][c-1])
			}
		}
	}
	r.declare("Texture2D", r.tex2D)
	r.declare("TextureCube", r.texCube)
	r.declare("sampler", r.sampler)
	r.declare("SamplerState", r.sampler)
	r.declare("SamplerComparisonState", r.samplerCp)

	r.scope.freeze()
	sort.Strings(r.names)
	return r
}

func (r *TypeRegistry) declare(name string, t Type) {
	if err := r.scope.Add(&TypeDef{Name: name, Type: t}); err != nil {
		panic(fmt.Sprintf("hlsl: built-in type %s: %v", name, err))
	}
	r.names = append(r.names, name)
}

// Scope returns the superglobal scope. It is frozen.
func (r *TypeRegistry) Scope() *Scope {
	return r.scope
}

// TypeNames returns every built-in type name in sorted order.
func (r *TypeRegistry) TypeNames() []string {
	return append([]string(nil), r.names...)
}

// Lookup returns the built-in type spelled name.
func (r *TypeRegistry) Lookup(name string) (Type, bool) {
	def, ok := r.scope.Lookup(name)
	if !ok {
		return nil, false
	}
	return def.DefType(), true
}

// Void returns the void type.
func (r *TypeRegistry) Void() *VoidType {
	return r.void
}

// Scalar returns the scalar type of dt.
func (r *TypeRegistry) Scalar(dt DataType) *ScalarType {
	return r.scalars[dt]
}

// Vector returns the vector type of dt with n components, or nil if n is
// out of range.
func (r *TypeRegistry) Vector(dt DataType, n int) *VectorType {
	vecs, ok := r.vectors[dt]
	if !ok || n < 1 || n > 4 {
		return nil
	}
	return vecs[n-1]
}

// Matrix returns the rows x cols matrix type of dt, or nil if a dimension
// is out of range.
func (r *TypeRegistry) Matrix(dt DataType, rows, cols int) *MatrixType {
	mats, ok := r.matrices[dt]
	if !ok || rows < 1 || rows > 4 || cols < 1 || cols > 4 {
		return nil
	}
	return mats[rows-1][cols-1]
}

// Texture2D returns the Texture2D type.
func (r *TypeRegistry) Texture2D() *Texture2DType {
	return r.tex2D
}

// TextureCube returns the TextureCube type.
func (r *TypeRegistry) TextureCube() *TextureCubeType {
	return r.texCube
}

// Sampler returns the sampler type; comparison selects
// SamplerComparisonState.
func (r *TypeRegistry) Sampler(comparison bool) *SamplerType {
	if comparison {
		return r.samplerCp
	}
	return r.sampler
}
