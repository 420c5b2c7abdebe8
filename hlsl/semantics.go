// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"modernc.org/token"
)

// Semantic is a shader input/output semantic such as TEXCOORD1 or
// SV_Target.
type Semantic struct {
	// Name is the canonical spelling from the semantic table.
	Name string

	// Index is the trailing digit, zero when absent.
	Index uint8

	// Indexed reports whether the index was written explicitly.
	Indexed bool

	Pos token.Position
}

func (*Semantic) exprColon() {}

// String returns the semantic as written, in canonical case.
func (s *Semantic) String() string {
	if s.Indexed {
		return fmt.Sprintf("%s%d", s.Name, s.Index)
	}
	return s.Name
}

var semanticNames = []string{
	// Direct3D 9 semantics
	"BINORMAL",
	"BLENDINDICES",
	"BLENDWEIGHT",
	"COLOR",
	"DEPTH",
	"FOG",
	"NORMAL",
	"POSITION",
	"POSITIONT",
	"PSIZE",
	"TANGENT",
	"TESSFACTOR",
	"TEXCOORD",
	"VFACE",
	"VPOS",

	// System values
	"SV_Barycentrics",
	"SV_ClipDistance",
	"SV_Coverage",
	"SV_CullDistance",
	"SV_Depth",
	"SV_DepthGreaterEqual",
	"SV_DepthLessEqual",
	"SV_DispatchThreadID",
	"SV_DomainLocation",
	"SV_GroupID",
	"SV_GroupIndex",
	"SV_GroupThreadID",
	"SV_GSInstanceID",
	"SV_InsideTessFactor",
	"SV_InstanceID",
	"SV_IsFrontFace",
	"SV_OutputControlPointID",
	"SV_Position",
	"SV_PrimitiveID",
	"SV_RenderTargetArrayIndex",
	"SV_SampleIndex",
	"SV_StencilRef",
	"SV_Target",
	"SV_TessFactor",
	"SV_VertexID",
	"SV_ViewID",
	"SV_ViewportArrayIndex",
}

var semanticIndex = func() map[string]string {
	m := make(map[string]string, len(semanticNames))
	for _, name := range semanticNames {
		m[strings.ToUpper(name)] = name
	}
	return m
}()

// LookupSemantic resolves a semantic as written in source. One trailing
// digit is taken as the semantic index; the remaining name is matched
// case-insensitively against the known semantics.
func LookupSemantic(text string) (*Semantic, bool) {
	if name, ok := semanticIndex[strings.ToUpper(text)]; ok {
		return &Semantic{Name: name}, true
	}
	if n := len(text); n > 1 && text[n-1] >= '0' && text[n-1] <= '9' {
		if name, ok := semanticIndex[strings.ToUpper(text[:n-1])]; ok {
			return &Semantic{Name: name, Index: text[n-1] - '0', Indexed: true}, true
		}
	}
	return nil, false
}
