// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"
)

// ShaderModel represents a DirectX Shader Model version.
// The parser rejects bindings the targeted model does not support.
// The zero value targets no particular model and accepts everything.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel5_0 is the base SM5 version (DirectX 11).
	ShaderModel5_0 ShaderModel = iota + 1

	// ShaderModel5_1 adds register spaces.
	ShaderModel5_1

	// ShaderModel6_0 introduces wave intrinsics and DXIL.
	ShaderModel6_0

	// ShaderModel6_1 adds SV_ViewID and barycentrics.
	ShaderModel6_1

	// ShaderModel6_2 adds float16 and denorm control.
	ShaderModel6_2

	// ShaderModel6_3 adds DirectX Raytracing (DXR).
	ShaderModel6_3

	// ShaderModel6_4 adds variable rate shading and library subobjects.
	ShaderModel6_4

	// ShaderModel6_5 adds mesh shaders and sampler feedback.
	ShaderModel6_5

	// ShaderModel6_6 adds 64-bit atomics and dynamic resources.
	ShaderModel6_6

	// ShaderModel6_7 adds advanced mesh shaders and work graphs.
	ShaderModel6_7
)

// String returns a human-readable representation of the shader model.
// Example: "SM 5.1", "SM 6.0"
func (sm ShaderModel) String() string {
	if sm == 0 {
		return "SM any"
	}
	if sm > ShaderModel6_7 {
		return fmt.Sprintf("ShaderModel(%d)", uint8(sm))
	}
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// version returns the major and minor version numbers.
func (sm ShaderModel) version() (major, minor uint8) {
	if sm == ShaderModel5_0 || sm == ShaderModel5_1 {
		return 5, uint8(sm - ShaderModel5_0)
	}
	if sm >= ShaderModel6_0 && sm <= ShaderModel6_7 {
		return 6, uint8(sm - ShaderModel6_0)
	}
	return 0, 0
}

// Major returns the major version number, or 0 for the zero model.
func (sm ShaderModel) Major() uint8 {
	major, _ := sm.version()
	return major
}

// Minor returns the minor version number.
func (sm ShaderModel) Minor() uint8 {
	_, minor := sm.version()
	return minor
}

// ParseShaderModel parses a version written as "5.1", "5_1" or with a
// profile-style "sm_" prefix such as "sm_6_0".
func ParseShaderModel(s string) (ShaderModel, error) {
	v := strings.TrimPrefix(strings.ToLower(s), "sm_")
	v = strings.ReplaceAll(v, "_", ".")
	for sm := ShaderModel5_0; sm <= ShaderModel6_7; sm++ {
		major, minor := sm.version()
		if v == fmt.Sprintf("%d.%d", major, minor) {
			return sm, nil
		}
	}
	return 0, fmt.Errorf("unknown shader model %q", s)
}

// SupportsRegisterSpaces reports whether register(x#, space#) may be used.
// Register spaces were introduced in Shader Model 5.1.
func (sm ShaderModel) SupportsRegisterSpaces() bool {
	return sm.atLeast(ShaderModel5_1)
}

// SupportsSemantic reports whether the system-value semantic name is
// available. Names without a known minimum are always available.
func (sm ShaderModel) SupportsSemantic(name string) bool {
	first, ok := semanticMinModel[name]
	return !ok || sm.atLeast(first)
}

func (sm ShaderModel) atLeast(first ShaderModel) bool {
	return sm == 0 || sm >= first
}

// semanticMinModel maps canonical semantic names to the first shader
// model that has them.
var semanticMinModel = map[string]ShaderModel{
	"SV_Barycentrics": ShaderModel6_1,
	"SV_ViewID":       ShaderModel6_1,
}
