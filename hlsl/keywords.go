// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"

	"github.com/gogpu/hlslc/lexer"
)

// Keyword identifiers used in the lexer keyword table.
const (
	KwStruct lexer.DeclID = iota + 1
	KwCBuffer
	KwTypedef
	KwConst
	KwRowMajor
	KwColumnMajor
	KwStatic
	KwUniform
	KwExtern
	KwVolatile
	KwPrecise
	KwGroupShared
	KwNoInterpolation
	KwNoPerspective
	KwCentroid
	KwIn
	KwOut
	KwInOut
	KwRegister
	KwPackOffset
	KwReturn
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwBreak
	KwContinue
	KwDiscard
	KwSwitch
	KwCase
	KwDefault
	KwTrue
	KwFalse
)

// KwFirstTypeName is the id of the first built-in type name keyword. Type
// names get consecutive ids in TypeRegistry.TypeNames order.
const KwFirstTypeName lexer.DeclID = 256

// IsTypeKeyword reports whether id names a built-in type.
func IsTypeKeyword(id lexer.DeclID) bool {
	return id >= KwFirstTypeName
}

var languageKeywords = []lexer.Decl{
	{ID: KwStruct, Text: "struct"},
	{ID: KwCBuffer, Text: "cbuffer"},
	{ID: KwTypedef, Text: "typedef"},
	{ID: KwConst, Text: "const"},
	{ID: KwRowMajor, Text: "row_major"},
	{ID: KwColumnMajor, Text: "column_major"},
	{ID: KwStatic, Text: "static"},
	{ID: KwUniform, Text: "uniform"},
	{ID: KwExtern, Text: "extern"},
	{ID: KwVolatile, Text: "volatile"},
	{ID: KwPrecise, Text: "precise"},
	{ID: KwGroupShared, Text: "groupshared"},
	{ID: KwNoInterpolation, Text: "nointerpolation"},
	{ID: KwNoPerspective, Text: "noperspective"},
	{ID: KwCentroid, Text: "centroid"},
	{ID: KwIn, Text: "in"},
	{ID: KwOut, Text: "out"},
	{ID: KwInOut, Text: "inout"},
	{ID: KwRegister, Text: "register"},
	{ID: KwPackOffset, Text: "packoffset"},
	{ID: KwReturn, Text: "return"},
	{ID: KwIf, Text: "if"},
	{ID: KwElse, Text: "else"},
	{ID: KwFor, Text: "for"},
	{ID: KwWhile, Text: "while"},
	{ID: KwDo, Text: "do"},
	{ID: KwBreak, Text: "break"},
	{ID: KwContinue, Text: "continue"},
	{ID: KwDiscard, Text: "discard"},
	{ID: KwSwitch, Text: "switch"},
	{ID: KwCase, Text: "case"},
	{ID: KwDefault, Text: "default"},
	{ID: KwTrue, Text: "true"},
	{ID: KwFalse, Text: "false"},
}

// Operator identifiers used in the lexer operator table.
const (
	OpSemicolon lexer.DeclID = iota + 1
	OpComma
	OpColon
	OpColonColon
	OpLeftParen
	OpRightParen
	OpLeftBrace
	OpRightBrace
	OpLeftBracket
	OpRightBracket
	OpDot
	OpQuestion
	OpAssign
	OpPlus
	OpMinus
	OpStar
	OpSlash
	OpPercent
	OpAmp
	OpPipe
	OpCaret
	OpTilde
	OpBang
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqualEqual
	OpBangEqual
	OpAmpAmp
	OpPipePipe
	OpLessLess
	OpGreaterGreater
	OpPlusPlus
	OpMinusMinus
	OpArrow
	OpPlusEqual
	OpMinusEqual
	OpStarEqual
	OpSlashEqual
	OpPercentEqual
	OpAmpEqual
	OpPipeEqual
	OpCaretEqual
	OpLessLessEqual
	OpGreaterGreaterEqual
)

var operators = []lexer.Decl{
	{ID: OpSemicolon, Text: ";"},
	{ID: OpComma, Text: ","},
	{ID: OpColon, Text: ":"},
	{ID: OpColonColon, Text: "::"},
	{ID: OpLeftParen, Text: "("},
	{ID: OpRightParen, Text: ")"},
	{ID: OpLeftBrace, Text: "{"},
	{ID: OpRightBrace, Text: "}"},
	{ID: OpLeftBracket, Text: "["},
	{ID: OpRightBracket, Text: "]"},
	{ID: OpDot, Text: "."},
	{ID: OpQuestion, Text: "?"},
	{ID: OpAssign, Text: "="},
	{ID: OpPlus, Text: "+"},
	{ID: OpMinus, Text: "-"},
	{ID: OpStar, Text: "*"},
	{ID: OpSlash, Text: "/"},
	{ID: OpPercent, Text: "%"},
	{ID: OpAmp, Text: "&"},
	{ID: OpPipe, Text: "|"},
	{ID: OpCaret, Text: "^"},
	{ID: OpTilde, Text: "~"},
	{ID: OpBang, Text: "!"},
	{ID: OpLess, Text: "<"},
	{ID: OpGreater, Text: ">"},
	{ID: OpLessEqual, Text: "<="},
	{ID: OpGreaterEqual, Text: ">="},
	{ID: OpEqualEqual, Text: "=="},
	{ID: OpBangEqual, Text: "!="},
	{ID: OpAmpAmp, Text: "&&"},
	{ID: OpPipePipe, Text: "||"},
	{ID: OpLessLess, Text: "<<"},
	{ID: OpGreaterGreater, Text: ">>"},
	{ID: OpPlusPlus, Text: "++"},
	{ID: OpMinusMinus, Text: "--"},
	{ID: OpArrow, Text: "->"},
	{ID: OpPlusEqual, Text: "+="},
	{ID: OpMinusEqual, Text: "-="},
	{ID: OpStarEqual, Text: "*="},
	{ID: OpSlashEqual, Text: "/="},
	{ID: OpPercentEqual, Text: "%="},
	{ID: OpAmpEqual, Text: "&="},
	{ID: OpPipeEqual, Text: "|="},
	{ID: OpCaretEqual, Text: "^="},
	{ID: OpLessLessEqual, Text: "<<="},
	{ID: OpGreaterGreaterEqual, Text: ">>="},
}

var operatorText = func() map[lexer.DeclID]string {
	m := make(map[lexer.DeclID]string, len(operators))
	for _, op := range operators {
		m[op.ID] = op.Text
	}
	return m
}()

// OperatorText returns the spelling of an operator id.
func OperatorText(id lexer.DeclID) string {
	return operatorText[id]
}

// LexerOptions returns the HLSL lexer configuration. Every built-in type
// name of reg is a keyword.
//
// Integers switch base only through the "0x" prefix; HLSL has no binary
// literals and C-style leading-zero octal is not recognized.
func LexerOptions(reg *TypeRegistry) *lexer.Options {
	names := reg.TypeNames()
	keywords := make([]lexer.Decl, 0, len(languageKeywords)+len(names))
	keywords = append(keywords, languageKeywords...)
	for i, name := range names {
		keywords = append(keywords, lexer.Decl{ID: KwFirstTypeName + lexer.DeclID(i), Text: name})
	}

	return &lexer.Options{
		Keywords:              keywords,
		Operators:             append([]lexer.Decl(nil), operators...),
		SingleLineComment:     "//",
		MultiLineCommentBegin: "/*",
		MultiLineCommentEnd:   "*/",
		HexDelimiter:          'x',
		DecimalDelimiter:      '.',
	}
}

// reservedWords contains HLSL keywords and reserved words that this grammar
// does not support. They cannot be used as names.
var reservedWords = map[string]struct{}{
	// FXC keywords without a place in this grammar
	"AppendStructuredBuffer":  {},
	"asm":                     {},
	"asm_fragment":            {},
	"BlendState":              {},
	"Buffer":                  {},
	"ByteAddressBuffer":       {},
	"class":                   {},
	"compile":                 {},
	"compile_fragment":        {},
	"CompileShader":           {},
	"ComputeShader":           {},
	"ConsumeStructuredBuffer": {},
	"DepthStencilState":       {},
	"DepthStencilView":        {},
	"DomainShader":            {},
	"export":                  {},
	"fxgroup":                 {},
	"GeometryShader":          {},
	"Hullshader":              {},
	"inline":                  {},
	"InputPatch":              {},
	"interface":               {},
	"line":                    {},
	"lineadj":                 {},
	"LineStream":              {},
	"matrix":                  {},
	"namespace":               {},
	"NULL":                    {},
	"OutputPatch":             {},
	"pass":                    {},
	"pixelfragment":           {},
	"PixelShader":             {},
	"point":                   {},
	"PointStream":             {},
	"RasterizerState":         {},
	"RenderTargetView":        {},
	"RWBuffer":                {},
	"RWByteAddressBuffer":     {},
	"RWStructuredBuffer":      {},
	"RWTexture1D":             {},
	"RWTexture1DArray":        {},
	"RWTexture2D":             {},
	"RWTexture2DArray":        {},
	"RWTexture3D":             {},
	"shared":                  {},
	"snorm":                   {},
	"stateblock":              {},
	"stateblock_state":        {},
	"string":                  {},
	"StructuredBuffer":        {},
	"tbuffer":                 {},
	"technique":               {},
	"technique10":             {},
	"technique11":             {},
	"texture":                 {},
	"Texture1D":               {},
	"Texture1DArray":          {},
	"Texture2DArray":          {},
	"Texture2DMS":             {},
	"Texture2DMSArray":        {},
	"Texture3D":               {},
	"TextureCubeArray":        {},
	"triangle":                {},
	"triangleadj":             {},
	"TriangleStream":          {},
	"unorm":                   {},
	"unsigned":                {},
	"vector":                  {},
	"vertexfragment":          {},
	"VertexShader":            {},

	// FXC reserved words
	"auto":             {},
	"catch":            {},
	"char":             {},
	"const_cast":       {},
	"delete":           {},
	"dynamic_cast":     {},
	"enum":             {},
	"explicit":         {},
	"friend":           {},
	"goto":             {},
	"long":             {},
	"mutable":          {},
	"new":              {},
	"operator":         {},
	"private":          {},
	"protected":        {},
	"public":           {},
	"reinterpret_cast": {},
	"short":            {},
	"signed":           {},
	"sizeof":           {},
	"static_cast":      {},
	"template":         {},
	"this":             {},
	"throw":            {},
	"try":              {},
	"typename":         {},
	"union":            {},
	"using":            {},
	"virtual":          {},
}

// caseInsensitiveWords are legacy keywords FXC matches in any case.
var caseInsensitiveWords = map[string]struct{}{
	"asm":              {},
	"decl":             {},
	"pass":             {},
	"technique":        {},
	"texture1d":        {},
	"texture3d":        {},
	"texturecubearray": {},
}

// IsReserved reports whether name is an HLSL reserved word that this
// front end does not accept as a declaration name.
func IsReserved(name string) bool {
	if _, ok := reservedWords[name]; ok {
		return true
	}
	_, ok := caseInsensitiveWords[strings.ToLower(name)]
	return ok
}
