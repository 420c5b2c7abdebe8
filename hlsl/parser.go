// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"modernc.org/token"

	"github.com/gogpu/hlslc/lexer"
	"github.com/gogpu/hlslc/source"
)

// DefinitionKind is a set of declaration kinds accepted in a context.
type DefinitionKind uint8

const (
	DefType DefinitionKind = 1 << iota
	DefVariable
	DefFunction
	DefCBuffer
	DefArgument
)

// Shader is the result of a successful parse.
type Shader struct {
	// Global holds the top-level definitions. Its parent is the registry's
	// superglobal scope.
	Global *Scope

	Registry *TypeRegistry
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithRegistry makes the parser resolve built-in types in reg instead of
// DefaultRegistry. The lexer should use LexerOptions(reg).
func WithRegistry(reg *TypeRegistry) ParserOption {
	return func(p *Parser) {
		p.reg = reg
	}
}

// WithShaderModel makes the parser reject register spaces and semantics
// that sm does not support.
func WithShaderModel(sm ShaderModel) ParserOption {
	return func(p *Parser) {
		p.model = sm
	}
}

// Parser is a recursive descent parser building a scope tree from lexems.
// A Parser parses one shader; after an error it must be discarded.
type Parser struct {
	lx    *lexer.Lexer
	reg   *TypeRegistry
	model ShaderModel
	cur   lexer.Lexem

	// scopes is the lookup stack, innermost last. scopes[0] is the
	// superglobal scope.
	scopes    []*Scope
	anonymous int
}

// NewParser creates a parser reading lexems from lx.
func NewParser(lx *lexer.Lexer, opts ...ParserOption) *Parser {
	p := &Parser{lx: lx}
	for _, opt := range opts {
		opt(p)
	}
	if p.reg == nil {
		p.reg = DefaultRegistry()
	}
	return p
}

// ParseShader parses definitions until the end of the stream.
func (p *Parser) ParseShader() (*Shader, error) {
	global := NewScope(p.reg.Scope())
	p.scopes = []*Scope{p.reg.Scope(), global}

	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.Kind != lexer.EndOfStream {
		if p.isOp(OpSemicolon) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.parseDefinitionInto(DefType | DefVariable | DefFunction | DefCBuffer); err != nil {
			return nil, err
		}
	}
	return &Shader{Global: global, Registry: p.reg}, nil
}

// FindDefinition resolves name through the scope stack, innermost first,
// ending at the superglobal scope.
func (p *Parser) FindDefinition(name string) (Definition, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if def, ok := p.scopes[i].Lookup(name); ok {
			return def, true
		}
	}
	return nil, false
}

// FindType resolves name to a type.
func (p *Parser) FindType(name string) (Type, bool) {
	def, ok := p.FindDefinition(name)
	if !ok {
		return nil, false
	}
	td, ok := def.(*TypeDef)
	if !ok {
		return nil, false
	}
	return td.Type, true
}

// FindVariable resolves name to a variable.
func (p *Parser) FindVariable(name string) (*Variable, bool) {
	def, ok := p.FindDefinition(name)
	if !ok {
		return nil, false
	}
	v, ok := def.(*Variable)
	return v, ok
}

// FindFunction resolves name to a function.
func (p *Parser) FindFunction(name string) (*Function, bool) {
	def, ok := p.FindDefinition(name)
	if !ok {
		return nil, false
	}
	fn, ok := def.(*Function)
	return fn, ok
}

// --- scope stack ---

func (p *Parser) top() *Scope {
	return p.scopes[len(p.scopes)-1]
}

func (p *Parser) push(s *Scope) {
	p.scopes = append(p.scopes, s)
}

func (p *Parser) pop() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// declare adds def to the innermost scope. A function definition matching
// an earlier prototype completes that prototype.
func (p *Parser) declare(def Definition) error {
	scope := p.top()
	if fn, ok := def.(*Function); ok {
		if prev, ok := scope.Lookup(fn.Name); ok {
			if pf, ok := prev.(*Function); ok && pf.sameSignature(fn) {
				return p.mergeFunction(pf, fn)
			}
		}
	}
	if err := scope.Add(def); err != nil {
		return p.errorf(def.Pos(), "%v", err)
	}
	return nil
}

func (p *Parser) mergeFunction(prev, fn *Function) error {
	if fn.Prototype {
		return nil
	}
	if !prev.Prototype {
		return p.errorf(fn.Position, "redefinition of function %q", fn.Name)
	}
	prev.Arguments = fn.Arguments
	prev.Body = fn.Body
	prev.Prototype = false
	prev.Mods |= fn.Mods
	if fn.ReturnSemantic != nil {
		prev.ReturnSemantic = fn.ReturnSemantic
	}
	return nil
}

// --- lexem helpers ---

// advance reads the next lexem, skipping comments.
func (p *Parser) advance() error {
	for {
		lx, err := p.lx.Next()
		if err != nil {
			return err
		}
		if lx.Kind == lexer.Comment {
			continue
		}
		p.cur = lx
		return nil
	}
}

func (p *Parser) isOp(id lexer.DeclID) bool {
	return p.cur.Is(lexer.Operator, id)
}

func (p *Parser) isKw(id lexer.DeclID) bool {
	return p.cur.Is(lexer.Keyword, id)
}

// expectOp consumes the operator id or fails.
func (p *Parser) expectOp(id lexer.DeclID) error {
	if !p.isOp(id) {
		return p.unexpected(fmt.Sprintf("%q", OperatorText(id)))
	}
	return p.advance()
}

// tryOp consumes the operator id if it is current.
func (p *Parser) tryOp(id lexer.DeclID) (bool, error) {
	if !p.isOp(id) {
		return false, nil
	}
	return true, p.advance()
}

// expectName consumes an identifier usable as a declaration name.
func (p *Parser) expectName() (lexer.Lexem, error) {
	if p.cur.Kind != lexer.Identifier {
		return lexer.Lexem{}, p.unexpected("identifier")
	}
	name := p.cur
	if IsReserved(name.Raw) {
		return lexer.Lexem{}, p.errorf(name.Pos, "%q is a reserved word", name.Raw)
	}
	return name, p.advance()
}

func (p *Parser) unexpected(want string) error {
	return p.errorf(p.cur.Pos, "expected %s, found %s", want, describe(p.cur))
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) error {
	return source.Errorf(source.ErrSyntax, pos, format, args...)
}

func (p *Parser) notImplemented(pos token.Position, what string) error {
	return source.Errorf(source.ErrNotImplemented, pos, "%s", what)
}

func describe(lx lexer.Lexem) string {
	switch lx.Kind {
	case lexer.EndOfStream:
		return "end of stream"
	case lexer.Keyword:
		return fmt.Sprintf("keyword %q", lx.Raw)
	case lexer.Operator:
		return fmt.Sprintf("%q", lx.Raw)
	case lexer.Identifier:
		return fmt.Sprintf("identifier %q", lx.Raw)
	default:
		return fmt.Sprintf("constant %s", lx.Raw)
	}
}
