// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/hlslc/lexer"
	"github.com/gogpu/hlslc/source"
)

// parseDefinitionInto parses one definition and declares its results in
// the innermost scope.
func (p *Parser) parseDefinitionInto(allowed DefinitionKind) error {
	defs, err := p.parseDefinition(allowed)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := p.declare(def); err != nil {
			return err
		}
	}
	return nil
}

// parseScope parses '{' definitions '}' into scope.
func (p *Parser) parseScope(allowed DefinitionKind, scope *Scope) error {
	if err := p.expectOp(OpLeftBrace); err != nil {
		return err
	}
	p.push(scope)
	for !p.isOp(OpRightBrace) {
		if p.cur.Kind == lexer.EndOfStream {
			return p.unexpected(`"}"`)
		}
		if err := p.parseDefinitionInto(allowed); err != nil {
			return err
		}
	}
	p.pop()
	return p.advance()
}

// parseDefinition parses a declaration. It returns the struct type
// declared along the way, if any, followed by the declared function or
// variables.
func (p *Parser) parseDefinition(allowed DefinitionKind) ([]Definition, error) {
	if p.isKw(KwTypedef) {
		return nil, p.notImplemented(p.cur.Pos, "typedef")
	}
	if p.isKw(KwCBuffer) {
		if allowed&DefCBuffer == 0 {
			return nil, p.errorf(p.cur.Pos, "cbuffer not allowed here")
		}
		cb, err := p.parseCBuffer()
		if err != nil {
			return nil, err
		}
		return []Definition{cb}, nil
	}

	modPos := p.cur.Pos
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	typ, decl, err := p.parseType(allowed&DefType != 0)
	if err != nil {
		return nil, err
	}
	var defs []Definition
	if decl != nil {
		defs = append(defs, decl)
	}

	if p.cur.Kind != lexer.Identifier {
		if decl == nil {
			return nil, p.unexpected("identifier")
		}
		if mods != 0 {
			return nil, p.errorf(modPos, "modifiers %q on a type declaration", mods.String())
		}
		return defs, p.expectOp(OpSemicolon)
	}

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}

	if p.isOp(OpLeftParen) {
		if allowed&DefFunction == 0 {
			return nil, p.errorf(name.Pos, "function %q not allowed here", name.Raw)
		}
		fn, err := p.parseFunction(name, typ, mods)
		if err != nil {
			return nil, err
		}
		return append(defs, fn), nil
	}

	if allowed&(DefVariable|DefArgument) == 0 {
		return nil, p.errorf(name.Pos, "variable %q not allowed here", name.Raw)
	}
	vars, err := p.parseVariables(name, typ, mods, allowed&DefArgument != 0)
	if err != nil {
		return nil, err
	}
	return append(defs, vars...), nil
}

func (p *Parser) parseModifiers() (TypeModifier, error) {
	var mods TypeModifier
	for p.cur.Kind == lexer.Keyword {
		m, ok := modifierKeywords[p.cur.ID]
		if !ok {
			break
		}
		if mods&m != 0 {
			return 0, p.errorf(p.cur.Pos, "duplicate %s modifier", p.cur.Raw)
		}
		mods |= m
		if mods.Has(RowMajor | ColumnMajor) {
			return 0, p.errorf(p.cur.Pos, "row_major and column_major are mutually exclusive")
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
	}
	return mods, nil
}

// parseType parses a type reference or, when allowDecl is set, a struct
// declaration. The returned TypeDef is non-nil only for a newly declared
// struct.
func (p *Parser) parseType(allowDecl bool) (Type, *TypeDef, error) {
	if p.isKw(KwStruct) {
		return p.parseStruct(allowDecl)
	}

	switch {
	case p.cur.Kind == lexer.Identifier:
	case p.cur.Kind == lexer.Keyword && IsTypeKeyword(p.cur.ID):
	default:
		return nil, nil, p.unexpected("type")
	}
	t, err := p.resolveType(p.cur)
	if err != nil {
		return nil, nil, err
	}
	return t, nil, p.advance()
}

func (p *Parser) resolveType(name lexer.Lexem) (Type, error) {
	def, ok := p.FindDefinition(name.Raw)
	if !ok {
		return nil, p.errorf(name.Pos, "undefined type %q", name.Raw)
	}
	td, ok := def.(*TypeDef)
	if !ok {
		return nil, p.errorf(name.Pos, "%q is not a type", name.Raw)
	}
	return td.Type, nil
}

func (p *Parser) parseStruct(allowDecl bool) (Type, *TypeDef, error) {
	structPos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, nil, err
	}

	if p.cur.Kind == lexer.Identifier {
		name, err := p.expectName()
		if err != nil {
			return nil, nil, err
		}

		if !p.isOp(OpLeftBrace) {
			// struct S x; refers to an existing struct
			def, ok := p.FindDefinition(name.Raw)
			if !ok {
				return nil, nil, p.errorf(name.Pos, "undefined struct %q", name.Raw)
			}
			if td, ok := def.(*TypeDef); ok {
				if st, ok := td.Type.(*StructType); ok {
					return st, nil, nil
				}
			}
			return nil, nil, p.errorf(name.Pos, "redefinition of %q as a struct", name.Raw)
		}

		if !allowDecl {
			return nil, nil, p.errorf(structPos, "struct declaration not allowed here")
		}
		if _, ok := p.top().Lookup(name.Raw); ok {
			return nil, nil, p.errorf(name.Pos, "redefinition of %q", name.Raw)
		}
		st := &StructType{Name: name.Raw}
		if err := p.parseStructBody(st); err != nil {
			return nil, nil, err
		}
		return st, &TypeDef{Name: st.Name, Type: st, Position: name.Pos}, nil
	}

	if !p.isOp(OpLeftBrace) {
		return nil, nil, p.unexpected(`struct name or "{"`)
	}
	if !allowDecl {
		return nil, nil, p.errorf(structPos, "struct declaration not allowed here")
	}
	st := &StructType{Name: p.anonymousName(), Anonymous: true}
	if err := p.parseStructBody(st); err != nil {
		return nil, nil, err
	}
	return st, &TypeDef{Name: st.Name, Type: st, Position: structPos}, nil
}

// anonymousName returns the next __AnonymousStruct_N not already visible.
func (p *Parser) anonymousName() string {
	for {
		name := fmt.Sprintf("__AnonymousStruct_%d", p.anonymous)
		p.anonymous++
		if _, taken := p.FindDefinition(name); !taken {
			return name
		}
	}
}

func (p *Parser) parseStructBody(st *StructType) error {
	st.Fields = NewScope(p.top())
	return p.parseScope(DefVariable, st.Fields)
}

// parseVariables parses the rest of a variable declaration after its
// first name. Outside argument lists further declarators may follow
// after commas, and the declaration ends with ';'.
func (p *Parser) parseVariables(name lexer.Lexem, typ Type, mods TypeModifier, argument bool) ([]Definition, error) {
	if IsVoid(typ) {
		return nil, p.errorf(name.Pos, "variable %q declared void", name.Raw)
	}

	var defs []Definition
	for {
		v := &Variable{Name: name.Raw, Type: typ, Mods: mods, Position: name.Pos}
		if err := p.parseVariableTail(v); err != nil {
			return nil, err
		}
		defs = append(defs, v)
		if argument {
			return defs, nil
		}

		more, err := p.tryOp(OpComma)
		if err != nil {
			return nil, err
		}
		if !more {
			return defs, p.expectOp(OpSemicolon)
		}
		if name, err = p.expectName(); err != nil {
			return nil, err
		}
	}
}

// parseVariableTail parses the optional array size, binding, annotations
// and initializer of one declarator.
func (p *Parser) parseVariableTail(v *Variable) error {
	ok, err := p.tryOp(OpLeftBracket)
	if err != nil {
		return err
	}
	if ok {
		if p.cur.Kind != lexer.ConstantInteger {
			return p.unexpected("array size")
		}
		if p.cur.Int == 0 {
			return p.errorf(p.cur.Pos, "array %q has zero size", v.Name)
		}
		v.ArraySize = p.cur.Int
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expectOp(OpRightBracket); err != nil {
			return err
		}
	}

	if ok, err = p.tryOp(OpColon); err != nil {
		return err
	}
	if ok {
		binding, err := p.parseExprColon()
		if err != nil {
			return err
		}
		if sem, ok := binding.(*Semantic); ok && !acceptsSemantic(v.Type) {
			return p.errorf(sem.Pos, "semantic %s not allowed on %s %q", sem, v.Type.TypeName(), v.Name)
		}
		v.Binding = binding
	}

	if p.isOp(OpLess) {
		return p.notImplemented(p.cur.Pos, "annotations")
	}
	if p.isOp(OpAssign) {
		return p.notImplemented(p.cur.Pos, "variable initializers")
	}
	return nil
}

func (p *Parser) parseFunction(name lexer.Lexem, ret Type, mods TypeModifier) (*Function, error) {
	fn := &Function{
		Name:       name.Raw,
		ReturnType: ret,
		Mods:       mods,
		Prototype:  true,
		Position:   name.Pos,
	}
	if err := p.parseArguments(fn); err != nil {
		return nil, err
	}

	if p.isOp(OpColon) {
		if IsVoid(ret) {
			return nil, p.errorf(p.cur.Pos, "void function %q cannot have a return semantic", fn.Name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		binding, err := p.parseExprColon()
		if err != nil {
			return nil, err
		}
		sem, ok := binding.(*Semantic)
		if !ok {
			return nil, p.errorf(name.Pos, "function %q return binding must be a semantic", fn.Name)
		}
		fn.ReturnSemantic = sem
	}

	if p.isOp(OpSemicolon) {
		return fn, p.advance()
	}
	if !p.isOp(OpLeftBrace) {
		return nil, p.unexpected(`"{" or ";"`)
	}
	body, err := p.captureBody()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.Prototype = false
	return fn, p.advance()
}

// parseArguments parses '(' arguments ')'. Arguments live in their own
// scope so that argument names are unique.
func (p *Parser) parseArguments(fn *Function) error {
	if err := p.expectOp(OpLeftParen); err != nil {
		return err
	}

	if p.cur.Kind == lexer.Keyword && IsTypeKeyword(p.cur.ID) {
		if t, ok := p.FindType(p.cur.Raw); ok && IsVoid(t) {
			// f(void)
			if err := p.advance(); err != nil {
				return err
			}
			return p.expectOp(OpRightParen)
		}
	}

	args := NewScope(p.top())
	p.push(args)
	for more := !p.isOp(OpRightParen); more; {
		dir, err := p.parseDirection()
		if err != nil {
			return err
		}
		defs, err := p.parseDefinition(DefArgument)
		if err != nil {
			return err
		}
		v := defs[0].(*Variable)
		if err := args.Add(v); err != nil {
			return p.errorf(v.Position, "%v", err)
		}
		fn.Arguments = append(fn.Arguments, &Argument{Variable: v, Direction: dir})

		if more, err = p.tryOp(OpComma); err != nil {
			return err
		}
	}
	p.pop()
	return p.expectOp(OpRightParen)
}

func (p *Parser) parseDirection() (Direction, error) {
	dir := In
	switch {
	case p.isKw(KwIn):
	case p.isKw(KwOut):
		dir = Out
	case p.isKw(KwInOut):
		dir = InOut
	default:
		return In, nil
	}
	return dir, p.advance()
}

// captureBody copies the function body verbatim from the character source.
// The current lexem is the opening brace; braces inside comments, strings
// and character constants are not counted. On return the source is
// positioned after the closing brace.
func (p *Parser) captureBody() (string, error) {
	open := p.cur.Pos
	src := p.lx.Source()
	opts := p.lx.Options()
	scan := newBodyScanner(opts)

	var sb strings.Builder
	depth := 1
	for {
		c := src.NextChar()
		if c == source.EOF {
			if err := src.Err(); err != nil {
				return "", fmt.Errorf("read %s: %w", src.Name(), err)
			}
			if !src.Done() {
				return "", source.Errorf(source.ErrLexical, src.LastPos(), "invalid character %q", c)
			}
			return "", p.errorf(open, "unterminated function body: unexpected end of stream")
		}
		switch scan.feed(c) {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return sb.String(), nil
			}
		}
		sb.WriteRune(c)
	}
}

func (p *Parser) parseCBuffer() (*CBuffer, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, ok := p.top().Lookup(name.Raw); ok {
		return nil, p.errorf(name.Pos, "redefinition of %q", name.Raw)
	}
	cb := &CBuffer{Name: name.Raw, Position: name.Pos}

	if p.isOp(OpColon) {
		colon := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		binding, err := p.parseExprColon()
		if err != nil {
			return nil, err
		}
		reg, ok := binding.(*Register)
		if !ok {
			return nil, p.errorf(colon, "cbuffer %q must be bound with register()", cb.Name)
		}
		if reg.Kind != RegisterTypeB {
			return nil, p.errorf(reg.Pos, "cbuffer %q bound to %s register, expected b", cb.Name, reg.Kind)
		}
		cb.Register = reg
	}

	cb.Members = NewScope(p.top())
	if err := p.parseScope(DefVariable, cb.Members); err != nil {
		return nil, err
	}
	if _, err := p.tryOp(OpSemicolon); err != nil {
		return nil, err
	}
	return cb, nil
}

// parseExprColon parses the binding after ':'.
func (p *Parser) parseExprColon() (ExprColon, error) {
	switch {
	case p.isKw(KwRegister):
		return p.parseRegister()
	case p.isKw(KwPackOffset):
		return nil, p.notImplemented(p.cur.Pos, "packoffset")
	case p.cur.Kind != lexer.Identifier:
		return nil, p.unexpected("semantic, register or packoffset")
	}

	sem, ok := LookupSemantic(p.cur.Raw)
	if !ok {
		return nil, p.errorf(p.cur.Pos, "unknown semantic %q", p.cur.Raw)
	}
	if !p.model.SupportsSemantic(sem.Name) {
		return nil, p.errorf(p.cur.Pos, "semantic %s is not available in %s", sem.Name, p.model)
	}
	sem.Pos = p.cur.Pos
	return sem, p.advance()
}

// parseRegister parses register(x#) or register(x#, space#).
func (p *Parser) parseRegister() (*Register, error) {
	reg := &Register{Pos: p.cur.Pos}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectOp(OpLeftParen); err != nil {
		return nil, err
	}

	if p.cur.Kind != lexer.Identifier {
		return nil, p.unexpected("register slot")
	}
	kind, index, err := parseRegisterSlot(p.cur.Raw)
	if err != nil {
		return nil, p.errorf(p.cur.Pos, "%v", err)
	}
	reg.Kind, reg.Index = kind, index
	if err := p.advance(); err != nil {
		return nil, err
	}

	more, err := p.tryOp(OpComma)
	if err != nil {
		return nil, err
	}
	if more {
		if !p.model.SupportsRegisterSpaces() {
			return nil, p.errorf(p.cur.Pos, "register spaces are not available in %s", p.model)
		}
		if p.cur.Kind != lexer.Identifier {
			return nil, p.unexpected("register space")
		}
		space, err := parseSpace(p.cur.Raw)
		if err != nil {
			return nil, p.errorf(p.cur.Pos, "%v", err)
		}
		reg.Space = space
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return reg, p.expectOp(OpRightParen)
}
