// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"errors"
	"fmt"
)

var (
	// ErrRedefinition is returned by Scope.Add for a name already bound in
	// that scope.
	ErrRedefinition = errors.New("redefinition")

	// ErrFrozenScope is returned by Scope.Add on a read-only scope such as
	// the superglobal scope of a TypeRegistry.
	ErrFrozenScope = errors.New("scope is read-only")
)

// Scope is an ordered collection of definitions with name lookup.
type Scope struct {
	parent *Scope
	defs   []Definition
	index  map[string]Definition
	frozen bool
}

// NewScope creates an empty scope nested in parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		index:  make(map[string]Definition),
	}
}

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Len returns the number of definitions.
func (s *Scope) Len() int {
	return len(s.defs)
}

// Definitions returns the definitions in declaration order. The slice must
// not be modified.
func (s *Scope) Definitions() []Definition {
	return s.defs
}

// Frozen reports whether the scope rejects new definitions.
func (s *Scope) Frozen() bool {
	return s.frozen
}

func (s *Scope) freeze() {
	s.frozen = true
}

// Add appends def. It fails if the scope is frozen or if def's name is
// already visible in this scope, including cbuffer members.
func (s *Scope) Add(def Definition) error {
	if s.frozen {
		return ErrFrozenScope
	}
	name := def.DefName()
	if _, ok := s.Lookup(name); ok {
		return fmt.Errorf("%w of %q", ErrRedefinition, name)
	}
	if cb, ok := def.(*CBuffer); ok && cb.Members != nil {
		for _, m := range cb.Members.defs {
			if _, ok := s.Lookup(m.DefName()); ok {
				return fmt.Errorf("%w of %q", ErrRedefinition, m.DefName())
			}
		}
	}
	s.defs = append(s.defs, def)
	s.index[name] = def
	return nil
}

// Lookup finds name among the definitions of this scope. Members of
// cbuffers declared here are found too, since HLSL makes them globals.
// Enclosing scopes are not searched.
func (s *Scope) Lookup(name string) (Definition, bool) {
	if def, ok := s.index[name]; ok {
		return def, true
	}
	for _, def := range s.defs {
		cb, ok := def.(*CBuffer)
		if !ok || cb.Members == nil {
			continue
		}
		if m, ok := cb.Members.index[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Resolve searches this scope and then its parents.
func (s *Scope) Resolve(name string) (Definition, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if def, ok := sc.Lookup(name); ok {
			return def, true
		}
	}
	return nil, false
}
