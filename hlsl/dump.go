// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"io"
	"strings"

	"modernc.org/strutil"
)

// Dump writes a deterministic, indented listing of the definitions in s.
// Struct fields and cbuffer members are nested under their owner;
// function bodies are printed quoted on one line.
func Dump(w io.Writer, s *Scope) error {
	f := strutil.IndentFormatter(w, "\t")
	for _, def := range s.Definitions() {
		if err := dumpDefinition(f, def); err != nil {
			return err
		}
	}
	return nil
}

func dumpDefinition(f strutil.Formatter, def Definition) error {
	var err error
	switch d := def.(type) {
	case *TypeDef:
		st, ok := d.Type.(*StructType)
		if !ok {
			_, err = f.Format("type %s = %s\n", d.Name, d.Type.TypeName())
			return err
		}
		if _, err = f.Format("struct %s%i\n", st.Name); err != nil {
			return err
		}
		if err = dumpMembers(f, st.Fields); err != nil {
			return err
		}
		_, err = f.Format("%u")

	case *Variable:
		_, err = f.Format("%s\n", formatVariable(d))

	case *CBuffer:
		head := "cbuffer " + d.Name
		if d.Register != nil {
			head += " : " + d.Register.String()
		}
		if _, err = f.Format("%s%i\n", head); err != nil {
			return err
		}
		if err = dumpMembers(f, d.Members); err != nil {
			return err
		}
		_, err = f.Format("%u")

	case *Function:
		if _, err = f.Format("%s%i\n", formatSignature(d)); err != nil {
			return err
		}
		if d.Prototype {
			_, err = f.Format("prototype\n%u")
		} else {
			_, err = f.Format("body %q\n%u", d.Body)
		}

	default:
		_, err = f.Format("%T %s\n", def, def.DefName())
	}
	return err
}

func dumpMembers(f strutil.Formatter, s *Scope) error {
	if s == nil {
		return nil
	}
	for _, def := range s.Definitions() {
		if err := dumpDefinition(f, def); err != nil {
			return err
		}
	}
	return nil
}

func formatVariable(v *Variable) string {
	var sb strings.Builder
	if v.Mods != 0 {
		sb.WriteString(v.Mods.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(v.Type.TypeName())
	sb.WriteByte(' ')
	sb.WriteString(v.Name)
	if v.ArraySize != 0 {
		fmt.Fprintf(&sb, "[%d]", v.ArraySize)
	}
	if v.Binding != nil {
		sb.WriteString(" : ")
		sb.WriteString(v.Binding.String())
	}
	return sb.String()
}

func formatSignature(fn *Function) string {
	var sb strings.Builder
	if fn.Mods != 0 {
		sb.WriteString(fn.Mods.String())
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "%s %s(", fn.ReturnType.TypeName(), fn.Name)
	for i, arg := range fn.Arguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Direction.String())
		sb.WriteByte(' ')
		sb.WriteString(formatVariable(arg.Variable))
	}
	sb.WriteByte(')')
	if fn.ReturnSemantic != nil {
		sb.WriteString(" : ")
		sb.WriteString(fn.ReturnSemantic.String())
	}
	return sb.String()
}
