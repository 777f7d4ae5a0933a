// Copyright 2026 a2c Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codegen

import (
	"github.com/a2lang/a2c/internal/diag"
	"github.com/a2lang/a2c/internal/lang"
	"github.com/a2lang/a2c/internal/symtab"
	"github.com/a2lang/a2c/internal/text"
)

// generateVariables lowers a `var [...]` statement: each entry declares
// a plain, possibly-located variable and reserves its storage.
func (c *Compiler) generateVariables(decl *lang.Declaration) {
	for i := range decl.Parameters {
		c.generateVariable(&decl.Parameters[i])
	}
}

// generateVariable lowers one `var` parameter entry: an unlocated
// variable gets zeroed storage in the data stream; a fixed one is only
// aliased via EQU.
func (c *Compiler) generateVariable(p *lang.Parameter) {
	loc := location(p.Location)
	sym := c.Table.AddVariable(c.subroutineName(), p.Name, typeinfo(p.Type), loc)

	if !c.Table.HasLocation(sym) {
		c.Builder.VAR(c.Table.GetName(sym), c.Table.GetSize(sym))
		return
	}
	if addr := c.Table.GetAddress(sym); addr != "" {
		c.Builder.EQU(c.Table.GetName(sym), addr)
	}
}

// declareExternalSubroutine lowers `name: sub <-[in] ->[out] @addr`: a
// fixed-address ROM routine whose own parameter/output shape is
// declared inline, rather than in a following `sub { }` definition.
func (c *Compiler) declareExternalSubroutine(p *lang.Parameter) {
	subsym := c.Table.DeclareSubroutine(p.Name, location(p.Location))
	c.declareParameters(subsym, p.Type.SubInputs)
	c.declareOutputs(subsym, p.Type.SubOutputs)
}

// declareParameters registers a subroutine's input parameters and
// reserves storage for each: an unlocated parameter gets its own zero
// page/data byte(s); a located one is only aliased via EQU.
func (c *Compiler) declareParameters(subsym *symtab.Symbol, params []lang.Parameter) {
	for i := range params {
		p := &params[i]
		sym := c.Table.AddParameter(subsym, p.Name, typeinfo(p.Type), location(p.Location))

		if !c.Table.HasLocation(sym) {
			c.Builder.VAR(c.Table.GetName(sym), c.Table.GetSize(sym))
			continue
		}
		if addr := c.Table.GetAddress(sym); addr != "" {
			c.Builder.EQU(c.Table.GetName(sym), addr)
		}
	}
}

// declareOutputs registers a subroutine's output parameters. Unlike
// inputs, an output can never carry a relative (group-offset) location
// — outputs are always either unlocated, fixed, or register-bound.
func (c *Compiler) declareOutputs(subsym *symtab.Symbol, params []lang.Parameter) {
	for i := range params {
		p := &params[i]
		loc := location(p.Location)
		sym := c.Table.AddOutput(subsym, p.Name, typeinfo(p.Type), loc)
		switch loc.Kind {
		case symtab.LocNone:
			c.Builder.VAR(c.Table.GetName(sym), c.Table.GetSize(sym))
		case symtab.LocFixed:
			c.Builder.EQU(c.Table.GetName(sym), c.Table.GetAddress(sym))
		case symtab.LocRegister:
		case symtab.LocOffset:
			diag.Fatalf("outputs cannot have relative locations: %s", c.Table.GetName(sym))
		}
	}
}

// declareSubroutine registers a subroutine's symbol along with its
// input/output parameter lists, without generating a body: used for the
// implicit forward declaration a `sub { }` definition makes when no
// prior `use` entry named it.
func (c *Compiler) declareSubroutine(name string, sub *lang.Subroutine, loc symtab.Location) *symtab.Symbol {
	subsym := c.Table.DeclareSubroutine(name, loc)
	c.declareParameters(subsym, sub.Inputs)
	c.declareOutputs(subsym, sub.Outputs)
	return subsym
}

// defineGroup lowers `let name = group { members }`: a record type whose
// members may be register-forbidden, `$00`-only fixed (remapped to an
// offset-zero group member), already-relative, or unlocated.
func (c *Compiler) defineGroup(name string, def *lang.GroupDef) {
	group := c.Table.DeclareGroup(text.QualifiedName(subroutineScopeName(c), name))

	for i := range def.Members {
		m := &def.Members[i]
		loc := location(m.Location)

		switch loc.Kind {
		case symtab.LocRegister:
			diag.Fatalf("group member %s.%s cannot be register-bound: %s",
				c.Table.GetName(group), m.Name, symtab.RegisterName(loc.Register))
		case symtab.LocFixed:
			diag.Require(loc.Address == 0,
				"0 is the only allowable offset for group member %s.%s; got %s",
				c.Table.GetName(group), m.Name, loc.Text)
			loc = symtab.Location{Kind: symtab.LocOffset, Offset: 0}
		case symtab.LocOffset, symtab.LocNone:
		}

		c.Table.AddMember(group, m.Name, typeinfo(m.Type), loc)
	}
}

// subroutineScopeName returns the current enclosing subroutine's own
// Symbol name, or "" at global scope, for qualifying a nested group's
// name.
func subroutineScopeName(c *Compiler) string {
	if sub := c.subroutineName(); sub != nil {
		return c.Table.GetName(sub)
	}
	return ""
}

// defineSubroutine lowers `let name = sub <-[in] ->[out] { body }`: it
// declares the subroutine if this is its first mention, emits its entry
// label, lowers its body, and closes it with a single RTS.
func (c *Compiler) defineSubroutine(name string, sub *lang.Subroutine) {
	existing := c.Table.TryLookup(name)
	var subsym *symtab.Symbol
	if existing == nil {
		subsym = c.declareSubroutine(name, sub, symtab.Location{Kind: symtab.LocNone})
	} else {
		diag.Require(!c.Table.HasLocation(existing),
			"cannot define a subroutine that has a declared location: %s", name)
		subsym = existing
	}

	c.enterSubroutine(subsym)
	c.Builder.Label(name)
	c.generateBlock(&sub.Body)
	c.Builder.RTS("")
	c.leaveScope()
}

// defineText lowers `let name = "text"`: a zero-terminated ASCII
// literal in the data stream, returning the symbol's rendered name so
// callers building an Operand (generatePoint) can reference it.
func (c *Compiler) defineText(name, value string) string {
	var qname string
	if name != "" {
		qname = c.qualify(name)
	} else {
		qname = c.Table.MakeLabel()
	}
	sym := c.Table.DefineLiteralText(qname, value)
	c.Builder.TXT(c.Table.GetName(sym), c.Table.GetText(sym))
	return c.Table.GetName(sym)
}

// defineType lowers `let name = Type` (a type alias definition): array,
// pointer, and bare-name aliases each resolve to the matching symtab
// alias constructor.
func (c *Compiler) defineType(name string, t lang.Type) {
	switch t.Kind {
	case lang.TypeArray:
		c.Table.AliasArray(name, t.Name, t.Count)
	case lang.TypePointer:
		c.Table.AliasPointer(name, t.Name)
	case lang.TypeName:
		c.Table.AliasType(name, t.Name)
	default:
		diag.Fatalf("defineType: unhandled kind of type: %d", t.Kind)
	}
}

// generateLiteralNumber lowers `let name = 123`/`$7B`/`%01111011`: the
// literal's width follows a pre-existing declaration of the same name
// if one exists, else its magnitude (word-sized iff it exceeds $FF).
func (c *Compiler) generateLiteralNumber(name string, n uint16) {
	qname := c.qualify(name)
	sym := c.Table.DefineLiteralNumber(qname, n)
	if c.Table.IsCallable(sym) || c.Table.GetSize(sym) == 2 {
		c.Builder.EQU(c.Table.GetName(sym), text.HexWord(n))
		return
	}
	c.Builder.EQU(c.Table.GetName(sym), text.HexByte(byte(n)))
}

// generateLiteralChar lowers `let name = `A`: a single high-ASCII byte
// constant, matching the Apple II's screen/keyboard character encoding.
func (c *Compiler) generateLiteralChar(name string, ch byte) {
	qname := c.qualify(name)
	sym := c.Table.DefineLiteralChar(qname, ch)
	c.Builder.EQU(c.Table.GetName(sym), text.CharOperand(ch))
}
