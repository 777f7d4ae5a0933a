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
	"fmt"

	"github.com/a2lang/a2c/internal/diag"
	"github.com/a2lang/a2c/internal/lang"
	operand "github.com/a2lang/a2c/internal/operand"
	"github.com/a2lang/a2c/internal/symtab"
	"github.com/a2lang/a2c/internal/text"
)

// reduce converts an IdentPhrase (a bare name, an indexed/subscripted
// name, or a `.field` access) into the Operand the assembly builder's
// macros consume.
func (c *Compiler) reduce(id *lang.IdentPhrase) *operand.Operand {
	sym := c.getsym(id.Name)

	if reg := c.Table.GetRegister(sym); reg != symtab.RegNone {
		name := symtab.RegisterName(reg)
		if symtab.RegisterSize(reg) == 2 {
			return operand.RegisterPairOp(string(name[0]), string(name[1]))
		}
		return operand.RegisterOp(name)
	}

	if id.Subscript == nil && id.Field == "" {
		size := c.Table.GetSize(sym)
		diag.Require(size <= 0xFF, "%s: too big", id.Name)
		if c.Table.IsLiteral(sym) {
			return c.reduceNamedLiteral(sym, uint8(size))
		}
		return operand.AbsoluteOp(c.Table.GetName(sym), uint8(size))
	}

	if id.Subscript != nil {
		size := c.Table.GetBaseSize(sym)
		if c.Table.IsPointer(sym) {
			diag.Require(size == 1, "only byte pointers can be indexed: %s", id.Name)
			return operand.IndirectOffsetOp(c.Table.GetName(sym), c.indextxt(id.Subscript), uint8(size))
		}
		itemCount := c.Table.GetItemCount(sym)
		diag.Require(itemCount > 0, "expected array: %s", id.Name)
		return c.reduceArraySubscript(sym, id.Subscript, uint8(size))
	}

	// id.Field != ""
	member := c.Table.GetMember(sym, id.Field, 0)
	if c.Table.IsPointer(sym) {
		return operand.IndirectOffsetOp(c.Table.GetName(sym), fmt.Sprintf("#%d", c.Table.GetOffset(member)), uint8(c.Table.GetSize(member)))
	}
	return operand.OffsetOp(c.Table.GetName(sym), fmt.Sprintf("%d", c.Table.GetOffset(member)), false, uint8(c.Table.GetSize(member)))
}

// reduceNamedLiteral builds the Operand for a bare reference to a
// previously defined literal constant: a byte-size literal is a direct
// `#NAME` immediate; a word-size literal splits into its low/high-byte
// accessors so loadWord/storeWord can address each half independently.
func (c *Compiler) reduceNamedLiteral(sym *symtab.Symbol, size uint8) *operand.Operand {
	name := c.Table.GetName(sym)
	if size == 2 {
		return operand.ImmediateWord(text.Lo(name), text.Hi(name))
	}
	return operand.ImmediateByte(name)
}

// reduceArraySubscript builds the Operand for array[index], where index
// is a literal number or names an already-declared byte-sized symbol.
func (c *Compiler) reduceArraySubscript(sym *symtab.Symbol, subscript *lang.Value, size uint8) *operand.Operand {
	name := c.Table.GetName(sym)
	switch subscript.Kind {
	case lang.ValueIdentPhrase:
		indexsym := c.getsym(subscript.Ident.Name)
		if c.Table.IsVariable(indexsym) {
			diag.Require(c.Table.GetSize(indexsym) == 1, "variable index is not byte size: %s", subscript.Ident.Name)
		}
		if c.Table.IsLiteral(indexsym) {
			return operand.OffsetOp(name, hexOffset(c.Table.GetNumber(indexsym)), false, size)
		}
		return operand.OffsetOp(name, c.Table.GetName(indexsym), c.Table.IsVariable(indexsym), size)
	case lang.ValueNumber:
		return operand.OffsetOp(name, hexOffset(subscript.Number.Value), false, size)
	default:
		diag.Fatalf("reduce: unsupported subscript value kind: %d", subscript.Kind)
		return nil
	}
}

// indextxt renders a pointer subscript as the full operand `loadByte`
// feeds to LDY: a register name (`@Y`), an immediate constant
// (`#$XX`), or a named offset variable/literal.
func (c *Compiler) indextxt(v *lang.Value) string {
	switch v.Kind {
	case lang.ValueIdentPhrase:
		sym := c.getsym(v.Ident.Name)
		if reg := c.Table.GetRegister(sym); reg != symtab.RegNone {
			return "@" + symtab.RegisterName(reg)
		}
		name := c.Table.GetName(sym)
		if c.Table.IsLiteral(sym) {
			return "#" + name
		}
		return name
	case lang.ValueNumber:
		n := v.Number.Value
		diag.Require(n <= 0xFF, "bad byte offset: %d", n)
		return "#" + text.HexByte(byte(n))
	default:
		diag.Fatalf("indextxt: unsupported subscript value kind: %d", v.Kind)
		return ""
	}
}

// reduceSimpleValue converts a Value known to be "simple" (a bare
// identifier reference, a literal number, or a literal character) into
// an Operand. Used by conditional comparisons, which never compare
// against a call, text, tuple, group, type, or subroutine value.
func (c *Compiler) reduceSimpleValue(v *lang.Value) *operand.Operand {
	switch v.Kind {
	case lang.ValueIdentPhrase:
		return c.reduce(v.Ident)
	case lang.ValueNumber:
		return operand.ImmediateNumber(v.Number.Value)
	case lang.ValueChar:
		return operand.ImmediateByte(text.CharOperand(v.Char))
	default:
		diag.Fatalf("reduceSimpleValue: expected a simple value; got kind %d", v.Kind)
		return nil
	}
}
