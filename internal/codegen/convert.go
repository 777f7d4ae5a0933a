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
	"github.com/a2lang/a2c/internal/symtab"
	"github.com/a2lang/a2c/internal/text"
)

// typeinfo converts a parsed type reference into the symtab's
// TypeInfo. TypeSubroutine never reaches here: a declaration whose type
// is a subroutine signature is routed to declareSubroutine before this
// conversion is needed.
func typeinfo(t lang.Type) symtab.TypeInfo {
	switch t.Kind {
	case lang.TypeArray:
		return symtab.TypeInfo{Name: t.Name, IsArray: true, Count: t.Count}
	case lang.TypePointer:
		return symtab.TypeInfo{Name: t.Name, IsPointer: true}
	case lang.TypeName:
		return symtab.TypeInfo{Name: t.Name}
	}
	diag.Fatalf("typeinfo: unhandled type kind: %d", t.Kind)
	return symtab.TypeInfo{}
}

// location converts a parsed placement into the symtab's Location. A
// register-shaped identifier (`@A`, `@XY`, ...) becomes a register
// location; any other identifier names a previously defined symbolic
// address (`@SOMECONST`) and is carried through as its own fixed
// location text, unresolved until GetAddress renders it.
func location(loc lang.Location) symtab.Location {
	switch loc.Kind {
	case lang.LocationNone:
		return symtab.Location{Kind: symtab.LocNone}
	case lang.LocationFixed:
		return symtab.Location{Kind: symtab.LocFixed, Address: loc.Address, Text: text.HexWord(loc.Address)}
	case lang.LocationRegister:
		if reg, ok := symtab.LookupRegister(loc.Reg); ok {
			return symtab.Location{Kind: symtab.LocRegister, Register: reg}
		}
		return symtab.Location{Kind: symtab.LocFixed, Text: loc.Reg}
	}
	diag.Fatalf("location: unhandled location kind: %d", loc.Kind)
	return symtab.Location{}
}

// hexOffset renders a compile-time-constant array subscript as MERLIN
// operand text added to the array's base label: zero-padded to at least
// two hex digits, full 16-bit width (an index is added to a label as a
// constant, not loaded into a register).
func hexOffset(v uint16) string {
	return fmt.Sprintf("$%02X", v)
}
