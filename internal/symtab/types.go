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

package symtab

// LocationKind tags how a symbol is placed in memory (or a register).
type LocationKind int

const (
	LocNone LocationKind = iota
	LocFixed
	LocOffset
	LocRegister
)

// Location records where a symbol lives: nowhere yet (None), a fixed
// memory address, a byte offset inside a group, or a CPU register.
type Location struct {
	Kind     LocationKind
	Address  uint16
	Text     string // pre-rendered "$XXXX" form for a Fixed location
	Offset   uint16
	Register Register
}

// LiteralKind tags the kind of compile-time value a literal symbol
// carries.
type LiteralKind int

const (
	LitNone LiteralKind = iota
	LitNumber
	LitChar
	LitText
)

// Literal is the compile-time value attached to a literal symbol.
type Literal struct {
	Kind   LiteralKind
	Number uint16
	Char   byte
	Text   string
}

// TypeInfo describes the surface-level type annotation attached to a
// parameter, output, member, variable or constant declaration: a named
// base type optionally wrapped in pointer-to or array-of.
type TypeInfo struct {
	Name      string
	IsPointer bool
	IsArray   bool
	Count     uint16
}

// Symbol is the single uniform record the table hands out for every
// name: primitives, aliases, pointers, arrays, groups, subroutines,
// parameters/outputs, variables, constants, literals and registers.
type Symbol struct {
	Name            string
	UnqualifiedName string

	Type *Symbol // the symbol's type, for non-type symbols
	Size uint16  // declared size, for type symbols only

	Location Location

	IsType     bool
	IsPointer  bool
	IsArray    bool
	IsGroup    bool
	IsCallable bool
	IsVariable bool

	Count uint16 // array length, or group/param-list member count

	Members []*Symbol // ordered children: group members, sub params/outputs
	Group   *Symbol   // backpointer: the group this member belongs to
	Sub     *Symbol   // backpointer: the subroutine this belongs to

	Params  *Symbol // subroutine's "Sub.<-" input group
	Outputs *Symbol // subroutine's "Sub.->" output group

	Offset uint16 // byte offset within Group

	Literal Literal
}
