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

// Package symtab is the compiler's typed, scope-aware symbol table: it
// models primitives, aliases, pointers, arrays, groups, subroutines,
// variables, constants, literals and registers, computes layout, and
// resolves qualified names for subroutine-local scopes.
package symtab

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/a2lang/a2c/internal/diag"
	"github.com/a2lang/a2c/internal/text"
)

// Table is the process-wide symbol dictionary. All Symbols it creates are
// owned by the Table's arena and live until the Table itself is
// discarded; callers only ever hold borrowed *Symbol references.
type Table struct {
	byName map[string]*Symbol
	all    []*Symbol
	labels int

	Byte *Symbol
	Char *Symbol
	Word *Symbol
}

// New allocates an empty, uninitialized Table. Call Initialize before use.
func New() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

func (t *Table) intern(sym *Symbol) *Symbol {
	if _, exists := t.byName[sym.Name]; exists {
		diag.Fatalf("symbol redefined: %s", sym.Name)
	}
	t.byName[sym.Name] = sym
	t.all = append(t.all, sym)
	return sym
}

func primitiveType(name string, size uint16) *Symbol {
	return &Symbol{Name: name, IsType: true, Size: size}
}

// Initialize populates the built-in primitive types (byte, char, word),
// the aliases (int, addr, text) and the nine register symbols (A, X, Y
// and the six register pairs). Safe to call once per Table.
func (t *Table) Initialize() {
	t.Byte = t.intern(primitiveType("byte", 1))
	t.Char = t.intern(primitiveType("char", 1))
	t.Word = t.intern(primitiveType("word", 2))

	t.AliasType("int", "byte")
	t.AliasPointer("addr", "byte")
	t.AliasPointer("text", "char")

	for _, reg := range []Register{RegA, RegX, RegY, RegAX, RegAY, RegXA, RegXY, RegYA, RegYX} {
		size := RegisterSize(reg)
		typ := t.Byte
		if size == 2 {
			typ = t.Word
		}
		t.intern(&Symbol{
			Name:     RegisterName(reg),
			Type:     typ,
			Location: Location{Kind: LocRegister, Register: reg},
		})
	}
}

// sizeOf computes size(s) per the spec's global invariant: count*size(element)
// for arrays (held by the array type s is declared with), 2 for pointers,
// else the chased-through type's own size.
func sizeOf(s *Symbol) uint16 {
	if s.IsType {
		return s.Size
	}
	if s.IsArray {
		return sizeOf(s.Type)
	}
	if s.IsPointer {
		return 2
	}
	return sizeOf(s.Type)
}

// GetSize returns size(sym).
func (t *Table) GetSize(sym *Symbol) uint16 { return sizeOf(sym) }

// GetBaseSize returns the element size of an array or pointer: the size
// of the base type behind the (possibly aliased) array/pointer type.
func (t *Table) GetBaseSize(sym *Symbol) uint16 {
	cur := sym
	for cur != nil && !cur.IsType {
		cur = cur.Type
	}
	diag.Require(cur != nil, "%s has no resolvable type", sym.Name)
	if cur.IsArray || cur.IsPointer {
		return sizeOf(cur.Type)
	}
	return cur.Size
}

// memsize is the symbol's in-memory footprint: 0 for a register
// parameter, else its declared size.
func memsize(s *Symbol) uint16 {
	if s.Location.Kind == LocRegister {
		return 0
	}
	return sizeOf(s)
}

func resolveTypeInfo(t *Table, info TypeInfo) *Symbol {
	base := t.Lookup(info.Name)
	diag.Require(base.IsType, "%s is not a type", info.Name)
	switch {
	case info.IsPointer:
		return t.anonymousPointer(base)
	case info.IsArray:
		return t.anonymousArray(base, info.Count)
	default:
		return base
	}
}

func (t *Table) anonymousPointer(base *Symbol) *Symbol {
	return &Symbol{Name: "^" + base.Name, IsType: true, IsPointer: true, Type: base, Size: 2}
}

func (t *Table) anonymousArray(base *Symbol, count uint16) *Symbol {
	return &Symbol{
		Name: fmt.Sprintf("%s^%d", base.Name, count), IsType: true, IsArray: true,
		Type: base, Count: count, Size: sizeOf(base) * count,
	}
}

func qualified(sub *Symbol, name string) string {
	if sub == nil {
		return name
	}
	return text.QualifiedName(sub.Name, name)
}

// DeclareSubroutine creates a callable symbol together with its two
// sub-group symbols "name.<-" (inputs) and "name.->" (outputs). Fatal if
// name already exists.
func (t *Table) DeclareSubroutine(name string, loc Location) *Symbol {
	sub := &Symbol{Name: name, IsCallable: true, Location: loc}
	sub.Params = &Symbol{Name: name + ".<-", IsGroup: true, Sub: sub}
	sub.Outputs = &Symbol{Name: name + ".->", IsGroup: true, Sub: sub}
	t.intern(sub)
	t.intern(sub.Params)
	t.intern(sub.Outputs)
	return sub
}

// addGroupMember is the common routine behind AddParameter, AddOutput and
// AddMember: it appends to group's member list, assigns an offset,
// updates the group's size, enforces the pointer-zero-page rule, and
// records the unqualified name.
func (t *Table) addGroupMember(group *Symbol, sub *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	typ := resolveTypeInfo(t, info)

	var offset uint16
	switch loc.Kind {
	case LocNone, LocFixed:
		offset = group.Size
	case LocOffset:
		offset = loc.Offset
	case LocRegister:
		offset = 0
	default:
		diag.Fatalf("group member %s: unhandled location kind", name)
	}

	qname := qualified(sub, name)
	member := &Symbol{
		Name:            qname,
		UnqualifiedName: name,
		Type:            typ,
		IsPointer:       typ.IsPointer,
		IsArray:         typ.IsArray,
		Group:           group,
		Sub:             sub,
		Offset:          offset,
		Location:        Location{Kind: LocNone},
	}
	switch loc.Kind {
	case LocOffset:
		member.Location = Location{Kind: LocOffset, Offset: offset}
	case LocRegister, LocFixed:
		member.Location = loc
	}
	if member.IsPointer && member.Location.Kind == LocFixed {
		diag.Require(member.Location.Address < 0xFF, "pointer %s must be placed in zero page", qname)
	}

	group.Members = append(group.Members, member)
	group.Count++
	newEnd := offset + memsize(member)
	if newEnd > group.Size {
		group.Size = newEnd
	}

	t.intern(member)
	return member
}

// AddParameter appends an input parameter to sub's "<-" group.
func (t *Table) AddParameter(sub *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	diag.Require(sub.IsCallable, "%s is not a subroutine", sub.Name)
	return t.addGroupMember(sub.Params, sub, name, info, loc)
}

// AddOutput appends an output to sub's "->" group.
func (t *Table) AddOutput(sub *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	diag.Require(sub.IsCallable, "%s is not a subroutine", sub.Name)
	return t.addGroupMember(sub.Outputs, sub, name, info, loc)
}

// AddMember appends a field to a group record.
func (t *Table) AddMember(group *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	diag.Require(group.IsGroup, "%s is not a group", group.Name)
	if loc.Kind == LocRegister {
		diag.Fatalf("group member %s cannot be placed in a register", name)
	}
	return t.addGroupMember(group, group.Sub, name, info, loc)
}

// DeclareGroup creates an empty, named record type.
func (t *Table) DeclareGroup(name string) *Symbol {
	group := &Symbol{Name: name, IsType: true, IsGroup: true}
	t.intern(group)
	return group
}

// AddVariable adds a variable, qualified by sub when sub is non-nil.
func (t *Table) AddVariable(sub *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	typ := resolveTypeInfo(t, info)
	diag.Require(sizeOf(typ) > 0, "variable %s has size 0", name)
	if typ.IsPointer && loc.Kind == LocFixed {
		diag.Require(loc.Address < 0xFF, "pointer %s must be placed in zero page", name)
	}
	sym := &Symbol{
		Name: qualified(sub, name), UnqualifiedName: name,
		Type: typ, IsPointer: typ.IsPointer, IsArray: typ.IsArray,
		IsVariable: true, Sub: sub, Location: loc,
	}
	t.intern(sym)
	return sym
}

// AddConstant adds a constant, qualified by sub when sub is non-nil.
func (t *Table) AddConstant(sub *Symbol, name string, info TypeInfo, loc Location) *Symbol {
	typ := resolveTypeInfo(t, info)
	sym := &Symbol{
		Name: qualified(sub, name), UnqualifiedName: name,
		Type: typ, IsPointer: typ.IsPointer, IsArray: typ.IsArray,
		Sub: sub, Location: loc,
	}
	t.intern(sym)
	return sym
}

// placeholderOK reports whether an existing symbol may be redefined by a
// define_literal_* call: it must exist, be un-valued (no literal and not
// callable-with-a-fixed-address already) and not be a type.
func placeholderOK(sym *Symbol) bool {
	return sym != nil && sym.Literal.Kind == LitNone && !sym.IsType &&
		!(sym.IsCallable && sym.Location.Kind == LocFixed)
}

// DefineLiteralChar defines (or fills in a placeholder for) name as a
// character literal.
func (t *Table) DefineLiteralChar(name string, ch byte) *Symbol {
	if existing, ok := t.byName[name]; ok {
		diag.Require(placeholderOK(existing), "symbol redefined: %s", name)
		existing.Literal = Literal{Kind: LitChar, Char: ch}
		existing.Type = t.Char
		return existing
	}
	sym := &Symbol{Name: name, Type: t.Char, Literal: Literal{Kind: LitChar, Char: ch}}
	t.intern(sym)
	return sym
}

// DefineLiteralNumber defines (or fills in a placeholder for) name as a
// numeric literal. Redefining a callable placeholder instead fixes the
// subroutine's address.
func (t *Table) DefineLiteralNumber(name string, value uint16) *Symbol {
	if existing, ok := t.byName[name]; ok {
		if existing.IsCallable {
			existing.Location = Location{Kind: LocFixed, Address: value, Text: text.HexWord(value)}
			return existing
		}
		diag.Require(placeholderOK(existing), "symbol redefined: %s", name)
		if existing.Type == nil {
			existing.Type = t.Byte
			if value > 0xFF {
				existing.Type = t.Word
			}
		}
		existing.Literal = Literal{Kind: LitNumber, Number: value}
		return existing
	}
	typ := t.Byte
	if value > 0xFF {
		typ = t.Word
	}
	sym := &Symbol{Name: name, Type: typ, Literal: Literal{Kind: LitNumber, Number: value}}
	t.intern(sym)
	return sym
}

// DefineLiteralText defines (or fills in a placeholder for) name as a
// text literal.
func (t *Table) DefineLiteralText(name string, value string) *Symbol {
	if existing, ok := t.byName[name]; ok {
		diag.Require(placeholderOK(existing), "symbol redefined: %s", name)
		existing.Literal = Literal{Kind: LitText, Text: value}
		return existing
	}
	sym := &Symbol{Name: name, Literal: Literal{Kind: LitText, Text: value}}
	t.intern(sym)
	return sym
}

// AliasType defines alias as a first-class named type inheriting base's
// size.
func (t *Table) AliasType(alias, base string) *Symbol {
	baseSym := t.Lookup(base)
	sym := &Symbol{Name: alias, IsType: true, Type: baseSym, Size: sizeOf(baseSym)}
	t.intern(sym)
	return sym
}

// AliasPointer defines alias as a pointer-to-base type.
func (t *Table) AliasPointer(alias, base string) *Symbol {
	baseSym := t.Lookup(base)
	sym := &Symbol{Name: alias, IsType: true, IsPointer: true, Type: baseSym, Size: 2}
	t.intern(sym)
	return sym
}

// AliasArray defines alias as a fixed-size array-of-base type.
func (t *Table) AliasArray(alias, base string, length uint16) *Symbol {
	baseSym := t.Lookup(base)
	sym := &Symbol{Name: alias, IsType: true, IsArray: true, Type: baseSym, Count: length, Size: sizeOf(baseSym) * length}
	t.intern(sym)
	return sym
}

// TryLookup returns the symbol named name, or nil if absent.
func (t *Table) TryLookup(name string) *Symbol {
	return t.byName[name]
}

// Lookup returns the symbol named name; fatal if absent.
func (t *Table) Lookup(name string) *Symbol {
	sym := t.byName[name]
	diag.Require(sym != nil, "unknown symbol: %s", name)
	return sym
}

// LookupScoped tries "sub.bareName" first when sub is non-nil, then the
// bare name.
func (t *Table) LookupScoped(sub *Symbol, bareName string) *Symbol {
	if sub != nil {
		if sym, ok := t.byName[qualified(sub, bareName)]; ok {
			return sym
		}
	}
	return t.Lookup(bareName)
}

// LookupSubroutine resolves name as a callable symbol and, when
// expectedArity is non-zero, checks its parameter-list arity.
func (t *Table) LookupSubroutine(name string, expectedArity int) *Symbol {
	sym := t.Lookup(name)
	diag.Require(sym.IsCallable, "%s is not a subroutine", name)
	if expectedArity != 0 {
		got := len(sym.Params.Members)
		diag.Require(got == expectedArity, "%s: expected %d argument(s), got %d", name, expectedArity, got)
	}
	return sym
}

// LookupRegister returns the register named name, or (RegNone, false).
func (t *Table) LookupRegister(name string) (Register, bool) {
	return LookupRegister(name)
}

// GetMember resolves a group member by name (when non-empty) or by
// positional index; fatal if missing. A group-typed variable (or a
// pointer to one) resolves through its type chain to the group itself.
func (t *Table) GetMember(group *Symbol, fieldName string, index int) *Symbol {
	g := group
	for g != nil && !g.IsGroup {
		g = g.Type
	}
	diag.Require(g != nil, "%s is not a group", group.Name)
	if fieldName != "" {
		member, ok := lo.Find(g.Members, func(m *Symbol) bool { return m.UnqualifiedName == fieldName })
		diag.Require(ok, "%s has no member %s", g.Name, fieldName)
		return member
	}
	diag.Require(index >= 0 && index < len(g.Members), "%s has no member at index %d", g.Name, index)
	return g.Members[index]
}

// GetParameter resolves one of sub's input parameters by name (when
// non-empty) or by positional index.
func (t *Table) GetParameter(sub *Symbol, name string, index int) *Symbol {
	diag.Require(sub.IsCallable, "%s is not a subroutine", sub.Name)
	return t.GetMember(sub.Params, name, index)
}

// GetOutput resolves one of sub's outputs by name (when non-empty) or by
// positional index.
func (t *Table) GetOutput(sub *Symbol, name string, index int) *Symbol {
	diag.Require(sub.IsCallable, "%s is not a subroutine", sub.Name)
	return t.GetMember(sub.Outputs, name, index)
}

// IsCallable, IsGroup, IsPointer, IsArray, IsLiteral, IsVariable report
// the symbol's kind.
func (t *Table) IsCallable(s *Symbol) bool { return s.IsCallable }
func (t *Table) IsGroup(s *Symbol) bool    { return s.IsGroup }
func (t *Table) IsPointer(s *Symbol) bool  { return s.IsPointer }
func (t *Table) IsArray(s *Symbol) bool    { return s.IsArray }
func (t *Table) IsLiteral(s *Symbol) bool  { return s.Literal.Kind != LitNone }
func (t *Table) IsVariable(s *Symbol) bool { return s.IsVariable }

// IsWord reports whether s is a two-byte non-array value: a word, or any
// other two-byte type such as a pointer.
func (t *Table) IsWord(s *Symbol) bool { return sizeOf(s) == 2 && !s.IsArray }

// IsChar reports whether s's resolved type is the built-in char type.
func (t *Table) IsChar(s *Symbol) bool {
	typ := s.Type
	for typ != nil && !typ.IsType {
		typ = typ.Type
	}
	return typ == t.Char
}

// GetName returns s's (possibly qualified) name.
func (t *Table) GetName(s *Symbol) string { return s.Name }

// GetAddress renders s's fixed address as "$XXXX", or "" if unset.
func (t *Table) GetAddress(s *Symbol) string {
	if s.Location.Kind != LocFixed {
		return ""
	}
	if s.Location.Text != "" {
		return s.Location.Text
	}
	return text.HexWord(s.Location.Address)
}

// GetOffset returns a group member's byte offset.
func (t *Table) GetOffset(s *Symbol) uint16 { return s.Offset }

// GetItemCount returns an array's element count or a group's member
// count, chasing an array- or group-typed symbol to its type, or -1 if
// neither applies.
func (t *Table) GetItemCount(s *Symbol) int32 {
	cur := s
	for cur != nil && !cur.IsGroup && !(cur.IsArray && cur.IsType) {
		cur = cur.Type
	}
	if cur == nil {
		return -1
	}
	return int32(cur.Count)
}

// GetNumber returns a numeric literal's value.
func (t *Table) GetNumber(s *Symbol) uint16 { return s.Literal.Number }

// GetText returns a text literal's value.
func (t *Table) GetText(s *Symbol) string { return s.Literal.Text }

// GetRegister returns s's register, or RegNone if s is not
// register-located.
func (t *Table) GetRegister(s *Symbol) Register {
	if s.Location.Kind != LocRegister {
		return RegNone
	}
	return s.Location.Register
}

// HasLocation reports whether s carries any placement at all.
func (t *Table) HasLocation(s *Symbol) bool { return s.Location.Kind != LocNone }

// MakeLabel produces a fresh globally unique label "A2_<n>".
func (t *Table) MakeLabel() string {
	t.labels++
	return fmt.Sprintf("A2_%d", t.labels)
}

// MakeLocalLabel produces a fresh label qualified by scope (or global if
// scope is nil).
func (t *Table) MakeLocalLabel(scope *Symbol) string {
	label := t.MakeLabel()
	if scope == nil {
		return label
	}
	return qualified(scope, label)
}

// DumpSymbols writes the fixed-width debug table described by the
// compiler's -sym flag.
func (t *Table) DumpSymbols(w interface{ WriteString(string) (int, error) }) {
	for _, s := range t.all {
		w.WriteString(dumpLine(t, s))
	}
}

func dumpLine(t *Table, s *Symbol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-24s", s.Name)

	typeCol := ""
	if s.Type != nil {
		typeCol = ":" + s.Type.Name
		if s.IsArray {
			typeCol += fmt.Sprintf("^%d", s.Count)
		}
	}
	fmt.Fprintf(&b, "%-16s", typeCol)

	loc := ""
	switch s.Location.Kind {
	case LocRegister:
		loc = "@" + RegisterName(s.Location.Register)
	case LocFixed:
		loc = t.GetAddress(s)
	case LocOffset:
		loc = fmt.Sprintf("+$%X", s.Offset)
	}
	fmt.Fprintf(&b, "%-10s", loc)

	marker := ""
	switch {
	case s.IsCallable:
		marker = "()"
	case s.Sub != nil && s.Group == s.Sub.Params:
		marker = "<"
	case s.Sub != nil && s.Group == s.Sub.Outputs:
		marker = ">"
	}
	fmt.Fprintf(&b, "%-4s", marker)

	fmt.Fprintf(&b, "%5d", sizeOf(s))
	if s.Location.Kind == LocOffset {
		fmt.Fprintf(&b, " +%-4d", s.Offset)
	} else {
		fmt.Fprintf(&b, " %-5s", "")
	}

	value := ""
	switch s.Literal.Kind {
	case LitChar:
		value = fmt.Sprintf("'%c'", s.Literal.Char)
	case LitNumber:
		value = text.HexWord(s.Literal.Number)
	case LitText:
		value = text.Quoted(s.Literal.Text)
	default:
		if s.IsVariable {
			value = "var"
		}
	}
	b.WriteString(" " + value + "\n")
	return b.String()
}
