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

// Package text holds the small, stateless string formatters shared by the
// symbol table, operand model and assembly builder. Every function returns
// a freshly built string; there is no shared mutable state.
package text

import "fmt"

// HexByte renders a byte as MERLIN's $XX immediate/literal form.
func HexByte(b byte) string {
	return fmt.Sprintf("$%02X", b)
}

// HexWord renders a 16-bit value as MERLIN's $XXXX form.
func HexWord(w uint16) string {
	return fmt.Sprintf("$%04X", w)
}

// HighASCII sets bit 7 on an ASCII byte, the Apple II convention for
// character immediates.
func HighASCII(ch byte) byte {
	return ch | 0x80
}

// CharOperand renders a character as a high-ASCII hex byte.
func CharOperand(ch byte) string {
	return HexByte(HighASCII(ch))
}

// Quoted wraps text in MERLIN's ASC-directive double quotes.
func Quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

// Lo renders the low-byte-of accessor for a label: <label.
func Lo(label string) string {
	return "<" + label
}

// Hi renders the high-byte-of accessor for a label: >label.
func Hi(label string) string {
	return ">" + label
}

// PlusOffset renders a label+constant-offset operand: label+N.
func PlusOffset(label string, n uint16) string {
	return fmt.Sprintf("%s+%d", label, n)
}

// IndirectY renders a zero-page indirect-indexed operand: (label),Y.
func IndirectY(label string) string {
	return fmt.Sprintf("(%s),Y", label)
}

// IndexedX renders an absolute-indexed operand: label,X.
func IndexedX(label string) string {
	return label + ",X"
}

// IndexedY renders an absolute-indexed operand: label,Y.
func IndexedY(label string) string {
	return label + ",Y"
}

// QualifiedName joins a subroutine scope and a local name as Scope.Name,
// or returns name unchanged when scope is empty.
func QualifiedName(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// Phrase renders a small diagnostic phrase, e.g. for REM comments
// describing the macro and operands that produced a run of instructions.
func Phrase(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}
