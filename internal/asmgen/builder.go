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

// Package asmgen is the assembly builder: an append-only list of 6502
// instructions split into a code stream and a data stream, a peephole
// optimizer, and a MERLIN-dialect text emitter. Code generation never
// writes text directly; it calls the mnemonic methods below, which
// append Instruction records that Emit later renders.
package asmgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/a2lang/a2c/internal/diag"
)

// instruction is one emitted line: either a real 6502 mnemonic with an
// optional operand, inline raw assembly, or a comment. A label may be
// attached to any of the three; Builder.Emit coalesces a label that
// carries no instruction of its own onto the next real one via EQU.
type instruction struct {
	label    string
	op       string
	operand  string
	assembly string
	comment  string
}

func (ins *instruction) isBare() bool {
	return ins.op == "" && ins.assembly == "" && ins.comment == ""
}

// Builder accumulates the code and data instruction streams for a single
// compilation unit.
type Builder struct {
	code   []*instruction
	data   []*instruction
	labels int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MakeLabel produces a fresh label private to the builder's own macro
// expansions (e.g. the carry-skip branch inside ADDR's address load).
func (b *Builder) MakeLabel() string {
	b.labels++
	return fmt.Sprintf("A2L_%d", b.labels)
}

func (b *Builder) appendCode(ins *instruction) {
	b.code = append(b.code, ins)
}

func (b *Builder) appendData(ins *instruction) {
	b.data = append(b.data, ins)
}

// Label attaches a bare label to the next code instruction.
func (b *Builder) Label(label string) {
	b.appendCode(&instruction{label: label})
}

// UnusedLabel returns the label most recently attached via Label if it
// still has no instruction following it, or "" otherwise. Code
// generation uses this to avoid emitting back-to-back identical labels.
func (b *Builder) UnusedLabel() string {
	if n := len(b.code); n > 0 && b.code[n-1].isBare() {
		return b.code[n-1].label
	}
	return ""
}

// REM appends a comment line to the code stream.
func (b *Builder) REM(comment string) {
	b.appendCode(&instruction{comment: comment})
}

// ASM appends raw, already-formatted assembly text verbatim. A pending
// label is anchored to a NOP first, so the label still attaches to a
// real instruction instead of floating past the inline block.
func (b *Builder) ASM(assembly string) {
	if b.UnusedLabel() != "" {
		b.NOP()
	}
	if !strings.HasSuffix(assembly, "\n") {
		assembly += "\n"
	}
	b.appendCode(&instruction{assembly: assembly})
}

func (b *Builder) emit(op, operand string) {
	b.appendCode(&instruction{op: op, operand: operand})
}

// The 6502 primitive mnemonics. Each appends one instruction to the code
// stream; the *Op variants take a pre-rendered operand string.

func (b *Builder) ADC(operand string) { b.emit("ADC", operand) }
func (b *Builder) SBC(operand string) { b.emit("SBC", operand) }
func (b *Builder) AND(operand string) { b.emit("AND", operand) }
func (b *Builder) ORA(operand string) { b.emit("ORA", operand) }
func (b *Builder) EOR(operand string) { b.emit("EOR", operand) }
func (b *Builder) CMP(operand string) { b.emit("CMP", operand) }
func (b *Builder) CPX(operand string) { b.emit("CPX", operand) }
func (b *Builder) CPY(operand string) { b.emit("CPY", operand) }
func (b *Builder) LDA(operand string) { b.emit("LDA", operand) }
func (b *Builder) LDX(operand string) { b.emit("LDX", operand) }
func (b *Builder) LDY(operand string) { b.emit("LDY", operand) }
func (b *Builder) STA(operand string) { b.emit("STA", operand) }
func (b *Builder) STX(operand string) { b.emit("STX", operand) }
func (b *Builder) STY(operand string) { b.emit("STY", operand) }
func (b *Builder) INC(operand string) { b.emit("INC", operand) }
func (b *Builder) DEC(operand string) { b.emit("DEC", operand) }
func (b *Builder) BEQ(label string)   { b.emit("BEQ", label) }
func (b *Builder) BNE(label string)   { b.emit("BNE", label) }
func (b *Builder) BCC(label string)   { b.emit("BCC", label) }
func (b *Builder) BCS(label string)   { b.emit("BCS", label) }
func (b *Builder) JMP(label string)   { b.emit("JMP", label) }
func (b *Builder) JSR(label string)   { b.emit("JSR", label) }

func (b *Builder) ASL() { b.emit("ASL", "") }
func (b *Builder) NOP() { b.emit("NOP", "") }
func (b *Builder) CLC() { b.emit("CLC", "") }
func (b *Builder) SEC() { b.emit("SEC", "") }
func (b *Builder) INX() { b.emit("INX", "") }
func (b *Builder) INY() { b.emit("INY", "") }
func (b *Builder) DEX() { b.emit("DEX", "") }
func (b *Builder) DEY() { b.emit("DEY", "") }
func (b *Builder) PHA() { b.emit("PHA", "") }
func (b *Builder) PLA() { b.emit("PLA", "") }
func (b *Builder) TAX() { b.emit("TAX", "") }
func (b *Builder) TAY() { b.emit("TAY", "") }
func (b *Builder) TXA() { b.emit("TXA", "") }
func (b *Builder) TYA() { b.emit("TYA", "") }

// RTS appends a return-from-subroutine instruction, optionally labeled
// (a subroutine's entry point and its single exit may coincide).
func (b *Builder) RTS(label string) {
	b.appendCode(&instruction{label: label, op: "RTS"})
}

// EQU appends a named constant-equals directive to the code stream.
func (b *Builder) EQU(name, operand string) {
	b.appendCode(&instruction{label: name, op: "EQU", operand: operand})
}

// VAR reserves size bytes of zeroed storage named name in the data
// stream, wrapping MERLIN's 32-nibble-per-line HEX limit the way the
// compiler's original emitter does.
func (b *Builder) VAR(name string, size uint16) {
	diag.Require(size > 0, "variable %s cannot have size 0", name)
	const maxNibblesPerLine = 32
	nibbles := int(size) * 2
	for nibbles > maxNibblesPerLine {
		b.appendData(&instruction{label: name, op: "HEX", operand: strings.Repeat("0", maxNibblesPerLine)})
		name = ""
		nibbles -= maxNibblesPerLine
	}
	b.appendData(&instruction{label: name, op: "HEX", operand: strings.Repeat("0", nibbles)})
}

// TXT appends a zero-terminated ASCII string named name to the data
// stream.
func (b *Builder) TXT(name, value string) {
	if strings.ContainsRune(value, '\\') {
		diag.Warnf("escape sequences are unsupported in text literal %q", value)
	}
	b.appendData(&instruction{label: name, op: "ASC", operand: fmt.Sprintf("%q", value)})
	b.appendData(&instruction{op: "HEX", operand: "00"})
}

// Optimize runs the builder's one peephole pass over the code stream: a
// JSR immediately followed by an unlabeled RTS becomes a tail-call JMP,
// since the callee's own RTS returns to the original caller.
func (b *Builder) Optimize() {
	out := make([]*instruction, 0, len(b.code))
	for i := 0; i < len(b.code); i++ {
		ins := b.code[i]
		if ins.op == "JSR" && i+1 < len(b.code) {
			next := b.code[i+1]
			if next.op == "RTS" && next.label == "" {
				out = append(out, &instruction{op: "JMP", operand: ins.operand})
				i++
				continue
			}
		}
		out = append(out, ins)
	}
	b.code = out
}

// writeLine renders one instruction, consuming a pending label (from a
// prior bare Label call) per the "EQU-then-recurse" coalescing rule: a
// pending label attached to a real instruction becomes an EQU pointing
// at that instruction's own label, unless the instruction has none, in
// which case the pending label is promoted onto it directly.
func writeLine(w io.Writer, ins *instruction, pending string) string {
	if ins.assembly != "" {
		fmt.Fprint(w, ins.assembly)
		return pending
	}
	if ins.comment != "" {
		fmt.Fprintf(w, "* %s\n", ins.comment)
		return pending
	}
	if pending != "" && ins.label != "" {
		fmt.Fprintf(w, "%s\tEQU\t%s\n", pending, ins.label)
		return writeLine(w, ins, "")
	}
	if ins.label != "" && ins.op == "" {
		return ins.label
	}

	label := pending
	if label == "" {
		label = ins.label
	}
	fmt.Fprintf(w, "%s\t%s", label, ins.op)
	if ins.operand != "" {
		fmt.Fprintf(w, "\t%s", ins.operand)
	}
	fmt.Fprint(w, "\n")
	return ""
}

// Emit writes the MERLIN-dialect text of every instruction: the code
// stream, followed by the data stream. A label left pending at the end
// of either stream is resolved onto a trailing NOP/HEX 00 so no label
// is silently dropped.
func (b *Builder) Emit(w io.Writer) {
	pending := ""
	for _, ins := range b.code {
		pending = writeLine(w, ins, pending)
	}
	if pending != "" {
		fmt.Fprintf(w, "%s\tNOP\n", pending)
		pending = ""
	}
	for _, ins := range b.data {
		pending = writeLine(w, ins, pending)
	}
	if pending != "" {
		fmt.Fprintf(w, "%s\tHEX\t00\n", pending)
	}
}

// String renders the builder's full MERLIN text, for tests and for any
// caller that does not need streaming output.
func (b *Builder) String() string {
	var sb strings.Builder
	b.Emit(&sb)
	return sb.String()
}
