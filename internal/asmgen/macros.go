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

package asmgen

import (
	"fmt"

	"github.com/a2lang/a2c/internal/diag"
	operand "github.com/a2lang/a2c/internal/operand"
)

var zeroByte = operand.ImmediateByte("$00")

// loadAddr computes the address of a memory operand into A/X (low/high)
// for use by ADDR.
func (b *Builder) loadAddr(src *operand.Operand) {
	switch src.Mode {
	case operand.Absolute:
		b.LDA("#<" + src.Base)
		b.LDX("#>" + src.Base)
	case operand.Offset:
		b.LDA(fmt.Sprintf("#<%s+%s", src.Base, src.OffsetText))
		b.LDX(fmt.Sprintf("#>%s+%s", src.Base, src.OffsetText))
	case operand.VariableOffset:
		b.LDA("#<" + src.Base)
		b.LDX("#>" + src.Base)
		b.CLC()
		b.ADC(src.OffsetText)
		skip := b.MakeLabel()
		b.BCC(skip)
		b.INX()
		b.Label(skip)
	case operand.IndirectOffset:
		b.LDA(src.Base)
		b.LDX(src.Base + "+1")
		b.CLC()
		b.ADC(src.OffsetText)
		skip := b.MakeLabel()
		b.BCC(skip)
		b.INX()
		b.Label(skip)
	default:
		diag.Fatalf("loadAddr: invalid operand mode for address-of")
	}
}

func transfer(b *Builder, dst, src string) {
	if dst == src {
		return
	}
	switch dst + src {
	case "AX":
		b.TXA()
	case "AY":
		b.TYA()
	case "XA":
		b.TAX()
	case "XY":
		b.TYA()
		b.TAX()
	case "YA":
		b.TAY()
	case "YX":
		b.TXA()
		b.TAY()
	default:
		diag.Fatalf("unsupported register transfer: %s <- %s", dst, src)
	}
}

// loadByte emits code that lands src's value in register dst (one of
// "A", "X", "Y").
func (b *Builder) loadByte(dst string, src *operand.Operand) {
	load := map[string]func(string){"A": b.LDA, "X": b.LDX, "Y": b.LDY}[dst]
	switch src.Mode {
	case operand.Immediate:
		load("#" + src.ImmLo)
	case operand.Absolute:
		load(src.Base)
	case operand.Offset:
		load(fmt.Sprintf("%s+%s", src.Base, src.OffsetText))
	case operand.VariableOffset:
		if dst == "A" || dst == "X" {
			b.LDY(src.OffsetText)
			load(fmt.Sprintf("%s,Y", src.Base))
		} else {
			b.LDX(src.OffsetText)
			load(fmt.Sprintf("%s,X", src.Base))
		}
	case operand.IndirectOffset:
		if len(src.OffsetText) > 0 && src.OffsetText[0] == '@' {
			diag.Require(src.OffsetText == "@Y", "only Y can be used as the offset register: got %s", src.OffsetText[1:])
		} else {
			b.LDY(src.OffsetText)
		}
		b.LDA(fmt.Sprintf("(%s),Y", src.Base))
		if dst == "Y" {
			b.TAY()
		} else if dst == "X" {
			b.TAX()
		}
	case operand.Register:
		transfer(b, dst, src.RegLow())
	default:
		diag.Fatalf("loadByte: unhandled operand mode")
	}
}

// loadWord emits code that lands src's value in the register pair
// dstHi:dstLo.
func (b *Builder) loadWord(dstHi, dstLo string, src *operand.Operand) {
	diag.Require(dstHi != dstLo, "register conflict: %s==%s", dstHi, dstLo)
	loadLSB := map[string]func(string){"A": b.LDA, "X": b.LDX, "Y": b.LDY}[dstLo]
	loadMSB := map[string]func(string){"A": b.LDA, "X": b.LDX, "Y": b.LDY}[dstHi]

	switch src.Mode {
	case operand.Immediate:
		loadLSB("#" + src.ImmLo)
		loadMSB("#" + src.ImmHi)
	case operand.Absolute:
		loadLSB(src.Base)
		loadMSB(src.Base + "+1")
	case operand.Offset:
		loadLSB(fmt.Sprintf("%s+%s", src.Base, src.OffsetText))
		loadMSB(fmt.Sprintf("%s+%s+1", src.Base, src.OffsetText))
	case operand.VariableOffset:
		diag.Require(dstHi == "X" && dstLo == "A", "loadWord: variable-offset source only supports XA destination")
		b.LDY(src.OffsetText)
		b.LDA(fmt.Sprintf("%s,Y", src.Base))
		b.LDX(fmt.Sprintf("%s+1,Y", src.Base))
	case operand.IndirectOffset:
		b.LDY(src.OffsetText)
		switch dstLo {
		case "A":
			if dstHi == "X" {
				b.INY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.TAX()
				b.DEY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
			} else {
				diag.Require(dstHi == "Y", "expected Y; got %s", dstHi)
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.PHA()
				b.INY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.TAY()
				b.PLA()
			}
		case "X":
			b.LDA(fmt.Sprintf("(%s),Y", src.Base))
			b.TAX()
			b.INY()
			b.LDA(fmt.Sprintf("(%s),Y", src.Base))
			if dstHi == "Y" {
				b.TAY()
			} else {
				diag.Require(dstHi == "A", "expected A; got %s", dstHi)
			}
		default:
			diag.Require(dstLo == "Y", "expected Y; got %s", dstLo)
			if dstHi == "A" {
				b.INY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.PHA()
				b.DEY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.TAY()
				b.PLA()
			} else {
				diag.Require(dstHi == "X", "expected X; got %s", dstHi)
				b.INY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.TAX()
				b.DEY()
				b.LDA(fmt.Sprintf("(%s),Y", src.Base))
				b.TAY()
			}
		}
	case operand.Register:
		diag.Fatalf("loadWord: register-to-register word transfers are unsupported")
	default:
		diag.Fatalf("loadWord: unhandled operand mode")
	}
}

func (b *Builder) storeByte(dst *operand.Operand) {
	switch dst.Mode {
	case operand.Immediate:
		b.STA("#" + dst.ImmLo)
	case operand.Absolute:
		b.STA(dst.Base)
	case operand.Offset:
		b.STA(fmt.Sprintf("%s+%s", dst.Base, dst.OffsetText))
	case operand.VariableOffset:
		b.LDY(dst.OffsetText)
		b.STA(fmt.Sprintf("%s,Y", dst.Base))
	case operand.IndirectOffset:
		b.LDY(dst.OffsetText)
		b.STA(fmt.Sprintf("(%s),Y", dst.Base))
	default:
		diag.Fatalf("storeByte: invalid destination mode")
	}
}

// storeWord stores A into dst's low byte (as storeByte) then X into its
// high byte; Y-based destinations assume the low-byte store already left
// the index in Y.
func (b *Builder) storeWord(dst *operand.Operand) {
	b.storeByte(dst)
	switch dst.Mode {
	case operand.Immediate:
		b.STX("#" + dst.ImmHi)
	case operand.Absolute:
		b.STX(dst.Base + "+1")
	case operand.Offset:
		b.STX(fmt.Sprintf("%s+%s+1", dst.Base, dst.OffsetText))
	case operand.VariableOffset:
		b.INY()
		b.STX(fmt.Sprintf("%s,Y", dst.Base))
	case operand.IndirectOffset:
		b.INY()
		b.STX(fmt.Sprintf("(%s),Y", dst.Base))
	default:
		diag.Fatalf("storeWord: invalid destination mode")
	}
}

// mathOp is a primitive accumulator operation (ADC, SBC, AND, ORA, EOR).
type mathOp func(string)

func (b *Builder) applyMath(op mathOp, src *operand.Operand) {
	switch src.Mode {
	case operand.Immediate:
		op("#" + src.ImmLo)
	case operand.Absolute:
		op(src.Base)
	case operand.Offset:
		op(fmt.Sprintf("%s+%s", src.Base, src.OffsetText))
	case operand.VariableOffset:
		b.LDY(src.OffsetText)
		op(fmt.Sprintf("%s,Y", src.Base))
	case operand.IndirectOffset:
		if len(src.OffsetText) > 0 && src.OffsetText[0] == '@' {
			diag.Require(src.OffsetText == "@Y", "only Y can be used as the offset register: got %s", src.OffsetText[1:])
		}
		b.LDY(src.OffsetText)
		op(fmt.Sprintf("(%s),Y", src.Base))
	default:
		diag.Fatalf("applyMath: register arithmetic is unsupported")
	}
}

// arithmetic names the carry-flag setup and register-increment shortcut
// an accumulator op needs, mirroring the original compiler's
// addition/subtract tables.
type arithmetic struct {
	name        string
	op          mathOp
	clearFlag   func()
	incrementX  func()
	incrementY  func()
	hasIncrement bool
}

func (b *Builder) addition() arithmetic {
	return arithmetic{name: "ADD", op: b.ADC, clearFlag: b.CLC, incrementX: b.INX, incrementY: b.INY, hasIncrement: true}
}

func (b *Builder) subtract() arithmetic {
	return arithmetic{name: "SUB", op: b.SBC, clearFlag: b.SEC, incrementX: b.DEX, incrementY: b.DEY, hasIncrement: true}
}

// bitwise wraps a pure bitwise accumulator op (AND/ORA/EOR) with no
// carry-flag setup and no increment shortcuts.
func bitwise(name string, op mathOp) arithmetic {
	return arithmetic{name: name, op: op}
}

func (b *Builder) mathBB(op arithmetic, dst, src *operand.Operand) {
	b.REM(operand.MacroString(op.name+"BB", dst, src))

	if dst.Mode != operand.Register {
		b.loadByte("A", src)
		if op.clearFlag != nil {
			op.clearFlag()
		}
		b.applyMath(op.op, dst)
		b.storeByte(dst)
		return
	}

	if op.hasIncrement && src.Mode == operand.Immediate && src.NumberValid {
		reg := dst.RegLow()
		switch src.Number {
		case 0:
			b.REM("optimized out " + op.name + " 0")
			return
		case 2:
			if reg == "X" {
				op.incrementX()
				op.incrementX()
				return
			}
			if reg == "Y" {
				op.incrementY()
				op.incrementY()
				return
			}
		case 1:
			if reg == "X" {
				op.incrementX()
				return
			}
			if reg == "Y" {
				op.incrementY()
				return
			}
		}
	}

	reg := dst.RegLow()
	switch reg {
	case "X":
		b.TXA()
		if op.clearFlag != nil {
			op.clearFlag()
		}
		b.applyMath(op.op, src)
		b.TAX()
	case "Y":
		b.TYA()
		if op.clearFlag != nil {
			op.clearFlag()
		}
		b.applyMath(op.op, src)
		b.TAY()
	default:
		diag.Require(reg == "A", "expected register A; got %s", reg)
		if op.clearFlag != nil {
			op.clearFlag()
		}
		b.applyMath(op.op, src)
	}
}

func (b *Builder) mathWB(op arithmetic, dst, src *operand.Operand) {
	b.REM(operand.MacroString(op.name+"WB", dst, src))

	if op.clearFlag != nil {
		op.clearFlag()
	}
	b.loadByte("A", src)
	b.applyMath(op.op, dst)
	b.storeByte(dst)

	msb := operand.HighByte(dst)
	b.loadByte("A", zeroByte)
	b.applyMath(op.op, msb)
	b.storeByte(msb)
}

func (b *Builder) mathWW(op arithmetic, dst, src *operand.Operand) {
	b.REM(operand.MacroString(op.name+"WW", dst, src))

	if op.clearFlag != nil {
		op.clearFlag()
	}
	b.loadByte("A", src)
	b.applyMath(op.op, dst)
	b.storeByte(dst)

	dstMSB := operand.HighByte(dst)
	srcMSB := operand.HighByte(src)
	b.loadByte("A", srcMSB)
	b.applyMath(op.op, dstMSB)
	b.storeByte(dstMSB)
}

func (b *Builder) dispatchMath(op arithmetic, dst, src *operand.Operand) {
	switch {
	case dst.Size == 1:
		b.mathBB(op, dst, src)
		if src.Size == 2 {
			diag.Warnf("right-hand side will be truncated to a byte")
			b.REM("WARNING: VALUE TRUNCATED")
		}
	case dst.Size == 2 && src.Size == 1:
		b.mathWB(op, dst, src)
	case dst.Size == 2 && src.Size == 2:
		b.mathWW(op, dst, src)
	default:
		diag.Fatalf("dispatchMath: bad operand size: %d %d", dst.Size, src.Size)
	}
}

// PLUS implements `dst += src`.
func (b *Builder) PLUSOp(dst, src *operand.Operand) { b.dispatchMath(b.addition(), dst, src) }

// LESS implements `dst -= src`.
func (b *Builder) LESSOp(dst, src *operand.Operand) { b.dispatchMath(b.subtract(), dst, src) }

// BITAND implements `dst &= src`.
func (b *Builder) BITANDOp(dst, src *operand.Operand) { b.dispatchMath(bitwise("AND", b.AND), dst, src) }

// OROp implements `dst |= src`.
func (b *Builder) OROp(dst, src *operand.Operand) { b.dispatchMath(bitwise("OR", b.ORA), dst, src) }

// XOROp implements `dst ^= src`.
func (b *Builder) XOROp(dst, src *operand.Operand) { b.dispatchMath(bitwise("XOR", b.EOR), dst, src) }

// NOTOp implements `dst != src`: dst receives the bitwise complement of
// src, ignoring dst's prior contents (unlike the other compound-assign
// macros, which fold src into dst's existing value).
func (b *Builder) NOTOp(dst, src *operand.Operand) {
	b.REM(operand.MacroString("NOT", dst, src))
	switch {
	case dst.Size == 1:
		b.loadByte("A", src)
		b.EOR("#$FF")
		if dst.Mode == operand.Register {
			transfer(b, dst.RegLow(), "A")
		} else {
			b.storeByte(dst)
		}
		if src.Size == 2 {
			diag.Warnf("right-hand side will be truncated to a byte")
		}
	case dst.Size == 2 && src.Size <= 2:
		b.loadByte("A", src)
		b.EOR("#$FF")
		b.storeByte(dst)
		srcMSB := zeroByte
		if src.Size == 2 {
			srcMSB = operand.HighByte(src)
		}
		b.loadByte("A", srcMSB)
		b.EOR("#$FF")
		b.storeByte(operand.HighByte(dst))
	default:
		diag.Fatalf("NOTOp: bad operand size: %d %d", dst.Size, src.Size)
	}
}

func (b *Builder) copyBB(dst, src *operand.Operand) {
	b.REM(operand.MacroString("COPYBB", dst, src))
	if dst.Mode == operand.Register {
		b.loadByte(dst.RegLow(), src)
		return
	}
	b.loadByte("A", src)
	b.storeByte(dst)
}

func (b *Builder) copyWB(dst, src *operand.Operand) {
	b.REM(operand.MacroString("COPYWB", dst, src))
	if dst.Mode == operand.Register {
		b.loadByte(dst.RegLow(), src)
		b.loadByte(dst.RegHigh(), zeroByte)
		return
	}
	b.loadByte("A", src)
	b.loadByte("X", zeroByte)
	b.storeWord(dst)
}

func (b *Builder) copyWW(dst, src *operand.Operand) {
	b.REM(operand.MacroString("COPYWW", dst, src))
	if dst.Mode == operand.Register {
		b.loadWord(dst.RegHigh(), dst.RegLow(), src)
		return
	}
	b.loadWord("X", "A", src)
	b.storeWord(dst)
}

// COPYOp implements `dst := src`.
func (b *Builder) COPYOp(dst, src *operand.Operand) {
	switch {
	case dst.Size == 1:
		b.copyBB(dst, src)
		if src.Size == 2 {
			diag.Warnf("right-hand side will be truncated to a byte")
			b.REM("WARNING: VALUE TRUNCATED")
		}
	case dst.Size == 2 && src.Size == 1:
		b.copyWB(dst, src)
	case dst.Size == 2 && src.Size == 2:
		b.copyWW(dst, src)
	default:
		diag.Fatalf("COPYOp: bad operand size: %d %d", dst.Size, src.Size)
	}
}

func compareReg(b *Builder, reg string) func(string) {
	return map[string]func(string){"A": b.CMP, "X": b.CPX, "Y": b.CPY}[reg]
}

func (b *Builder) compareByte(reg string, val *operand.Operand) {
	compare := compareReg(b, reg)
	switch val.Mode {
	case operand.Immediate:
		compare("#" + val.ImmLo)
	case operand.Absolute:
		compare(val.Base)
	case operand.Offset:
		compare(fmt.Sprintf("%s+%s", val.Base, val.OffsetText))
	case operand.VariableOffset:
		if reg == "A" || reg == "X" {
			b.LDY(val.OffsetText)
			b.CMP(fmt.Sprintf("%s,Y", val.Base))
		} else {
			b.LDX(val.OffsetText)
			b.CMP(fmt.Sprintf("%s,X", val.Base))
		}
	case operand.IndirectOffset:
		if len(val.OffsetText) > 0 && val.OffsetText[0] == '@' {
			diag.Require(val.OffsetText == "@Y", "only Y can be used as the offset register: got %s", val.OffsetText[1:])
		}
		if reg == "Y" {
			b.TYA()
		} else if reg == "X" {
			b.TXA()
		}
		b.LDY(val.OffsetText)
		b.CMP(fmt.Sprintf("(%s),Y", val.Base))
	default:
		diag.Fatalf("compareByte: unhandled operand mode")
	}
}

func (b *Builder) compareByteUnless0(reg string, val *operand.Operand) {
	if val.Mode == operand.Immediate && val.NumberValid && val.Number == 0 {
		return
	}
	b.compareByte(reg, val)
}
