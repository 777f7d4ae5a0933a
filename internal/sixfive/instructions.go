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

package sixfive

// addrMode is the 6502 addressing mode an opcode decodes its operand
// with.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectY
	modeRelative
)

func operandLength(mode addrMode) uint16 {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY:
		return 2
	default:
		return 1
	}
}

type instfunc func(c *CPU, addr uint16)

// instruction couples a mnemonic and addressing mode with its
// executor; the opcodes table below indexes it by opcode byte.
type instruction struct {
	name string
	mode addrMode
	fn   instfunc
}

var opcodes = map[byte]instruction{
	// Loads.
	0xA9: {"LDA", modeImmediate, (*CPU).lda},
	0xA5: {"LDA", modeZeroPage, (*CPU).lda},
	0xAD: {"LDA", modeAbsolute, (*CPU).lda},
	0xBD: {"LDA", modeAbsoluteX, (*CPU).lda},
	0xB9: {"LDA", modeAbsoluteY, (*CPU).lda},
	0xB1: {"LDA", modeIndirectY, (*CPU).lda},
	0xA2: {"LDX", modeImmediate, (*CPU).ldx},
	0xA6: {"LDX", modeZeroPage, (*CPU).ldx},
	0xAE: {"LDX", modeAbsolute, (*CPU).ldx},
	0xBE: {"LDX", modeAbsoluteY, (*CPU).ldx},
	0xA0: {"LDY", modeImmediate, (*CPU).ldy},
	0xA4: {"LDY", modeZeroPage, (*CPU).ldy},
	0xAC: {"LDY", modeAbsolute, (*CPU).ldy},
	0xBC: {"LDY", modeAbsoluteX, (*CPU).ldy},

	// Stores.
	0x85: {"STA", modeZeroPage, (*CPU).sta},
	0x8D: {"STA", modeAbsolute, (*CPU).sta},
	0x9D: {"STA", modeAbsoluteX, (*CPU).sta},
	0x99: {"STA", modeAbsoluteY, (*CPU).sta},
	0x91: {"STA", modeIndirectY, (*CPU).sta},
	0x86: {"STX", modeZeroPage, (*CPU).stx},
	0x8E: {"STX", modeAbsolute, (*CPU).stx},
	0x84: {"STY", modeZeroPage, (*CPU).sty},
	0x8C: {"STY", modeAbsolute, (*CPU).sty},

	// Arithmetic and bitwise.
	0x69: {"ADC", modeImmediate, (*CPU).adcM},
	0x6D: {"ADC", modeAbsolute, (*CPU).adcM},
	0x7D: {"ADC", modeAbsoluteX, (*CPU).adcM},
	0x79: {"ADC", modeAbsoluteY, (*CPU).adcM},
	0x71: {"ADC", modeIndirectY, (*CPU).adcM},
	0xE9: {"SBC", modeImmediate, (*CPU).sbcM},
	0xED: {"SBC", modeAbsolute, (*CPU).sbcM},
	0xFD: {"SBC", modeAbsoluteX, (*CPU).sbcM},
	0xF9: {"SBC", modeAbsoluteY, (*CPU).sbcM},
	0xF1: {"SBC", modeIndirectY, (*CPU).sbcM},
	0x29: {"AND", modeImmediate, (*CPU).and},
	0x2D: {"AND", modeAbsolute, (*CPU).and},
	0x39: {"AND", modeAbsoluteY, (*CPU).and},
	0x31: {"AND", modeIndirectY, (*CPU).and},
	0x09: {"ORA", modeImmediate, (*CPU).ora},
	0x0D: {"ORA", modeAbsolute, (*CPU).ora},
	0x19: {"ORA", modeAbsoluteY, (*CPU).ora},
	0x11: {"ORA", modeIndirectY, (*CPU).ora},
	0x49: {"EOR", modeImmediate, (*CPU).eor},
	0x4D: {"EOR", modeAbsolute, (*CPU).eor},
	0x59: {"EOR", modeAbsoluteY, (*CPU).eor},
	0x51: {"EOR", modeIndirectY, (*CPU).eor},
	0x0A: {"ASL", modeAccumulator, (*CPU).aslA},

	// Compares.
	0xC9: {"CMP", modeImmediate, (*CPU).cmp},
	0xCD: {"CMP", modeAbsolute, (*CPU).cmp},
	0xDD: {"CMP", modeAbsoluteX, (*CPU).cmp},
	0xD9: {"CMP", modeAbsoluteY, (*CPU).cmp},
	0xD1: {"CMP", modeIndirectY, (*CPU).cmp},
	0xE0: {"CPX", modeImmediate, (*CPU).cpx},
	0xEC: {"CPX", modeAbsolute, (*CPU).cpx},
	0xC0: {"CPY", modeImmediate, (*CPU).cpy},
	0xCC: {"CPY", modeAbsolute, (*CPU).cpy},

	// Increments and decrements.
	0xEE: {"INC", modeAbsolute, (*CPU).inc},
	0xCE: {"DEC", modeAbsolute, (*CPU).dec},
	0xE8: {"INX", modeImplied, (*CPU).inx},
	0xC8: {"INY", modeImplied, (*CPU).iny},
	0xCA: {"DEX", modeImplied, (*CPU).dex},
	0x88: {"DEY", modeImplied, (*CPU).dey},

	// Flags, transfers, stack.
	0x18: {"CLC", modeImplied, (*CPU).clc},
	0x38: {"SEC", modeImplied, (*CPU).sec},
	0xAA: {"TAX", modeImplied, (*CPU).tax},
	0xA8: {"TAY", modeImplied, (*CPU).tay},
	0x8A: {"TXA", modeImplied, (*CPU).txa},
	0x98: {"TYA", modeImplied, (*CPU).tya},
	0x48: {"PHA", modeImplied, (*CPU).pha},
	0x68: {"PLA", modeImplied, (*CPU).pla},

	// Control flow.
	0x90: {"BCC", modeRelative, (*CPU).bcc},
	0xB0: {"BCS", modeRelative, (*CPU).bcs},
	0xF0: {"BEQ", modeRelative, (*CPU).beq},
	0xD0: {"BNE", modeRelative, (*CPU).bne},
	0x4C: {"JMP", modeAbsolute, (*CPU).jmp},
	0x20: {"JSR", modeAbsolute, (*CPU).jsr},
	0x60: {"RTS", modeImplied, (*CPU).rts},
	0xEA: {"NOP", modeImplied, (*CPU).nop},
	0x00: {"BRK", modeImplied, (*CPU).brk},
}

func (c *CPU) lda(addr uint16) { c.A = c.setZN(c.Mem[addr]) }
func (c *CPU) ldx(addr uint16) { c.X = c.setZN(c.Mem[addr]) }
func (c *CPU) ldy(addr uint16) { c.Y = c.setZN(c.Mem[addr]) }
func (c *CPU) sta(addr uint16) { c.Mem[addr] = c.A }
func (c *CPU) stx(addr uint16) { c.Mem[addr] = c.X }
func (c *CPU) sty(addr uint16) { c.Mem[addr] = c.Y }

func (c *CPU) adcM(addr uint16) { c.adc(c.Mem[addr]) }
func (c *CPU) sbcM(addr uint16) { c.sbc(c.Mem[addr]) }
func (c *CPU) and(addr uint16)  { c.A = c.setZN(c.A & c.Mem[addr]) }
func (c *CPU) ora(addr uint16)  { c.A = c.setZN(c.A | c.Mem[addr]) }
func (c *CPU) eor(addr uint16)  { c.A = c.setZN(c.A ^ c.Mem[addr]) }

func (c *CPU) aslA(uint16) {
	c.C = c.A&0x80 != 0
	c.A = c.setZN(c.A << 1)
}

func (c *CPU) cmp(addr uint16) { c.compare(c.A, c.Mem[addr]) }
func (c *CPU) cpx(addr uint16) { c.compare(c.X, c.Mem[addr]) }
func (c *CPU) cpy(addr uint16) { c.compare(c.Y, c.Mem[addr]) }

func (c *CPU) inc(addr uint16) { c.Mem[addr] = c.setZN(c.Mem[addr] + 1) }
func (c *CPU) dec(addr uint16) { c.Mem[addr] = c.setZN(c.Mem[addr] - 1) }
func (c *CPU) inx(uint16)      { c.X = c.setZN(c.X + 1) }
func (c *CPU) iny(uint16)      { c.Y = c.setZN(c.Y + 1) }
func (c *CPU) dex(uint16)      { c.X = c.setZN(c.X - 1) }
func (c *CPU) dey(uint16)      { c.Y = c.setZN(c.Y - 1) }

func (c *CPU) clc(uint16) { c.C = false }
func (c *CPU) sec(uint16) { c.C = true }
func (c *CPU) tax(uint16) { c.X = c.setZN(c.A) }
func (c *CPU) tay(uint16) { c.Y = c.setZN(c.A) }
func (c *CPU) txa(uint16) { c.A = c.setZN(c.X) }
func (c *CPU) tya(uint16) { c.A = c.setZN(c.Y) }
func (c *CPU) pha(uint16) { c.push(c.A) }
func (c *CPU) pla(uint16) { c.A = c.setZN(c.pull()) }

func (c *CPU) bcc(addr uint16) { c.branch(!c.C, addr) }
func (c *CPU) bcs(addr uint16) { c.branch(c.C, addr) }
func (c *CPU) beq(addr uint16) { c.branch(c.Z, addr) }
func (c *CPU) bne(addr uint16) { c.branch(!c.Z, addr) }

func (c *CPU) jmp(addr uint16) { c.PC = addr }

func (c *CPU) jsr(addr uint16) {
	ret := c.PC - 1
	c.push(byte(ret >> 8))
	c.push(byte(ret))
	c.PC = addr
}

func (c *CPU) rts(uint16) {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	c.PC = (hi<<8 | lo) + 1
}

func (c *CPU) nop(uint16) {}
func (c *CPU) brk(uint16) { c.halted = true }
