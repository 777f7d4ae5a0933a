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

// Package sixfive is a small NMOS 6502 interpreter used by tests to
// execute the binaries assembled from the compiler's generated MERLIN
// text. It models only the instruction subset the code generator emits;
// decimal mode and interrupts are out of scope.
package sixfive

import "fmt"

// CPU is a 6502 machine state: registers, flags and a flat 64 KiB
// memory image.
type CPU struct {
	A, X, Y, SP byte
	PC          uint16
	C, Z, N, V  bool

	Mem [65536]byte

	halted bool
	steps  int
}

// New returns a CPU with cleared registers and memory.
func New() *CPU {
	return &CPU{SP: 0xFD}
}

// Load copies image into memory starting at origin.
func (c *CPU) Load(image []byte, origin uint16) {
	copy(c.Mem[origin:], image)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.Mem[addr]) | uint16(c.Mem[addr+1])<<8
}

func (c *CPU) push(v byte) {
	c.Mem[0x0100+uint16(c.SP)] = v
	c.SP--
}

func (c *CPU) pull() byte {
	c.SP++
	return c.Mem[0x0100+uint16(c.SP)]
}

func (c *CPU) setZN(v byte) byte {
	c.Z = v == 0
	c.N = v&0x80 != 0
	return v
}

// Step decodes and executes one instruction at PC. It returns an error
// for an opcode outside the supported subset.
func (c *CPU) Step() error {
	op := c.Mem[c.PC]
	inst, ok := opcodes[op]
	if !ok {
		return fmt.Errorf("sixfive: unsupported opcode $%02X at $%04X", op, c.PC)
	}

	operandPC := c.PC + 1
	c.PC += 1 + operandLength(inst.mode)

	var addr uint16
	switch inst.mode {
	case modeImplied, modeAccumulator:
	case modeImmediate:
		addr = operandPC
	case modeZeroPage:
		addr = uint16(c.Mem[operandPC])
	case modeAbsolute:
		addr = c.read16(operandPC)
	case modeAbsoluteX:
		addr = c.read16(operandPC) + uint16(c.X)
	case modeAbsoluteY:
		addr = c.read16(operandPC) + uint16(c.Y)
	case modeIndirectY:
		zp := uint16(c.Mem[operandPC])
		addr = c.read16(zp) + uint16(c.Y)
	case modeRelative:
		addr = uint16(int32(c.PC) + int32(int8(c.Mem[operandPC])))
	}

	inst.fn(c, addr)
	c.steps++
	return nil
}

// Run executes starting at entry until the outermost RTS returns (or a
// BRK is hit), erroring out after maxSteps instructions so a wrong
// branch cannot loop a test forever.
func (c *CPU) Run(entry uint16, maxSteps int) error {
	c.SP = 0xFD
	c.halted = false
	c.steps = 0

	// Sentinel return address: the final RTS lands PC on $0000.
	c.push(0xFF)
	c.push(0xFF)
	c.PC = entry

	for c.PC != 0x0000 && !c.halted {
		if c.steps >= maxSteps {
			return fmt.Errorf("sixfive: still running after %d steps at $%04X", c.steps, c.PC)
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Arithmetic and flag helpers shared by the instruction table.

func (c *CPU) adc(m byte) {
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + carry
	result := byte(sum)
	c.C = sum > 0xFF
	c.V = (c.A^m)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.A = c.setZN(result)
}

func (c *CPU) sbc(m byte) {
	c.adc(^m)
}

func (c *CPU) compare(reg, m byte) {
	c.C = reg >= m
	c.setZN(reg - m)
}

func (c *CPU) branch(cond bool, target uint16) {
	if cond {
		c.PC = target
	}
}
