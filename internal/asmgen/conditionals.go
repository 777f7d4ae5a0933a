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

// ADDROp implements `pointer := &src`: it loads src's address into A/X
// and stores it into pointer's two zero-page bytes.
func (b *Builder) ADDROp(pointer string, src *operand.Operand) {
	b.loadAddr(src)
	b.STX(pointer + "+1")
	b.STA(pointer)
}

// IFTTOp always branches to then, unconditionally; done is never reached.
// Used for the (rare) always-true condition.
func (b *Builder) IFTTOp(then, done string) {
	b.REM(fmt.Sprintf("IFTT %s %s", then, done))
	b.JMP(then)
}

// IFEQOp branches to then when left == right, else falls through to done.
func (b *Builder) IFEQOp(left, right *operand.Operand, then, done string) {
	if left.Size == 1 && right.Size == 2 {
		b.IFEQOp(right, left, then, done)
		return
	}

	b.REM(operand.MacroString("IFEQ", left, right))
	b.REM(fmt.Sprintf("  %s %s", then, done))

	switch {
	case left.Size == 1 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegLow(), right)
		} else {
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BEQ(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), zeroByte)
			b.BNE(done)
			b.compareByte(left.RegLow(), right)
		} else {
			msb := operand.HighByte(left)
			b.loadByte("A", msb)
			b.BNE(done)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BEQ(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 2:
		rmsb := operand.HighByte(right)
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), rmsb)
			b.BNE(done)
			b.compareByte(left.RegLow(), right)
		} else {
			lmsb := operand.HighByte(left)
			b.loadByte("A", lmsb)
			b.compareByte("A", rmsb)
			b.BNE(done)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BEQ(then)
		b.JMP(done)

	default:
		diag.Fatalf("IFEQ: bad operand size: %d %d", left.Size, right.Size)
	}
}

// IFGEOp branches to then when left >= right, else falls through to done.
func (b *Builder) IFGEOp(left, right *operand.Operand, then, done string) {
	b.REM(operand.MacroString("IFGE", left, right))
	b.REM(fmt.Sprintf("  %s %s", then, done))

	switch {
	case left.Size == 1 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegLow(), right)
		} else {
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BCS(then)
		b.JMP(done)

	case left.Size == 1 && right.Size == 2:
		if right.Mode == operand.Register {
			b.compareByte(right.RegHigh(), zeroByte)
			b.BNE(done)
			b.compareByte(left.RegLow(), right)
			b.BCS(then)
			b.JMP(done)
		} else {
			msb := operand.HighByte(right)
			b.loadByte("A", msb)
			b.BNE(done)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
			b.BCS(then)
			b.JMP(done)
		}

	case left.Size == 2 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), zeroByte)
			b.BNE(then)
			b.compareByteUnless0(left.RegLow(), right)
		} else {
			msb := operand.HighByte(left)
			b.loadByte("A", msb)
			b.BNE(then)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BCS(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 2:
		rmsb := operand.HighByte(right)
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), rmsb)
			b.BCC(done)
			b.BNE(then)
			b.compareByte(left.RegLow(), right)
			b.BCS(then)
			b.JMP(done)
		} else {
			lmsb := operand.HighByte(left)
			b.loadByte("A", lmsb)
			b.compareByteUnless0("A", rmsb)
			b.BCC(done)
			b.BNE(then)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
			b.BCS(then)
			b.JMP(done)
		}

	default:
		diag.Fatalf("IFGE: bad operand size: %d %d", left.Size, right.Size)
	}
}

// IFGTOp branches to then when left > right: left > right iff right < left.
func (b *Builder) IFGTOp(left, right *operand.Operand, then, done string) {
	b.IFLTOp(right, left, then, done)
}

// IFLTOp branches to then when left < right, else falls through to done.
func (b *Builder) IFLTOp(left, right *operand.Operand, then, done string) {
	if left.Size == 1 && right.Size == 2 {
		// M < N iff N >= M.
		b.IFGEOp(right, left, then, done)
		return
	}

	b.REM(operand.MacroString("IFLT", left, right))
	b.REM(fmt.Sprintf("  %s %s", then, done))

	switch {
	case left.Size == 1 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegLow(), right)
		} else {
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BCC(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), zeroByte)
			b.BNE(done)
			b.compareByte(left.RegLow(), right)
			b.BCC(then)
			b.JMP(done)
		} else {
			msb := operand.HighByte(left)
			b.loadByte("A", msb)
			b.BNE(done)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
			b.BCC(then)
			b.JMP(done)
		}

	case left.Size == 2 && right.Size == 2:
		rmsb := operand.HighByte(right)
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), rmsb)
			b.BCC(then)
			b.BNE(done)
			b.compareByte(left.RegLow(), right)
			b.BCC(then)
			b.JMP(done)
		} else {
			lmsb := operand.HighByte(left)
			b.loadByte("A", lmsb)
			b.compareByteUnless0("A", rmsb)
			b.BCC(then)
			b.BNE(done)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
			b.BCC(then)
			b.JMP(done)
		}

	default:
		diag.Fatalf("IFLT: bad operand size: %d %d", left.Size, right.Size)
	}
}

// IFLEOp branches to then when left <= right: left <= right iff right >= left,
// which produces shorter code than expanding the <= case directly.
func (b *Builder) IFLEOp(left, right *operand.Operand, then, done string) {
	b.IFGEOp(right, left, then, done)
}

// IFNEOp branches to then when left <> right, else falls through to done.
func (b *Builder) IFNEOp(left, right *operand.Operand, then, done string) {
	if left.Size == 1 && right.Size == 2 {
		b.IFNEOp(right, left, then, done)
		return
	}

	b.REM(operand.MacroString("IFNE", left, right))
	b.REM(fmt.Sprintf("  %s %s", then, done))

	switch {
	case left.Size == 1 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegLow(), right)
		} else {
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BNE(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 1:
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), zeroByte)
			b.BNE(then)
			b.compareByte(left.RegLow(), right)
		} else {
			msb := operand.HighByte(left)
			b.loadByte("A", msb)
			b.BNE(then)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BNE(then)
		b.JMP(done)

	case left.Size == 2 && right.Size == 2:
		rmsb := operand.HighByte(right)
		if left.Mode == operand.Register {
			b.compareByte(left.RegHigh(), rmsb)
			b.BNE(then)
			b.compareByte(left.RegLow(), right)
		} else {
			lmsb := operand.HighByte(left)
			b.loadByte("A", lmsb)
			b.compareByteUnless0("A", rmsb)
			b.BNE(then)
			b.loadByte("A", left)
			b.compareByteUnless0("A", right)
		}
		b.BNE(then)
		b.JMP(done)

	default:
		diag.Fatalf("IFNE: bad operand size: %d %d", left.Size, right.Size)
	}
}
