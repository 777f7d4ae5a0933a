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
	"strings"
	"testing"

	"github.com/a2lang/a2c/internal/operand"
)

func TestPendingLabelCoalescesOntoNextInstruction(t *testing.T) {
	b := NewBuilder()
	b.Label("Loop")
	b.LDA("#$00")
	got := b.String()
	if !strings.Contains(got, "Loop\tLDA\t#$00") {
		t.Errorf("expected label to attach to LDA, got:\n%s", got)
	}
}

func TestUnusedLabelIsPromotedViaEQU(t *testing.T) {
	b := NewBuilder()
	b.Label("Skip")
	b.Label("Target")
	b.RTS("")
	got := b.String()
	if !strings.Contains(got, "Skip\tEQU\tTarget") {
		t.Errorf("expected EQU coalescing, got:\n%s", got)
	}
}

func TestOptimizeCollapsesJSRThenRTSIntoJMP(t *testing.T) {
	b := NewBuilder()
	b.JSR("Helper")
	b.RTS("")
	b.Optimize()
	got := b.String()
	if strings.Contains(got, "JSR") {
		t.Errorf("expected JSR;RTS to become JMP, got:\n%s", got)
	}
	if !strings.Contains(got, "JMP\tHelper") {
		t.Errorf("expected tail-call JMP, got:\n%s", got)
	}
}

func TestOptimizeLeavesLabeledRTSAlone(t *testing.T) {
	b := NewBuilder()
	b.JSR("Helper")
	b.Label("ExitPoint")
	b.RTS("")
	b.Optimize()
	got := b.String()
	if !strings.Contains(got, "JSR\tHelper") {
		t.Errorf("expected JSR to survive when followed by a labeled RTS, got:\n%s", got)
	}
}

func TestCOPYByteToByteLoadsAndStores(t *testing.T) {
	b := NewBuilder()
	dst := operand.AbsoluteOp("Dst", 1)
	src := operand.AbsoluteOp("Src", 1)
	b.COPYOp(dst, src)
	got := b.String()
	if !strings.Contains(got, "LDA\tSrc") || !strings.Contains(got, "STA\tDst") {
		t.Errorf("expected LDA Src / STA Dst, got:\n%s", got)
	}
}

func TestCOPYByteToRegisterUsesLoadOnly(t *testing.T) {
	b := NewBuilder()
	dst := operand.RegisterOp("X")
	src := operand.ImmediateNumber(5)
	b.COPYOp(dst, src)
	got := b.String()
	if !strings.Contains(got, "LDX\t#$05") {
		t.Errorf("expected LDX #$05, got:\n%s", got)
	}
	if strings.Contains(got, "STA") || strings.Contains(got, "STX") {
		t.Errorf("copying into a register must not store to memory, got:\n%s", got)
	}
}

func TestPLUSRegisterByOneUsesIncrement(t *testing.T) {
	b := NewBuilder()
	dst := operand.RegisterOp("X")
	src := operand.ImmediateNumber(1)
	b.PLUSOp(dst, src)
	got := b.String()
	if !strings.Contains(got, "INX") {
		t.Errorf("expected += 1 on X to use INX, got:\n%s", got)
	}
	if strings.Contains(got, "ADC") {
		t.Errorf("+= 1 on a register should not fall back to ADC, got:\n%s", got)
	}
}

func TestPLUSRegisterByTwoUsesDoubleIncrement(t *testing.T) {
	b := NewBuilder()
	dst := operand.RegisterOp("Y")
	src := operand.ImmediateNumber(2)
	b.PLUSOp(dst, src)
	got := b.String()
	if strings.Count(got, "INY") != 2 {
		t.Errorf("expected += 2 on Y to use two INY, got:\n%s", got)
	}
}

func TestPLUSRegisterByZeroEmitsNothing(t *testing.T) {
	b := NewBuilder()
	dst := operand.RegisterOp("A")
	src := operand.ImmediateNumber(0)
	b.PLUSOp(dst, src)
	got := b.String()
	if strings.Contains(got, "ADC") || strings.Contains(got, "CLC") {
		t.Errorf("+= 0 should be optimized away entirely, got:\n%s", got)
	}
}

func TestIFLTGreaterThanIsImplementedViaSwappedIFLT(t *testing.T) {
	b := NewBuilder()
	left := operand.AbsoluteOp("A", 1)
	right := operand.AbsoluteOp("B", 1)
	b.IFGTOp(left, right, "Then", "Done")
	got := b.String()
	if !strings.Contains(got, "BCC\tThen") {
		t.Errorf("expected IFGT(a,b) to compile as IFLT(b,a) using BCC, got:\n%s", got)
	}
}

func TestBITANDUsesANDOpcode(t *testing.T) {
	b := NewBuilder()
	dst := operand.AbsoluteOp("Flags", 1)
	src := operand.ImmediateNumber(0x0F)
	b.BITANDOp(dst, src)
	got := b.String()
	if !strings.Contains(got, "AND\tFlags") {
		t.Errorf("expected AND Flags, got:\n%s", got)
	}
}

func TestVARWrapsLongRunsAtThirtyTwoNibbles(t *testing.T) {
	b := NewBuilder()
	b.VAR("Buffer", 20)
	got := b.String()
	if !strings.Contains(got, strings.Repeat("0", 32)) {
		t.Errorf("expected a 32-nibble HEX line, got:\n%s", got)
	}
}
