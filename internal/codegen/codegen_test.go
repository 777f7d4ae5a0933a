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

package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2lang/a2c/internal/codegen"
	"github.com/a2lang/a2c/internal/lang"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	program, err := lang.Parse(src)
	require.NoError(t, err)
	return codegen.Generate(program).Builder.String()
}

func TestByteVariableReservesData(t *testing.T) {
	out := compile(t, "var [counter:byte]\n")
	assert.Contains(t, out, "counter\tHEX\t00")
}

func TestNumberLiteralBecomesEQU(t *testing.T) {
	out := compile(t, "let cNum = 5\n")
	assert.Contains(t, out, "cNum\tEQU\t$05")
}

func TestWordSizedNumberLiteralUsesFourDigits(t *testing.T) {
	out := compile(t, "let big = $1234\n")
	assert.Contains(t, out, "big\tEQU\t$1234")
}

func TestCharLiteralIsHighASCII(t *testing.T) {
	out := compile(t, "let letterA = `A\n")
	assert.Contains(t, out, "letterA\tEQU\t$C1")
}

func TestTextLiteralIsZeroTerminatedData(t *testing.T) {
	out := compile(t, "let greet = \"Hi\"\n")
	assert.Contains(t, out, "greet\tASC\t\"Hi\"")

	greet := strings.Index(out, "greet\tASC")
	require.GreaterOrEqual(t, greet, 0)
	assert.Contains(t, out[greet:], "\tHEX\t00")
}

func TestSubroutineAssignsZeroThroughAccumulator(t *testing.T) {
	out := compile(t, "var [counter:byte]\nlet main = sub { counter := 0 }\n")
	assert.Contains(t, out, "main\tLDA\t#$00")
	assert.Contains(t, out, "STA\tcounter")
	assert.Contains(t, out, "\tRTS")
}

func TestWhileLoopShape(t *testing.T) {
	out := compile(t, "var [x:byte]\nwhile x <> 0 { x -= 1 }\n")
	assert.Contains(t, out, "LDA\tx")
	assert.Contains(t, out, "BNE\tA2_2")
	assert.Contains(t, out, "JMP\tA2_3", "comparison failure must jump to done")
	assert.Contains(t, out, "JMP\tA2_1", "loop body must jump back to entry")
}

func TestComparisonAgainstZeroSkipsCMP(t *testing.T) {
	out := compile(t, "var [x:byte]\nif x == 0 { x := 1 }\n")
	assert.NotContains(t, out, "CMP\t#$00", "LDA already set Z for a zero compare")
}

func TestTailCallPeephole(t *testing.T) {
	out := compile(t, "let dec = sub { -> }\nlet noop = sub { dec() }\n")
	assert.Contains(t, out, "JMP\tdec", "JSR dec; RTS collapses into JMP dec")
}

func TestJSRBeforeLabelSurvivesPeephole(t *testing.T) {
	out := compile(t, "let dec = sub { -> }\ndec()\nlet noop = sub { dec() }\n")
	assert.Contains(t, out, "JSR\tdec", "a call not followed by RTS stays a JSR")
	assert.Contains(t, out, "JMP\tdec")
}

func TestPointerAssignmentTakesAddress(t *testing.T) {
	out := compile(t, "var [buf:byte^10, p:byte^@$50]\np := buf\n")
	assert.Contains(t, out, "p\tEQU\t$0050")
	assert.Contains(t, out, "LDA\t#<buf")
	assert.Contains(t, out, "LDX\t#>buf")
	assert.Contains(t, out, "STX\tp+1")
	assert.Contains(t, out, "STA\tp")
}

func TestPointerSubscriptStoresIndirect(t *testing.T) {
	out := compile(t, "var [buf:byte^4, p:byte^@$50]\np := buf\np_1 := 9\n")
	assert.Contains(t, out, "LDY\t#$01")
	assert.Contains(t, out, "STA\t(p),Y")
}

func TestRegisterParameterLoadsBeforeJSR(t *testing.T) {
	out := compile(t, "use [COUT: sub <-[ch:byte@A] @$FDED]\nlet main = sub { COUT(`H) }\n")
	assert.Contains(t, out, "COUT\tEQU\t$FDED")
	assert.Contains(t, out, "LDA\t#$C8", "H is $48, loaded as high-ASCII $C8")
	assert.Contains(t, out, "JMP\tCOUT", "the tail call JSR COUT; RTS collapses into JMP COUT")

	lda := strings.Index(out, "LDA\t#$C8")
	jsr := strings.Index(out, "JMP\tCOUT")
	assert.Less(t, lda, jsr, "the register argument loads before the call")
}

func TestMemoryParameterIsSetBeforeJSR(t *testing.T) {
	out := compile(t, "use [PRINT: sub <-[ch:byte] @$0300]\nlet main = sub { PRINT(5) }\n")
	assert.Contains(t, out, "PRINT.ch\tHEX\t00", "an unlocated parameter gets its own storage")
	assert.Contains(t, out, "STA\tPRINT.ch")
	assert.Contains(t, out, "JMP\tPRINT", "the tail call JSR PRINT; RTS collapses into JMP PRINT")
}

func TestRegisterIncrementOptimization(t *testing.T) {
	out := compile(t, "use [i:byte@X]\nlet main = sub { i += 1 }\n")
	assert.Contains(t, out, "INX")
	assert.NotContains(t, out, "ADC")
}

func TestRegisterDoubleIncrementOptimization(t *testing.T) {
	out := compile(t, "use [i:byte@Y]\nlet main = sub { i -= 2 }\n")
	assert.Equal(t, 2, strings.Count(out, "DEY"))
}

func TestPlusZeroIsElided(t *testing.T) {
	out := compile(t, "use [i:byte@X]\nlet main = sub { i += 0 }\n")
	assert.NotContains(t, out, "INX")
	assert.NotContains(t, out, "ADC")
}

func TestGroupFieldAccessUsesOffset(t *testing.T) {
	src := "let pair = group { lo:byte, hi:byte }\n" +
		"var [pt:pair]\n" +
		"pt.hi := 1\n"
	out := compile(t, src)
	assert.Contains(t, out, "STA\tpt+1", "hi packs at offset 1")
}

func TestLocalLabelsQualifyBySubroutine(t *testing.T) {
	out := compile(t, "var [x:byte]\nlet main = sub { while x <> 0 { x -= 1 } }\n")
	assert.Contains(t, out, "main.A2_")
}

func TestInlineAssemblyPassesThrough(t *testing.T) {
	out := compile(t, "let main = sub { asm {\tBIT\t$C030\n} }\n")
	assert.Contains(t, out, "\tBIT\t$C030\n")
}

func TestCommentsAndAlternateBases(t *testing.T) {
	src := "; binary and hex literals\n" +
		"let mask = %01111011\n" +
		"let cout = $FDED\n"
	out := compile(t, src)
	assert.Contains(t, out, "mask\tEQU\t$7B")
	assert.Contains(t, out, "cout\tEQU\t$FDED")
}

func TestWordCopyGoesThroughXAPair(t *testing.T) {
	out := compile(t, "var [a:word, b:word]\na := b\n")
	assert.Contains(t, out, "LDA\tb")
	assert.Contains(t, out, "LDX\tb+1")
	assert.Contains(t, out, "STA\ta")
	assert.Contains(t, out, "STX\ta+1")
}

func TestByteToWordCopyZeroExtends(t *testing.T) {
	out := compile(t, "var [w:word, b:byte]\nw := b\n")
	assert.Contains(t, out, "LDA\tb")
	assert.Contains(t, out, "LDX\t#$00")
	assert.Contains(t, out, "STX\tw+1")
}

func TestCallOutputFeedsAssignment(t *testing.T) {
	src := "var [v:byte]\n" +
		"let next = sub ->[n:byte] { n := 1 }\n" +
		"v := next()\n"
	out := compile(t, src)
	assert.Contains(t, out, "JSR\tnext")
	assert.Contains(t, out, "LDA\tnext.n")
	assert.Contains(t, out, "STA\tv")
}

func TestIdempotentCompilation(t *testing.T) {
	src := "var [x:byte]\nlet main = sub { while x <> 0 { x -= 1 } }\n"
	assert.Equal(t, compile(t, src), compile(t, src))
}

func TestEmittedCodePrecedesData(t *testing.T) {
	out := compile(t, "var [x:byte]\nlet main = sub { x := 1 }\n")
	code := strings.Index(out, "LDA\t#$01")
	data := strings.Index(out, "x\tHEX\t00")
	require.GreaterOrEqual(t, code, 0)
	require.GreaterOrEqual(t, data, 0)
	assert.Less(t, code, data)
}
