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

import "testing"

func assemble(t *testing.T, source string, origin uint16) ([]byte, map[string]uint16) {
	t.Helper()
	image, symbols, err := Assemble(source, origin)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return image, symbols
}

func TestAssembleEncodesImmediateAndAbsolute(t *testing.T) {
	image, _ := assemble(t, "\tLDA\t#$07\n\tSTA\t$1234\n\tRTS\n", 0x6000)
	want := []byte{0xA9, 0x07, 0x8D, 0x34, 0x12, 0x60}
	if len(image) != len(want) {
		t.Fatalf("image length = %d, want %d", len(image), len(want))
	}
	for i := range want {
		if image[i] != want[i] {
			t.Errorf("image[%d] = $%02X, want $%02X", i, image[i], want[i])
		}
	}
}

func TestAssembleResolvesLabelsAndEQUChains(t *testing.T) {
	src := "alias\tEQU\ttarget\n" +
		"\tJMP\talias\n" +
		"target\tLDA\t#$01\n" +
		"\tRTS\n"
	image, symbols := assemble(t, src, 0x6000)
	if symbols["target"] != 0x6003 {
		t.Errorf("target = $%04X, want $6003", symbols["target"])
	}
	if symbols["alias"] != symbols["target"] {
		t.Errorf("alias = $%04X, want target's address", symbols["alias"])
	}
	if image[0] != 0x4C || image[1] != 0x03 || image[2] != 0x60 {
		t.Errorf("JMP encoding = % X", image[:3])
	}
}

func TestAssembleHighASCIIText(t *testing.T) {
	image, _ := assemble(t, "greet\tASC\t\"Hi\"\n\tHEX\t00\n", 0x0800)
	want := []byte{'H' | 0x80, 'i' | 0x80, 0x00}
	for i := range want {
		if image[i] != want[i] {
			t.Errorf("image[%d] = $%02X, want $%02X", i, image[i], want[i])
		}
	}
}

func TestRunStoresThroughAbsolute(t *testing.T) {
	src := "main\tLDA\t#$2A\n" +
		"\tSTA\tresult\n" +
		"\tRTS\n" +
		"result\tHEX\t00\n"
	image, symbols := assemble(t, src, 0x6000)

	cpu := New()
	cpu.Load(image, 0x6000)
	if err := cpu.Run(symbols["main"], 1000); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Mem[symbols["result"]]; got != 0x2A {
		t.Errorf("result = $%02X, want $2A", got)
	}
}

func TestRunCountdownLoop(t *testing.T) {
	src := "main\tLDX\t#$05\n" +
		"loop\tCPX\t#$00\n" +
		"\tBNE\tbody\n" +
		"\tJMP\tdone\n" +
		"body\tTXA\n" +
		"\tCLC\n" +
		"\tADC\ttotal\n" +
		"\tSTA\ttotal\n" +
		"\tDEX\n" +
		"\tJMP\tloop\n" +
		"done\tRTS\n" +
		"total\tHEX\t00\n"
	image, symbols := assemble(t, src, 0x6000)

	cpu := New()
	cpu.Load(image, 0x6000)
	if err := cpu.Run(symbols["main"], 10000); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Mem[symbols["total"]]; got != 15 {
		t.Errorf("total = %d, want 15", got)
	}
}

func TestRunIndirectIndexedStore(t *testing.T) {
	src := "ptr\tEQU\t$50\n" +
		"main\tLDA\t#<buf\n" +
		"\tLDX\t#>buf\n" +
		"\tSTX\tptr+1\n" +
		"\tSTA\tptr\n" +
		"\tLDA\t#$63\n" +
		"\tLDY\t#$01\n" +
		"\tSTA\t(ptr),Y\n" +
		"\tRTS\n" +
		"buf\tHEX\t0000\n"
	image, symbols := assemble(t, src, 0x6000)

	cpu := New()
	cpu.Load(image, 0x6000)
	if err := cpu.Run(symbols["main"], 1000); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Mem[symbols["buf"]+1]; got != 0x63 {
		t.Errorf("buf[1] = $%02X, want $63", got)
	}
}

func TestJSRAndRTSNest(t *testing.T) {
	src := "main\tJSR\tinner\n" +
		"\tLDA\t#$02\n" +
		"\tSTA\tout\n" +
		"\tRTS\n" +
		"inner\tLDA\t#$01\n" +
		"\tSTA\tout\n" +
		"\tRTS\n" +
		"out\tHEX\t00\n"
	image, symbols := assemble(t, src, 0x6000)

	cpu := New()
	cpu.Load(image, 0x6000)
	if err := cpu.Run(symbols["main"], 1000); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Mem[symbols["out"]]; got != 2 {
		t.Errorf("out = %d, want 2 (caller runs after inner returns)", got)
	}
}

func TestADCSetsCarryAcrossWordAdd(t *testing.T) {
	cpu := New()
	cpu.A = 0xFF
	cpu.adc(0x01)
	if cpu.A != 0x00 || !cpu.C || !cpu.Z {
		t.Errorf("0xFF+1: A=$%02X C=%v Z=%v, want A=0 C=true Z=true", cpu.A, cpu.C, cpu.Z)
	}
}

func TestSBCBorrow(t *testing.T) {
	cpu := New()
	cpu.A = 0x03
	cpu.C = true
	cpu.sbc(0x05)
	if cpu.A != 0xFE || cpu.C {
		t.Errorf("3-5: A=$%02X C=%v, want A=$FE C=false", cpu.A, cpu.C)
	}
}

func TestUnsupportedOpcodeErrors(t *testing.T) {
	cpu := New()
	cpu.Mem[0x6000] = 0xFF
	cpu.PC = 0x6000
	if err := cpu.Step(); err == nil {
		t.Error("expected an error for an unsupported opcode")
	}
}

func TestBranchOutOfRangeRejected(t *testing.T) {
	src := "start\tBNE\tfar\n" +
		"\tHEX\t" + bigHexRun(200) + "\n" +
		"far\tRTS\n"
	if _, _, err := Assemble(src, 0x6000); err == nil {
		t.Error("expected a branch-out-of-range error")
	}
}

func bigHexRun(n int) string {
	out := make([]byte, 2*n)
	for i := range out {
		out[i] = '0'
	}
	return string(out)
}
