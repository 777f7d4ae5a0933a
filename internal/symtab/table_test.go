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

package symtab

import (
	"testing"

	"github.com/a2lang/a2c/internal/diag"
)

// fatalHook replaces diag.Exit for the duration of a test so that
// diag.Fatalf (which never panics) can be observed instead of killing the
// test binary. Restore the original via the returned func.
func fatalHook(exitCode *int) func() {
	original := diag.Exit
	diag.Exit = func(code int) { *exitCode = code }
	return func() { diag.Exit = original }
}

func newTestTable() *Table {
	t := New()
	t.Initialize()
	return t
}

func TestInitializeBuiltins(t *testing.T) {
	tab := newTestTable()

	if got := tab.GetSize(tab.Lookup("byte")); got != 1 {
		t.Errorf("byte size = %d, want 1", got)
	}
	if got := tab.GetSize(tab.Lookup("word")); got != 2 {
		t.Errorf("word size = %d, want 2", got)
	}
	if got := tab.GetSize(tab.Lookup("int")); got != 1 {
		t.Errorf("int size = %d, want 1", got)
	}
	if !tab.IsPointer(tab.Lookup("addr")) {
		t.Errorf("addr should be a pointer type")
	}
	if !tab.IsPointer(tab.Lookup("text")) {
		t.Errorf("text should be a pointer type")
	}

	for _, name := range []string{"A", "X", "Y", "AX", "AY", "XA", "XY", "YA", "YX"} {
		sym := tab.Lookup(name)
		reg := tab.GetRegister(sym)
		if reg == RegNone {
			t.Errorf("register symbol %s missing Location", name)
		}
	}
}

func TestDuplicateNameIsFatal(t *testing.T) {
	tab := newTestTable()
	var exitCode int
	restore := fatalHook(&exitCode)
	defer restore()

	tab.AddVariable(nil, "dup", TypeInfo{Name: "byte"}, Location{Kind: LocFixed, Address: 0x1000})
	tab.AddVariable(nil, "dup", TypeInfo{Name: "byte"}, Location{Kind: LocFixed, Address: 0x1001})

	if exitCode != 1 {
		t.Errorf("expected fatal exit on duplicate name, got exitCode=%d", exitCode)
	}
}

func TestPointerMustBeZeroPage(t *testing.T) {
	tab := newTestTable()
	var exitCode int
	restore := fatalHook(&exitCode)
	defer restore()

	tab.AddVariable(nil, "p", TypeInfo{Name: "byte", IsPointer: true}, Location{Kind: LocFixed, Address: 0x2000})

	if exitCode != 1 {
		t.Errorf("expected fatal exit placing pointer outside zero page, got exitCode=%d", exitCode)
	}
}

func TestGroupLayoutComputesOffsetsAndSize(t *testing.T) {
	tab := newTestTable()

	group := tab.DeclareGroup("Point")
	tab.AddMember(group, "x", TypeInfo{Name: "word"}, Location{})
	tab.AddMember(group, "y", TypeInfo{Name: "byte"}, Location{})

	x := tab.GetMember(group, "x", -1)
	y := tab.GetMember(group, "y", -1)

	if tab.GetOffset(x) != 0 {
		t.Errorf("x offset = %d, want 0", tab.GetOffset(x))
	}
	if tab.GetOffset(y) != 2 {
		t.Errorf("y offset = %d, want 2", tab.GetOffset(y))
	}
	if got := tab.GetSize(group); got != 3 {
		t.Errorf("group size = %d, want 3", got)
	}
}

func TestSubroutineParamsAndOutputsAreDistinctGroups(t *testing.T) {
	tab := newTestTable()

	sub := tab.DeclareSubroutine("DrawLine", Location{Kind: LocFixed, Address: 0x0300})
	tab.AddParameter(sub, "x1", TypeInfo{Name: "byte"}, Location{Kind: LocRegister, Register: RegX})
	tab.AddParameter(sub, "y1", TypeInfo{Name: "byte"}, Location{Kind: LocRegister, Register: RegY})
	tab.AddOutput(sub, "ok", TypeInfo{Name: "byte"}, Location{Kind: LocRegister, Register: RegA})

	if got := len(sub.Params.Members); got != 2 {
		t.Errorf("param count = %d, want 2", got)
	}
	if got := len(sub.Outputs.Members); got != 1 {
		t.Errorf("output count = %d, want 1", got)
	}

	x1 := tab.LookupScoped(sub, "x1")
	if tab.GetRegister(x1) != RegX {
		t.Errorf("x1 register = %v, want RegX", tab.GetRegister(x1))
	}
}

func TestRegisterPairEncodingRoundTrips(t *testing.T) {
	for name, want := range map[string]Register{
		"AX": RegAX, "AY": RegAY, "XA": RegXA, "XY": RegXY, "YA": RegYA, "YX": RegYX,
	} {
		reg, ok := LookupRegister(name)
		if !ok || reg != want {
			t.Errorf("LookupRegister(%q) = %v,%v want %v,true", name, reg, ok, want)
		}
		if RegisterSize(reg) != 2 {
			t.Errorf("RegisterSize(%s) != 2", name)
		}
	}
	if RegisterHigh(RegXY) != RegX || RegisterLow(RegXY) != RegY {
		t.Errorf("RegisterHigh/Low(XY) = %v/%v, want X/Y", RegisterHigh(RegXY), RegisterLow(RegXY))
	}
}

func TestArraySizeIsCountTimesElementSize(t *testing.T) {
	tab := newTestTable()
	arr := tab.AddVariable(nil, "buf", TypeInfo{Name: "word", IsArray: true, Count: 4}, Location{Kind: LocFixed, Address: 0x4000})
	if got := tab.GetSize(arr); got != 8 {
		t.Errorf("array size = %d, want 8", got)
	}
	if got := tab.GetBaseSize(arr); got != 2 {
		t.Errorf("array base size = %d, want 2", got)
	}
}

func TestLiteralPlaceholderThenDefine(t *testing.T) {
	tab := newTestTable()
	sub := tab.DeclareSubroutine("Forward", Location{})
	defined := tab.DefineLiteralNumber(sub.Name, 0x8000)
	if tab.GetAddress(defined) != "$8000" {
		t.Errorf("forward-declared subroutine address = %s, want $8000", tab.GetAddress(defined))
	}
}
