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

package lang

import (
	"errors"
	"testing"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return p
}

func TestParseNumberBases(t *testing.T) {
	tests := []struct {
		src  string
		want uint16
		kind NumericalKind
	}{
		{"let a = 10\n", 10, NumberDecimal},
		{"let a = $1F\n", 0x1F, NumberHex},
		{"let a = %0101\n", 5, NumberBinary},
		{"let a = -1\n", 0xFFFF, NumberDecimal},
	}
	for _, tt := range tests {
		p := parse(t, tt.src)
		def := p.Block.Statements[0].Definition
		if def.Value.Kind != ValueNumber {
			t.Errorf("%q: not a number value", tt.src)
			continue
		}
		if def.Value.Number.Value != tt.want || def.Value.Number.Kind != tt.kind {
			t.Errorf("%q: got %d kind %d, want %d kind %d",
				tt.src, def.Value.Number.Value, def.Value.Number.Kind, tt.want, tt.kind)
		}
	}
}

func TestParseCharAndText(t *testing.T) {
	p := parse(t, "let ch = `A\nlet s = \"Hi\"\n")
	if ch := p.Block.Statements[0].Definition.Value; ch.Kind != ValueChar || ch.Char != 'A' {
		t.Errorf("char = %+v", ch)
	}
	if s := p.Block.Statements[1].Definition.Value; s.Kind != ValueText || s.Text != "Hi" {
		t.Errorf("text = %+v", s)
	}
}

func TestParseVariableDeclarations(t *testing.T) {
	p := parse(t, "var [x:byte, buf:char^16, p:byte^@$50, i:byte@X]\n")
	params := p.Block.Statements[0].Variable.Parameters
	if len(params) != 4 {
		t.Fatalf("param count = %d, want 4", len(params))
	}
	if params[1].Type.Kind != TypeArray || params[1].Type.Count != 16 {
		t.Errorf("buf = %+v, want char^16", params[1].Type)
	}
	if params[2].Type.Kind != TypePointer || params[2].Location.Kind != LocationFixed || params[2].Location.Address != 0x50 {
		t.Errorf("p = %+v @ %+v", params[2].Type, params[2].Location)
	}
	if params[3].Location.Kind != LocationRegister || params[3].Location.Reg != "X" {
		t.Errorf("i location = %+v, want @X", params[3].Location)
	}
}

func TestParseExternalSubroutineSignature(t *testing.T) {
	p := parse(t, "use [COUT: sub <-[ch:byte@A] @$FDED]\n")
	decl := p.Block.Statements[0].Declaration.Parameters[0]
	if decl.Type.Kind != TypeSubroutine {
		t.Fatalf("COUT type = %+v, want subroutine", decl.Type)
	}
	if len(decl.Type.SubInputs) != 1 || decl.Type.SubInputs[0].Name != "ch" {
		t.Errorf("inputs = %+v", decl.Type.SubInputs)
	}
	if decl.Location.Address != 0xFDED {
		t.Errorf("address = $%04X, want $FDED", decl.Location.Address)
	}
}

func TestParseSubroutineWithOutputs(t *testing.T) {
	p := parse(t, "let f = sub <-[a:byte] ->[r:byte] { r := a }\n")
	sub := p.Block.Statements[0].Definition.Value.Subroutine
	if len(sub.Inputs) != 1 || len(sub.Outputs) != 1 {
		t.Fatalf("inputs/outputs = %d/%d, want 1/1", len(sub.Inputs), len(sub.Outputs))
	}
	if len(sub.Body.Statements) != 1 || sub.Body.Statements[0].Kind != StmtAssignment {
		t.Errorf("body = %+v", sub.Body)
	}
}

func TestParseAssignmentOperators(t *testing.T) {
	src := "x := 1\nx += 1\nx -= 1\nx &= 1\nx |= 1\nx ^= 1\nx != 1\n"
	p := parse(t, src)
	want := []AssignmentKind{AssignCopy, AssignPlus, AssignMinus, AssignAnd, AssignOr, AssignXor, AssignNot}
	if len(p.Block.Statements) != len(want) {
		t.Fatalf("statement count = %d, want %d", len(p.Block.Statements), len(want))
	}
	for i, kind := range want {
		if got := p.Block.Statements[i].Assignment.Kind; got != kind {
			t.Errorf("statement %d kind = %d, want %d", i, got, kind)
		}
	}
}

func TestParseSubscriptAndField(t *testing.T) {
	p := parse(t, "buf_3 := 0\npt.x := 0\n")
	first := p.Block.Statements[0].Assignment.LHS
	if first.Subscript == nil || first.Subscript.Number.Value != 3 {
		t.Errorf("subscript = %+v", first.Subscript)
	}
	second := p.Block.Statements[1].Assignment.LHS
	if second.Field != "x" {
		t.Errorf("field = %q, want x", second.Field)
	}
}

func TestParseConditionalAndLoop(t *testing.T) {
	p := parse(t, "if x == 0 { x := 1 }\nwhile x < 9 { repeat }\n")
	if p.Block.Statements[0].Kind != StmtConditional {
		t.Errorf("first statement kind = %d", p.Block.Statements[0].Kind)
	}
	loop := p.Block.Statements[1]
	if loop.Kind != StmtLoop || loop.Loop.Compare != CompareLT {
		t.Errorf("loop = %+v", loop)
	}
	if loop.Loop.Body.Statements[0].Kind != StmtRepeat {
		t.Errorf("loop body = %+v", loop.Loop.Body)
	}
}

func TestParseControlStatements(t *testing.T) {
	p := parse(t, "let f = sub { -> }\nstop\n")
	body := p.Block.Statements[0].Definition.Value.Subroutine.Body
	if body.Statements[0].Kind != StmtReturn {
		t.Errorf("-> should parse as return, got kind %d", body.Statements[0].Kind)
	}
	if p.Block.Statements[1].Kind != StmtStop {
		t.Errorf("stop kind = %d", p.Block.Statements[1].Kind)
	}
}

func TestParseInlineAssemblyKeepsIndentation(t *testing.T) {
	p := parse(t, "asm {\tLDA\t$C000\n}\n")
	stmt := p.Block.Statements[0]
	if stmt.Kind != StmtAssembly {
		t.Fatalf("kind = %d, want assembly", stmt.Kind)
	}
	if stmt.Assembly != "\tLDA\t$C000\n" {
		t.Errorf("assembly = %q", stmt.Assembly)
	}
}

func TestParseCommentsAreSkipped(t *testing.T) {
	p := parse(t, "; leading comment\nlet a = 1 ; trailing\n; closing\n")
	if len(p.Block.Statements) != 1 {
		t.Errorf("statement count = %d, want 1", len(p.Block.Statements))
	}
}

func TestParseTypeAliasValues(t *testing.T) {
	p := parse(t, "let buffer = char^40\nlet cursor = char^\n")
	first := p.Block.Statements[0].Definition.Value
	if first.Kind != ValueType || first.Type.Kind != TypeArray || first.Type.Count != 40 {
		t.Errorf("buffer = %+v", first)
	}
	second := p.Block.Statements[1].Definition.Value
	if second.Kind != ValueType || second.Type.Kind != TypePointer {
		t.Errorf("cursor = %+v", second)
	}
}

func TestParseGroupDefinition(t *testing.T) {
	p := parse(t, "let point = group { x:byte, y:byte }\n")
	group := p.Block.Statements[0].Definition.Value
	if group.Kind != ValueGroup || len(group.Group.Members) != 2 {
		t.Errorf("group = %+v", group)
	}
}

func TestParseCallStatementAndValue(t *testing.T) {
	p := parse(t, "draw(1, x)\nv := next()\n")
	call := p.Block.Statements[0].Call
	if call.Name != "draw" || len(call.Args) != 2 {
		t.Errorf("call = %+v", call)
	}
	rhs := p.Block.Statements[1].Assignment.RHS
	if rhs.Kind != ValueCall || rhs.Call.Name != "next" {
		t.Errorf("rhs = %+v", rhs)
	}
}

func TestSyntaxErrorPointsAtSource(t *testing.T) {
	_, err := Parse("let a = 1\n???\n")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if syn.Line != 2 {
		t.Errorf("error line = %d, want 2", syn.Line)
	}
}
