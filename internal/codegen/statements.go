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

package codegen

import (
	"github.com/a2lang/a2c/internal/diag"
	"github.com/a2lang/a2c/internal/lang"
	operand "github.com/a2lang/a2c/internal/operand"
	"github.com/a2lang/a2c/internal/symtab"
	"github.com/a2lang/a2c/internal/text"
)

func (c *Compiler) generateBlock(block *lang.Block) {
	for i := range block.Statements {
		c.generateStatement(&block.Statements[i])
	}
}

func (c *Compiler) generateStatement(stmt *lang.Statement) {
	switch stmt.Kind {
	case lang.StmtDeclaration:
		c.generateUse(stmt.Declaration)
	case lang.StmtVariable:
		c.generateVariables(stmt.Variable)
	case lang.StmtDefinition:
		c.generateDefinition(stmt.Definition)
	case lang.StmtCall:
		c.generateCall(stmt.Call)
	case lang.StmtAssignment:
		c.generateAssignment(stmt.Assignment)
	case lang.StmtConditional:
		c.generateConditional(stmt.Conditional, false)
	case lang.StmtLoop:
		c.generateConditional(stmt.Loop, true)
	case lang.StmtReturn:
		c.Builder.RTS("")
	case lang.StmtStop:
		c.generateStop()
	case lang.StmtRepeat:
		c.generateRepeat()
	case lang.StmtAssembly:
		c.Builder.ASM(stmt.Assembly)
	default:
		diag.Fatalf("generateStatement: unknown statement kind: %d", stmt.Kind)
	}
}

// generateUse lowers a `use [...]` statement: each entry binds an
// externally supplied name — a ROM routine's full signature, or a
// constant aliasing a fixed address or register.
func (c *Compiler) generateUse(decl *lang.Declaration) {
	for i := range decl.Parameters {
		c.generateUseParameter(&decl.Parameters[i])
	}
}

func (c *Compiler) generateUseParameter(p *lang.Parameter) {
	loc := location(p.Location)
	if loc.Kind == symtab.LocFixed {
		c.Builder.EQU(c.qualify(p.Name), loc.Text)
	}

	switch p.Type.Kind {
	case lang.TypeSubroutine:
		diag.Require(c.subroutineName() == nil, "cannot nest subroutines: %s", p.Name)
		c.declareExternalSubroutine(p)
	case lang.TypePointer, lang.TypeArray, lang.TypeName:
		c.Table.AddConstant(c.subroutineName(), p.Name, typeinfo(p.Type), loc)
	default:
		diag.Fatalf("unhandled declaration type for %s: %d", p.Name, p.Type.Kind)
	}
}

// generateDefinition lowers `let name = value`, dispatching on the value's
// shape: literal constants, text data, a subroutine body, a group record
// type, or a type alias.
func (c *Compiler) generateDefinition(def *lang.Definition) {
	switch def.Value.Kind {
	case lang.ValueNumber:
		c.generateLiteralNumber(def.Name, def.Value.Number.Value)
	case lang.ValueChar:
		c.generateLiteralChar(def.Name, def.Value.Char)
	case lang.ValueText:
		c.defineText(def.Name, def.Value.Text)
	case lang.ValueSubroutine:
		c.defineSubroutine(def.Name, def.Value.Subroutine)
	case lang.ValueGroup:
		c.defineGroup(def.Name, def.Value.Group)
	case lang.ValueType:
		c.defineType(def.Name, def.Value.Type)
	default:
		diag.Fatalf("let %s: unsupported value kind: %d", def.Name, def.Value.Kind)
	}
}

// generateCall lowers `sub(arg, ...)`. Memory-backed parameters are set
// first; register-bound parameters load last so the argument copies
// cannot clobber an already-loaded register.
func (c *Compiler) generateCall(call *lang.Call) {
	subsym := c.Table.LookupSubroutine(call.Name, len(call.Args))

	for i := range call.Args {
		param := c.Table.GetParameter(subsym, "", i)
		if c.Table.GetRegister(param) == symtab.RegNone {
			c.setArgument(c.Table.GetName(param), &call.Args[i].Value)
		}
	}
	for i := range call.Args {
		param := c.Table.GetParameter(subsym, "", i)
		if c.Table.GetRegister(param) != symtab.RegNone {
			c.setArgument(c.Table.GetName(param), &call.Args[i].Value)
		}
	}

	c.Builder.JSR(call.Name)
}

// setArgument copies one actual argument into the (already fully
// qualified) parameter name, reusing the assignment path.
func (c *Compiler) setArgument(param string, arg *lang.Value) {
	phrase := lang.IdentPhrase{Name: param}
	c.generateSet(&phrase, arg)
}

// generateAssignment dispatches `lhs <op>= rhs` to the copy or
// arithmetic path.
func (c *Compiler) generateAssignment(assign *lang.Assignment) {
	if assign.Kind == lang.AssignCopy {
		c.generateSet(&assign.LHS, &assign.RHS)
		return
	}
	c.generateArithmetic(&assign.LHS, &assign.RHS, assign.Kind)
}

// isPhrasePointer reports whether id is a bare (unsubscripted,
// fieldless) reference to a pointer symbol.
func (c *Compiler) isPhrasePointer(id *lang.IdentPhrase) bool {
	if id == nil || id.Field != "" || id.Subscript != nil {
		return false
	}
	return c.Table.IsPointer(c.getsym(id.Name))
}

// generateSet lowers `lhs := rhs`. A pointer destination re-points
// (ADDR) rather than copies, unless the source is itself a pointer, in
// which case the two-byte address value is copied — or elided entirely
// when both sides already resolve to the same address.
func (c *Compiler) generateSet(lhs *lang.IdentPhrase, rhs *lang.Value) {
	isSrcPointer := rhs.Kind == lang.ValueIdentPhrase && c.isPhrasePointer(rhs.Ident)

	if c.isPhrasePointer(lhs) {
		dstSym := c.getsym(lhs.Name)
		if !isSrcPointer {
			c.generatePoint(c.Table.GetName(dstSym), rhs)
			return
		}
		srcSym := c.getsym(rhs.Ident.Name)
		if dstSym == srcSym ||
			(c.Table.GetAddress(dstSym) != "" && c.Table.GetAddress(dstSym) == c.Table.GetAddress(srcSym)) {
			diag.Warnf("optimized out assigning pointer to itself: %s := %s",
				c.Table.GetName(dstSym), c.Table.GetName(srcSym))
			return
		}
	}

	dst := c.reduce(lhs)
	var src *operand.Operand

	switch rhs.Kind {
	case lang.ValueIdentPhrase:
		src = c.reduce(rhs.Ident)
	case lang.ValueChar:
		src = operand.ImmediateByte(text.CharOperand(rhs.Char))
	case lang.ValueNumber:
		src = operand.ImmediateNumber(rhs.Number.Value)
	case lang.ValueCall:
		src = c.reduceCallOutput(lhs, rhs.Call)
	case lang.ValueText:
		diag.Fatalf("cannot assign text to %s; only pointers can reference text", lhs.Name)
	default:
		diag.Fatalf("generateSet: unsupported value kind: %d", rhs.Kind)
	}

	c.Builder.COPYOp(dst, src)
}

// generateArithmetic lowers the compound assignments `+=`, `-=`, `&=`,
// `|=`, `^=` and `!=`.
func (c *Compiler) generateArithmetic(lhs *lang.IdentPhrase, rhs *lang.Value, kind lang.AssignmentKind) {
	dst := c.reduce(lhs)
	var src *operand.Operand

	switch rhs.Kind {
	case lang.ValueIdentPhrase:
		src = c.reduce(rhs.Ident)
	case lang.ValueChar:
		src = operand.ImmediateByte(text.CharOperand(rhs.Char))
	case lang.ValueNumber:
		src = operand.ImmediateNumber(rhs.Number.Value)
	case lang.ValueCall:
		src = c.reduceCallOutput(lhs, rhs.Call)
	default:
		diag.Fatalf("generateArithmetic: unsupported value kind: %d", rhs.Kind)
	}

	switch kind {
	case lang.AssignPlus:
		c.Builder.PLUSOp(dst, src)
	case lang.AssignMinus:
		c.Builder.LESSOp(dst, src)
	case lang.AssignAnd:
		c.Builder.BITANDOp(dst, src)
	case lang.AssignOr:
		c.Builder.OROp(dst, src)
	case lang.AssignXor:
		c.Builder.XOROp(dst, src)
	case lang.AssignNot:
		c.Builder.NOTOp(dst, src)
	default:
		diag.Fatalf("generateArithmetic: unexpected assignment kind: %d", kind)
	}
}

// reduceCallOutput emits the call, then reduces the callee's first
// output symbol into the operand the surrounding assignment consumes.
func (c *Compiler) reduceCallOutput(lhs *lang.IdentPhrase, call *lang.Call) *operand.Operand {
	c.generateCall(call)

	if lhs.Field == "" && lhs.Subscript == nil {
		sym := c.getsym(lhs.Name)
		diag.Require(!c.Table.IsGroup(sym), "%s: multiple outputs are not supported", lhs.Name)
	}

	subsym := c.Table.LookupSubroutine(call.Name, 0)
	output := c.Table.GetOutput(subsym, "", 0)
	phrase := lang.IdentPhrase{Name: c.Table.GetName(output)}
	return c.reduce(&phrase)
}

// generatePoint lowers `ptr := value` for a non-pointer value: the
// pointer receives the value's address. Text materializes as an
// anonymous zero-terminated data literal first.
func (c *Compiler) generatePoint(pointer string, rhs *lang.Value) {
	var src *operand.Operand

	switch rhs.Kind {
	case lang.ValueText:
		src = operand.AbsoluteOp(c.defineText("", rhs.Text), 2)
	case lang.ValueCall:
		c.generateCall(rhs.Call)
		subsym := c.Table.LookupSubroutine(rhs.Call.Name, 0)
		output := c.Table.GetOutput(subsym, "", 0)
		diag.Require(c.Table.GetRegister(output) == symtab.RegNone,
			"cannot take address of register: %s", c.Table.GetName(output))
		src = operand.AbsoluteOp(c.Table.GetName(output), 2)
	case lang.ValueIdentPhrase:
		src = c.reduce(rhs.Ident)
	case lang.ValueChar:
		diag.Fatalf("cannot take address of literal character: %c", rhs.Char)
	case lang.ValueNumber:
		diag.Fatalf("cannot take address of literal number: %d", rhs.Number.Value)
	default:
		diag.Fatalf("generatePoint: unexpected value kind: %d", rhs.Kind)
	}

	c.Builder.ADDROp(pointer, src)
}

// generateConditional lowers `if L op R { ... }` and `while L op R
// { ... }`. A loop reuses the builder's still-unattached label as its
// entry point when one exists, avoiding back-to-back labels at the top.
func (c *Compiler) generateConditional(cond *lang.Conditional, isLoop bool) {
	lblLoop := c.Builder.UnusedLabel()
	if lblLoop == "" {
		lblLoop = c.Table.MakeLocalLabel(c.subroutineName())
		c.Builder.Label(lblLoop)
	}

	lblThen := c.Table.MakeLocalLabel(c.subroutineName())
	lblDone := c.Table.MakeLocalLabel(c.subroutineName())

	if isLoop {
		c.enterLoop(lblLoop, lblDone)
	}

	left := c.reduceSimpleValue(&cond.Left)
	right := c.reduceSimpleValue(&cond.Right)

	switch cond.Compare {
	case lang.CompareEQ:
		c.Builder.IFEQOp(left, right, lblThen, lblDone)
	case lang.CompareNE:
		c.Builder.IFNEOp(left, right, lblThen, lblDone)
	case lang.CompareLT:
		c.Builder.IFLTOp(left, right, lblThen, lblDone)
	case lang.CompareLE:
		c.Builder.IFLEOp(left, right, lblThen, lblDone)
	case lang.CompareGE:
		c.Builder.IFGEOp(left, right, lblThen, lblDone)
	case lang.CompareGT:
		c.Builder.IFGTOp(left, right, lblThen, lblDone)
	default:
		diag.Fatalf("generateConditional: unknown comparison: %d", cond.Compare)
	}

	c.Builder.Label(lblThen)
	c.generateBlock(&cond.Body)

	if isLoop {
		c.Builder.JMP(lblLoop)
	}
	c.Builder.Label(lblDone)

	if isLoop {
		c.leaveScope()
	}
}

func (c *Compiler) generateStop() {
	loop := c.currentLoop()
	diag.Require(loop != nil, "cannot call stop outside of a loop")
	c.Builder.REM("STOP")
	c.Builder.JMP(loop.done)
}

func (c *Compiler) generateRepeat() {
	loop := c.currentLoop()
	diag.Require(loop != nil, "cannot call repeat outside of a loop")
	c.Builder.REM("REPEAT")
	c.Builder.JMP(loop.loop)
}
