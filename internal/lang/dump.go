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
	"fmt"
	"io"
	"strings"
)

// DumpAST writes an indented, line-per-node rendering of the program to
// w, for the compiler's -ast debug flag.
func DumpAST(w io.Writer, p *Program) {
	dumpBlock(w, &p.Block, 0)
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpBlock(w io.Writer, b *Block, depth int) {
	for i := range b.Statements {
		dumpStatement(w, &b.Statements[i], depth)
	}
}

func dumpStatement(w io.Writer, s *Statement, depth int) {
	indent(w, depth)
	switch s.Kind {
	case StmtDeclaration:
		fmt.Fprintln(w, "use")
		dumpParameters(w, s.Declaration.Parameters, depth+1)
	case StmtVariable:
		fmt.Fprintln(w, "var")
		dumpParameters(w, s.Variable.Parameters, depth+1)
	case StmtDefinition:
		fmt.Fprintf(w, "let %s =\n", s.Definition.Name)
		dumpValue(w, &s.Definition.Value, depth+1)
	case StmtCall:
		fmt.Fprintf(w, "call %s/%d\n", s.Call.Name, len(s.Call.Args))
		for i := range s.Call.Args {
			dumpValue(w, &s.Call.Args[i].Value, depth+1)
		}
	case StmtAssignment:
		fmt.Fprintf(w, "assign %s %s\n", assignName(s.Assignment.Kind), phraseString(&s.Assignment.LHS))
		dumpValue(w, &s.Assignment.RHS, depth+1)
	case StmtConditional:
		fmt.Fprintf(w, "if %s\n", compareName(s.Conditional.Compare))
		dumpValue(w, &s.Conditional.Left, depth+1)
		dumpValue(w, &s.Conditional.Right, depth+1)
		dumpBlock(w, &s.Conditional.Body, depth+1)
	case StmtLoop:
		fmt.Fprintf(w, "while %s\n", compareName(s.Loop.Compare))
		dumpValue(w, &s.Loop.Left, depth+1)
		dumpValue(w, &s.Loop.Right, depth+1)
		dumpBlock(w, &s.Loop.Body, depth+1)
	case StmtReturn:
		fmt.Fprintln(w, "return")
	case StmtStop:
		fmt.Fprintln(w, "stop")
	case StmtRepeat:
		fmt.Fprintln(w, "repeat")
	case StmtAssembly:
		fmt.Fprintf(w, "asm %q\n", s.Assembly)
	}
}

func dumpParameters(w io.Writer, params []Parameter, depth int) {
	for i := range params {
		p := &params[i]
		indent(w, depth)
		fmt.Fprintf(w, "%s: %s%s\n", p.Name, typeString(&p.Type), locationString(&p.Location))
		if p.Type.Kind == TypeSubroutine {
			dumpParameters(w, p.Type.SubInputs, depth+1)
			dumpParameters(w, p.Type.SubOutputs, depth+1)
		}
	}
}

func dumpValue(w io.Writer, v *Value, depth int) {
	indent(w, depth)
	switch v.Kind {
	case ValueNumber:
		fmt.Fprintf(w, "number %d\n", v.Number.Value)
	case ValueChar:
		fmt.Fprintf(w, "char %q\n", v.Char)
	case ValueText:
		fmt.Fprintf(w, "text %q\n", v.Text)
	case ValueSubroutine:
		fmt.Fprintf(w, "sub <-%d ->%d\n", len(v.Subroutine.Inputs), len(v.Subroutine.Outputs))
		dumpParameters(w, v.Subroutine.Inputs, depth+1)
		dumpParameters(w, v.Subroutine.Outputs, depth+1)
		dumpBlock(w, &v.Subroutine.Body, depth+1)
	case ValueGroup:
		fmt.Fprintln(w, "group")
		dumpParameters(w, v.Group.Members, depth+1)
	case ValueType:
		fmt.Fprintf(w, "type %s\n", typeString(&v.Type))
	case ValueIdentPhrase:
		fmt.Fprintf(w, "ident %s\n", phraseString(v.Ident))
		if v.Ident.Subscript != nil {
			dumpValue(w, v.Ident.Subscript, depth+1)
		}
	case ValueCall:
		fmt.Fprintf(w, "call %s/%d\n", v.Call.Name, len(v.Call.Args))
		for i := range v.Call.Args {
			dumpValue(w, &v.Call.Args[i].Value, depth+1)
		}
	}
}

func typeString(t *Type) string {
	switch t.Kind {
	case TypePointer:
		return t.Name + "^"
	case TypeArray:
		return fmt.Sprintf("%s^%d", t.Name, t.Count)
	case TypeSubroutine:
		return "sub"
	default:
		return t.Name
	}
}

func locationString(loc *Location) string {
	switch loc.Kind {
	case LocationFixed:
		return fmt.Sprintf(" @$%04X", loc.Address)
	case LocationRegister:
		return " @" + loc.Reg
	default:
		return ""
	}
}

func phraseString(id *IdentPhrase) string {
	out := id.Name
	if id.Subscript != nil {
		out += "_..."
	}
	if id.Field != "" {
		out += "." + id.Field
	}
	return out
}

func assignName(kind AssignmentKind) string {
	switch kind {
	case AssignPlus:
		return "+="
	case AssignMinus:
		return "-="
	case AssignAnd:
		return "&="
	case AssignOr:
		return "|="
	case AssignXor:
		return "^="
	case AssignNot:
		return "!="
	default:
		return ":="
	}
}

func compareName(kind CompareKind) string {
	switch kind {
	case CompareNE:
		return "<>"
	case CompareLT:
		return "<"
	case CompareLE:
		return "<="
	case CompareGE:
		return ">="
	case CompareGT:
		return ">"
	default:
		return "=="
	}
}
