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

// Parse reads all of src and returns the top-level Program, or a
// *SyntaxError pointed at the first position the grammar could not
// match.
func Parse(src string) (*Program, error) {
	c := newCursor(src)
	c.skipWhitespace()
	block, err := parseBlock(c, true)
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.src) {
		return nil, c.errorf("unexpected input")
	}
	return &Program{Block: *block}, nil
}

// parseBlock parses statements until the block's terminator: `}` for a
// nested block, end-of-input for the top-level program.
func parseBlock(c *cursor, topLevel bool) (*Block, error) {
	block := &Block{}
	for {
		if !topLevel && c.peek() == '}' {
			return block, nil
		}
		if topLevel && c.pos >= len(c.src) {
			return block, nil
		}
		stmt, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, *stmt)
	}
}

func parseStatement(c *cursor) (*Statement, error) {
	if decl, ok := tryDeclaration(c, "use"); ok {
		return &Statement{Kind: StmtDeclaration, Declaration: decl}, nil
	}
	if decl, ok := tryDeclaration(c, "var"); ok {
		return &Statement{Kind: StmtVariable, Variable: decl}, nil
	}
	if def, ok, err := tryDefinition(c); err != nil {
		return nil, err
	} else if ok {
		return &Statement{Kind: StmtDefinition, Definition: def}, nil
	}
	if assign, ok, err := tryAssignment(c); err != nil {
		return nil, err
	} else if ok {
		return &Statement{Kind: StmtAssignment, Assignment: assign}, nil
	}
	if call, ok := tryCall(c); ok {
		return &Statement{Kind: StmtCall, Call: call}, nil
	}
	if cond, ok, err := tryConditional(c, "if"); err != nil {
		return nil, err
	} else if ok {
		return &Statement{Kind: StmtConditional, Conditional: cond}, nil
	}
	if loop, ok, err := tryConditional(c, "while"); err != nil {
		return nil, err
	} else if ok {
		return &Statement{Kind: StmtLoop, Loop: loop}, nil
	}
	if c.consumeSymbol("->") {
		return &Statement{Kind: StmtReturn}, nil
	}
	if c.consumeKeyword("stop") {
		return &Statement{Kind: StmtStop}, nil
	}
	if c.consumeKeyword("repeat") {
		return &Statement{Kind: StmtRepeat}, nil
	}
	if text, ok := tryAssembly(c); ok {
		return &Statement{Kind: StmtAssembly, Assembly: text}, nil
	}
	return nil, c.errorf("expected a statement")
}

// tryDeclaration matches `use [p, ...]` or `var [p, ...]`.
func tryDeclaration(c *cursor, keyword string) (*Declaration, bool) {
	save := *c
	if !c.consumeKeyword(keyword) {
		return nil, false
	}
	if !c.consumeSymbol("[") {
		*c = save
		return nil, false
	}
	params, ok := parseParameterList(c)
	if !ok || !c.consumeSymbol("]") {
		*c = save
		return nil, false
	}
	return &Declaration{Parameters: params}, true
}

func parseParameterList(c *cursor) ([]Parameter, bool) {
	var params []Parameter
	p, ok := parseParameter(c)
	if !ok {
		return nil, true // empty list is legal
	}
	params = append(params, p)
	for consumeSeparator(c) {
		p, ok := parseParameter(c)
		if !ok {
			break
		}
		params = append(params, p)
	}
	return params, true
}

func consumeSeparator(c *cursor) bool {
	if c.consumeByte(',') {
		return true
	}
	return false
}

// parseParameter matches `name:Type[@location]`.
func parseParameter(c *cursor) (Parameter, bool) {
	name, ok := c.scanIdentifier()
	if !ok {
		return Parameter{}, false
	}
	if !c.consumeByte(':') {
		return Parameter{}, false
	}
	typ, ok := parseTypeAnnotation(c)
	if !ok {
		return Parameter{}, false
	}
	loc := Location{}
	if c.consumeByte('@') {
		loc, ok = parseLocation(c)
		if !ok {
			return Parameter{}, false
		}
	}
	return Parameter{Name: name, Type: typ, Location: loc}, true
}

func parseLocation(c *cursor) (Location, bool) {
	if num, ok := c.scanNumber(); ok {
		return Location{Kind: LocationFixed, Address: num.Value}, true
	}
	if reg, ok := c.scanIdentifier(); ok {
		return Location{Kind: LocationRegister, Reg: reg}, true
	}
	return Location{}, false
}

// caretFollowsIdentifier peeks past one identifier token to see whether
// '^' immediately follows, without consuming any input.
func caretFollowsIdentifier(c *cursor) bool {
	save := *c
	defer func() { *c = save }()
	_, ok := c.scanIdentifier()
	return ok && c.peek() == '^'
}

// parseTypeAnnotation matches a Parameter's `:Type` position, which
// additionally allows an inline `sub <-[...] ->[...]` signature (used by
// `use` declarations of external, fixed-address subroutines), falling
// back to the ordinary name/pointer/array forms.
func parseTypeAnnotation(c *cursor) (Type, bool) {
	save := *c
	if c.consumeKeyword("sub") {
		typ := Type{Kind: TypeSubroutine}
		if c.consumeSymbol("<-") {
			if !c.consumeSymbol("[") {
				*c = save
				return Type{}, false
			}
			params, _ := parseParameterList(c)
			if !c.consumeSymbol("]") {
				*c = save
				return Type{}, false
			}
			typ.SubInputs = params
		}
		if c.consumeSymbol("->") {
			if !c.consumeSymbol("[") {
				*c = save
				return Type{}, false
			}
			params, _ := parseParameterList(c)
			if !c.consumeSymbol("]") {
				*c = save
				return Type{}, false
			}
			typ.SubOutputs = params
		}
		return typ, true
	}
	return parseType(c)
}

// parseType matches a bare type name, `Name^` (pointer), or `Name^N`
// (array of N elements).
func parseType(c *cursor) (Type, bool) {
	name, ok := c.scanIdentifier()
	if !ok {
		return Type{}, false
	}
	if c.peek() == '^' {
		c.advance()
		if num, ok := c.scanNumber(); ok {
			return Type{Kind: TypeArray, Name: name, Count: num.Value}, true
		}
		c.skipWhitespace()
		return Type{Kind: TypePointer, Name: name}, true
	}
	return Type{Kind: TypeName, Name: name}, true
}

// tryDefinition matches `let name = value`.
func tryDefinition(c *cursor) (*Definition, bool, error) {
	save := *c
	if !c.consumeKeyword("let") {
		return nil, false, nil
	}
	name, ok := c.scanIdentifier()
	if !ok {
		*c = save
		return nil, false, nil
	}
	if !c.consumeByte('=') {
		*c = save
		return nil, false, nil
	}
	value, err := parseValue(c)
	if err != nil {
		return nil, false, err
	}
	return &Definition{Name: name, Value: *value}, true, nil
}

func parseValue(c *cursor) (*Value, error) {
	if num, ok := c.scanNumber(); ok {
		return &Value{Kind: ValueNumber, Number: num}, nil
	}
	if ch, ok := c.scanChar(); ok {
		return &Value{Kind: ValueChar, Char: ch}, nil
	}
	if text, ok := c.scanText(); ok {
		return &Value{Kind: ValueText, Text: text}, nil
	}
	if sub, ok, err := trySubroutine(c); err != nil {
		return nil, err
	} else if ok {
		return &Value{Kind: ValueSubroutine, Subroutine: sub}, nil
	}
	if group, ok := tryGroup(c); ok {
		return &Value{Kind: ValueGroup, Group: group}, nil
	}
	// A bare type name immediately followed by '^' (Name^ or Name^N) is a
	// pointer-to/array-of type value, e.g. `let text10 = char^10`. This is
	// the only place '^' can follow an identifier, so a one-token lookahead
	// is enough to disambiguate it from an IdentPhrase reference.
	if caretFollowsIdentifier(c) {
		if typ, ok := parseType(c); ok {
			return &Value{Kind: ValueType, Type: typ}, nil
		}
	}
	if call, ok := tryCall(c); ok {
		return &Value{Kind: ValueCall, Call: call}, nil
	}
	if ident, ok := tryIdentPhrase(c); ok {
		return &Value{Kind: ValueIdentPhrase, Ident: ident}, nil
	}
	if typ, ok := parseType(c); ok {
		return &Value{Kind: ValueType, Type: typ}, nil
	}
	return nil, c.errorf("expected a value")
}

// trySubroutine matches `sub [<-Parameters] [->Parameters] { Block }`.
func trySubroutine(c *cursor) (*Subroutine, bool, error) {
	save := *c
	if !c.consumeKeyword("sub") {
		return nil, false, nil
	}
	sub := &Subroutine{}
	if c.consumeSymbol("<-") {
		if !c.consumeSymbol("[") {
			*c = save
			return nil, false, nil
		}
		params, _ := parseParameterList(c)
		if !c.consumeSymbol("]") {
			*c = save
			return nil, false, nil
		}
		sub.Inputs = params
	}
	if c.consumeSymbol("->") {
		if !c.consumeSymbol("[") {
			*c = save
			return nil, false, nil
		}
		params, _ := parseParameterList(c)
		if !c.consumeSymbol("]") {
			*c = save
			return nil, false, nil
		}
		sub.Outputs = params
	}
	if !c.consumeByte('{') {
		*c = save
		return nil, false, nil
	}
	body, err := parseBlock(c, false)
	if err != nil {
		return nil, false, err
	}
	if !c.consumeByte('}') {
		return nil, false, c.errorf("expected '}' to close sub")
	}
	sub.Body = *body
	return sub, true, nil
}

// tryGroup matches `group { p, ... }`.
func tryGroup(c *cursor) (*GroupDef, bool) {
	save := *c
	if !c.consumeKeyword("group") {
		return nil, false
	}
	if !c.consumeByte('{') {
		*c = save
		return nil, false
	}
	params, _ := parseParameterList(c)
	if !c.consumeByte('}') {
		*c = save
		return nil, false
	}
	return &GroupDef{Members: params}, true
}

// tryIdentPhrase matches `name[_subscript][.field]`.
func tryIdentPhrase(c *cursor) (*IdentPhrase, bool) {
	save := *c
	name, ok := c.scanIdentifier()
	if !ok {
		*c = save
		return nil, false
	}
	phrase := &IdentPhrase{Name: name}
	if c.peek() == '_' {
		c.advance()
		c.skipWhitespace()
		val, err := parseValue(c)
		if err != nil {
			*c = save
			return nil, false
		}
		phrase.Subscript = val
	}
	if c.peek() == '.' {
		c.advance()
		field, ok := c.scanIdentifier()
		if !ok {
			*c = save
			return nil, false
		}
		phrase.Field = field
	}
	return phrase, true
}

// tryCall matches `name(arg, ...)`.
func tryCall(c *cursor) (*Call, bool) {
	save := *c
	name, ok := c.scanIdentifier()
	if !ok {
		return nil, false
	}
	if !c.consumeByte('(') {
		*c = save
		return nil, false
	}
	call := &Call{Name: name}
	if c.consumeByte(')') {
		return call, true
	}
	for {
		val, err := parseValue(c)
		if err != nil {
			*c = save
			return nil, false
		}
		call.Args = append(call.Args, Argument{Value: *val})
		if c.consumeByte(',') {
			continue
		}
		break
	}
	if !c.consumeByte(')') {
		*c = save
		return nil, false
	}
	return call, true
}

var assignmentOperators = map[string]AssignmentKind{
	":=": AssignCopy,
	"+=": AssignPlus,
	"-=": AssignMinus,
	"&=": AssignAnd,
	"|=": AssignOr,
	"^=": AssignXor,
	"!=": AssignNot,
}

// tryAssignment matches `lhs <op>= rhs` for each of the seven compound
// assignment operators.
func tryAssignment(c *cursor) (*Assignment, bool, error) {
	save := *c
	lhs, ok := tryIdentPhrase(c)
	if !ok {
		return nil, false, nil
	}
	for token, kind := range assignmentOperators {
		if c.consumeSymbol(token) {
			rhs, err := parseValue(c)
			if err != nil {
				return nil, false, err
			}
			return &Assignment{Kind: kind, LHS: *lhs, RHS: *rhs}, true, nil
		}
	}
	*c = save
	return nil, false, nil
}

var compareOperators = []struct {
	token string
	kind  CompareKind
}{
	{"<>", CompareNE},
	{"==", CompareEQ},
	{"<=", CompareLE},
	{">=", CompareGE},
	{"<", CompareLT},
	{">", CompareGT},
}

// tryConditional matches `if L op R { Block }` or `while L op R { Block }`.
func tryConditional(c *cursor, keyword string) (*Conditional, bool, error) {
	save := *c
	if !c.consumeKeyword(keyword) {
		return nil, false, nil
	}
	left, err := parseValue(c)
	if err != nil {
		*c = save
		return nil, false, nil
	}
	var kind CompareKind
	matched := false
	for _, op := range compareOperators {
		if c.consumeSymbol(op.token) {
			kind = op.kind
			matched = true
			break
		}
	}
	if !matched {
		*c = save
		return nil, false, nil
	}
	right, err := parseValue(c)
	if err != nil {
		return nil, false, err
	}
	if !c.consumeByte('{') {
		*c = save
		return nil, false, nil
	}
	body, err := parseBlock(c, false)
	if err != nil {
		return nil, false, err
	}
	if !c.consumeByte('}') {
		return nil, false, c.errorf("expected '}' to close %s", keyword)
	}
	return &Conditional{Left: *left, Compare: kind, Right: *right, Body: *body}, true, nil
}

// tryAssembly matches `asm { ... }`: the body scans to the first
// `}` (there is no escape for it), matching grammar.c's Assembly production — nested
// braces are not supported.
func tryAssembly(c *cursor) (string, bool) {
	save := *c
	if !c.consumeKeyword("asm") {
		return "", false
	}
	// The byte after '{' starts the verbatim text: no whitespace skip, so
	// the block's own indentation reaches the emitter untouched.
	if c.peek() != '{' {
		*c = save
		return "", false
	}
	c.advance()
	start := c.pos
	for c.pos < len(c.src) && c.peek() != '}' {
		c.advance()
	}
	if c.pos >= len(c.src) {
		*c = save
		return "", false
	}
	text := c.src[start:c.pos]
	c.advance()
	c.skipWhitespace()
	return text, true
}
