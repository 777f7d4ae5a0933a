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

// Package codegen walks the AST internal/lang produces and drives
// internal/symtab and internal/asmgen to lower it to MERLIN assembly
// text. There is no package-level mutable state: every compilation owns
// its own *Compiler, so independent compilations (and tests) never
// interfere with one another.
package codegen

import (
	"github.com/a2lang/a2c/internal/asmgen"
	"github.com/a2lang/a2c/internal/diag"
	"github.com/a2lang/a2c/internal/lang"
	"github.com/a2lang/a2c/internal/symtab"
	"github.com/a2lang/a2c/internal/text"
)

// scope is one entry of the compiler's scope stack: either a subroutine
// body (subr non-nil) or a loop body (loop/done labels non-empty).
// Lookups and stop/repeat walk the chain toward the global root.
type scope struct {
	subr *symtab.Symbol
	loop string
	done string
	prev *scope
}

// Compiler is the explicit, passable-by-reference compilation context:
// a symbol table, an assembly builder, and a scope stack. Nothing here
// is a package-level global, so tests can run many compilations side by
// side.
type Compiler struct {
	Table   *symtab.Table
	Builder *asmgen.Builder

	scope *scope
}

// New returns a Compiler with its symbol table initialized (primitives,
// aliases, and the nine register symbols) and an empty assembly builder.
func New() *Compiler {
	c := &Compiler{Table: symtab.New(), Builder: asmgen.NewBuilder()}
	c.Table.Initialize()
	return c
}

// Generate runs a full compilation: it walks program's top-level block,
// then runs the builder's peephole pass. The returned Compiler holds the
// finished Table (for a -sym dump) and Builder (for a -asm dump or
// Emit).
func Generate(program *lang.Program) *Compiler {
	c := New()
	c.generateBlock(&program.Block)
	c.Builder.Optimize()
	return c
}

func (c *Compiler) enterSubroutine(sub *symtab.Symbol) {
	c.scope = &scope{subr: sub, prev: c.scope}
}

func (c *Compiler) enterLoop(loop, done string) {
	c.scope = &scope{loop: loop, done: done, prev: c.scope}
}

func (c *Compiler) leaveScope() {
	diag.Require(c.scope != nil, "cannot leave global scope")
	c.scope = c.scope.prev
}

// subroutineName returns the Symbol of the innermost enclosing
// subroutine, or nil at global scope.
func (c *Compiler) subroutineName() *symtab.Symbol {
	for s := c.scope; s != nil; s = s.prev {
		if s.subr != nil {
			return s.subr
		}
	}
	return nil
}

// currentLoop returns the innermost enclosing loop scope, or nil outside
// any loop.
func (c *Compiler) currentLoop() *scope {
	for s := c.scope; s != nil; s = s.prev {
		if s.loop != "" {
			return s
		}
	}
	return nil
}

// getsym resolves name in the current subroutine's scope, falling back
// to the global scope.
func (c *Compiler) getsym(name string) *symtab.Symbol {
	return c.Table.LookupScoped(c.subroutineName(), name)
}

// qualify prefixes name with the current subroutine's name, or leaves it
// bare at global scope.
func (c *Compiler) qualify(name string) string {
	sub := c.subroutineName()
	if sub == nil {
		return name
	}
	return text.QualifiedName(sub.Name, name)
}
