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
	"strconv"
)

// SyntaxError reports a parse failure pointed at the offending line, the
// way the original compiler's main() prints the source line and a caret
// under the failure column.
type SyntaxError struct {
	Line, Col int
	LineText  string
	Message   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s\n%s\n%*s^", e.Line, e.Col, e.Message, e.LineText, e.Col-1, "")
}

// cursor walks the source buffer, tracking line/column for diagnostics
// and skipping whitespace and `;`-to-end-of-line comments between
// tokens, mirroring grammar.c's Whitespace/Comment productions.
type cursor struct {
	src       string
	pos       int
	line, col int
}

func newCursor(src string) *cursor {
	return &cursor{src: src, line: 1, col: 1}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
func isLower(ch byte) bool { return ch >= 'a' && ch <= 'z' }
func isUpper(ch byte) bool { return ch >= 'A' && ch <= 'Z' }
func isIdentStart(ch byte) bool { return isLower(ch) || isUpper(ch) }
func isIdentCont(ch byte) bool  { return isIdentStart(ch) || isDigit(ch) }

func (c *cursor) peek() byte {
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

func (c *cursor) peekAt(offset int) byte {
	if c.pos+offset >= len(c.src) {
		return 0
	}
	return c.src[c.pos+offset]
}

func (c *cursor) advance() byte {
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return ch
}

// skipHSpace consumes horizontal whitespace only (grammar.c's HSpace),
// stopping at a newline. Nothing in the lexer or parser calls it.
func (c *cursor) skipHSpace() {
	for c.pos < len(c.src) && (c.peek() == ' ' || c.peek() == '\t') {
		c.advance()
	}
}

// skipWhitespace consumes any run of spaces, newlines and `;` comments
// (grammar.c's Whitespace production, used after every token).
func (c *cursor) skipWhitespace() {
	for c.pos < len(c.src) {
		switch c.peek() {
		case ' ', '\t', '\n', '\r':
			c.advance()
		case ';':
			for c.pos < len(c.src) && c.peek() != '\n' {
				c.advance()
			}
		default:
			return
		}
	}
}

func (c *cursor) lineText() string {
	start := c.pos
	for start > 0 && c.src[start-1] != '\n' {
		start--
	}
	end := c.pos
	for end < len(c.src) && c.src[end] != '\n' {
		end++
	}
	return c.src[start:end]
}

func (c *cursor) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: c.line, Col: c.col, LineText: c.lineText(), Message: fmt.Sprintf(format, args...)}
}

// consumeKeyword matches a fixed word token, requiring it not be a
// prefix of a longer identifier (grammar.c's consumeToken with
// isSpaceRequired=true), then skips trailing whitespace.
func (c *cursor) consumeKeyword(word string) bool {
	if c.pos+len(word) > len(c.src) {
		return false
	}
	if c.src[c.pos:c.pos+len(word)] != word {
		return false
	}
	if c.pos+len(word) < len(c.src) && isIdentCont(c.src[c.pos+len(word)]) {
		return false
	}
	for range word {
		c.advance()
	}
	c.skipWhitespace()
	return true
}

// consumeSymbol matches a fixed punctuation token with no word-boundary
// requirement (grammar.c's consumeToken with isSpaceRequired=false).
func (c *cursor) consumeSymbol(token string) bool {
	if c.pos+len(token) > len(c.src) {
		return false
	}
	if c.src[c.pos:c.pos+len(token)] != token {
		return false
	}
	for range token {
		c.advance()
	}
	c.skipWhitespace()
	return true
}

func (c *cursor) consumeByte(b byte) bool {
	if c.peek() != b {
		return false
	}
	c.advance()
	c.skipWhitespace()
	return true
}

// scanIdentifier matches grammar.c's Identifier production: a letter,
// followed by any run of letters and digits (no underscores).
func (c *cursor) scanIdentifier() (string, bool) {
	if !isIdentStart(c.peek()) {
		return "", false
	}
	start := c.pos
	c.advance()
	for isIdentCont(c.peek()) {
		c.advance()
	}
	name := c.src[start:c.pos]
	c.skipWhitespace()
	return name, true
}

// scanNumber matches $hex, %binary, or an optionally `-`-prefixed
// decimal literal (grammar.c's Number production).
func (c *cursor) scanNumber() (Numerical, bool) {
	switch c.peek() {
	case '$':
		start := c.pos
		c.advance()
		for isHexDigit(c.peek()) {
			c.advance()
		}
		text := c.src[start+1 : c.pos]
		c.skipWhitespace()
		v, _ := strconv.ParseUint(text, 16, 16)
		return Numerical{Kind: NumberHex, Value: uint16(v)}, true
	case '%':
		start := c.pos
		c.advance()
		for c.peek() == '0' || c.peek() == '1' {
			c.advance()
		}
		text := c.src[start+1 : c.pos]
		c.skipWhitespace()
		v, _ := strconv.ParseUint(text, 2, 16)
		return Numerical{Kind: NumberBinary, Value: uint16(v)}, true
	default:
		start := c.pos
		if c.peek() == '-' {
			c.advance()
		}
		if !isDigit(c.peek()) {
			c.pos = start
			return Numerical{}, false
		}
		for isDigit(c.peek()) {
			c.advance()
		}
		text := c.src[start:c.pos]
		c.skipWhitespace()
		v, _ := strconv.ParseInt(text, 10, 32)
		return Numerical{Kind: NumberDecimal, Value: uint16(int32(v))}, true
	}
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// scanChar matches a char literal: a backtick followed by one
// printable-ASCII character, with no closing backtick.
func (c *cursor) scanChar() (byte, bool) {
	if c.peek() != '`' {
		return 0, false
	}
	c.advance()
	if c.pos >= len(c.src) || c.peek() < 0x20 || c.peek() > 0x7E {
		return 0, false
	}
	ch := c.advance()
	c.skipWhitespace()
	return ch, true
}

// scanText matches a double-quoted string; backslash escapes are
// recognized only far enough to skip the escaped character (no runtime
// escape semantics, per the compiler's Non-goals).
func (c *cursor) scanText() (string, bool) {
	if c.peek() != '"' {
		return "", false
	}
	c.advance()
	var out []byte
	for c.pos < len(c.src) && c.peek() != '"' {
		if c.peek() == '\\' {
			out = append(out, c.advance())
			if c.pos < len(c.src) {
				out = append(out, c.advance())
			}
			continue
		}
		out = append(out, c.advance())
	}
	if c.peek() != '"' {
		return "", false
	}
	c.advance()
	c.skipWhitespace()
	return string(out), true
}
