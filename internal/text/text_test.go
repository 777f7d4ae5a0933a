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

package text

import "testing"

func TestHexFormats(t *testing.T) {
	if got := HexByte(0x0A); got != "$0A" {
		t.Errorf("HexByte = %q", got)
	}
	if got := HexWord(0x0A); got != "$000A" {
		t.Errorf("HexWord = %q", got)
	}
}

func TestCharOperandSetsHighBit(t *testing.T) {
	if got := CharOperand('A'); got != "$C1" {
		t.Errorf("CharOperand('A') = %q, want $C1", got)
	}
	if got := HighASCII(' '); got != 0xA0 {
		t.Errorf("HighASCII(' ') = $%02X, want $A0", got)
	}
}

func TestOperandFormatters(t *testing.T) {
	if got := Lo("main"); got != "<main" {
		t.Errorf("Lo = %q", got)
	}
	if got := Hi("main"); got != ">main" {
		t.Errorf("Hi = %q", got)
	}
	if got := PlusOffset("buf", 3); got != "buf+3" {
		t.Errorf("PlusOffset = %q", got)
	}
	if got := IndirectY("ptr"); got != "(ptr),Y" {
		t.Errorf("IndirectY = %q", got)
	}
	if got := IndexedX("buf"); got != "buf,X" {
		t.Errorf("IndexedX = %q", got)
	}
}

func TestQualifiedName(t *testing.T) {
	if got := QualifiedName("Sub", "local"); got != "Sub.local" {
		t.Errorf("QualifiedName = %q", got)
	}
	if got := QualifiedName("", "global"); got != "global" {
		t.Errorf("QualifiedName bare = %q", got)
	}
}
