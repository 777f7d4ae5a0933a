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

// Register is a bit-encoded 6502 register or register pair: the low
// nibble names the low register, the high nibble names the high
// register, so a pair's code is (high<<4)|low.
type Register uint8

const (
	RegNone Register = 0x00
	RegA    Register = 0x01
	RegX    Register = 0x02
	RegY    Register = 0x04

	RegAX Register = (RegA << 4) | RegX
	RegAY Register = (RegA << 4) | RegY
	RegXA Register = (RegX << 4) | RegA
	RegXY Register = (RegX << 4) | RegY
	RegYA Register = (RegY << 4) | RegA
	RegYX Register = (RegY << 4) | RegX
)

var registerNames = map[Register]string{
	RegNone: "",
	RegA:    "A",
	RegX:    "X",
	RegY:    "Y",
	RegAX:   "AX",
	RegAY:   "AY",
	RegXA:   "XA",
	RegXY:   "XY",
	RegYA:   "YA",
	RegYX:   "YX",
}

var registersByName = func() map[string]Register {
	m := make(map[string]Register, len(registerNames))
	for reg, name := range registerNames {
		if name != "" {
			m[name] = reg
		}
	}
	return m
}()

// RegisterHigh returns the high register of a pair, or RegNone for a
// singleton.
func RegisterHigh(reg Register) Register {
	return Register(reg>>4) & 0x0F
}

// RegisterLow returns the low (or only) register of reg.
func RegisterLow(reg Register) Register {
	return reg & 0x0F
}

// RegisterSize returns 2 for a register pair, 1 for a singleton, 0 for
// RegNone.
func RegisterSize(reg Register) uint16 {
	if reg > RegY {
		return 2
	}
	if reg > RegNone {
		return 1
	}
	return 0
}

// RegisterName returns the canonical one- or two-letter register name.
func RegisterName(reg Register) string {
	return registerNames[reg]
}

// LookupRegister returns the register named by name, or (RegNone, false)
// if name does not name a register.
func LookupRegister(name string) (Register, bool) {
	reg, ok := registersByName[name]
	return reg, ok
}
