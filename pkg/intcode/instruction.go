// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package intcode

import (
	"fmt"
	"strings"
)

// Opcode identifies the operation performed by an instruction.  This is held
// in the two least significant decimal digits of an instruction word.
type Opcode uint8

const (
	// Add writes a + b to its third parameter.
	Add Opcode = 1
	// Mul writes a * b to its third parameter.
	Mul Opcode = 2
	// Input pops the next value from the input queue into its parameter.
	Input Opcode = 3
	// Output appends its parameter to the output queue.
	Output Opcode = 4
	// JumpIfTrue jumps to b when a is non-zero.
	JumpIfTrue Opcode = 5
	// JumpIfFalse jumps to b when a is zero.
	JumpIfFalse Opcode = 6
	// LessThan writes 1 to its third parameter when a < b, and 0 otherwise.
	LessThan Opcode = 7
	// Equals writes 1 to its third parameter when a = b, and 0 otherwise.
	Equals Opcode = 8
	// AdjustBase adds a to the relative base register.
	AdjustBase Opcode = 9
	// Halt terminates the machine.
	Halt Opcode = 99
)

// Shape of an opcode: its mnemonic, how many parameters it takes and which
// parameter (if any) is a write target.
type shape struct {
	mnemonic string
	arity    uint
	// One-based index of the write target, or zero.
	target uint
}

// Indexed by opcode; unused entries have no mnemonic.
var shapes = [100]shape{
	Add:         {"add", 3, 3},
	Mul:         {"mul", 3, 3},
	Input:       {"in", 1, 1},
	Output:      {"out", 1, 0},
	JumpIfTrue:  {"jnz", 2, 0},
	JumpIfFalse: {"jz", 2, 0},
	LessThan:    {"lt", 3, 3},
	Equals:      {"eq", 3, 3},
	AdjustBase:  {"arb", 1, 0},
	Halt:        {"halt", 0, 0},
}

// IsValid determines whether or not this is a recognised opcode.
func (op Opcode) IsValid() bool {
	return op < 100 && shapes[op].mnemonic != ""
}

// Arity returns the number of parameters this opcode takes.
func (op Opcode) Arity() uint {
	if !op.IsValid() {
		return 0
	}
	//
	return shapes[op].arity
}

// Target returns the one-based index of the parameter written by this opcode,
// or zero if it writes no memory.
func (op Opcode) Target() uint {
	if !op.IsValid() {
		return 0
	}
	//
	return shapes[op].target
}

func (op Opcode) String() string {
	if op.IsValid() {
		return shapes[op].mnemonic
	}
	//
	return fmt.Sprintf("op%02d", uint8(op))
}

// Mode determines how the raw word of a parameter maps to an effective value
// or address.
type Mode uint8

const (
	// Position mode treats the raw word as an address.
	Position Mode = 0
	// Immediate mode treats the raw word as the value itself.  This is never
	// valid for a write target.
	Immediate Mode = 1
	// Relative mode adds the raw word to the relative base to form an address.
	Relative Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("mode%d", uint8(m))
	}
}

// Instruction is the structured form of a single instruction word: an opcode
// together with the addressing mode of each parameter it uses.
type Instruction struct {
	Opcode Opcode
	// Modes holds one entry per parameter, in parameter order.  Entries
	// beyond the opcode's arity are unused.
	Modes [3]Mode
}

// Arity returns the number of parameters of this instruction.
func (p Instruction) Arity() uint {
	return p.Opcode.Arity()
}

// Width returns the number of words occupied by this instruction, including
// the opcode word itself.
func (p Instruction) Width() int64 {
	return 1 + int64(p.Arity())
}

// Format this instruction using the raw parameter words which follow it.
func (p Instruction) Format(params []int64) string {
	var builder strings.Builder
	//
	builder.WriteString(p.Opcode.String())
	//
	for i, mode := range p.Modes[:p.Arity()] {
		if i == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(", ")
		}
		//
		switch mode {
		case Position:
			builder.WriteString(fmt.Sprintf("[%d]", params[i]))
		case Immediate:
			builder.WriteString(fmt.Sprintf("#%d", params[i]))
		case Relative:
			builder.WriteString(fmt.Sprintf("@[%d]", params[i]))
		}
	}
	//
	return builder.String()
}

// Decode a single instruction word.  The two least significant decimal digits
// give the opcode, and each subsequent digit gives the mode of the next
// parameter.  Digits beyond the opcode's arity are ignored.  Decoding fails if
// the opcode is not recognised, if a mode digit is not recognised, or if a
// write target uses immediate mode.  The address is only used for reporting.
func Decode(address int64, word int64) (Instruction, error) {
	if word < 0 {
		return Instruction{}, &Fault{Kind: MalformedOpcode, Address: address, Word: word}
	}
	//
	var (
		op    = Opcode(word % 100)
		digit = word / 100
	)
	//
	if !op.IsValid() {
		return Instruction{}, &Fault{Kind: MalformedOpcode, Address: address, Word: word}
	}
	//
	var modes [3]Mode
	//
	for i := uint(0); i < op.Arity(); i++ {
		var mode = digit % 10
		//
		digit /= 10
		//
		switch {
		case mode > int64(Relative):
			return Instruction{}, &Fault{Kind: MalformedMode, Address: address, Word: word, Param: uint(i) + 1}
		case Mode(mode) == Immediate && op.Target() == uint(i)+1:
			return Instruction{}, &Fault{Kind: MalformedMode, Address: address, Word: word, Param: uint(i) + 1}
		}
		//
		modes[i] = Mode(mode)
	}
	//
	return Instruction{op, modes}, nil
}
