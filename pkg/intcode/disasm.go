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
)

// Line is a single entry of a disassembly listing.  This covers either one
// instruction or one data word which could not be decoded.
type Line struct {
	Address int64
	// Words covered by this line, starting with the opcode word.
	Words []int64
	// Instruction decoded, valid only when Data is false.
	Instruction Instruction
	// Indicates the word could not be decoded as an instruction.
	Data bool
}

func (p Line) String() string {
	if p.Data {
		return fmt.Sprintf("data %d", p.Words[0])
	}
	//
	return p.Instruction.Format(p.Words[1:])
}

// Disassemble a program image using a linear sweep from address zero.  Words
// which do not decode (or whose parameters run past the end of the image) are
// reported as data, and the sweep resumes at the following word.  Since code
// and data are freely mixed in Intcode, the listing is only a best effort.
func Disassemble(words []int64) []Line {
	var (
		lines []Line
		n     = int64(len(words))
	)
	//
	for addr := int64(0); addr < n; {
		insn, err := Decode(addr, words[addr])
		width := insn.Width()
		//
		if err != nil || addr+width > n {
			lines = append(lines, Line{Address: addr, Words: words[addr : addr+1], Data: true})
			addr++
		} else {
			lines = append(lines, Line{Address: addr, Words: words[addr : addr+width], Instruction: insn})
			addr += width
		}
	}
	//
	return lines
}
