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

// ReadParam resolves the effective value of a read parameter.  In position
// mode the raw word is an address, in relative mode it is an offset from the
// relative base, and in immediate mode it is the value itself.  The mode is
// assumed to have been validated by Decode.
func ReadParam(mem MemoryView, base int64, raw int64, mode Mode) int64 {
	switch mode {
	case Immediate:
		return raw
	case Relative:
		return mem.Read(base + raw)
	default:
		return mem.Read(raw)
	}
}

// WriteAddress resolves the effective address of a write target.  Only
// position and relative modes are meaningful here, and Decode rejects
// immediate mode write targets before this is reached.
func WriteAddress(base int64, raw int64, mode Mode) int64 {
	if mode == Relative {
		return base + raw
	}
	//
	return raw
}
