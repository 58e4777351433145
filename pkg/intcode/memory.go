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
	"maps"
	"math"
)

// MemoryView provides read-only access to a machine's address space.  This is
// all that parameter resolution requires.
type MemoryView interface {
	// Read the word stored at a given address.  Reading an address which has
	// not yet been written returns zero.
	Read(address int64) int64
}

// Memory represents the unbounded address space of a machine.  Initially, all
// locations can be considered to hold zero.  Thus, reading a location which
// has not yet been written will return zero; otherwise, it will return the
// last value written.  Any address (including negative addresses arising from
// relative-base arithmetic) can be written, and the backing store grows as
// required.
type Memory struct {
	cells map[int64]int64
	// One past the highest non-negative address written, saturating at
	// MaxInt64.
	high int64
}

// NewMemory constructs a memory whose addresses 0..n-1 hold the given image.
func NewMemory(image []int64) *Memory {
	var mem = &Memory{cells: make(map[int64]int64, len(image))}
	//
	for i, w := range image {
		mem.cells[int64(i)] = w
	}
	//
	mem.high = int64(len(image))
	//
	return mem
}

// Read implementation for MemoryView interface.
func (p *Memory) Read(address int64) int64 {
	// Missing cells yield zero
	return p.cells[address]
}

// Write a given value to a given address, overwriting the previous value
// stored at that address.
func (p *Memory) Write(address int64, value int64) {
	p.cells[address] = value
	//
	if address >= p.high {
		p.high = min(address, math.MaxInt64-1) + 1
	}
}

// Len returns the number of cells which have been explicitly stored.
func (p *Memory) Len() uint {
	return uint(len(p.cells))
}

// Contents returns the dense image of non-negative addresses, from zero up to
// the highest address written or the given limit (whichever is smaller).
// Unwritten cells within this range are zero.
func (p *Memory) Contents(limit uint) []int64 {
	var (
		n     = min(uint64(p.high), uint64(limit))
		words = make([]int64, n)
	)
	//
	for addr, w := range p.cells {
		if addr >= 0 && uint64(addr) < n {
			words[addr] = w
		}
	}
	//
	return words
}

// Clone returns a deep copy of this memory.
func (p *Memory) Clone() *Memory {
	return &Memory{maps.Clone(p.cells), p.high}
}
