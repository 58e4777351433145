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
package queue

// Queue represents a reusable FIFO queue which is implemented using an array.
// Items are appended at the back and removed from the front.  The consumed
// prefix of the backing array is reclaimed lazily, once it dominates the
// array.
type Queue[T any] struct {
	items []T
	// Index of the front item within items.
	head int
}

// NewQueue returns an empty queue, optionally initialised with the given items
// (in order from front to back).
func NewQueue[T any](items ...T) *Queue[T] {
	var q Queue[T]
	//
	q.PushAll(items)
	//
	return &q
}

// IsEmpty checks whether or not there are still items in the queue
func (p *Queue[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Len returns the number of items in the queue.
func (p *Queue[T]) Len() uint {
	return uint(len(p.items) - p.head)
}

// Peek at nth item from the front of the queue.
func (p *Queue[T]) Peek(offset uint) T {
	var n = p.head + int(offset)
	//
	if n >= len(p.items) {
		panic("peek out-of-bounds")
	}
	//
	return p.items[n]
}

// Push a new item onto the back of the queue
func (p *Queue[T]) Push(item T) {
	p.items = append(p.items, item)
}

// PushAll pushes zero or more items onto the back of the queue, preserving
// their order.
func (p *Queue[T]) PushAll(items []T) {
	p.items = append(p.items, items...)
}

// Pop the front item off the queue
func (p *Queue[T]) Pop() T {
	var zero T
	//
	if p.IsEmpty() {
		panic("cannot pop from empty queue")
	}
	// Get front item
	item := p.items[p.head]
	// Release reference held by the backing array
	p.items[p.head] = zero
	p.head++
	// Compact once the consumed prefix dominates
	if p.head == len(p.items) {
		p.items = p.items[:0]
		p.head = 0
	} else if p.head >= 32 && 2*p.head >= len(p.items) {
		n := copy(p.items, p.items[p.head:])
		p.items = p.items[:n]
		p.head = 0
	}
	// Done
	return item
}

// Items returns a copy of the items currently held, from front to back.
func (p *Queue[T]) Items() []T {
	var items = make([]T, p.Len())
	//
	copy(items, p.items[p.head:])
	//
	return items
}

// Clear removes all items from the queue.
func (p *Queue[T]) Clear() {
	p.items = nil
	p.head = 0
}

// Clone returns a queue holding the same items but sharing no storage with
// this queue.
func (p *Queue[T]) Clone() *Queue[T] {
	return &Queue[T]{p.Items(), 0}
}
