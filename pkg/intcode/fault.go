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
	"errors"
	"fmt"
)

var (
	// ErrMalformedOpcode indicates an instruction word whose opcode is not
	// recognised.
	ErrMalformedOpcode = errors.New("malformed opcode")
	// ErrMalformedMode indicates a parameter whose addressing mode is not
	// recognised, or an immediate mode write target.
	ErrMalformedMode = errors.New("malformed addressing mode")
	// ErrArithmeticOverflow indicates that an arithmetic instruction overflowed
	// whilst the machine was configured to trap on overflow.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// FaultKind classifies the fatal conditions which stop a machine.
type FaultKind uint8

const (
	// MalformedOpcode signals an unrecognised opcode.
	MalformedOpcode FaultKind = iota
	// MalformedMode signals an unrecognised or misused addressing mode.
	MalformedMode
	// ArithmeticOverflow signals a trapped arithmetic overflow.
	ArithmeticOverflow
)

// Fault is the error produced when a machine encounters a condition from which
// it cannot recover.  It identifies the address of the offending instruction
// and the raw word found there.  Once faulted, a machine remains faulted.
type Fault struct {
	Kind FaultKind
	// Address of the instruction being executed.
	Address int64
	// Raw instruction word at that address.
	Word int64
	// One-based parameter index, for mode faults only.
	Param uint
}

func (p *Fault) Error() string {
	switch p.Kind {
	case MalformedMode:
		return fmt.Sprintf("%s in parameter %d of %d at address %d", ErrMalformedMode, p.Param, p.Word, p.Address)
	case ArithmeticOverflow:
		return fmt.Sprintf("%s executing %d at address %d", ErrArithmeticOverflow, p.Word, p.Address)
	default:
		return fmt.Sprintf("%s %d at address %d", ErrMalformedOpcode, p.Word, p.Address)
	}
}

// Unwrap exposes the sentinel error corresponding to this fault's kind, such
// that errors.Is() can be used to classify faults.
func (p *Fault) Unwrap() error {
	switch p.Kind {
	case MalformedMode:
		return ErrMalformedMode
	case ArithmeticOverflow:
		return ErrArithmeticOverflow
	default:
		return ErrMalformedOpcode
	}
}
