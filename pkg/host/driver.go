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
package host

import (
	"errors"
	"fmt"

	"github.com/consensys/go-intcode/pkg/intcode"
)

var (
	// ErrInputExhausted indicates that a machine asked for input after all
	// supplied input was consumed.
	ErrInputExhausted = errors.New("input exhausted")
	// ErrStepLimit indicates that a machine executed more instructions than
	// permitted without suspending.
	ErrStepLimit = errors.New("step limit exceeded")
)

// Driver is the common basis of every host loop.  It resumes machines on
// behalf of the host, bounding the number of instructions a machine may
// execute between two suspensions.
type Driver struct {
	// Maximum number of instructions per resumption (or zero for no limit).
	MaxSteps uint
}

// Resume a machine until it suspends.  Exceeding the step limit is reported as
// ErrStepLimit, in which case the machine remains resumable.
func (p Driver) Resume(m *intcode.Machine) (intcode.Status, error) {
	if p.MaxSteps == 0 {
		return m.Run()
	}
	//
	status, _, err := m.Execute(p.MaxSteps)
	//
	if err == nil && status == intcode.Running {
		return status, fmt.Errorf("%w (%d steps from address %d)", ErrStepLimit, p.MaxSteps, m.IP())
	}
	//
	return status, err
}

// Drive a machine to completion, feeding it the given inputs in order when
// requested and collecting every output produced.  The outputs produced so far
// are returned even when an error arises.
func (p Driver) Drive(m *intcode.Machine, inputs []int64) ([]int64, error) {
	var outputs []int64
	//
	for {
		status, err := p.Resume(m)
		//
		if err != nil {
			return outputs, err
		}
		//
		switch status {
		case intcode.Halted:
			return outputs, nil
		case intcode.ProducedOutput:
			outputs = append(outputs, m.Drain()...)
		case intcode.NeedsInput:
			if len(inputs) == 0 {
				return outputs, fmt.Errorf("%w at address %d", ErrInputExhausted, m.IP())
			}
			//
			m.Push(inputs[0])
			inputs = inputs[1:]
		}
	}
}
