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
	log "github.com/sirupsen/logrus"
)

var (
	// ErrStalled indicates a pipeline stage asked for more input than the
	// pipeline supplies.
	ErrStalled = errors.New("stage stalled waiting for input")
	// ErrNoSignal indicates a pipeline stage halted without passing a signal
	// on.
	ErrNoSignal = errors.New("stage halted without a signal")
)

// Pipeline chains together several independent copies of a program, such that
// the output of each stage is the input of the next.  Each stage is primed
// with its own phase value before receiving any signal.  In feedback mode, the
// output of the last stage is fed back into the first, and the pipeline runs
// until a stage halts.
type Pipeline struct {
	Driver
	// Determines whether the last stage feeds the first.
	Feedback bool
	stages   []*intcode.Machine
}

// NewPipeline constructs a pipeline with one stage per phase value, where
// every stage runs the given program.
func NewPipeline(program []int64, phases []int64, opts ...intcode.Option) *Pipeline {
	var (
		stages = make([]*intcode.Machine, len(phases))
		// Load program once, then clone
		proto = intcode.New(program, opts...)
	)
	//
	for i, phase := range phases {
		stages[i] = proto.Clone()
		stages[i].Push(phase)
	}
	//
	return &Pipeline{stages: stages}
}

// Stage returns the machine executing the ith stage.
func (p *Pipeline) Stage(i uint) *intcode.Machine {
	return p.stages[i]
}

// Run the pipeline by feeding a given seed signal into the first stage,
// returning the last signal produced.
func (p *Pipeline) Run(seed int64) (int64, error) {
	var (
		signal = seed
		round  uint
	)
	//
	for {
		for i, stage := range p.stages {
			stage.Push(signal)
			//
			status, err := p.Resume(stage)
			//
			switch {
			case err != nil:
				return signal, fmt.Errorf("stage %d: %w", i, err)
			case status == intcode.ProducedOutput:
				signal, _ = stage.Pop()
			case status == intcode.NeedsInput:
				return signal, fmt.Errorf("stage %d: %w", i, ErrStalled)
			case !p.Feedback || (round == 0 && i == 0):
				return signal, fmt.Errorf("stage %d: %w", i, ErrNoSignal)
			default:
				// Halted in feedback mode, the last signal stands
				log.Debugf("pipeline stage %d halted after %d rounds", i, round)
				//
				return signal, nil
			}
		}
		//
		if !p.Feedback {
			return signal, nil
		}
		//
		round++
	}
}
