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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Instruction budget used for any run in these tests, such that a broken
// machine fails rather than spins.
const testSteps = 100_000

// Run a machine to completion feeding it the given inputs, and return all
// outputs produced.
func runToHalt(t *testing.T, m *Machine, inputs ...int64) []int64 {
	var outputs []int64
	//
	m.Push(inputs...)
	//
	for {
		status, _, err := m.Execute(testSteps)
		require.NoError(t, err)
		//
		switch status {
		case Halted:
			return outputs
		case ProducedOutput:
			v, ok := m.Pop()
			require.True(t, ok)
			//
			outputs = append(outputs, v)
		default:
			require.FailNowf(t, "unexpected status", "%s at address %d", status, m.IP())
		}
	}
}

func Test_Machine_AddSelf(t *testing.T) {
	m := New([]int64{1, 0, 0, 0, 99})
	//
	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, Halted, status)
	assert.Equal(t, int64(2), m.Peek(0))
	assert.Equal(t, uint64(2), m.Steps())
	assert.Equal(t, []int64{2, 0, 0, 0, 99}, m.Memory().Contents(10))
}

func Test_Machine_Echo(t *testing.T) {
	m := New([]int64{3, 0, 4, 0, 99})
	m.Push(42)
	//
	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, ProducedOutput, status)
	assert.Equal(t, uint(1), m.NumOutputs())
	assert.Equal(t, []int64{42}, m.Drain())
	//
	status, err = m.Run()
	require.NoError(t, err)
	assert.Equal(t, Halted, status)
}

func Test_Machine_ImmediateAdd(t *testing.T) {
	m := New([]int64{1101, 100, -1, 4, 0})
	//
	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, Halted, status)
	assert.Equal(t, int64(99), m.Peek(4))
}

func Test_Machine_RelativeOutput(t *testing.T) {
	m := New([]int64{109, 1, 204, -1, 99})
	//
	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, ProducedOutput, status)
	assert.Equal(t, int64(1), m.RelativeBase())
	//
	v, ok := m.Pop()
	assert.True(t, ok)
	assert.Equal(t, int64(109), v)
}

func Test_Machine_Quine(t *testing.T) {
	program := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	//
	outputs := runToHalt(t, New(program))
	assert.Equal(t, program, outputs)
}

func Test_Machine_LargeNumbers(t *testing.T) {
	outputs := runToHalt(t, New([]int64{1102, 34915192, 34915192, 7, 4, 7, 99, 0}))
	assert.Equal(t, []int64{1219070632396864}, outputs)
	//
	outputs = runToHalt(t, New([]int64{104, 1125899906842624, 99}))
	assert.Equal(t, []int64{1125899906842624}, outputs)
}

func Test_Machine_Comparisons(t *testing.T) {
	program := []int64{3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
		1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
		999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99}
	//
	tests := []struct {
		input  int64
		output int64
	}{
		{-5, 999}, {7, 999}, {8, 1000}, {9, 1001}, {1 << 40, 1001},
	}
	//
	for _, tt := range tests {
		outputs := runToHalt(t, New(program), tt.input)
		assert.Equal(t, []int64{tt.output}, outputs, "input %d", tt.input)
	}
	// Equal to 8, position mode
	assert.Equal(t, []int64{1}, runToHalt(t, New([]int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}), 8))
	assert.Equal(t, []int64{0}, runToHalt(t, New([]int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}), 5))
	// Less than 8, immediate mode
	assert.Equal(t, []int64{1}, runToHalt(t, New([]int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}), 5))
	assert.Equal(t, []int64{0}, runToHalt(t, New([]int64{3, 3, 1107, -1, 8, 3, 4, 3, 99}), 8))
	// Jumps
	assert.Equal(t, []int64{0}, runToHalt(t, New([]int64{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}), 0))
	assert.Equal(t, []int64{1}, runToHalt(t, New([]int64{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}), 3))
}

func Test_Machine_NeedsInputDoesNotAdvance(t *testing.T) {
	m := New([]int64{1101, 1, 1, 10, 3, 11, 4, 11, 99})
	//
	status, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, NeedsInput, status)
	assert.Equal(t, int64(4), m.IP())
	assert.Equal(t, int64(0), m.Peek(11))
	assert.Equal(t, uint64(1), m.Steps())
	// Asking again changes nothing
	status, err = m.Run()
	require.NoError(t, err)
	require.Equal(t, NeedsInput, status)
	assert.Equal(t, int64(4), m.IP())
	assert.Equal(t, uint64(1), m.Steps())
	// Supply exactly one value
	m.Push(-7, 13)
	status, err = m.Run()
	require.NoError(t, err)
	require.Equal(t, ProducedOutput, status)
	assert.Equal(t, uint(1), m.NumInputs())
	assert.Equal(t, []int64{-7}, m.Drain())
}

func Test_Machine_OneOutputPerRun(t *testing.T) {
	m := New([]int64{104, 1, 104, 2, 104, 3, 99})
	//
	for i := int64(1); i <= 3; i++ {
		status, err := m.Run()
		require.NoError(t, err)
		require.Equal(t, ProducedOutput, status)
		require.Equal(t, uint(1), m.NumOutputs())
		//
		v, _ := m.Pop()
		assert.Equal(t, i, v)
	}
	//
	status, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, Halted, status)
	// Halted is terminal
	status, err = m.Run()
	require.NoError(t, err)
	assert.Equal(t, Halted, status)
	assert.True(t, m.Halted())
}

func Test_Machine_SelfModifying(t *testing.T) {
	// The first instruction turns the halt at address 4 into an output.
	m := New([]int64{1101, 3, 1, 4, 99, 0, 99})
	//
	assert.Equal(t, []int64{1101}, runToHalt(t, m))
	assert.Equal(t, int64(4), m.Peek(4))
}

func Test_Machine_UnwrittenMemoryIsZero(t *testing.T) {
	m := New([]int64{99})
	//
	for _, addr := range []int64{1, 1000, 1 << 40, math.MaxInt64, -1, math.MinInt64} {
		assert.Equal(t, int64(0), m.Peek(addr), "address %d", addr)
	}
	// Relative base far beyond the image, reading and writing there
	m = New([]int64{109, 1 << 40, 21101, 5, 6, 0, 204, 0, 204, 1, 99})
	//
	assert.Equal(t, []int64{11, 0}, runToHalt(t, m))
	assert.Equal(t, int64(11), m.Peek(1<<40))
	// Negative addresses
	m = New([]int64{109, -100, 21101, 2, 3, 0, 204, 0, 99})
	//
	assert.Equal(t, []int64{5}, runToHalt(t, m))
	assert.Equal(t, int64(5), m.Peek(-100))
}

func Test_Machine_Poke(t *testing.T) {
	// Output the word at address 5, unless patched
	m := New([]int64{4, 5, 99, 0, 0, 17})
	m.Poke(5, 23)
	//
	assert.Equal(t, []int64{23}, runToHalt(t, m))
	// Patch between runs
	m = New([]int64{3, 9, 4, 10, 4, 10, 99, 0, 0, 0, 1})
	m.Push(0)
	//
	status, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, ProducedOutput, status)
	m.Drain()
	m.Poke(10, 2)
	//
	assert.Equal(t, []int64{2}, runToHalt(t, m))
}

func Test_Machine_CloneIsolation(t *testing.T) {
	m := New([]int64{3, 20, 1001, 20, 1, 20, 4, 20, 1105, 1, 0})
	m.Push(1)
	//
	status, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, ProducedOutput, status)
	//
	c := m.Clone()
	// Diverge
	m.Push(100)
	c.Push(200)
	c.Poke(30, 1)
	//
	_, err = m.Run()
	require.NoError(t, err)
	_, err = c.Run()
	require.NoError(t, err)
	//
	assert.Equal(t, []int64{2, 101}, m.Drain())
	assert.Equal(t, []int64{2, 201}, c.Drain())
	assert.Equal(t, int64(101), m.Peek(20))
	assert.Equal(t, int64(201), c.Peek(20))
	assert.Equal(t, int64(0), m.Peek(30))
	assert.Equal(t, m.IP(), c.IP())
	assert.Equal(t, m.Steps(), c.Steps())
}

func Test_Machine_ExecuteBudget(t *testing.T) {
	// Infinite loop without I/O
	m := New([]int64{1105, 1, 0})
	//
	status, n, err := m.Execute(10)
	require.NoError(t, err)
	assert.Equal(t, Running, status)
	assert.Equal(t, uint(10), n)
	assert.Equal(t, uint64(10), m.Steps())
	// Budget is resumable
	m = New([]int64{1101, 1, 2, 0, 104, 7, 99})
	//
	status, n, err = m.Execute(1)
	require.NoError(t, err)
	assert.Equal(t, Running, status)
	assert.Equal(t, uint(1), n)
	//
	status, n, err = m.Execute(10)
	require.NoError(t, err)
	assert.Equal(t, ProducedOutput, status)
	assert.Equal(t, uint(1), n)
	assert.Equal(t, int64(3), m.Peek(0))
}

func Test_Machine_Faults(t *testing.T) {
	tests := []struct {
		name    string
		program []int64
		kind    FaultKind
		address int64
		word    int64
		param   uint
	}{
		{"unknown opcode", []int64{50, 0, 0, 99}, MalformedOpcode, 0, 50, 0},
		{"zero opcode", []int64{0}, MalformedOpcode, 0, 0, 0},
		{"negative word", []int64{1101, 1, 1, 5, -3}, MalformedOpcode, 4, -3, 0},
		{"jump to unwritten", []int64{1105, 1, 100}, MalformedOpcode, 100, 0, 0},
		{"mode digit 3", []int64{301, 0, 0, 0, 99}, MalformedMode, 0, 301, 1},
		{"mode digit 3 on target", []int64{30001, 0, 0, 0, 99}, MalformedMode, 0, 30001, 3},
		{"immediate target", []int64{10001, 0, 0, 0, 99}, MalformedMode, 0, 10001, 3},
		{"immediate input target", []int64{103, 0, 99}, MalformedMode, 0, 103, 1},
		{"mode on second parameter", []int64{4, 0, 9105, 1, 1, 99}, MalformedMode, 2, 9105, 2},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.program)
			//
			for {
				status, err := m.Run()
				//
				if status == ProducedOutput {
					m.Drain()
					continue
				}
				//
				require.Equal(t, Faulted, status)
				require.Error(t, err)
				//
				var fault *Fault
				require.ErrorAs(t, err, &fault)
				assert.Equal(t, tt.kind, fault.Kind)
				assert.Equal(t, tt.address, fault.Address)
				assert.Equal(t, tt.word, fault.Word)
				assert.Equal(t, tt.param, fault.Param)
				assert.Equal(t, tt.address, m.IP())
				//
				break
			}
			// Faults are sticky
			status, err := m.Run()
			assert.Equal(t, Faulted, status)
			assert.Equal(t, m.Err(), err)
		})
	}
}

func Test_Machine_FaultClassification(t *testing.T) {
	_, err := New([]int64{50}).Run()
	assert.ErrorIs(t, err, ErrMalformedOpcode)
	assert.Contains(t, err.Error(), "at address 0")
	//
	_, err = New([]int64{99, 301}).Clone().Run()
	assert.NoError(t, err)
	//
	_, err = New([]int64{1105, 1, 3, 1301}).Run()
	assert.ErrorIs(t, err, ErrMalformedMode)
	assert.NotErrorIs(t, err, ErrMalformedOpcode)
	assert.Contains(t, err.Error(), "parameter 1")
}

func Test_Machine_OverflowWraps(t *testing.T) {
	// add
	m := New([]int64{1101, math.MaxInt64, 1, 0, 99})
	_, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), m.Peek(0))
	// mul
	m = New([]int64{1102, 1 << 62, 2, 0, 99})
	_, err = m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), m.Peek(0))
	// relative base
	m = New([]int64{109, math.MaxInt64, 109, 1, 99}, WithOverflow(Wrap))
	_, err = m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), m.RelativeBase())
}

func Test_Machine_OverflowTraps(t *testing.T) {
	tests := []struct {
		name    string
		program []int64
		address int64
	}{
		{"add", []int64{1101, math.MaxInt64, 1, 0, 99}, 0},
		{"add negative", []int64{1101, math.MinInt64, -1, 0, 99}, 0},
		{"mul", []int64{1102, 1 << 62, 2, 0, 99}, 0},
		{"mul min by minus one", []int64{1102, math.MinInt64, -1, 0, 99}, 0},
		{"relative base", []int64{109, math.MaxInt64, 109, 1, 99}, 2},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.program, WithOverflow(Trap))
			//
			status, err := m.Run()
			assert.Equal(t, Faulted, status)
			require.ErrorIs(t, err, ErrArithmeticOverflow)
			//
			var fault *Fault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, tt.address, fault.Address)
			// Nothing written
			assert.Equal(t, tt.program[0], m.Peek(0))
		})
	}
	// Exact results still pass when trapping
	m := New([]int64{1102, -3, 1 << 61, 0, 1101, math.MinInt64, math.MaxInt64, 1, 99}, WithOverflow(Trap))
	_, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(-3<<61), m.Peek(0))
	assert.Equal(t, int64(-1), m.Peek(1))
}

func Test_Machine_Trace(t *testing.T) {
	// Tracing must not disturb execution
	program := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	//
	assert.Equal(t, program, runToHalt(t, New(program, WithTrace())))
}
