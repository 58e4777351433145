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
	"testing"

	"github.com/consensys/go-intcode/pkg/intcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Pipeline_Serial(t *testing.T) {
	tests := []struct {
		program []int64
		phases  []int64
		signal  int64
	}{
		{
			[]int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0},
			[]int64{4, 3, 2, 1, 0},
			43210,
		},
		{
			[]int64{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23,
				101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0},
			[]int64{0, 1, 2, 3, 4},
			54321,
		},
	}
	//
	for _, tt := range tests {
		signal, err := NewPipeline(tt.program, tt.phases).Run(0)
		require.NoError(t, err)
		assert.Equal(t, tt.signal, signal)
	}
}

func Test_Pipeline_Feedback(t *testing.T) {
	program := []int64{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	//
	pipeline := NewPipeline(program, []int64{9, 8, 7, 6, 5})
	pipeline.Feedback = true
	pipeline.MaxSteps = 10_000
	//
	signal, err := pipeline.Run(0)
	require.NoError(t, err)
	assert.Equal(t, int64(139629729), signal)
	assert.True(t, pipeline.Stage(0).Halted())
}

func Test_Pipeline_Stages_Independent(t *testing.T) {
	program := []int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	pipeline := NewPipeline(program, []int64{1, 2})
	//
	signal, err := pipeline.Run(0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), signal)
	// Stages share nothing
	assert.Equal(t, int64(1), pipeline.Stage(0).Peek(15))
	assert.Equal(t, int64(0), pipeline.Stage(0).Peek(16))
	assert.Equal(t, int64(12), pipeline.Stage(1).Peek(15))
	assert.Equal(t, int64(10), pipeline.Stage(1).Peek(16))
}

func Test_Pipeline_Errors(t *testing.T) {
	// Needs two inputs after the phase
	_, err := NewPipeline([]int64{3, 0, 3, 0, 3, 0, 99}, []int64{0}).Run(0)
	assert.ErrorIs(t, err, ErrStalled)
	// Halts without output
	_, err = NewPipeline([]int64{3, 0, 3, 0, 99}, []int64{0, 0}).Run(0)
	assert.ErrorIs(t, err, ErrNoSignal)
	// Faults
	_, err = NewPipeline([]int64{3, 0, 3, 0, 55}, []int64{0}, intcode.WithOverflow(intcode.Trap)).Run(0)
	assert.ErrorIs(t, err, intcode.ErrMalformedOpcode)
	assert.ErrorContains(t, err, "stage 0")
}
