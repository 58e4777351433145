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
package cmd

import (
	"strings"
	"testing"

	"github.com/consensys/go-intcode/pkg/host"
	"github.com/consensys/go-intcode/pkg/intcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParsePatch(t *testing.T) {
	p, err := parsePatch("1=12")
	require.NoError(t, err)
	assert.Equal(t, patch{1, 12}, p)
	//
	p, err = parsePatch(" -3 = -7 ")
	require.NoError(t, err)
	assert.Equal(t, patch{-3, -7}, p)
	//
	for _, bad := range []string{"12", "a=1", "1=b", "=", ""} {
		_, err := parsePatch(bad)
		assert.Error(t, err, bad)
	}
}

func Test_ParseWords(t *testing.T) {
	words, err := parseWords("")
	require.NoError(t, err)
	assert.Empty(t, words)
	//
	words, err = parseWords("1, -2,3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, -2, 3}, words)
	//
	_, err = parseWords("1,,3")
	assert.Error(t, err)
}

func Test_WriteDump(t *testing.T) {
	var (
		out strings.Builder
		m   = intcode.New([]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	)
	//
	_, err := m.Run()
	require.NoError(t, err)
	//
	writeDump(&out, m.Memory(), 4)
	assert.Equal(t, "memory: 3500,9,10,70\n", out.String())
}

func Test_WriteOutputs(t *testing.T) {
	var out strings.Builder
	//
	writeOutputs(&out, []int64{1, -2, 300}, false)
	assert.Equal(t, "1\n-2\n300\n", out.String())
	//
	out.Reset()
	writeOutputs(&out, []int64{'h', 'i', 19349722}, true)
	assert.Equal(t, "hi\n19349722\n", out.String())
	//
	out.Reset()
	writeOutputs(&out, []int64{'o', 'k', '\n'}, true)
	assert.Equal(t, "ok\n", out.String())
}

func Test_StopCondition_First(t *testing.T) {
	stop, ok := stopCondition("first", host.DefaultNat)
	require.True(t, ok)
	//
	assert.False(t, stop(host.Event{Kind: host.PacketSent, Packet: host.Packet{Destination: 3}}))
	assert.True(t, stop(host.Event{Kind: host.PacketSent, Packet: host.Packet{Destination: 255}}))
}

func Test_StopCondition_Repeat(t *testing.T) {
	stop, ok := stopCondition("repeat", host.DefaultNat)
	require.True(t, ok)
	//
	nat := func(y int64) host.Event {
		return host.Event{Kind: host.NatDelivered, Packet: host.Packet{Y: y}}
	}
	//
	assert.False(t, stop(nat(5)))
	assert.False(t, stop(host.Event{Kind: host.PacketSent, Packet: host.Packet{Y: 5}}))
	assert.False(t, stop(nat(6)))
	assert.True(t, stop(nat(6)))
	//
	_, ok = stopCondition("never", host.DefaultNat)
	assert.False(t, ok)
}

func Test_DisassembleTable(t *testing.T) {
	var (
		out   strings.Builder
		table = disassembleTable(intcode.Disassemble([]int64{1101, 3, -4, 7, 99, 50}))
	)
	//
	table.AnsiEscapes(false)
	require.NoError(t, table.Print(&out))
	//
	assert.Equal(t, uint(3), table.Height())
	assert.Equal(t,
		"0 1101,3,-4,7 add #3, #-4, [7]\n"+
			"4 99          halt\n"+
			"5 50          data 50\n", out.String())
}
