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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/go-intcode/pkg/intcode"
)

// MaxAscii is the largest value treated as a character by the ASCII helpers.
// Larger (or negative) outputs are results rather than text.
const MaxAscii = 127

// EncodeLine encodes a line of text as inputs, one per character, followed by
// a single newline.  Any trailing line ending is replaced.
func EncodeLine(line string) []int64 {
	line = strings.TrimRight(line, "\r\n")
	//
	words := make([]int64, 0, len(line)+1)
	//
	for i := 0; i < len(line); i++ {
		words = append(words, int64(line[i]))
	}
	//
	return append(words, '\n')
}

// PushLine feeds a line of text into a machine, one character per input,
// followed by a newline.
func PushLine(m *intcode.Machine, line string) {
	m.Push(EncodeLine(line)...)
}

// DecodeAscii splits a sequence of outputs into the text they spell and the
// remaining values which are not characters, preserving order within each.
func DecodeAscii(values []int64) (string, []int64) {
	var (
		builder strings.Builder
		extra   []int64
	)
	//
	for _, v := range values {
		if v >= 0 && v <= MaxAscii {
			builder.WriteByte(byte(v))
		} else {
			extra = append(extra, v)
		}
	}
	//
	return builder.String(), extra
}

// Console connects a machine speaking ASCII to a text stream.  Whenever the
// machine needs input, the next line is read and fed to it.  Outputs which
// are characters are written as is, whilst other values are written in decimal
// on their own line.
type Console struct {
	Driver
	// Optional prompt written before reading each line.
	Prompt string
	in     *bufio.Reader
	out    *bufio.Writer
}

// NewConsole constructs a console reading from a given reader and writing to a
// given writer.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: bufio.NewWriter(out)}
}

// Run a machine on this console until it halts.  If the input ends whilst the
// machine still needs input, ErrInputExhausted is returned.  Failing to write
// output is also an error.
func (p *Console) Run(m *intcode.Machine) error {
	for {
		status, err := p.Resume(m)
		//
		if err != nil {
			// Show whatever was produced before failing
			_ = p.out.Flush()
			return err
		}
		//
		switch status {
		case intcode.Halted:
			return p.out.Flush()
		case intcode.ProducedOutput:
			if err := p.write(m); err != nil {
				return err
			}
		case intcode.NeedsInput:
			if err := p.readLine(m); err != nil {
				return err
			}
		}
	}
}

// Write the output just produced.  Write errors are sticky in the buffer, hence
// also surface from the next flush.
func (p *Console) write(m *intcode.Machine) error {
	var (
		v, _ = m.Pop()
		err  error
	)
	//
	if v >= 0 && v <= MaxAscii {
		err = p.out.WriteByte(byte(v))
	} else {
		_, err = p.out.WriteString(strconv.FormatInt(v, 10) + "\n")
	}
	//
	return err
}

func (p *Console) readLine(m *intcode.Machine) error {
	if p.Prompt != "" {
		p.out.WriteString(p.Prompt)
	}
	//
	if err := p.out.Flush(); err != nil {
		return err
	}
	//
	line, err := p.in.ReadString('\n')
	//
	if errors.Is(err, io.EOF) && line == "" {
		return fmt.Errorf("%w at address %d", ErrInputExhausted, m.IP())
	} else if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	//
	PushLine(m, line)
	//
	return nil
}
