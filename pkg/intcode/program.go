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
	"os"
	"strconv"
	"strings"
)

// ErrEmptyProgram indicates program text containing no words.
var ErrEmptyProgram = errors.New("empty program")

// ParseProgram parses the textual form of a program image, which is a single
// line of comma-separated signed decimal integers.  Whitespace surrounding
// each field (including a trailing newline) is ignored.
func ParseProgram(text string) ([]int64, error) {
	text = strings.TrimSpace(text)
	//
	if text == "" {
		return nil, ErrEmptyProgram
	}
	//
	var (
		fields = strings.Split(text, ",")
		words  = make([]int64, len(fields))
	)
	//
	for i, field := range fields {
		w, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		//
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		//
		words[i] = w
	}
	//
	return words, nil
}

// ReadProgramFile reads and parses a program image from a given file.
func ReadProgramFile(filename string) ([]int64, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	words, err := ParseProgram(string(bytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return words, nil
}

// FormatProgram returns the textual form of a program image, as accepted by
// ParseProgram.
func FormatProgram(words []int64) string {
	var builder strings.Builder
	//
	for i, w := range words {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(strconv.FormatInt(w, 10))
	}
	//
	return builder.String()
}
