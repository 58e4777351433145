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
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-intcode/pkg/intcode"
	"github.com/consensys/go-intcode/pkg/util/termio"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [flags] program.txt",
	Short: "Disassemble an intcode program.",
	Long: `Disassemble an intcode program by a linear sweep from address zero.  Since
code and data share memory, words which do not decode are shown as data.`,
	Aliases: []string{"dis"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg     = LoadConfig(cmd)
			program = ReadProgramFile(args[0])
			table   = disassembleTable(intcode.Disassemble(program))
		)
		//
		table.AnsiEscapes(useColour(cfg, os.Stdout))
		//
		if err := table.Print(os.Stdout); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// Construct a table of address, raw words and instruction text.
func disassembleTable(lines []intcode.Line) *termio.TablePrinter {
	var (
		table   = termio.NewTablePrinter(3, 0)
		address = termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
		data    = termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
		halt    = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	)
	//
	table.LeftAlign(1, true)
	table.LeftAlign(2, true)
	//
	for _, line := range lines {
		words := make([]string, len(line.Words))
		//
		for i, w := range line.Words {
			words[i] = fmt.Sprintf("%d", w)
		}
		//
		row := table.AddRow(fmt.Sprintf("%d", line.Address), strings.Join(words, ","), line.String())
		table.SetEscape(0, row, address)
		//
		switch {
		case line.Data:
			table.SetEscape(2, row, data)
		case line.Instruction.Opcode == intcode.Halt:
			table.SetEscape(2, row, halt)
		}
	}
	//
	return table
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().String("color", "auto", "use ANSI colour (auto, always or never)")
}
