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
	"io"
	"os"
	"strconv"

	"github.com/consensys/go-intcode/pkg/host"
	"github.com/consensys/go-intcode/pkg/intcode"
	"github.com/consensys/go-intcode/pkg/util"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program.txt",
	Short: "Execute an intcode program.",
	Long: `Execute an intcode program until it halts, feeding it a given sequence of
inputs and printing every output produced.`,
	Aliases: []string{"exec"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg     = LoadConfig(cmd)
			program = ReadProgramFile(args[0])
			inputs  = GetWords(cmd, "input")
			ascii   = GetFlag(cmd, "ascii")
			stats   = GetFlag(cmd, "stats")
			dump    = GetUint(cmd, "dump")
			machine = intcode.New(program, cfg.Options()...)
			driver  = host.Driver{MaxSteps: cfg.Machine.MaxSteps}
		)
		// Apply memory patches
		for _, p := range GetStringArray(cmd, "patch") {
			ith, err := parsePatch(p)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			machine.Poke(ith.address, ith.value)
		}
		// Text input is appended after numeric input
		for _, line := range GetStringArray(cmd, "line") {
			inputs = append(inputs, host.EncodeLine(line)...)
		}
		//
		perf := util.NewPerfStats()
		outputs, err := driver.Drive(machine, inputs)
		//
		perf.Log("execution", machine.Steps())
		//
		writeOutputs(os.Stdout, outputs, ascii)
		//
		if dump > 0 {
			writeDump(os.Stdout, machine.Memory(), dump)
		}
		//
		if stats {
			writeStats(os.Stderr, perf.Report(machine.Steps()))
		}
		//
		if err != nil {
			Fail(err)
		}
	},
}

// Write outputs either one decimal per line or, in ASCII mode, as text with
// any non-character values on their own lines.
func writeOutputs(out io.Writer, outputs []int64, ascii bool) {
	if ascii {
		text, extra := host.DecodeAscii(outputs)
		//
		fmt.Fprint(out, text)
		//
		if len(text) > 0 && text[len(text)-1] != '\n' && len(extra) > 0 {
			fmt.Fprintln(out)
		}
		//
		outputs = extra
	}
	//
	for _, v := range outputs {
		fmt.Fprintln(out, strconv.FormatInt(v, 10))
	}
}

func writeStats(out io.Writer, report util.PerfReport) {
	fmt.Fprintf(out, "steps: %d\n", report.Steps)
	fmt.Fprintf(out, "time: %s\n", report.Elapsed)
	fmt.Fprintf(out, "rate: %0.0f/s\n", report.Rate())
	fmt.Fprintf(out, "allocated: %d Kb (%d GC events)\n", report.Allocated/1024, report.GcEvents)
}

// Write the leading memory cells in program text format.
func writeDump(out io.Writer, mem *intcode.Memory, cells uint) {
	fmt.Fprintf(out, "memory: %s\n", intcode.FormatProgram(mem.Contents(cells)))
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	addMachineFlags(runCmd)
	runCmd.Flags().StringP("input", "i", "", "comma-separated inputs fed to the program")
	runCmd.Flags().StringArray("line", nil, "line of text fed to the program as ASCII (repeatable)")
	runCmd.Flags().StringArrayP("patch", "p", nil, "set memory cell before execution, as address=value (repeatable)")
	runCmd.Flags().Bool("ascii", false, "print outputs as ASCII text")
	runCmd.Flags().Bool("stats", false, "report execution statistics")
	runCmd.Flags().Uint("dump", 0, "print this many leading memory cells after execution")
}
