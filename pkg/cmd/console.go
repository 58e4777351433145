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
	"os"

	"github.com/consensys/go-intcode/pkg/host"
	"github.com/consensys/go-intcode/pkg/intcode"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var consoleCmd = &cobra.Command{
	Use:   "console [flags] program.txt",
	Short: "Run an ASCII program interactively.",
	Long: `Run a program which communicates in ASCII, such that its character outputs are
written to stdout and each line read from stdin is fed to it.  Outputs which are
not characters are written in decimal on their own line.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg     = LoadConfig(cmd)
			program = ReadProgramFile(args[0])
			machine = intcode.New(program, cfg.Options()...)
			console = host.NewConsole(os.Stdin, os.Stdout)
		)
		//
		console.MaxSteps = cfg.Machine.MaxSteps
		// Only prompt a human
		if term.IsTerminal(int(os.Stdin.Fd())) {
			console.Prompt = GetString(cmd, "prompt")
		}
		//
		if err := console.Run(machine); err != nil {
			Fail(err)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(consoleCmd)
	addMachineFlags(consoleCmd)
	consoleCmd.Flags().String("prompt", "> ", "prompt shown when input is needed")
}
