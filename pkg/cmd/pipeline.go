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

	"github.com/consensys/go-intcode/pkg/host"
	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [flags] program.txt",
	Short: "Run copies of a program chained output to input.",
	Long: `Run one copy of a program per phase value, where each copy is primed with its
phase and the output of each copy is the input of the next.  The seed signal is
fed to the first copy, and the last signal produced is printed.  In feedback
mode, the last copy feeds the first until a copy halts.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg      = LoadConfig(cmd)
			program  = ReadProgramFile(args[0])
			phases   = GetWords(cmd, "phases")
			seed     = GetInt64(cmd, "seed")
			pipeline = host.NewPipeline(program, phases, cfg.Options()...)
		)
		//
		if len(phases) == 0 {
			fmt.Println("at least one phase required")
			os.Exit(2)
		}
		//
		pipeline.MaxSteps = cfg.Machine.MaxSteps
		pipeline.Feedback = GetFlag(cmd, "feedback")
		//
		signal, err := pipeline.Run(seed)
		if err != nil {
			Fail(err)
		}
		//
		fmt.Println(signal)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(pipelineCmd)
	addMachineFlags(pipelineCmd)
	pipelineCmd.Flags().String("phases", "", "comma-separated phase values, one per stage")
	pipelineCmd.Flags().Bool("feedback", false, "feed the last stage back into the first")
	pipelineCmd.Flags().Int64("seed", 0, "signal fed to the first stage")
	pipelineCmd.MarkFlagRequired("phases")
}
