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
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/consensys/go-intcode/pkg/config"
	"github.com/consensys/go-intcode/pkg/intcode"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt64 gets an expected signed integer, or exits if an error arises.
func GetInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetWords gets an expected comma-separated list of integers, or exits if an
// error arises.  An empty flag gives an empty list.
func GetWords(cmd *cobra.Command, flag string) []int64 {
	words, err := parseWords(GetString(cmd, flag))
	if err != nil {
		fmt.Printf("invalid --%s: %s\n", flag, err)
		os.Exit(2)
	}

	return words
}

// ReadProgramFile reads an intcode program, or exits if it cannot be read or
// parsed.
func ReadProgramFile(filename string) []int64 {
	log.Debug(fmt.Sprintf("reading program file %s", filename))
	//
	program, err := intcode.ReadProgramFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	log.Debug(fmt.Sprintf("read %d words", len(program)))
	//
	return program
}

// LoadConfig determines the configuration for a command.  This is read from the
// file given by --config or, failing that, the nearest intcode.toml.  Any flags
// set explicitly then take precedence.
func LoadConfig(cmd *cobra.Command) *config.Config {
	var (
		cfg  *config.Config
		err  error
		path = GetString(cmd, "config")
	)
	//
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	//
	if err == nil {
		err = overrideConfig(cmd, cfg)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if cfg.Path != "" {
		log.Debug(fmt.Sprintf("using configuration %s", cfg.Path))
	}
	//
	if cfg.Machine.Trace {
		log.SetLevel(log.TraceLevel)
	}
	//
	return cfg
}

// Apply those flags which were explicitly given on the command line.
func overrideConfig(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	//
	if flags.Changed("max-steps") {
		cfg.Machine.MaxSteps = GetUint(cmd, "max-steps")
	}
	//
	if flags.Changed("overflow") {
		cfg.Machine.Overflow = GetString(cmd, "overflow")
	}
	//
	if flags.Changed("trace") {
		cfg.Machine.Trace = GetFlag(cmd, "trace")
	}
	//
	if flags.Changed("nodes") {
		cfg.Network.Nodes = GetUint(cmd, "nodes")
	}
	//
	if flags.Changed("nat") {
		cfg.Network.Nat = GetInt64(cmd, "nat")
	}
	//
	if flags.Changed("color") {
		cfg.Output.Color = GetString(cmd, "color")
	}
	//
	return cfg.Validate()
}

// Fail reports an error arising from executing a machine, and exits.
func Fail(err error) {
	var fault *intcode.Fault
	//
	if errors.As(err, &fault) {
		log.Error(fmt.Sprintf("machine fault: %s", fault))
	} else {
		log.Error(err)
	}
	//
	os.Exit(4)
}

// Determine whether output to a given file should use ANSI escapes.
func useColour(cfg *config.Config, file *os.File) bool {
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(file.Fd()))
	}
}

// A patch assigns a value to a memory cell before execution begins.
type patch struct {
	address int64
	value   int64
}

// Parse a patch of the form "address=value".
func parsePatch(text string) (patch, error) {
	lhs, rhs, ok := strings.Cut(text, "=")
	if !ok {
		return patch{}, fmt.Errorf("invalid patch \"%s\" (expected address=value)", text)
	}
	//
	address, err := strconv.ParseInt(strings.TrimSpace(lhs), 10, 64)
	if err != nil {
		return patch{}, fmt.Errorf("invalid patch address \"%s\"", lhs)
	}
	//
	value, err := strconv.ParseInt(strings.TrimSpace(rhs), 10, 64)
	if err != nil {
		return patch{}, fmt.Errorf("invalid patch value \"%s\"", rhs)
	}
	//
	return patch{address, value}, nil
}

// Parse a comma-separated list of integers, allowing the empty list.
func parseWords(text string) ([]int64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	//
	return intcode.ParseProgram(text)
}
