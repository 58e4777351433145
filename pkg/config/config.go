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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-intcode/pkg/intcode"
)

// Filename is the name of the configuration file searched for by FindAndLoad.
const Filename = "intcode.toml"

// ErrInvalid indicates a configuration value which is not recognised.
var ErrInvalid = errors.New("invalid configuration")

// Config represents an intcode.toml configuration file.  Every field has a
// default, hence a missing file or section is not an error.
type Config struct {
	Machine Machine `toml:"machine"`
	Network Network `toml:"network"`
	Output  Output  `toml:"output"`

	// Path is the file this configuration was loaded from (empty for the
	// default configuration).
	Path string `toml:"-"`
}

// Machine configures how each machine is constructed and resumed.
type Machine struct {
	// Maximum instructions per resumption, or zero for no limit.
	MaxSteps uint `toml:"max-steps"`
	// Either "wrap" or "trap".
	Overflow string `toml:"overflow"`
	Trace    bool   `toml:"trace"`
}

// Network configures the network simulation.
type Network struct {
	Nodes uint  `toml:"nodes"`
	Nat   int64 `toml:"nat"`
}

// Output configures how results are presented.
type Output struct {
	// One of "auto", "always" or "never".
	Color string `toml:"color"`
}

// Default returns the configuration used in the absence of any file.
func Default() *Config {
	return &Config{
		Machine: Machine{MaxSteps: 0, Overflow: "wrap"},
		Network: Network{Nodes: 50, Nat: 255},
		Output:  Output{Color: "auto"},
	}
}

// Load parses a given configuration file.  Values not given in the file keep
// their defaults.
func Load(path string) (*Config, error) {
	var cfg = Default()
	//
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	//
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	//
	cfg.Path = path
	//
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	//
	return cfg, nil
}

// FindAndLoad walks up from startDir looking for an intcode.toml file, and
// loads the first one found.  If there is none, the default configuration is
// returned.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}
	//
	for {
		path := filepath.Join(dir, Filename)
		//
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		//
		dir = parent
	}
}

// Validate checks that every enumerated value is recognised.
func (p *Config) Validate() error {
	if _, err := ParseOverflow(p.Machine.Overflow); err != nil {
		return err
	}
	//
	switch p.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q (expected auto, always or never)", ErrInvalid, p.Output.Color)
	}
	//
	if p.Network.Nodes == 0 {
		return fmt.Errorf("%w: network requires at least one node", ErrInvalid)
	}
	//
	return nil
}

// Options returns the machine options corresponding to this configuration.
func (p *Config) Options() []intcode.Option {
	var opts []intcode.Option
	// Validated on load
	if policy, err := ParseOverflow(p.Machine.Overflow); err == nil {
		opts = append(opts, intcode.WithOverflow(policy))
	}
	//
	if p.Machine.Trace {
		opts = append(opts, intcode.WithTrace())
	}
	//
	return opts
}

// ParseOverflow converts the name of an overflow policy.
func ParseOverflow(name string) (intcode.OverflowPolicy, error) {
	switch name {
	case "wrap", "":
		return intcode.Wrap, nil
	case "trap":
		return intcode.Trap, nil
	default:
		return intcode.Wrap, fmt.Errorf("%w: overflow %q (expected wrap or trap)", ErrInvalid, name)
	}
}
