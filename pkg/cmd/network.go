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

var networkCmd = &cobra.Command{
	Use:   "network [flags] program.txt",
	Short: "Run a network of copies of a program exchanging packets.",
	Long: `Run a network of copies of a program, each primed with its address, which
exchange packets of the form (destination, x, y).  Packets sent to the NAT are
held, and the last one is sent to address 0 whenever the network is idle.

The stop condition is either "first" (the first packet sent to the NAT) or
"repeat" (the first NAT delivery repeating the previous y value).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg      = LoadConfig(cmd)
			program  = ReadProgramFile(args[0])
			maxTicks = GetUint(cmd, "max-ticks")
			stop, ok = stopCondition(GetString(cmd, "stop"), cfg.Network.Nat)
		)
		//
		if !ok {
			fmt.Println("invalid stop condition (expected first or repeat)")
			os.Exit(2)
		}
		//
		network := host.NewNetwork(program, cfg.Network.Nodes, cfg.Network.Nat, cfg.Options()...)
		network.MaxSteps = cfg.Machine.MaxSteps
		//
		event, err := network.Run(maxTicks, stop)
		if err != nil {
			Fail(err)
		}
		//
		fmt.Printf("%d %d\n", event.Packet.X, event.Packet.Y)
	},
}

// Construct the stop condition of a given name.
func stopCondition(name string, nat int64) (func(host.Event) bool, bool) {
	switch name {
	case "first":
		return func(ev host.Event) bool {
			return ev.Kind == host.PacketSent && ev.Packet.Destination == nat
		}, true
	case "repeat":
		var (
			last    int64
			started bool
		)
		//
		return func(ev host.Event) bool {
			if ev.Kind != host.NatDelivered {
				return false
			} else if started && ev.Packet.Y == last {
				return true
			}
			//
			last, started = ev.Packet.Y, true
			//
			return false
		}, true
	default:
		return nil, false
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(networkCmd)
	addMachineFlags(networkCmd)
	networkCmd.Flags().Uint("nodes", 50, "number of nodes in the network")
	networkCmd.Flags().Int64("nat", host.DefaultNat, "address of the NAT")
	networkCmd.Flags().String("stop", "first", "stop condition (first or repeat)")
	networkCmd.Flags().Uint("max-ticks", 100_000, "limit on network ticks (0 for no limit)")
}
