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
	"errors"
	"fmt"

	"github.com/consensys/go-intcode/pkg/intcode"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrMalformedPacket indicates a node which stopped emitting part way
	// through a packet.
	ErrMalformedPacket = errors.New("malformed packet")
	// ErrUnknownAddress indicates a packet sent to an address which is neither
	// a node nor the NAT.
	ErrUnknownAddress = errors.New("unknown address")
	// ErrTickLimit indicates the network ran for the permitted number of ticks
	// without the stop condition being met.
	ErrTickLimit = errors.New("tick limit reached")
)

// DefaultNat is the conventional address of the NAT.
const DefaultNat = 255

// Idle is the value a node receives when it asks for input and no packet is
// waiting.
const Idle = -1

// Packet is a single message routed through the network.  On the wire, a
// packet is emitted as three consecutive outputs: destination, X then Y.  The
// receiving node is given X then Y.
type Packet struct {
	Source      int64
	Destination int64
	X           int64
	Y           int64
}

// EventKind distinguishes the events observed on a network.
type EventKind uint8

const (
	// PacketSent is reported for every packet emitted by a node.
	PacketSent EventKind = iota
	// NatDelivered is reported when the NAT wakes an idle network by resending
	// its last packet to node 0.
	NatDelivered
)

// Event describes something which happened on the network during a tick.
type Event struct {
	Kind   EventKind
	Tick   uint
	Packet Packet
}

// Network simulates a fleet of machines exchanging packets.  Each node runs
// its own copy of a program and is given its address as its first input.
// Nodes are scheduled round-robin, one resumption per node per tick.  Packets
// sent to the NAT address are held by the NAT, which keeps only the latest
// one.  When an entire tick passes with every node waiting for input and no
// packet being sent, the network is idle and the NAT resends its packet to
// node 0.  Halted nodes are considered idle.
type Network struct {
	Driver
	nodes []*intcode.Machine
	nat   int64
	// Latest packet held by the NAT, if any.
	held *Packet
	tick uint
}

// NewNetwork constructs a network of n nodes running a given program, with the
// NAT at a given address.
func NewNetwork(program []int64, n uint, nat int64, opts ...intcode.Option) *Network {
	var (
		nodes = make([]*intcode.Machine, n)
		proto = intcode.New(program, opts...)
	)
	//
	for i := range nodes {
		nodes[i] = proto.Clone()
		nodes[i].Push(int64(i))
	}
	//
	return &Network{nodes: nodes, nat: nat}
}

// Node returns the machine with a given address.
func (p *Network) Node(address uint) *intcode.Machine {
	return p.nodes[address]
}

// Size returns the number of nodes in the network.
func (p *Network) Size() uint {
	return uint(len(p.nodes))
}

// Ticks returns the number of ticks completed.
func (p *Network) Ticks() uint {
	return p.tick
}

// Held returns the packet currently held by the NAT, if any.
func (p *Network) Held() (Packet, bool) {
	if p.held == nil {
		return Packet{}, false
	}
	//
	return *p.held, true
}

// Tick resumes every node once, in address order, routing any packets sent.
// The events arising are returned in the order they happened.
func (p *Network) Tick() ([]Event, error) {
	var (
		events []Event
		idle   = true
	)
	//
	p.tick++
	//
	for i, node := range p.nodes {
		status, err := p.Resume(node)
		//
		if err != nil {
			return events, fmt.Errorf("node %d: %w", i, err)
		}
		//
		switch status {
		case intcode.NeedsInput:
			node.Push(Idle)
		case intcode.ProducedOutput:
			packet, err := p.receive(int64(i), node)
			if err != nil {
				return events, err
			}
			//
			if err = p.route(packet); err != nil {
				return events, err
			}
			//
			idle = false
			events = append(events, Event{PacketSent, p.tick, packet})
		}
	}
	//
	if idle && p.held != nil {
		packet := *p.held
		packet.Destination = 0
		//
		log.Debugf("network idle at tick %d, NAT sends (%d, %d) to node 0", p.tick, packet.X, packet.Y)
		//
		p.nodes[0].Push(packet.X, packet.Y)
		events = append(events, Event{NatDelivered, p.tick, packet})
	}
	//
	return events, nil
}

// Run the network until an event satisfies the stop condition, which is then
// returned.  A tick limit of zero means no limit.
func (p *Network) Run(maxTicks uint, stop func(Event) bool) (Event, error) {
	for maxTicks == 0 || p.tick < maxTicks {
		events, err := p.Tick()
		//
		if err != nil {
			return Event{}, err
		}
		//
		for _, ev := range events {
			if stop(ev) {
				return ev, nil
			}
		}
	}
	//
	return Event{}, fmt.Errorf("%w (%d ticks)", ErrTickLimit, maxTicks)
}

// Complete a packet whose destination a node has just emitted.
func (p *Network) receive(source int64, node *intcode.Machine) (Packet, error) {
	var words [3]int64
	//
	words[0], _ = node.Pop()
	//
	for i := 1; i < len(words); i++ {
		status, err := p.Resume(node)
		//
		if err != nil {
			return Packet{}, fmt.Errorf("node %d: %w", source, err)
		} else if status != intcode.ProducedOutput {
			return Packet{}, fmt.Errorf("node %d: %w (%s after %d words)", source, ErrMalformedPacket, status, i)
		}
		//
		words[i], _ = node.Pop()
	}
	//
	return Packet{source, words[0], words[1], words[2]}, nil
}

func (p *Network) route(packet Packet) error {
	switch {
	case packet.Destination == p.nat:
		log.Debugf("node %d sends (%d, %d) to NAT", packet.Source, packet.X, packet.Y)
		//
		p.held = &packet
	case packet.Destination >= 0 && packet.Destination < int64(len(p.nodes)):
		log.Debugf("node %d sends (%d, %d) to node %d", packet.Source, packet.X, packet.Y, packet.Destination)
		//
		p.nodes[packet.Destination].Push(packet.X, packet.Y)
	default:
		return fmt.Errorf("node %d: %w %d", packet.Source, ErrUnknownAddress, packet.Destination)
	}
	//
	return nil
}
