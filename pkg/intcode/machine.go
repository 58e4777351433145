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
	"math"

	"github.com/consensys/go-intcode/pkg/util/collection/queue"
	log "github.com/sirupsen/logrus"
)

// Status describes why a machine returned control to its host.
type Status uint8

const (
	// Running indicates that a bounded execution exhausted its step budget
	// before the machine needed to suspend.  Only Execute returns this.
	Running Status = iota
	// Halted indicates the halt instruction was reached.  This is terminal.
	Halted
	// NeedsInput indicates an input instruction was reached whilst the input
	// queue was empty.  The instruction pointer remains on that instruction.
	NeedsInput
	// ProducedOutput indicates exactly one value was appended to the output
	// queue.
	ProducedOutput
	// Faulted indicates the machine stopped on a fatal error.
	Faulted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case NeedsInput:
		return "needs input"
	case ProducedOutput:
		return "produced output"
	default:
		return "faulted"
	}
}

// OverflowPolicy determines how the machine treats signed 64bit overflow
// arising from arithmetic.
type OverflowPolicy uint8

const (
	// Wrap uses two's complement wraparound.
	Wrap OverflowPolicy = iota
	// Trap stops the machine with ErrArithmeticOverflow.
	Trap
)

// Option configures a machine on construction.
type Option func(*Machine)

// WithOverflow sets the arithmetic overflow policy (Wrap by default).
func WithOverflow(policy OverflowPolicy) Option {
	return func(m *Machine) {
		m.overflow = policy
	}
}

// WithTrace logs every instruction executed at trace level.
func WithTrace() Option {
	return func(m *Machine) {
		m.trace = true
	}
}

// Machine is an Intcode interpreter.  A machine executes instructions until it
// must return control to its host, either because it halted, because it needs
// input which is not yet available or because it produced an output.  The
// host is responsible for feeding inputs, consuming outputs and deciding
// whether to continue.  Machines share nothing, hence clones evolve
// independently.
type Machine struct {
	memory *Memory
	// Instruction pointer
	ip int64
	// Relative base register
	base   int64
	input  *queue.Queue[int64]
	output *queue.Queue[int64]
	// Number of instructions executed so far
	steps uint64
	// Set once the halt instruction is reached
	halted bool
	// Sticky fatal error
	err      error
	overflow OverflowPolicy
	trace    bool
}

// New constructs a machine whose memory holds the given program image at
// addresses 0..n-1.  The image is copied.
func New(program []int64, opts ...Option) *Machine {
	var m = &Machine{
		memory: NewMemory(program),
		input:  queue.NewQueue[int64](),
		output: queue.NewQueue[int64](),
	}
	//
	for _, opt := range opts {
		opt(m)
	}
	//
	return m
}

// Push zero or more values onto the back of the input queue.
func (p *Machine) Push(values ...int64) {
	p.input.PushAll(values)
}

// Pop the oldest value from the output queue, returning false if there is
// none.
func (p *Machine) Pop() (int64, bool) {
	if p.output.IsEmpty() {
		return 0, false
	}
	//
	return p.output.Pop(), true
}

// Drain removes and returns all values currently in the output queue.
func (p *Machine) Drain() []int64 {
	var values = p.output.Items()
	//
	p.output.Clear()
	//
	return values
}

// NumInputs returns the number of values waiting in the input queue.
func (p *Machine) NumInputs() uint {
	return p.input.Len()
}

// NumOutputs returns the number of values waiting in the output queue.
func (p *Machine) NumOutputs() uint {
	return p.output.Len()
}

// Peek reads the word at a given address.
func (p *Machine) Peek(address int64) int64 {
	return p.memory.Read(address)
}

// Poke writes a word to a given address.  This is intended for patching a
// program before (or between) runs.
func (p *Machine) Poke(address int64, value int64) {
	p.memory.Write(address, value)
}

// Memory returns the machine's address space.
func (p *Machine) Memory() *Memory {
	return p.memory
}

// IP returns the current instruction pointer.
func (p *Machine) IP() int64 {
	return p.ip
}

// RelativeBase returns the current relative base register.
func (p *Machine) RelativeBase() int64 {
	return p.base
}

// Steps returns the number of instructions executed so far.
func (p *Machine) Steps() uint64 {
	return p.steps
}

// Halted determines whether this machine has reached the halt instruction.
func (p *Machine) Halted() bool {
	return p.halted
}

// Err returns the fault which stopped this machine, or nil.
func (p *Machine) Err() error {
	return p.err
}

// Clone returns a machine with identical state which shares nothing with this
// machine.
func (p *Machine) Clone() *Machine {
	var m = *p
	//
	m.memory = p.memory.Clone()
	m.input = p.input.Clone()
	m.output = p.output.Clone()
	//
	return &m
}

// Run executes the machine until it halts, needs input or produces output.
// A subsequent call resumes exactly where execution stopped.  If the machine
// faults, the fault is returned from this and every later call.
func (p *Machine) Run() (Status, error) {
	status, _, err := p.Execute(math.MaxUint)
	//
	return status, err
}

// Execute the machine for at most the given number of steps, returning the
// reason for stopping, the number of steps actually executed and an error (if
// execution faulted).  If the budget is exhausted before the machine needs to
// suspend, Running is returned and execution can be continued later.
func (p *Machine) Execute(steps uint) (Status, uint, error) {
	var (
		nsteps uint
		trace  = p.trace && log.IsLevelEnabled(log.TraceLevel)
	)
	//
	if p.err != nil {
		return Faulted, 0, p.err
	} else if p.halted {
		return Halted, 0, nil
	}
	//
	for nsteps < steps {
		status, err := p.step(trace)
		//
		if err != nil {
			p.err = err
			return Faulted, nsteps, err
		} else if status == NeedsInput {
			// Input instruction not executed
			return status, nsteps, nil
		}
		//
		nsteps++
		p.steps++
		//
		if status != Running {
			return status, nsteps, nil
		}
	}
	//
	return Running, nsteps, nil
}

// Decode and execute the instruction at the instruction pointer.
func (p *Machine) step(trace bool) (Status, error) {
	var (
		ip   = p.ip
		word = p.memory.Read(ip)
	)
	//
	insn, err := Decode(ip, word)
	if err != nil {
		return Faulted, err
	}
	//
	if trace {
		log.Tracef("%d: %s (base %d)", ip, insn.Format(p.params(insn)), p.base)
	}
	//
	switch insn.Opcode {
	case Add, Mul:
		a, b := p.read(insn, 1), p.read(insn, 2)
		r, ok := add(a, b)
		//
		if insn.Opcode == Mul {
			r, ok = mul(a, b)
		}
		//
		if !ok && p.overflow == Trap {
			return Faulted, &Fault{Kind: ArithmeticOverflow, Address: ip, Word: word}
		}
		//
		p.write(insn, 3, r)
	case Input:
		// Resolve target before consuming anything
		addr := p.address(insn, 1)
		//
		if p.input.IsEmpty() {
			return NeedsInput, nil
		}
		//
		p.memory.Write(addr, p.input.Pop())
	case Output:
		p.output.Push(p.read(insn, 1))
		p.ip += insn.Width()
		//
		return ProducedOutput, nil
	case JumpIfTrue, JumpIfFalse:
		var (
			a = p.read(insn, 1)
			b = p.read(insn, 2)
		)
		//
		if (a != 0) == (insn.Opcode == JumpIfTrue) {
			p.ip = b
			return Running, nil
		}
	case LessThan:
		p.write(insn, 3, boolWord(p.read(insn, 1) < p.read(insn, 2)))
	case Equals:
		p.write(insn, 3, boolWord(p.read(insn, 1) == p.read(insn, 2)))
	case AdjustBase:
		r, ok := add(p.base, p.read(insn, 1))
		//
		if !ok && p.overflow == Trap {
			return Faulted, &Fault{Kind: ArithmeticOverflow, Address: ip, Word: word}
		}
		//
		p.base = r
	case Halt:
		p.halted = true
		return Halted, nil
	}
	// Sequential advance
	p.ip += insn.Width()
	//
	return Running, nil
}

// Raw word of the ith (one-based) parameter of the current instruction.
func (p *Machine) raw(i int64) int64 {
	return p.memory.Read(p.ip + i)
}

func (p *Machine) read(insn Instruction, i uint) int64 {
	return ReadParam(p.memory, p.base, p.raw(int64(i)), insn.Modes[i-1])
}

func (p *Machine) address(insn Instruction, i uint) int64 {
	return WriteAddress(p.base, p.raw(int64(i)), insn.Modes[i-1])
}

func (p *Machine) write(insn Instruction, i uint, value int64) {
	p.memory.Write(p.address(insn, i), value)
}

// Raw parameter words of the current instruction, for tracing.
func (p *Machine) params(insn Instruction) []int64 {
	var words = make([]int64, insn.Arity())
	//
	for i := range words {
		words[i] = p.raw(int64(i) + 1)
	}
	//
	return words
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	//
	return 0
}

// Two's complement addition, reporting whether the result is exact.
func add(a, b int64) (int64, bool) {
	var r = a + b
	// Overflow iff both operands share a sign which the result does not
	return r, (a >= 0) != (b >= 0) || (r >= 0) == (a >= 0)
}

// Two's complement multiplication, reporting whether the result is exact.
func mul(a, b int64) (int64, bool) {
	var r = a * b
	//
	if a == 0 || b == 0 {
		return 0, true
	} else if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return r, false
	}
	//
	return r, r/b == a
}
