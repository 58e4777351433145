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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats provides a snapshot of time and memory allocation at a given point
// in time, such that the cost of executing a machine can be reported.
type PerfStats struct {
	// Starting time
	startTime time.Time
	// Starting total memory allocation
	startMem uint64
	// Starting number of gc events
	startGc uint32
}

// PerfReport summarises the difference between two snapshots.
type PerfReport struct {
	// Elapsed wall-clock time.
	Elapsed time.Duration
	// Bytes allocated in between.
	Allocated uint64
	// Garbage collection cycles in between.
	GcEvents uint32
	// Instructions executed in between.
	Steps uint64
}

// NewPerfStats creates a new snapshot of the current amount of memory allocated.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats

	startTime := time.Now()

	runtime.ReadMemStats(&m)

	return &PerfStats{startTime, m.TotalAlloc, m.NumGC}
}

// Report determines the difference between the state now and as it was when
// the PerfStats object was created, given the number of instructions executed.
func (p *PerfStats) Report(steps uint64) PerfReport {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return PerfReport{
		Elapsed:   time.Since(p.startTime),
		Allocated: m.TotalAlloc - p.startMem,
		GcEvents:  m.NumGC - p.startGc,
		Steps:     steps,
	}
}

// Log logs the difference between the state now and as it was when the
// PerfStats object was created.
func (p *PerfStats) Log(prefix string, steps uint64) {
	r := p.Report(steps)
	//
	log.Debugf("%s took %0.3fs executing %d instructions (%0.0f/s) using %v Kb (%v GC events)",
		prefix, r.Elapsed.Seconds(), r.Steps, r.Rate(), r.Allocated/1024, r.GcEvents)
}

// Rate returns the number of instructions executed per second.
func (p PerfReport) Rate() float64 {
	secs := p.Elapsed.Seconds()
	//
	if secs == 0 {
		return 0
	}
	//
	return float64(p.Steps) / secs
}
