// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timer measures elapsed time across batches of kernel invocations.
//
// Timestamps are (seconds, nanoseconds) pairs as returned by clock_gettime,
// and Elapsed subtracts them with an explicit sub-second borrow. Two clock
// kinds are available: Wall, a monotonic wall clock that reflects parallel
// speedup, and CPU, the process CPU time summed over all threads.
package timer

import (
	"errors"
	"fmt"
	"strings"
)

// NanosPerSecond is the number of nanoseconds in one second.
const NanosPerSecond = 1_000_000_000

// ErrUnsupportedClock is returned when the requested clock kind is not
// available on this platform.
var ErrUnsupportedClock = errors.New("clock not supported on this platform")

// Timestamp is a point in time as whole seconds plus nanoseconds.
type Timestamp struct {
	Sec  int64
	Nsec int64
}

// Elapsed returns end - start in nanoseconds. When end's sub-second part is
// smaller than start's, one second is borrowed before the seconds difference
// is added.
func Elapsed(start, end Timestamp) int64 {
	sec := end.Sec - start.Sec
	nsec := end.Nsec - start.Nsec
	if end.Nsec < start.Nsec {
		sec--
		nsec += NanosPerSecond
	}
	return sec*NanosPerSecond + nsec
}

// Milliseconds converts nanoseconds to fractional milliseconds.
func Milliseconds(ns int64) float64 {
	return float64(ns) / 1e6
}

// Clock reads the current time of one clock source.
type Clock interface {
	Now() (Timestamp, error)
}

// Kind selects a clock source.
type Kind int

const (
	// Wall is elapsed real time from a monotonic source.
	Wall Kind = iota

	// CPU is the CPU time consumed by the whole process.
	CPU
)

// String returns the flag spelling of the kind.
func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case CPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wall", "":
		return Wall, nil
	case "cpu":
		return CPU, nil
	default:
		return 0, fmt.Errorf("unknown clock %q (want wall or cpu)", s)
	}
}

// New returns the clock for kind.
func New(kind Kind) (Clock, error) {
	switch kind {
	case Wall:
		return wallClock{}, nil
	case CPU:
		if !cpuClockSupported {
			return nil, fmt.Errorf("%s clock: %w", kind, ErrUnsupportedClock)
		}
		return cpuClock{}, nil
	default:
		return nil, fmt.Errorf("clock kind %d: %w", int(kind), ErrUnsupportedClock)
	}
}

// Measure reads clock, calls fn iterations times back-to-back, reads clock
// again and returns the elapsed time in milliseconds.
func Measure(clock Clock, iterations int, fn func()) (float64, error) {
	start, err := clock.Now()
	if err != nil {
		return 0, fmt.Errorf("reading start time: %w", err)
	}
	for range iterations {
		fn()
	}
	end, err := clock.Now()
	if err != nil {
		return 0, fmt.Errorf("reading end time: %w", err)
	}
	return Milliseconds(Elapsed(start, end)), nil
}
