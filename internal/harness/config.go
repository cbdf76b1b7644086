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

package harness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-highway/matvecbench/matvec"
	"github.com/go-highway/matvecbench/timer"
)

// DisplayLimit is the largest dimension Demo prints as a grid.
const DisplayLimit = 20

var (
	// ErrMissingArgument is returned when the command line has fewer
	// positional tokens than the selected mode needs.
	ErrMissingArgument = errors.New("not enough arguments")

	// ErrInvalidArgument is returned for tokens that are present but unusable.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Mode is the single thing a run does. It is chosen once from the command
// line and never changes during the run.
type Mode int

const (
	// Demo multiplies once and prints operands, result and sums.
	Demo Mode = iota

	// BenchmarkPretty times repeated multiplications and prints a sentence.
	BenchmarkPretty

	// BenchmarkCSV times repeated multiplications and prints one CSV line.
	BenchmarkCSV
)

// String returns a short name for the mode.
func (m Mode) String() string {
	switch m {
	case Demo:
		return "demo"
	case BenchmarkPretty:
		return "benchmark"
	case BenchmarkCSV:
		return "csv"
	default:
		return "unknown"
	}
}

var positionalNames = []string{"rows", "columns", "iterations"}

// Required returns the number of positional arguments the mode needs.
func (m Mode) Required() int {
	if m == Demo {
		return 2
	}
	return 3
}

// SelectMode maps the -b and -csv switches to a mode. -csv is only
// meaningful after -b.
func SelectMode(benchmark, csv bool) (Mode, error) {
	switch {
	case benchmark && csv:
		return BenchmarkCSV, nil
	case benchmark:
		return BenchmarkPretty, nil
	case csv:
		return 0, fmt.Errorf("%w: -csv requires -b", ErrInvalidArgument)
	default:
		return Demo, nil
	}
}

// Config is the immutable description of one run.
type Config struct {
	Rows       int
	Columns    int
	Iterations int
	Mode       Mode

	// Threads caps the kernel's workers; 0 means GOMAXPROCS.
	Threads   int
	Strategy  matvec.Strategy
	Clock     timer.Kind
	Reference bool
}

// ParseArgs builds a Config for mode from positional tokens in the order
// rows, columns[, iterations]. Extra tokens are ignored.
func ParseArgs(mode Mode, args []string) (Config, error) {
	need := mode.Required()
	if len(args) < need {
		return Config{}, fmt.Errorf("%w: %s mode needs %s, got %d",
			ErrMissingArgument, mode, strings.Join(positionalNames[:need], " "), len(args))
	}

	values := make([]int, need)
	for i := range need {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidArgument, positionalNames[i], args[i])
		}
		values[i] = n
	}

	cfg := Config{Rows: values[0], Columns: values[1], Mode: mode}
	if need > 2 {
		cfg.Iterations = values[2]
	}
	return cfg, cfg.Validate()
}

// Validate reports the first unusable field of c.
func (c Config) Validate() error {
	switch {
	case c.Mode < Demo || c.Mode > BenchmarkCSV:
		return fmt.Errorf("%w: mode %d", ErrInvalidArgument, int(c.Mode))
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidArgument, c.Rows)
	case c.Columns <= 0:
		return fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidArgument, c.Columns)
	case c.Mode != Demo && c.Iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidArgument, c.Iterations)
	case c.Threads < 0:
		return fmt.Errorf("%w: threads must not be negative, got %d", ErrInvalidArgument, c.Threads)
	}
	return nil
}
