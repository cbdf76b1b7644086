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

// Package harness runs one matvecbench mode end to end: it allocates the
// operands, drives the kernel, times it and writes the report.
package harness

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/go-highway/matvecbench/internal/cpuinfo"
	"github.com/go-highway/matvecbench/matvec"
	"github.com/go-highway/matvecbench/timer"
)

// Option customizes Run.
type Option func(*options)

type options struct {
	clock timer.Clock
}

// WithClock replaces the clock selected by Config.Clock.
func WithClock(c timer.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Run executes cfg and writes its report to out. Diagnostics go to log.
func Run(cfg Config, out io.Writer, log logrus.FieldLogger, opts ...Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		clock, err := timer.New(cfg.Clock)
		if err != nil {
			return err
		}
		o.clock = clock
	}

	m := matvec.NewHilbert(cfg.Rows, cfg.Columns)
	v := matvec.NewVector(cfg.Rows, 1)
	result := make([]float32, cfg.Rows)

	k := matvec.NewKernel(cfg.Strategy, cfg.Threads)
	defer k.Close()

	log.WithFields(logrus.Fields{
		"mode":       cfg.Mode,
		"rows":       cfg.Rows,
		"columns":    cfg.Columns,
		"iterations": cfg.Iterations,
		"strategy":   k.Strategy(),
		"workers":    k.Workers(),
		"clock":      cfg.Clock,
		"cpu":        cpuinfo.Enabled(),
	}).Debug("starting run")

	w := bufio.NewWriter(out)
	var err error
	switch cfg.Mode {
	case Demo:
		err = runDemo(w, log, k, m, v, result)
	default:
		err = runBenchmark(w, log, cfg, o.clock, k, m, v, result)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if cfg.Reference {
		checkReference(log, k, m, result)
	}
	return nil
}

func runDemo(w *bufio.Writer, log logrus.FieldLogger, k *matvec.Kernel, m *matvec.Dense, v, result []float32) error {
	threads := k.Multiply(m, v, result)
	log.WithField("threads", threads).Debug("multiplied")

	if m.Rows <= DisplayLimit && m.Cols <= DisplayLimit {
		grids := []struct {
			label      string
			data       []float32
			rows, cols int
		}{
			{"Matrix:", m.Data, m.Rows, m.Cols},
			{"Vector:", v, m.Rows, 1},
			{"Result:", result, m.Rows, 1},
		}
		for _, g := range grids {
			fmt.Fprintln(w, g.label)
			if err := matvec.Render(w, g.data, g.rows, g.cols); err != nil {
				return fmt.Errorf("rendering %s: %w", g.label, err)
			}
		}
	} else {
		fmt.Fprintf(w, "Matrix too large to display (limit %d x %d)\n", DisplayLimit, DisplayLimit)
	}

	fmt.Fprintf(w, "Sum\n%.4f\n", matvec.ElementSum(result, m.Rows, 1))
	fmt.Fprintf(w, "Expected sum\n%.4f\n", matvec.ElementSum(m.Data, m.Rows, m.Cols))
	return nil
}

func runBenchmark(w *bufio.Writer, log logrus.FieldLogger, cfg Config, clock timer.Clock, k *matvec.Kernel, m *matvec.Dense, v, result []float32) error {
	var threads int
	ms, err := timer.Measure(clock, cfg.Iterations, func() {
		threads = k.Multiply(m, v, result)
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"threads": threads, "ms": ms}).Debug("benchmark finished")

	if cfg.Mode == BenchmarkCSV {
		fmt.Fprintf(w, "%d, %d, %d, %d, %f\n", threads, cfg.Iterations, cfg.Rows, cfg.Columns, ms)
	} else {
		fmt.Fprintf(w, "%d iterations of [%d x %d] * [%d] took %f ms on %d threads\n",
			cfg.Iterations, cfg.Rows, cfg.Columns, cfg.Rows, ms, threads)
	}
	return nil
}
