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

package matvec

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/go-highway/matvecbench/workerpool"
)

// Strategy selects how Kernel distributes rows across goroutines.
type Strategy int

const (
	// StrategyPool dispatches row blocks to a persistent worker pool.
	StrategyPool Strategy = iota

	// StrategySpawn forks one goroutine per row block on every call and joins
	// them before returning.
	StrategySpawn

	// StrategySerial computes all rows on the calling goroutine.
	StrategySerial
)

// String returns the flag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyPool:
		return "pool"
	case StrategySpawn:
		return "spawn"
	case StrategySerial:
		return "serial"
	default:
		return "unknown"
	}
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pool", "":
		return StrategyPool, nil
	case "spawn":
		return StrategySpawn, nil
	case "serial":
		return StrategySerial, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q (want pool, spawn or serial)", s)
	}
}

// Kernel multiplies a Dense matrix by a vector using a fixed strategy and
// worker count. A Kernel is safe for sequential reuse; Close releases the
// pool of a StrategyPool kernel.
type Kernel struct {
	strategy Strategy
	workers  int
	pool     *workerpool.Pool
}

// NewKernel creates a kernel. If workers <= 0, uses GOMAXPROCS.
// StrategySerial always uses one worker; unknown strategies fall back to
// StrategyPool.
func NewKernel(strategy Strategy, workers int) *Kernel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	k := &Kernel{strategy: strategy, workers: workers}
	switch strategy {
	case StrategySerial:
		k.workers = 1
	case StrategySpawn:
	default:
		k.strategy = StrategyPool
		k.pool = workerpool.New(workers)
	}
	return k
}

// Strategy returns the kernel's execution strategy.
func (k *Kernel) Strategy() Strategy {
	return k.strategy
}

// Workers returns the maximum number of workers a call may use.
func (k *Kernel) Workers() int {
	return k.workers
}

// Close releases the worker pool, if any. Calling Close multiple times is safe.
func (k *Kernel) Close() {
	if k.pool != nil {
		k.pool.Close()
	}
}

// Multiply computes out[r] = sum_c v[r] * m.At(r, c) for every row r and
// returns the number of workers that took part in the call.
//
// Rows are split into contiguous blocks by workerpool.Partition; each row is
// reduced in ascending column order by the worker owning it, so the result
// does not depend on the strategy or worker count.
//
// Panics if:
//   - len(m.Data) < m.Rows * m.Cols
//   - len(v) < m.Rows
//   - len(out) < m.Rows
func (k *Kernel) Multiply(m *Dense, v, out []float32) int {
	if len(m.Data) < m.Rows*m.Cols {
		panic("matrix slice too small")
	}
	if len(v) < m.Rows {
		panic("vector slice too small")
	}
	if len(out) < m.Rows {
		panic("result slice too small")
	}
	if m.Rows == 0 {
		return 0
	}

	rowFn := func(start, end int) {
		multiplyRows(m, v, out, start, end)
	}

	switch k.strategy {
	case StrategySerial:
		rowFn(0, m.Rows)
		return 1
	case StrategySpawn:
		return spawnRows(m.Rows, k.workers, rowFn)
	default:
		return k.pool.ParallelFor(m.Rows, rowFn)
	}
}

// spawnRows forks one task per block and waits for all of them.
func spawnRows(rows, workers int, fn func(start, end int)) int {
	blocks := workerpool.Partition(rows, workers)

	var g errgroup.Group
	for _, b := range blocks {
		g.Go(func() error {
			fn(b.Start, b.End)
			return nil
		})
	}
	// Row tasks cannot fail; Wait is the join barrier.
	_ = g.Wait()

	return len(blocks)
}

func multiplyRows(m *Dense, v, out []float32, start, end int) {
	rows, cols, data := m.Rows, m.Cols, m.Data
	for r := start; r < end; r++ {
		scale := v[r]
		var sum float32
		for c := range cols {
			// The conversion rounds the product before the add, which keeps
			// the compiler from fusing it into an FMA.
			sum += float32(scale * data[Index(r, c, rows)])
		}
		out[r] = sum
	}
}
