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

// Package matvec provides the dense matrix-vector kernel used by the
// matvecbench harness, together with the Hilbert/constant initializers and
// the grid presenter that print its operands.
//
// # Layout
//
// A Dense matrix is a flat []float32 of Rows*Cols elements. Every reader and
// writer in this package addresses it through Index:
//
//	Index(row, col, rows) = col*rows + row
//
// so consecutive elements walk down a column. The layout is consistent
// across initialization, printing and multiplication.
//
// # Kernel semantics
//
// Kernel.Multiply computes, for every row r,
//
//	out[r] = sum over c of v[r] * M(r, c)
//
// The multiplier is indexed by the row, not the column, and v has Rows
// elements. This is not the textbook product M*v. With the all-ones vector
// used by the harness the two agree; for any non-constant vector they do not.
// Reference computes the textbook product through gonum BLAS so the
// difference can be measured rather than hidden.
//
// # Execution strategies
//
//   - StrategyPool: persistent workerpool.Pool, contiguous row blocks.
//   - StrategySpawn: one goroutine per row block per call (errgroup fork-join).
//   - StrategySerial: a single goroutine.
//
// All strategies use the same static partition and produce bit-identical
// output, since each row is reduced sequentially in column order.
//
// # Example Usage
//
//	m := matvec.NewHilbert(3, 3)
//	v := matvec.NewVector(3, 1)
//	out := make([]float32, 3)
//
//	k := matvec.NewKernel(matvec.StrategyPool, 0)
//	defer k.Close()
//	threads := k.Multiply(m, v, out)
//	// out = [1.833, 1.083, 0.783], threads = min(GOMAXPROCS, 3)
package matvec
