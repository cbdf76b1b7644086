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
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Reference computes the textbook product out = M * x, with x of length
// m.Cols, through gonum's single-precision BLAS.
//
// The column-strided buffer of m is read as a row-major m.Cols x m.Rows
// matrix (the transpose of M), so the product is a transposed Gemv.
//
// Panics if:
//   - len(m.Data) < m.Rows * m.Cols
//   - len(x) < m.Cols
//   - len(out) < m.Rows
func Reference(m *Dense, x, out []float32) {
	if len(m.Data) < m.Rows*m.Cols {
		panic("matrix slice too small")
	}
	if len(x) < m.Cols {
		panic("vector slice too small")
	}
	if len(out) < m.Rows {
		panic("result slice too small")
	}
	if m.Rows == 0 || m.Cols == 0 {
		clear(out[:m.Rows])
		return
	}

	transposed := blas32.General{
		Rows:   m.Cols,
		Cols:   m.Rows,
		Data:   m.Data[:m.Rows*m.Cols],
		Stride: m.Rows,
	}
	blas32.Gemv(blas.Trans, 1, transposed,
		blas32.Vector{N: m.Cols, Data: x, Inc: 1},
		0,
		blas32.Vector{N: m.Rows, Data: out, Inc: 1})
}

// MaxAbsDiff returns the largest |a[i]-b[i]| over the common prefix of a and b.
func MaxAbsDiff(a, b []float32) float32 {
	var worst float32
	for i := range min(len(a), len(b)) {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}
