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

// FillHilbert sets data[Index(r, c, rows)] = 1/(r+c+1) for every r in
// [0, rows) and c in [0, cols). The +1 makes the zero-based coordinates match
// the classical 1-indexed Hilbert definition 1/(i+j-1).
//
// The quotient is computed in float64 and rounded once to float32.
func FillHilbert(data []float32, rows, cols int) {
	if len(data) < rows*cols {
		panic("matrix slice too small")
	}
	for c := range cols {
		for r := range rows {
			data[Index(r, c, rows)] = float32(1.0 / float64(r+c+1))
		}
	}
}

// FillConstant sets every element of a logical rows x cols buffer to value.
// A vector is filled with cols == 1.
func FillConstant(data []float32, rows, cols int, value float32) {
	if len(data) < rows*cols {
		panic("matrix slice too small")
	}
	for c := range cols {
		for r := range rows {
			data[Index(r, c, rows)] = value
		}
	}
}

// NewHilbert returns a rows x cols Hilbert matrix.
func NewHilbert(rows, cols int) *Dense {
	m := NewDense(rows, cols)
	FillHilbert(m.Data, rows, cols)
	return m
}

// NewVector returns a vector of n elements, all equal to value.
func NewVector(n int, value float32) []float32 {
	v := make([]float32, n)
	FillConstant(v, n, 1, value)
	return v
}
