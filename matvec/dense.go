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

import "fmt"

// Index maps a (row, col) coordinate of a matrix with the given number of
// rows to its offset in the flat buffer.
func Index(row, col, rows int) int {
	return col*rows + row
}

// Dense is a rows x cols float32 matrix stored in a flat buffer addressed
// through Index.
type Dense struct {
	Rows int
	Cols int
	Data []float32
}

// NewDense allocates a zeroed rows x cols matrix.
func NewDense(rows, cols int) *Dense {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matvec: negative dimensions %dx%d", rows, cols))
	}
	return &Dense{
		Rows: rows,
		Cols: cols,
		Data: make([]float32, rows*cols),
	}
}

// At returns the element at (row, col).
func (d *Dense) At(row, col int) float32 {
	return d.Data[Index(row, col, d.Rows)]
}

// Set stores v at (row, col).
func (d *Dense) Set(row, col int, v float32) {
	d.Data[Index(row, col, d.Rows)] = v
}

// Len returns Rows*Cols.
func (d *Dense) Len() int {
	return d.Rows * d.Cols
}
