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
	"io"
	"strings"

	"github.com/samber/lo"
)

// Render writes data as a rows x cols grid: one line per row, each element
// formatted with %.3f and separated by a single space.
func Render(w io.Writer, data []float32, rows, cols int) error {
	for r := range rows {
		cells := lo.Times(cols, func(c int) string {
			return fmt.Sprintf("%.3f", data[Index(r, c, rows)])
		})
		if _, err := io.WriteString(w, strings.Join(cells, " ")+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// ElementSum returns the float32 sum of every element of a rows x cols
// buffer, accumulated in buffer order.
func ElementSum(data []float32, rows, cols int) float32 {
	var sum float32
	for c := range cols {
		for r := range rows {
			sum += data[Index(r, c, rows)]
		}
	}
	return sum
}
