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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReference(t *testing.T) {
	// M = [1 2 3]
	//     [4 5 6]
	m := NewDense(2, 3)
	for r := range 2 {
		for c := range 3 {
			m.Set(r, c, float32(r*3+c+1))
		}
	}

	out := make([]float32, 2)
	Reference(m, []float32{1, 2, 3}, out)
	assert.Equal(t, []float32{14, 32}, out)
}

func TestReferenceMatchesKernelForOnes(t *testing.T) {
	m := NewHilbert(40, 25)

	k := NewKernel(StrategyPool, 4)
	defer k.Close()

	got := make([]float32, m.Rows)
	k.Multiply(m, NewVector(m.Rows, 1), got)

	want := make([]float32, m.Rows)
	Reference(m, NewVector(m.Cols, 1), want)

	assert.InDelta(t, 0, MaxAbsDiff(got, want), 1e-5)
}

func TestReferenceDiffersForNonConstantVector(t *testing.T) {
	m := NewHilbert(4, 4)
	v := []float32{1, 2, 3, 4}

	k := NewKernel(StrategySerial, 1)
	defer k.Close()

	got := make([]float32, 4)
	k.Multiply(m, v, got)

	want := make([]float32, 4)
	Reference(m, v, want)

	assert.Greater(t, MaxAbsDiff(got, want), float32(0.1))
}

func TestReferenceEmpty(t *testing.T) {
	out := []float32{5, 5}
	Reference(&Dense{Rows: 2, Cols: 0}, nil, out)
	assert.Equal(t, []float32{0, 0}, out)
}

func TestMaxAbsDiff(t *testing.T) {
	assert.Equal(t, float32(0), MaxAbsDiff(nil, nil))
	assert.Equal(t, float32(3), MaxAbsDiff([]float32{1, 2, 3}, []float32{1, 5, 2}))
	assert.Equal(t, float32(0.5), MaxAbsDiff([]float32{1, -1}, []float32{1, -0.5, 99}))
}
