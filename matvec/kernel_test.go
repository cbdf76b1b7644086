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
	"math"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStrategies = []Strategy{StrategyPool, StrategySpawn, StrategySerial}

// rowSums reduces each row of m in ascending column order, scaled by v[r].
func rowSums(m *Dense, v []float32) []float32 {
	out := make([]float32, m.Rows)
	for r := range m.Rows {
		var sum float32
		for c := range m.Cols {
			sum += float32(v[r] * m.At(r, c))
		}
		out[r] = sum
	}
	return out
}

func TestMultiplyHilbert3x3(t *testing.T) {
	m := NewHilbert(3, 3)
	v := NewVector(3, 1)

	for _, s := range allStrategies {
		t.Run(s.String(), func(t *testing.T) {
			k := NewKernel(s, 4)
			defer k.Close()

			out := make([]float32, 3)
			k.Multiply(m, v, out)

			if diff := cmp.Diff(rowSums(m, v), out); diff != "" {
				t.Errorf("Multiply() mismatch (-want +got):\n%s", diff)
			}
			assert.InDelta(t, 11.0/6, out[0], 1e-6)
			assert.InDelta(t, 13.0/12, out[1], 1e-6)
			assert.InDelta(t, 47.0/60, out[2], 1e-6)
		})
	}
}

func TestMultiplyRowIndexedMultiplier(t *testing.T) {
	// M = [1 2 3]
	//     [4 5 6]
	m := NewDense(2, 3)
	for r := range 2 {
		for c := range 3 {
			m.Set(r, c, float32(r*3+c+1))
		}
	}
	v := []float32{1, 2}

	k := NewKernel(StrategySerial, 1)
	defer k.Close()

	out := make([]float32, 2)
	k.Multiply(m, v, out)

	// out[r] = v[r] * (row sum), not the textbook dot product.
	assert.Equal(t, []float32{6, 30}, out)
}

func TestMultiplyStrategiesAgree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 13}, {7, 3}, {64, 64}, {257, 33}, {5, 1000}}

	for _, dims := range sizes {
		rows, cols := dims[0], dims[1]
		m := NewHilbert(rows, cols)
		v := make([]float32, rows)
		for i := range v {
			v[i] = float32(i%7) - 2.5
		}
		want := rowSums(m, v)

		for _, s := range allStrategies {
			for _, workers := range []int{1, 2, 3, 8} {
				t.Run(fmt.Sprintf("%dx%d/%s/workers=%d", rows, cols, s, workers), func(t *testing.T) {
					k := NewKernel(s, workers)
					defer k.Close()

					out := make([]float32, rows)
					k.Multiply(m, v, out)
					if diff := cmp.Diff(want, out); diff != "" {
						t.Errorf("Multiply() mismatch (-want +got):\n%s", diff)
					}
				})
			}
		}
	}
}

func TestMultiplyIdempotent(t *testing.T) {
	m := NewHilbert(100, 37)
	v := NewVector(100, 1)

	k := NewKernel(StrategyPool, 0)
	defer k.Close()

	first := make([]float32, 100)
	second := make([]float32, 100)
	k.Multiply(m, v, first)
	k.Multiply(m, v, second)

	for i := range first {
		if math.Float32bits(first[i]) != math.Float32bits(second[i]) {
			t.Fatalf("out[%d]: first %v, second %v", i, first[i], second[i])
		}
	}
}

func TestMultiplyOverwritesOutput(t *testing.T) {
	m := NewHilbert(4, 4)
	v := NewVector(4, 1)

	k := NewKernel(StrategySpawn, 2)
	defer k.Close()

	clean := make([]float32, 4)
	dirty := []float32{float32(math.NaN()), 1e30, -7, 42}
	k.Multiply(m, v, clean)
	k.Multiply(m, v, dirty)

	assert.Equal(t, clean, dirty)
}

func TestMultiplyThreads(t *testing.T) {
	tests := []struct {
		strategy Strategy
		workers  int
		rows     int
		want     int
	}{
		{StrategySerial, 8, 100, 1},
		{StrategySpawn, 4, 100, 4},
		{StrategySpawn, 4, 5, 3},
		{StrategySpawn, 8, 3, 3},
		{StrategyPool, 4, 100, 4},
		{StrategyPool, 4, 5, 3},
		{StrategyPool, 1, 100, 1},
		{StrategyPool, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/workers=%d/rows=%d", tt.strategy, tt.workers, tt.rows), func(t *testing.T) {
			k := NewKernel(tt.strategy, tt.workers)
			defer k.Close()

			m := NewHilbert(tt.rows, 4)
			v := NewVector(tt.rows, 1)
			out := make([]float32, tt.rows)

			got := k.Multiply(m, v, out)
			if tt.rows > 0 && tt.strategy != StrategySerial {
				// Threads never exceed the configured worker count.
				assert.LessOrEqual(t, got, tt.workers)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewKernelDefaults(t *testing.T) {
	k := NewKernel(StrategyPool, 0)
	defer k.Close()
	assert.Equal(t, runtime.GOMAXPROCS(0), k.Workers())
	assert.Equal(t, StrategyPool, k.Strategy())

	serial := NewKernel(StrategySerial, 16)
	defer serial.Close()
	assert.Equal(t, 1, serial.Workers())

	unknown := NewKernel(Strategy(42), 2)
	defer unknown.Close()
	assert.Equal(t, StrategyPool, unknown.Strategy())
}

func TestMultiplyAfterClose(t *testing.T) {
	k := NewKernel(StrategyPool, 4)
	k.Close()
	k.Close()

	m := NewHilbert(10, 10)
	v := NewVector(10, 1)
	out := make([]float32, 10)

	assert.Equal(t, 1, k.Multiply(m, v, out))
	assert.Equal(t, rowSums(m, v), out)
}

func TestMultiplyPanics(t *testing.T) {
	k := NewKernel(StrategySerial, 1)
	defer k.Close()
	m := NewHilbert(3, 3)

	assert.PanicsWithValue(t, "matrix slice too small", func() {
		k.Multiply(&Dense{Rows: 3, Cols: 3, Data: m.Data[:8]}, NewVector(3, 1), make([]float32, 3))
	})
	assert.PanicsWithValue(t, "vector slice too small", func() {
		k.Multiply(m, NewVector(2, 1), make([]float32, 3))
	})
	assert.PanicsWithValue(t, "result slice too small", func() {
		k.Multiply(m, NewVector(3, 1), make([]float32, 2))
	})
}

func TestParseStrategy(t *testing.T) {
	for _, s := range allStrategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStrategy(" Spawn ")
	require.NoError(t, err)
	assert.Equal(t, StrategySpawn, got)

	_, err = ParseStrategy("dynamic")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Strategy(99).String())
}

func BenchmarkMultiply(b *testing.B) {
	sizes := []int{64, 256, 1024}
	for _, n := range sizes {
		m := NewHilbert(n, n)
		v := NewVector(n, 1)
		out := make([]float32, n)

		for _, s := range allStrategies {
			b.Run(fmt.Sprintf("%s/%dx%d", s, n, n), func(b *testing.B) {
				k := NewKernel(s, 0)
				defer k.Close()

				b.SetBytes(int64(n * n * 4))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					k.Multiply(m, v, out)
				}
			})
		}
	}
}
