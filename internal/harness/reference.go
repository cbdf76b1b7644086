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
	"github.com/sirupsen/logrus"

	"github.com/go-highway/matvecbench/matvec"
)

// referenceTolerance is relative to the largest textbook output magnitude.
const referenceTolerance = 1e-4

// checkReference compares the kernel against the textbook product computed
// by matvec.Reference, once for the all-ones vector of the run and once for
// the probe vector 1, 2, 3, ... The kernel scales row r by v[r], so the probe
// exposes the difference for any matrix larger than 1x1.
func checkReference(log logrus.FieldLogger, k *matvec.Kernel, m *matvec.Dense, result []float32) {
	textbook := make([]float32, m.Rows)
	matvec.Reference(m, matvec.NewVector(m.Cols, 1), textbook)
	onesDev := matvec.MaxAbsDiff(result, textbook)

	probeResult := make([]float32, m.Rows)
	k.Multiply(m, probe(m.Rows), probeResult)
	matvec.Reference(m, probe(m.Cols), textbook)
	probeDev := matvec.MaxAbsDiff(probeResult, textbook)

	var scale float32 = 1
	for _, x := range textbook {
		scale = max(scale, x, -x)
	}

	entry := log.WithFields(logrus.Fields{
		"ones_deviation":  onesDev,
		"probe_deviation": probeDev,
	})
	if probeDev > referenceTolerance*scale || onesDev > referenceTolerance*scale {
		entry.Warn("kernel differs from textbook M*v: each row r is scaled by v[r], not v[c]")
		return
	}
	entry.Info("kernel agrees with textbook M*v")
}

func probe(n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(i + 1)
	}
	return v
}
