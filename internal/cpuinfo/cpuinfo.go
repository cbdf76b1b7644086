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

// Package cpuinfo reports the runtime and CPU features of the host, so
// benchmark numbers can be read next to the machine that produced them.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Feature is a named CPU capability.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Features returns the feature flags relevant to float32 kernels for the
// running architecture, or nil if the architecture is not covered.
func Features() []Feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []Feature{
			{"SSE2", cpu.X86.HasSSE2, ""},
			{"SSE41", cpu.X86.HasSSE41, ""},
			{"SSE42", cpu.X86.HasSSE42, ""},
			{"AVX", cpu.X86.HasAVX, ""},
			{"AVX2", cpu.X86.HasAVX2, ""},
			{"FMA", cpu.X86.HasFMA, ""},
			{"AVX512F", cpu.X86.HasAVX512F, ""},
			{"AVX512BW", cpu.X86.HasAVX512BW, ""},
			{"AVX512VL", cpu.X86.HasAVX512VL, ""},
		}
	case "arm64":
		return []Feature{
			{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
			{"FP", cpu.ARM64.HasFP, "Floating point"},
			{"FPHP", cpu.ARM64.HasFPHP, "FP16 scalar, ARMv8.2-A"},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP, "FP16 NEON, ARMv8.2-A"},
			{"ASIMDFHM", cpu.ARM64.HasASIMDFHM, "FP16 FMA, ARMv8.4-A"},
			{"SVE", cpu.ARM64.HasSVE, "Scalable Vector Extension"},
			{"SVE2", cpu.ARM64.HasSVE2, "SVE2"},
			{"ATOMICS", cpu.ARM64.HasATOMICS, "Large System Extensions"},
		}
	default:
		return nil
	}
}

// Enabled returns the names of the features present on this CPU.
func Enabled() []string {
	var names []string
	for _, f := range Features() {
		if f.Present {
			names = append(names, f.Name)
		}
	}
	return names
}

// Report writes a human-readable runtime and CPU feature summary to w.
func Report(w io.Writer) error {
	title := cases.Title(language.English)

	p := &printer{w: w}
	p.printf("GOOS: %s\n", runtime.GOOS)
	p.printf("GOARCH: %s\n", runtime.GOARCH)
	p.printf("NumCPU: %d\n", runtime.NumCPU())
	p.printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	p.printf("Go: %s\n", runtime.Version())

	features := Features()
	if features == nil {
		p.printf("\nNo feature table for %s\n", runtime.GOARCH)
		return p.err
	}

	p.printf("\n=== %s ===\n", title.String(runtime.GOARCH+" features"))
	for _, f := range features {
		if f.Note != "" {
			p.printf("  Has%-10s %v (%s)\n", f.Name+":", f.Present, f.Note)
		} else {
			p.printf("  Has%-10s %v\n", f.Name+":", f.Present)
		}
	}
	return p.err
}

// printer remembers the first write error so Report can print unconditionally.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
