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

// Command matvec multiplies a Hilbert matrix by a constant vector. It either
// prints the operands and result, or times repeated multiplications.
//
// Usage:
//
//	matvec rows columns                      # demo: print matrix, vector, result and sums
//	matvec -b rows columns iterations        # benchmark: one sentence
//	matvec -b -csv rows columns iterations   # benchmark: threads, iterations, rows, columns, ms
//	matvec info                              # runtime and CPU features
//
// The benchmark modes accept -t/--threads, --strategy pool|spawn|serial and
// --clock wall|cpu. --reference compares the kernel against the textbook
// product and logs the deviation to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-highway/matvecbench/internal/cpuinfo"
	"github.com/go-highway/matvecbench/internal/harness"
	"github.com/go-highway/matvecbench/matvec"
	"github.com/go-highway/matvecbench/timer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stderr)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(normalizeArgs(args))

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, harness.ErrMissingArgument) || errors.Is(err, harness.ErrInvalidArgument) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

// normalizeArgs rewrites the single-dash -csv switch, which pflag would read
// as the shorthand cluster -c -s -v, to its long form.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-csv" {
			a = "--csv"
		}
		out[i] = a
	}
	return out
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "matvec [-b [-csv]] rows columns [iterations]",
		Short: "Hilbert matrix-vector product demo and benchmark",
		Args:  cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, args)
			if err != nil {
				return err
			}
			return harness.Run(cfg, cmd.OutOrStdout(), newLogger(stderr, v))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", harness.ErrInvalidArgument, err)
	})

	flags := root.Flags()
	flags.BoolP("benchmark", "b", false, "time repeated multiplications")
	flags.Bool("csv", false, "with -b, print one CSV line: threads, iterations, rows, columns, ms")
	flags.IntP("threads", "t", 0, "maximum worker goroutines (0 = GOMAXPROCS)")
	flags.String("strategy", matvec.StrategyPool.String(), "row distribution: pool, spawn or serial")
	flags.String("clock", timer.Wall.String(), "benchmark clock: wall or cpu")
	flags.Bool("reference", false, "log the deviation from the textbook product M*v")
	flags.BoolP("verbose", "v", false, "debug logging to stderr")

	root.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Print runtime and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cpuinfo.Report(cmd.OutOrStdout())
		},
	})

	return root
}

// loadConfig resolves the bound flags and positional arguments into a
// harness.Config.
func loadConfig(v *viper.Viper, args []string) (harness.Config, error) {
	mode, err := harness.SelectMode(v.GetBool("benchmark"), v.GetBool("csv"))
	if err != nil {
		return harness.Config{}, err
	}
	cfg, err := harness.ParseArgs(mode, args)
	if err != nil {
		return harness.Config{}, err
	}

	cfg.Strategy, err = matvec.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrInvalidArgument, err)
	}
	cfg.Clock, err = timer.ParseKind(v.GetString("clock"))
	if err != nil {
		return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrInvalidArgument, err)
	}
	cfg.Threads = v.GetInt("threads")
	cfg.Reference = v.GetBool("reference")

	return cfg, cfg.Validate()
}

// newLogger logs warnings by default, the reference check result with
// --reference and everything with --verbose.
func newLogger(w io.Writer, v *viper.Viper) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case v.GetBool("verbose"):
		log.SetLevel(logrus.DebugLevel)
	case v.GetBool("reference"):
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
