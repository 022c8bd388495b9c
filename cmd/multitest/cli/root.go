// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the verbs of the multitest command: expand
// prints the case names a matrix file generates, diff reports the
// case-name changes between two matrix revisions and suites lists the
// multitest suites declared under a directory.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "multitest",
	Short: "inspect the test cases of multitest matrices and suites",
	Long: `multitest works with the test-case surface of parameterized
test suites without running any test: it expands TOML matrix files
into their deterministic case names (expand), reports how the case
names of two matrix revisions differ (diff) and statically lists the
multitest suites of a directory (suites).`,
	SilenceUsage: true,
}

// Execute runs the multitest command returning the failing verb's
// error.
func Execute() error { return rootCmd.Execute() }
