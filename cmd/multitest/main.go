// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Multitest inspects the generated test-case surface of parameterized
test suites without running any test.

Usage:

	multitest expand [--docs] <matrix.toml>
	multitest diff <old.toml> <new.toml>
	multitest suites [dir]

Expand prints the deterministic case names a TOML matrix file expands
to, one per line in run order, which is what 'go test -run' selectors,
baselines and failure reports address.  Diff expands two revisions of
a matrix and prints their case-name changelog: added (+), removed (-)
and cases whose documentation changed (~).  Suites statically scans
the test files below a directory and lists each multitest suite with
its tests and test-case templates.
*/
package main

import (
	"os"

	"github.com/slukits/multitest/cmd/multitest/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
