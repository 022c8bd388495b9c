// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slukits/multitest/cmd/multitest/scan"
)

var suitesCmd = &cobra.Command{
	Use:   "suites [dir]",
	Short: "list the multitest suites declared under a directory",
	Long: `Suites statically scans the test files below given directory
(defaulting to the working directory) and lists each multitest suite
with its tests and its literally declared test-case templates.  Files
failing to parse are skipped with a warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		ss, err := scan.Dir(dir)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(ss) == 0 {
			fmt.Fprintln(w, "no multitest suites found")
			return nil
		}
		for _, s := range ss {
			fmt.Fprintf(w, "%s: %s\n", s.File, s.Name)
			for _, tst := range s.Tests {
				fmt.Fprintf(w, "    %s\n", tst)
			}
			for _, tpl := range s.Templates {
				if tpl.Doc != "" {
					fmt.Fprintf(w, "    template %s %q\n",
						tpl.Name, tpl.Doc)
					continue
				}
				fmt.Fprintf(w, "    template %s\n", tpl.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suitesCmd)
}
