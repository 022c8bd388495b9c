// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/r3labs/diff/v3"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/slukits/multitest"
	"github.com/slukits/multitest/pkg/matrix"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old.toml> <new.toml>",
	Short: "report case-name changes between two matrix revisions",
	Long: `Diff expands two revisions of a matrix file and reports
added (+) and removed (-) case names as well as cases whose rendered
documentation changed (~).  Case names are the contract between a
matrix and everything addressing its tests; diff makes a revision's
impact on that contract reviewable.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, err := expandDocs(args[0])
		if err != nil {
			return err
		}
		after, err := expandDocs(args[1])
		if err != nil {
			return err
		}
		cl, err := diff.Diff(before, after)
		if err != nil {
			return fmt.Errorf("diff: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(cl) == 0 {
			fmt.Fprintln(w, "matrices expand to identical cases")
			return nil
		}
		slices.SortFunc(cl, func(a, b diff.Change) int {
			return strings.Compare(a.Path[0], b.Path[0])
		})
		for _, c := range cl {
			switch c.Type {
			case diff.CREATE:
				fmt.Fprintf(w, "+ %s\n", c.Path[0])
			case diff.DELETE:
				fmt.Fprintf(w, "- %s\n", c.Path[0])
			case diff.UPDATE:
				fmt.Fprintf(w, "~ %s: %q -> %q\n",
					c.Path[0], c.From, c.To)
			}
		}
		return nil
	},
}

// expandDocs maps given matrix file's case names to their rendered
// documentation.
func expandDocs(path string) (map[string]string, error) {
	m, err := matrix.Load(path)
	if err != nil {
		return nil, err
	}
	def, err := m.Expand()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dd := make(map[string]string, def.Len())
	def.For(func(c *multitest.Case) { dd[c.Name()] = c.Doc() })
	return dd, nil
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
