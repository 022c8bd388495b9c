// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slukits/multitest"
	"github.com/slukits/multitest/pkg/matrix"
)

var expandCmd = &cobra.Command{
	Use:   "expand <matrix.toml>",
	Short: "print the case names a matrix file expands to",
	Long: `Expand reads a TOML matrix file and prints the name of each
generated test case in run order, e.g. to derive 'go test -run'
selectors.  --docs appends each case's rendered documentation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := cmd.Flags().GetBool("docs")
		if err != nil {
			return err
		}
		m, err := matrix.Load(args[0])
		if err != nil {
			return err
		}
		def, err := m.Expand()
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		w := cmd.OutOrStdout()
		def.For(func(c *multitest.Case) {
			if docs && c.Doc() != "" {
				fmt.Fprintf(w, "%s\t%s\n", c.Name(), c.Doc())
				return
			}
			fmt.Fprintln(w, c.Name())
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().BoolP("docs", "d", false,
		"append each case's rendered documentation")
}
