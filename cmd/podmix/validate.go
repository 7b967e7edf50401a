// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/project"
)

func validateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project.json>...",
		Short: "Check saved projects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				p, err := a.engine.Open(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d tracks, %d files, %.2fs\n",
					path, len(p.Tracks), len(p.Files), project.TotalDuration(p.Tracks))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d projects invalid", failed, len(args))
			}
			return nil
		},
	}
}
