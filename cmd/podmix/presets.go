// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/project"
)

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List effect and mastering presets",
		Args:  cobra.NoArgs,
		// Listing needs no config or engine.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			listPresets(cmd.OutOrStdout())
			return nil
		},
	}
}

func listPresets(w io.Writer) {
	for _, kind := range []project.TrackKind{project.Voice, project.Music} {
		fmt.Fprintf(w, "%s tracks:\n", kind)
		for _, p := range project.PresetsFor(kind) {
			fmt.Fprintf(w, "  %-28s %d filters", p.Name, len(p.Equalizer))
			if c := p.Compressor; c != nil {
				fmt.Fprintf(w, ", compressor %gdB %g:1", c.Threshold, c.Ratio)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, "Mastering:")
	for i, p := range project.MasteringPresets {
		c := p.Compressor
		fmt.Fprintf(w, "  %-28s %gdB %g:1", p.Name, c.Threshold, c.Ratio)
		if i == 0 {
			fmt.Fprint(w, " (default)")
		}
		fmt.Fprintln(w)
	}
}
