// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/podmix/formats/wav"
	"github.com/ik5/podmix/project"
	"github.com/ik5/podmix/render"
)

func renderCommand(a *app) *cobra.Command {
	var (
		output    string
		tracks    []string
		mastering string
	)

	cmd := &cobra.Command{
		Use:   "render <project.json>",
		Short: "Mix a project down to a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.engine.Open(args[0])
			if err != nil {
				return err
			}

			if mastering != "" {
				c, ok := project.FindMastering(mastering)
				if !ok {
					return fmt.Errorf("unknown mastering preset %q", mastering)
				}
				p = p.SetMastering(c)
			}

			p, warnings, err := a.engine.Hydrate(cmd.Context(), p)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}

			var filter render.Filter
			if len(tracks) > 0 {
				filter = func(all []project.Track) []project.Track {
					return slices.DeleteFunc(slices.Clone(all), func(t project.Track) bool {
						return !slices.Contains(tracks, t.ID)
					})
				}
			}

			buf, err := a.engine.Renderer().Render(cmd.Context(), p, filter)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := (wav.Encoder{}).Encode(f, buf); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.logger.Info("wrote mix", zap.String("file", output), zap.Float64("seconds", buf.Duration()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2fs at %d Hz\n", output, buf.Duration(), buf.SampleRate())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "mix.wav", "output WAV file")
	cmd.Flags().StringSliceVarP(&tracks, "track", "t", nil, "render only these track ids, mute and solo ignored")
	cmd.Flags().StringVar(&mastering, "mastering", "", "mastering preset name")
	return cmd
}
