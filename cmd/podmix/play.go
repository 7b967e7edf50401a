// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/podmix/playback"
	"github.com/ik5/podmix/playback/malgodev"
)

func playCommand(a *app) *cobra.Command {
	var from float64

	cmd := &cobra.Command{
		Use:   "play <project.json>",
		Short: "Play a project on the default output device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.engine.Open(args[0])
			if err != nil {
				return err
			}
			p, warnings, err := a.engine.Hydrate(cmd.Context(), p)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}

			dev, err := malgodev.Open(malgodev.Config{
				SampleRate: a.cfg.Engine.SampleRate,
				Channels:   a.cfg.Engine.Channels,
			}, a.logger)
			if err != nil {
				return err
			}
			defer dev.Close() //nolint:errcheck

			s, err := a.engine.Player(dev, a.engine.NewStore(p))
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck

			ended := make(chan struct{})
			s.Subscribe(func(ev playback.Event) {
				if ev.Kind == playback.Ended {
					close(ended)
				}
			})

			if err := s.Seek(from); err != nil {
				return err
			}
			if err := s.Play(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "playing %s (%.1fs), ctrl-c to stop\n", p.Name, s.Duration())

			select {
			case <-ended:
			case <-cmd.Context().Done():
				return s.Stop()
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&from, "from", 0, "start position in seconds")
	return cmd
}
