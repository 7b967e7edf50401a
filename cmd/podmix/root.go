// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/podmix"
	"github.com/ik5/podmix/config"
	"github.com/ik5/podmix/internal/logging"
)

// app carries what PersistentPreRunE builds for the subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg      config.Config
	logger   *zap.Logger
	closeLog func() error
	engine   *podmix.Engine
}

func rootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "podmix",
		Short:         "Multi-track podcast mixer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		renderCommand(a),
		playCommand(a),
		validateCommand(a),
		presetsCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	eng, err := podmix.New(cfg, logger, nil)
	if err != nil {
		_ = closeLog()
		return err
	}

	a.cfg, a.logger, a.closeLog, a.engine = cfg, logger, closeLog, eng
	return nil
}
