package main

import (
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Load and merge the rule files, then dump the phase table",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		phases, err := loadRuleSet(logger, cfg)
		if err != nil {
			return err
		}

		phases.Dump(logger)
		logger.Info().Int("rules", phases.Len()).Msg("Phase table loaded")
		return nil
	},
}
