package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"wafcore/secrule"
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Evaluate the rule set against each input file",
	Args:  cobra.MinimumNArgs(1),
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

		// The phase table is immutable from here on, so the files can be
		// scanned concurrently against it.
		matchCounts := make([]int, len(args))
		var g errgroup.Group
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				bb, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				secrule.EvalTarget(logger, phases, string(bb), func(rule *secrule.SecRule, data string) {
					matchCounts[i]++
					logger.Warn().
						Str("file", path).
						Int64("ruleID", rule.RuleID()).
						Str("msg", rule.Msg).
						Str("matchedData", data).
						Msg("Rule matched")
				})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		total := 0
		for i, path := range args {
			logger.Info().Str("file", path).Int("matches", matchCounts[i]).Msg("Scanned file")
			total += matchCounts[i]
		}
		logger.Info().Int("totalMatches", total).Msg("Scan done")
		return nil
	},
}
