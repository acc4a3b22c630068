// Command wafscan loads WAF rule files, merges them into a phase table, and
// either dumps the table or scans input files against it.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"wafcore/config"
	"wafcore/logging"
	"wafcore/secrule"
)

var (
	logLevel   string
	configFile string
	ruleFiles  []string
)

var rootCmd = &cobra.Command{
	Use:          "wafscan",
	Short:        "Inspect and exercise WAF rule sets",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "log level: debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "engine config file (YAML); defaults are used when not given")
	rootCmd.PersistentFlags().StringSliceVar(&ruleFiles, "rules", nil, "rule files (YAML); later files are merged into the first")
	rootCmd.MarkPersistentFlagRequired("rules")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(scanCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return logging.NewConsoleLogger(logLevel)
}

func loadConfig() (config.Main, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

// loadRuleSet loads the first rule file and merges every further file into
// it, the same way the engine combines a base rule set with additions.
func loadRuleSet(logger zerolog.Logger, cfg config.Main) (phases *secrule.Phases, err error) {
	loader := secrule.NewFileRuleLoader(cfg.RegexConfig())

	for i, path := range ruleFiles {
		var p *secrule.Phases
		p, err = loader.Load(path)
		if err != nil {
			return
		}

		if i == 0 {
			phases = p
			continue
		}

		var n int
		n, err = phases.Append(p)
		if err != nil {
			err = fmt.Errorf("failed to merge rule file %v. Error was: %v", path, err)
			return
		}
		logger.Info().Str("file", path).Int("rules", n).Msg("Merged rule file")
	}
	return
}
