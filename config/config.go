// Package config holds the engine-wide configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wafcore/regex"
)

// Main is the top level configuration.
type Main struct {
	Engine Engine `yaml:"engine"`
}

// Engine configures the regex engine shared by all compiled patterns.
type Engine struct {
	// Generation selects the underlying matching engine: "backtrack" or "linear".
	Generation string `yaml:"generation"`

	// MatchLimit is the default work budget for one match attempt. 0 means
	// unlimited.
	MatchLimit uint64 `yaml:"matchLimit"`

	// CRLFIsNewline makes global matching treat CR+LF as a single newline
	// unit when it steps over a position.
	CRLFIsNewline bool `yaml:"crlfIsNewline"`

	// Prefilter enables best-effort Hyperscan acceleration of compiled
	// patterns.
	Prefilter bool `yaml:"prefilter"`
}

// Default returns the configuration used when no config file is given.
func Default() Main {
	return Main{
		Engine: Engine{
			Generation:    string(regex.EngineBacktrack),
			CRLFIsNewline: true,
			Prefilter:     true,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (c Main, err error) {
	c = Default()

	bb, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to load config file %v. Error was: %v", path, err)
		return
	}

	if err = yaml.Unmarshal(bb, &c); err != nil {
		err = fmt.Errorf("failed to parse config file %v. Error was: %v", path, err)
	}
	return
}

// RegexConfig translates the engine section into the regex package's injected
// configuration.
func (c Main) RegexConfig() regex.Config {
	return regex.Config{
		Engine:        regex.EngineKind(c.Engine.Generation),
		CRLFIsNewline: c.Engine.CRLFIsNewline,
		MatchLimit:    c.Engine.MatchLimit,
		Prefilter:     c.Engine.Prefilter,
	}
}
