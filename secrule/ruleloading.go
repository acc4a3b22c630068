package secrule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"wafcore/regex"
)

// RuleLoader obtains a populated phase table from a rule file.
type RuleLoader interface {
	Load(path string) (phases *Phases, err error)
}

// NewFileRuleLoader creates a RuleLoader that reads YAML rule files and
// compiles their patterns with the given engine configuration.
func NewFileRuleLoader(cfg regex.Config) RuleLoader {
	return &fileRuleLoader{cfg: cfg}
}

type fileRuleLoader struct {
	cfg regex.Config
}

type yamlRuleFile struct {
	Rules []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	ID         int64    `yaml:"id"`
	Phase      int      `yaml:"phase"`
	Operator   string   `yaml:"operator"`
	Pattern    string   `yaml:"pattern"`
	IgnoreCase bool     `yaml:"ignoreCase"`
	Phrases    []string `yaml:"phrases"`
	PhraseFile string   `yaml:"phraseFile"`
	Targets    []string `yaml:"targets"`
	Action     string   `yaml:"action"`
	Msg        string   `yaml:"msg"`
}

func (l *fileRuleLoader) Load(path string) (phases *Phases, err error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to load rule file %v. Error was: %v", path, err)
		return
	}

	var f yamlRuleFile
	if err = yaml.Unmarshal(bb, &f); err != nil {
		err = fmt.Errorf("failed to parse rule file %v. Error was: %v", path, err)
		return
	}

	phases = &Phases{}
	for _, yr := range f.Rules {
		var stmt Rule
		stmt, err = l.toStatement(yr, filepath.Dir(path))
		if err != nil {
			phases = nil
			return
		}

		if !phases.Insert(stmt) {
			err = fmt.Errorf("rule %d has out-of-range phase %d", yr.ID, yr.Phase)
			phases = nil
			return
		}
	}
	return
}

func (l *fileRuleLoader) toStatement(yr yamlRule, dir string) (stmt Rule, err error) {
	if yr.Operator == "" {
		stmt = &ActionStmt{PhaseNum: yr.Phase, Action: yr.Action, Msg: yr.Msg}
		return
	}

	r := &SecRule{
		ID:       yr.ID,
		PhaseNum: yr.Phase,
		Targets:  yr.Targets,
		Phrases:  yr.Phrases,
		Msg:      yr.Msg,
	}

	switch yr.Operator {
	case "rx":
		r.Op = Rx
		r.Pattern, err = regex.New(yr.Pattern, yr.IgnoreCase, l.cfg)
		if err != nil {
			err = fmt.Errorf("rule %d: %v", yr.ID, err)
			return
		}
	case "pm":
		r.Op = Pm
	case "pmFromFile":
		r.Op = PmFromFile
		r.Phrases, err = loadPhraseFile(filepath.Join(dir, yr.PhraseFile))
		if err != nil {
			err = fmt.Errorf("rule %d: %v", yr.ID, err)
			return
		}
	default:
		err = fmt.Errorf("rule %d uses unsupported operator %v", yr.ID, yr.Operator)
		return
	}

	r.compilePhrases()
	stmt = r
	return
}

// loadPhraseFile reads a newline-separated phrase list, skipping blank lines
// and #-comments.
func loadPhraseFile(fullPath string) (phrases []string, err error) {
	bb, err := os.ReadFile(fullPath)
	if err != nil {
		err = fmt.Errorf("failed to load phrase file %v. Error was: %v", fullPath, err)
		return
	}

	for _, p := range strings.Split(string(bb), "\n") {
		p = strings.TrimRight(p, "\r")
		if p != "" && !strings.HasPrefix(p, "#") {
			phrases = append(phrases, p)
		}
	}
	return
}
