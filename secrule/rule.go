// Package secrule holds the rule surface the matching core dispatches over:
// the minimal Rule capabilities, the phase-ordered rule container, rule
// loading, and operator evaluation.
package secrule

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"wafcore/regex"
)

// Rule is the minimal capability the phase container needs from the rule
// object model: every statement declares the phase it is evaluated in.
type Rule interface {
	Phase() int
}

// OperatorRule is the capability carried by rules that evaluate a matching
// operator. Only these carry identifiers relevant to merge collision
// detection; bookkeeping statements do not.
type OperatorRule interface {
	Rule
	RuleID() int64
}

// Operator selects how a SecRule evaluates its targets.
type Operator int

// Operators that rules can use.
const (
	_ Operator = iota
	Rx
	Pm
	PmFromFile
)

// SecRule is a detection rule: an operator evaluated against one or more
// targets, with a compiled pattern for the regex operator or a phrase set for
// the phrase-match operators.
type SecRule struct {
	ID       int64
	PhaseNum int
	Targets  []string
	Op       Operator
	Pattern  *regex.Regex
	Phrases  []string
	Msg      string

	phraseSet *ahocorasick.Matcher
}

func (r *SecRule) Phase() int    { return r.PhaseNum }
func (r *SecRule) RuleID() int64 { return r.ID }

func (r *SecRule) String() string {
	return fmt.Sprintf("SecRule id:%d phase:%d targets:%v", r.ID, r.PhaseNum, r.Targets)
}

// compilePhrases builds the phrase automaton. Phrase matching is
// case-insensitive, so the phrases are folded here and the input is folded at
// evaluation time.
func (r *SecRule) compilePhrases() {
	if len(r.Phrases) == 0 {
		return
	}
	folded := make([]string, len(r.Phrases))
	for i, p := range r.Phrases {
		folded[i] = strings.ToLower(p)
	}
	r.phraseSet = ahocorasick.NewStringMatcher(folded)
}

// ActionStmt is a bookkeeping statement scoped to a phase. It carries no
// matching operator and therefore no identifier relevant to merges.
type ActionStmt struct {
	PhaseNum int
	Action   string
	Msg      string
}

func (a *ActionStmt) Phase() int { return a.PhaseNum }

func (a *ActionStmt) String() string {
	return fmt.Sprintf("SecAction phase:%d action:%s", a.PhaseNum, a.Action)
}
