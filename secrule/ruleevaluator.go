package secrule

import (
	"github.com/rs/zerolog"
)

// MatchedCb is called for each rule whose operator matched, with the data the
// operator matched on.
type MatchedCb func(rule *SecRule, data string)

// EvalTarget evaluates every operator-bearing rule against target, phase by
// phase in ascending order. Rules without an operator are skipped. The phase
// table is only read, so concurrent evaluations over the same table are safe.
func EvalTarget(logger zerolog.Logger, phases *Phases, target string, matchedCb MatchedCb) {
	for phase := 0; phase < NumPhases; phase++ {
		for _, rule := range phases.At(phase).Rules() {
			secRule, ok := rule.(*SecRule)
			if !ok {
				continue
			}

			f := toOperatorFunc(secRule.Op)
			if f == nil {
				continue
			}

			matched, data := f(secRule, target)
			if !matched {
				continue
			}

			if logger.Debug() != nil {
				logger.Debug().
					Int64("ruleID", secRule.ID).
					Int("phase", phase).
					Str("matchedData", data).
					Msg("Rule operator matched")
			}

			matchedCb(secRule, data)
		}
	}
}
