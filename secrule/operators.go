package secrule

import (
	"strings"
)

// operatorFunc evaluates a rule's operator against one target value. It
// returns whether the operator matched and the matched data.
type operatorFunc func(rule *SecRule, target string) (bool, string)

var operatorFuncsMap = map[Operator]operatorFunc{
	Rx:         rxOperatorEval,
	Pm:         pmOperatorEval,
	PmFromFile: pmOperatorEval,
}

func toOperatorFunc(op Operator) operatorFunc {
	return operatorFuncsMap[op]
}

func rxOperatorEval(rule *SecRule, target string) (bool, string) {
	if rule.Pattern == nil {
		return false, ""
	}
	m, ok := rule.Pattern.MatchFirst(target)
	if !ok {
		return false, ""
	}
	return true, m.Text
}

func pmOperatorEval(rule *SecRule, target string) (bool, string) {
	if rule.phraseSet == nil {
		return false, ""
	}
	hits := rule.phraseSet.Match([]byte(strings.ToLower(target)))
	if len(hits) == 0 {
		return false, ""
	}
	return true, rule.Phrases[hits[0]]
}
