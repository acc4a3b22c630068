package secrule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wafcore/regex"
	"wafcore/testutils"
)

func TestEvalTargetRunsPhasesInAscendingOrder(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)
	pattern, err := regex.New("evil", false, testRegexConfig())
	assert.Nil(err)
	phases := &Phases{}
	phases.Insert(&SecRule{ID: 2, PhaseNum: PhaseResponseBody, Op: Rx, Pattern: pattern})
	phases.Insert(&SecRule{ID: 1, PhaseNum: PhaseURI, Op: Rx, Pattern: pattern})

	var matchedIDs []int64
	EvalTarget(logger, phases, "something evil", func(rule *SecRule, data string) {
		matchedIDs = append(matchedIDs, rule.ID)
	})

	assert.Equal([]int64{1, 2}, matchedIDs)
}

func TestEvalTargetSkipsBookkeepingStatements(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)
	phases := &Phases{}
	phases.Insert(&ActionStmt{PhaseNum: PhaseLogging, Action: "log"})
	phases.Insert(&mockStmt{phase: PhaseConnection})

	calls := 0
	EvalTarget(logger, phases, "anything", func(rule *SecRule, data string) {
		calls++
	})

	assert.Equal(0, calls)
}

func TestEvalTargetReportsMatchedData(t *testing.T) {
	assert := assert.New(t)
	logger := testutils.NewTestLogger(t)
	rule := &SecRule{ID: 3, PhaseNum: PhaseRequestBody, Op: Pm, Phrases: []string{"drop table"}}
	rule.compilePhrases()
	phases := &Phases{}
	phases.Insert(rule)

	var gotData string
	EvalTarget(logger, phases, "x; DROP TABLE users", func(rule *SecRule, data string) {
		gotData = data
	})

	assert.Equal("drop table", gotData)
}
