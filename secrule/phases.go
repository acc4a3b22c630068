package secrule

import (
	"github.com/google/btree"
	"github.com/rs/zerolog"
)

// Phases of the inspection pipeline, evaluated in ascending order.
const (
	PhaseConnection = iota
	PhaseURI
	PhaseRequestHeaders
	PhaseRequestBody
	PhaseResponseHeaders
	PhaseResponseBody
	PhaseLogging
	NumPhases
)

// Phases routes rules into per-phase buckets and keeps each bucket in
// insertion order. The table must be fully built by a single goroutine before
// matching traffic is processed; after that, read-only iteration is safe for
// concurrent readers.
type Phases struct {
	rulesAtPhase [NumPhases]Bucket
}

// Insert places rule into the bucket of its declared phase. It returns false
// without mutating the table when the phase is out of range.
func (p *Phases) Insert(rule Rule) bool {
	phase := rule.Phase()
	if phase < 0 || phase >= NumPhases {
		return false
	}
	p.rulesAtPhase[phase].Insert(rule)
	return true
}

// At returns the bucket for the given phase.
func (p *Phases) At(phase int) *Bucket {
	return &p.rulesAtPhase[phase]
}

// Len is the total number of rules across all phases.
func (p *Phases) Len() (n int) {
	for i := 0; i < NumPhases; i++ {
		n += p.rulesAtPhase[i].Len()
	}
	return
}

// Append merges every phase of from into this table. The identifiers already
// used by operator-bearing rules anywhere in this table are collected first
// and shared across the per-phase merges; a source rule reusing one of them
// fails the merge. Phases merged before a failure stay merged; the operation
// is not transactional.
func (p *Phases) Append(from *Phases) (amountOfRules int, err error) {
	usedIDs := btree.New(2)
	for i := 0; i < NumPhases; i++ {
		for _, rule := range p.rulesAtPhase[i].rules {
			op, ok := rule.(OperatorRule)
			if !ok {
				continue
			}
			usedIDs.ReplaceOrInsert(usedRuleID(op.RuleID()))
		}
	}

	for phase := 0; phase < NumPhases; phase++ {
		var n int
		n, err = p.rulesAtPhase[phase].appendFrom(from.At(phase), usedIDs)
		if err != nil {
			return
		}
		amountOfRules += n
	}
	return
}

// Dump logs a summary line per phase followed by its rules.
func (p *Phases) Dump(logger zerolog.Logger) {
	for i := 0; i < NumPhases; i++ {
		logger.Info().Int("phase", i).Int("rules", p.rulesAtPhase[i].Len()).Msg("Phase")
		p.rulesAtPhase[i].Dump(logger)
	}
}

// usedRuleID makes rule identifiers storable in the used-identifier tree.
type usedRuleID int64

func (a usedRuleID) Less(b btree.Item) bool {
	return a < b.(usedRuleID)
}
