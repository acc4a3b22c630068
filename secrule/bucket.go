package secrule

import (
	"fmt"

	"github.com/google/btree"
	"github.com/rs/zerolog"
)

// Bucket is the ordered collection of rules belonging to one phase. A bucket
// references rules; it does not own their lifetime.
type Bucket struct {
	rules []Rule
}

// Insert appends rule to the bucket. Phase-range validation happens at the
// Phases level, so insertion here always succeeds.
func (b *Bucket) Insert(rule Rule) {
	b.rules = append(b.rules, rule)
}

// Len returns the number of rules in the bucket.
func (b *Bucket) Len() int {
	return len(b.rules)
}

// Rules returns the bucket's rules in evaluation order. The returned slice
// must be treated as read-only.
func (b *Bucket) Rules() []Rule {
	return b.rules
}

// appendFrom copies the rules of src into this bucket. A nil statement in the
// source fails its validity check and is skipped. An operator-bearing rule
// whose identifier is already in usedIDs fails the whole merge; nothing from
// src is inserted in that case. Returns the number of rules merged.
func (b *Bucket) appendFrom(src *Bucket, usedIDs *btree.BTree) (n int, err error) {
	for _, rule := range src.rules {
		op, ok := rule.(OperatorRule)
		if !ok {
			continue
		}
		if usedIDs.Has(usedRuleID(op.RuleID())) {
			err = fmt.Errorf("rule id: %d is duplicated", op.RuleID())
			return
		}
	}

	for _, rule := range src.rules {
		if rule == nil {
			continue
		}
		b.rules = append(b.rules, rule)
		n++
	}
	return
}

// Dump logs a one-line summary per rule. Diagnostic only; the output format
// is not a contract.
func (b *Bucket) Dump(logger zerolog.Logger) {
	for _, rule := range b.rules {
		e := logger.Info().Int("phase", rule.Phase())
		if op, ok := rule.(OperatorRule); ok {
			e = e.Int64("id", op.RuleID())
		}
		e.Str("rule", fmt.Sprint(rule)).Msg("Rule")
	}
}
