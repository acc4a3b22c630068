package regex

import (
	hs "github.com/flier/gohs/hyperscan"
)

// prefilter is the optional acceleration structure: a Hyperscan database
// compiled best-effort from the same pattern. PrefilterMode over-approximates
// the pattern, so a hit still has to be verified by the real engine, but a
// miss is definitive and lets matching return early.
type prefilter struct {
	db hs.BlockDatabase
}

// newPrefilter returns nil when the pattern is not expressible in Hyperscan.
// That is not an error; matching just uses the unaccelerated path.
func newPrefilter(expr string, ignoreCase bool) *prefilter {
	p := hs.NewPattern(expr, 0)
	p.Flags = hs.SingleMatch | hs.PrefilterMode | hs.AllowEmpty | hs.DotAll | hs.MultiLine
	if ignoreCase {
		p.Flags |= hs.Caseless
	}

	db, err := hs.NewBlockDatabase(p)
	if err != nil {
		return nil
	}
	return &prefilter{db: db}
}

type prefilterVerdict int

const (
	// prefilterSkipped means the prefilter is unavailable or failed; the
	// caller must use the unaccelerated path.
	prefilterSkipped prefilterVerdict = iota

	// prefilterMiss means no match can exist anywhere in the subject.
	prefilterMiss

	// prefilterCandidate means a match may exist and must be verified by the
	// real engine.
	prefilterCandidate
)

// scan runs the accelerated pre-pass over the whole subject. Scratch space is
// allocated fresh per call so a compiled pattern stays safe for concurrent
// matching.
func (p *prefilter) scan(subject string) prefilterVerdict {
	if p == nil || len(subject) == 0 {
		return prefilterSkipped
	}

	scratch, err := hs.NewScratch(p.db)
	if err != nil {
		return prefilterSkipped
	}
	defer scratch.Free()

	found := false
	handler := func(id uint, from, to uint64, flags uint, context interface{}) error {
		found = true
		return nil
	}
	if err := p.db.Scan([]byte(subject), scratch, handler, nil); err != nil {
		return prefilterSkipped
	}

	if found {
		return prefilterCandidate
	}
	return prefilterMiss
}

func (p *prefilter) close() {
	if p == nil || p.db == nil {
		return
	}
	p.db.Close()
	p.db = nil
}
