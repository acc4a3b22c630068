package regex

// Result classifies the outcome of one matching call. The two engine
// generations report failures with different vocabularies; each driver maps
// its native codes onto exactly these three buckets. "Matched" and "cleanly
// did not match" are both ResultOk; callers inspect the returned captures (or
// boolean) to tell them apart.
type Result int

const (
	// ResultOk means the engine ran to completion, whether or not a match was found.
	ResultOk Result = iota

	// ResultErrorMatchLimit means the engine gave up after exceeding its work budget.
	ResultErrorMatchLimit

	// ResultErrorOther covers malformed input to the engine, insufficient
	// internal buffers, and any other engine-internal failure.
	ResultErrorOther
)

func (r Result) String() string {
	switch r {
	case ResultOk:
		return "Ok"
	case ResultErrorMatchLimit:
		return "ErrorMatchLimit"
	default:
		return "ErrorOther"
	}
}

// span is a half-open [start,end) byte range of one capture group within a
// single match attempt.
type span struct {
	start int
	end   int
}

// matchOptions modifies a single match attempt.
type matchOptions struct {
	// matchLimit caps the work the engine may spend on this attempt. 0 means
	// the budget is not applied.
	matchLimit uint64

	// notEmptyAtStart anchors the attempt at the start offset and rejects a
	// zero-length match there. Global iteration uses it to force forward
	// progress after a zero-length match.
	notEmptyAtStart bool
}

// matchEngine is one generation of the underlying matching engine. The
// iteration algorithms in Regex are engine-agnostic; everything
// engine-specific (option flags, offset bookkeeping, error classification)
// lives behind this interface.
type matchEngine interface {
	// findAt runs one match attempt starting at the given byte offset.
	// groups is nil when no match was found. Otherwise groups[0] is the whole
	// match and the remaining entries are the explicit capture groups in
	// order, with nil entries for groups that did not take part in the match.
	findAt(subject string, offset int, opts matchOptions) (groups []*span, result Result)

	// close releases the compiled program.
	close()
}

// EngineKind selects which engine generation backs a compiled pattern.
type EngineKind string

const (
	// EngineBacktrack is the backtracking engine with full Perl-compatible
	// semantics and a cooperative work budget.
	EngineBacktrack EngineKind = "backtrack"

	// EngineLinear is the linear-time engine. It cannot backtrack, so the
	// work budget does not apply to it.
	EngineLinear EngineKind = "linear"
)
