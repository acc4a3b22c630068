package regex

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// The backtracking engine enforces its work budget as a cooperative deadline
// checked by its own step clock, and the deadline is a property of the
// compiled program rather than of one call. The budget is mapped onto the
// deadline at this fixed rate.
const backtrackStepsPerMilli = 100000

// Budget assumed when the configuration does not set one but a caller asks
// for budgeted matching anyway.
const defaultBacktrackSteps = 10000000

// backtrackEngine adapts the Perl-compatible backtracking engine. Two
// programs are compiled from the same pattern: one unbounded, one carrying
// the budget deadline. findAt picks per call based on whether the budget is
// applied.
type backtrackEngine struct {
	re        *regexp2.Regexp
	reBounded *regexp2.Regexp
}

func newBacktrackEngine(expr string, ignoreCase bool, matchLimit uint64) (e matchEngine, err error) {
	opts := regexp2.None | regexp2.Singleline | regexp2.Multiline
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return
	}

	reBounded, err := regexp2.Compile(expr, opts)
	if err != nil {
		return
	}
	if matchLimit == 0 {
		matchLimit = defaultBacktrackSteps
	}
	reBounded.MatchTimeout = time.Duration(matchLimit/backtrackStepsPerMilli+1) * time.Millisecond

	e = &backtrackEngine{re: re, reBounded: reBounded}
	return
}

func (e *backtrackEngine) findAt(subject string, offset int, opts matchOptions) (groups []*span, result Result) {
	re := e.re
	if opts.matchLimit > 0 {
		re = e.reBounded
	}

	ro := newRuneOffsets(subject)
	m, err := re.FindStringMatchStartingAt(subject, ro.toRunes(offset))
	if err != nil {
		return nil, classifyBacktrackError(err)
	}
	if m == nil {
		return nil, ResultOk
	}

	// The engine has no anchored or not-empty-at-start execution options. For
	// the forced-progress retry, a match that starts past the offset or is
	// empty at the offset counts as no match.
	if opts.notEmptyAtStart && (ro.toBytes(m.Index) != offset || m.Length == 0) {
		return nil, ResultOk
	}

	gg := m.Groups()
	groups = make([]*span, len(gg))
	for i := range gg {
		g := &gg[i]
		if len(g.Captures) == 0 {
			// Group did not take part in this match.
			continue
		}
		groups[i] = &span{start: ro.toBytes(g.Index), end: ro.toBytes(g.Index + g.Length)}
	}
	return groups, ResultOk
}

func (e *backtrackEngine) close() {}

func classifyBacktrackError(err error) Result {
	// The engine exposes no sentinel value for its cooperative deadline.
	if strings.Contains(err.Error(), "timeout") {
		return ResultErrorMatchLimit
	}
	return ResultErrorOther
}

// runeOffsets converts between the byte offsets the iteration algorithms work
// in and the rune indexes the backtracking engine reports. A nil value is the
// fast path for subjects without multi-byte characters, where the two index
// spaces are identical.
type runeOffsets struct {
	byteAt []int // byteAt[i] is the byte offset of rune i; the last entry is len(subject)
}

func newRuneOffsets(s string) *runeOffsets {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ro := &runeOffsets{byteAt: make([]int, 0, len(s)+1)}
			for j := range s {
				ro.byteAt = append(ro.byteAt, j)
			}
			ro.byteAt = append(ro.byteAt, len(s))
			return ro
		}
	}
	return nil
}

func (ro *runeOffsets) toBytes(runeIdx int) int {
	if ro == nil {
		return runeIdx
	}
	if runeIdx >= len(ro.byteAt) {
		return ro.byteAt[len(ro.byteAt)-1]
	}
	return ro.byteAt[runeIdx]
}

func (ro *runeOffsets) toRunes(byteOff int) int {
	if ro == nil {
		return byteOff
	}
	// The iteration algorithms only ever sit on rune boundaries, so an exact
	// entry always exists.
	return sort.SearchInts(ro.byteAt, byteOff)
}
