package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubEngine lets tests feed crafted engine responses into the iteration
// algorithms, including responses a well-behaved engine would never produce.
type stubEngine struct {
	findAtStubFunc func(subject string, offset int, opts matchOptions) ([]*span, Result)
}

func (e *stubEngine) findAt(subject string, offset int, opts matchOptions) ([]*span, Result) {
	return e.findAtStubFunc(subject, offset, opts)
}

func (e *stubEngine) close() {}

func newStubRegex(f func(subject string, offset int, opts matchOptions) ([]*span, Result)) *Regex {
	return &Regex{expr: "stub", eng: &stubEngine{findAtStubFunc: f}, cfg: DefaultConfig()}
}

func TestOutOfBoundsMatchNeverSurfaced(t *testing.T) {
	assert := assert.New(t)

	// An engine reporting a match whose end lies past the subject, once.
	newOutOfBoundsRegex := func() *Regex {
		calls := 0
		return newStubRegex(func(subject string, offset int, opts matchOptions) ([]*span, Result) {
			calls++
			if calls > 1 {
				return nil, ResultOk
			}
			return []*span{{start: 0, end: len(subject) + 3}}, ResultOk
		})
	}

	m, ok := newOutOfBoundsRegex().MatchFirst("abc")
	assert.False(ok)
	assert.Equal(Match{}, m)

	assert.Empty(newOutOfBoundsRegex().SearchAll("abc"))

	captures, result := newOutOfBoundsRegex().SearchOne("abc", 0)
	assert.Equal(ResultOk, result)
	assert.Empty(captures)

	captures, result = newOutOfBoundsRegex().SearchGlobal("abc", 0)
	assert.Equal(ResultOk, result)
	assert.Empty(captures)
}

func TestSearchAllAbortsIterationOnOutOfBoundsGroup(t *testing.T) {
	assert := assert.New(t)

	// First attempt: valid whole match, then an out-of-bounds group. The
	// valid part is kept, the rest of that iteration is abandoned, and the
	// scan stops.
	calls := 0
	re := newStubRegex(func(subject string, offset int, opts matchOptions) ([]*span, Result) {
		calls++
		return []*span{
			{start: 0, end: 2},
			{start: 0, end: len(subject) + 1},
			{start: 1, end: 2},
		}, ResultOk
	})

	matches := re.SearchAll("abcd")

	assert.Equal(1, calls)
	assert.Equal([]Match{{Text: "ab", Offset: 0}}, matches)
}

func TestSearchOneDropsOnlyOffendingCapture(t *testing.T) {
	assert := assert.New(t)

	re := newStubRegex(func(subject string, offset int, opts matchOptions) ([]*span, Result) {
		return []*span{
			{start: 0, end: 2},
			{start: 0, end: len(subject) + 1},
			{start: 1, end: 2},
		}, ResultOk
	})

	captures, result := re.SearchOne("abcd", 0)

	assert.Equal(ResultOk, result)
	assert.Equal([]Capture{
		{Group: 0, Offset: 0, Length: 2},
		{Group: 2, Offset: 1, Length: 1},
	}, captures)
}

func TestSearchGlobalStopsOnEngineError(t *testing.T) {
	assert := assert.New(t)

	// One good match, then an engine failure. Captures collected so far are
	// preserved and the outcome propagates.
	calls := 0
	re := newStubRegex(func(subject string, offset int, opts matchOptions) ([]*span, Result) {
		calls++
		if calls == 1 {
			return []*span{{start: 0, end: 1}}, ResultOk
		}
		return nil, ResultErrorOther
	})

	captures, result := re.SearchGlobal("abc", 0)

	assert.Equal(ResultErrorOther, result)
	assert.Equal([]Capture{{Group: 0, Offset: 0, Length: 1}}, captures)
}

func TestSearchGlobalForcesProgressAfterZeroLength(t *testing.T) {
	assert := assert.New(t)

	// An engine that always reports a zero-length match at the offset when
	// unconstrained and nothing on the forced retry. The loop must still
	// terminate and visit every position exactly once.
	re := newStubRegex(func(subject string, offset int, opts matchOptions) ([]*span, Result) {
		if opts.notEmptyAtStart {
			return nil, ResultOk
		}
		return []*span{{start: offset, end: offset}}, ResultOk
	})

	captures, result := re.SearchGlobal("abc", 0)

	assert.Equal(ResultOk, result)
	assert.Len(captures, 4)
	assert.Equal([]int{0, 1, 2, 3}, captureOffsets(captures))
}
