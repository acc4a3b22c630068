package regex

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/coregx/coregex"
	"rsc.io/binaryregexp"
)

var hexEscapeRegexp = regexp.MustCompile(`((^|[^\\])(\\\\)*)\\x([0-9a-fA-F]{2})`)

func containsHexEscapedBytes(s string) bool {
	return hexEscapeRegexp.MatchString(s)
}

// linearEngine adapts the linear-time engine generation. Patterns that search
// for raw non-UTF-8 bytes (hex escapes) compile on the binary-content engine
// instead; both share the same call surface.
type linearEngine struct {
	re    *coregex.Regex
	reBin *binaryregexp.Regexp
}

func newLinearEngine(expr string, ignoreCase bool) (e matchEngine, err error) {
	// The linear engines take their modes as inline flags rather than
	// compile options.
	flags := "sm"
	if ignoreCase {
		flags += "i"
	}

	hasHexEscapedBytes := containsHexEscapedBytes(expr)

	// If there are any non-printable characters, then convert them into the
	// \x00 representation.
	var b bytes.Buffer
	for i := 0; i < len(expr); i++ {
		// ' ' is the lowest value printable ASCII char, and '~' is the highest.
		if ' ' <= expr[i] && expr[i] <= '~' {
			b.WriteByte(expr[i])
		} else {
			fmt.Fprintf(&b, "\\x%02X", expr[i])
			hasHexEscapedBytes = true
		}
	}
	expr = "(?" + flags + ")" + b.String()

	le := &linearEngine{}
	if !hasHexEscapedBytes {
		le.re, err = coregex.Compile(expr)
	} else {
		le.reBin, err = binaryregexp.Compile(expr)
	}
	if err != nil {
		return
	}

	e = le
	return
}

func (e *linearEngine) findAt(subject string, offset int, opts matchOptions) (groups []*span, result Result) {
	if offset > len(subject) {
		return nil, ResultOk
	}

	// Neither linear engine can start a scan mid-subject, so the subject is
	// sliced instead. ^ anchors to the slice, which only differs from the
	// backtracking generation for patterns that re-anchor mid-line.
	var loc []int
	if e.re != nil {
		loc = e.re.FindStringSubmatchIndex(subject[offset:])
	} else {
		loc = e.reBin.FindStringSubmatchIndex(subject[offset:])
	}
	if loc == nil {
		return nil, ResultOk
	}

	if opts.notEmptyAtStart && (loc[0] != 0 || loc[1] == 0) {
		return nil, ResultOk
	}

	// A linear scan cannot exceed a work budget, so opts.matchLimit is not
	// applied here.
	groups = make([]*span, len(loc)/2)
	for i := range groups {
		if loc[2*i] < 0 {
			continue
		}
		groups[i] = &span{start: offset + loc[2*i], end: offset + loc[2*i+1]}
	}
	return groups, ResultOk
}

func (e *linearEngine) close() {}
