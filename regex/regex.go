// Package regex is the pattern-matching core of the rule engine: compiled
// regular expressions with PCRE-style match-iteration semantics, abstracted
// over two underlying engine generations, with optional Hyperscan
// acceleration.
package regex

import "fmt"

// wildcardExpr stands in for an empty pattern. It matches any subject,
// including the empty one.
const wildcardExpr = ".*"

// Config is the engine-wide configuration shared by all compiled patterns.
// It is injected at construction rather than read from a global.
type Config struct {
	// Engine selects the engine generation. The zero value means EngineBacktrack.
	Engine EngineKind

	// CRLFIsNewline reports whether the engine treats CR+LF as a single
	// newline unit. Global matching steps over both bytes at once when it has
	// to advance past a position manually.
	CRLFIsNewline bool

	// MatchLimit is the default work budget for a single match attempt.
	// 0 means unlimited.
	MatchLimit uint64

	// Prefilter enables best-effort Hyperscan acceleration of compiled
	// patterns. Acceleration failure is never an error; matching falls back
	// to the unaccelerated path.
	Prefilter bool
}

// DefaultConfig returns the configuration used when none is supplied by the
// composition root.
func DefaultConfig() Config {
	return Config{Engine: EngineBacktrack, CRLFIsNewline: true, Prefilter: true}
}

// Match is one match occurrence found in a subject.
type Match struct {
	// Text is the matched substring.
	Text string

	// Offset is the byte position in the subject where the match begins.
	Offset int
}

// Capture is one capture group result within a single match attempt. Group 0
// is the whole match; higher indexes are the explicit groups. During global
// matching the group index keeps incrementing across matches, so the captures
// belonging to one match occupy a contiguous index range.
type Capture struct {
	Group  int
	Offset int
	Length int
}

// Regex is one compiled pattern plus its optional acceleration database. It
// is immutable after construction: all matching operations are read-only and
// safe for concurrent use. Per-call scratch state is allocated fresh on every
// call and never shared.
type Regex struct {
	expr string
	eng  matchEngine
	pre  *prefilter
	cfg  Config
}

// New compiles expr, selecting the engine generation from cfg. An empty expr
// compiles the wildcard pattern. Compilation always requests dot-matches-any
// and multiline anchor semantics; ignoreCase is baked into the compiled
// program. Construction fails if the pattern does not compile.
func New(expr string, ignoreCase bool, cfg Config) (re *Regex, err error) {
	if expr == "" {
		expr = wildcardExpr
	}

	var eng matchEngine
	switch cfg.Engine {
	case EngineLinear:
		eng, err = newLinearEngine(expr, ignoreCase)
	case EngineBacktrack, "":
		eng, err = newBacktrackEngine(expr, ignoreCase, cfg.MatchLimit)
	default:
		err = fmt.Errorf("unknown engine kind %q", cfg.Engine)
	}
	if err != nil {
		err = fmt.Errorf("failed to compile pattern %v. Error was: %v", expr, err)
		return
	}

	re = &Regex{expr: expr, eng: eng, cfg: cfg}
	if cfg.Prefilter {
		re.pre = newPrefilter(expr, ignoreCase)
	}
	return
}

// Expr returns the pattern text the Regex was compiled from.
func (re *Regex) Expr() string { return re.expr }

// CRLFIsNewline reports whether the active engine configuration treats CR+LF
// as a single newline unit.
func (re *Regex) CRLFIsNewline() bool { return re.cfg.CRLFIsNewline }

// Close releases the compiled program and, if present, the acceleration
// database. Matching calls made after Close fail with ResultErrorOther rather
// than touching a released handle.
func (re *Regex) Close() {
	if re.eng != nil {
		re.eng.close()
		re.eng = nil
	}
	re.pre.close()
	re.pre = nil
}

// Match reports whether the pattern matches anywhere in subject.
func (re *Regex) Match(subject string) bool {
	if re.eng == nil {
		return false
	}
	if re.pre.scan(subject) == prefilterMiss {
		return false
	}

	groups, _ := re.eng.findAt(subject, 0, matchOptions{})
	return groups != nil
}

// MatchFirst returns the first match in subject. The match is built from the
// whole-match group of a single attempt at offset 0.
func (re *Regex) MatchFirst(subject string) (m Match, ok bool) {
	if re.eng == nil {
		return
	}
	if re.pre.scan(subject) == prefilterMiss {
		return
	}

	groups, _ := re.eng.findAt(subject, 0, matchOptions{})
	if groups == nil || groups[0] == nil || groups[0].end > len(subject) {
		return
	}
	m = Match{Text: subject[groups[0].start:groups[0].end], Offset: groups[0].start}
	ok = true
	return
}

// SearchAll finds every match in subject, collecting each explicit capture
// group along the way, most-recently-found first. The scan cursor advances to
// the end of each recorded group; a zero-length group stops the scan after
// being recorded, and a group that did not take part in the match or whose
// end lies past the subject aborts it.
func (re *Regex) SearchAll(subject string) (matches []Match) {
	if re.eng == nil {
		return
	}
	if re.pre.scan(subject) == prefilterMiss {
		return
	}

	offset := 0
	for {
		groups, _ := re.eng.findAt(subject, offset, matchOptions{})
		if groups == nil {
			break
		}

		stop := false
		for _, g := range groups {
			if g == nil || g.end > len(subject) {
				stop = true
				break
			}

			// Prepend so the most recent find comes first.
			matches = append([]Match{{Text: subject[g.start:g.end], Offset: g.start}}, matches...)
			offset = g.end

			if g.end == g.start {
				stop = true
				break
			}
		}
		if stop {
			break
		}
	}
	return
}

// SearchOne runs exactly one match attempt and returns every capture group
// from it, each tagged with its own group index. A nonzero matchLimit applies
// the engine work budget; 0 leaves it off. On the backtracking engine the
// budget is fixed at construction from Config.MatchLimit, so the per-call
// value only switches it on. A group whose end lies past the subject is
// dropped.
func (re *Regex) SearchOne(subject string, matchLimit uint64) (captures []Capture, result Result) {
	if re.eng == nil {
		return nil, ResultErrorOther
	}
	if re.pre.scan(subject) == prefilterMiss {
		return nil, ResultOk
	}

	groups, result := re.eng.findAt(subject, 0, matchOptions{matchLimit: matchLimit})
	for i, g := range groups {
		if g == nil || g.end > len(subject) {
			continue
		}
		captures = append(captures, Capture{Group: i, Offset: g.start, Length: g.end - g.start})
	}
	return
}

// SearchGlobal repeatedly matches across the whole subject with the same
// forward-progress rules PCRE uses for global substitution. After a
// zero-length match the next attempt is anchored at the same position and
// disallowed from matching empty there; if that attempt finds nothing, the
// cursor steps over one position, or two when the configuration treats CRLF
// as a single newline and the cursor sits between its two bytes. matchLimit
// applies the work budget per attempt the same way SearchOne does. A non-Ok
// attempt outcome stops the iteration immediately, preserving the captures
// collected so far.
func (re *Regex) SearchGlobal(subject string, matchLimit uint64) (captures []Capture, result Result) {
	if re.eng == nil {
		return nil, ResultErrorOther
	}
	if re.pre.scan(subject) == prefilterMiss {
		return nil, ResultOk
	}

	offset := 0
	prevMatchZeroLength := false
	for offset <= len(subject) {
		opts := matchOptions{matchLimit: matchLimit, notEmptyAtStart: prevMatchZeroLength}
		groups, res := re.eng.findAt(subject, offset, opts)
		if res != ResultOk {
			return captures, res
		}

		if groups == nil {
			if !prevMatchZeroLength {
				// Normal case; no match on an unconstrained scan. We are done.
				break
			}

			// The previous scan found a zero-length match, so this was the
			// anchored non-empty retry at the same position. It found
			// nothing, so advance by one character (or two for CRLF).
			offset++
			if re.cfg.CRLFIsNewline && offset < len(subject) &&
				subject[offset-1] == '\r' && subject[offset] == '\n' {
				offset++
			}
			prevMatchZeroLength = false
			continue
		}

		firstGroupForThisFullMatch := len(captures)
		for i, g := range groups {
			if g == nil || g.end > len(subject) {
				continue
			}
			captures = append(captures, Capture{
				Group:  firstGroupForThisFullMatch + i,
				Offset: g.start,
				Length: g.end - g.start,
			})

			if i == 0 {
				if g.end > g.start {
					// Normal case; the next attempt starts after the end of
					// the full match.
					offset = g.end
					prevMatchZeroLength = false
				} else if offset == len(subject) {
					// Zero-length match at end of subject; force loop termination.
					offset++
				} else {
					// Zero-length match mid-subject; adjust the next attempt.
					prevMatchZeroLength = true
				}
			}
		}
	}

	return captures, ResultOk
}
