package format

import (
	"regexp"
	"strings"

	"beautysh/internal/scan"
)

// ContextKind tags an open construct on the indent context stack.
type ContextKind uint8

const (
	KindConditional ContextKind = iota // then ... fi
	KindLoop                           // do ... done
	KindCase                           // case ... esac
	KindCaseArm                        // pattern) ... ;;
	KindBraceGroup                     // { ... }
	KindSubshell                       // ( ... )
	KindBracketTest                    // [ / [[ left open across lines
)

// Context is one open block and the depth at which it opened.
type Context struct {
	Kind  ContextKind
	Depth int
}

// Keyword tables, matched against masked structural text only. Keywords
// count at word positions delimited by whitespace, semicolons or the line
// edges; "done" inside a word or a quoted string never counts.
var (
	incKeywords = regexp.MustCompile(`(\s|^|;)(case|then|do)(;|$|\s)`)
	decKeywords = regexp.MustCompile(`(\s|^|;)(esac|fi|done|elif)(;|\)|\||$|\s)`)
	caseKeyword = regexp.MustCompile(`(\s|^|;)case\s`)
	esacKeyword = regexp.MustCompile(`\besac\b`)
	casePattern = regexp.MustCompile(`^[^(]+\)`)
	elseElif    = regexp.MustCompile(`^(else|elif\s.*?;\s+?then)`)
)

// machine is the indentation state machine. It consumes classification
// records in document order and yields the depth each line renders at.
type machine struct {
	level      int // current depth, clamped at 0
	balance    int // raw opens minus closes, may go negative on busted input
	caseLevel  int
	openSquare int // unbalanced [ count: hand-formatted multi-line condition
	stack      []Context

	prevContinued bool
	continued     bool

	report func(line int, msg string)
}

func newMachine(report func(line int, msg string)) *machine {
	return &machine{report: report}
}

func (m *machine) reportf(line int, msg string) {
	if m.report != nil {
		m.report(line, msg)
	}
}

// Level is the current depth, used for lines rendered without per-line
// adjustments (multi-line string openers).
func (m *machine) Level() int {
	return m.level
}

// InCase reports whether the machine is inside a case statement.
func (m *machine) InCase() bool {
	return m.caseLevel > 0
}

// OpenSquare reports unbalanced [ brackets left open on earlier lines.
func (m *machine) OpenSquare() int {
	return m.openSquare
}

// Advance consumes one active line and returns its rendering depth.
func (m *machine) Advance(rec scan.Record, line int) int {
	m.prevContinued = m.continued
	m.continued = rec.Continued
	mask := rec.Masked

	inc := len(incKeywords.FindAllString(mask, -1)) + countAny(mask, "{([")
	outc := len(decKeywords.FindAllString(mask, -1)) + countAny(mask, "})]")

	if esacKeyword.MatchString(mask) {
		if m.caseLevel == 0 {
			m.reportf(line, `"esac" before "case"`)
		} else {
			outc++
			m.caseLevel--
		}
	}
	if caseKeyword.MatchString(mask) {
		inc++
		m.caseLevel++
	}

	// A case pattern opens its action block one level deeper while the
	// pattern line itself renders one shallower than that block.
	choice := 0
	if m.caseLevel > 0 && casePattern.MatchString(mask) {
		inc++
		choice = -1
	}

	// Standalone arm terminators render at the pattern's depth.
	term := 0
	if m.caseLevel > 0 && isCaseTerminator(strings.TrimSpace(mask)) {
		term = -1
	}

	// else / single-line elif...then: dedent this line only.
	elseCase := 0
	if elseElif.MatchString(mask) {
		elseCase = -1
	}

	net := inc - outc
	m.balance += net
	if net < 0 {
		m.lower(-net, line)
	}

	depth := m.level + elseCase + choice + term
	if m.prevContinued && m.openSquare == 0 {
		depth++
	}
	if depth < 0 {
		depth = 0
	}

	if net > 0 {
		m.raise(net, mask)
	}

	m.trackSquare(mask)
	return depth
}

// NoteVerbatim records a line emitted without re-indentation (passthrough
// region, preserved multi-line condition) that still participates in
// continuation and bracket tracking.
func (m *machine) NoteVerbatim(rec scan.Record) {
	m.prevContinued = m.continued
	m.continued = rec.Continued
	m.trackSquare(rec.Masked)
}

// NotePassive records a line inside a passive region. Trailing backslashes
// there are content, not continuations.
func (m *machine) NotePassive() {
	m.prevContinued = m.continued
	m.continued = false
}

// NoteOpener records a multi-line string opener.
func (m *machine) NoteOpener() {
	m.prevContinued = m.continued
	m.continued = false
}

// Finish reports whether the document closed every construct it opened.
func (m *machine) Finish() error {
	if m.balance != 0 {
		return &IndentMismatchError{Level: m.balance}
	}
	return nil
}

// raise pushes contexts for this line's net opens.
func (m *machine) raise(n int, mask string) {
	kinds := openKinds(mask, n)
	for _, k := range kinds {
		m.stack = append(m.stack, Context{Kind: k, Depth: m.level})
		m.level++
	}
}

// lower pops contexts for this line's net closes. Popping an empty stack
// clamps at depth 0 instead of going negative.
func (m *machine) lower(n int, line int) {
	for i := 0; i < n; i++ {
		if len(m.stack) == 0 {
			m.reportf(line, "unbalanced closing token")
			continue
		}
		m.stack = m.stack[:len(m.stack)-1]
		m.level--
	}
	if m.level < 0 {
		m.level = 0
	}
}

func (m *machine) trackSquare(mask string) {
	m.openSquare += strings.Count(mask, "[") - strings.Count(mask, "]")
	if m.openSquare < 0 {
		m.openSquare = 0
	}
}

// openKinds guesses the kinds of the n contexts a line opens, in keyword
// order then bracket order. The counting model does not pair openers and
// closers precisely; kinds exist for diagnostics, not for correctness.
func openKinds(mask string, n int) []ContextKind {
	kinds := make([]ContextKind, 0, n)
	for _, kw := range incKeywords.FindAllStringSubmatch(mask, -1) {
		switch kw[2] {
		case "then":
			kinds = append(kinds, KindConditional)
		case "do":
			kinds = append(kinds, KindLoop)
		case "case":
			kinds = append(kinds, KindCase)
		}
	}
	if caseKeyword.MatchString(mask) {
		kinds = append(kinds, KindCase)
	}
	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case '{':
			kinds = append(kinds, KindBraceGroup)
		case '(':
			kinds = append(kinds, KindSubshell)
		case '[':
			kinds = append(kinds, KindBracketTest)
		}
	}
	for len(kinds) < n {
		kinds = append(kinds, KindCaseArm)
	}
	return kinds[:n]
}

func countAny(s, chars string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(chars, s[i]) >= 0 {
			n++
		}
	}
	return n
}

func isCaseTerminator(s string) bool {
	return s == ";;" || s == ";&" || s == ";;&"
}
