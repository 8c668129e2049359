// Package format turns raw shell source into consistently indented output.
// It drives the per-line classifier, the indentation state machine and the
// optional style rewrites, and reassembles the final text.
package format

import (
	"regexp"
	"strings"

	"beautysh/internal/scan"
	"beautysh/internal/source"
	"beautysh/internal/style"
)

// Pass-through region markers, honored only on comment-only lines.
var (
	formatterOff = regexp.MustCompile(`#\s*@formatter:off`)
	formatterOn  = regexp.MustCompile(`#\s*@formatter:on`)
)

// do/then and case glued on one line complicate depth tracking; they are
// split onto separate lines before the main pass.
var (
	doCase    = regexp.MustCompile(`(\s|^|;)(do|then)(\s+)(case\s)`)
	caseSplit = regexp.MustCompile(`(\s+)(case\s)`)
)

// Beautify reformats a whole script. The returned text is best-effort even
// when err is non-nil: structural soft errors (unterminated quotes or
// here-docs, unbalanced closers) never corrupt output, and a final
// indent/outdent mismatch is reported alongside the formatted text.
func Beautify(src string, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Result{Formatted: src}, err
	}
	if src == "" {
		return Result{}, nil
	}

	doc := source.NewDocument(src)
	lines := splitDoCase(doc.Lines())

	m := newMachine(opts.Report)
	st := &scan.State{}
	active := true
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		num := i + 1
		rec := scan.Classify(line, st)

		switch {
		case rec.Passive:
			// here-doc bodies and string continuations: byte-for-byte
			m.NotePassive()
			out = append(out, rec.Raw)

		case !active:
			m.NoteVerbatim(rec)
			if rec.CommentOnly && formatterOn.MatchString(rec.Trimmed) {
				active = true
			}
			out = append(out, strings.TrimRight(rec.Raw, " \t"))

		case rec.CommentOnly && formatterOff.MatchString(rec.Trimmed):
			active = false
			m.NoteVerbatim(rec)
			out = append(out, strings.TrimRight(rec.Raw, " \t"))

		case rec.Blank:
			out = append(out, "")

		case rec.OpenedQuote:
			// Opening line of a multi-line string: indent at the current
			// depth, leave the rest of the string alone.
			m.NoteOpener()
			text := rec.Trimmed
			if opts.VariableStyle == style.VariableBraces {
				text = style.ApplyBraces(text)
			}
			out = append(out, opts.prefix(m.Level())+text)

		case m.OpenSquare() > 0:
			// Multi-line conditions are often meticulously hand-formatted:
			// keep the text, but still track the depth it opens and closes.
			m.Advance(rec, num)
			out = append(out, strings.TrimRight(rec.Raw, " \t"))

		default:
			inCase := m.InCase()
			depth := m.Advance(rec, num)
			text := rec.Trimmed
			if det, ok := style.DetectFunction(rec.Masked); ok && opts.FunctionStyle != style.FunctionPreserve {
				text = rewriteFunction(text, rec.CommentIdx, det, opts.FunctionStyle)
			}
			if inCase {
				text = style.SpaceBeforeCaseTerminator(text)
			}
			if opts.VariableStyle == style.VariableBraces {
				text = style.ApplyBraces(text)
			}
			out = append(out, opts.prefix(depth)+text)
		}
	}

	err := m.Finish()
	res := Result{Formatted: doc.Join(out)}
	res.Changed = res.Formatted != src
	return res, err
}

// splitDoCase breaks "while x; do case $y in" style lines in two. The
// decision uses a scratch classifier pass so text inside here-docs and
// strings is never split.
func splitDoCase(lines []string) []string {
	st := &scan.State{}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rec := scan.Classify(line, st)
		if !rec.Passive && doCase.MatchString(rec.Masked) {
			if loc := caseSplit.FindStringSubmatchIndex(line); loc != nil {
				at := loc[4] // start of "case"
				out = append(out, strings.TrimRight(line[:at], " \t"), line[at:])
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// rewriteFunction applies the declaration rewrite to the pre-comment part
// of the line so trailing comment text is never rewritten.
func rewriteFunction(text string, commentIdx int, detected, target style.Function) string {
	if commentIdx < 0 {
		return style.ApplyFunction(text, detected, target)
	}
	head := style.ApplyFunction(text[:commentIdx], detected, target)
	return head + " " + text[commentIdx:]
}
