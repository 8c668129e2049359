package source

import "strings"

// Document is an immutable view of one shell script: its physical lines plus
// whether the original text ended with a newline, so the output can reproduce
// it exactly.
type Document struct {
	lines []string
	// finalNewline records whether the raw input ended with '\n'.
	finalNewline bool
}

// NewDocument splits raw source text into physical lines.
func NewDocument(text string) *Document {
	if text == "" {
		return &Document{}
	}
	finalNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return &Document{lines: lines, finalNewline: finalNewline}
}

// Lines returns the physical lines without terminators.
func (d *Document) Lines() []string {
	return d.lines
}

// Len reports the number of physical lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// FinalNewline reports whether the source ended with a newline.
func (d *Document) FinalNewline() bool {
	return d.finalNewline
}

// Join reassembles lines into a full text, restoring the document's original
// trailing-newline convention.
func (d *Document) Join(lines []string) string {
	out := strings.Join(lines, "\n")
	if d.finalNewline {
		out += "\n"
	}
	return out
}
