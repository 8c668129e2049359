package scan

// Heredoc records one pending or active here-document terminator.
type Heredoc struct {
	// Word is the bare terminator text, e.g. "EOF".
	Word string
	// Quoted marks a quoted (or backslash-escaped) terminator.
	Quoted bool
	// Expand reports whether the shell would expand the body. Always the
	// inverse of Quoted; kept separate because downstream passes care about
	// expansion, not about how the opener was spelled.
	Expand bool
	// StripTabs marks <<- and <<~ openers, whose terminator line may carry
	// leading tabs.
	StripTabs bool
}

// State is the classifier's carry-over between physical lines. A fresh State
// is valid for the first line of a document.
type State struct {
	// InSingle / InDouble: an unterminated quote from an earlier line.
	InSingle bool
	InDouble bool
	// Pending holds here-docs opened but whose body has not started yet,
	// in order of appearance. Several can queue up on a single line
	// (cat <<A <<B); bodies are consumed in that order.
	Pending []Heredoc
	// Active is the here-doc whose body is currently being consumed.
	Active *Heredoc
}

// InQuote reports whether the next line starts inside a quoted string.
func (st *State) InQuote() bool {
	return st.InSingle || st.InDouble
}

// nextHeredoc promotes the oldest pending here-doc to active, if any.
func (st *State) nextHeredoc() {
	if st.Active != nil || len(st.Pending) == 0 {
		return
	}
	hd := st.Pending[0]
	st.Pending = st.Pending[1:]
	st.Active = &hd
}

// Record is the classifier's verdict on one physical line.
type Record struct {
	// Raw is the line exactly as read, Trimmed is Raw without surrounding
	// whitespace.
	Raw     string
	Trimmed string
	// Masked is the structural residue of Trimmed: quoted spans, escape
	// pairs, backtick substitutions and the trailing comment are dropped,
	// so keyword and bracket matching cannot hit literal text.
	Masked string
	// CommentIdx is the byte offset in Trimmed where a comment begins,
	// or -1.
	CommentIdx int

	Blank       bool
	CommentOnly bool
	// Passive lines (here-doc bodies, string continuations) must be
	// reproduced without any reformatting.
	Passive bool
	// HeredocEnd marks the line that terminates the active here-doc.
	HeredocEnd bool
	// Continued marks an unescaped trailing backslash outside quotes.
	Continued bool
	// OpenedQuote marks a line that leaves a quote open it did not start
	// with: the beginning of a multi-line string.
	OpenedQuote bool
}
