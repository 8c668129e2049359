package scan

import "strings"

// Classify examines one physical line with the quoting and here-doc state
// carried in from earlier lines, updates that state, and reports what the
// indentation logic needs to know about the line.
//
// Classification priority across the line's bytes: escape sequences, single
// quotes, double quotes, substitution markers (tracked for balance only),
// here-doc openers, comment start. Content inside quotes, backtick
// substitutions and comments never reaches the masked structural text.
func Classify(line string, st *State) Record {
	rec := Record{Raw: line, Trimmed: strings.TrimSpace(line), CommentIdx: -1}
	rec.Blank = rec.Trimmed == ""

	// Inside a here-doc body the line is opaque text; only the terminator
	// line ends it. Leading tabs are ignored for <<- and <<~ openers.
	if st.Active != nil {
		rec.Passive = true
		term := line
		if st.Active.StripTabs {
			term = strings.TrimLeft(term, "\t")
		}
		if term == st.Active.Word {
			rec.HeredocEnd = true
			st.Active = nil
			st.nextHeredoc()
		}
		return rec
	}

	// Inside a multi-line string: pass through, but keep watching for the
	// closing quote.
	if st.InQuote() {
		rec.Passive = true
		scanQuoted(line, st)
		return rec
	}

	if rec.Blank {
		return rec
	}

	scanStructure(rec.Trimmed, st, &rec)
	rec.OpenedQuote = st.InQuote()
	st.nextHeredoc()
	return rec
}

// scanQuoted advances quote state across a passive string-continuation line.
func scanQuoted(line string, st *State) {
	cur := NewCursor(line)
	for !cur.EOF() {
		b := cur.Bump()
		switch {
		case st.InSingle:
			if b == '\'' {
				st.InSingle = false
			}
		case st.InDouble:
			if b == '\\' {
				cur.Bump()
				continue
			}
			if b == '"' {
				st.InDouble = false
			}
		default:
			switch b {
			case '\\':
				cur.Bump()
			case '\'':
				st.InSingle = true
			case '"':
				st.InDouble = true
			}
		}
	}
}

// scanStructure walks the trimmed line byte-by-byte, building the masked
// structural text and registering here-doc openers.
func scanStructure(s string, st *State, rec *Record) {
	var masked strings.Builder
	cur := NewCursor(s)
	arith := 0 // $(( )) nesting; << inside is a shift, not a here-doc

scanning:
	for !cur.EOF() {
		b := cur.Peek()
		switch {
		case st.InSingle:
			cur.Bump()
			if b == '\'' {
				st.InSingle = false
			}
		case st.InDouble:
			cur.Bump()
			if b == '\\' {
				cur.Bump()
				continue
			}
			if b == '"' {
				st.InDouble = false
			}
		default:
			switch b {
			case '\\':
				cur.Bump()
				if cur.EOF() {
					rec.Continued = true
					continue
				}
				cur.Bump()
			case '\'':
				cur.Bump()
				st.InSingle = true
			case '"':
				cur.Bump()
				st.InDouble = true
			case '`':
				// A pair closing on the same line collapses with its
				// content; a stray backtick stays in the masked text,
				// where it is inert.
				rest := s[cur.Pos()+1:]
				if j := strings.IndexByte(rest, '`'); j >= 0 {
					for k := 0; k < j+2; k++ {
						cur.Bump()
					}
				} else {
					masked.WriteByte(cur.Bump())
				}
			case '#':
				if cur.Pos() == 0 || cur.Prev() == ' ' || cur.Prev() == '\t' {
					rec.CommentIdx = cur.Pos()
					rec.CommentOnly = cur.Pos() == 0
					break scanning
				}
				masked.WriteByte(cur.Bump())
			case '$':
				if b0, b1, b2, ok := cur.Peek3(); ok && b0 == '$' && b1 == '(' && b2 == '(' {
					arith++
					masked.WriteByte(cur.Bump())
					masked.WriteByte(cur.Bump())
					masked.WriteByte(cur.Bump())
					continue
				}
				masked.WriteByte(cur.Bump())
			case ')':
				if arith > 0 {
					if _, b1, ok := cur.Peek2(); ok && b1 == ')' {
						arith--
					}
				}
				masked.WriteByte(cur.Bump())
			case '<':
				if _, b1, ok := cur.Peek2(); ok && b1 == '<' {
					scanHeredocOp(s, &cur, st, &masked, arith)
				} else {
					masked.WriteByte(cur.Bump())
				}
			default:
				masked.WriteByte(cur.Bump())
			}
		}
	}
	rec.Masked = masked.String()
}

// scanHeredocOp consumes a << operator. The cursor sits on the first '<'.
// Here-strings (<<<) and shifts inside arithmetic context are not here-docs.
func scanHeredocOp(s string, cur *Cursor, st *State, masked *strings.Builder, arith int) {
	masked.WriteByte(cur.Bump())
	masked.WriteByte(cur.Bump())
	if cur.Peek() == '<' {
		masked.WriteByte(cur.Bump())
		return
	}
	if arith > 0 {
		return
	}
	stripTabs := false
	if cur.Peek() == '-' || cur.Peek() == '~' {
		stripTabs = true
		masked.WriteByte(cur.Bump())
	}
	for cur.Peek() == ' ' || cur.Peek() == '\t' {
		masked.WriteByte(cur.Bump())
	}
	quoted := false
	var quote byte
	switch cur.Peek() {
	case '\'', '"':
		quoted = true
		quote = cur.Bump()
	case '\\':
		quoted = true
		cur.Bump()
	}
	wordStart := cur.Pos()
	for isTermByte(cur.Peek()) {
		cur.Bump()
	}
	word := s[wordStart:cur.Pos()]
	if quote != 0 {
		cur.Eat(quote)
	}
	if word == "" {
		return
	}
	masked.WriteString(word)
	st.Pending = append(st.Pending, Heredoc{
		Word:      word,
		Quoted:    quoted,
		Expand:    !quoted,
		StripTabs: stripTabs,
	})
}

func isTermByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
