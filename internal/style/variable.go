package style

import (
	"regexp"
	"strings"
)

var caseTerminator = regexp.MustCompile(`(\S);;`)

// SpaceBeforeCaseTerminator inserts a space before ;; when it is glued to
// the preceding word, so case arm terminators line up consistently.
func SpaceBeforeCaseTerminator(line string) string {
	return caseTerminator.ReplaceAllString(line, "${1} ;;")
}

// ApplyBraces rewrites bare $NAME references to ${NAME}. It walks the line
// itself so the rewrite stays out of single-quoted spans (no expansion
// there) and comments, while still applying inside double quotes where
// expansion is live. Special single-character references ($?, $$, $0..$9,
// ...) never match the NAME shape; already-braced and parameter-expansion
// forms start with ${ and are skipped the same way.
func ApplyBraces(line string) string {
	var out strings.Builder
	out.Grow(len(line) + 8)
	inSingle, inDouble := false, false
	i := 0
	for i < len(line) {
		c := line[i]
		if inSingle {
			if c == '\'' {
				inSingle = false
			}
			out.WriteByte(c)
			i++
			continue
		}
		switch c {
		case '\\':
			// escape pair is copied verbatim; a \$ must not be rewritten
			out.WriteByte(c)
			i++
			if i < len(line) {
				out.WriteByte(line[i])
				i++
			}
		case '\'':
			if !inDouble {
				inSingle = true
			}
			out.WriteByte(c)
			i++
		case '"':
			inDouble = !inDouble
			out.WriteByte(c)
			i++
		case '#':
			if !inDouble && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
				out.WriteString(line[i:])
				return out.String()
			}
			out.WriteByte(c)
			i++
		case '$':
			// $$ is the PID parameter; $$foo must stay two tokens
			if i > 0 && line[i-1] == '$' {
				out.WriteByte(c)
				i++
				continue
			}
			name := leadingName(line[i+1:])
			if name == "" {
				out.WriteByte(c)
				i++
				continue
			}
			out.WriteString("${")
			out.WriteString(name)
			out.WriteByte('}')
			i += 1 + len(name)
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// leadingName returns the longest [A-Za-z_][A-Za-z0-9_]* prefix of s.
func leadingName(s string) string {
	if s == "" || !isNameStart(s[0]) {
		return ""
	}
	i := 1
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return s[:i]
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}
