package format

import (
	"fmt"
	"strings"

	"beautysh/internal/style"
)

// Options configures one beautify call. The zero value formats with four
// spaces per level and no style rewrites.
type Options struct {
	// IndentSize is the number of spaces per level; ignored with UseTabs.
	IndentSize int
	// UseTabs indents with one tab per level.
	UseTabs bool
	// FunctionStyle normalizes function declarations; FunctionPreserve
	// keeps each declaration's original form.
	FunctionStyle style.Function
	// VariableStyle optionally brace-normalizes variable references.
	VariableStyle style.Variable
	// Report receives soft inconsistencies (mismatched closers, "esac"
	// before "case") with a 1-based line number. May be nil.
	Report func(line int, msg string)
}

func (o Options) withDefaults() Options {
	if o.IndentSize == 0 {
		o.IndentSize = 4
	}
	return o
}

// validate rejects option values the configuration layer should already
// have refused.
func (o Options) validate() error {
	if o.IndentSize < 0 {
		return fmt.Errorf("indent size must be positive, got %d", o.IndentSize)
	}
	if !o.FunctionStyle.Valid() {
		return fmt.Errorf("invalid function style value %d", o.FunctionStyle)
	}
	if !o.VariableStyle.Valid() {
		return fmt.Errorf("invalid variable style value %d", o.VariableStyle)
	}
	return nil
}

// prefix renders the leading whitespace for one indentation depth.
func (o Options) prefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	if o.UseTabs {
		return strings.Repeat("\t", depth)
	}
	return strings.Repeat(" ", depth*o.IndentSize)
}

// Result is the outcome of one beautify call.
type Result struct {
	Formatted string
	// Changed reports whether Formatted differs from the input.
	Changed bool
}

// IndentMismatchError reports a document whose opening and closing tokens
// do not balance. The formatted text is still usable best-effort output.
type IndentMismatchError struct {
	Level int
}

func (e *IndentMismatchError) Error() string {
	return fmt.Sprintf("indent/outdent mismatch: %d", e.Level)
}
