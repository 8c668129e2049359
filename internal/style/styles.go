// Package style rewrites already-classified shell text: function declaration
// normalization and variable brace normalization. It never changes line
// counts and never touches single-quoted text, comments or here-doc bodies
// (passive lines are filtered out by the caller).
package style

import "fmt"

// Function is one of the three Bash function declaration renderings, or
// FunctionPreserve to keep each declaration as written.
type Function uint8

const (
	FunctionPreserve Function = iota
	Fnpar                     // function foo()
	Fnonly                    // function foo
	Paronly                   // foo()
)

var functionNames = map[string]Function{
	"fnpar":   Fnpar,
	"fnonly":  Fnonly,
	"paronly": Paronly,
}

// ParseFunction maps a user-facing style name to its Function value.
func ParseFunction(name string) (Function, error) {
	if f, ok := functionNames[name]; ok {
		return f, nil
	}
	return FunctionPreserve, fmt.Errorf("unknown function style %q (want fnpar, fnonly or paronly)", name)
}

func (f Function) String() string {
	switch f {
	case Fnpar:
		return "fnpar"
	case Fnonly:
		return "fnonly"
	case Paronly:
		return "paronly"
	default:
		return "preserve"
	}
}

// Valid reports whether f is a known value, including FunctionPreserve.
func (f Function) Valid() bool {
	return f <= Paronly
}

// Variable selects the variable reference rewrite.
type Variable uint8

const (
	VariableDefault Variable = iota // leave references as written
	VariableBraces                  // $NAME -> ${NAME}
)

// ParseVariable maps a user-facing variable style name to its Variable value.
func ParseVariable(name string) (Variable, error) {
	if name == "braces" {
		return VariableBraces, nil
	}
	return VariableDefault, fmt.Errorf("unknown variable style %q (want braces)", name)
}

func (v Variable) String() string {
	if v == VariableBraces {
		return "braces"
	}
	return "default"
}

// Valid reports whether v is a known value.
func (v Variable) Valid() bool {
	return v <= VariableBraces
}
