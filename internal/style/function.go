package style

import (
	"regexp"
	"strings"
)

// Declaration patterns, ordered fnpar, fnonly, paronly. Order matters:
// "function foo()" also matches the fnonly and paronly patterns, so
// detection must stop on the first hit. Names allow the extended
// punctuation Bash tolerates in practice (:, @, -).
var functionPatterns = [...]*regexp.Regexp{
	regexp.MustCompile(`\bfunction\s+([\w:@-]+)\s*\(\s*\)\s*`),
	regexp.MustCompile(`\bfunction\s+([\w:@-]+)\s*`),
	regexp.MustCompile(`\b\s*([\w:@-]+)\s*\(\s*\)\s*`),
}

var functionReplacements = [...]string{
	"function ${1}() ",
	"function ${1} ",
	"${1}() ",
}

// DetectFunction reports the declaration style present in the masked
// structural text, if any. Masked text keeps quoted and commented content
// out of reach, so a string mentioning "function foo()" does not count.
func DetectFunction(masked string) (Function, bool) {
	for i, pat := range functionPatterns {
		if pat.MatchString(masked) {
			return Fnpar + Function(i), true
		}
	}
	return FunctionPreserve, false
}

// ApplyFunction rewrites a declaration from the detected style to the target
// style, preserving the function name and whatever follows the declaration.
// The result is trimmed; the caller re-indents.
func ApplyFunction(line string, detected, target Function) string {
	if detected == FunctionPreserve || target == FunctionPreserve {
		return line
	}
	pat := functionPatterns[detected-Fnpar]
	repl := functionReplacements[target-Fnpar]
	return strings.TrimSpace(pat.ReplaceAllString(line, repl))
}
