package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"beautysh/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "beautysh [flags] <path> [path...]",
	Short: "Beautifier for Bash shell scripts",
	Long: `beautysh re-indents Bash scripts, normalizes function declarations and
optionally braces variable references, while preserving here-documents,
multi-line strings and regions fenced with # @formatter:off / on.

Paths may be files or directories (searched recursively for .sh and .bash
files). A single "-" reads the script from stdin and writes the result to
stdout.

Function declaration styles for --force-function-style:
  fnpar     function name() { ... }
  fnonly    function name { ... }
  paronly   name() { ... }`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoot,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().IntP("indent-size", "i", 4, "number of spaces per indentation level")
	rootCmd.Flags().BoolP("tab", "t", false, "indent with tabs instead of spaces")
	rootCmd.Flags().BoolP("backup", "b", false, "write a .bak copy before rewriting a file")
	rootCmd.Flags().BoolP("check", "c", false, "report files that would change without rewriting them")
	rootCmd.Flags().StringP("force-function-style", "s", "", "rewrite function declarations (fnpar|fnonly|paronly)")
	rootCmd.Flags().String("variable-style", "", "rewrite variable references (braces)")
	rootCmd.Flags().String("config", "", "read settings from this TOML file")
	rootCmd.Flags().Bool("no-cache", false, "format every file even when cached as clean")

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal checks whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
