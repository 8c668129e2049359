package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"beautysh/internal/config"
	"beautysh/internal/diffio"
	"beautysh/internal/driver"
	"beautysh/internal/format"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(colorMode)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	cliSettings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}
	explicitConfig, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	if slices.Contains(args, "-") {
		if len(args) != 1 {
			return fmt.Errorf("beautysh: %q cannot be mixed with file paths", "-")
		}
		return runStdin(workDir, explicitConfig, cliSettings)
	}

	// Driver-level policy comes from everything except EditorConfig, which
	// only carries indentation and is applied per file below.
	base, err := config.Resolve("", workDir, explicitConfig)
	if err != nil {
		return err
	}
	base = base.Merge(cliSettings)
	baseFormat, err := base.FormatOptions()
	if err != nil {
		return err
	}

	opts := driver.Options{
		Format:  baseFormat,
		Check:   base.WantCheck(),
		Backup:  base.WantBackup(),
		NoCache: noCache,
		Resolve: func(path string) (format.Options, error) {
			resolved, err := config.Resolve(path, workDir, explicitConfig)
			if err != nil {
				return format.Options{}, err
			}
			return resolved.Merge(cliSettings).FormatOptions()
		},
	}

	results, err := driver.Run(cmd.Context(), args, opts)
	if err != nil {
		return err
	}
	return renderResults(results, opts.Check, quiet, useColor)
}

// settingsFromFlags turns only the flags the user actually set into a
// settings layer, so defaults never shadow configuration files.
func settingsFromFlags(cmd *cobra.Command) (config.Settings, error) {
	var s config.Settings
	flags := cmd.Flags()
	if flags.Changed("indent-size") {
		v, err := flags.GetInt("indent-size")
		if err != nil {
			return s, err
		}
		s.IndentSize = &v
	}
	if flags.Changed("tab") {
		v, err := flags.GetBool("tab")
		if err != nil {
			return s, err
		}
		s.Tab = &v
	}
	if flags.Changed("backup") {
		v, err := flags.GetBool("backup")
		if err != nil {
			return s, err
		}
		s.Backup = &v
	}
	if flags.Changed("check") {
		v, err := flags.GetBool("check")
		if err != nil {
			return s, err
		}
		s.Check = &v
	}
	if flags.Changed("force-function-style") {
		v, err := flags.GetString("force-function-style")
		if err != nil {
			return s, err
		}
		s.FunctionStyle = &v
	}
	if flags.Changed("variable-style") {
		v, err := flags.GetString("variable-style")
		if err != nil {
			return s, err
		}
		s.VariableStyle = &v
	}
	return s, nil
}

func runStdin(workDir, explicitConfig string, cli config.Settings) error {
	resolved, err := config.Resolve("-", workDir, explicitConfig)
	if err != nil {
		return err
	}
	opts, err := resolved.Merge(cli).FormatOptions()
	if err != nil {
		return err
	}
	opts.Report = func(line int, msg string) {
		fmt.Fprintf(os.Stderr, "beautysh: stdin:%d: %s\n", line, msg)
	}
	if _, err := driver.FormatReader(os.Stdin, os.Stdout, opts); err != nil {
		return fmt.Errorf("beautysh: stdin: %w", err)
	}
	return nil
}

func renderResults(results []driver.Result, check, quiet, useColor bool) error {
	var hasErrors, hasChanges bool
	var entries []diffio.SummaryEntry

	for _, res := range results {
		for _, note := range res.Notes {
			fmt.Fprintf(os.Stderr, "beautysh: %s\n", note)
		}
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(os.Stderr, "beautysh: %v\n", res.Err)
			entries = append(entries, diffio.SummaryEntry{Path: res.Path, Status: "error"})
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if check {
			entries = append(entries, diffio.SummaryEntry{Path: res.Path, Status: "needs formatting"})
			original, readErr := os.ReadFile(res.Path)
			if readErr != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "beautysh: %v\n", readErr)
				continue
			}
			diff, diffErr := diffio.Unified(res.Path, string(original), res.Formatted)
			if diffErr != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "beautysh: %v\n", diffErr)
				continue
			}
			if !quiet {
				fmt.Print(diffio.Colorize(diff, useColor))
			}
			continue
		}
		if !quiet {
			fmt.Printf("reformatted %s\n", res.Path)
		}
	}

	if check && len(entries) > 0 && !quiet {
		fmt.Print(diffio.Summary(entries, terminalWidth()))
	}
	if hasErrors {
		return fmt.Errorf("beautysh: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("beautysh: formatting changes required")
	}
	return nil
}

func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("beautysh: unsupported color mode %q (must be auto, on or off)", mode)
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
