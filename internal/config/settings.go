// Package config resolves formatting settings from the places users put
// them: EditorConfig, a project beautysh.toml, .beautyshrc, an explicit
// config file and command-line flags. Later sources win per field.
package config

import (
	"beautysh/internal/format"
	"beautysh/internal/style"
)

// Settings is one source's contribution. Nil fields are "not set here" and
// do not override earlier sources during merging.
type Settings struct {
	IndentSize    *int    `toml:"indent_size"`
	Tab           *bool   `toml:"tab"`
	Backup        *bool   `toml:"backup"`
	Check         *bool   `toml:"check"`
	FunctionStyle *string `toml:"force_function_style"`
	VariableStyle *string `toml:"variable_style"`
}

// Merge overlays over on top of s, field by field.
func (s Settings) Merge(over Settings) Settings {
	if over.IndentSize != nil {
		s.IndentSize = over.IndentSize
	}
	if over.Tab != nil {
		s.Tab = over.Tab
	}
	if over.Backup != nil {
		s.Backup = over.Backup
	}
	if over.Check != nil {
		s.Check = over.Check
	}
	if over.FunctionStyle != nil {
		s.FunctionStyle = over.FunctionStyle
	}
	if over.VariableStyle != nil {
		s.VariableStyle = over.VariableStyle
	}
	return s
}

// FormatOptions converts resolved settings into core formatting options.
// Unknown style names are hard configuration errors, reported before any
// formatting happens.
func (s Settings) FormatOptions() (format.Options, error) {
	opts := format.Options{IndentSize: 4}
	if s.IndentSize != nil {
		opts.IndentSize = *s.IndentSize
	}
	if s.Tab != nil && *s.Tab {
		opts.UseTabs = true
	}
	if s.FunctionStyle != nil && *s.FunctionStyle != "" {
		fs, err := style.ParseFunction(*s.FunctionStyle)
		if err != nil {
			return opts, err
		}
		opts.FunctionStyle = fs
	}
	if s.VariableStyle != nil && *s.VariableStyle != "" {
		vs, err := style.ParseVariable(*s.VariableStyle)
		if err != nil {
			return opts, err
		}
		opts.VariableStyle = vs
	}
	return opts, nil
}

// WantBackup reports the resolved backup flag.
func (s Settings) WantBackup() bool {
	return s.Backup != nil && *s.Backup
}

// WantCheck reports the resolved check flag.
func (s Settings) WantCheck() bool {
	return s.Check != nil && *s.Check
}
