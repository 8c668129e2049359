package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadFile reads settings from a TOML file. The settings may live in a
// [tool.beautysh] table (pyproject-style layouts), a [beautysh] table, or
// at the top level of the document, checked in that order.
func LoadFile(path string) (Settings, error) {
	var raw map[string]toml.Primitive
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	if prim, ok := raw["tool"]; ok {
		var tables map[string]toml.Primitive
		if err := meta.PrimitiveDecode(prim, &tables); err == nil {
			if sub, ok := tables["beautysh"]; ok {
				return decodeSection(meta, sub, path)
			}
		}
	}
	if prim, ok := raw["beautysh"]; ok {
		return decodeSection(meta, prim, path)
	}

	var s Settings
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return s, nil
}

func decodeSection(meta toml.MetaData, prim toml.Primitive, path string) (Settings, error) {
	var s Settings
	if err := meta.PrimitiveDecode(prim, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return s, nil
}

// FindProjectFile walks up from startDir to locate beautysh.toml.
func FindProjectFile(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "beautysh.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadOptionalRC reads .beautyshrc from dir when present. A missing file
// is not an error.
func loadOptionalRC(dir string) (Settings, bool, error) {
	path := filepath.Join(dir, ".beautyshrc")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, false, nil
		}
		return Settings{}, false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	s, err := LoadFile(path)
	if err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}
