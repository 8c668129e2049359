package config

import (
	"strconv"

	"github.com/editorconfig/editorconfig-core-go/v2"
)

// editorConfigFor maps the EditorConfig definition that applies to path
// onto our settings. Only indentation keys carry over; everything else is
// out of EditorConfig's vocabulary. Lookup failures are treated as "no
// EditorConfig here", matching editors' behavior.
func editorConfigFor(path string) Settings {
	var s Settings
	if path == "" || path == "-" {
		return s
	}
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil {
		return s
	}
	switch def.IndentStyle {
	case editorconfig.IndentStyleTab:
		t := true
		s.Tab = &t
	case editorconfig.IndentStyleSpaces:
		f := false
		s.Tab = &f
	}
	if def.IndentSize != "" && def.IndentSize != editorconfig.IndentStyleTab {
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
			s.IndentSize = &n
		}
	}
	return s
}

// Resolve layers every settings source for one target file, lowest
// precedence first: EditorConfig, the nearest beautysh.toml up the tree,
// .beautyshrc in the working directory, then an explicitly named config
// file. Command-line flags are merged on top by the caller.
func Resolve(targetPath, workDir, explicit string) (Settings, error) {
	s := editorConfigFor(targetPath)

	if projectFile, ok, err := FindProjectFile(workDir); err != nil {
		return Settings{}, err
	} else if ok {
		loaded, err := LoadFile(projectFile)
		if err != nil {
			return Settings{}, err
		}
		s = s.Merge(loaded)
	}

	if rc, ok, err := loadOptionalRC(workDir); err != nil {
		return Settings{}, err
	} else if ok {
		s = s.Merge(rc)
	}

	if explicit != "" {
		loaded, err := LoadFile(explicit)
		if err != nil {
			return Settings{}, err
		}
		s = s.Merge(loaded)
	}
	return s, nil
}
