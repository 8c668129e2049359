package config

import (
	"os"
	"path/filepath"
	"testing"

	"beautysh/internal/style"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadFileTopLevelKeys(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "beautysh.toml")
	writeFile(t, path, "indent_size = 2\ntab = true\nforce_function_style = \"paronly\"\n")

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if s.IndentSize == nil || *s.IndentSize != 2 {
		t.Fatalf("indent_size not loaded: %+v", s)
	}
	if s.Tab == nil || !*s.Tab {
		t.Fatalf("tab not loaded: %+v", s)
	}
	if s.FunctionStyle == nil || *s.FunctionStyle != "paronly" {
		t.Fatalf("force_function_style not loaded: %+v", s)
	}
	if s.Backup != nil || s.Check != nil {
		t.Fatalf("unset fields must stay nil: %+v", s)
	}
}

func TestLoadFileBeautyshSection(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	writeFile(t, path, "[beautysh]\nindent_size = 8\nbackup = true\n")

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if s.IndentSize == nil || *s.IndentSize != 8 {
		t.Fatalf("section keys not loaded: %+v", s)
	}
	if s.Backup == nil || !*s.Backup {
		t.Fatalf("backup not loaded: %+v", s)
	}
}

func TestLoadFileToolSection(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "pyproject-style.toml")
	writeFile(t, path, "[tool.other]\nx = 1\n\n[tool.beautysh]\nindent_size = 3\nvariable_style = \"braces\"\n")

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if s.IndentSize == nil || *s.IndentSize != 3 {
		t.Fatalf("[tool.beautysh] keys not loaded: %+v", s)
	}
	if s.VariableStyle == nil || *s.VariableStyle != "braces" {
		t.Fatalf("variable_style not loaded: %+v", s)
	}
}

func TestMergeLastWriterWins(t *testing.T) {
	two, eight := 2, 8
	tr := true
	base := Settings{IndentSize: &two, Tab: &tr}
	over := Settings{IndentSize: &eight}

	merged := base.Merge(over)
	if *merged.IndentSize != 8 {
		t.Fatalf("override lost: %d", *merged.IndentSize)
	}
	if merged.Tab == nil || !*merged.Tab {
		t.Fatal("unset override field must not clear the base value")
	}
}

func TestFormatOptions(t *testing.T) {
	size := 2
	tab := true
	fn := "fnonly"
	vs := "braces"
	s := Settings{IndentSize: &size, Tab: &tab, FunctionStyle: &fn, VariableStyle: &vs}

	opts, err := s.FormatOptions()
	if err != nil {
		t.Fatalf("FormatOptions returned error: %v", err)
	}
	if opts.IndentSize != 2 || !opts.UseTabs {
		t.Fatalf("indent settings not mapped: %+v", opts)
	}
	if opts.FunctionStyle != style.Fnonly || opts.VariableStyle != style.VariableBraces {
		t.Fatalf("styles not mapped: %+v", opts)
	}

	// Defaults when nothing is set.
	opts, err = Settings{}.FormatOptions()
	if err != nil {
		t.Fatalf("FormatOptions returned error: %v", err)
	}
	if opts.IndentSize != 4 || opts.UseTabs || opts.FunctionStyle != style.FunctionPreserve {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
}

func TestFormatOptionsRejectsUnknownStyles(t *testing.T) {
	bad := "fancy"
	if _, err := (Settings{FunctionStyle: &bad}).FormatOptions(); err == nil {
		t.Fatal("expected error for unknown function style")
	}
	if _, err := (Settings{VariableStyle: &bad}).FormatOptions(); err == nil {
		t.Fatal("expected error for unknown variable style")
	}
}

func TestFindProjectFileWalksUp(t *testing.T) {
	tmp := t.TempDir()
	nested := filepath.Join(tmp, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	manifest := filepath.Join(tmp, "beautysh.toml")
	writeFile(t, manifest, "indent_size = 2\n")

	path, ok, err := FindProjectFile(nested)
	if err != nil {
		t.Fatalf("FindProjectFile returned error: %v", err)
	}
	if !ok || path != manifest {
		t.Fatalf("expected %q, got %q (ok=%v)", manifest, path, ok)
	}
}

func TestResolvePrecedence(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "beautysh.toml"), "indent_size = 8\ntab = true\n")
	writeFile(t, filepath.Join(tmp, ".beautyshrc"), "indent_size = 2\n")

	s, err := Resolve("", tmp, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.IndentSize == nil || *s.IndentSize != 2 {
		t.Fatalf(".beautyshrc must override the project file: %+v", s)
	}
	if s.Tab == nil || !*s.Tab {
		t.Fatalf("project-only fields must survive: %+v", s)
	}

	explicit := filepath.Join(tmp, "special.toml")
	writeFile(t, explicit, "indent_size = 7\n")
	s, err = Resolve("", tmp, explicit)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if *s.IndentSize != 7 {
		t.Fatalf("explicit config must win: %+v", s)
	}
}

func TestResolveEditorConfig(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, ".editorconfig"),
		"root = true\n\n[*.sh]\nindent_style = space\nindent_size = 2\n")

	s, err := Resolve(filepath.Join(tmp, "script.sh"), tmp, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if s.IndentSize == nil || *s.IndentSize != 2 {
		t.Fatalf("EditorConfig indent_size not applied: %+v", s)
	}
	if s.Tab == nil || *s.Tab {
		t.Fatalf("EditorConfig indent_style not applied: %+v", s)
	}

	// TOML files outrank EditorConfig.
	writeFile(t, filepath.Join(tmp, "beautysh.toml"), "indent_size = 8\n")
	s, err = Resolve(filepath.Join(tmp, "script.sh"), tmp, "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if *s.IndentSize != 8 {
		t.Fatalf("project file must override EditorConfig: %+v", s)
	}
}
