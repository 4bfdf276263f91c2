package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Lexer.WarnBound != 999 {
		t.Errorf("expected WarnBound=999, got %d", cfg.Lexer.WarnBound)
	}
	if cfg.Labels.While != "while_" || cfg.Labels.If != "if_" ||
		cfg.Labels.Var != "var_" || cfg.Labels.Const != "const_" {
		t.Errorf("unexpected label prefixes: %+v", cfg.Labels)
	}
	if !cfg.CLI.Color {
		t.Error("expected CLI.Color=true by default")
	}
	if cfg.CLI.Debug {
		t.Error("expected CLI.Debug=false by default")
	}
	if !cfg.CLI.Machine.Echo {
		t.Error("expected CLI.Machine.Echo=true by default")
	}
}

func TestLoadFromNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom should not error on a missing file: %s", err)
	}
	if cfg.Lexer.WarnBound != 999 {
		t.Error("expected default config when file doesn't exist")
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")

	body := `
[lexer]
warn_bound = 50

[cli]
color = false
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write test config: %s", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if cfg.Lexer.WarnBound != 50 {
		t.Errorf("expected WarnBound=50, got %d", cfg.Lexer.WarnBound)
	}
	if cfg.CLI.Color {
		t.Error("expected CLI.Color=false from file")
	}
	// Untouched fields keep their defaults.
	if cfg.Labels.Var != "var_" {
		t.Errorf("expected untouched Labels.Var to keep its default, got %q", cfg.Labels.Var)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "bad.toml")

	if err := os.WriteFile(path, []byte("not = [valid"), 0644); err != nil {
		t.Fatalf("failed to write test config: %s", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error loading malformed TOML")
	}
}
