package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Columns.FAQ != "F.A.Q." {
		t.Errorf("expected default FAQ column, got %q", cfg.Columns.FAQ)
	}
	if cfg.Paths.Delimiter() != ',' {
		t.Errorf("expected ',' delimiter, got %q", cfg.Paths.Delimiter())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[paths]
source_dir = "in"
csv_delimiter = ";"

[completion]
model = "gpt-4o-mini"
temperature = 0.2

[logo]
crop_height = 40
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paths.SourceDir != "in" || cfg.Paths.Delimiter() != ';' {
		t.Errorf("paths not applied: %+v", cfg.Paths)
	}
	if cfg.Completion.Model != "gpt-4o-mini" || cfg.Completion.Temperature != 0.2 {
		t.Errorf("completion not applied: %+v", cfg.Completion)
	}
	// Untouched keys keep their defaults.
	if cfg.Completion.MaxTokens != 500 {
		t.Errorf("expected default max_tokens, got %d", cfg.Completion.MaxTokens)
	}
	if cfg.Logo.CropHeight != 40 || cfg.Logo.LeftOffset != 30 {
		t.Errorf("logo config: %+v", cfg.Logo)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths\nsource_dir ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}
