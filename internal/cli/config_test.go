package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
mirror = "http://ftp.de.debian.org/debian"
dist = "bookworm"
component = "contrib"
top = 25
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFrom(path)
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}
	if cfg.Mirror != "http://ftp.de.debian.org/debian" {
		t.Errorf("Mirror = %q", cfg.Mirror)
	}
	if cfg.Dist != "bookworm" {
		t.Errorf("Dist = %q", cfg.Dist)
	}
	if cfg.Component != "contrib" {
		t.Errorf("Component = %q", cfg.Component)
	}
	if cfg.Top != 25 {
		t.Errorf("Top = %d", cfg.Top)
	}
}

func TestLoadConfigFromPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`dist = "trixie"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFrom(path)
	if err != nil {
		t.Fatalf("loadConfigFrom() error = %v", err)
	}
	if cfg.Dist != "trixie" {
		t.Errorf("Dist = %q, want trixie", cfg.Dist)
	}
	if cfg.Mirror != "" || cfg.Component != "" || cfg.Top != 0 {
		t.Errorf("unset fields should stay zero, got %+v", cfg)
	}
}

func TestLoadConfigFromMissing(t *testing.T) {
	cfg, err := loadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error, got %v", err)
	}
	if cfg != (config{}) {
		t.Errorf("missing config should yield zero config, got %+v", cfg)
	}
}

func TestLoadConfigFromMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`mirror = [broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfigFrom(path); err == nil {
		t.Error("malformed config should error")
	}
}
