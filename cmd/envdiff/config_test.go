package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindToolConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfgPath := filepath.Join(root, "envdiff.toml")
	if err := os.WriteFile(cfgPath, []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	found, ok, err := findToolConfig(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !ok || found != cfgPath {
		t.Fatalf("found = %q ok=%v, want %q", found, ok, cfgPath)
	}
}

func TestFindToolConfigAbsent(t *testing.T) {
	_, ok, err := findToolConfig(t.TempDir())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatalf("found a config in an empty tree")
	}
}

func TestLoadToolConfig(t *testing.T) {
	dir := t.TempDir()
	body := `
[internal]
prefixes = ["Vendor.Generated", "Scratch"]

[extensions]
enabled = ["doc", "simp"]

[output]
color = "never"
`
	if err := os.WriteFile(filepath.Join(dir, "envdiff.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadToolConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Internal.Prefixes) != 2 || cfg.Internal.Prefixes[0] != "Vendor.Generated" {
		t.Fatalf("prefixes = %v", cfg.Internal.Prefixes)
	}
	if len(cfg.Extensions.Enabled) != 2 || cfg.Extensions.Enabled[1] != "simp" {
		t.Fatalf("enabled = %v", cfg.Extensions.Enabled)
	}
	if cfg.Output.Color != "never" {
		t.Fatalf("color = %q", cfg.Output.Color)
	}
}

func TestLoadToolConfigRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "envdiff.toml"), []byte("[internal\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadToolConfig(dir); err == nil {
		t.Fatalf("malformed config accepted")
	}
}

func TestLoadToolConfigMissingIsZero(t *testing.T) {
	cfg, err := loadToolConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Internal.Prefixes) != 0 || len(cfg.Extensions.Enabled) != 0 || cfg.Output.Color != "" {
		t.Fatalf("missing config not zero: %+v", cfg)
	}
}
