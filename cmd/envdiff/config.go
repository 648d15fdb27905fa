package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// toolConfig is the optional envdiff.toml, discovered upward from the
// working directory. Everything in it has a flag equivalent; flags win.
type toolConfig struct {
	Internal   internalConfig   `toml:"internal"`
	Extensions extensionsConfig `toml:"extensions"`
	Output     outputConfig     `toml:"output"`
}

type internalConfig struct {
	// Prefixes lists dotted name prefixes treated as internal in addition
	// to the built-in classifier.
	Prefixes []string `toml:"prefixes"`
}

type extensionsConfig struct {
	// Enabled restricts the adapter registry to these keys. Empty keeps
	// every built-in adapter.
	Enabled []string `toml:"enabled"`
}

type outputConfig struct {
	Color string `toml:"color"`
}

func findToolConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "envdiff.toml")
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

func loadToolConfig(startDir string) (toolConfig, error) {
	var cfg toolConfig
	path, ok, err := findToolConfig(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return toolConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}
