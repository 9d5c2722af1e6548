package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitConfigFromFlags(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *SplitConfig
	splitRunner = func(ctx context.Context, cfg *SplitConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { splitRunner = runSplit })

	root.SetArgs([]string{
		"--verbose",
		"split",
		"--input", "schema.raml",
		"--out", "./build",
		"--format", "raml",
		"--dry-run",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if captured == nil {
		t.Fatalf("expected config to be captured")
	}

	if captured.Input != "schema.raml" {
		t.Errorf("input mismatch: got %q", captured.Input)
	}
	if captured.Out != "./build" {
		t.Errorf("out mismatch: got %q", captured.Out)
	}
	if captured.Format != "raml" {
		t.Errorf("format mismatch: got %q", captured.Format)
	}
	if !captured.DryRun {
		t.Errorf("expected dry-run true")
	}
	if !captured.Verbose {
		t.Errorf("expected verbose true")
	}
}

func TestSplitConfigDefaults(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *SplitConfig
	splitRunner = func(ctx context.Context, cfg *SplitConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { splitRunner = runSplit })

	root.SetArgs([]string{"split", "--input", "schema.raml"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if captured.Out != "api" {
		t.Errorf("default out: want api got %q", captured.Out)
	}
	if captured.Format != "auto" {
		t.Errorf("default format: want auto got %q", captured.Format)
	}
}

func TestSplitConfigPrecedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := strings.TrimSpace(`input: config-schema.raml
out: from-config
format: raml
dryRun: true
verbose: true
`) + "\n"

	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *SplitConfig
	splitRunner = func(ctx context.Context, cfg *SplitConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { splitRunner = runSplit })

	root.SetArgs([]string{
		"--config", configPath,
		"split",
		"--input", "flag-schema.raml",
		"--dry-run=false",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if captured == nil {
		t.Fatalf("expected config to be captured")
	}

	if captured.Input != "flag-schema.raml" {
		t.Errorf("input: want %q got %q", "flag-schema.raml", captured.Input)
	}
	if captured.Out != "from-config" {
		t.Errorf("out: want from-config got %q", captured.Out)
	}
	if captured.Format != "raml" {
		t.Errorf("format: want raml got %q", captured.Format)
	}
	if captured.DryRun {
		t.Errorf("expected dry-run false after flag override")
	}
	if !captured.Verbose {
		t.Errorf("expected verbose true from config file")
	}
	if captured.ConfigPath != configPath {
		t.Errorf("config path mismatch: got %q", captured.ConfigPath)
	}
}

func TestSplitConfigUnknownKey(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("unknown: value\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	root.SetArgs([]string{
		"--config", configPath,
		"split",
		"--input", "schema.raml",
	})

	err := root.Execute()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestSplitRequiresInput(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"split"})

	err := root.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "--input is required") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestSplitRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"split", "--input", "x.raml", "--format", "xml"})

	err := root.Execute()
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported --format") {
		t.Fatalf("unexpected error message: %v", err)
	}
}
