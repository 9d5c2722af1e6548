package cli

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateConfigFromFlags(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *ValidateConfig
	validateRunner = func(ctx context.Context, cfg *ValidateConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { validateRunner = runValidate })

	root.SetArgs([]string{"--verbose", "validate", "--dir", "./tree"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if captured == nil {
		t.Fatalf("expected config to be captured")
	}
	if captured.Dir != "./tree" {
		t.Errorf("dir mismatch: got %q", captured.Dir)
	}
	if !captured.Verbose {
		t.Errorf("expected verbose true")
	}
}

func TestValidateDefaultDir(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	var captured *ValidateConfig
	validateRunner = func(ctx context.Context, cfg *ValidateConfig) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { validateRunner = runValidate })

	root.SetArgs([]string{"validate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if captured.Dir != "api" {
		t.Errorf("default dir: want api got %q", captured.Dir)
	}
}

func TestValidateMissingDirectory(t *testing.T) {
	t.Parallel()

	err := runValidate(context.Background(), &ValidateConfig{
		Dir: filepath.Join(t.TempDir(), "absent"),
	})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("unexpected error message: %v", err)
	}
}
