package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ramltools/ramlsplit/internal/validator"
	"github.com/spf13/cobra"
)

// ValidateConfig captures the options for the validate command.
type ValidateConfig struct {
	Dir     string
	Verbose bool
}

var validateRunner = runValidate

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a generated output tree against the layout contract",
		Long: "Validate a generated output tree: required directories, index files, endpoint " +
			"descriptors, example payloads, and Markdown documents. Prints a report and fails when errors are found.",
		Example: "  ramlsplit validate --dir ./api",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			cfg := &ValidateConfig{Dir: dir, Verbose: verbose}
			return validateRunner(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("dir", "api", "Root of the generated tree to validate")

	return cmd
}

func runValidate(ctx context.Context, cfg *ValidateConfig) error {
	_ = ctx

	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = "api"
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return newUsageError(fmt.Sprintf("validate: %q is not a directory", dir))
	}

	v := validator.New(dir, os.Stdout)
	if !v.ValidateAll() {
		return fmt.Errorf("validation failed: %d errors", len(v.Errors()))
	}
	return nil
}
