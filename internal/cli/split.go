package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramltools/ramlsplit/internal/schema"
	"github.com/ramltools/ramlsplit/internal/splitter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// SplitConfig captures all inputs that influence the split command after
// merging defaults, config file values, and CLI overrides.
type SplitConfig struct {
	Input      string
	Out        string
	Format     string
	ConfigPath string
	DryRun     bool
	Verbose    bool
}

func defaultSplitConfig() SplitConfig {
	return SplitConfig{Out: "api", Format: "auto"}
}

var splitRunner = runSplit

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a schema document into per-endpoint descriptors and docs",
		Long: "Split a schema document into per-endpoint JSON descriptors, Markdown documentation, " +
			"per-family indexes, and a root index. Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  ramlsplit split --input schema.raml --out ./api
  ramlsplit --config ramlsplit.yaml split --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSplitConfig(cmd)
			if err != nil {
				return err
			}
			return splitRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the schema document to split")
	flags.String("out", "", "Output directory root (defaults to ./api)")
	flags.String("format", "", "Input format (auto|raml|openapi); defaults to auto")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")

	return cmd
}

func resolveSplitConfig(cmd *cobra.Command) (*SplitConfig, error) {
	cfg := defaultSplitConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applySplitConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applySplitFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applySplitFlagOverrides(flags *pflag.FlagSet, cfg *SplitConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *SplitConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
}

func (c *SplitConfig) validate() error {
	if c.Input == "" {
		return newUsageError("split: --input is required (set via flag or config file)")
	}
	if c.Out == "" {
		c.Out = "api"
	}

	switch c.Format {
	case "", "auto", "raml", "openapi":
		if c.Format == "" {
			c.Format = "auto"
		}
	default:
		return newUsageError(fmt.Sprintf("split: unsupported --format %q (allowed: auto, raml, openapi)", c.Format))
	}

	return nil
}

func runSplit(ctx context.Context, cfg *SplitConfig) error {
	// 1) Load the document in the requested (or sniffed) format.
	doc, err := schema.Load(ctx, cfg.Input, schema.Format(cfg.Format))
	if err != nil {
		var de *schema.DocError
		if errors.As(err, &de) {
			msg := fmt.Sprintf("schema: %s", de.Message)
			if de.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, de.Location)
			}
			return newUsageError(msg)
		}
		return err
	}

	// Resolve out dir to absolute only for display; the splitter handles
	// actual creation and writes.
	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}

	// 2) Split the document into the output tree.
	res, err := splitter.New(splitter.Options{
		OutDir:  cfg.Out,
		DryRun:  cfg.DryRun,
		Verbose: cfg.Verbose,
	}).Process(doc)
	if err != nil {
		return wrapOutputError(err, absOut)
	}

	if cfg.DryRun {
		paths := make([]string, 0, len(res.Planned))
		for _, p := range res.Planned {
			paths = append(paths, p.RelPath)
		}
		printPlan(absOut, len(res.Planned), paths)
		return nil
	}

	fmt.Fprintf(os.Stdout, "Split %d families (%d endpoints) into %s\n", res.Families, res.Endpoints, absOut)
	return nil
}

func printPlan(outDir string, count int, relPaths []string) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", outDir, count)
	for _, p := range relPaths {
		fmt.Fprintf(os.Stdout, "- %s\n", p)
	}
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or check directory permissions.", outDir, msg))
	}
	return err
}

func applySplitConfigFromFile(cfg *SplitConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "format":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Format = str
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
