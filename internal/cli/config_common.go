package cli

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/csvload/internal/config"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// sourceFlagValues holds the flags shared by every command that reads source files.
type sourceFlagValues struct {
	driver     string
	delimiter  string
	extensions []string
	limit      int
	configPath string
}

func registerSourceFlags(cmd *cobra.Command, f *sourceFlagValues) {
	cmd.Flags().StringVar(&f.driver, "driver", "",
		"Destination driver: postgres|sqlserver|sqlite|duckdb\n"+
			"Precedence: --driver > $CSVLOAD_DRIVER > csvload.yaml > postgres")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "",
		"Field delimiter, a single character or \\t (default ,)")
	cmd.Flags().StringSliceVar(&f.extensions, "extensions", nil,
		"File suffixes picked up from a directory (default .csv)\n"+
			"Example: --extensions csv,tsv")
	cmd.Flags().IntVar(&f.limit, "limit", 0,
		"Load at most this many rows per file (0 = unlimited)")
	cmd.Flags().StringVar(&f.configPath, "config", "",
		"Path to a csvload.yaml file (default ./csvload.yaml when present)")
}

// loadProjectConfig loads godotenv and project configuration.
// Returns nil config if ./csvload.yaml does not exist (not an error). An
// explicitly named file must exist.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if path != "" {
		projectCfg, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", path, csvload.ErrInvalidConfig, err)
		}
		return projectCfg, nil
	}

	projectCfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, csvload.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// resolveDriver applies flag > $CSVLOAD_DRIVER > csvload.yaml > postgres.
func resolveDriver(flagDriver string, projectCfg *config.ProjectConfig) string {
	if flagDriver != "" {
		return flagDriver
	}
	if env := os.Getenv("CSVLOAD_DRIVER"); env != "" {
		return env
	}
	if projectCfg != nil && projectCfg.Driver != "" {
		return projectCfg.Driver
	}
	return csvload.DriverPostgres
}

// parseDelimiter accepts a single character, or \t / "tab" for a tab.
// An empty string selects the default.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character (got %q): %w", s, csvload.ErrInvalidConfig)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// intSetting returns the flag value when the flag was set, otherwise the
// csvload.yaml value when non-zero, otherwise the flag default.
func intSetting(cmd *cobra.Command, name string, flagValue, yamlValue int) int {
	if cmd.Flags().Changed(name) || yamlValue == 0 {
		return flagValue
	}
	return yamlValue
}

// resolveEffectiveTimeout returns the effective timeout, preferring csvload.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, csvload.ErrInvalidConfig, err)
		}
		return parsed, nil
	}
	return flagTimeout, nil
}

// buildSourceConfig fills the source-side fields of a RunConfig.
func buildSourceConfig(cmd *cobra.Command, f *sourceFlagValues, sourcePath string, projectCfg *config.ProjectConfig) (csvload.RunConfig, error) {
	var yaml config.ProjectConfig
	if projectCfg != nil {
		yaml = *projectCfg
	}

	delimiterText := f.delimiter
	if !cmd.Flags().Changed("delimiter") && yaml.Delimiter != "" {
		delimiterText = yaml.Delimiter
	}
	delimiter, err := parseDelimiter(delimiterText)
	if err != nil {
		return csvload.RunConfig{}, err
	}

	extensions := f.extensions
	if !cmd.Flags().Changed("extensions") && len(yaml.Extensions) > 0 {
		extensions = yaml.Extensions
	}

	return csvload.RunConfig{
		SourcePath: sourcePath,
		Driver:     resolveDriver(f.driver, projectCfg),
		Delimiter:  delimiter,
		Extensions: extensions,
		Limit:      intSetting(cmd, "limit", f.limit, yaml.Limit),
	}, nil
}
