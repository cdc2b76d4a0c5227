package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okrasa/go-conf2book/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFormat   = errors.New("invalid output format")
)

// Output format values for convert.format.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Field length limits so a hostile config cannot balloon memory or
// output paths.
const (
	MaxPathLength     = 4096 // directory and report paths
	MaxDateLength     = 60   // noteDate, incl. "auto:" with a bracketed literal
	MaxLanguageLength = 50   // one brush or language class name
	MaxLanguageCount  = 100  // brush override entries
)

// Config holds all configuration for batch conversion.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Report  ReportConfig  `yaml:"report"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default export directory (empty = must specify or prompt)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to each source page)
}

// ConvertConfig defines conversion behavior.
type ConvertConfig struct {
	Format    string            `yaml:"format"`    // "html" (default) or "markdown"
	NoteDate  string            `yaml:"noteDate"`  // "auto", "auto:FORMAT", preset, or literal
	Languages map[string]string `yaml:"languages"` // brush name → language class overrides
}

// ReportConfig defines the optional batch report.
type ReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Empty = "conversion-report.md" in the output root
	HTML    bool   `yaml:"html"` // Also render the report to HTML
}

// Validate checks value shapes and field lengths.
// Called automatically by LoadConfig, but available for consumers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Convert.Format != "" {
		switch strings.ToLower(c.Convert.Format) {
		case FormatHTML, FormatMarkdown:
			// valid
		default:
			return fmt.Errorf("%w: convert.format %q (must be html or markdown)", ErrInvalidFormat, c.Convert.Format)
		}
	}

	if err := validateFieldLength("convert.noteDate", c.Convert.NoteDate, MaxDateLength); err != nil {
		return err
	}

	if len(c.Convert.Languages) > MaxLanguageCount {
		return fmt.Errorf("convert.languages: too many entries (%d, max %d)", len(c.Convert.Languages), MaxLanguageCount)
	}
	for brush, lang := range c.Convert.Languages {
		if err := validateFieldLength("convert.languages key "+brush, brush, MaxLanguageLength); err != nil {
			return err
		}
		if lang == "" {
			return fmt.Errorf("convert.languages[%s]: language class cannot be empty", brush)
		}
		if err := validateFieldLength("convert.languages["+brush+"]", lang, MaxLanguageLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("report.path", c.Report.Path, MaxPathLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration matching the bare behavior:
// no default directories, HTML output next to each source page, the
// conversion note dated today, no report.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: ""},
		Convert: ConvertConfig{
			Format:   FormatHTML,
			NoteDate: "auto",
		},
		Report: ReportConfig{Enabled: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns every location LoadConfig would try for a config
// name, in order. Used for error hints; performs no filesystem checks.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "conf2book", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/conf2book/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, path := range tried {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
