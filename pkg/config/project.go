package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigNames are the file names searched by DiscoverProjectConfig.
var ProjectConfigNames = []string{"pagegen.yaml", "pagegen.yml"}

// ErrNoProjectConfig is returned when no project config file is found.
var ErrNoProjectConfig = errors.New("no pagegen.yaml found")

// Default build settings.
const (
	DefaultConcurrency = 4
	DefaultOutDir      = "out"
)

// ProjectConfig is the root structure of pagegen.yaml.
type ProjectConfig struct {
	// Templates lists template definition files or glob patterns,
	// relative to the config file.
	Templates []string `yaml:"templates"`

	Log   LogConfig   `yaml:"log,omitempty"`
	Build BuildConfig `yaml:"build,omitempty"`

	// dir is the directory holding the config file.
	dir string
}

// LogConfig configures CLI logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	// File, when set, receives a JSON copy of every log record.
	File string `yaml:"file,omitempty"`
}

// BuildConfig configures the build command.
type BuildConfig struct {
	Concurrency int    `yaml:"concurrency,omitempty"`
	Out         string `yaml:"out,omitempty"`
}

// Dir returns the directory relative paths in the config resolve against.
func (c *ProjectConfig) Dir() string {
	return c.dir
}

// DefaultProjectConfig returns the settings used when no file exists.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Templates: []string{"templates/**/*.yaml"},
		Log:       LogConfig{Level: "info", Format: "text"},
		Build:     BuildConfig{Concurrency: DefaultConcurrency, Out: DefaultOutDir},
		dir:       ".",
	}
}

// DiscoverProjectConfig looks for a project config in dir.
func DiscoverProjectConfig(dir string) (string, error) {
	for _, name := range ProjectConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoProjectConfig, dir)
}

// LoadProjectConfig reads a project config, applying defaults and
// expanding environment variables in the file.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	cfg.Templates = nil
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	cfg.dir = abs
	return cfg, nil
}

// Validate checks the config for values that cannot work.
func (c *ProjectConfig) Validate() error {
	result := &ValidationResult{}
	if len(c.Templates) == 0 {
		result.AddError("templates", "at least one template path is required")
	}
	for i, p := range c.Templates {
		if p == "" {
			result.AddError(fmt.Sprintf("templates[%d]", i), "empty path")
		}
	}
	if c.Build.Concurrency < 0 {
		result.AddError("build.concurrency", fmt.Sprintf("must not be negative, got %d", c.Build.Concurrency))
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		result.AddError("log.format", fmt.Sprintf("unsupported format %q, expected text or json", c.Log.Format))
	}
	if !result.IsValid() {
		return result
	}
	return nil
}
