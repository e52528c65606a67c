package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/pagegen/pkg/config"
	"github.com/getmockd/pagegen/pkg/logging"
	"github.com/getmockd/pagegen/pkg/template"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	templates  []string
	logLevel   string
	logFormat  string
	jsonOutput bool
}

// app is the state a command invocation builds up: the project
// config, the logger and, for commands that render, the registry.
type app struct {
	flags   globalFlags
	project *config.ProjectConfig
	log     *slog.Logger
	logFile io.Closer
}

// NewRootCmd builds the pagegen command tree.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pagegen",
		Short: "pagegen renders pages and SEO metadata from section templates",
		Long: `pagegen expands section templates against JSON or YAML data.

Templates use {{path}} placeholders, {{#each list}}...{{/each}} loops and
{{#if path}}...{{/if}} blocks. Sections can be guarded by conditions on
the data, and each template carries SEO patterns for title, description,
keywords and structured data.

Configuration is read from pagegen.yaml in the current directory when
present, or from the file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Project config file (default: pagegen.yaml if present)")
	pf.StringSliceVarP(&a.flags.templates, "templates", "t", nil, "Template files or glob patterns (overrides the project config)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&a.flags.jsonOutput, "json", false, "Output command results in JSON format")

	rootCmd.AddCommand(
		newRenderCmd(a),
		newSEOCmd(a),
		newBuildCmd(a),
		newTemplatesCmd(a),
		newValidateCmd(a),
		newVersionCmd(a),
	)
	return rootCmd, a
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	cmd, a := newRoot()
	if err := a.execute(cmd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// execute runs cmd and releases what setup opened, whether or not the
// command failed.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// setup loads the project config and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	project, err := a.loadProject()
	if err != nil {
		return err
	}
	a.project = project

	level := project.Log.Level
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	format := project.Log.Format
	if a.flags.logFormat != "" {
		format = a.flags.logFormat
	}

	handler := logging.NewHandler(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: logging.ParseFormat(format),
		Output: cmd.ErrOrStderr(),
	})

	if project.Log.File != "" {
		path := config.ResolvePath(project.Dir(), project.Log.File)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		handler = logging.NewTee(handler, logging.NewHandler(logging.Config{
			Level:  logging.ParseLevel(level),
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	a.log = slog.New(handler)
	return nil
}

// loadProject reads the explicit --config file, or pagegen.yaml in the
// working directory, falling back to defaults when neither exists.
func (a *app) loadProject() (*config.ProjectConfig, error) {
	if a.flags.configPath != "" {
		return config.LoadProjectConfig(a.flags.configPath)
	}
	path, err := config.DiscoverProjectConfig(".")
	if errors.Is(err, config.ErrNoProjectConfig) {
		return config.DefaultProjectConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return config.LoadProjectConfig(path)
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// templatePatterns returns the template sources and the directory they
// are relative to. Patterns given on the command line are relative to
// the working directory.
func (a *app) templatePatterns() ([]string, string) {
	if len(a.flags.templates) > 0 {
		return a.flags.templates, ""
	}
	return a.project.Templates, a.project.Dir()
}

// registry loads every configured template into a new Registry.
func (a *app) registry() (*template.Registry, error) {
	patterns, baseDir := a.templatePatterns()
	templates, err := config.LoadTemplates(patterns, baseDir)
	if err != nil {
		return nil, err
	}

	reg := template.NewRegistry(template.WithLogger(a.log))
	if err := config.RegisterAll(reg, templates); err != nil {
		return nil, err
	}
	a.log.Debug("templates loaded", "count", reg.Len())
	return reg, nil
}
