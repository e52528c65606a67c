// Package logging provides structured logging configuration for pagegen.
//
// This package wraps log/slog. The CLI builds one logger from its
// --log-level and --log-format flags (or the project config) and passes
// it to the template registry and the build pipeline.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	reg := template.NewRegistry(template.WithLogger(logger))
//
// Components accept a *slog.Logger; when none is supplied they use Nop().
// Tee fans records out to several handlers, which the CLI uses for
// --log-file.
package logging
