package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pagegen/pkg/cli/internal/output"
	"github.com/getmockd/pagegen/pkg/config"
	"github.com/getmockd/pagegen/pkg/template"
)

// ErrValidationFailed is returned by validate when any file has errors.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOutput is the JSON result of validate.
type ValidateOutput struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// FileValidation reports the result for one template file.
type FileValidation struct {
	Path      string   `json:"path"`
	Templates []string `json:"templates,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check template definitions without rendering",
		Long: `Validate every configured template file.

This command checks:
  - YAML and JSON syntax
  - The definition schema (required fields, known guard operators)
  - Guard conditions (known operators, expr syntax)
  - Duplicate template ids across files

Examples:
  # Validate templates from pagegen.yaml
  pagegen validate

  # Validate specific files
  pagegen validate --templates 'templates/**/*.yaml'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, baseDir := a.templatePatterns()
			files, err := config.ExpandPatterns(patterns, baseDir)
			if err != nil {
				return err
			}

			result := ValidateOutput{Valid: true}
			reg := template.NewRegistry(template.WithLogger(a.log))
			for _, path := range files {
				fv := validateFile(reg, path)
				if len(fv.Errors) > 0 {
					result.Valid = false
				}
				result.Files = append(result.Files, fv)
			}

			if a.flags.jsonOutput {
				if err := output.JSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				printValidation(cmd, result)
			}

			if !result.Valid {
				return ErrValidationFailed
			}
			return nil
		},
	}
}

func validateFile(reg *template.Registry, path string) FileValidation {
	fv := FileValidation{Path: path}

	file, err := config.LoadTemplateFile(path)
	if err != nil {
		var inv *config.InvalidFileError
		if errors.As(err, &inv) {
			for _, e := range inv.Result.Errors {
				fv.Errors = append(fv.Errors, e.Error())
			}
			return fv
		}
		fv.Errors = append(fv.Errors, err.Error())
		return fv
	}

	for _, t := range file.Templates {
		if err := reg.Register(t); err != nil {
			fv.Errors = append(fv.Errors, err.Error())
			continue
		}
		fv.Templates = append(fv.Templates, t.ID)
	}
	return fv
}

func printValidation(cmd *cobra.Command, result ValidateOutput) {
	w := cmd.OutOrStdout()
	for _, f := range result.Files {
		if len(f.Errors) == 0 {
			fmt.Fprintf(w, "✓ %s (%d template(s))\n", f.Path, len(f.Templates))
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", f.Path)
		for _, e := range f.Errors {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}
	if result.Valid {
		fmt.Fprintln(w, "\nAll templates are valid.")
	} else {
		output.Warn(cmd.ErrOrStderr(), "some template files have errors")
	}
}
