package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/pagegen/pkg/cli/internal/output"
)

// TemplateSummary is one row of `templates list`.
type TemplateSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Sections int    `json:"sections"`
	Guarded  int    `json:"guarded"`
	Schema   bool   `json:"schema"`
}

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the configured templates",
		Long: `Inspect the templates loaded from the project config or --templates.

Examples:
  # List all templates
  pagegen templates list

  # Show one template definition
  pagegen templates show city-page`,
	}
	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesShowCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List templates in registration order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			summaries := make([]TemplateSummary, 0, reg.Len())
			for _, templateID := range reg.IDs() {
				t, err := reg.Get(templateID)
				if err != nil {
					return err
				}
				s := TemplateSummary{
					ID:       t.ID,
					Name:     t.Name,
					Sections: len(t.Sections),
					Schema:   t.SEO.Schema != nil,
				}
				for _, sec := range t.Sections {
					if sec.Guard != nil {
						s.Guarded++
					}
				}
				summaries = append(summaries, s)
			}

			if a.flags.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), summaries)
			}

			w := output.Table(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tSECTIONS\tGUARDED\tSCHEMA")
			for _, s := range summaries {
				schema := "no"
				if s.Schema {
					schema = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.ID, s.Name, s.Sections, s.Guarded, schema)
			}
			return w.Flush()
		},
	}
}

func newTemplatesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Print a template definition as YAML (or JSON with --json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			t, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			if a.flags.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), t)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("failed to encode template: %w", err)
			}
			return enc.Close()
		},
	}
}
