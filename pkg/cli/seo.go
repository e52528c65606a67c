package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/pagegen/pkg/cli/internal/output"
	"github.com/getmockd/pagegen/pkg/template"
)

func newSEOCmd(a *app) *cobra.Command {
	var data dataFlags

	cmd := &cobra.Command{
		Use:   "seo <template-id>",
		Short: "Render a template's SEO metadata as JSON",
		Long: `Render the SEO patterns of a template (title, description, keywords and
structured data) against each selected record and print them as JSON.
A single record prints one object, several records print an array.

Examples:
  pagegen seo city-page --data lyon.json
  pagegen seo city-page --data listings.json --select '$.listings[?(@.city.population > 10000)]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			contexts, err := data.contexts()
			if err != nil {
				return err
			}

			results := make([]*template.SEO, 0, len(contexts))
			for _, ctx := range contexts {
				seo, err := reg.RenderSEO(args[0], ctx)
				if err != nil {
					return err
				}
				results = append(results, seo)
			}

			if len(results) == 1 {
				return output.JSON(cmd.OutOrStdout(), results[0])
			}
			return output.JSON(cmd.OutOrStdout(), results)
		},
	}
	data.register(cmd, true)
	return cmd
}
