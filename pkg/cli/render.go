package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pagegen/pkg/cli/internal/output"
)

// RenderOutput is the JSON form of one rendered record.
type RenderOutput struct {
	Index   int    `json:"index"`
	Content string `json:"content"`
}

func newRenderCmd(a *app) *cobra.Command {
	var data dataFlags

	cmd := &cobra.Command{
		Use:   "render <template-id>",
		Short: "Render a template's content sections",
		Long: `Render the content sections of a template against each selected record
and print the result. Sections whose guard does not hold are skipped.

Examples:
  # Render with a single data object
  pagegen render city-page --data lyon.json

  # Render the second listing of a data file
  pagegen render city-page --data listings.json --select '$.listings[*]' --index 1

  # Supply context values directly
  pagegen render faq --var topic=Shipping`,
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

			results := make([]RenderOutput, 0, len(contexts))
			for i, ctx := range contexts {
				content, err := reg.RenderContent(args[0], ctx)
				if err != nil {
					return err
				}
				results = append(results, RenderOutput{Index: i, Content: content})
			}

			if a.flags.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r.Content)
			}
			return nil
		},
	}
	data.register(cmd, true)
	return cmd
}
