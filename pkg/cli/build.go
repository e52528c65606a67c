package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/pagegen/internal/id"
	"github.com/getmockd/pagegen/pkg/cli/internal/output"
	"github.com/getmockd/pagegen/pkg/config"
	"github.com/getmockd/pagegen/pkg/template"
	"github.com/getmockd/pagegen/pkg/util"
)

// previewSize bounds the content preview logged per page at debug level.
const previewSize = 200

// BuildOutput is the JSON summary of a build.
type BuildOutput struct {
	RunID string       `json:"runId"`
	Out   string       `json:"out"`
	Pages []PageOutput `json:"pages"`
}

// PageOutput describes the files written for one record.
type PageOutput struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Content string `json:"content"`
	SEO     string `json:"seo"`
}

type buildFlags struct {
	out         string
	name        string
	concurrency int
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		data  dataFlags
		flags buildFlags
	)

	cmd := &cobra.Command{
		Use:   "build <template-id>",
		Short: "Render one page per selected record into an output directory",
		Long: `Render a template for every selected record and write two files per
record: <name>.html with the content sections and <name>.seo.json with
the SEO metadata.

The file name comes from the --name pattern, interpolated against the
record and turned into a slug. Slashes in the name create
subdirectories. Records are rendered concurrently.

Examples:
  # One page per listing, named by its slug field
  pagegen build city-page --data listings.json --select '$.listings[*]'

  # Nest pages by city and business name
  pagegen build city-page --data listings.json --select '$.listings[*]' \
    --name '{{city.name}}/{{business.name}}' --out public`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			// Fail on an unknown id before touching the output directory.
			if _, err := reg.Get(args[0]); err != nil {
				return err
			}
			contexts, err := data.contexts()
			if err != nil {
				return err
			}

			out := flags.out
			if out == "" {
				out = config.ResolvePath(a.project.Dir(), a.project.Build.Out)
			}
			concurrency := flags.concurrency
			if concurrency <= 0 {
				concurrency = a.project.Build.Concurrency
			}
			if concurrency <= 0 {
				concurrency = config.DefaultConcurrency
			}

			pages, err := planPages(contexts, flags.name, out)
			if err != nil {
				return err
			}

			runID := id.Run()
			log := a.log.With("run", id.Short(runID), "template", args[0])
			start := time.Now()

			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for i := range pages {
				page := &pages[i]
				ctx := contexts[page.Index]
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					return writePage(reg, args[0], ctx, page, log)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			log.Info("build complete",
				"pages", len(pages),
				"out", out,
				"concurrency", concurrency,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)

			if a.flags.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), BuildOutput{RunID: runID, Out: out, Pages: pages})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %d page(s) in %s (run %s)\n", len(pages), out, id.Short(runID))
			return nil
		},
	}

	data.register(cmd, false)
	f := cmd.Flags()
	f.StringVarP(&flags.out, "out", "o", "", "Output directory (default: build.out from the project config)")
	f.StringVarP(&flags.name, "name", "n", "{{slug}}", "File name pattern, interpolated against each record")
	f.IntVar(&flags.concurrency, "concurrency", 0, "Records rendered in parallel (default: build.concurrency from the project config)")
	return cmd
}

// planPages names every page up front so that unresolved or clashing
// names fail the build before any file is written.
func planPages(contexts []template.Context, pattern, out string) ([]PageOutput, error) {
	pages := make([]PageOutput, 0, len(contexts))
	seen := make(map[string]int, len(contexts))
	for i, ctx := range contexts {
		name := template.Interpolate(pattern, ctx)
		if strings.Contains(name, "{{") {
			return nil, fmt.Errorf("record %d: name pattern %q did not resolve: %s", i, pattern, name)
		}
		rel, ok := util.SafeFilePath(util.Slug(name))
		if !ok {
			return nil, fmt.Errorf("record %d: name %q does not give a usable file name", i, name)
		}
		if prev, dup := seen[rel]; dup {
			return nil, fmt.Errorf("records %d and %d both map to %q", prev, i, rel)
		}
		seen[rel] = i

		base := filepath.Join(out, rel)
		pages = append(pages, PageOutput{
			Index:   i,
			Name:    rel,
			Content: base + ".html",
			SEO:     base + ".seo.json",
		})
	}
	return pages, nil
}

func writePage(reg *template.Registry, templateID string, ctx template.Context, page *PageOutput, log *slog.Logger) error {
	content, err := reg.RenderContent(templateID, ctx)
	if err != nil {
		return err
	}
	seo, err := reg.RenderSEO(templateID, ctx)
	if err != nil {
		return err
	}
	var meta bytes.Buffer
	if err := output.JSON(&meta, seo); err != nil {
		return fmt.Errorf("record %d: failed to encode SEO metadata: %w", page.Index, err)
	}

	if err := util.WriteFileAtomic(page.Content, []byte(content)); err != nil {
		return fmt.Errorf("record %d: %w", page.Index, err)
	}
	if err := util.WriteFileAtomic(page.SEO, meta.Bytes()); err != nil {
		return fmt.Errorf("record %d: %w", page.Index, err)
	}

	log.Debug("page written",
		"name", page.Name,
		"title", seo.Title,
		"preview", util.TruncateBody(content, previewSize),
	)
	return nil
}
