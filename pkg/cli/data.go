package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/pagegen/pkg/config"
	"github.com/getmockd/pagegen/pkg/template"
)

// dataFlags select the render contexts for render, seo and build.
type dataFlags struct {
	path     string
	selector string
	vars     map[string]string
	index    int
}

func (d *dataFlags) register(cmd *cobra.Command, withIndex bool) {
	f := cmd.Flags()
	f.StringVarP(&d.path, "data", "d", "", "JSON or YAML data file supplying the render context")
	f.StringVarP(&d.selector, "select", "s", "", "JSONPath selecting the record(s) to render, e.g. '$.listings[*]'")
	f.StringToStringVar(&d.vars, "var", nil, "Extra top-level context value (key=value, repeatable)")
	d.index = -1
	if withIndex {
		f.IntVarP(&d.index, "index", "i", -1, "Render only the selected record at this position")
	}
}

// contexts loads the data file and returns the selected contexts with
// --var values merged on top. Without --data the only context is built
// from --var alone.
func (d *dataFlags) contexts() ([]template.Context, error) {
	var contexts []template.Context
	if d.path == "" {
		if d.selector != "" {
			return nil, fmt.Errorf("--select requires --data")
		}
		contexts = []template.Context{{}}
	} else {
		data, err := config.LoadData(d.path)
		if err != nil {
			return nil, err
		}
		contexts, err = config.SelectContexts(data, d.selector)
		if err != nil {
			return nil, err
		}
	}

	if d.index >= 0 {
		if d.index >= len(contexts) {
			return nil, fmt.Errorf("--index %d out of range: %d record(s) selected", d.index, len(contexts))
		}
		contexts = contexts[d.index : d.index+1]
	}

	if len(d.vars) > 0 {
		extra := make(template.Context, len(d.vars))
		for k, v := range d.vars {
			extra[k] = v
		}
		for i, ctx := range contexts {
			contexts[i] = template.Merge(ctx, extra)
		}
	}
	return contexts, nil
}
