// Package cli implements the pagegen command line.
//
// NewRootCmd builds the cobra command tree. Every command shares the
// persistent flags --config, --templates, --log-level, --log-format and
// --json; the project config (pagegen.yaml) supplies defaults for them.
//
// Commands:
//
//	render <id>          print rendered content for the selected records
//	seo <id>             print rendered SEO metadata as JSON
//	build <id>           write <name>.html and <name>.seo.json per record
//	templates list|show  inspect loaded templates
//	validate             check template files without rendering
//	version              print build information
package cli
