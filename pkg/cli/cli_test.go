package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/pagegen/pkg/config"
	"github.com/getmockd/pagegen/pkg/template"
)

const projectYAML = `templates:
  - templates/*.yaml
build:
  concurrency: 2
`

const pagesYAML = `version: "1"
templates:
  - id: city-page
    name: City page
    sections:
      - id: hero
        content: "<h1>{{business.name}} in {{city.name}}</h1>"
      - id: big
        content: "<p>Big city</p>"
        guard: {field: city.population, operator: gt, value: 10000}
    seo:
      title: "{{business.name}} | {{city.name}}"
      description: "Visit {{business.name}}"
      keywords: ["{{city.name}}"]
      schema:
        "@type": LocalBusiness
        name: "{{business.name}}"
  - id: hello
    sections:
      - id: greeting
        content: "Hello {{name}}!"
`

const listingsJSON = `{
  "listings": [
    {"slug": "acme-lyon", "business": {"name": "Acme"}, "city": {"name": "Lyon", "population": 500000}},
    {"slug": "acme-gap", "business": {"name": "Acme"}, "city": {"name": "Gap", "population": 4000}}
  ]
}`

type project struct {
	dir    string
	config string
	data   string
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newProject(t *testing.T, configYAML string) project {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "templates/pages.yaml", pagesYAML)
	return project{
		dir:    dir,
		config: writeFile(t, dir, "pagegen.yaml", configYAML),
		data:   writeFile(t, dir, "data/listings.json", listingsJSON),
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr, _, err := runApp(t, args...)
	return stdout, stderr, err
}

func runApp(t *testing.T, args ...string) (string, string, *app, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd, a := newRoot()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := a.execute(cmd)
	return stdout.String(), stderr.String(), a, err
}

func TestRender(t *testing.T) {
	p := newProject(t, projectYAML)

	t.Run("single record", func(t *testing.T) {
		out, _, err := run(t, "render", "city-page", "--config", p.config,
			"--data", p.data, "--select", "$.listings[*]", "--index", "0")
		require.NoError(t, err)
		assert.Equal(t, "<h1>Acme in Lyon</h1><p>Big city</p>\n", out)
	})

	t.Run("every selected record", func(t *testing.T) {
		out, _, err := run(t, "render", "city-page", "--config", p.config,
			"--data", p.data, "--select", "$.listings[*]")
		require.NoError(t, err)
		assert.Equal(t, "<h1>Acme in Lyon</h1><p>Big city</p>\n<h1>Acme in Gap</h1>\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "render", "city-page", "--config", p.config, "--json",
			"--data", p.data, "--select", "$.listings[?(@.city.population < 10000)]")
		require.NoError(t, err)

		var got []RenderOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "<h1>Acme in Gap</h1>", got[0].Content)
	})

	t.Run("vars without data", func(t *testing.T) {
		out, _, err := run(t, "render", "hello", "--config", p.config, "--var", "name=Ada")
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada!\n", out)
	})

	t.Run("missing data leaves directives", func(t *testing.T) {
		out, _, err := run(t, "render", "hello", "--config", p.config)
		require.NoError(t, err)
		assert.Equal(t, "Hello {{name}}!\n", out)
	})

	t.Run("templates flag overrides config", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "one.yaml", "id: solo\nsections:\n  - id: s\n    content: solo\n")
		out, _, err := run(t, "render", "solo", "--config", p.config, "--templates", path)
		require.NoError(t, err)
		assert.Equal(t, "solo\n", out)
	})
}

func TestRender_Errors(t *testing.T) {
	p := newProject(t, projectYAML)

	_, _, err := run(t, "render", "missing", "--config", p.config)
	assert.ErrorIs(t, err, template.ErrTemplateNotFound)

	_, _, err = run(t, "render", "hello", "--config", p.config, "--select", "$.x")
	assert.ErrorContains(t, err, "--select requires --data")

	_, _, err = run(t, "render", "city-page", "--config", p.config,
		"--data", p.data, "--select", "$.listings[*]", "--index", "5")
	assert.ErrorContains(t, err, "out of range")

	_, _, err = run(t, "render", "city-page", "--config", p.config, "--data", p.data, "--select", "$.listings")
	assert.Error(t, err, "selected value must be an object")

	_, _, err = run(t, "render", "hello", "--config", filepath.Join(p.dir, "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrFileNotFound)

	_, _, err = run(t, "render")
	assert.Error(t, err)
}

func TestSEO(t *testing.T) {
	p := newProject(t, projectYAML)

	out, _, err := run(t, "seo", "city-page", "--config", p.config,
		"--data", p.data, "--select", "$.listings[0]")
	require.NoError(t, err)

	var seo template.SEO
	require.NoError(t, json.Unmarshal([]byte(out), &seo))
	assert.Equal(t, "Acme | Lyon", seo.Title)
	assert.Equal(t, "Visit Acme", seo.Description)
	assert.Equal(t, []string{"Lyon"}, seo.Keywords)
	require.Len(t, seo.Schema, 1)
	assert.Equal(t, "Acme", seo.Schema[0].(map[string]any)["name"])

	out, _, err = run(t, "seo", "city-page", "--config", p.config,
		"--data", p.data, "--select", "$.listings[*]")
	require.NoError(t, err)
	var all []template.SEO
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Acme | Gap", all[1].Title)

	out, _, err = run(t, "seo", "hello", "--config", p.config)
	require.NoError(t, err)
	assert.NotContains(t, out, "schema")
}

func TestBuild(t *testing.T) {
	p := newProject(t, projectYAML)
	outDir := filepath.Join(t.TempDir(), "public")

	stdout, stderr, err := run(t, "build", "city-page", "--config", p.config,
		"--data", p.data, "--select", "$.listings[*]", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Built 2 page(s) in "+outDir)
	assert.Contains(t, stderr, "build complete")

	content, err := os.ReadFile(filepath.Join(outDir, "acme-lyon.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Acme in Lyon</h1><p>Big city</p>", string(content))

	meta, err := os.ReadFile(filepath.Join(outDir, "acme-gap.seo.json"))
	require.NoError(t, err)
	var seo template.SEO
	require.NoError(t, json.Unmarshal(meta, &seo))
	assert.Equal(t, "Acme | Gap", seo.Title)
}

func TestBuild_NamePattern(t *testing.T) {
	p := newProject(t, projectYAML)
	outDir := t.TempDir()

	stdout, _, err := run(t, "build", "city-page", "--config", p.config, "--json",
		"--data", p.data, "--select", "$.listings[*]", "--out", outDir,
		"--name", "{{city.name}}/{{business.name}}", "--concurrency", "1")
	require.NoError(t, err)

	var got BuildOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.NotEmpty(t, got.RunID)
	require.Len(t, got.Pages, 2)
	assert.Equal(t, "lyon/acme", got.Pages[0].Name)
	assert.Equal(t, filepath.Join(outDir, "gap", "acme.html"), got.Pages[1].Content)
	assert.FileExists(t, filepath.Join(outDir, "lyon", "acme.html"))
	assert.FileExists(t, filepath.Join(outDir, "gap", "acme.seo.json"))
}

func TestBuild_DefaultOutDir(t *testing.T) {
	p := newProject(t, projectYAML)

	_, _, err := run(t, "build", "city-page", "--config", p.config,
		"--data", p.data, "--select", "$.listings[*]")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(p.dir, config.DefaultOutDir, "acme-lyon.html"))
}

func TestBuild_Errors(t *testing.T) {
	p := newProject(t, projectYAML)
	outDir := filepath.Join(t.TempDir(), "public")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unresolved name", []string{"--name", "{{missing}}"}, "did not resolve"},
		{"clashing names", []string{"--name", "{{business.name}}"}, "both map to"},
		{"empty name", []string{"--name", "!!"}, "usable file name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"build", "city-page", "--config", p.config,
				"--data", p.data, "--select", "$.listings[*]", "--out", outDir}, tt.args...)
			_, _, err := run(t, args...)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.NoDirExists(t, outDir, "nothing is written when naming fails")
		})
	}

	_, _, err := run(t, "build", "nope", "--config", p.config, "--out", outDir)
	assert.ErrorIs(t, err, template.ErrTemplateNotFound)
}

func TestTemplatesList(t *testing.T) {
	p := newProject(t, projectYAML)

	out, _, err := run(t, "templates", "list", "--config", p.config)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "city-page"))
	assert.True(t, strings.HasPrefix(lines[2], "hello"))

	out, _, err = run(t, "templates", "ls", "--config", p.config, "--json")
	require.NoError(t, err)
	var got []TemplateSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []TemplateSummary{
		{ID: "city-page", Name: "City page", Sections: 2, Guarded: 1, Schema: true},
		{ID: "hello", Sections: 1},
	}, got)
}

func TestTemplatesShow(t *testing.T) {
	p := newProject(t, projectYAML)

	out, _, err := run(t, "templates", "show", "city-page", "--config", p.config)
	require.NoError(t, err)
	assert.Contains(t, out, "id: city-page")
	assert.Contains(t, out, "operator: gt")

	out, _, err = run(t, "templates", "show", "hello", "--config", p.config, "--json")
	require.NoError(t, err)
	var got template.Template
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "hello", got.ID)

	_, _, err = run(t, "templates", "show", "nope", "--config", p.config)
	assert.ErrorIs(t, err, template.ErrTemplateNotFound)
}

func TestValidate(t *testing.T) {
	p := newProject(t, projectYAML)

	out, _, err := run(t, "validate", "--config", p.config)
	require.NoError(t, err)
	assert.Contains(t, out, "pages.yaml (2 template(s))")
	assert.Contains(t, out, "All templates are valid.")

	writeFile(t, p.dir, "templates/zz-bad.yaml", `id: bad
sections:
  - id: s
    content: x
    guard: {field: a, operator: lt}
`)
	writeFile(t, p.dir, "templates/zz-dup.yaml", "id: hello\nsections: []\n")

	out, stderr, err := run(t, "validate", "--config", p.config, "--json")
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, stderr)

	var got ValidateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	require.Len(t, got.Files, 3)
	assert.Empty(t, got.Files[0].Errors)
	assert.NotEmpty(t, got.Files[1].Errors)
	require.Len(t, got.Files[2].Errors, 1)
	assert.Contains(t, got.Files[2].Errors[0], "hello")

	_, stderr, err = run(t, "validate", "--config", p.config)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, stderr, "Warning: some template files have errors")
}

func TestLogFile(t *testing.T) {
	p := newProject(t, projectYAML+"log:\n  level: debug\n  file: pagegen.log\n")

	_, stderr, err := run(t, "render", "hello", "--config", p.config, "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"templates loaded"`)

	data, err := os.ReadFile(filepath.Join(p.dir, "pagegen.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"content rendered"`)
}

func TestLogFile_ClosedOnError(t *testing.T) {
	p := newProject(t, projectYAML+"log:\n  level: debug\n  file: pagegen.log\n")

	_, _, a, err := runApp(t, "render", "missing", "--config", p.config)
	require.ErrorIs(t, err, template.ErrTemplateNotFound)
	assert.Nil(t, a.logFile)

	data, err := os.ReadFile(filepath.Join(p.dir, "pagegen.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"templates loaded"`)
}

func TestVersion(t *testing.T) {
	p := newProject(t, projectYAML)

	out, _, err := run(t, "version", "--config", p.config, "--json")
	require.NoError(t, err)
	var got VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.Version)
	assert.NotEmpty(t, got.Go)

	out, _, err = run(t, "version", "--config", p.config)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "pagegen "))
}
