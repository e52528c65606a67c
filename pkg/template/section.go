package template

import "strings"

// RenderSection renders a single section against ctx.
// A section whose guard does not hold renders as the empty string.
func RenderSection(s *Section, ctx Context) string {
	if s.Guard != nil && !s.Guard.Evaluate(ctx) {
		return ""
	}
	return Expand(s.Content, ctx)
}

// compiledSection is a registered section with its content parsed and
// its guard compiled.
type compiledSection struct {
	section *Section
	guard   *guard
	nodes   []Node
}

// compiledTemplate pairs a registered template with its compiled sections.
type compiledTemplate struct {
	tmpl     *Template
	sections []compiledSection
}

func compileTemplate(t *Template) (*compiledTemplate, error) {
	ct := &compiledTemplate{
		tmpl:     t,
		sections: make([]compiledSection, len(t.Sections)),
	}
	for i := range t.Sections {
		s := &t.Sections[i]
		g, err := compileGuard(s.Guard)
		if err != nil {
			return nil, &SectionError{TemplateID: t.ID, SectionID: s.ID, Err: err}
		}
		ct.sections[i] = compiledSection{section: s, guard: g, nodes: Parse(s.Content)}
	}
	return ct, nil
}

// render concatenates every section whose guard holds.
// It returns the output and the number of sections skipped.
func (ct *compiledTemplate) render(ctx Context) (string, int) {
	var sb strings.Builder
	skipped := 0
	for i := range ct.sections {
		cs := &ct.sections[i]
		if !cs.guard.eval(ctx) {
			skipped++
			continue
		}
		evaluate(&sb, cs.nodes, ctx, nil)
	}
	return sb.String(), skipped
}
