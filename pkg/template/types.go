package template

// Template is a named bundle of content sections and an SEO pattern.
type Template struct {
	// ID is the unique key of the template within a Registry.
	ID string `json:"id" yaml:"id"`

	// Name is a human-readable label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Sections are rendered in order and concatenated.
	// A template used only for SEO may have none.
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`

	// SEO holds the metadata patterns.
	SEO SEOPattern `json:"seo" yaml:"seo"`
}

// Section is one block of template content.
type Section struct {
	ID string `json:"id" yaml:"id"`

	// Kind tags the section (hero, faq, pricing, ...). It does not affect rendering.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Content holds the raw directive source.
	Content string `json:"content" yaml:"content"`

	// Variables lists the context paths the content expects.
	// Documentation only; never enforced.
	Variables []string `json:"variables,omitempty" yaml:"variables,omitempty"`

	// Guard, when set, must hold for the section to render at all.
	Guard *Condition `json:"guard,omitempty" yaml:"guard,omitempty"`
}

// SEOPattern holds the SEO metadata patterns of a template.
type SEOPattern struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Schema is a JSON-shaped structured-data tree (typically JSON-LD)
	// whose string leaves may contain interpolation directives.
	Schema any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// SEO is rendered SEO metadata.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`

	// Schema holds the structured-data objects; nil when the template
	// has no schema pattern.
	Schema []any `json:"schema,omitempty"`
}

// clone returns a deep copy of t.
func (t *Template) clone() *Template {
	cp := *t
	cp.Sections = make([]Section, len(t.Sections))
	for i, s := range t.Sections {
		s.Variables = append([]string(nil), s.Variables...)
		if s.Guard != nil {
			g := *s.Guard
			g.Value = cloneTree(g.Value)
			s.Guard = &g
		}
		cp.Sections[i] = s
	}
	cp.SEO.Keywords = append([]string(nil), t.SEO.Keywords...)
	cp.SEO.Schema = cloneTree(t.SEO.Schema)
	return &cp
}
