package template

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/getmockd/pagegen/pkg/logging"
)

// Registry stores templates by id and renders them.
//
// A Registry is normally filled once at startup and only read
// afterwards, but all methods are safe for concurrent use. Registered
// templates are never modified, so any number of renders may run in
// parallel.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*compiledTemplate
	order     []string
	log       *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		templates: make(map[string]*compiledTemplate),
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a template. The template is deep-copied, including
// guards and the schema tree; later changes to t do not affect the
// registry.
func (r *Registry) Register(t *Template) error {
	if t == nil {
		return fmt.Errorf("%w: nil template", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTemplate)
	}

	cp := t.clone()
	ct, err := compileTemplate(cp)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[cp.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, cp.ID)
	}
	r.templates[cp.ID] = ct
	r.order = append(r.order, cp.ID)

	r.log.Debug("template registered", "id", cp.ID, "sections", len(cp.Sections))
	return nil
}

// MustRegister is like Register but panics on error.
// It is intended for static template tables built at init time.
func (r *Registry) MustRegister(t *Template) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns the template registered under id.
// The returned template must not be modified.
func (r *Registry) Get(id string) (*Template, error) {
	ct, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return ct.tmpl, nil
}

// IDs returns the registered template ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// RenderContent renders every section of the template in order and
// concatenates the results, skipping sections whose guard fails.
func (r *Registry) RenderContent(id string, ctx Context) (string, error) {
	ct, err := r.lookup(id)
	if err != nil {
		return "", err
	}

	out, skipped := ct.render(ctx)
	r.log.Debug("content rendered",
		"template", id,
		"sections", len(ct.sections),
		"skipped", skipped,
		"bytes", len(out),
	)
	return out, nil
}

// RenderSEO renders the template's SEO pattern. Title, description and
// keywords are interpolated; the schema pattern, if any, is substituted
// and returned as the only element of SEO.Schema.
func (r *Registry) RenderSEO(id string, ctx Context) (*SEO, error) {
	ct, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	p := &ct.tmpl.SEO
	seo := &SEO{
		Title:       Interpolate(p.Title, ctx),
		Description: Interpolate(p.Description, ctx),
		Keywords:    make([]string, len(p.Keywords)),
	}
	for i, kw := range p.Keywords {
		seo.Keywords[i] = Interpolate(kw, ctx)
	}
	if p.Schema != nil {
		seo.Schema = []any{Substitute(p.Schema, ctx)}
	}

	r.log.Debug("seo rendered", "template", id, "keywords", len(seo.Keywords), "schema", p.Schema != nil)
	return seo, nil
}

func (r *Registry) lookup(id string) (*compiledTemplate, error) {
	r.mu.RLock()
	ct, ok := r.templates[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return ct, nil
}
