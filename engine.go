package pagecraft

import (
	"context"
	"errors"
	"fmt"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/layout"
	"github.com/eringen/pagecraft/page"
)

// ErrPageNotFound is returned when no page (or no such section) exists for a
// request. Publicly, pages that are not published do not exist either.
var ErrPageNotFound = errors.New("pagecraft: page not found")

// RenderedPage is a hydrated page and its arrangement, ready for the views.
type RenderedPage struct {
	Page   page.Page
	Layout layout.Composition
}

// Engine turns a slug into a composed page: it resolves the stored definition
// against the content source and lays the sections out by template.
type Engine struct {
	pages   page.Source
	public  *page.Resolver
	preview *page.Resolver
}

// NewEngine returns an Engine reading definitions from pages and content from src.
func NewEngine(pages page.Source, src content.Source, opts ...page.ResolverOption) *Engine {
	return &Engine{
		pages:   pages,
		public:  page.NewResolver(publishedOnly{pages}, src, opts...),
		preview: page.NewResolver(pages, src, opts...),
	}
}

// publishedOnly hides every page that is not published.
type publishedOnly struct {
	page.Source
}

func (p publishedOnly) GetPageBySlug(ctx context.Context, slug string) (page.Page, error) {
	def, err := p.Source.GetPageBySlug(ctx, slug)
	if err != nil {
		return page.Page{}, err
	}
	if def.Status != page.StatusPublished {
		return page.Page{}, page.ErrNotFound
	}
	return def, nil
}

// Render composes the published page stored under slug. Unknown slugs and
// unpublished pages yield ErrPageNotFound. Content that fails to load never
// fails the render; the affected sections come back empty.
func (e *Engine) Render(ctx context.Context, slug string) (RenderedPage, error) {
	return compose(ctx, e.public, slug)
}

// Preview composes the page stored under slug whatever its status.
func (e *Engine) Preview(ctx context.Context, slug string) (RenderedPage, error) {
	return compose(ctx, e.preview, slug)
}

func compose(ctx context.Context, r *page.Resolver, slug string) (RenderedPage, error) {
	p, err := r.ResolvePage(ctx, slug)
	if errors.Is(err, page.ErrNotFound) {
		return RenderedPage{}, ErrPageNotFound
	}
	if err != nil {
		return RenderedPage{}, fmt.Errorf("pagecraft: render %q: %w", slug, err)
	}
	return RenderedPage{Page: p, Layout: layout.ArrangePage(p)}, nil
}

// Section resolves only the section declared at index on the published page
// stored under slug, for partial updates.
func (e *Engine) Section(ctx context.Context, slug string, index int) (page.Section, error) {
	def, err := publishedOnly{e.pages}.GetPageBySlug(ctx, slug)
	if errors.Is(err, page.ErrNotFound) {
		return page.Section{}, ErrPageNotFound
	}
	if err != nil {
		return page.Section{}, fmt.Errorf("pagecraft: load %q: %w", slug, err)
	}
	if index < 0 || index >= len(def.Sections) {
		return page.Section{}, ErrPageNotFound
	}
	return e.public.ResolveSection(ctx, def.Sections[index]), nil
}
