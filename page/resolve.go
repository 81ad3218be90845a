package page

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"

	"github.com/eringen/pagecraft/content"
)

// ErrNotFound is returned when no page definition exists for a slug.
var ErrNotFound = errors.New("page: not found")

// Source serves page definitions. GetPageBySlug returns ErrNotFound for an
// unknown slug and must hand out a copy the caller may keep.
type Source interface {
	GetPageBySlug(ctx context.Context, slug string) (Page, error)
}

// Logger receives diagnostics about content that could not be fetched.
// echo.Logger and *gommon/log.Logger both satisfy it.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Resolver hydrates page definitions with content. A failed fetch never fails
// the page: the affected section or widget ends up with an empty list.
type Resolver struct {
	pages   Source
	content content.Source
	log     Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for degraded fetches.
func WithLogger(l Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver returns a Resolver reading pages from pages and content from src.
func NewResolver(pages Source, src content.Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		pages:   pages,
		content: src,
		log:     log.New("page"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolvePage loads the page stored under slug and resolves all of its
// sections concurrently. The returned page keeps the declared section order
// and count. Only a missing page (ErrNotFound) or a failing page store is
// reported as an error.
func (r *Resolver) ResolvePage(ctx context.Context, slug string) (Page, error) {
	def, err := r.pages.GetPageBySlug(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return Page{}, err
	}
	if err != nil {
		return Page{}, fmt.Errorf("page: load %q: %w", slug, err)
	}

	hydrated := def
	hydrated.Sections = make([]Section, len(def.Sections))

	var wg sync.WaitGroup
	for i, s := range def.Sections {
		wg.Add(1)
		go func(i int, s Section) {
			defer wg.Done()
			hydrated.Sections[i] = r.resolveSection(ctx, fmt.Sprintf("%s: section %d (%s)", slug, i, s.Type), s)
		}(i, s)
	}
	wg.Wait()
	return hydrated, nil
}

// ResolveSection returns a hydrated copy of s. The declaration itself is not modified.
func (r *Resolver) ResolveSection(ctx context.Context, s Section) Section {
	return r.resolveSection(ctx, fmt.Sprintf("section (%s)", s.Type), s)
}

func (r *Resolver) resolveSection(ctx context.Context, label string, s Section) (out Section) {
	out = s.Clone()
	defer func() {
		if p := recover(); p != nil {
			r.log.Warnf("%s: resolve panicked: %v", label, p)
			out = s.Clone()
			if out.Type != SectionSidebar && len(out.Props.Posts) == 0 {
				out.Props.Posts = []content.Post{}
			}
		}
	}()

	if out.Type == SectionSidebar {
		out.Props.Widgets = r.resolveWidgets(ctx, label, out.Props.Widgets)
		return out
	}
	if len(out.Props.Posts) > 0 {
		return out
	}
	if len(out.Props.PostIDs) > 0 {
		out.Props.Posts = r.fetchByIDs(ctx, label, out.Props.PostIDs)
		return out
	}

	switch Defaults(out.Type).Fetch {
	case FetchLatest:
		posts, err := r.content.GetPosts(ctx, 1, out.Limit())
		out.Props.Posts = r.settle(label, posts, err)
	case FetchCategory:
		if out.Props.CategoryID == "" {
			r.log.Warnf("%s: no categoryId, showing no posts", label)
			out.Props.Posts = []content.Post{}
			break
		}
		posts, err := r.content.GetPostsByCategory(ctx, out.Props.CategoryID, 1, out.Limit())
		out.Props.Posts = r.settle(label, posts, err)
	}
	return out
}

// fetchByIDs fetches each id independently and keeps the posts that came
// back, in declared order.
func (r *Resolver) fetchByIDs(ctx context.Context, label string, ids []string) []content.Post {
	results := make([]*content.Post, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					r.log.Warnf("%s: post %q fetch panicked: %v", label, id, p)
				}
			}()
			p, err := r.content.GetPostByID(ctx, id)
			if err != nil {
				r.log.Warnf("%s: post %q unavailable: %v", label, id, err)
				return
			}
			results[i] = &p
		}(i, id)
	}
	wg.Wait()

	posts := make([]content.Post, 0, len(ids))
	for _, p := range results {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts
}

func (r *Resolver) resolveWidgets(ctx context.Context, label string, widgets []Widget) []Widget {
	if widgets == nil {
		return nil
	}
	out := make([]Widget, len(widgets))
	var wg sync.WaitGroup
	for i, w := range widgets {
		wg.Add(1)
		go func(i int, w Widget) {
			defer wg.Done()
			out[i] = r.resolveWidget(ctx, fmt.Sprintf("%s widget %d (%s)", label, i, w.Type), w)
		}(i, w)
	}
	wg.Wait()
	return out
}

func (r *Resolver) resolveWidget(ctx context.Context, label string, w Widget) (out Widget) {
	out = w.Clone()
	defer func() {
		if p := recover(); p != nil {
			r.log.Warnf("%s: resolve panicked: %v", label, p)
			out = w.Clone()
			switch out.Type {
			case WidgetTrending:
				if len(out.Posts) == 0 {
					out.Posts = []content.Post{}
				}
			case WidgetCategories:
				if len(out.Categories) == 0 {
					out.Categories = []content.Category{}
				}
			case WidgetTags:
				if len(out.Tags) == 0 {
					out.Tags = []content.Tag{}
				}
			}
		}
	}()

	switch out.Type {
	case WidgetTrending:
		if len(out.Posts) == 0 {
			posts, err := r.content.GetTrendingArticles(ctx, out.EffectiveLimit())
			out.Posts = r.settle(label, posts, err)
		}
	case WidgetCategories:
		if len(out.Categories) == 0 {
			categories, err := r.content.GetCategories(ctx)
			if err != nil {
				r.log.Warnf("%s: content unavailable: %v", label, err)
				categories = nil
			}
			if categories == nil {
				categories = []content.Category{}
			}
			out.Categories = categories
		}
	case WidgetTags:
		if len(out.Tags) == 0 {
			tags, err := r.content.GetTags(ctx)
			if err != nil {
				r.log.Warnf("%s: content unavailable: %v", label, err)
				tags = nil
			}
			if tags == nil {
				tags = []content.Tag{}
			}
			out.Tags = tags
		}
	}
	return out
}

// settle collapses a fetch result to content: an error or a nil list becomes
// an empty list.
func (r *Resolver) settle(label string, posts []content.Post, err error) []content.Post {
	if err != nil {
		r.log.Warnf("%s: content unavailable: %v", label, err)
		return []content.Post{}
	}
	if posts == nil {
		return []content.Post{}
	}
	return posts
}
