package pagecraft

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/layout"
	"github.com/eringen/pagecraft/page"
)

// stubContent serves a fixed set of posts, or fails every call.
type stubContent struct {
	mu    sync.Mutex
	fail  bool
	posts []content.Post
	views map[string]int
}

var errUnavailable = errors.New("content backend unavailable")

func (s *stubContent) GetPostByID(ctx context.Context, id string) (content.Post, error) {
	if s.fail {
		return content.Post{}, errUnavailable
	}
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return content.Post{}, content.ErrNotFound
}

func (s *stubContent) GetPosts(ctx context.Context, page, limit int) ([]content.Post, error) {
	if s.fail {
		return nil, errUnavailable
	}
	if limit > 0 && limit < len(s.posts) {
		return append([]content.Post(nil), s.posts[:limit]...), nil
	}
	return append([]content.Post(nil), s.posts...), nil
}

func (s *stubContent) GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) ([]content.Post, error) {
	if s.fail {
		return nil, errUnavailable
	}
	var out []content.Post
	for _, p := range s.posts {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubContent) GetTrendingArticles(ctx context.Context, limit int) ([]content.Post, error) {
	return s.GetPosts(ctx, 1, limit)
}

func (s *stubContent) GetCategories(ctx context.Context) ([]content.Category, error) {
	if s.fail {
		return nil, errUnavailable
	}
	return []content.Category{{ID: "c1", Name: "Tech"}}, nil
}

func (s *stubContent) GetTags(ctx context.Context) ([]content.Tag, error) {
	if s.fail {
		return nil, errUnavailable
	}
	return []content.Tag{{Name: "go", Count: 2}}, nil
}

func (s *stubContent) RecordView(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			if s.views == nil {
				s.views = make(map[string]int)
			}
			s.views[id]++
			return nil
		}
	}
	return content.ErrNotFound
}

func samplePosts() []content.Post {
	return []content.Post{
		{ID: "1", Title: "First", CategoryID: "c1", Category: "Tech", PublishedAt: "2024-03-01"},
		{ID: "2", Title: "Second", CategoryID: "c2", Category: "Food", PublishedAt: "2024-02-01"},
		{ID: "3", Title: "Third", CategoryID: "c1", Category: "Tech", PublishedAt: "2024-01-01"},
	}
}

func quietLogger() page.ResolverOption {
	return page.WithLogger(discardLogger{})
}

type discardLogger struct{}

func (discardLogger) Warnf(string, ...interface{}) {}

func savePages(t *testing.T, s *Store, pages ...page.Page) {
	t.Helper()
	for _, p := range pages {
		if _, err := s.SavePage(context.Background(), p); err != nil {
			t.Fatalf("SavePage(%s) failed: %v", p.Slug, err)
		}
	}
}

func TestEngineRenderUnknownSlug(t *testing.T) {
	s := setupTestStore(t)
	e := NewEngine(s, &stubContent{}, quietLogger())

	_, err := e.Render(context.Background(), "about-us")
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("Render(about-us) = %v, want ErrPageNotFound", err)
	}
}

func TestEngineRenderDegradesFailingSections(t *testing.T) {
	s := setupTestStore(t)
	savePages(t, s, page.Page{
		Slug:     "home",
		Template: page.TemplateHomepage,
		Status:   page.StatusPublished,
		Sections: []page.Section{
			{Type: page.SectionHero},
			{Type: page.SectionCategory, Props: page.Props{CategoryName: "Tech"}},
			{Type: page.SectionSidebar, Props: page.Props{Widgets: []page.Widget{{Type: page.WidgetTrending}}}},
		},
	})
	e := NewEngine(s, &stubContent{fail: true}, quietLogger())

	rp, err := e.Render(context.Background(), "home")
	if err != nil {
		t.Fatalf("Render(home) failed: %v", err)
	}
	if len(rp.Page.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(rp.Page.Sections))
	}
	for i, sec := range rp.Page.Sections[:2] {
		if sec.Props.Posts == nil || len(sec.Props.Posts) != 0 {
			t.Errorf("section %d posts = %#v, want empty list", i, sec.Props.Posts)
		}
	}
	if w := rp.Page.Sections[2].Props.Widgets[0]; w.Posts == nil || len(w.Posts) != 0 {
		t.Errorf("trending posts = %#v, want empty list", w.Posts)
	}
	if len(rp.Layout.Region(layout.RegionHero)) != 1 || len(rp.Layout.Region(layout.RegionSide)) != 1 {
		t.Errorf("layout = %+v", rp.Layout)
	}
}

func TestEngineRenderHydratesAndArranges(t *testing.T) {
	s := setupTestStore(t)
	savePages(t, s, page.Page{
		Slug:     "news",
		Template: page.TemplateTwoColumn,
		Status:   page.StatusPublished,
		Sections: []page.Section{
			{Type: page.SectionFeaturedPosts, Column: page.ColumnLeft, Props: page.Props{Limit: 2}},
			{Type: page.SectionCategory, Column: page.ColumnRight, Props: page.Props{CategoryID: "c1"}},
		},
	})
	e := NewEngine(s, &stubContent{posts: samplePosts()}, quietLogger())

	rp, err := e.Render(context.Background(), "news")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := rp.Page.Sections[0].Props.Posts; len(got) != 2 || got[0].ID != "1" {
		t.Errorf("featured posts = %+v", got)
	}
	if got := rp.Page.Sections[1].Props.Posts; len(got) != 2 || got[1].ID != "3" {
		t.Errorf("category posts = %+v", got)
	}
	left, right := rp.Layout.Region(layout.RegionLeft), rp.Layout.Region(layout.RegionRight)
	if len(left) != 1 || left[0].Index != 0 || len(right) != 1 || right[0].Index != 1 {
		t.Errorf("columns = %+v / %+v", left, right)
	}

	stored, err := s.GetPageBySlug(context.Background(), "news")
	if err != nil {
		t.Fatalf("GetPageBySlug failed: %v", err)
	}
	if len(stored.Sections[0].Props.Posts) != 0 {
		t.Error("resolved content leaked into the stored definition")
	}
}

func TestEngineRenderHidesUnpublished(t *testing.T) {
	s := setupTestStore(t)
	savePages(t, s,
		page.Page{Slug: "draft", Status: page.StatusDraft},
		page.Page{Slug: "secret", Status: page.StatusPrivate},
	)
	e := NewEngine(s, &stubContent{}, quietLogger())
	ctx := context.Background()

	for _, slug := range []string{"draft", "secret"} {
		if _, err := e.Render(ctx, slug); !errors.Is(err, ErrPageNotFound) {
			t.Errorf("Render(%s) = %v, want ErrPageNotFound", slug, err)
		}
		rp, err := e.Preview(ctx, slug)
		if err != nil {
			t.Errorf("Preview(%s) failed: %v", slug, err)
		}
		if rp.Layout.Template != page.TemplateDefault {
			t.Errorf("Preview(%s) template = %q", slug, rp.Layout.Template)
		}
	}
}

func TestEngineSection(t *testing.T) {
	s := setupTestStore(t)
	savePages(t, s,
		page.Page{Slug: "home", Status: page.StatusPublished, Sections: []page.Section{
			{Type: page.SectionHero},
			{Type: page.SectionPostGrid, Props: page.Props{Limit: 1}},
		}},
		page.Page{Slug: "draft", Status: page.StatusDraft, Sections: []page.Section{{Type: page.SectionHero}}},
	)
	e := NewEngine(s, &stubContent{posts: samplePosts()}, quietLogger())
	ctx := context.Background()

	sec, err := e.Section(ctx, "home", 1)
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if sec.Type != page.SectionPostGrid || len(sec.Props.Posts) != 1 {
		t.Errorf("section = %+v", sec)
	}
	for _, tc := range []struct {
		slug  string
		index int
	}{{"home", 2}, {"home", -1}, {"draft", 0}, {"missing", 0}} {
		if _, err := e.Section(ctx, tc.slug, tc.index); !errors.Is(err, ErrPageNotFound) {
			t.Errorf("Section(%s, %d) = %v, want ErrPageNotFound", tc.slug, tc.index, err)
		}
	}
}
