package pagecraft

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/page"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	def := page.Page{
		Slug:     "home",
		Title:    "Home",
		Template: page.TemplateHomepage,
		Status:   page.StatusPublished,
		Sections: []page.Section{
			{Type: page.SectionHero, Props: page.Props{Layout: "split", MaxPosts: 2}},
			{Type: page.SectionPostList, Props: page.Props{
				Posts: []content.Post{{ID: "1", Title: "Embedded", Tags: []string{"go"}}},
			}},
			{Type: page.SectionSidebar, Props: page.Props{Widgets: []page.Widget{
				{Type: page.WidgetCalendar, Events: []page.Event{{Title: "Meetup", Date: "2024-05-02"}}},
			}}},
		},
	}
	saved, err := s.SavePage(ctx, def)
	if err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if saved.UpdatedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("UpdatedAt = %q", saved.UpdatedAt)
	}

	got, err := s.GetPageBySlug(ctx, "home")
	if err != nil {
		t.Fatalf("GetPageBySlug failed: %v", err)
	}
	if got.Title != "Home" || got.Template != page.TemplateHomepage || got.Status != page.StatusPublished {
		t.Errorf("page = %+v", got)
	}
	if len(got.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(got.Sections))
	}
	if got.Sections[0].Props.Layout != "split" || got.Sections[0].Props.MaxPosts != 2 {
		t.Errorf("hero props = %+v", got.Sections[0].Props)
	}
	if posts := got.Sections[1].Props.Posts; len(posts) != 1 || posts[0].Title != "Embedded" {
		t.Errorf("embedded posts = %+v", posts)
	}
	if w := got.Sections[2].Props.Widgets; len(w) != 1 || len(w[0].Events) != 1 {
		t.Errorf("widgets = %+v", w)
	}
}

func TestGetPageNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetPageBySlug(context.Background(), "missing")
	if !errors.Is(err, page.ErrNotFound) {
		t.Fatalf("err = %v, want page.ErrNotFound", err)
	}
}

func TestSavePageNormalizes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.SavePage(ctx, page.Page{Slug: "bare"}); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	got, err := s.GetPageBySlug(ctx, "bare")
	if err != nil {
		t.Fatalf("GetPageBySlug failed: %v", err)
	}
	if got.Sections == nil || len(got.Sections) != 0 {
		t.Errorf("Sections = %#v, want empty list", got.Sections)
	}
	if got.Template != page.TemplateDefault || got.Status != page.StatusDraft {
		t.Errorf("defaults = %q / %q", got.Template, got.Status)
	}
}

func TestListPagesAndPublished(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}
	for _, p := range []page.Page{
		{Slug: "b", Status: page.StatusPublished},
		{Slug: "a", Status: page.StatusDraft},
		{Slug: "c", Status: page.StatusPublished},
		{Slug: "d", Status: page.StatusPrivate},
	} {
		if _, err := s.SavePage(ctx, p); err != nil {
			t.Fatalf("SavePage(%s) failed: %v", p.Slug, err)
		}
	}

	all, err := s.ListPages(ctx)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(all) != 4 || all[0].Slug != "a" || all[3].Slug != "d" {
		t.Errorf("ListPages = %v", slugs(all))
	}

	published, err := s.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if got := slugs(published); len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Errorf("ListPublished = %v, want [c b]", got)
	}
}

func TestDeletePage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.SavePage(ctx, page.Page{Slug: "gone"}); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if err := s.DeletePage(ctx, "gone"); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	if _, err := s.GetPageBySlug(ctx, "gone"); !errors.Is(err, page.ErrNotFound) {
		t.Errorf("page still present: %v", err)
	}
	if err := s.DeletePage(ctx, "gone"); !errors.Is(err, page.ErrNotFound) {
		t.Errorf("second delete = %v, want page.ErrNotFound", err)
	}
}

func slugs(pages []page.Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Slug
	}
	return out
}
