package pagecraft

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/page"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		slugs []string
	}{
		{
			name: "single page",
			input: `
slug: home
title: Home
template: homepage
sections:
  - type: hero
    props:
      layout: split
      maxPosts: 3
`,
			slugs: []string{"home"},
		},
		{
			name: "page list",
			input: `
pages:
  - slug: home
    status: published
  - slug: about
`,
			slugs: []string{"home", "about"},
		},
		{
			name:  "json",
			input: `{"slug": "news", "sections": [{"type": "post-list"}]}`,
			slugs: []string{"news"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := ParsePages([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParsePages failed: %v", err)
			}
			if len(pages) != len(tt.slugs) {
				t.Fatalf("got %d pages, want %d", len(pages), len(tt.slugs))
			}
			for i, slug := range tt.slugs {
				if pages[i].Slug != slug {
					t.Errorf("page %d slug = %q, want %q", i, pages[i].Slug, slug)
				}
			}
		})
	}
}

func TestParsePagesKeepsProps(t *testing.T) {
	pages, err := ParsePages([]byte(`
slug: home
sections:
  - type: sidebar
    props:
      widgets:
        - type: trending
          limit: 3
        - type: custom
          content: "**hi**"
`))
	if err != nil {
		t.Fatalf("ParsePages failed: %v", err)
	}
	w := pages[0].Sections[0].Props.Widgets
	if len(w) != 2 || w[0].Type != page.WidgetTrending || w[0].Limit != 3 || w[1].Content != "**hi**" {
		t.Errorf("widgets = %+v", w)
	}
}

func TestParsePagesInvalid(t *testing.T) {
	if _, err := ParsePages([]byte("slug: [unterminated")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestImportPages(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	results := ImportPages(ctx, s, []page.Page{
		{Slug: "home", Status: page.StatusPublished, Sections: []page.Section{{Type: "ticker"}}},
		{Slug: "Bad Slug"},
		{Slug: "about"},
	})
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Err != nil || len(results[0].Warnings) != 1 {
		t.Errorf("home result = %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("invalid slug should fail")
	}
	if results[2].Err != nil {
		t.Errorf("about failed: %v", results[2].Err)
	}

	all, err := s.ListPages(ctx)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if got := slugs(all); len(got) != 2 || got[0] != "about" || got[1] != "home" {
		t.Errorf("stored pages = %v", got)
	}
}

func TestSeedContent(t *testing.T) {
	cs, err := content.NewStore(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("content.NewStore failed: %v", err)
	}
	defer cs.Close()
	ctx := context.Background()

	f, err := ParseContent([]byte(`
categories:
  - id: c1
    name: Tech
    slug: tech
posts:
  - id: p1
    title: Hello
    categoryId: c1
    publishedAt: "2024-03-01"
    tags: [Go, web]
  - id: p2
    title: Later
    categoryId: c1
    publishedAt: "2024-04-01"
`))
	if err != nil {
		t.Fatalf("ParseContent failed: %v", err)
	}
	if err := SeedContent(ctx, cs, f); err != nil {
		t.Fatalf("SeedContent failed: %v", err)
	}

	posts, err := cs.GetPostsByCategory(ctx, "c1", 1, 10)
	if err != nil {
		t.Fatalf("GetPostsByCategory failed: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "p2" {
		t.Errorf("posts = %+v", posts)
	}
	cats, err := cs.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(cats) != 1 || cats[0].PostCount != 2 {
		t.Errorf("categories = %+v", cats)
	}
}
