package content

import (
	"context"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedStore(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	categories := []Category{
		{ID: "c1", Name: "Tech", Slug: "tech"},
		{ID: "c2", Name: "Travel", Slug: "travel"},
	}
	for _, c := range categories {
		if err := s.SaveCategory(ctx, c); err != nil {
			t.Fatalf("SaveCategory failed: %v", err)
		}
	}
	posts := []Post{
		{ID: "p1", Title: "Go 1.24", CategoryID: "c1", PublishedAt: "2024-01-01", Views: 10, Tags: []string{"Go", "release"}},
		{ID: "p2", Title: "Lisbon", CategoryID: "c2", PublishedAt: "2024-01-03", Views: 50, Tags: []string{"europe"}},
		{ID: "p3", Title: "Echo tips", CategoryID: "c1", PublishedAt: "2024-01-02", Views: 30, Tags: []string{"go", "web"}},
	}
	for _, p := range posts {
		if err := s.SavePost(ctx, p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}
}

func TestStoreGetPostByID(t *testing.T) {
	s := setupTestStore(t)
	seedStore(t, s)

	got, err := s.GetPostByID(context.Background(), "p3")
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if got.Title != "Echo tips" {
		t.Errorf("Title = %q, want %q", got.Title, "Echo tips")
	}
	if got.Category != "Tech" {
		t.Errorf("Category = %q, want %q", got.Category, "Tech")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", got.Tags)
	}
}

func TestStoreGetPostByIDNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetPostByID(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreGetPostsNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	seedStore(t, s)

	got, err := s.GetPosts(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetPosts count = %d, want 2", len(got))
	}
	if got[0].ID != "p2" || got[1].ID != "p3" {
		t.Errorf("GetPosts order = [%s %s], want [p2 p3]", got[0].ID, got[1].ID)
	}

	page2, err := s.GetPosts(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("GetPosts page 2 failed: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != "p1" {
		t.Errorf("GetPosts page 2 = %v, want [p1]", page2)
	}
}

func TestStoreGetPostsByCategory(t *testing.T) {
	s := setupTestStore(t)
	seedStore(t, s)

	got, err := s.GetPostsByCategory(context.Background(), "c1", 1, 10)
	if err != nil {
		t.Fatalf("GetPostsByCategory failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	for _, p := range got {
		if p.CategoryID != "c1" {
			t.Errorf("post %s has category %s, want c1", p.ID, p.CategoryID)
		}
	}
}

func TestStoreTrendingAndRecordView(t *testing.T) {
	s := setupTestStore(t)
	seedStore(t, s)
	ctx := context.Background()

	got, err := s.GetTrendingArticles(ctx, 1)
	if err != nil {
		t.Fatalf("GetTrendingArticles failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("trending = %v, want [p2]", got)
	}

	for i := 0; i < 25; i++ {
		if err := s.RecordView(ctx, "p3"); err != nil {
			t.Fatalf("RecordView failed: %v", err)
		}
	}
	got, err = s.GetTrendingArticles(ctx, 1)
	if err != nil {
		t.Fatalf("GetTrendingArticles failed: %v", err)
	}
	if got[0].ID != "p3" || got[0].Views != 55 {
		t.Errorf("trending after views = %s (%d views), want p3 (55 views)", got[0].ID, got[0].Views)
	}

	if err := s.RecordView(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("RecordView(missing) = %v, want ErrNotFound", err)
	}
}

func TestStoreCategoriesAndTags(t *testing.T) {
	s := setupTestStore(t)
	seedStore(t, s)
	ctx := context.Background()

	categories, err := s.GetCategories(ctx)
	if err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if len(categories) != 2 || categories[0].Name != "Tech" || categories[0].PostCount != 2 {
		t.Errorf("categories = %+v", categories)
	}

	tags, err := s.GetTags(ctx)
	if err != nil {
		t.Fatalf("GetTags failed: %v", err)
	}
	want := map[string]int{"europe": 1, "go": 2, "release": 1, "web": 1}
	if len(tags) != len(want) {
		t.Fatalf("tags = %+v, want %d entries", tags, len(want))
	}
	for _, tag := range tags {
		if want[tag.Name] != tag.Count {
			t.Errorf("tag %q count = %d, want %d", tag.Name, tag.Count, want[tag.Name])
		}
	}
	if tags[0].Name != "europe" {
		t.Errorf("tags not sorted: %+v", tags)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{",", nil},
		{",go,", []string{"go"}},
		{",go,web,", []string{"go", "web"}},
		{",go, web ,rust,", []string{"go", "web", "rust"}},
	}

	for _, tt := range tests {
		got := ParseTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestPostPublished(t *testing.T) {
	tests := []struct {
		in   string
		zero bool
		year int
	}{
		{"2024-01-02", false, 2024},
		{"2023-06-01T10:00:00Z", false, 2023},
		{"", true, 0},
		{"yesterday", true, 0},
	}
	for _, tt := range tests {
		got := Post{PublishedAt: tt.in}.Published()
		if got.IsZero() != tt.zero {
			t.Errorf("Published(%q).IsZero() = %v, want %v", tt.in, got.IsZero(), tt.zero)
		}
		if !tt.zero && got.Year() != tt.year {
			t.Errorf("Published(%q).Year() = %d, want %d", tt.in, got.Year(), tt.year)
		}
	}
}
