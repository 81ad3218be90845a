package views

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/layout"
	"github.com/eringen/pagecraft/page"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func snapshotPosts() []content.Post {
	return []content.Post{
		{
			ID: "101", Slug: "city-budget", Title: "City passes budget", Excerpt: "Council votes 7-2.",
			ImageURL: "https://img.example.com/budget.jpg", Category: "Local", CategoryID: "local",
			Author: "Ana Ruiz", PublishedAt: "2024-03-04", ReadTime: 4, Views: 1520, Tags: []string{"council"},
		},
		{
			ID: "102", Title: "Rain all week", Category: "Weather", CategoryID: "weather",
			Author: "Ben Ode", PublishedAt: "2024-03-02T08:00:00Z", ReadTime: 2, Views: 1,
		},
		{
			ID: "103", Title: "Derby ends level", Excerpt: "A late equaliser.", Link: "https://sport.example.com/derby",
			Category: "Sport", CategoryID: "sport", PublishedAt: "2024-02-28", Views: 87,
		},
	}
}

func TestSectionSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		section page.Section
	}{
		{"hero split", page.Section{Type: page.SectionHero, Props: page.Props{
			Title: "Top stories", Layout: "split", MaxPosts: 3, Posts: snapshotPosts(),
		}}},
		{"featured horizontal", page.Section{Type: page.SectionFeaturedPosts, Props: page.Props{
			Layout: "horizontal", Limit: 2, Posts: snapshotPosts(),
		}}},
		{"post grid by title", page.Section{Type: page.SectionPostGrid, Props: page.Props{
			SortBy: "title", Posts: snapshotPosts(),
		}}},
		{"post list compact", page.Section{Type: page.SectionPostList, Props: page.Props{
			Layout: "compact", SortBy: "popularity", Posts: snapshotPosts(),
		}}},
		{"category featured", page.Section{Type: page.SectionCategory, Props: page.Props{
			Layout: "featured", CategoryID: "local", CategoryName: "Local news", ShowViewMore: true,
			Posts: snapshotPosts(),
		}}},
		{"sidebar", page.Section{Type: page.SectionSidebar, Props: page.Props{Widgets: []page.Widget{
			{Type: page.WidgetTrending, Limit: 2, Posts: snapshotPosts()},
			{Type: page.WidgetCategories, Categories: []content.Category{{ID: "local", Name: "Local", Slug: "local", PostCount: 12}}},
			{Type: page.WidgetNewsletter},
			{Type: page.WidgetTags, Tags: []content.Tag{{Name: "council", Count: 4}, {Name: "open data"}}},
			{Type: page.WidgetCalendar, Events: []page.Event{{Title: "Town hall", Date: "2024-03-12", URL: "/events/town-hall/"}}},
			{Type: page.WidgetCustom, Title: "About", Content: "Local news since *1998*."},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps.MatchSnapshot(t, render(t, Section(tt.section)))
		})
	}
}

func TestTwoColumnPageSnapshot(t *testing.T) {
	comp := layout.Arrange(page.TemplateTwoColumn, []page.Section{
		{Type: page.SectionPostList, Column: page.ColumnLeft, Props: page.Props{Posts: snapshotPosts()[:1]}},
		{Type: page.SectionSidebar, Column: page.ColumnRight, Props: page.Props{Widgets: []page.Widget{{Type: page.WidgetNewsletter}}}},
	})
	site := SiteConfig{Name: "Riverside Daily", URL: "https://daily.example.com", Description: "News from the riverside."}
	meta := PageMeta{Title: "Local", URL: "https://daily.example.com/local/"}

	snaps.MatchSnapshot(t, render(t, Page(site, meta, comp)))
}
