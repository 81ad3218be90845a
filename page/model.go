// Package page holds the declarative page model (pages, sections, widgets),
// the per-type defaults, and the resolver that hydrates a page definition with
// content before it is laid out and rendered.
package page

import "github.com/eringen/pagecraft/content"

// Template names the top-level arrangement of a page's sections.
type Template string

const (
	TemplateHomepage  Template = "homepage"
	TemplateFullWidth Template = "full-width"
	TemplateTwoColumn Template = "two-column"
	TemplateDefault   Template = "default"
)

// Known reports whether t is one of the four templates.
func (t Template) Known() bool {
	switch t {
	case TemplateHomepage, TemplateFullWidth, TemplateTwoColumn, TemplateDefault:
		return true
	}
	return false
}

// Status is the publication state of a page.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPrivate   Status = "private"
)

// Known reports whether s is a valid status.
func (s Status) Known() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusPrivate
}

// SectionType selects the renderer and the default fetch of a section.
type SectionType string

const (
	SectionHero          SectionType = "hero"
	SectionFeaturedPosts SectionType = "featured-posts"
	SectionPostGrid      SectionType = "post-grid"
	SectionPostList      SectionType = "post-list"
	SectionCategory      SectionType = "category"
	SectionSidebar       SectionType = "sidebar"
)

// Known reports whether t has a renderer.
func (t SectionType) Known() bool {
	_, ok := sectionDefaults[t]
	return ok
}

// Column places a section under the two-column template. Other templates ignore it.
type Column string

const (
	ColumnLeft  Column = "left"
	ColumnRight Column = "right"
)

// WidgetType selects how a sidebar widget is resolved and rendered.
type WidgetType string

const (
	WidgetTrending   WidgetType = "trending"
	WidgetCategories WidgetType = "categories"
	WidgetNewsletter WidgetType = "newsletter"
	WidgetTags       WidgetType = "tags"
	WidgetCalendar   WidgetType = "calendar"
	WidgetCustom     WidgetType = "custom"
)

// Known reports whether t has a renderer.
func (t WidgetType) Known() bool {
	switch t {
	case WidgetTrending, WidgetCategories, WidgetNewsletter, WidgetTags, WidgetCalendar, WidgetCustom:
		return true
	}
	return false
}

// Page is an operator-composed page addressed by slug.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Template  Template  `json:"template"`
	Status    Status    `json:"status"`
	Sections  []Section `json:"sections"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// Section is one typed content block of a page.
type Section struct {
	Type   SectionType `json:"type"`
	Column Column      `json:"column,omitempty"`
	Props  Props       `json:"props"`
}

// Props is the property bag of a section. Each section type reads the subset
// it understands; see Defaults for the per-type fallbacks.
type Props struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`

	// Posts carries resolved (or embedded) content. PostIDs pins specific posts.
	Posts   []content.Post `json:"posts,omitempty"`
	PostIDs []string       `json:"postIds,omitempty"`

	Limit    int    `json:"limit,omitempty"`
	MaxPosts int    `json:"maxPosts,omitempty"`
	Layout   string `json:"layout,omitempty"`

	CategoryID   string `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	CategorySlug string `json:"categorySlug,omitempty"`
	ShowViewMore bool   `json:"showViewMore,omitempty"`

	CategoryFilter string `json:"categoryFilter,omitempty"`
	TagFilter      string `json:"tagFilter,omitempty"`
	SortBy         string `json:"sortBy,omitempty"`

	Widgets []Widget `json:"widgets,omitempty"`
}

// Widget is a typed block nested inside a sidebar section.
type Widget struct {
	Type       WidgetType         `json:"type"`
	Title      string             `json:"title,omitempty"`
	Limit      int                `json:"limit,omitempty"`
	Posts      []content.Post     `json:"posts,omitempty"`
	Categories []content.Category `json:"categories,omitempty"`
	Tags       []content.Tag      `json:"tags,omitempty"`
	Events     []Event            `json:"events,omitempty"`
	Content    string             `json:"content,omitempty"`
}

// Event is an entry of a calendar widget.
type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	URL   string `json:"url,omitempty"`
}

// Clone returns a deep copy of p.
func (p Page) Clone() Page {
	if p.Sections != nil {
		sections := make([]Section, len(p.Sections))
		for i, s := range p.Sections {
			sections[i] = s.Clone()
		}
		p.Sections = sections
	}
	return p
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	s.Props.Posts = content.ClonePosts(s.Props.Posts)
	if s.Props.PostIDs != nil {
		s.Props.PostIDs = append([]string(nil), s.Props.PostIDs...)
	}
	if s.Props.Widgets != nil {
		widgets := make([]Widget, len(s.Props.Widgets))
		for i, w := range s.Props.Widgets {
			widgets[i] = w.Clone()
		}
		s.Props.Widgets = widgets
	}
	return s
}

// Clone returns a deep copy of w.
func (w Widget) Clone() Widget {
	w.Posts = content.ClonePosts(w.Posts)
	if w.Categories != nil {
		w.Categories = append([]content.Category(nil), w.Categories...)
	}
	if w.Tags != nil {
		w.Tags = append([]content.Tag(nil), w.Tags...)
	}
	if w.Events != nil {
		w.Events = append([]Event(nil), w.Events...)
	}
	return w
}
