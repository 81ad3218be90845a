package page

// FetchKind is the content a section pulls from the source when it carries
// neither embedded posts nor pinned post ids.
type FetchKind int

const (
	FetchNone FetchKind = iota
	FetchLatest
	FetchCategory
	FetchWidgets
)

// SectionConfig is the set of named defaults for one section type, shared by
// the resolver and the renderers.
type SectionConfig struct {
	Fetch   FetchKind
	Limit   int
	Layout  string
	Layouts []string
}

// DefaultTrendingLimit is the number of posts a trending widget shows when it
// declares no limit.
const DefaultTrendingLimit = 5

var sectionDefaults = map[SectionType]SectionConfig{
	SectionHero: {
		Fetch:   FetchLatest,
		Limit:   3,
		Layout:  "standard",
		Layouts: []string{"standard", "large", "split"},
	},
	SectionFeaturedPosts: {
		Fetch:   FetchLatest,
		Limit:   4,
		Layout:  "default",
		Layouts: []string{"default", "horizontal", "carousel"},
	},
	SectionPostGrid: {
		Fetch: FetchLatest,
		Limit: 6,
	},
	SectionPostList: {
		Fetch:   FetchLatest,
		Limit:   10,
		Layout:  "standard",
		Layouts: []string{"standard", "compact", "featured"},
	},
	SectionCategory: {
		Fetch:   FetchCategory,
		Limit:   4,
		Layout:  "grid",
		Layouts: []string{"grid", "list", "featured"},
	},
	SectionSidebar: {
		Fetch: FetchWidgets,
	},
}

// Defaults returns the configuration of t. Unknown types get a zero config
// that fetches nothing.
func Defaults(t SectionType) SectionConfig {
	return sectionDefaults[t]
}

// LimitOr returns n when positive, else the configured limit.
func (c SectionConfig) LimitOr(n int) int {
	if n > 0 {
		return n
	}
	return c.Limit
}

// Variant returns v when it is an accepted layout for the type, else the default.
func (c SectionConfig) Variant(v string) string {
	for _, l := range c.Layouts {
		if l == v {
			return v
		}
	}
	return c.Layout
}

// Limit is the effective limit of the section: props.limit or the type default.
func (s Section) Limit() int {
	return Defaults(s.Type).LimitOr(s.Props.Limit)
}

// Variant is the effective layout variant of the section.
func (s Section) Variant() string {
	return Defaults(s.Type).Variant(s.Props.Layout)
}

// EffectiveLimit is the limit of the widget. Only trending has a default.
func (w Widget) EffectiveLimit() int {
	if w.Limit > 0 {
		return w.Limit
	}
	if w.Type == WidgetTrending {
		return DefaultTrendingLimit
	}
	return 0
}
