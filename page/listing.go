package page

import (
	"sort"
	"strings"

	"github.com/eringen/pagecraft/content"
)

// Sort orders accepted by post-grid and post-list sections.
const (
	SortDate       = "date"
	SortTitle      = "title"
	SortPopularity = "popularity"
)

// Listing is the client-side view applied to already-resolved posts.
type Listing struct {
	CategoryFilter string
	TagFilter      string
	SortBy         string
	Limit          int
}

// ListingOf reads the listing options of a section.
func ListingOf(s Section) Listing {
	return Listing{
		CategoryFilter: s.Props.CategoryFilter,
		TagFilter:      s.Props.TagFilter,
		SortBy:         s.Props.SortBy,
		Limit:          s.Limit(),
	}
}

// Apply filters, then sorts, then limits posts. The input is left untouched.
// Filters match case-insensitively; a category filter matches the post's
// category name or id, a tag filter matches any of the post's tags.
func (l Listing) Apply(posts []content.Post) []content.Post {
	out := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if l.CategoryFilter != "" && !MatchCategory(p, l.CategoryFilter) {
			continue
		}
		if l.TagFilter != "" && !MatchTag(p, l.TagFilter) {
			continue
		}
		out = append(out, p)
	}

	switch l.SortBy {
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Published().After(out[j].Published())
		})
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Views > out[j].Views
		})
	}

	if l.Limit > 0 && len(out) > l.Limit {
		out = out[:l.Limit]
	}
	return out
}

// MatchCategory reports whether filter names the post's category by name or id.
func MatchCategory(p content.Post, filter string) bool {
	f := strings.TrimSpace(filter)
	return strings.EqualFold(p.Category, f) || strings.EqualFold(p.CategoryID, f)
}

// MatchTag reports whether any of the post's tags equals filter.
func MatchTag(p content.Post, filter string) bool {
	f := content.NormalizeTag(filter)
	for _, t := range p.Tags {
		if content.NormalizeTag(t) == f {
			return true
		}
	}
	return false
}

// ViewAllSlug is the category slug used by a category section's "view all"
// link: categorySlug when set, else the slugified category name.
func ViewAllSlug(p Props) string {
	if s := strings.TrimSpace(p.CategorySlug); s != "" {
		return s
	}
	return Slugify(p.CategoryName)
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
