package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/pagecraft/page"
)

type sectionFunc func(ctx context.Context, buf *bytes.Buffer, s page.Section) error

// sectionRenderers maps each section type to its renderer. A type missing
// from the table renders nothing.
var sectionRenderers = map[page.SectionType]sectionFunc{
	page.SectionHero:          renderHero,
	page.SectionFeaturedPosts: renderFeatured,
	page.SectionPostGrid:      renderPostGrid,
	page.SectionPostList:      renderPostList,
	page.SectionCategory:      renderCategory,
	page.SectionSidebar:       renderSidebar,
}

// Section renders one hydrated section. Sections of unknown type render nothing.
func Section(s page.Section) templ.Component {
	render, ok := sectionRenderers[s.Type]
	if !ok {
		return templ.NopComponent
	}
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		return render(ctx, buf, s)
	})
}

func openSection(buf *bytes.Buffer, s page.Section, variant string) {
	class := "section section-" + string(s.Type)
	if variant != "" {
		class += " section-" + string(s.Type) + "-" + variant
	}
	fmt.Fprintf(buf, `<section class="%s" data-section="%s">`, esc(class), esc(string(s.Type)))
}

// renderHero shows up to maxPosts posts (limit when unset). The large variant
// spans the first post; split puts it beside the rest.
func renderHero(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	variant := s.Variant()
	n := s.Props.MaxPosts
	if n <= 0 {
		n = s.Limit()
	}
	posts := firstN(s.Props.Posts, n)

	openSection(buf, s, variant)
	writeHeader(buf, s.Props.Title, s.Props.Subtitle)
	switch {
	case len(posts) == 0:
		writeEmpty(buf, "No stories to feature yet.")
	case variant == "split":
		buf.WriteString(`<div class="hero-split"><div class="hero-primary">`)
		writeCard(buf, posts[0], cardLarge)
		buf.WriteString(`</div><div class="hero-secondary">`)
		for _, p := range posts[1:] {
			writeCard(buf, p, cardSmall)
		}
		buf.WriteString(`</div></div>`)
	default:
		buf.WriteString(`<div class="hero-grid">`)
		for i, p := range posts {
			size := cardStandard
			if variant == "large" && i == 0 {
				size = cardLarge
			}
			writeCard(buf, p, size)
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</section>`)
	return nil
}

// renderFeatured shows up to limit posts. Carousel is accepted and rendered as
// the default grid.
func renderFeatured(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	variant := s.Variant()
	posts := firstN(s.Props.Posts, s.Limit())

	openSection(buf, s, variant)
	writeHeader(buf, s.Props.Title, s.Props.Subtitle)
	if len(posts) == 0 {
		writeEmpty(buf, "No featured posts.")
	} else {
		size, class := cardStandard, "featured-grid"
		if variant == "horizontal" {
			size, class = cardHorizontal, "featured-rows"
		}
		fmt.Fprintf(buf, `<div class="%s">`, class)
		for _, p := range posts {
			writeCard(buf, p, size)
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</section>`)
	return nil
}

func renderPostGrid(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	posts := page.ListingOf(s).Apply(s.Props.Posts)

	openSection(buf, s, "")
	writeHeader(buf, s.Props.Title, s.Props.Subtitle)
	if len(posts) == 0 {
		writeEmpty(buf, "No posts match.")
	} else {
		buf.WriteString(`<div class="post-grid">`)
		for _, p := range posts {
			writeCard(buf, p, cardStandard)
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</section>`)
	return nil
}

// renderPostList lays items out as standard, compact or featured. Featured
// only changes the first item.
func renderPostList(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	variant := s.Variant()
	posts := page.ListingOf(s).Apply(s.Props.Posts)

	openSection(buf, s, variant)
	writeHeader(buf, s.Props.Title, s.Props.Subtitle)
	if len(posts) == 0 {
		writeEmpty(buf, "No posts match.")
	} else {
		buf.WriteString(`<ol class="post-list">`)
		for i, p := range posts {
			size := cardStandard
			switch {
			case variant == "compact":
				size = cardCompact
			case variant == "featured" && i == 0:
				size = cardLarge
			}
			buf.WriteString(`<li>`)
			writeCard(buf, p, size)
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ol>`)
	}
	buf.WriteString(`</section>`)
	return nil
}

// renderCategory shows a category's posts. The featured variant gives index 0
// a large card and the rest small ones.
func renderCategory(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	variant := s.Variant()
	posts := firstN(s.Props.Posts, s.Limit())

	title := s.Props.Title
	if title == "" {
		title = s.Props.CategoryName
	}

	openSection(buf, s, variant)
	writeHeader(buf, title, s.Props.Subtitle)
	if len(posts) == 0 {
		writeEmpty(buf, "No posts in this category yet.")
	} else {
		class := "category-" + variant
		fmt.Fprintf(buf, `<div class="%s">`, esc(class))
		for i, p := range posts {
			size := cardStandard
			switch variant {
			case "list":
				size = cardCompact
			case "featured":
				size = cardSmall
				if i == 0 {
					size = cardLarge
				}
			}
			writeCard(buf, p, size)
		}
		buf.WriteString(`</div>`)
	}
	if slug := page.ViewAllSlug(s.Props); s.Props.ShowViewMore && slug != "" {
		label := "View all"
		if s.Props.CategoryName != "" {
			label = "View all " + Title(s.Props.CategoryName)
		}
		fmt.Fprintf(buf, `<a class="view-all" href="/category/%s/">%s</a>`, esc(PathEscape(slug)), esc(label))
	}
	buf.WriteString(`</section>`)
	return nil
}
