package views

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/pagecraft/page"
)

type widgetFunc func(buf *bytes.Buffer, w page.Widget) error

var widgetRenderers = map[page.WidgetType]widgetFunc{
	page.WidgetTrending:   renderTrending,
	page.WidgetCategories: renderCategories,
	page.WidgetNewsletter: renderNewsletter,
	page.WidgetTags:       renderTags,
	page.WidgetCalendar:   renderCalendar,
	page.WidgetCustom:     renderCustom,
}

// Widget renders one sidebar widget. Unknown widget types render nothing.
func Widget(w page.Widget) templ.Component {
	render, ok := widgetRenderers[w.Type]
	if !ok {
		return templ.NopComponent
	}
	return component(func(_ context.Context, buf *bytes.Buffer) error {
		return render(buf, w)
	})
}

// renderSidebar renders widgets in declared order, skipping unknown types.
func renderSidebar(_ context.Context, buf *bytes.Buffer, s page.Section) error {
	openSection(buf, s, "")
	writeHeader(buf, s.Props.Title, s.Props.Subtitle)
	for _, w := range s.Props.Widgets {
		render, ok := widgetRenderers[w.Type]
		if !ok {
			continue
		}
		if err := render(buf, w); err != nil {
			return err
		}
	}
	buf.WriteString(`</section>`)
	return nil
}

// openWidget writes the widget box and its heading. The heading defaults to
// the title-cased type; custom widgets without a title get none.
func openWidget(buf *bytes.Buffer, w page.Widget) {
	fmt.Fprintf(buf, `<div class="widget widget-%s">`, esc(string(w.Type)))
	title := w.Title
	if title == "" && w.Type != page.WidgetCustom {
		title = Title(string(w.Type))
	}
	if title != "" {
		fmt.Fprintf(buf, `<h3 class="widget-title">%s</h3>`, esc(title))
	}
}

func renderTrending(buf *bytes.Buffer, w page.Widget) error {
	posts := firstN(w.Posts, w.EffectiveLimit())
	openWidget(buf, w)
	if len(posts) == 0 {
		writeEmpty(buf, "Nothing trending yet.")
	} else {
		buf.WriteString(`<ol class="trending">`)
		for _, p := range posts {
			fmt.Fprintf(buf, `<li><a href="%s">%s</a>`, href(PostHref(p)), esc(p.Title))
			if p.Views > 0 {
				fmt.Fprintf(buf, ` <span class="post-views">%s</span>`, esc(ViewCount(p.Views)))
			}
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ol>`)
	}
	buf.WriteString(`</div>`)
	return nil
}

func renderCategories(buf *bytes.Buffer, w page.Widget) error {
	categories := w.Categories
	if n := w.EffectiveLimit(); n > 0 && len(categories) > n {
		categories = categories[:n]
	}
	openWidget(buf, w)
	if len(categories) == 0 {
		writeEmpty(buf, "No categories.")
	} else {
		buf.WriteString(`<ul class="category-links">`)
		for _, c := range categories {
			slug := c.Slug
			if slug == "" {
				slug = page.Slugify(c.Name)
			}
			fmt.Fprintf(buf, `<li><a href="/category/%s/">%s</a>`, esc(PathEscape(slug)), esc(c.Name))
			if c.PostCount > 0 {
				fmt.Fprintf(buf, ` <span class="count">%d</span>`, c.PostCount)
			}
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</div>`)
	return nil
}

func renderNewsletter(buf *bytes.Buffer, w page.Widget) error {
	openWidget(buf, w)
	if w.Content != "" {
		fmt.Fprintf(buf, `<p class="widget-text">%s</p>`, esc(w.Content))
	}
	buf.WriteString(`<form class="newsletter" method="get" action="#">` +
		`<label for="newsletter-email" class="sr-only">Email address</label>` +
		`<input id="newsletter-email" type="email" name="email" placeholder="you@example.com" required>` +
		`<button type="submit">Subscribe</button></form>`)
	buf.WriteString(`</div>`)
	return nil
}

func renderTags(buf *bytes.Buffer, w page.Widget) error {
	tags := w.Tags
	if n := w.EffectiveLimit(); n > 0 && len(tags) > n {
		tags = tags[:n]
	}
	openWidget(buf, w)
	if len(tags) == 0 {
		writeEmpty(buf, "No tags.")
	} else {
		buf.WriteString(`<div class="tag-cloud">`)
		for _, t := range tags {
			slug := t.Slug
			if slug == "" {
				slug = page.Slugify(t.Name)
			}
			label := t.Name
			if t.Count > 0 {
				label += " (" + strconv.Itoa(t.Count) + ")"
			}
			fmt.Fprintf(buf, `<a class="tag" href="/tag/%s/">%s</a>`, esc(PathEscape(slug)), esc(label))
		}
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</div>`)
	return nil
}

func renderCalendar(buf *bytes.Buffer, w page.Widget) error {
	events := w.Events
	if n := w.EffectiveLimit(); n > 0 && len(events) > n {
		events = events[:n]
	}
	openWidget(buf, w)
	if len(events) == 0 {
		writeEmpty(buf, "No upcoming events.")
	} else {
		buf.WriteString(`<ul class="calendar">`)
		for _, e := range events {
			fmt.Fprintf(buf, `<li><time datetime="%s">%s</time> `, esc(e.Date), esc(EventDate(e.Date)))
			if e.URL != "" {
				fmt.Fprintf(buf, `<a href="%s">%s</a>`, href(e.URL), esc(e.Title))
			} else {
				buf.WriteString(esc(e.Title))
			}
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</div>`)
	return nil
}

// renderCustom renders the widget content as sanitized markdown.
func renderCustom(buf *bytes.Buffer, w page.Widget) error {
	openWidget(buf, w)
	buf.WriteString(`<div class="widget-body">`)
	if err := renderMarkdown(buf, w.Content); err != nil {
		return err
	}
	buf.WriteString(`</div></div>`)
	return nil
}
