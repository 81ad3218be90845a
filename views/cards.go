package views

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/eringen/pagecraft/content"
)

// cardSize selects how much of a post a card shows.
type cardSize string

const (
	cardLarge      cardSize = "large"
	cardStandard   cardSize = "standard"
	cardSmall      cardSize = "small"
	cardCompact    cardSize = "compact"
	cardHorizontal cardSize = "horizontal"
)

// writeCard renders one post. Clicking the title reports a view through the
// view beacon.
func writeCard(buf *bytes.Buffer, p content.Post, size cardSize) {
	link := href(PostHref(p))
	fmt.Fprintf(buf, `<article class="post-card post-card-%s" data-post-id="%s">`, size, esc(p.ID))
	if p.ImageURL != "" && size != cardCompact {
		fmt.Fprintf(buf, `<a class="post-card-image" href="%s"><img src="%s" alt="%s" loading="lazy"></a>`,
			link, href(p.ImageURL), esc(p.Title))
	}
	buf.WriteString(`<div class="post-card-body">`)
	if p.Category != "" && size != cardCompact {
		fmt.Fprintf(buf, `<span class="post-category">%s</span>`, esc(p.Category))
	}
	heading := "h3"
	if size == cardLarge {
		heading = "h2"
	}
	fmt.Fprintf(buf, `<%s class="post-title"><a href="%s"`, heading, link)
	if p.ID != "" {
		fmt.Fprintf(buf, ` hx-post="/api/views/%s" hx-trigger="click" hx-swap="none"`, esc(PathEscape(p.ID)))
	}
	fmt.Fprintf(buf, `>%s</a></%s>`, esc(p.Title), heading)
	if p.Excerpt != "" && (size == cardLarge || size == cardStandard || size == cardHorizontal) {
		fmt.Fprintf(buf, `<p class="post-excerpt">%s</p>`, esc(p.Excerpt))
	}
	writeMeta(buf, p, size)
	buf.WriteString(`</div></article>`)
}

func writeMeta(buf *bytes.Buffer, p content.Post, size cardSize) {
	var parts []string
	if p.Author != "" && size != cardCompact {
		parts = append(parts, `<span class="post-author">`+esc(p.Author)+`</span>`)
	}
	if d := PublishedDate(p); d != "" {
		parts = append(parts, `<time datetime="`+esc(p.PublishedAt)+`">`+esc(d)+`</time>`)
	}
	if p.ReadTime > 0 && size != cardCompact {
		parts = append(parts, `<span class="post-read-time">`+strconv.Itoa(p.ReadTime)+` min read</span>`)
	}
	if p.Views > 0 {
		parts = append(parts, `<span class="post-views">`+esc(ViewCount(p.Views))+`</span>`)
	}
	if len(parts) == 0 {
		return
	}
	buf.WriteString(`<p class="post-meta">`)
	for i, part := range parts {
		if i > 0 {
			buf.WriteString(`<span aria-hidden="true"> · </span>`)
		}
		buf.WriteString(part)
	}
	buf.WriteString(`</p>`)
}

func writeEmpty(buf *bytes.Buffer, msg string) {
	fmt.Fprintf(buf, `<p class="empty-state">%s</p>`, esc(msg))
}

// writeHeader renders the optional section title and subtitle.
func writeHeader(buf *bytes.Buffer, title, subtitle string) {
	if title == "" && subtitle == "" {
		return
	}
	buf.WriteString(`<header class="section-header">`)
	if title != "" {
		fmt.Fprintf(buf, `<h2 class="section-title">%s</h2>`, esc(title))
	}
	if subtitle != "" {
		fmt.Fprintf(buf, `<p class="section-subtitle">%s</p>`, esc(subtitle))
	}
	buf.WriteString(`</header>`)
}

// firstN returns at most n posts; n <= 0 means all of them.
func firstN(posts []content.Post, n int) []content.Post {
	if n > 0 && len(posts) > n {
		return posts[:n]
	}
	return posts
}
