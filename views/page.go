package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/pagecraft/layout"
)

// document wraps body in the site shell: head metadata, header and footer.
func document(site SiteConfig, meta PageMeta, class string, body func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(buf, `<title>%s</title>`, esc(title))
		if desc != "" {
			fmt.Fprintf(buf, `<meta name="description" content="%s">`, esc(desc))
			fmt.Fprintf(buf, `<meta property="og:description" content="%s">`, esc(desc))
		}
		fmt.Fprintf(buf, `<meta property="og:title" content="%s">`, esc(title))
		fmt.Fprintf(buf, `<meta property="og:type" content="%s">`, esc(ogType))
		if meta.URL != "" {
			fmt.Fprintf(buf, `<link rel="canonical" href="%s">`, href(meta.URL))
			fmt.Fprintf(buf, `<meta property="og:url" content="%s">`, href(meta.URL))
			fmt.Fprintf(buf, `<script type="application/ld+json">%s</script>`, WebPageJsonLD(site, meta))
		} else {
			fmt.Fprintf(buf, `<script type="application/ld+json">%s</script>`, WebsiteJsonLD(site))
		}
		fmt.Fprintf(buf, `<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">`, esc(site.Name))
		buf.WriteString(`<link rel="stylesheet" href="/public/styles.css">`)
		buf.WriteString(`<script src="/public/htmx.min.js" defer></script>`)
		buf.WriteString(`</head>`)

		fmt.Fprintf(buf, `<body class="%s">`, esc(class))
		fmt.Fprintf(buf, `<header class="site-header"><a class="site-name" href="/">%s</a></header>`, esc(site.Name))
		if err := body(ctx, buf); err != nil {
			return err
		}
		fmt.Fprintf(buf, `<footer class="site-footer"><p>%s</p></footer>`, esc(site.Name))
		buf.WriteString(`</body></html>`)
		return nil
	})
}

// Page renders an arranged page. Regions sharing a row are laid out side by
// side; each section keeps the id of its declared position so a single one
// can be swapped in with ?partial=section.
func Page(site SiteConfig, meta PageMeta, comp layout.Composition) templ.Component {
	return document(site, meta, "template-"+string(comp.Template), func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<main class="page">`)
		for _, row := range comp.Rows() {
			buf.WriteString(`<div class="row">`)
			for _, region := range row {
				fmt.Fprintf(buf, `<div class="region region-%s width-%s">`, esc(string(region.Name)), esc(string(region.Width)))
				for _, b := range region.Blocks {
					fmt.Fprintf(buf, `<div id="section-%d" class="block">`, b.Index)
					if err := Section(b.Section).Render(ctx, buf); err != nil {
						return err
					}
					buf.WriteString(`</div>`)
				}
				buf.WriteString(`</div>`)
			}
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</main>`)
		return nil
	})
}

// NotFound is shown for unknown slugs and unpublished pages.
func NotFound(site SiteConfig) templ.Component {
	return document(site, PageMeta{Title: "Page not found"}, "error", func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<main class="error-page"><h1>Page not found</h1>`)
		buf.WriteString(`<p>The page you are looking for does not exist.</p><a href="/">Back home</a></main>`)
		return nil
	})
}

// ServerError is shown when a request fails with a 5xx status.
func ServerError(site SiteConfig) templ.Component {
	return document(site, PageMeta{Title: "Something went wrong"}, "error", func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<main class="error-page"><h1>Something went wrong</h1>`)
		buf.WriteString(`<p>Please try again in a moment.</p></main>`)
		return nil
	})
}
