package views

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/pagecraft/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// component adapts a function writing into a buffer to templ.Component.
// Nothing reaches w when fn fails.
func component(fn func(ctx context.Context, buf *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// href sanitizes a URL for an attribute value.
func href(u string) string {
	return esc(string(templ.URL(u)))
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

var titleCaser = cases.Title(language.English)

// Title turns a type tag such as "featured-posts" into "Featured Posts".
func Title(tag string) string {
	return titleCaser.String(strings.ReplaceAll(tag, "-", " "))
}

// PostHref is the link of a post card: the source's link when present,
// else the post's own path.
func PostHref(p content.Post) string {
	if p.Link != "" {
		return p.Link
	}
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	return "/posts/" + PathEscape(slug) + "/"
}

// ViewCount formats a view counter, e.g. "12,345 views".
func ViewCount(n int) string {
	if n == 1 {
		return "1 view"
	}
	return humanize.Comma(int64(n)) + " views"
}

// PublishedDate formats the publish date of a post, or "" when it has none.
func PublishedDate(p content.Post) string {
	t := p.Published()
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// EventDate formats a calendar date ("2006-01-02"). Other values pass through.
func EventDate(d string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(d))
	if err != nil {
		return d
	}
	return t.Format("Jan 2")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// WebPageJsonLD produces a Schema.org WebPage JSON-LD block for a composed page.
func WebPageJsonLD(cfg SiteConfig, meta PageMeta) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     meta.Title,
		"url":      meta.URL,
		"isPartOf": map[string]string{
			"@type": "WebSite",
			"name":  cfg.Name,
			"url":   buildURL(cfg.URL),
		},
	}
	if meta.Description != "" {
		data["description"] = meta.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
