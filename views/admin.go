package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/eringen/pagecraft/page"
)

func AdminLogin(site SiteConfig, showError bool, csrfToken string) templ.Component {
	return document(site, PageMeta{Title: "Admin"}, "admin", func(_ context.Context, buf *bytes.Buffer) error {
		buf.WriteString(`<main class="admin-login"><h1>Sign in</h1>`)
		if showError {
			buf.WriteString(`<p class="error" role="alert">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s">`, esc(csrfToken))
		buf.WriteString(`<label for="password">Password</label>`)
		buf.WriteString(`<input id="password" type="password" name="password" autocomplete="current-password" required>`)
		buf.WriteString(`<button type="submit">Sign in</button></form></main>`)
		return nil
	})
}

// AdminDashboard lists every stored page with preview and delete actions.
// Pages are edited through the JSON API under /admin/api/pages.
func AdminDashboard(site SiteConfig, pages []page.Page, message string, csrfToken string) templ.Component {
	return document(site, PageMeta{Title: "Pages"}, "admin", func(_ context.Context, buf *bytes.Buffer) error {
		fmt.Fprintf(buf, `<main class="admin-dashboard" hx-headers='{"X-CSRF-Token": "%s"}'>`, esc(csrfToken))
		buf.WriteString(`<header class="admin-header"><h1>Pages</h1>`)
		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s">`, esc(csrfToken))
		buf.WriteString(`<button type="submit">Sign out</button></form>`)
		buf.WriteString(`<button class="flush" hx-delete="/admin/api/content-cache" hx-swap="none">Refresh content</button></header>`)
		if message != "" {
			fmt.Fprintf(buf, `<p class="notice" role="status">%s</p>`, esc(message))
		}
		if len(pages) == 0 {
			writeEmpty(buf, "No pages yet. Import some with `pagecraft import` or PUT them to /admin/api/pages/{slug}.")
			buf.WriteString(`</main>`)
			return nil
		}
		buf.WriteString(`<table class="pages"><thead><tr><th>Slug</th><th>Title</th><th>Template</th>` +
			`<th>Status</th><th>Sections</th><th>Updated</th><th></th></tr></thead><tbody>`)
		for _, p := range pages {
			slug := esc(PathEscape(p.Slug))
			fmt.Fprintf(buf, `<tr id="page-%s">`, esc(p.Slug))
			fmt.Fprintf(buf, `<td><a href="/admin/preview/%s/">%s</a></td>`, slug, esc(p.Slug))
			fmt.Fprintf(buf, `<td>%s</td><td>%s</td>`, esc(p.Title), esc(string(p.Template)))
			fmt.Fprintf(buf, `<td class="status-%s">%s</td>`, esc(string(p.Status)), esc(string(p.Status)))
			fmt.Fprintf(buf, `<td>%d</td><td>%s</td>`, len(p.Sections), esc(p.UpdatedAt))
			fmt.Fprintf(buf, `<td><button hx-delete="/admin/api/pages/%s" hx-target="#page-%s" hx-swap="outerHTML" `+
				`hx-confirm="Delete this page?">Delete</button></td>`, slug, esc(p.Slug))
			buf.WriteString(`</tr>`)
		}
		buf.WriteString(`</tbody></table></main>`)
		return nil
	})
}
