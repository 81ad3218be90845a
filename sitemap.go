package pagecraft

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/page"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the published pages. The home page is the site root.
func (a *App) renderSitemap(c echo.Context, pages []page.Page) error {
	base := a.Config.URL
	urls := []sitemapURL{}
	for _, p := range pages {
		loc := BuildURL(base, p.Slug)
		if p.Slug == a.Config.HomeSlug {
			loc = BuildURL(base)
		}
		lastMod := p.UpdatedAt
		if len(lastMod) > len("2006-01-02") {
			lastMod = lastMod[:len("2006-01-02")]
		}
		urls = append(urls, sitemapURL{Loc: loc, LastMod: lastMod})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
