package pagecraft

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/page"
	"github.com/eringen/pagecraft/views"
)

func (a *App) handleHome(c echo.Context) error {
	return a.servePage(c, a.Config.HomeSlug)
}

func (a *App) handlePage(c echo.Context) error {
	slug := c.Param("slug")
	if slug == a.Config.HomeSlug {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
	return a.servePage(c, slug)
}

// servePage renders a published page, or just one of its sections for an
// htmx request with ?partial=section&index=N.
func (a *App) servePage(c echo.Context, slug string) error {
	if isSectionPartial(c) {
		index, err := strconv.Atoi(c.QueryParam("index"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid section index")
		}
		s, err := a.Engine.Section(c.Request().Context(), slug, index)
		if errors.Is(err, ErrPageNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		if err != nil {
			return err
		}
		return Render(c, a.Views.Section(s))
	}

	rp, err := a.Engine.Render(c.Request().Context(), slug)
	if errors.Is(err, ErrPageNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Page(a.site(), a.pageMeta(rp.Page), rp.Layout))
}

func (a *App) pageMeta(p page.Page) views.PageMeta {
	u := BuildURL(a.Config.URL, p.Slug)
	if p.Slug == a.Config.HomeSlug {
		u = BuildURL(a.Config.URL)
	}
	return views.PageMeta{
		Title:  p.Title,
		URL:    u,
		OGType: "website",
	}
}

// handleRecordView counts a view of a post. It is fired by post links and
// limited per client.
func (a *App) handleRecordView(c echo.Context) error {
	if !a.viewLimiter.Allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}
	err := a.Cache.RecordView(c.Request().Context(), c.Param("id"))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case content.IsNotFound(err):
		return c.NoContent(http.StatusNotFound)
	case errors.Is(err, content.ErrViewsUnsupported):
		return c.NoContent(http.StatusNotImplemented)
	}
	return err
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Store.ListPublished(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.GetPosts(c.Request().Context(), 1, feedSize)
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// isAPI reports whether the request expects JSON errors.
func isAPI(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/api/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	if isAPI(c) {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	if code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	if code >= 500 {
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
