package pagecraft

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/page"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminPreview renders a page whatever its status.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	rp, err := a.Engine.Preview(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, ErrPageNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Page(a.site(), a.pageMeta(rp.Page), rp.Layout))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.ListPages(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(a.site(), pages, msg, CsrfToken(c)))
}

// savePageResponse is returned by PUT /admin/api/pages/:slug.
type savePageResponse struct {
	Page     page.Page `json:"page"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (a *App) handleAPIListPages(c echo.Context) error {
	pages, err := a.Store.ListPages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pages)
}

func (a *App) handleAPIGetPage(c echo.Context) error {
	p, err := a.Store.GetPageBySlug(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, page.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// handleAPISavePage upserts the page definition in the body. The slug in the
// path wins over the body. Unknown templates, section types and widget types
// are stored and reported as warnings; they render as the default template
// or not at all.
func (a *App) handleAPISavePage(c echo.Context) error {
	var p page.Page
	if err := c.Bind(&p); err != nil {
		return err
	}
	p.Slug = c.Param("slug")
	p = page.Normalize(p)

	warnings, err := page.Validate(p)
	var verr *page.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"message":  "invalid page",
			"problems": verr.Problems,
		})
	}
	if err != nil {
		return err
	}

	saved, err := a.Store.SavePage(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savePageResponse{Page: saved, Warnings: warnings})
}

// handleAPIDeletePage removes a page. It answers 200 with an empty body so
// the dashboard row swaps out.
func (a *App) handleAPIDeletePage(c echo.Context) error {
	err := a.Store.DeletePage(c.Request().Context(), c.Param("slug"))
	if errors.Is(err, page.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// handleAPIFlushContent drops every cached content response, so pages pick
// up reseeded or edited posts before the cache TTL runs out.
func (a *App) handleAPIFlushContent(c echo.Context) error {
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}
