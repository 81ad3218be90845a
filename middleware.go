package pagecraft

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionName = "admin_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(a.requestLogger())
	e.Use(middleware.Recover())

	// Responses that gain nothing from compression skip gzip.
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public/") || strings.HasPrefix(path, "/api/views/") ||
				isSectionPartial(c)
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
		HSTSMaxAge:            31536000,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/views/")
		},
		ErrorHandler: func(err error, c echo.Context) error {
			if isAPI(c) {
				return echo.NewHTTPError(http.StatusForbidden, "invalid csrf token")
			}
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return isFilePath(c.Request().URL.Path)
		},
	}))

	e.Use(cacheControlMiddleware)
}

// contentSecurityPolicy allows post images from any https host and the
// inline styles htmx injects. Scripts come only from /public.
const contentSecurityPolicy = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' https: data:; font-src 'self'; connect-src 'self'; form-action 'self'; frame-ancestors 'none'"

// requestLogger logs each request with its id and, for page routes, the
// slug served and whether only one section was rendered.
func (a *App) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slug, ok := a.pageSlug(c)
			switch {
			case !ok:
				c.Logger().Infof("%s %s -> %d (%s) [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			case isSectionPartial(c):
				c.Logger().Infof("%s %s -> %d (%s) [%s] page=%s section=%s",
					v.Method, v.URI, v.Status, v.Latency, v.RequestID, slug, c.QueryParam("index"))
			default:
				c.Logger().Infof("%s %s -> %d (%s) [%s] page=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID, slug)
			}
			return nil
		},
	})
}

// pageSlug returns the slug a public page route serves.
func (a *App) pageSlug(c echo.Context) (string, bool) {
	switch c.Path() {
	case "/":
		return a.Config.HomeSlug, true
	case "/:slug/", "/admin/preview/:slug/":
		return c.Param("slug"), true
	}
	return "", false
}

// isSectionPartial reports whether an htmx request asks for one hydrated
// section (?partial=section&index=N) instead of the whole page.
func isSectionPartial(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "section"
}

// isFilePath reports whether path names a file or an API endpoint, which keep
// their exact path instead of gaining a trailing slash.
func isFilePath(path string) bool {
	switch path {
	case "/sitemap.xml", "/feed.xml", "/robots.txt", "/favicon.svg":
		return true
	}
	return path == "/public" || strings.HasPrefix(path, "/public/") ||
		strings.HasPrefix(path, "/api/") ||
		strings.HasPrefix(path, "/admin/api/")
}

// cachePolicy is the Cache-Control value for a response to c. Pages are
// cached briefly since their sections follow the content source; partials
// and anything behind the admin login are never stored.
func cachePolicy(c echo.Context) string {
	path := c.Request().URL.Path
	switch {
	case strings.HasPrefix(path, "/public/"):
		return "public, max-age=31536000, immutable"
	case path == "/sitemap.xml" || path == "/robots.txt":
		return "public, max-age=86400"
	case path == "/feed.xml":
		return "public, max-age=900"
	case strings.HasPrefix(path, "/admin"), strings.HasPrefix(path, "/api/"):
		return "no-store"
	case isSectionPartial(c):
		return "no-cache"
	}
	return "public, max-age=300"
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", cachePolicy(c))
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// requireAdmin rejects unauthenticated requests to the admin API.
func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

// IsAdmin checks if the current session is authenticated.
func IsAdmin(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	return ok && auth
}

func setAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
