// Package pagecraft is a dynamic page composition engine built with Go, Echo,
// and templ. Operators declare pages as ordered lists of typed sections; at
// request time pagecraft hydrates every section with content from a content
// source, arranges the sections by the page template and renders the result.
//
// Users may replace any view through the ViewFuncs struct; pagecraft handles
// the handler logic, middleware, and storage.
package pagecraft

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/content"
	"github.com/eringen/pagecraft/layout"
	"github.com/eringen/pagecraft/page"
	"github.com/eringen/pagecraft/views"
)

// ViewFuncs holds the templ components the framework calls when rendering.
// Any nil field falls back to the views package.
type ViewFuncs struct {
	Page           func(site views.SiteConfig, meta views.PageMeta, comp layout.Composition) templ.Component
	Section        func(s page.Section) templ.Component
	AdminLogin     func(site views.SiteConfig, showError bool, csrfToken string) templ.Component
	AdminDashboard func(site views.SiteConfig, pages []page.Page, message string, csrfToken string) templ.Component
	NotFound       func(site views.SiteConfig) templ.Component
	ServerError    func(site views.SiteConfig) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Page == nil {
		v.Page = views.Page
	}
	if v.Section == nil {
		v.Section = views.Section
	}
	if v.AdminLogin == nil {
		v.AdminLogin = views.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = views.AdminDashboard
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central pagecraft application. It wires together the page store,
// the content source and its cache, the engine, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *content.Cache
	Engine *Engine
	Views  ViewFuncs

	loginLimiter  *Limiter
	viewLimiter   *Limiter
	contentSource content.Source
	contentStore  *content.Store
	customRoutes  []func(*App)
	staticDir     string
}

// New creates a new pagecraft App with the given configuration and view functions.
func New(cfg SiteConfig, vf ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	vf.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     vf,
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the stores, builds the engine and registers middleware and
// routes without starting the server.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("pagecraft: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("pagecraft: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("pagecraft: init store: %w", err)
	}
	a.Store = store

	src, err := a.openContent()
	if err != nil {
		return fmt.Errorf("pagecraft: init content: %w", err)
	}
	a.Cache = content.NewCache(src, a.Config.ContentCacheTTL)
	a.Engine = NewEngine(a.Store, a.Cache, page.WithLogger(a.Echo.Logger))

	a.loginLimiter = NewLimiter(5, time.Minute)
	a.viewLimiter = NewLimiter(30, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// openContent picks the content backend: an explicit source, the remote
// content API, or the local SQLite content database.
func (a *App) openContent() (content.Source, error) {
	if a.contentSource != nil {
		return a.contentSource, nil
	}
	if a.Config.ContentAPIURL != "" {
		c, err := content.NewClient(a.Config.ContentAPIURL,
			content.WithToken(a.Config.ContentAPIToken),
			content.WithHTTPClient(&http.Client{Timeout: a.Config.ContentTimeout}),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	s, err := content.NewStore(a.Config.ContentDatabasePath)
	if err != nil {
		return nil, err
	}
	a.contentStore = s
	return s, nil
}

// Start initializes the app and runs the server until it is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.POST("/api/views/:id", a.handleRecordView)
	e.GET("/", a.handleHome)
	e.GET("/:slug/", a.handlePage)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/preview/:slug/", a.handleAdminPreview)

	api := e.Group("/admin/api", a.requireAdmin)
	api.GET("/pages", a.handleAPIListPages)
	api.GET("/pages/:slug", a.handleAPIGetPage)
	api.PUT("/pages/:slug", a.handleAPISavePage)
	api.DELETE("/pages/:slug", a.handleAPIDeletePage)
	api.DELETE("/content-cache", a.handleAPIFlushContent)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.viewLimiter != nil {
		a.viewLimiter.Stop()
	}
	var errs []error
	if a.contentStore != nil {
		errs = append(errs, a.contentStore.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
