package pagecraft

import (
	"time"

	"github.com/eringen/pagecraft/content"
)

// SiteConfig holds all configuration for a pagecraft site. The mapstructure
// tags are the keys of pagecraft.yaml and, upper-cased with a PAGECRAFT_
// prefix, of the environment.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Pagecraft")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags

	Addr         string `mapstructure:"addr"`          // Listen address (default ":3000")
	DatabasePath string `mapstructure:"database_path"` // Page definitions (default "data/pages.db")
	HomeSlug     string `mapstructure:"home_slug"`     // Page served at "/" (default "home")

	// Content comes from ContentAPIURL when set, else from the SQLite
	// database at ContentDatabasePath (default "data/content.db").
	ContentAPIURL       string        `mapstructure:"content_api_url"`
	ContentAPIToken     string        `mapstructure:"content_api_token"`
	ContentTimeout      time.Duration `mapstructure:"content_timeout"`   // default 10s
	ContentCacheTTL     time.Duration `mapstructure:"content_cache_ttl"` // default 5min
	ContentDatabasePath string        `mapstructure:"content_database_path"`

	AdminPassword string `mapstructure:"admin_password"` // Required: admin login password
	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Pagecraft"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/pages.db"
	}
	if c.HomeSlug == "" {
		c.HomeSlug = "home"
	}
	if c.ContentDatabasePath == "" {
		c.ContentDatabasePath = "data/content.db"
	}
	if c.ContentTimeout == 0 {
		c.ContentTimeout = 10 * time.Second
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithContentSource replaces the configured content backend, e.g. with a
// fixture source in tests.
func WithContentSource(src content.Source) Option {
	return func(a *App) {
		a.contentSource = src
	}
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}
