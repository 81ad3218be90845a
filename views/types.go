package views

// SiteConfig holds the site-wide settings every view needs.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // site name (default "Pagecraft")
	URL         string // canonical base URL
	Description string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
