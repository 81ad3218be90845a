package pagecraft

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pagecraft/content"
)

// feedSize is the number of latest posts in the RSS feed.
const feedSize = 20

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// postURL makes a post link absolute against the site URL.
func (a *App) postURL(p content.Post) string {
	if p.Link != "" {
		if strings.HasPrefix(p.Link, "http://") || strings.HasPrefix(p.Link, "https://") {
			return p.Link
		}
		return strings.TrimRight(a.Config.URL, "/") + "/" + strings.TrimLeft(p.Link, "/")
	}
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	return BuildURL(a.Config.URL, "posts", slug)
}

func (a *App) renderRSS(c echo.Context, posts []content.Post) error {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t := p.Published(); !t.IsZero() {
			pubDate = t.Format(time.RFC1123Z)
		}
		var categories []string
		if p.Category != "" {
			categories = append(categories, p.Category)
		}
		link := a.postURL(p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Excerpt,
			Author:      p.Author,
			Categories:  append(categories, p.Tags...),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(a.Config.URL),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
