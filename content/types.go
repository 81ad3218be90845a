// Package content defines the posts, categories and tags a site page draws from,
// and the sources that serve them: a local SQLite store, an HTTP client for a
// remote content API, and a TTL cache that wraps either one.
package content

import (
	"strings"
	"time"
)

// Post is an article as served by a content source. Pages hold copies of posts
// and never write them back.
type Post struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug,omitempty"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Link        string   `json:"link,omitempty"`
	Category    string   `json:"category,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Author      string   `json:"author,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"` // RFC 3339 or 2006-01-02
	ReadTime    int      `json:"readTime,omitempty"`    // minutes
	Views       int      `json:"views,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Category groups posts. PostCount is zero when the source does not report it.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	PostCount int    `json:"postCount,omitempty"`
}

// Tag is a post label with the number of posts carrying it.
type Tag struct {
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Count int    `json:"count,omitempty"`
}

var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Published parses PublishedAt. An empty or unparseable value yields the zero time.
func (p Post) Published() time.Time {
	v := strings.TrimSpace(p.PublishedAt)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a copy of p that shares no slices with it.
func (p Post) Clone() Post {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// ClonePosts copies a post list. A nil input stays nil.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// NormalizeTag lowercases and trims a tag for comparison and storage.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// joinTags renders tags in the delimited form ParseTags reads back.
func joinTags(tags []string) string {
	normalized := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := NormalizeTag(t); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return ""
	}
	return "," + strings.Join(normalized, ",") + ","
}
