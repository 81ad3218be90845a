package content

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// maxResponseSize caps how much of a response body the client will read.
const maxResponseSize = 8 << 20

// Client is a Source backed by a remote content API speaking JSON.
// List endpoints may answer with a bare array or with {"data": [...]}.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sends token as a bearer Authorization header on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient returns a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "content: parse api url %q", baseURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("content: api url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetPostByID fetches /posts/{id}.
func (c *Client) GetPostByID(ctx context.Context, id string) (Post, error) {
	var p Post
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), nil, &p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// GetPosts fetches /posts?page=&limit=.
func (c *Client) GetPosts(ctx context.Context, page, limit int) ([]Post, error) {
	posts := []Post{}
	err := c.get(ctx, "/posts", pageQuery(page, limit), &posts)
	return posts, err
}

// GetPostsByCategory fetches /categories/{id}/posts?page=&limit=.
func (c *Client) GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) ([]Post, error) {
	posts := []Post{}
	err := c.get(ctx, "/categories/"+url.PathEscape(categoryID)+"/posts", pageQuery(page, limit), &posts)
	return posts, err
}

// GetTrendingArticles fetches /posts/trending?limit=.
func (c *Client) GetTrendingArticles(ctx context.Context, limit int) ([]Post, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	posts := []Post{}
	err := c.get(ctx, "/posts/trending", q, &posts)
	return posts, err
}

// GetCategories fetches /categories.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	categories := []Category{}
	err := c.get(ctx, "/categories", nil, &categories)
	return categories, err
}

// GetTags fetches /tags.
func (c *Client) GetTags(ctx context.Context) ([]Tag, error) {
	tags := []Tag{}
	err := c.get(ctx, "/tags", nil, &tags)
	return tags, err
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrapf(err, "content: build request %s", path)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "content: GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(ErrNotFound, "GET %s", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("content: GET %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.Wrapf(err, "content: read %s", path)
	}
	return errors.Wrapf(decodeBody(body, out), "content: decode %s", path)
}

// decodeBody accepts either the payload itself or a {"data": payload} envelope.
func decodeBody(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errors.New("empty body")
	}
	if trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			trimmed = env.Data
		}
	}
	return json.Unmarshal(trimmed, out)
}
