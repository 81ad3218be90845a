package content

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Cache is an in-memory TTL cache in front of another Source. Errors are never
// cached, and every read hands out a copy so callers cannot alias cached slices.
type Cache struct {
	mu      sync.RWMutex
	src     Source
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value   any
	fetched time.Time
}

// NewCache wraps src. A non-positive ttl disables caching.
func NewCache(src Source, ttl time.Duration) *Cache {
	return &Cache{
		src:     src,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Invalidate clears the cache so the next read goes to the source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) lookup(key string) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetched) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, v any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: v, fetched: c.now()}
	c.mu.Unlock()
}

func cachedPosts(c *Cache, key string, fetch func() ([]Post, error)) ([]Post, error) {
	if v, ok := c.lookup(key); ok {
		return ClonePosts(v.([]Post)), nil
	}
	posts, err := fetch()
	if err != nil {
		return nil, err
	}
	c.store(key, ClonePosts(posts))
	return posts, nil
}

// GetPostByID returns a cached post or fetches it.
func (c *Cache) GetPostByID(ctx context.Context, id string) (Post, error) {
	key := "post:" + id
	if v, ok := c.lookup(key); ok {
		return v.(Post).Clone(), nil
	}
	p, err := c.src.GetPostByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	c.store(key, p.Clone())
	return p, nil
}

// GetPosts returns cached latest posts or fetches them.
func (c *Cache) GetPosts(ctx context.Context, page, limit int) ([]Post, error) {
	return cachedPosts(c, fmt.Sprintf("posts:%d:%d", page, limit), func() ([]Post, error) {
		return c.src.GetPosts(ctx, page, limit)
	})
}

// GetPostsByCategory returns cached category posts or fetches them.
func (c *Cache) GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) ([]Post, error) {
	return cachedPosts(c, fmt.Sprintf("category:%s:%d:%d", categoryID, page, limit), func() ([]Post, error) {
		return c.src.GetPostsByCategory(ctx, categoryID, page, limit)
	})
}

// GetTrendingArticles returns cached trending posts or fetches them.
func (c *Cache) GetTrendingArticles(ctx context.Context, limit int) ([]Post, error) {
	return cachedPosts(c, fmt.Sprintf("trending:%d", limit), func() ([]Post, error) {
		return c.src.GetTrendingArticles(ctx, limit)
	})
}

// GetCategories returns cached categories or fetches them.
func (c *Cache) GetCategories(ctx context.Context) ([]Category, error) {
	if v, ok := c.lookup("categories"); ok {
		return append([]Category(nil), v.([]Category)...), nil
	}
	categories, err := c.src.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.store("categories", append([]Category(nil), categories...))
	return categories, nil
}

// GetTags returns cached tags or fetches them.
func (c *Cache) GetTags(ctx context.Context) ([]Tag, error) {
	if v, ok := c.lookup("tags"); ok {
		return append([]Tag(nil), v.([]Tag)...), nil
	}
	tags, err := c.src.GetTags(ctx)
	if err != nil {
		return nil, err
	}
	c.store("tags", append([]Tag(nil), tags...))
	return tags, nil
}

// RecordView forwards to the wrapped source when it counts views.
func (c *Cache) RecordView(ctx context.Context, postID string) error {
	rec, ok := c.src.(ViewRecorder)
	if !ok {
		return ErrViewsUnsupported
	}
	return rec.RecordView(ctx, postID)
}
