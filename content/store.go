package content

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const defaultLimit = 10

// Store is a SQLite-backed Source used when no remote content API is configured.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "content: create data dir")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "content: open db")
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "content: pragmas")
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "content: ensure schema")
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    link TEXT NOT NULL DEFAULT '',
    category_id TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT '',
    published_at TEXT NOT NULL DEFAULT '',
    read_time INTEGER NOT NULL DEFAULT 0,
    views INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts(published_at);
CREATE INDEX IF NOT EXISTS idx_posts_category_id ON posts(category_id);
CREATE INDEX IF NOT EXISTS idx_posts_views ON posts(views);
`)
	return err
}

const postColumns = `p.id, p.slug, p.title, p.excerpt, p.image_url, p.link, p.category_id,
	COALESCE(c.name, ''), p.author, p.published_at, p.read_time, p.views, p.tags`

const postFrom = ` FROM posts p LEFT JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	var tags string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.ImageURL, &p.Link, &p.CategoryID,
		&p.Category, &p.Author, &p.PublishedAt, &p.ReadTime, &p.Views, &tags)
	if err != nil {
		return Post{}, err
	}
	p.Tags = ParseTags(tags)
	return p, nil
}

func (s *Store) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPostByID returns a single post, or ErrNotFound.
func (s *Store) GetPostByID(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+postFrom+` WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return Post{}, errors.Wrapf(ErrNotFound, "post %q", id)
	}
	if err != nil {
		return Post{}, errors.Wrapf(err, "content: get post %q", id)
	}
	return p, nil
}

// GetPosts returns the latest posts, newest first.
func (s *Store) GetPosts(ctx context.Context, page, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	posts, err := s.queryPosts(ctx, `SELECT `+postColumns+postFrom+
		` ORDER BY p.published_at DESC, p.id LIMIT ? OFFSET ?`, limit, offset(page, limit))
	if err != nil {
		return nil, errors.Wrap(err, "content: list posts")
	}
	return posts, nil
}

// GetPostsByCategory returns the latest posts of one category, newest first.
func (s *Store) GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	posts, err := s.queryPosts(ctx, `SELECT `+postColumns+postFrom+
		` WHERE p.category_id = ? ORDER BY p.published_at DESC, p.id LIMIT ? OFFSET ?`,
		categoryID, limit, offset(page, limit))
	if err != nil {
		return nil, errors.Wrapf(err, "content: list posts of category %q", categoryID)
	}
	return posts, nil
}

// GetTrendingArticles returns the most viewed posts.
func (s *Store) GetTrendingArticles(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	posts, err := s.queryPosts(ctx, `SELECT `+postColumns+postFrom+
		` ORDER BY p.views DESC, p.published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "content: list trending")
	}
	return posts, nil
}

// GetCategories returns every category with its post count, ordered by name.
func (s *Store) GetCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.name, c.slug, COUNT(p.id)
FROM categories c LEFT JOIN posts p ON p.category_id = c.id
GROUP BY c.id, c.name, c.slug
ORDER BY c.name`)
	if err != nil {
		return nil, errors.Wrap(err, "content: list categories")
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.PostCount); err != nil {
			return nil, errors.Wrap(err, "content: scan category")
		}
		categories = append(categories, c)
	}
	return categories, errors.Wrap(rows.Err(), "content: list categories")
}

// GetTags returns the deduplicated tags of all posts with their counts, ordered by name.
func (s *Store) GetTags(ctx context.Context) ([]Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tags FROM posts`)
	if err != nil {
		return nil, errors.Wrap(err, "content: list tags")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, errors.Wrap(err, "content: scan tags")
		}
		for _, t := range ParseTags(tags) {
			counts[NormalizeTag(t)]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "content: list tags")
	}
	result := make([]Tag, 0, len(counts))
	for name, n := range counts {
		result = append(result, Tag{Name: name, Slug: strings.ReplaceAll(name, " ", "-"), Count: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// SavePost upserts a post. Tags are normalized to lowercase.
func (s *Store) SavePost(ctx context.Context, p Post) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts
(id, slug, title, excerpt, image_url, link, category_id, author, published_at, read_time, views, tags)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Slug, p.Title, p.Excerpt, p.ImageURL, p.Link, p.CategoryID, p.Author,
		p.PublishedAt, p.ReadTime, p.Views, joinTags(p.Tags))
	return errors.Wrapf(err, "content: save post %q", p.ID)
}

// SaveCategory upserts a category.
func (s *Store) SaveCategory(ctx context.Context, c Category) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO categories (id, name, slug) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Slug)
	return errors.Wrapf(err, "content: save category %q", c.ID)
}

// RecordView increments the view counter that trending ranks by.
func (s *Store) RecordView(ctx context.Context, postID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = ?`, postID)
	if err != nil {
		return errors.Wrapf(err, "content: record view %q", postID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "content: record view %q", postID)
	}
	if n == 0 {
		return errors.Wrapf(ErrNotFound, "post %q", postID)
	}
	return nil
}
