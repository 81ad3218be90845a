package pagecraft

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/pagecraft/page"
)

// Store wraps a SQLite database of page definitions. Sections are stored as
// a JSON document per page.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    template TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    sections TEXT NOT NULL DEFAULT '[]',
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_status ON pages(status);
`)
	return err
}

const pageColumns = `slug, title, template, status, sections, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (page.Page, error) {
	var p page.Page
	var template, status, sections string
	if err := row.Scan(&p.Slug, &p.Title, &template, &status, &sections, &p.UpdatedAt); err != nil {
		return page.Page{}, err
	}
	p.Template = page.Template(template)
	p.Status = page.Status(status)
	if err := json.Unmarshal([]byte(sections), &p.Sections); err != nil {
		return page.Page{}, fmt.Errorf("pagecraft: decode sections of %q: %w", p.Slug, err)
	}
	if p.Sections == nil {
		p.Sections = []page.Section{}
	}
	return p, nil
}

// GetPageBySlug returns the page stored under slug whatever its status, or
// page.ErrNotFound.
func (s *Store) GetPageBySlug(ctx context.Context, slug string) (page.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	p, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return page.Page{}, page.ErrNotFound
	}
	return p, err
}

func (s *Store) listPages(ctx context.Context, query string, args ...any) ([]page.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []page.Page{}
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// ListPages returns every page (all statuses) ordered by slug.
func (s *Store) ListPages(ctx context.Context) ([]page.Page, error) {
	return s.listPages(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY slug`)
}

// ListPublished returns the published pages, most recently updated first.
func (s *Store) ListPublished(ctx context.Context) ([]page.Page, error) {
	return s.listPages(ctx, `SELECT `+pageColumns+` FROM pages WHERE status = ? ORDER BY updated_at DESC, slug`,
		string(page.StatusPublished))
}

// SavePage upserts a page definition and stamps its UpdatedAt. Resolved
// content is never persisted: only embedded posts declared by the operator
// are part of the definition.
func (s *Store) SavePage(ctx context.Context, p page.Page) (page.Page, error) {
	p = page.Normalize(p)
	p.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	sections, err := json.Marshal(p.Sections)
	if err != nil {
		return page.Page{}, fmt.Errorf("pagecraft: encode sections of %q: %w", p.Slug, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, string(p.Template), string(p.Status), string(sections), p.UpdatedAt)
	if err != nil {
		return page.Page{}, err
	}
	return p, nil
}

// DeletePage removes a page by slug. Deleting a missing page returns page.ErrNotFound.
func (s *Store) DeletePage(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return page.ErrNotFound
	}
	return nil
}
