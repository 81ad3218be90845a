package content

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a single requested item does not exist.
var ErrNotFound = errors.New("content: not found")

// ErrViewsUnsupported is returned by RecordView when the source does not count views.
var ErrViewsUnsupported = errors.New("content: source does not record views")

// Source serves the content that page sections are filled with. Pages are
// 1-based; a non-positive limit means the source's own default.
type Source interface {
	GetPostByID(ctx context.Context, id string) (Post, error)
	GetPosts(ctx context.Context, page, limit int) ([]Post, error)
	GetPostsByCategory(ctx context.Context, categoryID string, page, limit int) ([]Post, error)
	GetTrendingArticles(ctx context.Context, limit int) ([]Post, error)
	GetCategories(ctx context.Context) ([]Category, error)
	GetTags(ctx context.Context) ([]Tag, error)
}

// ViewRecorder is implemented by sources that count post views locally.
type ViewRecorder interface {
	RecordView(ctx context.Context, postID string) error
}

// IsNotFound reports whether err, or the error it wraps, is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
