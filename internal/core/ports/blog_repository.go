package ports

import (
	"context"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// BlogFilter narrows a blog listing. Empty fields are ignored.
type BlogFilter struct {
	Game     string
	AuthorID string
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	// List returns matching blogs, newest first.
	List(ctx context.Context, filter BlogFilter) ([]*domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// ListByBlogs returns the comments of the given blogs, newest first.
	ListByBlogs(ctx context.Context, blogIDs []string) ([]*domain.Comment, error)
	DeleteByBlog(ctx context.Context, blogID string) error
}

// CacheEntry is the result of a cache lookup. Generation is the cache version
// the lookup ran under.
type CacheEntry struct {
	Value      []byte
	Hit        bool
	Generation int64
}

// BlogCache stores serialized blog listings.
type BlogCache interface {
	Get(ctx context.Context, key string) (CacheEntry, error)
	// Set stores value under the generation returned by the Get that missed.
	// Writes for a generation that has since been invalidated are unreachable.
	Set(ctx context.Context, key string, generation int64, value []byte) error
	// Invalidate drops every cached listing.
	Invalidate(ctx context.Context) error
}
