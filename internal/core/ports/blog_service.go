package ports

import (
	"context"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
)

// CreateBlogInput carries the fields of a new blog.
type CreateBlogInput struct {
	Game        string
	Title       string
	Description string
	Image       string
	AuthorID    string
}

// AddCommentInput carries a new comment.
type AddCommentInput struct {
	BlogID  string
	UserID  string
	Content string
}

// BlogService defines use-case operations for blogs and comments.
type BlogService interface {
	ListBlogs(ctx context.Context) ([]domain.BlogView, error)
	ListByGame(ctx context.Context, game string) ([]domain.BlogView, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.BlogDetail, error)
	GetBlog(ctx context.Context, game, id string) (*domain.BlogDetail, error)
	CreateBlog(ctx context.Context, in CreateBlogInput) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	AddComment(ctx context.Context, in AddCommentInput) (*domain.CommentView, error)
}
