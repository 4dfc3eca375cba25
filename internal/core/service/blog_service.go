package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const (
	cacheKeyAll    = "all"
	cacheKeyGame   = "game:"
	withAuthorMail = true
)

// BlogService implements the blog and comment use cases.
type BlogService struct {
	blogs    ports.BlogRepository
	comments ports.CommentRepository
	accounts ports.AccountRepository
	cache    ports.BlogCache
	log      zerolog.Logger
}

// NewBlogService wires the repositories together. cache may be nil.
func NewBlogService(
	blogs ports.BlogRepository,
	comments ports.CommentRepository,
	accounts ports.AccountRepository,
	cache ports.BlogCache,
	log zerolog.Logger,
) *BlogService {
	return &BlogService{blogs: blogs, comments: comments, accounts: accounts, cache: cache, log: log}
}

// ListBlogs returns every blog, newest first, with its author.
func (s *BlogService) ListBlogs(ctx context.Context) ([]domain.BlogView, error) {
	return s.cached(ctx, cacheKeyAll, func() ([]domain.BlogView, error) {
		blogs, err := s.blogs.List(ctx, ports.BlogFilter{})
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		return s.views(ctx, blogs, withAuthorMail)
	})
}

// ListByGame returns the blogs written about game, newest first.
func (s *BlogService) ListByGame(ctx context.Context, game string) ([]domain.BlogView, error) {
	return s.cached(ctx, cacheKeyGame+game, func() ([]domain.BlogView, error) {
		blogs, err := s.blogs.List(ctx, ports.BlogFilter{Game: game})
		if err != nil {
			return nil, fmt.Errorf("list blogs by game: %w", err)
		}
		return s.views(ctx, blogs, !withAuthorMail)
	})
}

// ListByAuthor returns an author's blogs with their comments. An author
// without blogs yields domain.ErrNoAuthorBlogs.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID string) ([]domain.BlogDetail, error) {
	blogs, err := s.blogs.List(ctx, ports.BlogFilter{AuthorID: authorID})
	if err != nil {
		return nil, fmt.Errorf("list blogs by author: %w", err)
	}
	if len(blogs) == 0 {
		return nil, domain.ErrNoAuthorBlogs
	}

	views, err := s.views(ctx, blogs, withAuthorMail)
	if err != nil {
		return nil, err
	}
	return s.withComments(ctx, views)
}

// GetBlog returns a blog with its comments, provided it belongs to game.
func (s *BlogService) GetBlog(ctx context.Context, game, id string) (*domain.BlogDetail, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog.Game != game {
		return nil, domain.ErrBlogGameMismatch
	}

	views, err := s.views(ctx, []*domain.Blog{blog}, withAuthorMail)
	if err != nil {
		return nil, err
	}
	details, err := s.withComments(ctx, views)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// CreateBlog publishes a new blog authored by in.AuthorID.
func (s *BlogService) CreateBlog(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	if strings.TrimSpace(in.Game) == "" || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		ID:          uuid.NewString(),
		Game:        in.Game,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Published:   true,
		AuthorID:    in.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		s.log.Error().Err(err).Msg("failed to create blog")
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("blog_id", blog.ID).Str("game", blog.Game).Msg("blog created")
	return blog, nil
}

// UpdateBlog applies patch to the blog with id.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	blog, err := s.blogs.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return blog, nil
}

// DeleteBlog removes a blog and every comment attached to it.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if err := s.comments.DeleteByBlog(ctx, id); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("blog_id", id).Msg("blog deleted")
	return nil
}

// AddComment attaches a comment by in.UserID to an existing blog.
func (s *BlogService) AddComment(ctx context.Context, in ports.AddCommentInput) (*domain.CommentView, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.ErrEmptyComment
	}
	if _, err := s.blogs.FindByID(ctx, in.BlogID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		Content:   in.Content,
		BlogID:    in.BlogID,
		UserID:    in.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Str("blog_id", in.BlogID).Msg("failed to create comment")
		return nil, err
	}
	s.invalidate(ctx)

	authors, err := s.accounts.FindByIDs(ctx, []string{in.UserID})
	if err != nil {
		return nil, fmt.Errorf("load comment author: %w", err)
	}
	return &domain.CommentView{Comment: *comment, User: authorOf(in.UserID, authors, false)}, nil
}

// views pairs blogs with their authors.
func (s *BlogService) views(ctx context.Context, blogs []*domain.Blog, withEmail bool) ([]domain.BlogView, error) {
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.AuthorID)
	}
	authors, err := s.accounts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	out := make([]domain.BlogView, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, domain.BlogView{Blog: *b, Author: authorOf(b.AuthorID, authors, withEmail)})
	}
	return out, nil
}

func (s *BlogService) withComments(ctx context.Context, views []domain.BlogView) ([]domain.BlogDetail, error) {
	blogIDs := make([]string, 0, len(views))
	for _, v := range views {
		blogIDs = append(blogIDs, v.ID)
	}
	comments, err := s.comments.ListByBlogs(ctx, blogIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.accounts.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load comment authors: %w", err)
	}

	byBlog := make(map[string][]domain.CommentView, len(views))
	for _, c := range comments {
		byBlog[c.BlogID] = append(byBlog[c.BlogID], domain.CommentView{Comment: *c, User: authorOf(c.UserID, users, false)})
	}

	out := make([]domain.BlogDetail, 0, len(views))
	for _, v := range views {
		cs := byBlog[v.ID]
		if cs == nil {
			cs = []domain.CommentView{}
		}
		out = append(out, domain.BlogDetail{BlogView: v, Comments: cs})
	}
	return out, nil
}

// cached serves key from the cache when possible and fills it otherwise.
// The fill is stored under the generation seen by the lookup, so a listing
// loaded before a concurrent write can never outlive that write's invalidation.
// Cache failures are logged and never fail the request.
func (s *BlogService) cached(ctx context.Context, key string, load func() ([]domain.BlogView, error)) ([]domain.BlogView, error) {
	fill := false
	var gen int64
	if s.cache != nil {
		entry, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("blog cache read failed")
		case entry.Hit:
			var views []domain.BlogView
			if err := json.Unmarshal(entry.Value, &views); err == nil {
				return views, nil
			}
			s.log.Warn().Str("key", key).Msg("discarding corrupt cache entry")
			fill, gen = true, entry.Generation
		default:
			fill, gen = true, entry.Generation
		}
	}

	views, err := load()
	if err != nil {
		return nil, err
	}

	if fill {
		if raw, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, key, gen, raw); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("blog cache write failed")
			}
		}
	}
	return views, nil
}

func (s *BlogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("blog cache invalidation failed")
	}
}

func authorOf(id string, accounts map[string]*domain.Account, withEmail bool) domain.Author {
	a := domain.Author{ID: id}
	if acc, ok := accounts[id]; ok {
		a.Name = acc.Name
		if withEmail {
			a.Email = acc.Email
		}
	}
	return a
}
