package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/api/middleware"
	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// stubBlogService returns err from every method when set.
type stubBlogService struct {
	err      error
	blogs    []domain.BlogView
	details  []domain.BlogDetail
	created  ports.CreateBlogInput
	patched  domain.BlogPatch
	comment  ports.AddCommentInput
	deleted  string
	gotGame  string
	gotBlog  string
	gotOwner string
}

func (s *stubBlogService) ListBlogs(context.Context) ([]domain.BlogView, error) {
	return s.blogs, s.err
}

func (s *stubBlogService) ListByGame(_ context.Context, game string) ([]domain.BlogView, error) {
	s.gotGame = game
	return s.blogs, s.err
}

func (s *stubBlogService) ListByAuthor(_ context.Context, authorID string) ([]domain.BlogDetail, error) {
	s.gotOwner = authorID
	return s.details, s.err
}

func (s *stubBlogService) GetBlog(_ context.Context, game, id string) (*domain.BlogDetail, error) {
	s.gotGame, s.gotBlog = game, id
	if s.err != nil {
		return nil, s.err
	}
	return &domain.BlogDetail{
		BlogView: domain.BlogView{Blog: domain.Blog{ID: id, Game: game}},
		Comments: []domain.CommentView{},
	}, nil
}

func (s *stubBlogService) CreateBlog(_ context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Blog{ID: "blog-1", Game: in.Game, Title: in.Title, AuthorID: in.AuthorID, Published: true}, nil
}

func (s *stubBlogService) UpdateBlog(_ context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	s.gotBlog, s.patched = id, patch
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Blog{ID: id}, nil
}

func (s *stubBlogService) DeleteBlog(_ context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubBlogService) AddComment(_ context.Context, in ports.AddCommentInput) (*domain.CommentView, error) {
	s.comment = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CommentView{
		Comment: domain.Comment{ID: "c-1", Content: in.Content, BlogID: in.BlogID, UserID: in.UserID},
		User:    domain.Author{ID: in.UserID, Name: "Bob"},
	}, nil
}

type blogRequest struct {
	method string
	path   string
	names  []string
	values []string
	body   string
	caller *domain.Identity
}

func runBlog(t *testing.T, svc *stubBlogService, r blogRequest, fn func(*BlogHandler, echo.Context) error) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newEcho()
	req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(r.names...)
	c.SetParamValues(r.values...)
	if r.caller != nil {
		c.Set(middleware.IdentityKey, *r.caller)
	}
	return rec, fn(NewBlogHandler(svc, zerolog.Nop()), c)
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	resp := decodeMsg(t, rec)
	if resp["message"] != msg {
		t.Fatalf("expected message %q, got %+v", msg, resp)
	}
}

var admin = &domain.Identity{ID: "admin-1", Email: "root@example.com", Name: "Root", Role: domain.RoleAdmin}

func TestBlogHandler_List(t *testing.T) {
	svc := &stubBlogService{blogs: []domain.BlogView{{Blog: domain.Blog{ID: "b1"}}}}

	rec, err := runBlog(t, svc, blogRequest{method: http.MethodGet, path: "/blogs"}, (*BlogHandler).List)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeMsg(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success envelope: %+v", resp)
	}
	if blogs, _ := resp["blogs"].([]any); len(blogs) != 1 {
		t.Fatalf("expected one blog, got %+v", resp["blogs"])
	}
}

func TestBlogHandler_List_Failure(t *testing.T) {
	svc := &stubBlogService{err: errors.New("boom")}

	rec, _ := runBlog(t, svc, blogRequest{method: http.MethodGet, path: "/blogs"}, (*BlogHandler).List)
	expectMessage(t, rec, http.StatusInternalServerError, "Failed to fetch blogs")
}

func TestBlogHandler_ListByGame(t *testing.T) {
	svc := &stubBlogService{}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodGet, path: "/blogs/valorant",
		names: []string{"game"}, values: []string{"valorant"},
	}, (*BlogHandler).ListByGame)

	if rec.Code != http.StatusOK || svc.gotGame != "valorant" {
		t.Fatalf("unexpected result: %d game=%q", rec.Code, svc.gotGame)
	}
}

func TestBlogHandler_ListByAuthor_NotFound(t *testing.T) {
	svc := &stubBlogService{err: domain.ErrNoAuthorBlogs}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodGet, path: "/blogs/author/u1",
		names: []string{"authorId"}, values: []string{"u1"},
	}, (*BlogHandler).ListByAuthor)

	expectMessage(t, rec, http.StatusNotFound, "No blogs found for this author")
	if svc.gotOwner != "u1" {
		t.Fatalf("expected author id to be forwarded, got %q", svc.gotOwner)
	}
}

func TestBlogHandler_Get_AlwaysIncludesComments(t *testing.T) {
	svc := &stubBlogService{}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodGet, path: "/blogs/valorant/b1",
		names: []string{"game", "id"}, values: []string{"valorant", "b1"},
	}, (*BlogHandler).Get)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	blog, ok := decodeMsg(t, rec)["blog"].(map[string]any)
	if !ok {
		t.Fatalf("expected blog object in %s", rec.Body.String())
	}
	comments, ok := blog["comments"].([]any)
	if !ok || len(comments) != 0 {
		t.Fatalf("expected \"comments\": [], got %s", rec.Body.String())
	}
	if svc.gotGame != "valorant" || svc.gotBlog != "b1" {
		t.Fatalf("unexpected params: %q %q", svc.gotGame, svc.gotBlog)
	}
}

func TestBlogHandler_List_OmitsComments(t *testing.T) {
	svc := &stubBlogService{blogs: []domain.BlogView{{Blog: domain.Blog{ID: "b1"}}}}

	rec, _ := runBlog(t, svc, blogRequest{method: http.MethodGet, path: "/blogs"}, (*BlogHandler).List)

	blogs, _ := decodeMsg(t, rec)["blogs"].([]any)
	if len(blogs) != 1 {
		t.Fatalf("expected one blog, got %s", rec.Body.String())
	}
	if _, present := blogs[0].(map[string]any)["comments"]; present {
		t.Fatalf("listings must not carry comments: %s", rec.Body.String())
	}
}

func TestBlogHandler_Get_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrBlogNotFound, http.StatusNotFound, "Blog not found"},
		{domain.ErrBlogGameMismatch, http.StatusNotFound, "Blog not found for this game"},
		{errors.New("boom"), http.StatusInternalServerError, "Failed to fetch blog"},
	}
	for _, tc := range cases {
		svc := &stubBlogService{err: tc.err}
		rec, _ := runBlog(t, svc, blogRequest{
			method: http.MethodGet, path: "/blogs/valorant/b1",
			names: []string{"game", "id"}, values: []string{"valorant", "b1"},
		}, (*BlogHandler).Get)
		expectMessage(t, rec, tc.status, tc.msg)
	}
}

func TestBlogHandler_Create(t *testing.T) {
	svc := &stubBlogService{}

	rec, err := runBlog(t, svc, blogRequest{
		method: http.MethodPost, path: "/blogs/postBlog",
		body:   `{"game":"valorant","title":"Patch notes","description":"All about it","image":"x.png"}`,
		caller: admin,
	}, (*BlogHandler).Create)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectMessage(t, rec, http.StatusCreated, "Blog created successfully")
	if svc.created.AuthorID != "admin-1" || svc.created.Game != "valorant" || svc.created.Image != "x.png" {
		t.Fatalf("unexpected create input: %+v", svc.created)
	}
}

func TestBlogHandler_Create_MissingFields(t *testing.T) {
	svc := &stubBlogService{err: domain.ErrInvalidInput}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodPost, path: "/blogs/postBlog", body: `{"game":"valorant"}`, caller: admin,
	}, (*BlogHandler).Create)

	expectMessage(t, rec, http.StatusBadRequest, "Missing required fields")
}

func TestBlogHandler_Create_WithoutIdentity(t *testing.T) {
	svc := &stubBlogService{}

	_, err := runBlog(t, svc, blogRequest{
		method: http.MethodPost, path: "/blogs/postBlog", body: `{}`,
	}, (*BlogHandler).Create)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBlogHandler_Update_PartialPatch(t *testing.T) {
	svc := &stubBlogService{}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodPut, path: "/blogs/updateBlog/b1",
		names: []string{"id"}, values: []string{"b1"},
		body:   `{"title":"New title","published":false}`,
		caller: admin,
	}, (*BlogHandler).Update)

	expectMessage(t, rec, http.StatusOK, "Blog updated successfully")
	p := svc.patched
	if p.Title == nil || *p.Title != "New title" || p.Published == nil || *p.Published {
		t.Fatalf("unexpected patch: %+v", p)
	}
	if p.Game != nil || p.Description != nil || p.Image != nil {
		t.Fatalf("absent fields must stay nil: %+v", p)
	}
}

func TestBlogHandler_Update_NotFound(t *testing.T) {
	svc := &stubBlogService{err: domain.ErrBlogNotFound}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodPut, path: "/blogs/updateBlog/b1",
		names: []string{"id"}, values: []string{"b1"}, body: `{}`, caller: admin,
	}, (*BlogHandler).Update)

	expectMessage(t, rec, http.StatusNotFound, "Blog not found")
}

func TestBlogHandler_Delete(t *testing.T) {
	svc := &stubBlogService{}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodDelete, path: "/blogs/deleteBlog/b1",
		names: []string{"id"}, values: []string{"b1"}, caller: admin,
	}, (*BlogHandler).Delete)

	expectMessage(t, rec, http.StatusOK, "Blog and associated comments deleted successfully")
	if svc.deleted != "b1" {
		t.Fatalf("expected b1 deleted, got %q", svc.deleted)
	}
}

func TestBlogHandler_Delete_Failure(t *testing.T) {
	svc := &stubBlogService{err: errors.New("boom")}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodDelete, path: "/blogs/deleteBlog/b1",
		names: []string{"id"}, values: []string{"b1"}, caller: admin,
	}, (*BlogHandler).Delete)

	expectMessage(t, rec, http.StatusInternalServerError, "Failed to delete blog")
}

func TestBlogHandler_AddComment(t *testing.T) {
	svc := &stubBlogService{}
	user := &domain.Identity{ID: "u-9", Role: domain.RoleUser}

	rec, _ := runBlog(t, svc, blogRequest{
		method: http.MethodPost, path: "/blogs/valorant/b1/comments",
		names: []string{"game", "id"}, values: []string{"valorant", "b1"},
		body:   `{"content":"  nice post  "}`,
		caller: user,
	}, (*BlogHandler).AddComment)

	expectMessage(t, rec, http.StatusCreated, "Comment added successfully")
	if svc.comment.Content != "nice post" || svc.comment.UserID != "u-9" || svc.comment.BlogID != "b1" {
		t.Fatalf("unexpected comment input: %+v", svc.comment)
	}
}

func TestBlogHandler_AddComment_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrEmptyComment, http.StatusBadRequest, "Comment content cannot be empty"},
		{domain.ErrBlogNotFound, http.StatusNotFound, "Blog not found"},
		{errors.New("boom"), http.StatusInternalServerError, "Failed to add comment"},
	}
	for _, tc := range cases {
		svc := &stubBlogService{err: tc.err}
		rec, _ := runBlog(t, svc, blogRequest{
			method: http.MethodPost, path: "/blogs/valorant/b1/comments",
			names: []string{"game", "id"}, values: []string{"valorant", "b1"},
			body:   `{"content":"hi"}`,
			caller: &domain.Identity{ID: "u-9", Role: domain.RoleUser},
		}, (*BlogHandler).AddComment)
		expectMessage(t, rec, tc.status, tc.msg)
	}
}
