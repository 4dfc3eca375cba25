package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/letsgrowesports/blog-api/internal/api/metrics"
	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

const (
	msgBlogNotFound     = "Blog not found"
	msgFetchBlogsFailed = "Failed to fetch blogs"
)

// BlogHandler handles HTTP requests for blogs and their comments.
type BlogHandler struct {
	service ports.BlogService
	log     zerolog.Logger
}

func NewBlogHandler(service ports.BlogService, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{service: service, log: log}
}

// List handles GET /blogs.
//
// @Summary      List all blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  blogsResponse
// @Failure      500  {object}  errorResponse
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.ListBlogs(c.Request().Context())
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, msgFetchBlogsFailed, err)
	}
	return c.JSON(http.StatusOK, blogsResponse{Success: true, Blogs: blogs})
}

// ListByGame handles GET /blogs/:game.
//
// @Summary      List blogs about a game
// @Tags         blogs
// @Produce      json
// @Param        game  path      string  true  "Game slug"
// @Success      200   {object}  blogsResponse
// @Failure      500   {object}  errorResponse
// @Router       /blogs/{game} [get]
func (h *BlogHandler) ListByGame(c echo.Context) error {
	blogs, err := h.service.ListByGame(c.Request().Context(), c.Param("game"))
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, msgFetchBlogsFailed, err)
	}
	return c.JSON(http.StatusOK, blogsResponse{Success: true, Blogs: blogs})
}

// ListByAuthor handles GET /blogs/author/:authorId.
//
// @Summary      List an author's blogs with comments
// @Tags         blogs
// @Produce      json
// @Param        authorId  path      string  true  "Author account id"
// @Success      200       {object}  blogDetailsResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /blogs/author/{authorId} [get]
func (h *BlogHandler) ListByAuthor(c echo.Context) error {
	blogs, err := h.service.ListByAuthor(c.Request().Context(), c.Param("authorId"))
	if err != nil {
		if errors.Is(err, domain.ErrNoAuthorBlogs) {
			return c.JSON(http.StatusNotFound, failure("No blogs found for this author"))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to fetch author's blogs", err)
	}
	return c.JSON(http.StatusOK, blogDetailsResponse{Success: true, Blogs: blogs})
}

// Get handles GET /blogs/:game/:id.
//
// @Summary      Get a blog with its comments
// @Tags         blogs
// @Produce      json
// @Param        game  path      string  true  "Game slug"
// @Param        id    path      string  true  "Blog id"
// @Success      200   {object}  blogResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /blogs/{game}/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.service.GetBlog(c.Request().Context(), c.Param("game"), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBlogNotFound):
			return c.JSON(http.StatusNotFound, failure(msgBlogNotFound))
		case errors.Is(err, domain.ErrBlogGameMismatch):
			return c.JSON(http.StatusNotFound, failure("Blog not found for this game"))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to fetch blog", err)
	}
	return c.JSON(http.StatusOK, blogResponse{Success: true, Blog: blog})
}

// AddComment handles POST /blogs/:game/:id/comments.
//
// @Summary      Comment on a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        game  path      string          true  "Game slug"
// @Param        id    path      string          true  "Blog id"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /blogs/{game}/{id}/comments [post]
func (h *BlogHandler) AddComment(c echo.Context) error {
	caller, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body"))
	}

	comment, err := h.service.AddComment(c.Request().Context(), ports.AddCommentInput{
		BlogID:  c.Param("id"),
		UserID:  caller.ID,
		Content: strings.TrimSpace(req.Content),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyComment):
			return c.JSON(http.StatusBadRequest, failure("Comment content cannot be empty"))
		case errors.Is(err, domain.ErrBlogNotFound):
			return c.JSON(http.StatusNotFound, failure(msgBlogNotFound))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to add comment", err)
	}

	metrics.BlogWritesTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusCreated, commentResponse{
		Success: true,
		Message: "Comment added successfully",
		Comment: comment,
	})
}

// Create handles POST /blogs/postBlog.
//
// @Summary      Publish a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Blog"
// @Success      201   {object}  blogWriteResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /blogs/postBlog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	caller, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body"))
	}

	blog, err := h.service.CreateBlog(c.Request().Context(), ports.CreateBlogInput{
		Game:        req.Game,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		AuthorID:    caller.ID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, failure("Missing required fields"))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to create blog", err)
	}

	metrics.BlogWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, blogWriteResponse{
		Success: true,
		Message: "Blog created successfully",
		Blog:    blog,
	})
}

// Update handles PUT /blogs/updateBlog/:id.
//
// @Summary      Update a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Blog id"
// @Param        body  body      updateBlogRequest  true  "Fields to change"
// @Success      200   {object}  blogWriteResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /blogs/updateBlog/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("Invalid request body"))
	}

	blog, err := h.service.UpdateBlog(c.Request().Context(), c.Param("id"), req.patch())
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, failure(msgBlogNotFound))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to update blog", err)
	}

	metrics.BlogWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, blogWriteResponse{
		Success: true,
		Message: "Blog updated successfully",
		Blog:    blog,
	})
}

// Delete handles DELETE /blogs/deleteBlog/:id.
//
// @Summary      Delete a blog and its comments
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Blog id"
// @Success      200  {object}  blogWriteResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /blogs/deleteBlog/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBlog(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return c.JSON(http.StatusNotFound, failure(msgBlogNotFound))
		}
		return h.fail(c, http.StatusInternalServerError, "Failed to delete blog", err)
	}

	metrics.BlogWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, blogWriteResponse{
		Success: true,
		Message: "Blog and associated comments deleted successfully",
	})
}

func (h *BlogHandler) fail(c echo.Context, status int, msg string, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg(strings.ToLower(msg))
	return c.JSON(status, failure(msg))
}
