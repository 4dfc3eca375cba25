package handler

import "github.com/letsgrowesports/blog-api/internal/core/domain"

// createBlogRequest is the JSON body accepted by POST /blogs/postBlog.
type createBlogRequest struct {
	Game        string `json:"game"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// updateBlogRequest is the JSON body accepted by PUT /blogs/updateBlog/:id.
// Absent fields keep their stored value.
type updateBlogRequest struct {
	Game        *string `json:"game"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Published   *bool   `json:"published"`
}

func (r updateBlogRequest) patch() domain.BlogPatch {
	return domain.BlogPatch{
		Game:        r.Game,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Published:   r.Published,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// errorResponse is the body of every failed /blogs request.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failure(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

type blogsResponse struct {
	Success bool              `json:"success"`
	Blogs   []domain.BlogView `json:"blogs"`
}

type blogDetailsResponse struct {
	Success bool                `json:"success"`
	Blogs   []domain.BlogDetail `json:"blogs"`
}

type blogResponse struct {
	Success bool               `json:"success"`
	Blog    *domain.BlogDetail `json:"blog"`
}

type blogWriteResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Blog    *domain.Blog `json:"blog,omitempty"`
}

type commentResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Comment *domain.CommentView `json:"comment"`
}
