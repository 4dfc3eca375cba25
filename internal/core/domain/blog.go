package domain

import "time"

// Blog is a post about a game, authored by an admin.
type Blog struct {
	ID          string    `json:"id" bson:"_id"`
	Game        string    `json:"game" bson:"game"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	Published   bool      `json:"published" bson:"published"`
	AuthorID    string    `json:"authorId" bson:"author_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// BlogPatch carries the optional fields of an update; nil means unchanged.
type BlogPatch struct {
	Game        *string
	Title       *string
	Description *string
	Image       *string
	Published   *bool
}

// Comment is a signed-in user's reply to a blog.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	Content   string    `json:"content" bson:"content"`
	BlogID    string    `json:"blogId" bson:"blog_id"`
	UserID    string    `json:"userId" bson:"user_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Author is the public projection of an account embedded in blog and comment views.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CommentView is a comment together with its author.
type CommentView struct {
	Comment
	User Author `json:"user"`
}

// BlogView is a blog with its author, as shown in listings.
type BlogView struct {
	Blog
	Author Author `json:"author"`
}

// BlogDetail is a blog view with its comments. Comments is never nil, so a
// blog without replies still carries "comments": [].
type BlogDetail struct {
	BlogView
	Comments []CommentView `json:"comments"`
}
