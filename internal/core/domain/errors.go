package domain

import (
	"errors"
	"fmt"
)

// Account errors.
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Session token errors. ErrTokenPayload wraps ErrTokenMalformed.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenPayload   = fmt.Errorf("%w: id or role missing", ErrTokenMalformed)
)

// Blog errors.
var (
	ErrBlogNotFound     = errors.New("blog not found")
	ErrBlogGameMismatch = errors.New("blog not found for this game")
	ErrNoAuthorBlogs    = errors.New("no blogs found for this author")
	ErrEmptyComment     = errors.New("comment content cannot be empty")
)
