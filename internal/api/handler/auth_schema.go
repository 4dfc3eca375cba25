package handler

import "github.com/letsgrowesports/blog-api/internal/core/domain"

type signupRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type signinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// msgResponse is the body shape of every /auth response.
type msgResponse struct {
	Msg   string       `json:"msg"`
	Token string       `json:"token,omitempty"`
	User  *userPayload `json:"user,omitempty"`
}

type userPayload struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

func toUserPayload(a *domain.Account) *userPayload {
	if a == nil {
		return nil
	}
	return &userPayload{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
