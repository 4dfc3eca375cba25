package domain

import "time"

// Identity is the verified caller attached to a request after authentication.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// IdentityOf returns the token-facing view of an account.
func IdentityOf(a *Account) Identity {
	return Identity{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

// Session is the decoded payload of a verified session token.
type Session struct {
	Identity
	IssuedAt  time.Time
	ExpiresAt time.Time
}
