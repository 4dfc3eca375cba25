package ports

import "github.com/letsgrowesports/blog-api/internal/core/domain"

// AccessPolicy selects which checks a protected route requires.
type AccessPolicy int

const (
	// PolicySignedIn accepts any valid token regardless of role.
	PolicySignedIn AccessPolicy = iota
	// PolicyAdminOnly additionally requires the ADMIN role.
	PolicyAdminOnly
)

func (p AccessPolicy) String() string {
	if p == PolicyAdminOnly {
		return "admin_only"
	}
	return "signed_in"
}

// AccessRequest is the transport-independent view of an incoming request.
type AccessRequest struct {
	Authorization string
}

// AccessOutcome is the result of an access decision. Identity is set only when
// the request is allowed; otherwise Status and Message describe the rejection.
type AccessOutcome struct {
	Identity *domain.Identity
	Status   int
	Message  string
	Reason   string
}

// Allowed reports whether the request may continue to its handler.
func (o AccessOutcome) Allowed() bool {
	return o.Identity != nil
}

// AccessController decides whether a request may reach a protected route.
type AccessController interface {
	Authorize(req AccessRequest, policy AccessPolicy) AccessOutcome
}
