package domain

import "time"

// Role enumerates dashboard roles. "requester" is canonical; the backend's
// "customer" spelling is folded in by ParseRole and only resurfaces through
// Label for presentation.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAgent     Role = "agent"
	RoleRequester Role = "requester"
)

// ParseRole canonicalizes a raw role string. Unknown values fall back to
// requester, the least-privileged role.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAgent:
		return RoleAgent
	case RoleRequester:
		return RoleRequester
	}
	if raw == "customer" {
		return RoleRequester
	}
	return RoleRequester
}

// Label returns the UI-facing name for the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleAgent:
		return "Agent"
	case RoleRequester:
		return "Customer"
	}
	return "Customer"
}

// User is the domain model for dashboard identities. Users are read-only
// from this system's perspective.
type User struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
