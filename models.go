package pressroom

import (
	"strings"
	"time"
)

// Roles. Comparison is case-insensitive everywhere (see Principal.IsAdmin).
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Article review statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is the stored identity record.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"` // unique
	Email        string    `json:"email"`    // unique, login identifier
	PasswordHash string    `json:"-"`        // don’t expose hash
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the redacted, request-scoped view of an authenticated user.
// It never carries the password hash.
type Principal struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Principal projects the stored user into its redacted view.
func (u *User) Principal() Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// IsAnonymous reports whether the principal represents no authenticated user.
func (p Principal) IsAnonymous() bool { return p.ID == 0 }

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool { return strings.EqualFold(p.Role, RoleAdmin) }

// Article is a published piece of content. Author is a display name and is
// independent of the owning user; UserID is stamped from the principal at
// creation time, never taken from client input.
type Article struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Content       string    `json:"content"` // sanitized HTML
	PublishedDate time.Time `json:"published_date"`
	Status        string    `json:"status"`
	UserID        int       `json:"user_id"`
}
