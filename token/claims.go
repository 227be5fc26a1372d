package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
)

// RoleType represents the account's authorization level
type RoleType string

const (
	RoleRegular RoleType = "Regular"
	RoleAdmin   RoleType = "Admin"
)

// Claims is the decoded payload of a session token. The JSON field names
// are a wire contract shared with API clients - do not rename them.
type Claims struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     RoleType `json:"role"`
	ID       string   `json:"id"`

	jwtlib.RegisteredClaims
}

// Complete reports whether the claims carry every field the session
// policy requires. A token failing this was minted by an incompatible
// version of the system.
func (c *Claims) Complete() bool {
	return c.Username != "" && c.Email != "" && c.Role != ""
}

// Matches reports whether two claim sets name the same identity on the
// fields the dual-token invariant covers.
func (c *Claims) Matches(other *Claims) bool {
	return c.Username == other.Username &&
		c.Email == other.Email &&
		c.Role == other.Role
}
