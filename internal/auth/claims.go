package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by a premia session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
}

// HasRole checks whether the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the claims carry the admin role.
func (c Claims) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// Role constants
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// RolesFor returns the role set for an account.
func RolesFor(admin bool) []string {
	if admin {
		return []string{RoleAdmin, RoleCustomer}
	}
	return []string{RoleCustomer}
}
