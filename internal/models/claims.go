package models

import "github.com/golang-jwt/jwt/v5"

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
