package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identifies the holder of an API token.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleScorer Role = "scorer"
	RoleAdmin  Role = "admin"
)

// HasRole reports whether the claims grant r. Admin implies every role.
func (c *Claims) HasRole(r Role) bool {
	return Role(c.Role) == RoleAdmin || Role(c.Role) == r
}

// ParseRole accepts the name of a known role.
func ParseRole(v string) (Role, error) {
	switch r := Role(v); r {
	case RoleScorer, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", v)
}
