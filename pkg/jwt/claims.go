package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims is the bearer token payload.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	// RoleLeagueAdmin may register teams and shooters and enter scores.
	RoleLeagueAdmin Role = "league_admin"
)

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role Role) bool {
	return c != nil && Role(c.Role) == role
}
