package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionDescriptor identifies an authenticated caller. It never carries a secret.
type SessionDescriptor struct {
	LoginName    string `json:"login_name"`
	Role         string `json:"role"`
	LegislatorID *int64 `json:"legislator_id,omitempty"`
	DisplayName  string `json:"display_name"`
}

// DescriptorFor builds the session descriptor of an account
func DescriptorFor(a *Account) SessionDescriptor {
	c := a.Clone()
	return SessionDescriptor{
		LoginName:    c.LoginName,
		Role:         c.Role,
		LegislatorID: c.LegislatorID,
		DisplayName:  c.DisplayName,
	}
}

// IsAdmin reports whether the descriptor carries the admin role
func (d SessionDescriptor) IsAdmin() bool {
	return d.Role == RoleAdmin
}

type TokenClaims struct {
	LoginName    string `json:"login_name"`
	Role         string `json:"role"`
	LegislatorID *int64 `json:"legislator_id,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	jwt.RegisteredClaims
}

// Descriptor converts token claims back into a session descriptor
func (c *TokenClaims) Descriptor() SessionDescriptor {
	return SessionDescriptor{
		LoginName:    c.LoginName,
		Role:         c.Role,
		LegislatorID: c.LegislatorID,
		DisplayName:  c.DisplayName,
	}
}
