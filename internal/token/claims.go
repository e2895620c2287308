// Package token extracts and verifies the bearer credential attached to a
// file request. Tokens are issued by the account API; this package only
// verifies them.
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed set of caller roles carried in a token.
type Role string

const (
	// RoleUser is a standard account holder. A token without an explicit
	// role is treated as RoleUser.
	RoleUser Role = "user"

	// RolePhotographer is a partner studio delivering media into the
	// partners namespace.
	RolePhotographer Role = "photographer"

	// RoleAdmin has unconditional access to the partners namespace.
	RoleAdmin Role = "admin"
)

// Claims is the verified payload of a caller's token. It lives for one
// request and is never persisted.
type Claims struct {
	jwt.RegisteredClaims

	// AccountID is an optional alternate owner identity, equivalent to the
	// subject for access purposes.
	AccountID string `json:"accountId,omitempty"`

	// Role is the caller's role. Empty means standard user.
	Role Role `json:"role,omitempty"`

	// PartnerID identifies the partner studio. Present only on
	// photographer tokens.
	PartnerID string `json:"partnerId,omitempty"`
}

// EffectiveRole returns the caller's role, defaulting to RoleUser when the
// token carries none.
func (c *Claims) EffectiveRole() Role {
	if c.Role == "" {
		return RoleUser
	}
	return c.Role
}

// Owns reports whether the claims identify the given user id, either via
// the token subject or the alternate account identity.
func (c *Claims) Owns(userID string) bool {
	if userID == "" {
		return false
	}
	return c.Subject == userID || (c.AccountID != "" && c.AccountID == userID)
}
