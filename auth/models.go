// Package auth is responsible for authentication and authorization: verifying
// credentials, issuing and validating bearer tokens, and guarding protected
// routes. It reads identity records through a repository port and never
// mutates them.
package auth

// Identity represents a registered principal as stored by the persistence
// adapter. The auth core only ever reads it by username during login.
type Identity struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"` // never serialized
	IsActive       bool   `json:"isActive"`
}
