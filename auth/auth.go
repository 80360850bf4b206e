/*
Package auth resolves login credentials to user records.

PURPOSE:
  The engine's read APIs are consumed on behalf of a logged-in user. This
  package defines the credential-resolution collaborator as an interface
  with a single method, so the core never depends on a fixed user table.
  The bundled StaticResolver is seeded at startup; swapping in a directory
  or database-backed resolver is a constructor change.

  There is no session or token lifecycle here. Resolution is a one-shot
  check returning the user record or ErrInvalidCredentials.
*/
package auth

import (
	"errors"

	"github.com/warp/card-engine/ledger"
)

// Role distinguishes the two dashboard audiences.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is the record handed to presentation collaborators after login.
type User struct {
	Username   string
	Role       Role
	Name       string
	CardNumber string // only set for customers
}

// ErrInvalidCredentials is returned for any unknown username or wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Resolver checks a username/password pair and returns the matching user.
type Resolver interface {
	Resolve(username, password string) (*User, error)
}

// =============================================================================
// STATIC RESOLVER - Seeded credential table
// =============================================================================

// Credential pairs a user with a password digest. Passwords are stored only
// as digests, reusing the ledger's one-way hash.
type Credential struct {
	User           User
	PasswordDigest string
}

// StaticResolver resolves against a fixed, seeded credential set.
type StaticResolver struct {
	byUsername map[string]Credential
}

// NewStaticResolver builds a resolver from seeded credentials.
func NewStaticResolver(creds []Credential) *StaticResolver {
	byUsername := make(map[string]Credential, len(creds))
	for _, c := range creds {
		byUsername[c.User.Username] = c
	}
	return &StaticResolver{byUsername: byUsername}
}

func (r *StaticResolver) Resolve(username, password string) (*User, error) {
	cred, ok := r.byUsername[username]
	if !ok || !ledger.VerifyPIN(cred.PasswordDigest, password) {
		return nil, ErrInvalidCredentials
	}
	user := cred.User
	return &user, nil
}
