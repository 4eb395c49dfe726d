// Package identity resolves a login attempt against the users dataset.
package identity

import (
	"errors"
	"strings"

	"recycling/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is a login attempt. Password is accepted but not checked.
type Credentials struct {
	UserID   string
	Password string
}

// Identity is the resolved user and the dashboard role it maps to.
type Identity struct {
	User core.User
	Role core.Role
}

func (id Identity) UserID() string {
	return id.User.UserID
}

// Resolve returns the first user whose id equals creds.UserID exactly.
// Blank ids never match.
func Resolve(creds Credentials, users []core.User) (Identity, error) {
	if strings.TrimSpace(creds.UserID) == "" {
		return Identity{}, ErrInvalidCredentials
	}
	for _, u := range users {
		if u.UserID == creds.UserID {
			return Identity{User: u, Role: core.ParseRole(u.RoleName)}, nil
		}
	}
	return Identity{}, ErrInvalidCredentials
}
