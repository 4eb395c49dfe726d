package core

import (
	"strings"
	"time"
)

// Role is the closed set of dashboard variants a user can see.
type Role int

const (
	RoleUnrecognized Role = iota
	RoleParticipant
	RoleDropboxOwner
	RoleRecycler
)

// Raw role values as they appear in the users dataset.
const (
	RoleNameParticipant = "participant"
	RoleNameDropbox     = "dropbox"
	RoleNameRecycler    = "recycler"
)

type (
	User struct {
		UserID   string
		Name     string
		Email    string
		Phone    string
		RoleName string // raw value, see ParseRole
	}

	Dropbox struct {
		DropboxID   string
		OwnerUserID string
		Location    string
		Description string
	}

	// Count is a bottle count. Valid is false when the source value was
	// missing or non-numeric; such counts contribute zero to totals.
	Count struct {
		Value int64
		Valid bool
	}

	Transaction struct {
		TransactionID string
		Timestamp     time.Time // zero when the source value could not be parsed
		DropboxID     string
		UserID        string
		Bottles       Count
	}
)

// ParseRole maps a raw role value to a Role. Matching is case-sensitive;
// surrounding whitespace is ignored.
func ParseRole(s string) Role {
	switch strings.TrimSpace(s) {
	case RoleNameParticipant:
		return RoleParticipant
	case RoleNameDropbox:
		return RoleDropboxOwner
	case RoleNameRecycler:
		return RoleRecycler
	default:
		return RoleUnrecognized
	}
}

func (r Role) String() string {
	switch r {
	case RoleParticipant:
		return RoleNameParticipant
	case RoleDropboxOwner:
		return RoleNameDropbox
	case RoleRecycler:
		return RoleNameRecycler
	default:
		return "unrecognized"
	}
}

// Recognized reports whether r is one of the three dashboard roles.
func (r Role) Recognized() bool {
	return r == RoleParticipant || r == RoleDropboxOwner || r == RoleRecycler
}

// ValidCount returns a valid Count holding n.
func ValidCount(n int64) Count {
	return Count{Value: n, Valid: true}
}

// OrZero returns the count value, or zero for an invalid count.
func (c Count) OrZero() int64 {
	if !c.Valid {
		return 0
	}
	return c.Value
}

func (c Count) String() string {
	if !c.Valid {
		return "invalid"
	}
	return formatInt(c.Value)
}

// HasTimestamp reports whether the transaction carries a usable timestamp.
func (t Transaction) HasTimestamp() bool {
	return !t.Timestamp.IsZero()
}
