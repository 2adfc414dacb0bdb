package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. Rules over roles live in the
// auth package; nothing else should compare role strings directly.
type Role string

const (
	RoleReader Role = "reader"
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a stored role string to a Role, defaulting to reader
// for anything unrecognized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleWriter:
		return RoleWriter
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleReader
	}
}

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}
