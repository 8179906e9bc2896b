package models

import (
	"time"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string // empty for accounts without local credentials
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // nil = active; set = soft-deleted
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Scrub returns a copy safe to hand back to callers: no password hash,
// no deletion mark.
func (u *User) Scrub() *User {
	scrubbed := *u
	scrubbed.PasswordHash = ""
	scrubbed.DeletedAt = nil
	return &scrubbed
}
