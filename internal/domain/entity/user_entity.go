package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash once persisted, never plaintext.
//
// ResetToken and ResetTokenExpires are either both set or both nil; a token
// is usable only strictly before its expiry.
type User struct {
	ID                string
	Username          string
	Email             string
	Password          string
	DisplayName       string
	Bio               string
	ResetToken        *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Name returns the display name when set, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
