package application

import (
	"errors"
	"strings"
)

var (
	// ErrNoSuchUser and ErrBadPassword are distinct on purpose: the login
	// feedback tells the user which of the two checks failed.
	ErrNoSuchUser  = errors.New("user does not exist")
	ErrBadPassword = errors.New("wrong password")

	ErrDuplicateIdentity = errors.New("user or email already exists")
	ErrNoSuchEmail       = errors.New("no account with that email exists")

	// ErrTokenInvalidOrExpired covers both an unknown and an expired reset
	// token; callers cannot tell which condition failed.
	ErrTokenInvalidOrExpired = errors.New("password token is invalid or expired")

	ErrNotAuthenticated = errors.New("not authenticated")
	ErrHashing          = errors.New("password hashing failed")

	// ErrMailDelivery reports a failed hand-off to the mail collaborator.
	// The store mutation that preceded it always stands.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// ValidationError carries every failed signup check at once instead of
// stopping at the first.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}
