package repository

import (
	"time"

	"github.com/learnfromme/accounts/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
//
// Update never touches the password column; password writes go through
// UpdatePassword so an already-hashed value is never re-hashed by an
// unrelated save.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByResetToken matches only tokens whose expiry is strictly after now.
	GetByResetToken(token string, now time.Time) (*entity.User, error)
	Update(u *entity.User) error
	// SetResetToken assigns a reset token and its expiry to the user row.
	SetResetToken(id, token string, expires time.Time) error
	// UpdatePassword replaces the stored hash and clears the reset token and
	// its expiry in the same statement.
	UpdatePassword(id, passwordHash string) error
	// List returns up to limit users, newest first.
	List(limit int) ([]*entity.User, error)
}
