package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnfromme/accounts/internal/domain/entity"
	"github.com/learnfromme/accounts/internal/domain/repository"
)

// email is nullable in the schema (optional, but unique when present), so
// the empty string maps to NULL on write and back on read.
const userColumns = `id, username, COALESCE(email, ''), password_hash, display_name, bio, reset_token, reset_token_expires, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.DisplayName,
		&u.Bio, &u.ResetToken, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// isUniqueViolation reports whether err is a unique-constraint rejection.
// Concurrent signups racing on the same username or email are resolved here,
// at the store level, not by application locking.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, display_name, bio)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.DisplayName, u.Bio)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) GetByResetToken(token string, now time.Time) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_token = $1 AND reset_token_expires > $2
	`, token, now))
}

// Update persists profile fields only. The password column is owned by
// UpdatePassword and the reset token columns by SetResetToken, so an
// unrelated save can never re-hash or clobber credential state.
func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = NULLIF($1, ''), display_name = $2, bio = $3, updated_at = $4
		WHERE id = $5
	`, u.Email, u.DisplayName, u.Bio, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(id, token string, expires time.Time) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET reset_token = $1, reset_token_expires = $2, updated_at = now()
		WHERE id = $3
	`, token, expires, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdatePassword writes the new hash and consumes any reset token in one
// statement, so a reused token can never observe the old password.
func (r *UserRepository) UpdatePassword(id, passwordHash string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL, updated_at = now()
		WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(limit int) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.DisplayName,
			&u.Bio, &u.ResetToken, &u.ResetTokenExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
