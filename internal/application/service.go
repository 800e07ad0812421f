package application

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/learnfromme/accounts/config"
	"github.com/learnfromme/accounts/internal/domain/entity"
	repo "github.com/learnfromme/accounts/internal/domain/repository"
	"github.com/learnfromme/accounts/pkg/helpers"
)

// MailQueue hands email jobs off to the delivery worker.
type MailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// Service orchestrates signup, login, sessions, profile edits and the
// password-reset flow on top of the user repository.
type Service struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Sessions SessionStore
	Logger   *logrus.Logger
	Mail     MailQueue
	Cfg      *config.Config
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, sessions SessionStore, logger *logrus.Logger, mail MailQueue, cfg *config.Config) *Service {
	return &Service{
		Repo:     r,
		JWT:      jwt,
		Sessions: sessions,
		Logger:   logger,
		Mail:     mail,
		Cfg:      cfg,
	}
}

var validate = validator.New()

type SignupInput struct {
	Username string `validate:"required"`
	Password string `validate:"required,min=5,eqfield=Confirm"`
	Confirm  string
	Email    string `validate:"required,email"`
}

func validateSignup(in SignupInput) []string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid signup input"}
	}
	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.Field() == "Username":
			reasons = append(reasons, "Name is required!")
		case fe.Field() == "Password" && fe.Tag() == "eqfield":
			reasons = append(reasons, "Passwords don't match")
		case fe.Field() == "Password":
			reasons = append(reasons, "Password is required and must be at least 5 characters")
		case fe.Field() == "Email":
			reasons = append(reasons, "Email is required!")
		}
	}
	return reasons
}

// Signup validates the submitted form as a whole, then creates the account
// with the password already hashed. Validation failures are collected and
// returned together, never one at a time.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if reasons := validateSignup(in); len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	// Pre-check for an account holding the same username+email pair, then
	// rely on the store's unique indexes to settle any race.
	if existing, err := s.Repo.GetByUsername(in.Username); err == nil && existing != nil && existing.Email == in.Email {
		return nil, ErrDuplicateIdentity
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Join(ErrHashing, err)
	}

	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return u, nil
}

// Authenticate resolves a username/password pair to a verified user. The two
// failure modes stay distinct so the caller can report which check failed.
func (s *Service) Authenticate(username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrBadPassword
	}
	return u, nil
}

// EditProfile mutates the authenticated user's own display name and bio. The
// target is always the session's user; no other account can be addressed.
func (s *Service) EditProfile(userID, displayName, bio string) (*entity.User, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	u.DisplayName = displayName
	u.Bio = bio
	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	return u, nil
}

// GetByUsername backs the public profile page.
func (s *Service) GetByUsername(username string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	return u, nil
}

// ListUsers returns the newest accounts first, as on the landing page.
func (s *Service) ListUsers(limit int) ([]*entity.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repo.List(limit)
}
