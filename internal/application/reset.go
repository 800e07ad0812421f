package application

import (
	"context"
	"errors"
	"time"

	"github.com/learnfromme/accounts/internal/domain/entity"
	repo "github.com/learnfromme/accounts/internal/domain/repository"
	"github.com/learnfromme/accounts/pkg/helpers"
	"github.com/learnfromme/accounts/pkg/mailer"
)

// IssueResetToken mints a single-use reset token, stamps its expiry and
// persists both onto the user row.
func (s *Service) IssueResetToken(u *entity.User) (string, time.Time, error) {
	token, err := helpers.GenerateResetToken()
	if err != nil {
		return "", time.Time{}, err
	}
	expires := time.Now().Add(s.Cfg.ResetTokenTTL)
	if err := s.Repo.SetResetToken(u.ID, token, expires); err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// ValidateResetToken is the single validation path for both the preflight
// check and the reset itself. An absent token and an expired one produce the
// same failure.
func (s *Service) ValidateResetToken(token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrTokenInvalidOrExpired
	}
	u, err := s.Repo.GetByResetToken(token, time.Now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTokenInvalidOrExpired
		}
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a token for the account registered under email
// and hands the notification off to the mail worker. An unknown email is
// reported to the caller.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNoSuchEmail
		}
		return err
	}

	token, expires, err := s.IssueResetToken(u)
	if err != nil {
		return err
	}

	// The token is already persisted; a failed hand-off does not revoke it.
	return s.enqueueMail(ctx, u.Email, mailer.TemplateResetPassword, map[string]any{
		"Email":     u.Email,
		"ResetURL":  s.Cfg.ResetPasswordURL + "?token=" + token,
		"ExpiresAt": expires.UTC().Format(time.RFC3339),
	})
}

// ResetPassword validates the token, replaces the password hash and consumes
// the token in one persistence step, then notifies the account's email.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.ValidateResetToken(token)
	if err != nil {
		return err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return errors.Join(ErrHashing, err)
	}
	if err := s.Repo.UpdatePassword(u.ID, hash); err != nil {
		return err
	}

	// The password change is committed; notification failure never rolls it
	// back.
	return s.enqueueMail(ctx, u.Email, mailer.TemplatePasswordChanged, map[string]any{
		"Email": u.Email,
	})
}

func (s *Service) enqueueMail(ctx context.Context, to, template string, data map[string]any) error {
	if s.Mail == nil || (s.Cfg != nil && !s.Cfg.MailSendEnabled) {
		return nil
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("to", to).Error("email enqueue failed")
		}
		return errors.Join(ErrMailDelivery, err)
	}
	return nil
}
