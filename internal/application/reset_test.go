package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/learnfromme/accounts/pkg/helpers"
	"github.com/learnfromme/accounts/pkg/mailer"
)

func TestIssueAndValidateResetToken(t *testing.T) {
	t.Parallel()

	t.Run("issue then validate returns the same user", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, expires, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		require.Len(t, token, helpers.ResetTokenBytes*2) // hex-encoded
		require.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

		got, err := svc.ValidateResetToken(token)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("expired token is indistinguishable from an unknown one", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		repo.expireToken(u.ID)

		_, errExpired := svc.ValidateResetToken(token)
		_, errUnknown := svc.ValidateResetToken("deadbeef")
		require.ErrorIs(t, errExpired, ErrTokenInvalidOrExpired)
		require.ErrorIs(t, errUnknown, ErrTokenInvalidOrExpired)
	})

	t.Run("empty token rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.ValidateResetToken("")
		require.ErrorIs(t, err, ErrTokenInvalidOrExpired)
	})

	t.Run("a later request supersedes the previous token", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		first, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		second, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		_, err = svc.ValidateResetToken(first)
		require.ErrorIs(t, err, ErrTokenInvalidOrExpired)
		_, err = svc.ValidateResetToken(second)
		require.NoError(t, err)
	})
}

func TestRequestPasswordReset(t *testing.T) {
	t.Parallel()

	t.Run("issues token and queues the reset email", func(t *testing.T) {
		svc, repo, mail := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		require.NoError(t, svc.RequestPasswordReset(context.Background(), "bob@x.com"))

		stored, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ResetToken)
		require.NotNil(t, stored.ResetTokenExpires)

		require.Len(t, mail.jobs, 1)
		job, ok := mail.jobs[0].(mailer.EmailJob)
		require.True(t, ok)
		require.Equal(t, "bob@x.com", job.To)
		require.Equal(t, mailer.TemplateResetPassword, job.Template)
		require.Contains(t, job.Data["ResetURL"], "?token="+*stored.ResetToken)
	})

	t.Run("unknown email is reported", func(t *testing.T) {
		svc, _, mail := newTestService(t)
		err := svc.RequestPasswordReset(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, ErrNoSuchEmail)
		require.Empty(t, mail.jobs)
	})

	t.Run("mail failure surfaces but the token stands", func(t *testing.T) {
		svc, repo, mail := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")
		mail.fail = errors.New("broker down")

		err := svc.RequestPasswordReset(context.Background(), "bob@x.com")
		require.ErrorIs(t, err, ErrMailDelivery)

		stored, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ResetToken)
	})
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("changes the hash and consumes the token", func(t *testing.T) {
		svc, repo, mail := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")
		oldHash := u.Password

		token, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(context.Background(), token, "newpass"))

		stored, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		require.NotEqual(t, oldHash, stored.Password)
		require.Nil(t, stored.ResetToken)
		require.Nil(t, stored.ResetTokenExpires)
		require.True(t, helpers.CompareHashAndPassword(stored.Password, "newpass"))

		// Login works with the new password only.
		_, err = svc.Authenticate("bob", "abcde")
		require.ErrorIs(t, err, ErrBadPassword)
		_, err = svc.Authenticate("bob", "newpass")
		require.NoError(t, err)

		// Confirmation email queued.
		require.Len(t, mail.jobs, 1)
		job := mail.jobs[0].(mailer.EmailJob)
		require.Equal(t, mailer.TemplatePasswordChanged, job.Template)
	})

	t.Run("token is single-use", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(context.Background(), token, "newpass"))
		err = svc.ResetPassword(context.Background(), token, "evenlater")
		require.ErrorIs(t, err, ErrTokenInvalidOrExpired)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		repo.expireToken(u.ID)

		err = svc.ResetPassword(context.Background(), token, "newpass")
		require.ErrorIs(t, err, ErrTokenInvalidOrExpired)

		// Old credentials still work.
		_, err = svc.Authenticate("bob", "abcde")
		require.NoError(t, err)
	})

	t.Run("mail failure does not roll back the change", func(t *testing.T) {
		svc, _, mail := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.IssueResetToken(u)
		require.NoError(t, err)
		mail.fail = errors.New("broker down")

		err = svc.ResetPassword(context.Background(), token, "newpass")
		require.ErrorIs(t, err, ErrMailDelivery)

		_, err = svc.Authenticate("bob", "newpass")
		require.NoError(t, err)
	})
}
