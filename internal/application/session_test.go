package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/learnfromme/accounts/pkg/helpers"
)

func TestEstablishAndResolveSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("roundtrip returns the user", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, exp, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

		resolved, err := svc.ResolveSession(ctx, token)
		require.NoError(t, err)
		require.Equal(t, u.ID, resolved.ID)
		require.Equal(t, "bob", resolved.Username)
	})

	t.Run("resolve re-fetches, so profile edits are visible immediately", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		_, err = svc.EditProfile(u.ID, "Bobby", "new bio")
		require.NoError(t, err)

		resolved, err := svc.ResolveSession(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "Bobby", resolved.DisplayName)
		require.Equal(t, "new bio", resolved.Bio)
	})

	t.Run("deleted user no longer resolves", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		repo.mu.Lock()
		delete(repo.users, u.ID)
		repo.mu.Unlock()

		_, err = svc.ResolveSession(ctx, token)
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.ResolveSession(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")
		_, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		forged, _, err := helpers.NewJWTManager("other-secret", time.Hour).GenerateSessionToken(u.ID, "forged-sid")
		require.NoError(t, err)

		_, err = svc.ResolveSession(ctx, forged)
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("new login supersedes the previous session", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		first, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)
		second, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		_, err = svc.ResolveSession(ctx, first)
		require.ErrorIs(t, err, ErrNotAuthenticated)
		_, err = svc.ResolveSession(ctx, second)
		require.NoError(t, err)
	})
}

func TestDestroySession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("resolve fails after destroy", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		require.NoError(t, svc.DestroySession(ctx, token))
		_, err = svc.ResolveSession(ctx, token)
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("destroying twice is not an error", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		u := signupUser(t, svc, "bob", "bob@x.com", "abcde")

		token, _, err := svc.EstablishSession(ctx, u)
		require.NoError(t, err)

		require.NoError(t, svc.DestroySession(ctx, token))
		require.NoError(t, svc.DestroySession(ctx, token))
	})

	t.Run("unparseable token treated as already gone", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		require.NoError(t, svc.DestroySession(ctx, "not-a-token"))
	})
}
