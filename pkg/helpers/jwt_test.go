package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	token, exp, err := m.GenerateSessionToken("user-1", "sid-1")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseSessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "sid-1", claims.SessionID)
}

func TestSessionTokenRejections(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := m.GenerateSessionToken("user-1", "sid-1")
		require.NoError(t, err)

		other := NewJWTManager("different", time.Hour)
		_, err = other.ParseSessionToken(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		short := NewJWTManager("secret", -time.Minute)
		token, _, err := short.GenerateSessionToken("user-1", "sid-1")
		require.NoError(t, err)

		_, err = short.ParseSessionToken(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseSessionToken("not-a-token")
		require.Error(t, err)
	})
}
