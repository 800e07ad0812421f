package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/learnfromme/accounts/internal/application"
)

// SessionStore keeps one session hash per user under user:session:<uid>,
// holding the user id, the active session id and the creation time. A login
// replaces any previous session for the same user.
type SessionStore struct {
	client *goredis.Client
}

func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func (s *SessionStore) Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	key := sessionKey(userID)
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"sid":        sessionID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the active session id, or "" when no session exists.
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	data, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return "", err
	}
	return data["sid"], nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

var _ application.SessionStore = (*SessionStore)(nil)
