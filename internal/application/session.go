package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/learnfromme/accounts/internal/domain/entity"
)

// SessionStore persists the session identity reference keyed by user id.
// Get reports an absent session as an empty session id, not an error.
type SessionStore interface {
	Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// EstablishSession records the session identity reference in the session
// store and returns the signed cookie token. The stored reference is the
// user's store identifier only; no credential material ever enters the
// session.
func (s *Service) EstablishSession(ctx context.Context, u *entity.User) (string, time.Time, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateSessionToken(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return "", time.Time{}, err
	}
	if err := s.Sessions.Put(ctx, u.ID, sid, s.Cfg.SessionTTL); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("session store write failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ResolveSession turns a session cookie token back into a full user record.
// The user is re-fetched from the credential store on every request, so
// profile edits and deletions are visible immediately. No caching.
func (s *Service) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	sid, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil || sid == "" || sid != claims.SessionID {
		return nil, ErrNotAuthenticated
	}
	u, err := s.Repo.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// DestroySession drops the server-side session. Logging out twice is not an
// error: an unparseable or already-cleared token is treated as done.
func (s *Service) DestroySession(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil
	}
	return s.Sessions.Delete(ctx, claims.UserID)
}
