package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"toy-rental-storefront/internal/domain/user"
	"toy-rental-storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type sessionRecord struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	BackendToken string    `json:"backend_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionStore keeps sessions until they expire; Redis evicts them by TTL.
type SessionStore struct {
	client *redis.Client
	keys   keyspace
	now    func() time.Time
}

func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		keys:   keyspace{prefix: prefix, kind: "session"},
		now:    time.Now,
	}
}

var _ usecase.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Save(ctx context.Context, sess *user.Session) error {
	ttl := sess.ExpiresAt().Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(sessionRecord{
		ID:           sess.ID(),
		UserID:       sess.UserID(),
		Email:        sess.Email(),
		DisplayName:  sess.DisplayName(),
		Role:         sess.Role().String(),
		BackendToken: sess.BackendToken(),
		CreatedAt:    sess.CreatedAt(),
		ExpiresAt:    sess.ExpiresAt(),
	})
	if err != nil {
		return wrapCacheErr("failed to encode session", err)
	}

	if err := s.client.Set(ctx, s.keys.key(sess.ID().String()), payload, ttl).Err(); err != nil {
		return wrapCacheErr("failed to save session", err)
	}
	return nil
}

func (s *SessionStore) Find(ctx context.Context, id uuid.UUID) (*user.Session, error) {
	raw, err := s.client.Get(ctx, s.keys.key(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, wrapCacheErr("failed to load session", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, wrapCacheErr("failed to decode session", err)
	}
	role, err := user.NewRole(rec.Role)
	if err != nil {
		return nil, wrapCacheErr("stored session has invalid role", err)
	}

	return user.ReconstructSession(
		rec.ID,
		rec.UserID,
		rec.Email,
		rec.DisplayName,
		role,
		rec.BackendToken,
		rec.CreatedAt,
		rec.ExpiresAt,
	), nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, s.keys.key(id.String())).Err(); err != nil {
		return wrapCacheErr("failed to delete session", err)
	}
	return nil
}
