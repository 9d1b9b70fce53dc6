package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Sessions are keyed by their refresh token, which makes the stored token
// the sole lookup credential; a per-user index set supports logout-all.
type SessionRepositoryImpl struct {
	client      *redis.Client
	tokenPrefix string
	userPrefix  string
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client:      client,
		tokenPrefix: "session:",
		userPrefix:  "user_sessions:",
	}
}

func (r *SessionRepositoryImpl) tokenKey(token string) string {
	return r.tokenPrefix + token
}

func (r *SessionRepositoryImpl) userKey(userID uint) string {
	return fmt.Sprintf("%s%d", r.userPrefix, userID)
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(session.RefreshToken), data, ttl)
	pipe.SAdd(ctx, r.userKey(session.UserID), session.RefreshToken)
	_, err = pipe.Exec(ctx)
	return err
}

// FindByToken implements domain.SessionRepository. A session found past its
// expiry is deleted lazily and reported as expired.
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.tokenKey(refreshToken)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, r.tokenKey(refreshToken))
		r.client.SRem(ctx, r.userKey(session.UserID), refreshToken)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Rotate implements domain.SessionRepository. The old token's key is
// removed and the session is rewritten under the new token in one
// transaction, so the previous value can never mint tokens again.
func (r *SessionRepositoryImpl) Rotate(ctx context.Context, oldToken string, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.tokenKey(oldToken))
	pipe.SRem(ctx, r.userKey(session.UserID), oldToken)
	pipe.Set(ctx, r.tokenKey(session.RefreshToken), data, ttl)
	pipe.SAdd(ctx, r.userKey(session.UserID), session.RefreshToken)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByToken implements domain.SessionRepository. Deleting an unknown
// token is a no-op.
func (r *SessionRepositoryImpl) DeleteByToken(ctx context.Context, refreshToken string) error {
	data, err := r.client.Get(ctx, r.tokenKey(refreshToken)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err == nil {
		r.client.SRem(ctx, r.userKey(session.UserID), refreshToken)
	}
	return r.client.Del(ctx, r.tokenKey(refreshToken)).Err()
}

// DeleteByUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	tokens, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, r.tokenKey(token))
	}
	pipe.Del(ctx, r.userKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteExpired implements domain.SessionRepository. Redis TTLs reap most
// keys on their own; the sweep clears stragglers and stale index entries,
// returning how many sessions it removed.
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.tokenPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err != nil {
				continue
			}
			var session domain.Session
			if err := json.Unmarshal([]byte(data), &session); err != nil {
				continue
			}
			if session.ExpiresAt.Before(time.Now()) {
				r.client.Del(ctx, key)
				r.client.SRem(ctx, r.userKey(session.UserID), session.RefreshToken)
				deleted++
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}
