package helpers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals a missing or expired server-side session.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side principal record persisted across requests.
type Session struct {
	ID       string
	UserID   int64
	Username string
	Role     string
}

// SessionStore persists authenticated principals between requests.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps each session as a redis hash with a TTL.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (s *RedisSessionStore) Create(ctx context.Context, sess *Session) error {
	key := sessionKey(sess.ID)
	fields := map[string]any{
		"user_id":    sess.UserID,
		"username":   sess.Username,
		"role":       sess.Role,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}
	uid, _ := strconv.ParseInt(data["user_id"], 10, 64)
	return &Session{
		ID:       id,
		UserID:   uid,
		Username: data["username"],
		Role:     data["role"],
	}, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
