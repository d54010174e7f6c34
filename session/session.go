// Package session keeps admin login sessions in Redis. A session is an
// opaque token stored server-side with a TTL; the browser only ever holds
// the token in an HttpOnly cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CookieName is the session cookie set on successful admin login.
const CookieName = "akuko_session"

var ErrNoSession = errors.New("no active session")

type Manager struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewManager(rdb *redis.Client, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime, used for the cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a fresh session token for the admin and stores it with the
// configured TTL.
func (m *Manager) Create(ctx context.Context, adminID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := m.rdb.Set(ctx, key(token), adminID.String(), m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the admin ID behind a session token. A missing or expired
// token is ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := m.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNoSession
	}
	if err != nil {
		return uuid.Nil, err
	}
	adminID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return adminID, nil
}

// Destroy invalidates a session token. Destroying an unknown token is a
// no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	return m.rdb.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "akuko:session:" + token
}
