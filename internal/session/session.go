package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// cookieName carries the session id between requests.
const cookieName = "sid"

// Session is the per-visitor key/value bag handed to the view layer.
type Session map[string]string

// Store persists sessions between requests. A missing session id loads
// as an empty session.
type Store interface {
	Get(ctx context.Context, sid string) (Session, error)
	Save(ctx context.Context, sid string, sess Session) error
}

// RedisStore keeps sessions in Redis so that they survive process
// restarts and can be shared by multiple server processes behind a load
// balancer.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (s *RedisStore) Get(ctx context.Context, sid string) (Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sid), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

type ctxKey struct{}

// Middleware loads the visitor's session before the handler runs and
// re-saves it afterwards to slide its expiry. First-time visitors get a
// fresh session id cookie. A broken session store never fails the
// request; the handler just sees an empty session.
func Middleware(store Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cookieName); err == nil {
				sid = c.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
				})
			}

			sess, err := store.Get(r.Context(), sid)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to load session")
				sess = Session{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if err := store.Save(r.Context(), sid, sess); err != nil {
				log.Warn().Err(err).Msg("Failed to save session")
			}
		})
	}
}

// FromContext returns the session attached by Middleware, or an empty
// session when the request bypassed it.
func FromContext(ctx context.Context) Session {
	if sess, ok := ctx.Value(ctxKey{}).(Session); ok {
		return sess
	}
	return Session{}
}
