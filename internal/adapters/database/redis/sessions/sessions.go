package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Badsnus/cu-events-portal/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events-portal/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Storage keeps server-side sessions in redis, keyed by an opaque uuid token
// handed to the browser in a cookie.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

// Create stores the identity under a fresh token and returns the token.
func (s *Storage) Create(ctx context.Context, identity entity.Identity) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}
	if err = s.redis.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Get resolves a token back to the identity it was created with. A missing
// or expired token yields errorz.NotAuthorized.
func (s *Storage) Get(ctx context.Context, token string) (entity.Identity, error) {
	if token == "" {
		return entity.Identity{}, errorz.NotAuthorized
	}
	data, err := s.redis.Get(ctx, key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.Identity{}, errorz.NotAuthorized
		}
		return entity.Identity{}, fmt.Errorf("failed to load session: %w", err)
	}
	var identity entity.Identity
	if err = json.Unmarshal(data, &identity); err != nil {
		return entity.Identity{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return identity, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *Storage) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, key(token)).Err()
}

func key(token string) string {
	return "session:" + token
}
