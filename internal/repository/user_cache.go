package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-dashboard/internal/domain"
)

const (
	userListKey   = "users:all"
	userKeyFormat = "users:%d"
)

// cachedUserRepository is a read-through decorator over UserRepository. The
// user table is read-only reference data, so short-TTL caching is safe.
// Redis failures degrade to direct backend reads.
type cachedUserRepository struct {
	inner  UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps repo with a Redis read-through cache. A nil
// client or non-positive TTL returns repo unchanged.
func NewCachedUserRepository(repo UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if client == nil || ttl <= 0 {
		return repo
	}
	return &cachedUserRepository{inner: repo, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if payload, err := r.client.Get(ctx, userListKey).Bytes(); err == nil {
		var users []domain.User
		if err := json.Unmarshal(payload, &users); err == nil {
			return users, nil
		}
	}

	users, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, userListKey, users)
	return users, nil
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	key := fmt.Sprintf(userKeyFormat, id)
	if payload, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var user domain.User
		if err := json.Unmarshal(payload, &user); err == nil {
			return &user, nil
		}
	}

	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, user)
	return user, nil
}

func (r *cachedUserRepository) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Debug("user cache write failed", zap.String("key", key), zap.Error(err))
	}
}
