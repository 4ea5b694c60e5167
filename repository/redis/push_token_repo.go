package redis

import (
	"context"

	redislib "github.com/redis/go-redis/v9"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
)

type pushTokenRepository struct {
	client *redislib.Client
	prefix string
}

// NewPushTokenRepository stores notification registration tokens keyed by owner.
func NewPushTokenRepository(client *redislib.Client) repository.PushTokenRepository {
	return &pushTokenRepository{
		client: client,
		prefix: "push_token:",
	}
}

func (r *pushTokenRepository) Save(ctx context.Context, ownerID, token string) error {
	if ownerID == "" || token == "" {
		return domain.ErrInvalidPayload
	}
	return r.client.Set(ctx, r.prefix+ownerID, token, 0).Err()
}

func (r *pushTokenRepository) Get(ctx context.Context, ownerID string) (string, error) {
	token, err := r.client.Get(ctx, r.prefix+ownerID).Result()
	if err == redislib.Nil {
		return "", domain.NewError(domain.ErrCodeNotFound, "push token not registered")
	}
	return token, err
}
