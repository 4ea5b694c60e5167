package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
)

type forecastCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewForecastCache creates a Redis-backed cache of weather snapshots.
func NewForecastCache(client *redislib.Client, ttl time.Duration) repository.ForecastCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &forecastCache{
		client: client,
		prefix: "forecast:",
		ttl:    ttl,
	}
}

func (c *forecastCache) Get(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	result, err := c.client.Get(ctx, c.key(city)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrForecastUnavailable
		}
		return nil, err
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal([]byte(result), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *forecastCache) Set(ctx context.Context, snapshot *domain.WeatherSnapshot) error {
	if snapshot == nil || snapshot.City == "" {
		return domain.ErrInvalidPayload
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(snapshot.City), payload, c.ttl).Err()
}

func (c *forecastCache) key(city string) string {
	return c.prefix + strings.ToLower(strings.TrimSpace(city))
}
