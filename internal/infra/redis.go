package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens a go-redis client from a redis:// URL and pings it so a
// broken queue backend fails the process at boot rather than on first job.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
