package database

import (
	"context"
	"fmt"
	"time"

	"parking-lot-service/config"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 1500 * time.Millisecond

func InitRedis(ctx context.Context, config *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	return rdb, nil
}
