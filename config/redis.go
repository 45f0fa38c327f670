package config

import (
	"context"
	"fmt"

	"hotel/services/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis kết nối Redis. REDIS_ADDR rỗng thì trả nil, service chạy không cache.
func ConnectRedis(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, room cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.User,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Kiểm tra kết nối
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Kết nối Redis thành công: %s", res)
	return rdb, nil
}
