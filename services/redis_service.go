package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/constants"
	"hotel/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Hàm lấy data từ Redis, found=false khi key không tồn tại
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return false, err
	}
	return true, nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, string(dataJSON), ttl).Err()
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

// RoomCache cache danh sách phòng và số phòng trống. Client nil thì mọi thao tác là no-op.
// Lỗi Redis chỉ được log, dữ liệu luôn đọc lại được từ database.
//
// Mỗi key được gắn generation hiện tại (rooms:all:<gen>). Invalidate tăng generation, nên một
// lần đọc database bắt đầu trước khi commit chỉ có thể ghi vào slot của generation cũ.
type RoomCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRoomCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RoomCache {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &RoomCache{rdb: rdb, ttl: ttl, logger: log}
}

func slotKey(key string, generation int64) string {
	return fmt.Sprintf("%s:%d", key, generation)
}

func (c *RoomCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, constants.CacheKeyRoomsGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Lookup đọc key theo generation hiện tại. slot rỗng nghĩa là không được ghi lại vào cache.
func (c *RoomCache) Lookup(ctx context.Context, key string, target interface{}) (slot string, hit bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warn("Cache generation lookup failed: %v", err)
		return "", false
	}

	slot = slotKey(key, gen)
	found, err := GetFromRedis(ctx, c.rdb, slot, target)
	if err != nil {
		c.logger.Warn("Cache get %s failed: %v", slot, err)
		return slot, false
	}
	return slot, found
}

// Store ghi value vào slot do Lookup trả về
func (c *RoomCache) Store(ctx context.Context, slot string, value interface{}) {
	if c == nil || c.rdb == nil || slot == "" {
		return
	}
	if err := SetToRedis(ctx, c.rdb, slot, value, c.ttl); err != nil {
		c.logger.Warn("Cache set %s failed: %v", slot, err)
	}
}

// Invalidate tăng generation rồi xóa các slot cũ, gọi sau khi transaction đã commit
func (c *RoomCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	gen, err := c.rdb.Incr(ctx, constants.CacheKeyRoomsGeneration).Result()
	if err != nil {
		c.logger.Warn("Cache invalidate failed: %v", err)
		return
	}
	err = DeleteFromRedis(ctx, c.rdb,
		slotKey(constants.CacheKeyRoomsAll, gen-1),
		slotKey(constants.CacheKeyRoomsAvailable, gen-1),
		slotKey(constants.CacheKeyRoomCounts, gen-1),
	)
	if err != nil {
		c.logger.Warn("Cache cleanup for generation %d failed: %v", gen-1, err)
	}
}
