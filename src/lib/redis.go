package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// CacheGet returns the cached value for key, or "" on miss or when no cache
// is reachable. The cache is best-effort throughout.
func CacheGet(key string) string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	val, err := rd.Get(context.Background(), key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[redis] Error reading key %s: %s\n", key, err.Error())
		}
		return ""
	}
	return val
}

func CacheSet(key, value string, ttl time.Duration) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.SetEx(context.Background(), key, value, ttl).Err(); err != nil {
		log.Printf("[redis] Error writing key %s: %s\n", key, err.Error())
	}
}

func CacheDel(keys ...string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), keys...).Err(); err != nil {
		log.Printf("[redis] Error deleting keys %v: %s\n", keys, err.Error())
	}
}
