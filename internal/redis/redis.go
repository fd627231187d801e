package redis

import (
	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis connects the shared client. Callers treat a nil Rdb (redis
// not configured) as "no cache".
func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}
