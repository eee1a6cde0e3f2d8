package config

import (
	"os"

	"vanguard/services/redis"
)

// ConnectRedis connects to the Redis instance named by REDIS_URL,
// defaulting to a local one.
func ConnectRedis() (*redis.RedisClient, error) {
	redisURI := os.Getenv("REDIS_URL")
	if redisURI == "" {
		redisURI = "localhost:6379"
	}
	return redis.InitRedis(redisURI, 0)
}
