package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	redis_models "vanguard/models/redis"
	redis_utils "vanguard/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// ErrStateNotFound is returned when a match has no state blob in Redis.
var ErrStateNotFound = errors.New("match state not found in Redis")

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveMatchState stores a match's board state in Redis.
// Key format: "match:{id}:state"
// No TTL: the blob must outlive idle periods between turns; it is
// removed explicitly once the terminal state has been archived.
func (rc *RedisClient) SaveMatchState(state *redis_models.MatchState) error {
	key := redis_utils.FormatMatchStateKey(state.MatchID)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling match state: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 0).Err()
}

// GetMatchState retrieves a match's board state from Redis.
// Key format: "match:{id}:state"
func (rc *RedisClient) GetMatchState(matchID uint) (*redis_models.MatchState, error) {
	key := redis_utils.FormatMatchStateKey(matchID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting match state: %v", err)
	}

	var state redis_models.MatchState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling match state: %v", err)
	}
	return &state, nil
}

// DeleteMatchState removes a match's board state from Redis.
func (rc *RedisClient) DeleteMatchState(matchID uint) error {
	key := redis_utils.FormatMatchStateKey(matchID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting match state: %v", err)
	}
	return nil
}

// InitEmptyMatchState writes the state a fresh match starts with.
func (rc *RedisClient) InitEmptyMatchState(matchID uint) error {
	return rc.SaveMatchState(&redis_models.MatchState{
		MatchID:   matchID,
		Data:      redis_models.EmptyStateData,
		UpdatedAt: time.Now().Unix(),
	})
}
