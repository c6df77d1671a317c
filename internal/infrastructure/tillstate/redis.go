package tillstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veloclub/clubhouse-api/internal/config"
	domainRepo "github.com/veloclub/clubhouse-api/internal/domain/repository"
)

const keyPrefix = "till:state:"

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed till state store. Saved state expires
// after ttl so a terminal abandoned overnight comes up clean.
func NewRedisStore(client *redis.Client, ttl time.Duration) domainRepo.TillStateStore {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Save(ctx context.Context, state *domainRepo.TillState) error {
	state.UpdatedAt = time.Now()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal till state: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+state.Terminal, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save till state: %w", err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, terminal string) (*domainRepo.TillState, error) {
	data, err := s.client.Get(ctx, keyPrefix+terminal).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load till state: %w", err)
	}

	var state domainRepo.TillState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal till state: %w", err)
	}
	return &state, nil
}

func (s *redisStore) Clear(ctx context.Context, terminal string) error {
	if err := s.client.Del(ctx, keyPrefix+terminal).Err(); err != nil {
		return fmt.Errorf("failed to clear till state: %w", err)
	}
	return nil
}
