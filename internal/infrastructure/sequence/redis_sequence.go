package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/infrastructure/config"
)

// RedisSequenceGenerator implements shared.SequenceGenerator using Redis
// INCR. Counters are scoped per business and per sequence name, so invoice
// numbers from different salons never collide and every INCR is atomic
// across instances.
type RedisSequenceGenerator struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSequenceGenerator creates a generator with its own Redis client
func NewRedisSequenceGenerator(cfg config.RedisConfig) (*RedisSequenceGenerator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSequenceGenerator{
		client:    client,
		keyPrefix: "sequence:",
	}, nil
}

// NewRedisSequenceGeneratorWithClient creates a generator with an existing
// Redis client. Useful for testing or when sharing a client across components.
func NewRedisSequenceGeneratorWithClient(client *redis.Client, keyPrefix string) *RedisSequenceGenerator {
	if keyPrefix == "" {
		keyPrefix = "sequence:"
	}
	return &RedisSequenceGenerator{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Next returns the next number in the named sequence for a business
func (g *RedisSequenceGenerator) Next(ctx context.Context, businessID uuid.UUID, name string) (int64, error) {
	key := fmt.Sprintf("%s%s:%s", g.keyPrefix, businessID, name)
	value, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return value, nil
}

// Close closes the Redis client
func (g *RedisSequenceGenerator) Close() error {
	return g.client.Close()
}

// Ensure RedisSequenceGenerator implements SequenceGenerator
var _ shared.SequenceGenerator = (*RedisSequenceGenerator)(nil)
