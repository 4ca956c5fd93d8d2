package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
	Profile  string
}

// Storage keeps every profile key under "eventhub:<profile>:".
type Storage struct {
	redis  *redis.Client
	prefix string
}

func New(ctx context.Context, opts Options) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewStorage(client, opts.Profile), nil
}

func NewStorage(client *redis.Client, profile string) *Storage {
	return &Storage{
		redis:  client,
		prefix: KeyPrefix(profile),
	}
}

func KeyPrefix(profile string) string {
	if profile == "" {
		profile = "default"
	}
	return fmt.Sprintf("eventhub:%s:", profile)
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetMany writes all entries inside one MULTI/EXEC block.
func (s *Storage) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, s.prefix+key, value, 0)
		}
		return nil
	})
	return err
}

func (s *Storage) Close() error {
	return s.redis.Close()
}
