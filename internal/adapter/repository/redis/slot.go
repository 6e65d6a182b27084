package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/pocketledger/internal/adapter/repository"
)

// Slot implements repository.Slot using Redis strings.
type Slot struct {
	client *redis.Client
	prefix string
}

// NewSlot creates a new Slot.
func NewSlot(client *redis.Client) *Slot {
	return &Slot{
		client: client,
		prefix: "slot:",
	}
}

// Get retrieves a value by key.
func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value without expiry.
func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}
