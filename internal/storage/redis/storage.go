// Package redis is the redis-backed Storage implementation, for deployments
// where the bank must survive restarts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/storage"
)

type Storage struct {
	client *redis.Client
}

var _ storage.Storage = (*Storage)(nil)

// New connects to the redis at the given URL and verifies the connection
// before returning.
func New(ctx context.Context, url string) (*Storage, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client. Used by tests with miniredis.
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) LoadBank(ctx context.Context) (map[model.PlayerID]model.BankRecord, error) {
	fields, err := s.client.HGetAll(ctx, bankKey).Result()
	if err != nil {
		return nil, fmt.Errorf("loading bank: %w", err)
	}

	bank := make(map[model.PlayerID]model.BankRecord, len(fields))
	for field, raw := range fields {
		var rec model.BankRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decoding bank record for %q: %w", field, err)
		}
		bank[model.PlayerID(field)] = rec
	}
	return bank, nil
}

func (s *Storage) UpsertRecords(ctx context.Context, records map[model.PlayerID]model.BankRecord) error {
	if len(records) == 0 {
		return nil
	}

	pairs := make([]any, 0, len(records)*2)
	for id, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding bank record for %q: %w", id, err)
		}
		pairs = append(pairs, bankField(id), string(data))
	}
	if err := s.client.HSet(ctx, bankKey, pairs...).Err(); err != nil {
		return fmt.Errorf("writing bank records: %w", err)
	}
	return nil
}

func (s *Storage) ClearBank(ctx context.Context) error {
	if err := s.client.Del(ctx, bankKey).Err(); err != nil {
		return fmt.Errorf("clearing bank: %w", err)
	}
	return nil
}
