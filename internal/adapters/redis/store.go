// Package redis implements ports.RunStore and ports.DistributedLocker on
// Redis, for sweeps whose ledger is shared between hosts (e.g. the same grid
// split across machines, one device list per host).
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voxfield/nsweep/pkg/domain"
	"github.com/voxfield/nsweep/pkg/ports"

	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.RunStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*Store)

// WithTTL sets the expiration for stored sweeps. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sweeps.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store from connection parameters.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "nsweep:sweep:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

var _ ports.RunStore = (*Store)(nil)

func (s *Store) key(sweepID string) string {
	return s.prefix + sweepID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the sweep state and registers it in the index ZSET.
func (s *Store) Save(ctx context.Context, sweepID string, state *domain.SweepState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal sweep state: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sweepID), data, s.ttl)

	// Index score = expiration time, far-future when no TTL is set.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sweepID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the sweep state.
func (s *Store) Load(ctx context.Context, sweepID string) (*domain.SweepState, error) {
	val, err := s.client.Get(ctx, s.key(sweepID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSweepNotFound
		}
		return nil, fmt.Errorf("failed to load from redis: %w", err)
	}

	var state domain.SweepState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sweep state: %w", err)
	}
	return &state, nil
}

// Delete removes the sweep state and its index entry.
func (s *Store) Delete(ctx context.Context, sweepID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sweepID))
	pipe.ZRem(ctx, s.indexKey(), sweepID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the IDs of all sweeps whose index entry has not expired.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	ids, err := s.client.ZRangeByScore(ctx, s.indexKey(), &backend.ZRangeBy{
		Min: now,
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sweeps: %w", err)
	}
	return ids, nil
}
