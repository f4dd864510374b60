// Package redis implements ports.SessionStore on Redis. One key per
// subscriber; Redis serializes commands per key, which satisfies the
// engine's one-in-flight-turn-per-subscriber requirement as long as the
// carrier does not retry concurrently.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/akwaba/ussdflow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for idle sessions. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
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
		prefix: "ussdflow:session:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(subscriberID string) string {
	return s.prefix + subscriberID
}

// Get retrieves the session for a subscriber.
func (s *Store) Get(ctx context.Context, subscriberID string) (*domain.State, error) {
	val, err := s.client.Get(ctx, s.key(subscriberID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

// Put upserts the session, recording the latest carrier session id.
func (s *Store) Put(ctx context.Context, subscriberID, carrierSessionID string, state *domain.State) error {
	state.CarrierSessionID = carrierSessionID

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(subscriberID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, subscriberID string) error {
	if err := s.client.Del(ctx, s.key(subscriberID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

// List returns the subscriber ids with an active session by scanning keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		for _, key := range keys {
			ids = append(ids, key[len(s.prefix):])
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
