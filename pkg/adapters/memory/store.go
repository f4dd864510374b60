// Package memory implements ports.SessionStore in process memory. It is the
// default store for tests and the simulate CLI.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// Store keeps sessions in a map guarded by a mutex. The per-subscriber
// serialization the engine requires falls out of the single lock.
type Store struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get retrieves the session for a subscriber.
func (s *Store) Get(ctx context.Context, subscriberID string) (*domain.State, error) {
	s.mu.Lock()
	raw, ok := s.data[subscriberID]
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &state, nil
}

// Put upserts the session. Serializing on write doubles as a deep copy, so
// callers cannot mutate stored records through retained pointers.
func (s *Store) Put(ctx context.Context, subscriberID, carrierSessionID string, state *domain.State) error {
	state.CarrierSessionID = carrierSessionID

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	s.mu.Lock()
	s.data[subscriberID] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, subscriberID string) error {
	s.mu.Lock()
	delete(s.data, subscriberID)
	s.mu.Unlock()
	return nil
}

// List returns the subscriber ids with an active session.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
