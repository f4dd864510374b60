package ports

import (
	"context"

	"github.com/akwaba/ussdflow/pkg/domain"
)

// SessionStore persists session state between carrier turns, keyed by
// subscriber id (one record per subscriber, never per carrier session).
//
// Implementations must serialize concurrent access per subscriber: the
// engine's history and pagination bookkeeping is not safe under interleaved
// writes to the same record.
type SessionStore interface {
	// Get retrieves the session for a subscriber.
	// Returns domain.ErrSessionNotFound if none exists.
	Get(ctx context.Context, subscriberID string) (*domain.State, error)

	// Put upserts the session and records the latest carrier session id,
	// which may change across turns of one dialog.
	Put(ctx context.Context, subscriberID, carrierSessionID string, state *domain.State) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, subscriberID string) error
}
