// Package portstest provides reusable contract suites for ports
// implementations.
package portstest

import (
	"context"
	"errors"
	"testing"

	"github.com/akwaba/ussdflow/pkg/domain"
	"github.com/akwaba/ussdflow/pkg/ports"
)

// RunSessionStoreContract verifies that a store honors the SessionStore
// semantics: not-found sentinel, upsert with carrier session id tracking,
// isolation of returned records, and idempotent delete.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "233200000001")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Put_Get_Roundtrip", func(t *testing.T) {
		state := domain.NewState("233200000002")
		state.CurrentMenuID = "welcome"
		state.PushHistory("welcome")
		state.Responses.Push("welcome", "1")

		if err := store.Put(ctx, "233200000002", "carrier-1", state); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		got, err := store.Get(ctx, "233200000002")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.CurrentMenuID != "welcome" {
			t.Errorf("expected current menu 'welcome', got %q", got.CurrentMenuID)
		}
		if got.CarrierSessionID != "carrier-1" {
			t.Errorf("expected carrier session 'carrier-1', got %q", got.CarrierSessionID)
		}
		if len(got.BackHistory) != 1 || got.BackHistory[0] != "welcome" {
			t.Errorf("back history not preserved: %v", got.BackHistory)
		}
		if len(got.Responses["welcome"]) != 1 {
			t.Errorf("responses not preserved: %v", got.Responses)
		}
	})

	t.Run("Put_Upsert_UpdatesCarrierSession", func(t *testing.T) {
		state := domain.NewState("233200000003")
		state.CurrentMenuID = "balance"

		if err := store.Put(ctx, "233200000003", "first", state); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := store.Put(ctx, "233200000003", "second", state); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}

		got, err := store.Get(ctx, "233200000003")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.CarrierSessionID != "second" {
			t.Errorf("expected latest carrier session 'second', got %q", got.CarrierSessionID)
		}
	})

	t.Run("Get_ReturnsIsolatedCopy", func(t *testing.T) {
		state := domain.NewState("233200000004")
		state.CurrentMenuID = "welcome"
		if err := store.Put(ctx, "233200000004", "c", state); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		first, err := store.Get(ctx, "233200000004")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		first.CurrentMenuID = "mutated"
		first.Responses.Push("welcome", "9")

		second, err := store.Get(ctx, "233200000004")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if second.CurrentMenuID != "welcome" {
			t.Errorf("stored record mutated through returned pointer: %q", second.CurrentMenuID)
		}
		if len(second.Responses["welcome"]) != 0 {
			t.Errorf("stored responses mutated through returned pointer: %v", second.Responses)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		state := domain.NewState("233200000005")
		if err := store.Put(ctx, "233200000005", "c", state); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := store.Delete(ctx, "233200000005"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "233200000005"); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
		}

		// Deleting again must not fail.
		if err := store.Delete(ctx, "233200000005"); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
	})
}
