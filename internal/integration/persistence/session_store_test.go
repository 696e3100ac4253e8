package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
)

func newStoreClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func sampleSnapshot() *entity.SessionSnapshot {
	return &entity.SessionSnapshot{
		ID:        uuid.New(),
		CreatedAt: time.Date(2024, time.September, 11, 10, 0, 0, 0, time.UTC),
		Sales: []entity.Sale{{
			ID:            "venta-1",
			IssueDate:     time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC),
			CustomerName:  "AGRO SUR SA",
			CustomerTaxID: "30111222333",
			TotalAmount:   decimal.RequireFromString("100000"),
		}},
		MatchedSaleIDs: []string{"venta-1"},
	}
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save and load round trip", func(t *testing.T) {
		_, client := newStoreClient(t)
		store := NewRedisSessionStore(client, time.Hour)
		snapshot := sampleSnapshot()

		if err := store.Save(ctx, snapshot); err != nil {
			t.Fatalf("save: %v", err)
		}
		loaded, err := store.Load(ctx, snapshot.ID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if loaded.ID != snapshot.ID {
			t.Errorf("loaded ID %s, want %s", loaded.ID, snapshot.ID)
		}
		if len(loaded.Sales) != 1 || loaded.Sales[0].ID != "venta-1" {
			t.Errorf("ledger records lost in round trip: %+v", loaded.Sales)
		}
		if !loaded.Sales[0].TotalAmount.Equal(snapshot.Sales[0].TotalAmount) {
			t.Errorf("amount drifted: %s", loaded.Sales[0].TotalAmount)
		}
		if len(loaded.MatchedSaleIDs) != 1 || loaded.MatchedSaleIDs[0] != "venta-1" {
			t.Errorf("consumed set lost: %v", loaded.MatchedSaleIDs)
		}
	})

	t.Run("load of an unknown session reports not found", func(t *testing.T) {
		_, client := newStoreClient(t)
		store := NewRedisSessionStore(client, time.Hour)

		_, err := store.Load(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("snapshots expire with the configured TTL", func(t *testing.T) {
		mr, client := newStoreClient(t)
		store := NewRedisSessionStore(client, time.Minute)
		snapshot := sampleSnapshot()

		if err := store.Save(ctx, snapshot); err != nil {
			t.Fatalf("save: %v", err)
		}
		mr.FastForward(2 * time.Minute)

		if _, err := store.Load(ctx, snapshot.ID); !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Fatalf("expected expiry to surface as not found, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		_, client := newStoreClient(t)
		store := NewRedisSessionStore(client, 0)
		snapshot := sampleSnapshot()

		if err := store.Save(ctx, snapshot); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Delete(ctx, snapshot.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := store.Delete(ctx, snapshot.ID); err != nil {
			t.Fatalf("second delete: %v", err)
		}
		if _, err := store.Load(ctx, snapshot.ID); !errors.Is(err, domainerror.ErrSessionNotFound) {
			t.Fatalf("expected not found after delete, got %v", err)
		}
	})
}
