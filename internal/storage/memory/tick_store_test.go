package memory

import (
	"context"
	"errors"
	"testing"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

func newTickState(tick string) *domain.TickState {
	return &domain.TickState{
		Meta: domain.TickMetadata{
			Tick:     tick,
			Max:      21000000,
			Limit:    1000,
			Decimals: 8,
			Fee:      10,
			StartAt:  1700000000,
		},
		Holders:        make(map[string]*domain.HolderInfo),
		MaxMintPerUser: 5000,
	}
}

func TestTickStore_UpsertAndGet(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	st := newTickState("abcd")
	st.TotalMinted = 42
	st.Txs = 3

	if err := store.Upsert(ctx, st); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := store.Get(ctx, "abcd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if result.Meta.Max != 21000000 {
		t.Errorf("Max mismatch: got %d, want 21000000", result.Meta.Max)
	}
	if result.TotalMinted != 42 || result.Txs != 3 {
		t.Errorf("Counters mismatch: got minted=%d txs=%d", result.TotalMinted, result.Txs)
	}
}

func TestTickStore_UpsertOverwrites(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	st := newTickState("abcd")
	if err := store.Upsert(ctx, st); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	st.TotalMinted = 100
	if err := store.Upsert(ctx, st); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	result, err := store.Get(ctx, "abcd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.TotalMinted != 100 {
		t.Errorf("Expected updated TotalMinted 100, got %d", result.TotalMinted)
	}
}

func TestTickStore_HoldersNotStored(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	st := newTickState("abcd")
	st.Holders["addr1"] = &domain.HolderInfo{MintedAmount: 50}

	if err := store.Upsert(ctx, st); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := store.Get(ctx, "abcd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(result.Holders) != 0 {
		t.Errorf("Holders should be persisted separately, got %d entries", len(result.Holders))
	}
}

func TestTickStore_NotFound(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestTickStore_InvalidInput(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Upsert(ctx, &domain.TickState{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty tick, got %v", err)
	}
}

func TestTickStore_List(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	for _, tick := range []string{"abcd", "efgh", "ijk1"} {
		if err := store.Upsert(ctx, newTickState(tick)); err != nil {
			t.Fatalf("Upsert %s failed: %v", tick, err)
		}
	}

	result, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result) != 3 {
		t.Errorf("Expected 3 ticks, got %d", len(result))
	}
}

func TestTickStore_ReturnsCopy(t *testing.T) {
	store := NewTickStore()
	ctx := context.Background()

	st := newTickState("abcd")
	st.Leaderboard = []string{"addr1"}
	if err := store.Upsert(ctx, st); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, _ := store.Get(ctx, "abcd")
	result.Meta.Max = 1
	result.Leaderboard[0] = "mutated"

	again, _ := store.Get(ctx, "abcd")
	if again.Meta.Max != 21000000 {
		t.Error("Store should return copy, not reference")
	}
	if again.Leaderboard[0] != "addr1" {
		t.Error("Leaderboard slice should be copied")
	}
}
