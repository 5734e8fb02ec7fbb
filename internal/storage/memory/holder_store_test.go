package memory

import (
	"context"
	"errors"
	"testing"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

func TestHolderStore_UpsertAndGet(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	h := &domain.HolderInfo{MintedAmount: 500, LastMintAt: 1700000000, HoldAmount: 500}
	if err := store.Upsert(ctx, "abcd", "addr1", h); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := store.Get(ctx, "abcd", "addr1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.MintedAmount != 500 || result.LastMintAt != 1700000000 {
		t.Errorf("Unexpected holder: %+v", result)
	}
}

func TestHolderStore_UpsertOverwrites(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "abcd", "addr1", &domain.HolderInfo{MintedAmount: 100}); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "abcd", "addr1", &domain.HolderInfo{MintedAmount: 250}); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	result, err := store.Get(ctx, "abcd", "addr1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if result.MintedAmount != 250 {
		t.Errorf("Expected MintedAmount 250, got %d", result.MintedAmount)
	}
}

func TestHolderStore_NotFound(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "abcd", "addr1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown tick, got %v", err)
	}

	if err := store.Upsert(ctx, "abcd", "addr1", &domain.HolderInfo{MintedAmount: 1}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := store.Get(ctx, "abcd", "addr2"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown address, got %v", err)
	}
}

func TestHolderStore_InvalidInput(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "", "addr1", &domain.HolderInfo{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty tick, got %v", err)
	}
	if err := store.Upsert(ctx, "abcd", "", &domain.HolderInfo{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty address, got %v", err)
	}
	if err := store.Upsert(ctx, "abcd", "addr1", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil holder, got %v", err)
	}
}

func TestHolderStore_ListByTick(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, "abcd", "addr1", &domain.HolderInfo{MintedAmount: 10}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "abcd", "addr2", &domain.HolderInfo{MintedAmount: 20}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "efgh", "addr1", &domain.HolderInfo{MintedAmount: 30}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := store.ListByTick(ctx, "abcd")
	if err != nil {
		t.Fatalf("ListByTick failed: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("Expected 2 holders, got %d", len(result))
	}
	if result["addr2"].MintedAmount != 20 {
		t.Errorf("Expected addr2 minted 20, got %d", result["addr2"].MintedAmount)
	}

	empty, err := store.ListByTick(ctx, "none")
	if err != nil {
		t.Fatalf("ListByTick for unknown tick failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty map, got %d entries", len(empty))
	}
}

func TestHolderStore_ReturnsCopy(t *testing.T) {
	store := NewHolderStore()
	ctx := context.Background()

	h := &domain.HolderInfo{MintedAmount: 500}
	if err := store.Upsert(ctx, "abcd", "addr1", h); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	h.MintedAmount = 1

	result, _ := store.Get(ctx, "abcd", "addr1")
	if result.MintedAmount != 500 {
		t.Error("Store should return copy, not reference")
	}
}
