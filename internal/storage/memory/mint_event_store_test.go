package memory

import (
	"context"
	"errors"
	"testing"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

func TestMintEventStore_InsertAndList(t *testing.T) {
	store := NewMintEventStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ev := &domain.MintEvent{
			Tick:        "abcd",
			Holder:      "addr1",
			Amount:      uint64(i * 10),
			Fee:         5,
			TotalMinted: uint64(i * 10),
			Txs:         uint64(i),
			ChunkID:     "chunk" + string(rune('0'+i)),
			MintedAt:    int64(1700000000 + i),
		}
		if err := store.Insert(ctx, ev); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.ListByTick(ctx, "abcd", 0)
	if err != nil {
		t.Fatalf("ListByTick failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(result))
	}

	// Newest first
	if result[0].Txs != 3 || result[2].Txs != 1 {
		t.Errorf("Expected newest-first ordering, got txs %d..%d", result[0].Txs, result[2].Txs)
	}
}

func TestMintEventStore_Limit(t *testing.T) {
	store := NewMintEventStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		ev := &domain.MintEvent{Tick: "abcd", Holder: "addr1", Amount: 10, Txs: uint64(i)}
		if err := store.Insert(ctx, ev); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	result, err := store.ListByTick(ctx, "abcd", 2)
	if err != nil {
		t.Fatalf("ListByTick failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(result))
	}
	if result[0].Txs != 5 || result[1].Txs != 4 {
		t.Errorf("Expected two newest events, got txs %d, %d", result[0].Txs, result[1].Txs)
	}
}

func TestMintEventStore_FiltersByTick(t *testing.T) {
	store := NewMintEventStore()
	ctx := context.Background()

	if err := store.Insert(ctx, &domain.MintEvent{Tick: "abcd", Holder: "addr1", Amount: 10}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, &domain.MintEvent{Tick: "efgh", Holder: "addr1", Amount: 20}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.ListByTick(ctx, "efgh", 0)
	if err != nil {
		t.Fatalf("ListByTick failed: %v", err)
	}
	if len(result) != 1 || result[0].Amount != 20 {
		t.Errorf("Expected single efgh event, got %+v", result)
	}
}

func TestMintEventStore_InvalidInput(t *testing.T) {
	store := NewMintEventStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}
	if err := store.Insert(ctx, &domain.MintEvent{Tick: ""}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty tick, got %v", err)
	}
}
