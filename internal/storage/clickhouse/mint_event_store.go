package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// MintEventStore implements storage.MintEventStore using ClickHouse.
// Mint events are append-only analytical rows; duplicates are not enforced
// because MergeTree has no unique constraint.
type MintEventStore struct {
	conn *Conn
}

// NewMintEventStore creates a new MintEventStore.
func NewMintEventStore(conn *Conn) *MintEventStore {
	return &MintEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.MintEventStore = (*MintEventStore)(nil)

// Insert appends a single mint event.
func (s *MintEventStore) Insert(ctx context.Context, ev *domain.MintEvent) error {
	if ev == nil || ev.Tick == "" {
		return storage.ErrInvalidInput
	}
	return s.InsertBulk(ctx, []*domain.MintEvent{ev})
}

// InsertBulk appends multiple mint events in one batch.
func (s *MintEventStore) InsertBulk(ctx context.Context, events []*domain.MintEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO mint_events (
			tick, holder, amount, fee, total_minted, txs, chunk_id, minted_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, ev := range events {
		err = batch.Append(
			ev.Tick, ev.Holder, ev.Amount, ev.Fee,
			ev.TotalMinted, ev.Txs, ev.ChunkID, ev.MintedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// ListByTick retrieves the most recent mint events for a tick, newest first.
// A limit of zero or less returns all events for the tick.
func (s *MintEventStore) ListByTick(ctx context.Context, tick string, limit int) ([]*domain.MintEvent, error) {
	query := `
		SELECT tick, holder, amount, fee, total_minted, txs, chunk_id, minted_at
		FROM mint_events
		WHERE tick = ?
		ORDER BY minted_at DESC, txs DESC
	`
	args := []any{tick}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, uint64(limit))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mint events by tick: %w", err)
	}
	defer rows.Close()

	return scanMintEvents(rows)
}

// scanMintEvents scans multiple rows.
func scanMintEvents(rows driver.Rows) ([]*domain.MintEvent, error) {
	var events []*domain.MintEvent

	for rows.Next() {
		var ev domain.MintEvent

		err := rows.Scan(
			&ev.Tick, &ev.Holder, &ev.Amount, &ev.Fee,
			&ev.TotalMinted, &ev.Txs, &ev.ChunkID, &ev.MintedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mint event row: %w", err)
		}

		events = append(events, &ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mint event rows: %w", err)
	}

	return events, nil
}
