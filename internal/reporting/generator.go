package reporting

import (
	"context"
	"errors"
	"time"

	"tickmint/internal/domain"
	"tickmint/internal/storage"
)

// Generator produces reports from stored registry state.
type Generator struct {
	registryStore storage.RegistryStore
	tickStore     storage.TickStore
	holderStore   storage.HolderStore
	chunkStore    storage.ChunkStore
	mintEvents    storage.MintEventStore // optional, nil disables RecentMints
	mintLimit     int
	now           func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator. mintEvents may be nil when no
// analytics store is available; the report then omits recent mints.
func NewGenerator(
	registryStore storage.RegistryStore,
	tickStore storage.TickStore,
	holderStore storage.HolderStore,
	chunkStore storage.ChunkStore,
	mintEvents storage.MintEventStore,
) *Generator {
	return &Generator{
		registryStore: registryStore,
		tickStore:     tickStore,
		holderStore:   holderStore,
		chunkStore:    chunkStore,
		mintEvents:    mintEvents,
		mintLimit:     20,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithMintLimit sets how many recent mints per tick the report includes.
func (g *Generator) WithMintLimit(limit int) *Generator {
	g.mintLimit = limit
	return g
}

// Generate produces a complete registry report.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	summary, err := g.generateSummary(ctx)
	if err != nil {
		return nil, err
	}

	ticks, err := g.tickStore.List(ctx)
	if err != nil {
		return nil, err
	}
	summary.TickCount = len(ticks)

	metrics := make([]TickMetricRow, 0, len(ticks))
	leaderboards := make([]LeaderboardSection, 0, len(ticks))
	var recentMints []*domain.MintEvent

	for _, state := range ticks {
		holders, err := g.holderStore.ListByTick(ctx, state.Meta.Tick)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, tickMetricRow(state, len(holders)))

		if len(state.Leaderboard) > 0 {
			leaderboards = append(leaderboards, leaderboardSection(state, holders))
		}

		if g.mintEvents != nil {
			events, err := g.mintEvents.ListByTick(ctx, state.Meta.Tick, g.mintLimit)
			if err != nil {
				return nil, err
			}
			recentMints = append(recentMints, events...)
		}
	}

	return &Report{
		GeneratedAt:  g.now(),
		Registry:     *summary,
		TickMetrics:  metrics,
		Leaderboards: leaderboards,
		RecentMints:  recentMints,
	}, nil
}

// generateSummary loads the registry record and counts live chunks. A
// missing record means a fresh registry; that is not an error.
func (g *Generator) generateSummary(ctx context.Context) (*RegistrySummary, error) {
	summary := &RegistrySummary{}

	record, err := g.registryStore.Get(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		summary.Paused = record.Paused
		summary.Version = record.Version
		summary.FeePool = record.FeePool
	}

	chunks, err := g.chunkStore.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	summary.LiveChunks = len(chunks)

	return summary, nil
}

func tickMetricRow(state *domain.TickState, holders int) TickMetricRow {
	row := TickMetricRow{
		Tick:           state.Meta.Tick,
		MaxSupply:      state.Meta.Max,
		TotalMinted:    state.TotalMinted,
		MintLimit:      state.Meta.Limit,
		Fee:            state.Meta.Fee,
		Txs:            state.Txs,
		Holders:        holders,
		EnableToCoin:   state.EnableToCoin,
		MintCooldown:   state.MintCooldown,
		MaxMintPerUser: state.MaxMintPerUser,
	}
	if state.Meta.Max > 0 {
		row.MintedPct = float64(state.TotalMinted) / float64(state.Meta.Max) * 100
	}
	return row
}

// leaderboardSection resolves leaderboard addresses against the holder map.
// Addresses without a holder record keep a zero amount rather than being
// dropped, preserving the stored ranking order.
func leaderboardSection(state *domain.TickState, holders map[string]*domain.HolderInfo) LeaderboardSection {
	entries := make([]domain.LeaderboardEntry, 0, len(state.Leaderboard))
	for _, addr := range state.Leaderboard {
		entry := domain.LeaderboardEntry{Address: addr}
		if h, ok := holders[addr]; ok {
			entry.MintedAmount = h.MintedAmount
		}
		entries = append(entries, entry)
	}
	return LeaderboardSection{Tick: state.Meta.Tick, Entries: entries}
}
