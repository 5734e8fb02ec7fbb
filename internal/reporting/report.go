package reporting

import (
	"time"

	"tickmint/internal/domain"
)

// Report is a point-in-time summary of the registry: global counters,
// per-tick supply metrics, leaderboards, and recent mint activity.
type Report struct {
	GeneratedAt time.Time

	Registry RegistrySummary

	// Per-tick metrics, sorted by tick.
	TickMetrics []TickMetricRow

	// Leaderboards for every tick that has one, sorted by tick.
	Leaderboards []LeaderboardSection

	// Most recent mints, newest first. Empty when no analytics store
	// is available.
	RecentMints []*domain.MintEvent
}

// RegistrySummary contains the global registry counters.
type RegistrySummary struct {
	Paused     bool
	Version    uint64
	FeePool    uint64
	TickCount  int
	LiveChunks int
}

// TickMetricRow represents one row in the tick metrics table.
type TickMetricRow struct {
	Tick           string
	MaxSupply      uint64
	TotalMinted    uint64
	MintedPct      float64 // TotalMinted / MaxSupply * 100
	MintLimit      uint64
	Fee            uint64
	Txs            uint64
	Holders        int
	EnableToCoin   bool
	MintCooldown   uint64
	MaxMintPerUser uint64
}

// LeaderboardSection holds one tick's leaderboard.
type LeaderboardSection struct {
	Tick    string
	Entries []domain.LeaderboardEntry
}
