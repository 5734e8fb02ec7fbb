package domain

// RegistryRecord is the persisted process-wide registry state.
// Corresponds to the singleton registry table row in PostgreSQL.
type RegistryRecord struct {
	Paused   bool
	Version  uint64
	FeePool  uint64 // accumulated mint fees, fee-currency units
	ChunkSeq uint64 // next chunk sequence number
}

// MintSnapshot is a point-in-time view of one tick and one holder's stats.
// Published on the event hub; never mutates ledger state.
type MintSnapshot struct {
	Tick           string `json:"tick"`
	Max            uint64 `json:"max"`
	Limit          uint64 `json:"limit"`
	Decimals       uint8  `json:"decimals"`
	Fee            uint64 `json:"fee"`
	StartAt        int64  `json:"start_at"`
	EnableToCoin   bool   `json:"enable_to_coin"`
	TotalMinted    uint64 `json:"total_minted"`
	Txs            uint64 `json:"txs"`
	MintCooldown   uint64 `json:"mint_cd"`
	MaxMintPerUser uint64 `json:"max_mint_per_user"`

	Holder       string `json:"holder,omitempty"`
	MintedAmount uint64 `json:"minted_amount"`
	HoldAmount   uint64 `json:"hold_amount"`
	LastMintAt   int64  `json:"last_mint_at"`

	TakenAt int64 `json:"taken_at"`
}

// LeaderboardEntry is one holder on a leaderboard snapshot with their
// lifetime minted amount at snapshot time.
type LeaderboardEntry struct {
	Address      string `json:"address"`
	MintedAmount uint64 `json:"minted_amount"`
}

// LeaderboardSnapshot is a point-in-time view of a tick's leaderboard.
type LeaderboardSnapshot struct {
	Tick    string             `json:"tick"`
	Entries []LeaderboardEntry `json:"entries"`
	TakenAt int64              `json:"taken_at"`
}

// MintEvent is the analytics record written after every successful mint.
// Corresponds to the mint_events table in ClickHouse.
type MintEvent struct {
	Tick        string
	Holder      string
	Amount      uint64
	Fee         uint64
	TotalMinted uint64 // tick total after this mint
	Txs         uint64 // tick tx counter after this mint
	ChunkID     string
	MintedAt    int64 // unix seconds
}
