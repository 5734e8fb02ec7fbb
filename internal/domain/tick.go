package domain

// TickLength is the exact length of a tick identifier.
const TickLength = 4

// LeaderboardCap is the maximum number of holders on a tick's leaderboard.
const LeaderboardCap = 20

// TickMetadata is the immutable configuration of one deployed tick.
type TickMetadata struct {
	Tick     string // 4 characters, each in [a-z0-9]
	Max      uint64 // max total supply
	Limit    uint64 // per-mint limit
	Decimals uint8
	Fee      uint64 // mint fee in fee-currency units
	StartAt  int64  // effective activation time (unix seconds)
}

// TickState is the mutable per-tick ledger state.
type TickState struct {
	Meta           TickMetadata
	EnableToCoin   bool // reserved integration toggle
	TotalMinted    uint64
	Txs            uint64
	Holders        map[string]*HolderInfo
	Leaderboard    []string // holder addresses, len <= LeaderboardCap
	MintCooldown   uint64   // seconds between mints per holder
	MaxMintPerUser uint64
}

// HolderInfo tracks per-(tick, holder) mint statistics. HoldAmount is the
// lifetime minted amount and is never decremented on transfer.
type HolderInfo struct {
	MintedAmount uint64
	LastMintAt   int64 // unix seconds of last successful mint
	HoldAmount   uint64
}

// ValidateTick checks the tick format: exactly TickLength characters,
// each in [a-z0-9]. Returns ErrInvalidTickFormat otherwise.
func ValidateTick(tick string) error {
	if len(tick) != TickLength {
		return ErrInvalidTickFormat
	}
	for i := 0; i < len(tick); i++ {
		c := tick[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ErrInvalidTickFormat
		}
	}
	return nil
}

// Clone returns a deep copy of the tick state.
func (st *TickState) Clone() *TickState {
	cp := *st
	cp.Holders = make(map[string]*HolderInfo, len(st.Holders))
	for addr, h := range st.Holders {
		hc := *h
		cp.Holders[addr] = &hc
	}
	cp.Leaderboard = append([]string(nil), st.Leaderboard...)
	return &cp
}
