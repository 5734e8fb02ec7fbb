package registry

import "tickmint/internal/domain"

// MintSnapshot assembles a point-in-time view of a tick and, when holder is
// non-empty, that holder's stats. The snapshot is published on the
// notification channel and returned; ledger state is not mutated.
func (r *Registry) MintSnapshot(tick, holder string) (*domain.MintSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.ticks[tick]
	if !ok {
		return nil, domain.ErrTickNotFound
	}

	s := &domain.MintSnapshot{
		Tick:           st.Meta.Tick,
		Max:            st.Meta.Max,
		Limit:          st.Meta.Limit,
		Decimals:       st.Meta.Decimals,
		Fee:            st.Meta.Fee,
		StartAt:        st.Meta.StartAt,
		EnableToCoin:   st.EnableToCoin,
		TotalMinted:    st.TotalMinted,
		Txs:            st.Txs,
		MintCooldown:   st.MintCooldown,
		MaxMintPerUser: st.MaxMintPerUser,
		TakenAt:        r.clock.Now().Unix(),
	}
	if holder != "" {
		s.Holder = holder
		if h, ok := st.Holders[holder]; ok {
			s.MintedAmount = h.MintedAmount
			s.HoldAmount = h.HoldAmount
			s.LastMintAt = h.LastMintAt
		}
	}

	r.publisher.PublishMintSnapshot(s)
	return s, nil
}

// LeaderboardSnapshot assembles the tick's leaderboard with each member's
// current minted amount. A non-nil holders list overrides the board and
// snapshots those addresses instead. Published and returned without mutating
// ledger state.
func (r *Registry) LeaderboardSnapshot(tick string, holders []string) (*domain.LeaderboardSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.ticks[tick]
	if !ok {
		return nil, domain.ErrTickNotFound
	}

	members := st.Leaderboard
	if holders != nil {
		members = holders
	}

	s := &domain.LeaderboardSnapshot{
		Tick:    tick,
		Entries: make([]domain.LeaderboardEntry, 0, len(members)),
		TakenAt: r.clock.Now().Unix(),
	}
	for _, addr := range members {
		entry := domain.LeaderboardEntry{Address: addr}
		if h, ok := st.Holders[addr]; ok {
			entry.MintedAmount = h.MintedAmount
		}
		s.Entries = append(s.Entries, entry)
	}

	r.publisher.PublishLeaderboardSnapshot(s)
	return s, nil
}
