package registry

import "tickmint/internal/domain"

// MintResult is the outcome of a successful mint: the freshly minted chunk
// and the part of the payment left over after the fee.
type MintResult struct {
	Chunk    *domain.Chunk
	Residual uint64
}

// Mint validates and applies one mint request. Checks run in a fixed order:
// tick registered, started, per-mint limit, supply cap, fee, cooldown,
// per-holder cap. The per-holder cap is evaluated on the holder's stats with
// this mint already applied; all increments are staged, so a failure at any
// point leaves total_minted, txs and the holder's stats untouched.
//
// Exactly the metadata fee is moved into the registry fee pool; the residual
// is returned to the caller. The leaderboard is updated only when the caller
// is not already listed.
func (r *Registry) Mint(tick string, amount, payment uint64, caller string) (*MintResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(caller); err != nil {
		return nil, err
	}

	st, ok := r.ticks[tick]
	if !ok {
		return nil, domain.ErrTickNotFound
	}

	now := r.clock.Now().Unix()
	if now < st.Meta.StartAt {
		return nil, domain.ErrNotStarted
	}
	if amount > st.Meta.Limit {
		return nil, domain.ErrMintLimitExceeded
	}
	// total_minted <= max is an invariant, so the subtraction cannot wrap.
	if amount > st.Meta.Max-st.TotalMinted {
		return nil, domain.ErrSupplyExceeded
	}
	if payment < st.Meta.Fee {
		return nil, domain.ErrFeeInsufficient
	}

	// Stage the holder mutation; nothing below writes live state until all
	// checks have passed.
	var staged domain.HolderInfo
	if h, ok := st.Holders[caller]; ok {
		staged = *h
	}
	if now < staged.LastMintAt+int64(st.MintCooldown) {
		return nil, domain.ErrMintTooFast
	}
	minted, ok := addChecked(staged.MintedAmount, amount)
	if !ok || minted > st.MaxMintPerUser {
		return nil, domain.ErrPerUserLimitExceeded
	}
	staged.MintedAmount = minted
	staged.LastMintAt = now
	staged.HoldAmount, _ = addChecked(staged.HoldAmount, amount)

	// Commit.
	r.feePool += st.Meta.Fee
	st.TotalMinted += amount
	st.Txs++
	_, listed := leaderboardIndex(st, caller)
	st.Holders[caller] = &staged
	if !listed {
		insertLeaderboard(st, caller, staged.MintedAmount)
	}

	seq := r.nextSeqLocked()
	chunk := r.newChunkLocked(tick, "mint", seq, 0, amount, caller)

	ev := &domain.MintEvent{
		Tick:        tick,
		Holder:      caller,
		Amount:      amount,
		Fee:         st.Meta.Fee,
		TotalMinted: st.TotalMinted,
		Txs:         st.Txs,
		ChunkID:     chunk.ID,
		MintedAt:    now,
	}
	holderCopy := staged
	chunkCopy := *chunk
	r.sink.MintCommitted(ev, st.Clone(), &holderCopy, &chunkCopy)
	r.sink.RegistryUpdated(r.recordLocked())

	result := *chunk
	return &MintResult{Chunk: &result, Residual: payment - st.Meta.Fee}, nil
}

// addChecked adds two uint64 values, reporting overflow.
func addChecked(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// mulChecked multiplies two uint64 values, reporting overflow.
func mulChecked(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/a != b {
		return 0, false
	}
	return product, true
}
