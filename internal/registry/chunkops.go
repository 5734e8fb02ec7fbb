package registry

import "tickmint/internal/domain"

// TransferResult is the outcome of a transfer: the chunk created for the
// recipient and, when the inputs exceeded the requested amount, the change
// chunk returned to the caller.
type TransferResult struct {
	Sent   *domain.Chunk
	Change *domain.Chunk // nil when inputs summed exactly to amount
}

// MergeResult is the outcome of a merge.
type MergeResult struct {
	Chunk *domain.Chunk
	Total uint64
}

// MergeV2Result is the outcome of a merge-with-split: one chunk of exactly
// the requested amount and one change chunk (possibly zero-amount).
type MergeV2Result struct {
	Target    *domain.Chunk
	Change    *domain.Chunk
	Total     uint64
	Remainder uint64
}

// collectLocked resolves input chunk ids for a chunk-algebra operation:
// every chunk must be live, owned by caller, and belong to tick. The same id
// may not appear twice; a repeat reads as consuming an already-destroyed
// chunk. Returns the chunks and their overflow-checked sum.
// Callers must hold r.mu.
func (r *Registry) collectLocked(tick string, ids []string, caller string) ([]*domain.Chunk, uint64, error) {
	seen := make(map[string]struct{}, len(ids))
	chunks := make([]*domain.Chunk, 0, len(ids))
	var sum uint64
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, 0, domain.ErrChunkNotFound
		}
		seen[id] = struct{}{}

		c, ok := r.chunks[id]
		if !ok {
			return nil, 0, domain.ErrChunkNotFound
		}
		if c.Owner != caller {
			return nil, 0, domain.ErrChunkNotOwned
		}
		if c.Tick != tick {
			return nil, 0, domain.ErrTickMismatch
		}

		next, ok := addChecked(sum, c.Amount)
		if !ok {
			return nil, 0, domain.ErrInvalidAmount
		}
		sum = next
		chunks = append(chunks, c)
	}
	return chunks, sum, nil
}

// destroyLocked removes consumed chunks and returns their ids.
func (r *Registry) destroyLocked(chunks []*domain.Chunk) []string {
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID
		delete(r.chunks, c.ID)
	}
	return ids
}

// Transfer consumes the caller's input chunks and moves amount to the
// recipient. When the inputs sum to more than amount, the remainder comes
// back to the caller as a change chunk. Conservation: sum(inputs) == amount
// + change.
func (r *Registry) Transfer(tick string, chunkIDs []string, to string, amount uint64, caller string) (*TransferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if _, ok := r.ticks[tick]; !ok {
		return nil, domain.ErrTickNotFound
	}
	if err := domain.ValidateAddress(to); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	inputs, sum, err := r.collectLocked(tick, chunkIDs, caller)
	if err != nil {
		return nil, err
	}
	if sum < amount {
		return nil, domain.ErrInsufficientBalance
	}

	destroyed := r.destroyLocked(inputs)
	seq := r.nextSeqLocked()
	sent := r.newChunkLocked(tick, "transfer", seq, 0, amount, to)

	created := []*domain.Chunk{sent}
	var change *domain.Chunk
	if sum > amount {
		change = r.newChunkLocked(tick, "transfer", seq, 1, sum-amount, caller)
		created = append(created, change)
	}

	r.sink.ChunksReplaced(tick, destroyed, cloneChunks(created))
	r.sink.RegistryUpdated(r.recordLocked())

	res := &TransferResult{Sent: cloneChunk(sent)}
	if change != nil {
		res.Change = cloneChunk(change)
	}
	return res, nil
}

// BatchTransfer consumes exactly one chunk and fans it out evenly: the chunk
// amount must equal amountEach times the number of receivers, with no
// remainder permitted.
func (r *Registry) BatchTransfer(chunkID string, receivers []string, amountEach uint64, caller string) ([]*domain.Chunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if amountEach == 0 {
		return nil, domain.ErrInvalidAmount
	}
	for _, recv := range receivers {
		if err := domain.ValidateAddress(recv); err != nil {
			return nil, err
		}
	}

	c, ok := r.chunks[chunkID]
	if !ok {
		return nil, domain.ErrChunkNotFound
	}
	if c.Owner != caller {
		return nil, domain.ErrChunkNotOwned
	}

	need, ok := mulChecked(amountEach, uint64(len(receivers)))
	if !ok || c.Amount != need {
		return nil, domain.ErrInvalidAmount
	}

	tick := c.Tick
	destroyed := r.destroyLocked([]*domain.Chunk{c})
	seq := r.nextSeqLocked()
	created := make([]*domain.Chunk, len(receivers))
	for i, recv := range receivers {
		created[i] = r.newChunkLocked(tick, "batch_transfer", seq, i, amountEach, recv)
	}

	r.sink.ChunksReplaced(tick, destroyed, cloneChunks(created))
	r.sink.RegistryUpdated(r.recordLocked())
	return cloneChunks(created), nil
}

// Merge consumes the caller's input chunks and combines them into one.
func (r *Registry) Merge(tick string, chunkIDs []string, caller string) (*MergeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if _, ok := r.ticks[tick]; !ok {
		return nil, domain.ErrTickNotFound
	}

	inputs, sum, err := r.collectLocked(tick, chunkIDs, caller)
	if err != nil {
		return nil, err
	}
	if sum == 0 {
		return nil, domain.ErrInsufficientBalance
	}

	destroyed := r.destroyLocked(inputs)
	seq := r.nextSeqLocked()
	combined := r.newChunkLocked(tick, "merge", seq, 0, sum, caller)

	r.sink.ChunksReplaced(tick, destroyed, cloneChunks([]*domain.Chunk{combined}))
	r.sink.RegistryUpdated(r.recordLocked())
	return &MergeResult{Chunk: cloneChunk(combined), Total: sum}, nil
}

// MergeV2 consumes the caller's input chunks and splits the total two ways:
// one chunk of exactly needAmount and one change chunk of the remainder. The
// change chunk is created even when the remainder is zero; DestroyZero exists
// to clean those up.
func (r *Registry) MergeV2(tick string, chunkIDs []string, needAmount uint64, caller string) (*MergeV2Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if _, ok := r.ticks[tick]; !ok {
		return nil, domain.ErrTickNotFound
	}
	if needAmount == 0 {
		return nil, domain.ErrInvalidAmount
	}

	inputs, sum, err := r.collectLocked(tick, chunkIDs, caller)
	if err != nil {
		return nil, err
	}
	if sum < needAmount {
		return nil, domain.ErrInsufficientBalance
	}

	destroyed := r.destroyLocked(inputs)
	seq := r.nextSeqLocked()
	target := r.newChunkLocked(tick, "merge_v2", seq, 0, needAmount, caller)
	change := r.newChunkLocked(tick, "merge_v2", seq, 1, sum-needAmount, caller)

	r.sink.ChunksReplaced(tick, destroyed, cloneChunks([]*domain.Chunk{target, change}))
	r.sink.RegistryUpdated(r.recordLocked())
	return &MergeV2Result{
		Target:    cloneChunk(target),
		Change:    cloneChunk(change),
		Total:     sum,
		Remainder: sum - needAmount,
	}, nil
}

// DestroyZero consumes a zero-amount chunk. Pure cleanup; conservation is
// unaffected because only zero amounts are accepted.
func (r *Registry) DestroyZero(chunkID, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return err
	}

	c, ok := r.chunks[chunkID]
	if !ok {
		return domain.ErrChunkNotFound
	}
	if c.Owner != caller {
		return domain.ErrChunkNotOwned
	}
	if c.Amount != 0 {
		return domain.ErrInvalidAmount
	}

	destroyed := r.destroyLocked([]*domain.Chunk{c})
	r.sink.ChunksReplaced(c.Tick, destroyed, nil)
	return nil
}

func cloneChunk(c *domain.Chunk) *domain.Chunk {
	cp := *c
	return &cp
}

func cloneChunks(chunks []*domain.Chunk) []*domain.Chunk {
	out := make([]*domain.Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = cloneChunk(c)
	}
	return out
}
