// Package registry implements the tick ledger core: tick deployment, the
// minting policy engine, chunk algebra and the per-tick leaderboard.
//
// One mutex serializes every public operation, so operations execute in a
// single global order and each one either commits fully or leaves no trace.
// Validation works against staged copies; live state is only written after
// every check has passed.
package registry

import (
	"io"
	"log"
	"sync"
	"time"

	"tickmint/internal/domain"
	"tickmint/internal/idhash"
)

// MaxAllowedUpgradeVersion is the highest registry version this build
// accepts. Operations fail with ErrVersionNotAllowed past it.
const MaxAllowedUpgradeVersion = 1

// Clock supplies the current time. The registry never reads the wall clock
// directly so tests can pin time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time { return time.Now() }

// Registry is the process-wide tick ledger. All public methods are safe for
// concurrent use; internally they run one at a time.
type Registry struct {
	mu       sync.Mutex
	paused   bool
	version  uint64
	feePool  uint64
	ticks    map[string]*domain.TickState
	chunks   map[string]*domain.Chunk
	chunkSeq uint64

	clock     Clock
	sink      Sink
	publisher Publisher
	logger    *log.Logger
}

// Options configures a Registry. Zero-value fields fall back to defaults:
// system clock, no-op sink and publisher, discarded logs.
type Options struct {
	Clock     Clock
	Sink      Sink
	Publisher Publisher
	Logger    *log.Logger
}

// New creates an empty registry.
func New(opts Options) *Registry {
	r := &Registry{
		ticks:     make(map[string]*domain.TickState),
		chunks:    make(map[string]*domain.Chunk),
		clock:     opts.Clock,
		sink:      opts.Sink,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
	if r.clock == nil {
		r.clock = SystemClock{}
	}
	if r.sink == nil {
		r.sink = NopSink{}
	}
	if r.publisher == nil {
		r.publisher = nopPublisher{}
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	return r
}

// gate enforces the version and pause preconditions shared by every
// state-changing ledger operation. Callers must hold r.mu.
func (r *Registry) gate() error {
	if r.version > MaxAllowedUpgradeVersion {
		return domain.ErrVersionNotAllowed
	}
	if r.paused {
		return domain.ErrSystemPaused
	}
	return nil
}

// DeployParams are the inputs to Deploy.
type DeployParams struct {
	Tick           string
	Max            uint64
	Limit          uint64
	Decimals       uint8
	Fee            uint64
	StartAt        int64 // requested activation time, unix seconds
	MaxMintPerUser uint64
}

// Deploy registers a new tick. The effective start time is the later of the
// requested start and the deployment time. This is the only path that creates
// tick metadata; a tick is permanent once deployed.
func (r *Registry) Deploy(p DeployParams) (*domain.TickState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateTick(p.Tick); err != nil {
		return nil, err
	}
	if _, exists := r.ticks[p.Tick]; exists {
		return nil, domain.ErrTickExists
	}

	startAt := p.StartAt
	if now := r.clock.Now().Unix(); now > startAt {
		startAt = now
	}

	st := &domain.TickState{
		Meta: domain.TickMetadata{
			Tick:     p.Tick,
			Max:      p.Max,
			Limit:    p.Limit,
			Decimals: p.Decimals,
			Fee:      p.Fee,
			StartAt:  startAt,
		},
		Holders:        make(map[string]*domain.HolderInfo),
		MaxMintPerUser: p.MaxMintPerUser,
	}
	r.ticks[p.Tick] = st

	r.logger.Printf("deployed tick %s max=%d limit=%d fee=%d start_at=%d", p.Tick, p.Max, p.Limit, p.Fee, startAt)
	r.sink.TickDeployed(st.Clone())
	return st.Clone(), nil
}

// SetPaused flips the pause switch. Admin only; authorization happens at the
// API boundary.
func (r *Registry) SetPaused(paused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = paused
	r.sink.RegistryUpdated(r.recordLocked())
}

// SetVersion sets the registry version counter. Admin only.
func (r *Registry) SetVersion(version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = version
	r.sink.RegistryUpdated(r.recordLocked())
}

// SetEnableToCoin toggles the reserved coin-conversion flag on a tick.
// Admin only. Returns ErrTickNotFound if the tick is not registered.
func (r *Registry) SetEnableToCoin(tick string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.ticks[tick]
	if !ok {
		return domain.ErrTickNotFound
	}
	st.EnableToCoin = enabled
	r.sink.TickUpdated(st.Clone())
	return nil
}

// SetMintCooldown sets the per-holder mint cooldown of a tick, in seconds.
// Admin only. Returns ErrTickNotFound if the tick is not registered.
func (r *Registry) SetMintCooldown(tick string, seconds uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.ticks[tick]
	if !ok {
		return domain.ErrTickNotFound
	}
	st.MintCooldown = seconds
	r.sink.TickUpdated(st.Clone())
	return nil
}

// Record returns the current registry-level state.
func (r *Registry) Record() domain.RegistryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recordLocked()
}

func (r *Registry) recordLocked() domain.RegistryRecord {
	return domain.RegistryRecord{
		Paused:   r.paused,
		Version:  r.version,
		FeePool:  r.feePool,
		ChunkSeq: r.chunkSeq,
	}
}

// Tick returns a copy of a tick's state. Returns ErrTickNotFound if absent.
func (r *Registry) Tick(tick string) (*domain.TickState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.ticks[tick]
	if !ok {
		return nil, domain.ErrTickNotFound
	}
	return st.Clone(), nil
}

// Ticks returns copies of all registered tick states.
func (r *Registry) Ticks() []*domain.TickState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.TickState, 0, len(r.ticks))
	for _, st := range r.ticks {
		out = append(out, st.Clone())
	}
	return out
}

// Chunk returns a copy of a live chunk. Returns ErrChunkNotFound if absent.
func (r *Registry) Chunk(id string) (*domain.Chunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chunks[id]
	if !ok {
		return nil, domain.ErrChunkNotFound
	}
	cp := *c
	return &cp, nil
}

// ChunksByOwner returns copies of all live chunks owned by an address.
// If tick is non-empty only that tick's chunks are returned.
func (r *Registry) ChunksByOwner(owner, tick string) []*domain.Chunk {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Chunk
	for _, c := range r.chunks {
		if c.Owner != owner {
			continue
		}
		if tick != "" && c.Tick != tick {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out
}

// Restore loads previously persisted state into an empty registry.
// tick states arrive with their holder ledgers already attached.
func (r *Registry) Restore(rec domain.RegistryRecord, ticks []*domain.TickState, chunks []*domain.Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.paused = rec.Paused
	r.version = rec.Version
	r.feePool = rec.FeePool
	r.chunkSeq = rec.ChunkSeq

	for _, st := range ticks {
		r.ticks[st.Meta.Tick] = st.Clone()
	}
	for _, c := range chunks {
		cp := *c
		r.chunks[c.ID] = &cp
	}
	r.logger.Printf("restored %d ticks, %d chunks, chunk_seq=%d", len(ticks), len(chunks), rec.ChunkSeq)
}

// newChunkLocked creates and registers a chunk. Callers must hold r.mu and
// have allocated seq via nextSeqLocked.
func (r *Registry) newChunkLocked(tick, op string, seq uint64, index int, amount uint64, owner string) *domain.Chunk {
	c := &domain.Chunk{
		ID:        idhash.ComputeChunkID(tick, op, seq, index),
		Tick:      tick,
		Amount:    amount,
		Owner:     owner,
		CreatedAt: r.clock.Now().Unix(),
	}
	r.chunks[c.ID] = c
	return c
}

func (r *Registry) nextSeqLocked() uint64 {
	r.chunkSeq++
	return r.chunkSeq
}
