package registry

import "tickmint/internal/domain"

// Sink receives post-commit notifications from the registry. Calls are made
// while the registry lock is held, so a sink observes mutations in the exact
// order they committed. Implementations must not call back into the registry.
//
// Sinks exist for write-behind persistence and metrics; they cannot veto or
// roll back an operation.
type Sink interface {
	// TickDeployed fires after a new tick is registered.
	TickDeployed(st *domain.TickState)

	// TickUpdated fires after an admin mutation of a tick (mint_cd,
	// enable_to_coin).
	TickUpdated(st *domain.TickState)

	// RegistryUpdated fires after registry-level state changes: the pause
	// switch, the version counter, and the fee pool and chunk sequence
	// advances made by mint and chunk operations.
	RegistryUpdated(rec domain.RegistryRecord)

	// MintCommitted fires after a successful mint with the updated tick
	// state, the caller's updated holder info, and the minted chunk.
	MintCommitted(ev *domain.MintEvent, st *domain.TickState, holder *domain.HolderInfo, chunk *domain.Chunk)

	// ChunksReplaced fires after a chunk-algebra operation: destroyed ids
	// are gone, created chunks are live. Conservation holds across the two.
	ChunksReplaced(tick string, destroyed []string, created []*domain.Chunk)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) TickDeployed(*domain.TickState)        {}
func (NopSink) TickUpdated(*domain.TickState)         {}
func (NopSink) RegistryUpdated(domain.RegistryRecord) {}
func (NopSink) MintCommitted(*domain.MintEvent, *domain.TickState, *domain.HolderInfo, *domain.Chunk) {
}
func (NopSink) ChunksReplaced(string, []string, []*domain.Chunk) {}

// Publisher carries read-only snapshots to the notification channel.
type Publisher interface {
	PublishMintSnapshot(s *domain.MintSnapshot)
	PublishLeaderboardSnapshot(s *domain.LeaderboardSnapshot)
}

type nopPublisher struct{}

func (nopPublisher) PublishMintSnapshot(*domain.MintSnapshot)               {}
func (nopPublisher) PublishLeaderboardSnapshot(*domain.LeaderboardSnapshot) {}
