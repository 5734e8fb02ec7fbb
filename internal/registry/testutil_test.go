package registry

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/mr-tron/base58"

	"tickmint/internal/domain"
)

// fixedClock is a settable test clock.
type fixedClock struct {
	now int64 // unix seconds
}

func (c *fixedClock) Now() time.Time { return time.Unix(c.now, 0) }

// testAddr derives a deterministic holder address from a seed byte:
// an ed25519 public key, base58-encoded, as the ledger expects.
func testAddr(t *testing.T, seed byte) string {
	t.Helper()

	var s [ed25519.SeedSize]byte
	for i := range s {
		s[i] = seed
	}
	key := ed25519.NewKeyFromSeed(s[:])
	return base58.Encode(key.Public().(ed25519.PublicKey))
}

// newTestRegistry returns a registry with a pinned clock and the standard
// test tick "abc1" deployed: max=1000, limit=100, fee=10, start=now,
// max_per_user=150, cooldown=0.
func newTestRegistry(t *testing.T) (*Registry, *fixedClock) {
	t.Helper()

	clock := &fixedClock{now: 1_700_000_000}
	r := New(Options{Clock: clock})

	_, err := r.Deploy(DeployParams{
		Tick:           "abc1",
		Max:            1000,
		Limit:          100,
		Decimals:       8,
		Fee:            10,
		StartAt:        clock.now,
		MaxMintPerUser: 150,
	})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	return r, clock
}

// mustMint mints amount for caller with an exact fee payment.
func mustMint(t *testing.T, r *Registry, tick string, amount uint64, caller string) *domain.Chunk {
	t.Helper()

	st, err := r.Tick(tick)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	res, err := r.Mint(tick, amount, st.Meta.Fee, caller)
	if err != nil {
		t.Fatalf("Mint(%d) for %s failed: %v", amount, caller, err)
	}
	return res.Chunk
}

// liveSum sums the live chunk amounts the given owners hold on a tick.
func liveSum(r *Registry, tick string, owners ...string) uint64 {
	var sum uint64
	for _, owner := range owners {
		for _, c := range r.ChunksByOwner(owner, tick) {
			sum += c.Amount
		}
	}
	return sum
}

// capturePublisher records published snapshots.
type capturePublisher struct {
	mints        []*domain.MintSnapshot
	leaderboards []*domain.LeaderboardSnapshot
}

func (p *capturePublisher) PublishMintSnapshot(s *domain.MintSnapshot) {
	p.mints = append(p.mints, s)
}

func (p *capturePublisher) PublishLeaderboardSnapshot(s *domain.LeaderboardSnapshot) {
	p.leaderboards = append(p.leaderboards, s)
}
