package registry

import (
	"errors"
	"testing"

	"tickmint/internal/domain"
)

func TestDeploy_InvalidTickFormat(t *testing.T) {
	r := New(Options{Clock: &fixedClock{now: 1000}})

	ticks := []string{"AB12", "abc", "abcde", "ab_1", "ab 1", "", "ab-1"}
	for _, tick := range ticks {
		_, err := r.Deploy(DeployParams{Tick: tick, Max: 1000, Limit: 100, MaxMintPerUser: 1000})
		if !errors.Is(err, domain.ErrInvalidTickFormat) {
			t.Errorf("Deploy(%q): expected ErrInvalidTickFormat, got %v", tick, err)
		}
	}
}

func TestDeploy_Duplicate(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Deploy(DeployParams{Tick: "abc1", Max: 500, Limit: 50, MaxMintPerUser: 500})
	if !errors.Is(err, domain.ErrTickExists) {
		t.Errorf("Expected ErrTickExists, got %v", err)
	}
}

func TestDeploy_StartTimeIsLaterOfRequestedAndNow(t *testing.T) {
	clock := &fixedClock{now: 5000}
	r := New(Options{Clock: clock})

	// Requested start in the past: clamped to deploy time.
	st, err := r.Deploy(DeployParams{Tick: "aaa1", Max: 100, Limit: 10, StartAt: 1000, MaxMintPerUser: 100})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if st.Meta.StartAt != 5000 {
		t.Errorf("StartAt: got %d, want 5000", st.Meta.StartAt)
	}

	// Requested start in the future: kept.
	st, err = r.Deploy(DeployParams{Tick: "aaa2", Max: 100, Limit: 10, StartAt: 9000, MaxMintPerUser: 100})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if st.Meta.StartAt != 9000 {
		t.Errorf("StartAt: got %d, want 9000", st.Meta.StartAt)
	}
}

func TestGate_Paused(t *testing.T) {
	r, _ := newTestRegistry(t)
	addr := testAddr(t, 1)

	r.SetPaused(true)

	if _, err := r.Deploy(DeployParams{Tick: "zzz1", Max: 100, Limit: 10, MaxMintPerUser: 100}); !errors.Is(err, domain.ErrSystemPaused) {
		t.Errorf("Deploy while paused: expected ErrSystemPaused, got %v", err)
	}
	if _, err := r.Mint("abc1", 10, 10, addr); !errors.Is(err, domain.ErrSystemPaused) {
		t.Errorf("Mint while paused: expected ErrSystemPaused, got %v", err)
	}
	if _, err := r.Transfer("abc1", nil, addr, 1, addr); !errors.Is(err, domain.ErrSystemPaused) {
		t.Errorf("Transfer while paused: expected ErrSystemPaused, got %v", err)
	}
	if _, err := r.Merge("abc1", nil, addr); !errors.Is(err, domain.ErrSystemPaused) {
		t.Errorf("Merge while paused: expected ErrSystemPaused, got %v", err)
	}

	// Unpause restores service.
	r.SetPaused(false)
	if _, err := r.Mint("abc1", 10, 10, addr); err != nil {
		t.Errorf("Mint after unpause failed: %v", err)
	}
}

func TestGate_VersionNotAllowed(t *testing.T) {
	r, _ := newTestRegistry(t)
	addr := testAddr(t, 1)

	r.SetVersion(MaxAllowedUpgradeVersion + 1)

	if _, err := r.Mint("abc1", 10, 10, addr); !errors.Is(err, domain.ErrVersionNotAllowed) {
		t.Errorf("Expected ErrVersionNotAllowed, got %v", err)
	}

	// Versions up to the cap are allowed.
	r.SetVersion(MaxAllowedUpgradeVersion)
	if _, err := r.Mint("abc1", 10, 10, addr); err != nil {
		t.Errorf("Mint at max allowed version failed: %v", err)
	}
}

func TestAdmin_TickMutators(t *testing.T) {
	r, _ := newTestRegistry(t)

	if err := r.SetMintCooldown("abc1", 60); err != nil {
		t.Fatalf("SetMintCooldown failed: %v", err)
	}
	if err := r.SetEnableToCoin("abc1", true); err != nil {
		t.Fatalf("SetEnableToCoin failed: %v", err)
	}

	st, err := r.Tick("abc1")
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if st.MintCooldown != 60 {
		t.Errorf("MintCooldown: got %d, want 60", st.MintCooldown)
	}
	if !st.EnableToCoin {
		t.Error("EnableToCoin should be true")
	}

	if err := r.SetMintCooldown("none", 60); !errors.Is(err, domain.ErrTickNotFound) {
		t.Errorf("Expected ErrTickNotFound, got %v", err)
	}
	if err := r.SetEnableToCoin("none", true); !errors.Is(err, domain.ErrTickNotFound) {
		t.Errorf("Expected ErrTickNotFound, got %v", err)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	r, clock := newTestRegistry(t)
	addr := testAddr(t, 1)
	chunk := mustMint(t, r, "abc1", 100, addr)

	rec := r.Record()
	ticks := r.Ticks()
	chunks := r.ChunksByOwner(addr, "")

	restored := New(Options{Clock: clock})
	restored.Restore(rec, ticks, chunks)

	if got := restored.Record(); got != rec {
		t.Errorf("record mismatch after restore: got %+v, want %+v", got, rec)
	}

	st, err := restored.Tick("abc1")
	if err != nil {
		t.Fatalf("Tick after restore failed: %v", err)
	}
	if st.TotalMinted != 100 || st.Txs != 1 {
		t.Errorf("state mismatch: total=%d txs=%d", st.TotalMinted, st.Txs)
	}
	if st.Holders[addr] == nil || st.Holders[addr].MintedAmount != 100 {
		t.Error("holder ledger not restored")
	}

	got, err := restored.Chunk(chunk.ID)
	if err != nil {
		t.Fatalf("Chunk after restore failed: %v", err)
	}
	if got.Amount != 100 || got.Owner != addr {
		t.Errorf("chunk mismatch: %+v", got)
	}

	// Sequence continues, so new chunk ids cannot collide with restored ones.
	clock.now += 1
	next := mustMint(t, restored, "abc1", 50, addr)
	if next.ID == chunk.ID {
		t.Error("chunk id collision after restore")
	}
}

func TestTick_ReturnsCopy(t *testing.T) {
	r, _ := newTestRegistry(t)
	addr := testAddr(t, 1)
	mustMint(t, r, "abc1", 100, addr)

	st, _ := r.Tick("abc1")
	st.TotalMinted = 999999
	st.Holders[addr].MintedAmount = 999999
	st.Leaderboard = append(st.Leaderboard, "bogus")

	fresh, _ := r.Tick("abc1")
	if fresh.TotalMinted != 100 {
		t.Error("mutating a returned state leaked into the registry")
	}
	if fresh.Holders[addr].MintedAmount != 100 {
		t.Error("mutating a returned holder leaked into the registry")
	}
	if len(fresh.Leaderboard) != 1 {
		t.Error("mutating a returned leaderboard leaked into the registry")
	}
}
