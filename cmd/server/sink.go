package main

import (
	"context"
	"log"
	"time"

	"tickmint/internal/domain"
	"tickmint/internal/observability"
	"tickmint/internal/registry"
)

// storageSink persists committed registry mutations write-behind. It runs
// inside the registry lock, so store calls are bounded by a timeout and
// failures are logged, never surfaced back into the engine: the in-memory
// ledger stays authoritative.
type storageSink struct {
	stores *allStores
	logger *log.Logger
}

func newStorageSink(stores *allStores, logger *log.Logger) *storageSink {
	return &storageSink{stores: stores, logger: logger}
}

var _ registry.Sink = (*storageSink)(nil)

const sinkTimeout = 5 * time.Second

func (s *storageSink) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), sinkTimeout)
}

func (s *storageSink) TickDeployed(st *domain.TickState) {
	ctx, cancel := s.ctx()
	defer cancel()

	start := time.Now()
	err := s.stores.tickStore.Upsert(ctx, st)
	observability.RecordDBQuery("postgres", "tick_upsert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist deployed tick %s: %v", st.Meta.Tick, err)
		return
	}
	observability.RecordTickDeployed()
}

func (s *storageSink) TickUpdated(st *domain.TickState) {
	ctx, cancel := s.ctx()
	defer cancel()

	start := time.Now()
	err := s.stores.tickStore.Upsert(ctx, st)
	observability.RecordDBQuery("postgres", "tick_upsert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist updated tick %s: %v", st.Meta.Tick, err)
	}
}

func (s *storageSink) RegistryUpdated(rec domain.RegistryRecord) {
	ctx, cancel := s.ctx()
	defer cancel()

	start := time.Now()
	err := s.stores.registryStore.Save(ctx, &rec)
	observability.RecordDBQuery("postgres", "registry_save", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist registry record: %v", err)
	}
	observability.UpdateFeePool(rec.FeePool)
}

func (s *storageSink) MintCommitted(ev *domain.MintEvent, st *domain.TickState, holder *domain.HolderInfo, chunk *domain.Chunk) {
	ctx, cancel := s.ctx()
	defer cancel()

	start := time.Now()
	err := s.stores.tickStore.Upsert(ctx, st)
	observability.RecordDBQuery("postgres", "tick_upsert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist tick %s after mint: %v", ev.Tick, err)
	}

	start = time.Now()
	err = s.stores.holderStore.Upsert(ctx, ev.Tick, ev.Holder, holder)
	observability.RecordDBQuery("postgres", "holder_upsert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist holder %s/%s: %v", ev.Tick, ev.Holder, err)
	}

	start = time.Now()
	err = s.stores.chunkStore.Insert(ctx, chunk)
	observability.RecordDBQuery("postgres", "chunk_insert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist minted chunk %s: %v", chunk.ID, err)
	}

	start = time.Now()
	err = s.stores.mintEvents.Insert(ctx, ev)
	observability.RecordDBQuery("clickhouse", "mint_event_insert", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist mint event %s/%s: %v", ev.Tick, ev.Holder, err)
	}

	observability.RecordMint(ev.Amount)
	observability.RecordChunksReplaced(0, 1)
}

func (s *storageSink) ChunksReplaced(tick string, destroyed []string, created []*domain.Chunk) {
	ctx, cancel := s.ctx()
	defer cancel()

	start := time.Now()
	err := s.stores.chunkStore.Replace(ctx, destroyed, created)
	observability.RecordDBQuery("postgres", "chunk_replace", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist chunk replace for %s (%d destroyed, %d created): %v",
			tick, len(destroyed), len(created), err)
		return
	}
	observability.RecordChunksReplaced(len(destroyed), len(created))
}
