// Package main runs the tick registry server: the in-memory ledger engine,
// the HTTP API, the websocket event hub, and write-behind persistence to
// PostgreSQL (ledger state) and ClickHouse (mint analytics).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tickmint/internal/api"
	"tickmint/internal/domain"
	"tickmint/internal/events"
	"tickmint/internal/observability"
	"tickmint/internal/registry"
	"tickmint/internal/storage"
	chstore "tickmint/internal/storage/clickhouse"
	"tickmint/internal/storage/memory"
	"tickmint/internal/storage/migrations"
	pgstore "tickmint/internal/storage/postgres"
)

// allStores holds all storage implementations.
type allStores struct {
	registryStore storage.RegistryStore
	tickStore     storage.TickStore
	holderStore   storage.HolderStore
	chunkStore    storage.ChunkStore
	mintEvents    storage.MintEventStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("TICKMINT_LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	adminSecret := flag.String("admin-secret", os.Getenv("TICKMINT_ADMIN_SECRET"), "HMAC secret for admin tokens")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *adminSecret == "" {
		logger.Fatal("--admin-secret is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Event hub
	hub := events.NewHub(log.New(os.Stdout, "[events] ", log.LstdFlags|log.Lshortfile))

	// Registry engine, restored from storage
	reg := registry.New(registry.Options{
		Sink:      newStorageSink(stores, logger),
		Publisher: instrumentedPublisher{hub: hub},
		Logger:    log.New(os.Stdout, "[registry] ", log.LstdFlags|log.Lshortfile),
	})
	if err := restoreRegistry(ctx, reg, stores, logger); err != nil {
		logger.Fatalf("Failed to restore registry: %v", err)
	}

	// HTTP server
	srv := api.NewServer(api.Config{
		Registry:    reg,
		MintEvents:  stores.mintEvents,
		Hub:         hub,
		AdminSecret: []byte(*adminSecret),
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:              *listenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		go func() {
			// Wait for second signal for immediate shutdown
			sig := <-sigCh
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		}()

		hub.Close()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Listening on %s (memory=%v)", *listenAddr, *useMemory)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	<-ctx.Done()
	logger.Println("Shutdown complete")
}

// createStores creates all required stores, running migrations as needed.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			registryStore: memory.NewRegistryStore(),
			tickStore:     memory.NewTickStore(),
			holderStore:   memory.NewHolderStore(),
			chunkStore:    memory.NewChunkStore(),
			mintEvents:    memory.NewMintEventStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL: ledger state
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	// ClickHouse: mint analytics
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare clickhouse: %w", err)
	}

	stores := &allStores{
		registryStore: pgstore.NewRegistryStore(pool),
		tickStore:     pgstore.NewTickStore(pool),
		holderStore:   pgstore.NewHolderStore(pool),
		chunkStore:    pgstore.NewChunkStore(pool),
		mintEvents:    chstore.NewMintEventStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// restoreRegistry loads the persisted ledger into the in-memory engine.
func restoreRegistry(ctx context.Context, reg *registry.Registry, stores *allStores, logger *log.Logger) error {
	rec, err := stores.registryStore.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Println("No persisted registry record, starting fresh")
			return nil
		}
		return fmt.Errorf("load registry record: %w", err)
	}

	ticks, err := stores.tickStore.List(ctx)
	if err != nil {
		return fmt.Errorf("load tick states: %w", err)
	}
	for _, st := range ticks {
		holders, err := stores.holderStore.ListByTick(ctx, st.Meta.Tick)
		if err != nil {
			return fmt.Errorf("load holders for %s: %w", st.Meta.Tick, err)
		}
		st.Holders = holders
	}

	chunks, err := stores.chunkStore.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}

	reg.Restore(*rec, ticks, chunks)
	logger.Printf("Restored %d ticks and %d chunks (chunk_seq=%d)", len(ticks), len(chunks), rec.ChunkSeq)

	observability.UpdateFeePool(rec.FeePool)
	observability.DefaultMetrics.LiveChunks.Set(float64(len(chunks)))
	return nil
}

// instrumentedPublisher forwards snapshots to the hub and counts them.
type instrumentedPublisher struct {
	hub *events.Hub
}

func (p instrumentedPublisher) PublishMintSnapshot(s *domain.MintSnapshot) {
	p.hub.PublishMintSnapshot(s)
	observability.RecordSnapshotPublished(events.TypeMintSnapshot)
	observability.UpdateWSSubscribers(p.hub.SubscriberCount())
}

func (p instrumentedPublisher) PublishLeaderboardSnapshot(s *domain.LeaderboardSnapshot) {
	p.hub.PublishLeaderboardSnapshot(s)
	observability.RecordSnapshotPublished(events.TypeLeaderboardSnapshot)
	observability.UpdateWSSubscribers(p.hub.SubscriberCount())
}

// envOr returns the env value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
