// Package api exposes the registry over HTTP.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tickmint/internal/events"
	"tickmint/internal/observability"
	"tickmint/internal/registry"
	"tickmint/internal/storage"
)

// Config carries the dependencies of the HTTP server.
type Config struct {
	Registry    *registry.Registry
	MintEvents  storage.MintEventStore // optional; mint history 404s without it
	Hub         *events.Hub            // optional; /ws is not registered without it
	AdminSecret []byte
	Logger      *log.Logger
}

// Server routes HTTP requests to registry operations.
type Server struct {
	registry    *registry.Registry
	mintEvents  storage.MintEventStore
	hub         *events.Hub
	adminSecret []byte
	logger      *log.Logger
	startedAt   time.Time
	router      *mux.Router
}

// NewServer builds the router and returns a ready-to-serve Server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		registry:    cfg.Registry,
		mintEvents:  cfg.MintEvents,
		hub:         cfg.Hub,
		adminSecret: cfg.AdminSecret,
		logger:      logger,
		startedAt:   time.Now(),
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)
	if s.hub != nil {
		r.Handle("/ws", s.hub)
	}

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/ticks", s.handleDeploy).Methods(http.MethodPost)
	v1.HandleFunc("/ticks", s.handleListTicks).Methods(http.MethodGet)
	v1.HandleFunc("/ticks/{tick}", s.handleGetTick).Methods(http.MethodGet)
	v1.HandleFunc("/ticks/{tick}/mint", s.handleMint).Methods(http.MethodPost)
	v1.HandleFunc("/ticks/{tick}/transfer", s.handleTransfer).Methods(http.MethodPost)
	v1.HandleFunc("/ticks/{tick}/merge", s.handleMerge).Methods(http.MethodPost)
	v1.HandleFunc("/ticks/{tick}/merge-v2", s.handleMergeV2).Methods(http.MethodPost)
	v1.HandleFunc("/ticks/{tick}/snapshot", s.handleMintSnapshot).Methods(http.MethodGet)
	v1.HandleFunc("/ticks/{tick}/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)
	v1.HandleFunc("/ticks/{tick}/mints", s.handleMintHistory).Methods(http.MethodGet)

	v1.HandleFunc("/chunks/{id}", s.handleGetChunk).Methods(http.MethodGet)
	v1.HandleFunc("/chunks/{id}/batch-transfer", s.handleBatchTransfer).Methods(http.MethodPost)
	v1.HandleFunc("/chunks/{id}/destroy-zero", s.handleDestroyZero).Methods(http.MethodPost)

	v1.HandleFunc("/holders/{address}/chunks", s.handleHolderChunks).Methods(http.MethodGet)

	admin := v1.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/pause", s.requireAdmin(s.handleSetPaused)).Methods(http.MethodPost)
	admin.HandleFunc("/version", s.requireAdmin(s.handleSetVersion)).Methods(http.MethodPost)
	admin.HandleFunc("/ticks/{tick}/enable-to-coin", s.requireAdmin(s.handleSetEnableToCoin)).Methods(http.MethodPost)
	admin.HandleFunc("/ticks/{tick}/mint-cd", s.requireAdmin(s.handleSetMintCooldown)).Methods(http.MethodPost)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	rec := s.registry.Record()

	status := map[string]any{
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"paused":         rec.Paused,
		"version":        rec.Version,
		"fee_pool":       rec.FeePool,
		"ticks":          len(s.registry.Ticks()),
	}
	if s.hub != nil {
		status["ws_subscribers"] = s.hub.SubscriberCount()
	}

	writeJSON(w, http.StatusOK, status)
}
