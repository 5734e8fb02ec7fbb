package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tickmint/internal/domain"
	"tickmint/internal/registry"
)

// decodeBody parses a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}

// tickView is the wire shape of a tick state. Holder ledgers are not
// exposed in bulk; use the snapshot endpoint for one holder's stats.
type tickView struct {
	Tick           string   `json:"tick"`
	Max            uint64   `json:"max"`
	Limit          uint64   `json:"limit"`
	Decimals       uint8    `json:"decimals"`
	Fee            uint64   `json:"fee"`
	StartAt        int64    `json:"start_at"`
	EnableToCoin   bool     `json:"enable_to_coin"`
	TotalMinted    uint64   `json:"total_minted"`
	Txs            uint64   `json:"txs"`
	Holders        int      `json:"holders"`
	Leaderboard    []string `json:"leaderboard"`
	MintCooldown   uint64   `json:"mint_cd"`
	MaxMintPerUser uint64   `json:"max_mint_per_user"`
}

func toTickView(st *domain.TickState) tickView {
	leaderboard := st.Leaderboard
	if leaderboard == nil {
		leaderboard = []string{}
	}
	return tickView{
		Tick:           st.Meta.Tick,
		Max:            st.Meta.Max,
		Limit:          st.Meta.Limit,
		Decimals:       st.Meta.Decimals,
		Fee:            st.Meta.Fee,
		StartAt:        st.Meta.StartAt,
		EnableToCoin:   st.EnableToCoin,
		TotalMinted:    st.TotalMinted,
		Txs:            st.Txs,
		Holders:        len(st.Holders),
		Leaderboard:    leaderboard,
		MintCooldown:   st.MintCooldown,
		MaxMintPerUser: st.MaxMintPerUser,
	}
}

// chunkView is the wire shape of a chunk.
type chunkView struct {
	ID        string `json:"id"`
	Tick      string `json:"tick"`
	Amount    uint64 `json:"amount"`
	Owner     string `json:"owner"`
	CreatedAt int64  `json:"created_at"`
}

func toChunkView(c *domain.Chunk) *chunkView {
	if c == nil {
		return nil
	}
	return &chunkView{ID: c.ID, Tick: c.Tick, Amount: c.Amount, Owner: c.Owner, CreatedAt: c.CreatedAt}
}

func toChunkViews(chunks []*domain.Chunk) []*chunkView {
	views := make([]*chunkView, 0, len(chunks))
	for _, c := range chunks {
		views = append(views, toChunkView(c))
	}
	return views
}

type deployRequest struct {
	Tick           string `json:"tick"`
	Max            uint64 `json:"max"`
	Limit          uint64 `json:"limit"`
	Decimals       uint8  `json:"decimals"`
	Fee            uint64 `json:"fee"`
	StartAt        int64  `json:"start_at"`
	MaxMintPerUser uint64 `json:"max_mint_per_user"`
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if !decodeBody(w, r, &req) {
		return
	}

	st, err := s.registry.Deploy(registry.DeployParams{
		Tick:           req.Tick,
		Max:            req.Max,
		Limit:          req.Limit,
		Decimals:       req.Decimals,
		Fee:            req.Fee,
		StartAt:        req.StartAt,
		MaxMintPerUser: req.MaxMintPerUser,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTickView(st))
}

func (s *Server) handleListTicks(w http.ResponseWriter, _ *http.Request) {
	states := s.registry.Ticks()
	views := make([]tickView, 0, len(states))
	for _, st := range states {
		views = append(views, toTickView(st))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetTick(w http.ResponseWriter, r *http.Request) {
	st, err := s.registry.Tick(mux.Vars(r)["tick"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTickView(st))
}

type mintRequest struct {
	Amount  uint64 `json:"amount"`
	Payment uint64 `json:"payment"`
	Caller  string `json:"caller"`
}

type mintResponse struct {
	Chunk    *chunkView `json:"chunk"`
	Residual uint64     `json:"residual"`
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.registry.Mint(mux.Vars(r)["tick"], req.Amount, req.Payment, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mintResponse{Chunk: toChunkView(res.Chunk), Residual: res.Residual})
}

type transferRequest struct {
	ChunkIDs []string `json:"chunk_ids"`
	To       string   `json:"to"`
	Amount   uint64   `json:"amount"`
	Caller   string   `json:"caller"`
}

type transferResponse struct {
	Sent   *chunkView `json:"sent"`
	Change *chunkView `json:"change,omitempty"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.registry.Transfer(mux.Vars(r)["tick"], req.ChunkIDs, req.To, req.Amount, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transferResponse{Sent: toChunkView(res.Sent), Change: toChunkView(res.Change)})
}

type batchTransferRequest struct {
	Receivers  []string `json:"receivers"`
	AmountEach uint64   `json:"amount_each"`
	Caller     string   `json:"caller"`
}

func (s *Server) handleBatchTransfer(w http.ResponseWriter, r *http.Request) {
	var req batchTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	chunks, err := s.registry.BatchTransfer(mux.Vars(r)["id"], req.Receivers, req.AmountEach, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"chunks": toChunkViews(chunks)})
}

type mergeRequest struct {
	ChunkIDs []string `json:"chunk_ids"`
	Caller   string   `json:"caller"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.registry.Merge(mux.Vars(r)["tick"], req.ChunkIDs, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chunk": toChunkView(res.Chunk),
		"total": res.Total,
	})
}

type mergeV2Request struct {
	ChunkIDs []string `json:"chunk_ids"`
	Amount   uint64   `json:"amount"`
	Caller   string   `json:"caller"`
}

func (s *Server) handleMergeV2(w http.ResponseWriter, r *http.Request) {
	var req mergeV2Request
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.registry.MergeV2(mux.Vars(r)["tick"], req.ChunkIDs, req.Amount, req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"target":    toChunkView(res.Target),
		"change":    toChunkView(res.Change),
		"total":     res.Total,
		"remainder": res.Remainder,
	})
}

type destroyZeroRequest struct {
	Caller string `json:"caller"`
}

func (s *Server) handleDestroyZero(w http.ResponseWriter, r *http.Request) {
	var req destroyZeroRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.registry.DestroyZero(mux.Vars(r)["id"], req.Caller); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "destroyed"})
}

func (s *Server) handleGetChunk(w http.ResponseWriter, r *http.Request) {
	c, err := s.registry.Chunk(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChunkView(c))
}

func (s *Server) handleHolderChunks(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["address"]
	tick := r.URL.Query().Get("tick")

	chunks := s.registry.ChunksByOwner(owner, tick)
	writeJSON(w, http.StatusOK, map[string]any{"chunks": toChunkViews(chunks)})
}

func (s *Server) handleMintSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.registry.MintSnapshot(mux.Vars(r)["tick"], r.URL.Query().Get("holder"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	var holders []string
	if raw, ok := r.URL.Query()["holder"]; ok {
		holders = raw
	}

	snap, err := s.registry.LeaderboardSnapshot(mux.Vars(r)["tick"], holders)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleMintHistory(w http.ResponseWriter, r *http.Request) {
	tick := mux.Vars(r)["tick"]

	// Verify the tick exists so unknown ticks 404 instead of returning
	// an empty history.
	if _, err := s.registry.Tick(tick); err != nil {
		writeError(w, err)
		return
	}

	if s.mintEvents == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "mint history not available", Code: "not_available"})
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeBadRequest(w, "invalid limit")
			return
		}
		limit = n
	}

	events, err := s.mintEvents.ListByTick(r.Context(), tick, limit)
	if err != nil {
		s.logger.Printf("list mint events for %s: %v", tick, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "internal"})
		return
	}

	type eventView struct {
		Tick        string `json:"tick"`
		Holder      string `json:"holder"`
		Amount      uint64 `json:"amount"`
		Fee         uint64 `json:"fee"`
		TotalMinted uint64 `json:"total_minted"`
		Txs         uint64 `json:"txs"`
		ChunkID     string `json:"chunk_id"`
		MintedAt    int64  `json:"minted_at"`
	}
	views := make([]eventView, 0, len(events))
	for _, ev := range events {
		views = append(views, eventView{
			Tick:        ev.Tick,
			Holder:      ev.Holder,
			Amount:      ev.Amount,
			Fee:         ev.Fee,
			TotalMinted: ev.TotalMinted,
			Txs:         ev.Txs,
			ChunkID:     ev.ChunkID,
			MintedAt:    ev.MintedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": views})
}

type setPausedRequest struct {
	Paused bool `json:"paused"`
}

func (s *Server) handleSetPaused(w http.ResponseWriter, r *http.Request) {
	var req setPausedRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.registry.SetPaused(req.Paused)
	writeJSON(w, http.StatusOK, map[string]bool{"paused": req.Paused})
}

type setVersionRequest struct {
	Version uint64 `json:"version"`
}

func (s *Server) handleSetVersion(w http.ResponseWriter, r *http.Request) {
	var req setVersionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.registry.SetVersion(req.Version)
	writeJSON(w, http.StatusOK, map[string]uint64{"version": req.Version})
}

type setEnableToCoinRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleSetEnableToCoin(w http.ResponseWriter, r *http.Request) {
	var req setEnableToCoinRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.registry.SetEnableToCoin(mux.Vars(r)["tick"], req.Enabled); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enable_to_coin": req.Enabled})
}

type setMintCooldownRequest struct {
	Seconds uint64 `json:"seconds"`
}

func (s *Server) handleSetMintCooldown(w http.ResponseWriter, r *http.Request) {
	var req setMintCooldownRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.registry.SetMintCooldown(mux.Vars(r)["tick"], req.Seconds); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"mint_cd": req.Seconds})
}
