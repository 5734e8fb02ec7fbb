package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"tickmint/internal/domain"
)

// errorBody is the JSON error envelope returned on every failed request.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorCode maps a domain error to its stable machine-readable code.
var errorCodes = map[error]string{
	domain.ErrVersionNotAllowed:    "version_not_allowed",
	domain.ErrSystemPaused:         "system_paused",
	domain.ErrTickExists:           "tick_exists",
	domain.ErrTickNotFound:         "tick_not_found",
	domain.ErrInvalidTickFormat:    "invalid_tick_format",
	domain.ErrNotStarted:           "not_started",
	domain.ErrMintLimitExceeded:    "mint_limit_exceeded",
	domain.ErrSupplyExceeded:       "supply_exceeded",
	domain.ErrFeeInsufficient:      "fee_insufficient",
	domain.ErrMintTooFast:          "mint_too_fast",
	domain.ErrPerUserLimitExceeded: "per_user_limit_exceeded",
	domain.ErrInsufficientBalance:  "insufficient_balance",
	domain.ErrInvalidAmount:        "invalid_amount",
	domain.ErrTickMismatch:         "tick_mismatch",
	domain.ErrToCoinNotEnabled:     "to_coin_not_enabled",
	domain.ErrInvalidAddress:       "invalid_address",
	domain.ErrChunkNotFound:        "chunk_not_found",
	domain.ErrChunkNotOwned:        "chunk_not_owned",
}

// errorStatus maps a domain error to its HTTP status. Errors not listed
// here respond with 400.
var errorStatuses = map[error]int{
	domain.ErrSystemPaused:  http.StatusServiceUnavailable,
	domain.ErrTickExists:    http.StatusConflict,
	domain.ErrTickNotFound:  http.StatusNotFound,
	domain.ErrChunkNotFound: http.StatusNotFound,
	domain.ErrNotStarted:    http.StatusForbidden,
	domain.ErrChunkNotOwned: http.StatusForbidden,
	domain.ErrMintTooFast:   http.StatusTooManyRequests,
}

// writeError maps err to a status code and JSON body. Unknown errors are
// reported as 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	for sentinel, code := range errorCodes {
		if errors.Is(err, sentinel) {
			status := http.StatusBadRequest
			if s, ok := errorStatuses[sentinel]; ok {
				status = s
			}
			writeJSON(w, status, errorBody{Error: sentinel.Error(), Code: code})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "internal"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Code: "bad_request"})
}
