package domain

import "errors"

// Ledger error kinds. Every operation fails fast: the first failed check
// aborts the call with one of these and no partial state survives.
var (
	// ErrVersionNotAllowed is returned when the registry version has been
	// raised past the highest version this build understands.
	ErrVersionNotAllowed = errors.New("registry version not allowed")

	// ErrSystemPaused is returned while the pause switch is on.
	ErrSystemPaused = errors.New("system paused")

	// ErrTickExists is returned when deploying a tick that is already registered.
	ErrTickExists = errors.New("tick already deployed")

	// ErrTickNotFound is returned when the tick is not registered.
	ErrTickNotFound = errors.New("tick not found")

	// ErrInvalidTickFormat is returned when a tick is not exactly 4 characters
	// of [a-z0-9].
	ErrInvalidTickFormat = errors.New("invalid tick format")

	// ErrNotStarted is returned when minting before the tick's start time.
	ErrNotStarted = errors.New("minting not started")

	// ErrMintLimitExceeded is returned when a single mint exceeds the per-mint limit.
	ErrMintLimitExceeded = errors.New("amount exceeds per-mint limit")

	// ErrSupplyExceeded is returned when a mint would push total_minted past max.
	ErrSupplyExceeded = errors.New("max supply exceeded")

	// ErrFeeInsufficient is returned when the payment does not cover the mint fee.
	ErrFeeInsufficient = errors.New("insufficient mint fee")

	// ErrMintTooFast is returned when the holder's mint cooldown has not elapsed.
	ErrMintTooFast = errors.New("mint cooldown not elapsed")

	// ErrPerUserLimitExceeded is returned when a mint would push the holder's
	// lifetime minted amount past the per-holder cap.
	ErrPerUserLimitExceeded = errors.New("per-holder mint limit exceeded")

	// ErrInsufficientBalance is returned when input chunks do not cover the
	// requested amount.
	ErrInsufficientBalance = errors.New("insufficient chunk balance")

	// ErrInvalidAmount is returned for zero or inexact amounts, and for
	// sums that overflow uint64.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTickMismatch is returned when an input chunk belongs to another tick.
	ErrTickMismatch = errors.New("chunk tick mismatch")

	// ErrToCoinNotEnabled is reserved for the coin-conversion integration.
	// No current operation returns it.
	ErrToCoinNotEnabled = errors.New("to-coin conversion not enabled")

	// ErrInvalidAddress is returned when a holder identity is not a
	// base58-encoded 32-byte ed25519 point.
	ErrInvalidAddress = errors.New("invalid holder address")

	// ErrChunkNotFound is returned when a chunk id does not name a live chunk.
	ErrChunkNotFound = errors.New("chunk not found")

	// ErrChunkNotOwned is returned when the caller does not own an input chunk.
	ErrChunkNotOwned = errors.New("chunk not owned by caller")
)
