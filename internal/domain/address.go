package domain

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// addressLength is the raw byte length of a holder address.
const addressLength = 32

// ValidateAddress checks that addr is a base58-encoded 32-byte canonical
// ed25519 point. Returns ErrInvalidAddress otherwise.
func ValidateAddress(addr string) error {
	raw, err := base58.Decode(addr)
	if err != nil || len(raw) != addressLength {
		return ErrInvalidAddress
	}
	if !isOnCurve(raw) {
		return ErrInvalidAddress
	}
	return nil
}

func isOnCurve(point []byte) bool {
	if len(point) != addressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
