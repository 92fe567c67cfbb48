package economy

import (
	"errors"
	"fmt"
)

// Every failure an operation can return maps to exactly one of these
// sentinels. Callers branch with errors.Is; the transport layer translates
// them to response codes.
var (
	// ErrRateLimited rejects a tap before any state mutation. Recoverable;
	// the caller should back off.
	ErrRateLimited = errors.New("too many taps")

	// ErrInsufficientEnergy and ErrInsufficientFunds are precondition
	// failures the player can correct; retrying without a state change fails
	// the same way.
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrInsufficientFunds  = errors.New("insufficient balance")

	// ErrNotFound covers missing or inactive catalog entities.
	ErrNotFound = errors.New("not found")

	// Idempotence guards.
	ErrAlreadyCompleted = errors.New("already completed")
	ErrAlreadyUsed      = errors.New("promo code already used")
	ErrAlreadyClaimed   = errors.New("already claimed today")

	// Promo capacity and lifetime exhaustion.
	ErrLimitReached = errors.New("promo code limit reached")
	ErrExpired      = errors.New("promo code expired")

	// ErrInvalidState marks malformed timestamps or rows that violate a
	// state-machine precondition. Fatal to the single operation.
	ErrInvalidState = errors.New("invalid state")

	// ErrStorage wraps ledger-store failures; the transport layer maps it to
	// a retryable response.
	ErrStorage = errors.New("storage error")
)

// storageErr attaches context to a ledger-store failure while keeping it
// matchable as ErrStorage.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
