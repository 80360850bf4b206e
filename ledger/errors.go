/*
errors.go - Centralized error types for the transaction engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers branch with errors.Is / errors.As; no error here is process-fatal.

ERROR CATEGORIES:
  1. Admission errors - Request rejected before any ledger write
  2. Decline errors   - Request processed and logged as FAILED
  3. Store errors     - Persistence-level failures

SEE ALSO:
  - engine.go: Produces decline errors
  - gateway package: Produces admission errors
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCardNotFound is returned when the card number is unknown to the
	// store. No transaction record is created: there is no account to
	// attribute the record to.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidPIN is returned when the supplied PIN digest does not match
	// the stored one. A FAILED transaction is logged.
	ErrInvalidPIN = errors.New("invalid PIN")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current
	// balance. A FAILED transaction is logged.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCardNotSupported is returned by the gateway when the card number is
	// outside the accepted issuer range. No transaction record is created.
	ErrCardNotSupported = errors.New("card range not supported")

	// ErrNonPositiveAmount is returned by the gateway when the requested
	// amount is zero or negative. No transaction record is created.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrInvalidType is returned when the request names an unknown
	// transaction type.
	ErrInvalidType = errors.New("unknown transaction type")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DeclinedError reports a request that was processed and logged as FAILED.
// It carries the logged transaction so callers can surface it: a decline is
// part of the account's history, not a void.
type DeclinedError struct {
	Reason      string
	Transaction *Transaction
	cause       error
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("transaction declined: %s", e.Reason)
}

func (e *DeclinedError) Unwrap() error {
	return e.cause
}

// IsDeclined reports whether err represents a processed-and-logged decline,
// as opposed to an admission rejection that left no record.
func IsDeclined(err error) bool {
	var de *DeclinedError
	return errors.As(err, &de)
}

// IsAdmission reports whether err was raised before any ledger write.
func IsAdmission(err error) bool {
	return errors.Is(err, ErrCardNotSupported) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrCardNotFound)
}
