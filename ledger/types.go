/*
Package ledger provides the core card transaction engine ("System 2").

PURPOSE:
  This package contains the domain types and the transactional pipeline for
  moving money against a card: credential verification, balance mutation,
  and an append-only transaction log recording every processed attempt.

KEY CONCEPTS IN THIS FILE (types.go):
  - Account: A card's balance and credential record (mutable)
  - Transaction: An immutable log entry for one processed attempt
  - Request: The ephemeral input to one pipeline invocation

DESIGN PRINCIPLES:
  1. Immutability: Transactions are never modified after creation
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Auditability: Failed attempts are logged alongside successes
  4. Secrecy: The plaintext PIN lives only inside a Request, never in a store

SEE ALSO:
  - engine.go: The verify -> mutate -> append pipeline
  - store.go: Persistence interfaces
  - query.go: Read-only projections
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TRANSACTION TYPES AND STATUSES
// =============================================================================

// Type identifies the direction of a balance-affecting operation.
type Type string

const (
	TypeTopUp    Type = "topup"    // Credit the account
	TypeWithdraw Type = "withdraw" // Debit the account
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeTopUp || t == TypeWithdraw
}

// Status is the terminal outcome of a processed request.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Decline reasons recorded on FAILED transactions. This is a closed
// vocabulary: the log never carries free-form failure text.
const (
	ReasonInvalidPIN        = "Invalid PIN"
	ReasonInsufficientFunds = "Insufficient Funds"
)

// =============================================================================
// ACCOUNT - A card's balance and credential record
// =============================================================================

// Account is the mutable record behind one card. CardNumber and HolderName
// are immutable once created; Balance is mutated only by the Engine and is
// never observably negative.
type Account struct {
	CardNumber string
	PINDigest  string // hex-encoded SHA-256 of the PIN, never the PIN itself
	Balance    decimal.Decimal
	HolderName string
}

// =============================================================================
// TRANSACTION - Immutable record of one processed attempt
// =============================================================================

// Transaction records one attempt that reached the Engine's verification
// stage, whether it succeeded or failed. Records are append-only and are
// never mutated or deleted.
type Transaction struct {
	ID          int64           // strictly increasing, unique across the process
	CardNumber  string          // foreign reference to Account
	Type        Type            // topup | withdraw
	Amount      decimal.Decimal // requested magnitude, recorded even on failure
	Timestamp   time.Time       // when the Engine processed the request
	Status      Status          // SUCCESS | FAILED
	Reason      string          // decline reason; empty on SUCCESS
	ReferenceID string          // correlation id for tracing, not an identity
}

// =============================================================================
// REQUEST - Ephemeral pipeline input
// =============================================================================

// Request is the input to one pipeline invocation. It exists only for the
// duration of the call; the PIN is never persisted or logged.
type Request struct {
	CardNumber string
	PIN        string
	Amount     decimal.Decimal
	Type       Type
}
