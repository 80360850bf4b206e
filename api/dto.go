/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the wire contract.

ENVELOPE:
  Every endpoint responds with the same envelope:

    {"success": bool, "data": ..., "message": "..."}

  A processing failure below the gateway still carries the FAILED
  transaction in "data", since declines are part of the account's history.

VALIDATION:
  Request bodies validate themselves with ozzo-validation before any domain
  code runs. Shape validation here is distinct from the gateway's admission
  policy: the gateway owns the issuer-range and positivity rules.

SEE ALSO:
  - handlers.go: Uses these types
  - gateway/gateway.go: Admission policy
*/
package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/warp/card-engine/auth"
	"github.com/warp/card-engine/ledger"
)

// =============================================================================
// ENVELOPE
// =============================================================================

// Response is the uniform API envelope.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// TransactionRequest is the body of POST /api/transactions.
type TransactionRequest struct {
	CardNumber string          `json:"cardNumber"`
	PIN        string          `json:"pin"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

// Validate checks the request shape. Policy checks (issuer range, amount
// positivity) belong to the gateway, not here.
func (r TransactionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CardNumber, validation.Required),
		validation.Field(&r.PIN, validation.Required),
		validation.Field(&r.Type, validation.Required,
			validation.In(string(ledger.TypeTopUp), string(ledger.TypeWithdraw))),
	)
}

// ToRequest converts the wire shape to the domain request.
func (r TransactionRequest) ToRequest() ledger.Request {
	return ledger.Request{
		CardNumber: r.CardNumber,
		PIN:        r.PIN,
		Amount:     r.Amount,
		Type:       ledger.Type(r.Type),
	}
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// TransactionDTO represents one log record in API responses.
type TransactionDTO struct {
	ID          int64  `json:"id"`
	CardNumber  string `json:"cardNumber"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	ReferenceID string `json:"referenceId,omitempty"`
}

func toTransactionDTO(tx ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		CardNumber:  tx.CardNumber,
		Type:        string(tx.Type),
		Amount:      tx.Amount.StringFixed(2),
		Timestamp:   tx.Timestamp.UTC().Format(time.RFC3339),
		Status:      string(tx.Status),
		Reason:      tx.Reason,
		ReferenceID: tx.ReferenceID,
	}
}

func toTransactionDTOs(txs []ledger.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		dtos[i] = toTransactionDTO(tx)
	}
	return dtos
}

// AccountDTO represents an account in API responses. The PIN digest never
// leaves the server.
type AccountDTO struct {
	CardNumber string `json:"cardNumber"`
	Balance    string `json:"balance"`
	HolderName string `json:"holderName"`
}

func toAccountDTO(account ledger.Account) AccountDTO {
	return AccountDTO{
		CardNumber: account.CardNumber,
		Balance:    account.Balance.StringFixed(2),
		HolderName: account.HolderName,
	}
}

// UserDTO represents a resolved login in API responses.
type UserDTO struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	CardNumber string `json:"cardNumber,omitempty"`
}

func toUserDTO(user auth.User) UserDTO {
	return UserDTO{
		Username:   user.Username,
		Role:       string(user.Role),
		Name:       user.Name,
		CardNumber: user.CardNumber,
	}
}
