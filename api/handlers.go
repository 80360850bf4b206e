/*
handlers.go - HTTP handlers for the card transaction API

PURPOSE:
  Exposes the gateway, query service, and login resolver over REST.
  Handlers parse and validate input, delegate to domain code, and map
  outcomes onto the uniform response envelope.

ERROR MAPPING:
  Admission rejections (gateway, unknown card)  -> success=false, no data
  Declines (wrong PIN, insufficient funds)      -> success=false, data=FAILED tx
  Success                                       -> success=true, data=SUCCESS tx
  Validation errors                             -> 400, success=false
  Store failures                                -> 500, success=false

  Note that declines return 200 with success=false: the request was
  processed to a definite outcome and the caller is expected to re-query
  history afterwards either way.

SEE ALSO:
  - dto.go: Wire types
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/warp/card-engine/auth"
	"github.com/warp/card-engine/gateway"
	"github.com/warp/card-engine/ledger"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Gateway  *gateway.Gateway
	Query    *ledger.Query
	Resolver auth.Resolver
	Logger   *logrus.Logger
}

// NewHandler creates a handler over the given collaborators.
func NewHandler(gw *gateway.Gateway, query *ledger.Query, resolver auth.Resolver, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{Gateway: gw, Query: query, Resolver: resolver, Logger: logger}
}

// =============================================================================
// TRANSACTION HANDLERS
// =============================================================================

// SubmitTransaction handles POST /api/transactions.
func (h *Handler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.Gateway.Submit(r.Context(), req.ToRequest())
	if err != nil {
		var declined *ledger.DeclinedError
		switch {
		case errors.As(err, &declined):
			// Processed and logged; the FAILED record travels with the response.
			writeJSON(w, http.StatusOK, Response{
				Success: false,
				Data:    toTransactionDTO(*declined.Transaction),
				Message: declined.Reason,
			})
		case ledger.IsAdmission(err):
			writeJSON(w, http.StatusOK, Response{Success: false, Message: admissionMessage(err)})
		default:
			h.Logger.WithError(err).Error("transaction processing failed")
			writeFailure(w, http.StatusInternalServerError, "Failed to process transaction")
		}
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    toTransactionDTO(*tx),
		Message: "Transaction Successful",
	})
}

// admissionMessage maps admission sentinels to user-facing text. The
// gateway identifies itself as the rejecting party for its own checks.
func admissionMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrCardNotSupported):
		return "Gateway Error: Card range not supported. Only cards starting with '4' are allowed."
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "Gateway Error: Amount must be positive."
	case errors.Is(err, ledger.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, ledger.ErrInvalidType):
		return "Unknown transaction type"
	}
	return err.Error()
}

// =============================================================================
// QUERY HANDLERS
// =============================================================================

// GetAccount handles GET /api/cards/{cardNumber}.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")

	account, err := h.Query.Account(r.Context(), cardNumber)
	if err != nil {
		if errors.Is(err, ledger.ErrCardNotFound) {
			writeFailure(w, http.StatusNotFound, "Card not found")
			return
		}
		h.Logger.WithError(err).Error("account lookup failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: toAccountDTO(account)})
}

// GetCardTransactions handles GET /api/cards/{cardNumber}/transactions.
func (h *Handler) GetCardTransactions(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")

	txs, err := h.Query.TransactionsFor(r.Context(), cardNumber)
	if err != nil {
		h.Logger.WithError(err).Error("transaction history lookup failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: toTransactionDTOs(txs)})
}

// GetAllTransactions handles GET /api/transactions.
func (h *Handler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Query.AllTransactions(r.Context())
	if err != nil {
		h.Logger.WithError(err).Error("global transaction lookup failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: toTransactionDTOs(txs)})
}

// =============================================================================
// LOGIN HANDLER
// =============================================================================

// Login handles POST /api/login. One-shot credential resolution; there is
// no session or token lifecycle.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Resolver.Resolve(req.Username, req.Password)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: toUserDTO(*user)})
}

// Healthz handles GET /api/healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}
