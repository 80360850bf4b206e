/*
engine.go - The transaction pipeline ("System 2")

PURPOSE:
  The Engine is the sole mutator of account balances and the sole appender
  to the transaction log. One call to Process runs the full pipeline for a
  single request:

    1. Lookup:  resolve the card. Unknown card -> ErrCardNotFound, and NO
                log record (there is no account to attribute one to).
    2. Verify:  compare the PIN digest. Mismatch -> FAILED "Invalid PIN"
                record, DeclinedError.
    3. Balance: withdraw over balance -> FAILED "Insufficient Funds" record,
                DeclinedError. Top-ups always credit.
    4. Commit:  persist the account, append a SUCCESS record.

  Every terminal outcome from step 2 onward produces exactly one record;
  step 1 never does.

CONCURRENCY:
  Steps 1-4 are a read-modify-write on the account balance. The Engine
  serializes them per card number; requests against different cards proceed
  independently.

SEE ALSO:
  - gateway package: Stateless admission checks in front of this engine
  - query.go: Read side over the same stores
*/
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Engine owns account mutation and transaction history.
type Engine struct {
	cards CardStore
	log   TransactionLog
	seq   *Sequence
	clock func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-card critical sections

	logger *logrus.Logger
}

// NewEngine constructs an Engine over the given stores. The sequence must
// already be seeded past the log's highest existing ID.
func NewEngine(cards CardStore, log TransactionLog, seq *Sequence, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		cards:  cards,
		log:    log,
		seq:    seq,
		clock:  time.Now,
		locks:  make(map[string]*sync.Mutex),
		logger: logger,
	}
}

// cardLock returns the mutex guarding one card's critical section.
func (e *Engine) cardLock(cardNumber string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[cardNumber]
	if !ok {
		l = &sync.Mutex{}
		e.locks[cardNumber] = l
	}
	return l
}

// Process runs the pipeline for one request. On success it returns the
// SUCCESS transaction. On a decline it returns a *DeclinedError carrying
// the FAILED transaction. Admission-class failures (unknown card, unknown
// type) return a sentinel error and log nothing.
func (e *Engine) Process(ctx context.Context, req Request) (*Transaction, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}

	lock := e.cardLock(req.CardNumber)
	lock.Lock()
	defer lock.Unlock()

	// Step 1: lookup. No record on failure.
	account, err := e.cards.Get(ctx, req.CardNumber)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"card":   maskCard(req.CardNumber),
		"type":   req.Type,
		"amount": req.Amount.String(),
	}

	// Step 2: credential verification.
	if !VerifyPIN(account.PINDigest, req.PIN) {
		tx, err := e.decline(ctx, req, ReasonInvalidPIN)
		if err != nil {
			return nil, err
		}
		e.logger.WithFields(fields).WithField("tx_id", tx.ID).Warn("transaction declined: invalid PIN")
		return nil, &DeclinedError{Reason: ReasonInvalidPIN, Transaction: tx, cause: ErrInvalidPIN}
	}

	// Step 3: balance rule.
	switch req.Type {
	case TypeWithdraw:
		if account.Balance.LessThan(req.Amount) {
			tx, err := e.decline(ctx, req, ReasonInsufficientFunds)
			if err != nil {
				return nil, err
			}
			e.logger.WithFields(fields).WithField("tx_id", tx.ID).Warn("transaction declined: insufficient funds")
			return nil, &DeclinedError{Reason: ReasonInsufficientFunds, Transaction: tx, cause: ErrInsufficientFunds}
		}
		account.Balance = account.Balance.Sub(req.Amount)
	case TypeTopUp:
		account.Balance = account.Balance.Add(req.Amount)
	}

	// Step 4: commit.
	if err := e.cards.Put(ctx, account); err != nil {
		return nil, err
	}
	tx := e.record(req, StatusSuccess, "")
	if err := e.log.Append(ctx, tx); err != nil {
		return nil, err
	}

	e.logger.WithFields(fields).WithFields(logrus.Fields{
		"tx_id":   tx.ID,
		"balance": account.Balance.String(),
	}).Info("transaction committed")
	return &tx, nil
}

// decline appends a FAILED record for a verified-or-later stage failure.
func (e *Engine) decline(ctx context.Context, req Request, reason string) (*Transaction, error) {
	tx := e.record(req, StatusFailed, reason)
	if err := e.log.Append(ctx, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// record builds a transaction for the current request. The amount is stored
// as requested even on failure.
func (e *Engine) record(req Request, status Status, reason string) Transaction {
	return Transaction{
		ID:          e.seq.Next(),
		CardNumber:  req.CardNumber,
		Type:        req.Type,
		Amount:      req.Amount,
		Timestamp:   e.clock(),
		Status:      status,
		Reason:      reason,
		ReferenceID: uuid.NewString(),
	}
}

// maskCard keeps the issuer prefix and last four digits for log lines.
func maskCard(cardNumber string) string {
	if len(cardNumber) <= 8 {
		return "****"
	}
	return cardNumber[:4] + "********" + cardNumber[len(cardNumber)-4:]
}
