/*
Package sqlite provides a SQLite-backed implementation of the ledger
storage interfaces.

PURPOSE:
  Implements ledger.CardStore and ledger.TransactionLog on SQLite so the
  engine can survive restarts. The default deployment stays in-memory;
  this backend is selected via CARD_ENGINE_STORE_BACKEND=sqlite.

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE is ever issued against the transactions table. The
  accounts table is updated only through Put, which the engine calls inside
  its per-card critical section.

ORDERING:
  The log contract is newest-first. Transaction IDs are strictly
  increasing, so reads order by id DESC.

WAL MODE:
  Opened with WAL so readers don't block the single writer.

USAGE:
  st, err := sqlite.Open("./cards.db")
  if err != nil { ... }
  defer st.Close()
  engine := ledger.NewEngine(st, st, seq, logger)

SEE ALSO:
  - ledger/store.go: Interface definitions
  - ledger/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/warp/card-engine/ledger"
)

const timestampLayout = time.RFC3339Nano

// Store implements both storage interfaces over one SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates a store at dbPath. Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate database")
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Accounts (mutated in place by the engine only)
	CREATE TABLE IF NOT EXISTS accounts (
		card_number TEXT PRIMARY KEY,
		pin_digest  TEXT NOT NULL,
		balance     TEXT NOT NULL,
		holder_name TEXT NOT NULL
	);

	-- Transactions (append-only log; no UPDATE, no DELETE)
	CREATE TABLE IF NOT EXISTS transactions (
		id           INTEGER PRIMARY KEY,
		card_number  TEXT NOT NULL,
		tx_type      TEXT NOT NULL,
		amount       TEXT NOT NULL,
		timestamp    TEXT NOT NULL,
		status       TEXT NOT NULL,
		reason       TEXT,
		reference_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_card
		ON transactions(card_number);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CARD STORE
// =============================================================================

func (s *Store) Get(ctx context.Context, cardNumber string) (ledger.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT card_number, pin_digest, balance, holder_name
		 FROM accounts WHERE card_number = ?`, cardNumber)

	var account ledger.Account
	var balance string
	err := row.Scan(&account.CardNumber, &account.PINDigest, &balance, &account.HolderName)
	if err == sql.ErrNoRows {
		return ledger.Account{}, ledger.ErrCardNotFound
	}
	if err != nil {
		return ledger.Account{}, errors.Wrap(err, "load account")
	}
	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return ledger.Account{}, errors.Wrap(err, "parse balance")
	}
	return account, nil
}

func (s *Store) Put(ctx context.Context, account ledger.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (card_number, pin_digest, balance, holder_name)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(card_number) DO UPDATE SET
		   balance = excluded.balance,
		   pin_digest = excluded.pin_digest,
		   holder_name = excluded.holder_name`,
		account.CardNumber, account.PINDigest, account.Balance.String(), account.HolderName)
	return errors.Wrap(err, "put account")
}

func (s *Store) Accounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT card_number, pin_digest, balance, holder_name FROM accounts`)
	if err != nil {
		return nil, errors.Wrap(err, "list accounts")
	}
	defer rows.Close()

	var result []ledger.Account
	for rows.Next() {
		var account ledger.Account
		var balance string
		if err := rows.Scan(&account.CardNumber, &account.PINDigest, &balance, &account.HolderName); err != nil {
			return nil, errors.Wrap(err, "scan account")
		}
		account.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, errors.Wrap(err, "parse balance")
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

// =============================================================================
// TRANSACTION LOG
// =============================================================================

func (s *Store) Append(ctx context.Context, tx ledger.Transaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, card_number, tx_type, amount, timestamp, status, reason, reference_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.CardNumber, string(tx.Type), tx.Amount.String(),
		tx.Timestamp.UTC().Format(timestampLayout),
		string(tx.Status), nullable(tx.Reason), tx.ReferenceID)
	return errors.Wrap(err, "append transaction")
}

func (s *Store) ForCard(ctx context.Context, cardNumber string) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, card_number, tx_type, amount, timestamp, status, reason, reference_id
		 FROM transactions WHERE card_number = ? ORDER BY id DESC`, cardNumber)
}

func (s *Store) All(ctx context.Context) ([]ledger.Transaction, error) {
	return s.queryTransactions(ctx,
		`SELECT id, card_number, tx_type, amount, timestamp, status, reason, reference_id
		 FROM transactions ORDER BY id DESC`)
}

func (s *Store) LastID(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM transactions`).Scan(&last)
	if err != nil {
		return 0, errors.Wrap(err, "last transaction id")
	}
	return last.Int64, nil
}

func (s *Store) queryTransactions(ctx context.Context, q string, args ...any) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query transactions")
	}
	defer rows.Close()

	var result []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var tx ledger.Transaction
	var txType, amount, timestamp, status string
	var reason, referenceID sql.NullString

	err := rows.Scan(&tx.ID, &tx.CardNumber, &txType, &amount, &timestamp, &status, &reason, &referenceID)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "scan transaction")
	}

	tx.Type = ledger.Type(txType)
	tx.Status = ledger.Status(status)
	tx.Reason = reason.String
	tx.ReferenceID = referenceID.String

	tx.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "parse amount")
	}
	tx.Timestamp, err = time.Parse(timestampLayout, timestamp)
	if err != nil {
		return ledger.Transaction{}, errors.Wrap(err, "parse timestamp")
	}
	return tx, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
