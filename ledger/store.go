/*
store.go - Persistence interfaces for accounts and the transaction log

PURPOSE:
  Defines the boundary between the engine and its storage. Different
  implementations can use in-memory maps (default) or SQLite.

APPEND-ONLY CONTRACT:
  TransactionLog has no Update or Delete. Records are immutable once
  appended. The log is ordered newest-first: Append inserts at the head.

SNAPSHOT CONTRACT:
  Every read returns a copy. Callers must never be able to mutate store
  internals through a returned value.

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory, the reference behavior
  - store/sqlite/sqlite.go: SQLite-backed durable option

SEE ALSO:
  - engine.go: Sole writer of both stores
  - query.go: Read-only consumer
*/
package ledger

import "context"

// CardStore holds account records keyed by card number.
type CardStore interface {
	// Get returns the account for cardNumber, or ErrCardNotFound.
	Get(ctx context.Context, cardNumber string) (Account, error)

	// Put creates or replaces the account record.
	Put(ctx context.Context, account Account) error

	// Accounts returns every account, in no particular order.
	// Named to avoid clashing with TransactionLog.All on stores that
	// implement both interfaces.
	Accounts(ctx context.Context) ([]Account, error)
}

// TransactionLog is the append-only record of processed attempts,
// ordered newest-first.
type TransactionLog interface {
	// Append inserts tx at the head of the log.
	// This is the ONLY write operation.
	Append(ctx context.Context, tx Transaction) error

	// ForCard returns the transactions for one card, preserving log order.
	ForCard(ctx context.Context, cardNumber string) ([]Transaction, error)

	// All returns the whole log, preserving log order.
	All(ctx context.Context) ([]Transaction, error)

	// LastID returns the highest transaction ID ever appended, or zero for
	// an empty log. Used to resume the ID sequence after a restart.
	LastID(ctx context.Context) (int64, error)
}
