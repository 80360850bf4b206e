/*
query.go - Read-only projections over the card store and transaction log

PURPOSE:
  The Query service is the read side of the engine: account detail,
  per-card history, and the global log. It never mutates state and every
  result is a snapshot copy, so two calls with no intervening mutation
  return identical data.
*/
package ledger

import "context"

// Query exposes read-only access to the same stores the Engine writes.
type Query struct {
	cards CardStore
	log   TransactionLog
}

func NewQuery(cards CardStore, log TransactionLog) *Query {
	return &Query{cards: cards, log: log}
}

// Account returns the account for cardNumber, or ErrCardNotFound.
func (q *Query) Account(ctx context.Context, cardNumber string) (Account, error) {
	return q.cards.Get(ctx, cardNumber)
}

// TransactionsFor returns one card's history, newest-first.
func (q *Query) TransactionsFor(ctx context.Context, cardNumber string) ([]Transaction, error) {
	return q.log.ForCard(ctx, cardNumber)
}

// AllTransactions returns the whole log, newest-first.
func (q *Query) AllTransactions(ctx context.Context) ([]Transaction, error) {
	return q.log.All(ctx)
}
