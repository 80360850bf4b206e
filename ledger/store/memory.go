// Package store provides in-memory implementations of the ledger storage
// interfaces. This is the reference behavior: state lives for the life of
// the process and resets on restart.
package store

import (
	"context"
	"sync"

	"github.com/warp/card-engine/ledger"
)

// =============================================================================
// MEMORY CARD STORE
// =============================================================================

type MemoryCards struct {
	mu       sync.RWMutex
	accounts map[string]ledger.Account
}

func NewMemoryCards() *MemoryCards {
	return &MemoryCards{accounts: make(map[string]ledger.Account)}
}

func (m *MemoryCards) Get(_ context.Context, cardNumber string) (ledger.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[cardNumber]
	if !ok {
		return ledger.Account{}, ledger.ErrCardNotFound
	}
	return account, nil
}

func (m *MemoryCards) Put(_ context.Context, account ledger.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.CardNumber] = account
	return nil
}

func (m *MemoryCards) Accounts(_ context.Context) ([]ledger.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ledger.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		result = append(result, account)
	}
	return result, nil
}

// =============================================================================
// MEMORY TRANSACTION LOG - Append-only, newest-first
// =============================================================================

type MemoryLog struct {
	mu  sync.RWMutex
	txs []ledger.Transaction // head is the newest record
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append inserts tx at the head. Append-only: no update, no delete.
func (m *MemoryLog) Append(_ context.Context, tx ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append([]ledger.Transaction{tx}, m.txs...)
	return nil
}

func (m *MemoryLog) ForCard(_ context.Context, cardNumber string) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []ledger.Transaction
	for _, tx := range m.txs {
		if tx.CardNumber == cardNumber {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (m *MemoryLog) All(_ context.Context) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ledger.Transaction, len(m.txs))
	copy(result, m.txs)
	return result, nil
}

func (m *MemoryLog) LastID(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last int64
	for _, tx := range m.txs {
		if tx.ID > last {
			last = tx.ID
		}
	}
	return last, nil
}
