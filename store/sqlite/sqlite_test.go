package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/card-engine/ledger"
	"github.com/warp/card-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleTx(id int64, card string, status ledger.Status, reason string) ledger.Transaction {
	return ledger.Transaction{
		ID:          id,
		CardNumber:  card,
		Type:        ledger.TypeWithdraw,
		Amount:      decimal.RequireFromString("42.50"),
		Timestamp:   time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
		Status:      status,
		Reason:      reason,
		ReferenceID: "ref-1",
	}
}

func TestStore_AccountRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	account := ledger.Account{
		CardNumber: "4123456789012345",
		PINDigest:  ledger.HashPIN("1234"),
		Balance:    decimal.RequireFromString("1000.00"),
		HolderName: "John Doe",
	}
	require.NoError(t, st.Put(ctx, account))

	got, err := st.Get(ctx, account.CardNumber)
	require.NoError(t, err)
	assert.Equal(t, account.CardNumber, got.CardNumber)
	assert.Equal(t, account.PINDigest, got.PINDigest)
	assert.Equal(t, account.HolderName, got.HolderName)
	assert.True(t, got.Balance.Equal(account.Balance))
}

func TestStore_Put_UpdatesBalanceInPlace(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	account := ledger.Account{CardNumber: "4111", Balance: decimal.NewFromInt(100), PINDigest: "d", HolderName: "Jane"}
	require.NoError(t, st.Put(ctx, account))

	account.Balance = decimal.NewFromInt(80)
	require.NoError(t, st.Put(ctx, account))

	got, err := st.Get(ctx, "4111")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(80)))

	all, err := st.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "Put replaces, never duplicates")
}

func TestStore_UnknownCard(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), "4000")
	assert.ErrorIs(t, err, ledger.ErrCardNotFound)
}

func TestStore_TransactionLog_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, sampleTx(1001, "4111", ledger.StatusSuccess, "")))
	require.NoError(t, st.Append(ctx, sampleTx(1002, "4111", ledger.StatusFailed, ledger.ReasonInvalidPIN)))
	require.NoError(t, st.Append(ctx, sampleTx(1003, "4222", ledger.StatusSuccess, "")))

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1003), all[0].ID)
	assert.Equal(t, int64(1001), all[2].ID)

	forCard, err := st.ForCard(ctx, "4111")
	require.NoError(t, err)
	require.Len(t, forCard, 2)
	assert.Equal(t, int64(1002), forCard[0].ID)
	assert.Equal(t, ledger.ReasonInvalidPIN, forCard[0].Reason)
}

func TestStore_TransactionRoundTrip_PreservesFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	tx := sampleTx(1001, "4111", ledger.StatusFailed, ledger.ReasonInsufficientFunds)
	require.NoError(t, st.Append(ctx, tx))

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, tx.Type, got.Type)
	assert.Equal(t, tx.Status, got.Status)
	assert.Equal(t, tx.Reason, got.Reason)
	assert.Equal(t, tx.ReferenceID, got.ReferenceID)
	assert.True(t, got.Amount.Equal(tx.Amount))
	assert.True(t, got.Timestamp.Equal(tx.Timestamp))
}

func TestStore_LastID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	last, err := st.LastID(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)

	require.NoError(t, st.Append(ctx, sampleTx(1001, "4111", ledger.StatusSuccess, "")))
	require.NoError(t, st.Append(ctx, sampleTx(1005, "4111", ledger.StatusSuccess, "")))

	last, err = st.LastID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1005), last)
}

func TestStore_DuplicateID_Rejected(t *testing.T) {
	// The id column is the primary key; the log can never hold two records
	// with the same id.
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, sampleTx(1001, "4111", ledger.StatusSuccess, "")))
	err := st.Append(ctx, sampleTx(1001, "4222", ledger.StatusSuccess, ""))
	assert.Error(t, err)
}

func TestStore_WorksAsEngineBackend(t *testing.T) {
	// GIVEN: An engine wired to the SQLite store for both interfaces
	// WHEN: Running the concrete 1000.00 scenario
	// THEN: Same outcomes as the in-memory reference behavior

	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, ledger.Account{
		CardNumber: "4123456789012345",
		PINDigest:  ledger.HashPIN("1234"),
		Balance:    decimal.RequireFromString("1000.00"),
		HolderName: "John Doe",
	}))

	engine := ledger.NewEngine(st, st, ledger.NewSequence(1000), nil)

	tx, err := engine.Process(ctx, ledger.Request{
		CardNumber: "4123456789012345",
		PIN:        "1234",
		Amount:     decimal.RequireFromString("200"),
		Type:       ledger.TypeWithdraw,
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusSuccess, tx.Status)

	account, err := st.Get(ctx, "4123456789012345")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("800.00")))
}
