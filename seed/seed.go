/*
Package seed populates the stores with the fixed initial data set.

PURPOSE:
  The reference deployment starts with one account, one historical SUCCESS
  transaction, and two login users (a customer tied to the seeded card and
  an admin). Seeding is idempotent per process start: it writes directly
  through the store interfaces, not through the gateway, so no admission
  checks or new log records apply beyond the historical entry itself.
*/
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/card-engine/auth"
	"github.com/warp/card-engine/ledger"
)

const (
	// CardNumber is the seeded card. The PIN is 1234.
	CardNumber = "4123456789012345"
	pin        = "1234"
	holderName = "John Doe"
)

// SequenceBase is where live transaction IDs start. The historical seed
// record takes the first ID below the live range.
const SequenceBase = 1001

// Accounts writes the initial account and its historical top-up record.
// Call once at startup, before the engine serves requests.
func Accounts(ctx context.Context, cards ledger.CardStore, log ledger.TransactionLog) error {
	account := ledger.Account{
		CardNumber: CardNumber,
		PINDigest:  ledger.HashPIN(pin),
		Balance:    decimal.RequireFromString("1000.00"),
		HolderName: holderName,
	}
	if err := cards.Put(ctx, account); err != nil {
		return err
	}

	// Historical record: the deposit that funded the account yesterday.
	return log.Append(ctx, ledger.Transaction{
		ID:          SequenceBase,
		CardNumber:  CardNumber,
		Type:        ledger.TypeTopUp,
		Amount:      decimal.RequireFromString("1000.00"),
		Timestamp:   time.Now().Add(-24 * time.Hour),
		Status:      ledger.StatusSuccess,
		ReferenceID: uuid.NewString(),
	})
}

// Users returns the seeded login credentials.
func Users() []auth.Credential {
	return []auth.Credential{
		{
			User: auth.User{
				Username:   "cust1",
				Role:       auth.RoleCustomer,
				Name:       holderName,
				CardNumber: CardNumber,
			},
			PasswordDigest: ledger.HashPIN("pass"),
		},
		{
			User: auth.User{
				Username: "admin",
				Role:     auth.RoleAdmin,
				Name:     "Super Admin",
			},
			PasswordDigest: ledger.HashPIN("admin"),
		},
	}
}
