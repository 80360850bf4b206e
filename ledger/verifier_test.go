package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/card-engine/ledger"
)

func TestHashPIN_Deterministic(t *testing.T) {
	assert.Equal(t, ledger.HashPIN("1234"), ledger.HashPIN("1234"))
	assert.NotEqual(t, ledger.HashPIN("1234"), ledger.HashPIN("1235"))
}

func TestHashPIN_KnownDigest(t *testing.T) {
	// Reference digest for PIN "1234", pinned so stored digests stay
	// compatible across releases.
	assert.Equal(t,
		"03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4",
		ledger.HashPIN("1234"))
}

func TestHashPIN_FixedLength(t *testing.T) {
	// GIVEN: Secrets of wildly different lengths
	// THEN: Digests are always 64 hex characters

	for _, secret := range []string{"", "1", "1234", "a-very-long-secret-value-that-keeps-going"} {
		assert.Len(t, ledger.HashPIN(secret), 64)
	}
}

func TestVerifyPIN(t *testing.T) {
	digest := ledger.HashPIN("1234")

	assert.True(t, ledger.VerifyPIN(digest, "1234"))
	assert.False(t, ledger.VerifyPIN(digest, "0000"))
	assert.False(t, ledger.VerifyPIN(digest, ""))
	assert.False(t, ledger.VerifyPIN("", "1234"))
}
