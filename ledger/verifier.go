/*
verifier.go - One-way PIN digest and comparison

PURPOSE:
  A card's PIN is stored only as a hex-encoded SHA-256 digest. The same
  function produces the stored reference digest at seed time and the
  comparison digest at verification time; digest equality is the sole
  authentication signal.

SECURITY NOTES:
  - Digests are compared with crypto/subtle so equality checking does not
    leak match length through timing.
  - Full timing-channel hardening (key stretching, salts) is out of scope
    for this engine, but nothing here precludes adding it.
*/
package ledger

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPIN returns the hex-encoded SHA-256 digest of secret. Deterministic
// and fixed-length regardless of input length.
func HashPIN(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyPIN reports whether pin hashes to digest, in constant time.
func VerifyPIN(digest, pin string) bool {
	computed := HashPIN(pin)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
