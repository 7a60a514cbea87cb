package shopsync

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultCustomerHashSalt is used when CUSTOMER_HASH_SALT is not configured.
const DefaultCustomerHashSalt = "luxury-heritage"

// HashCustomerEmail pseudonymizes a buyer email for repeat-customer
// analytics. The email is trimmed and lower-cased before hashing so the same
// mailbox always produces the same hash, then concatenated with the salt and
// SHA-256 hashed. The result is hex-encoded and one-way; the clear email is
// never stored. Returns "" for an empty email.
func HashCustomerEmail(email, salt string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return ""
	}
	if strings.TrimSpace(salt) == "" {
		salt = DefaultCustomerHashSalt
	}
	sum := sha256.Sum256([]byte(normalized + ":" + salt))
	return hex.EncodeToString(sum[:])
}
