package auth

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// CardHasher turns card numbers into opaque lookup codes.
type CardHasher interface {
	Hash(cardNumber string) (string, error)
}

// Blake2bHasher derives codes with keyed BLAKE2b-256, so equal cards map to equal codes
// while codes cannot be recomputed without the key.
type Blake2bHasher struct {
	key []byte
}

// NewBlake2bHasher creates Blake2bHasher. Keys longer than 64 bytes are rejected.
func NewBlake2bHasher(key string) (*Blake2bHasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("card hash key longer than %d bytes", blake2b.Size)
	}
	return &Blake2bHasher{key: []byte(key)}, nil
}

// Hash returns hex encoded keyed digest of the card number.
func (h *Blake2bHasher) Hash(cardNumber string) (string, error) {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		return "", fmt.Errorf("init blake2b: %w", err)
	}
	mac.Write([]byte(cardNumber))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
