package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tendermint/ics10-grandpa/crypto"
)

// Hash is a blake2b-256 digest.
type Hash [crypto.HashSize]byte

// HashFromBytes copies bz into a Hash. bz must be exactly 32 bytes long.
func HashFromBytes(bz []byte) (Hash, error) {
	var h Hash
	if len(bz) != len(h) {
		return h, fmt.Errorf("invalid hash size: expected %d, got %d", len(h), len(bz))
	}
	copy(h[:], bz)
	return h, nil
}

// Bytes returns a copy of the hash.
func (h Hash) Bytes() []byte {
	bz := make([]byte, len(h))
	copy(bz, h[:])
	return bz
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the 0x prefixed hex form used by Substrate tooling.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// ParseHash parses a hex encoded hash with an optional 0x prefix.
func ParseHash(s string) (Hash, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Hash{}, fmt.Errorf("parse hash: %w", err)
	}
	return HashFromBytes(bz)
}
