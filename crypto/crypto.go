package crypto

import (
	"golang.org/x/crypto/blake2b"
)

const (
	// HashSize is the size in bytes of a blake2b-256 digest.
	HashSize = blake2b.Size256
)

// Blake2b256 returns the blake2b-256 digest of bz, the hasher Substrate
// chains use for block hashes and storage commitments.
func Blake2b256(bz []byte) [HashSize]byte {
	return blake2b.Sum256(bz)
}

type PubKey interface {
	Bytes() []byte
	VerifySignature(msg []byte, sig []byte) bool
	Equals(PubKey) bool
	Type() string
}

type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) ([]byte, error)
	PubKey() PubKey
	Equals(PrivKey) bool
	Type() string
}

// BatchVerifier verifies many signatures at once.
type BatchVerifier interface {
	// Add appends an entry into the BatchVerifier.
	Add(key PubKey, message, signature []byte) error
	// Verify verifies all the entries in the BatchVerifier, and returns
	// if every signature in the batch is valid, and a vector of bools
	// indicating the verification status of each signature (in the order
	// that signatures were added to the batch).
	Verify() (bool, []bool)
}
