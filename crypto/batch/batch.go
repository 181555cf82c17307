package batch

import (
	"github.com/tendermint/ics10-grandpa/crypto"
	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
)

// CreateBatchVerifier checks if a key type implements the batch verifier interface.
// GRANDPA authorities sign with ed25519, the only key type supporting batch
// verification here.
func CreateBatchVerifier(pk crypto.PubKey) (crypto.BatchVerifier, bool) {
	switch pk.Type() {
	case ed25519.KeyType:
		return ed25519.NewBatchVerifier(), true
	}

	// case where the key does not support batch verification
	return nil, false
}

// SupportsBatchVerifier checks if a key type implements the batch verifier
// interface.
func SupportsBatchVerifier(pk crypto.PubKey) bool {
	return pk.Type() == ed25519.KeyType
}
