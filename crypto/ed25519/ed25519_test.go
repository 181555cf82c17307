package ed25519_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
)

func TestSignAndValidateEd25519(t *testing.T) {
	privKey := ed25519.GenPrivKey()
	pubKey := privKey.PubKey()

	msg := []byte("precommit localized to round 5 of set 1")
	sig, err := privKey.Sign(msg)
	require.NoError(t, err)

	// Test the signature
	assert.True(t, pubKey.VerifySignature(msg, sig))

	// Mutate the signature, just one bit.
	sig[7] ^= byte(0x01)

	assert.False(t, pubKey.VerifySignature(msg, sig))
	assert.False(t, pubKey.VerifySignature(msg, sig[:10]))
}

func TestGenPrivKeyFromSecret(t *testing.T) {
	a := ed25519.GenPrivKeyFromSecret([]byte("alice"))
	b := ed25519.GenPrivKeyFromSecret([]byte("alice"))
	c := ed25519.GenPrivKeyFromSecret([]byte("bob"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, a.PubKey().Equals(b.PubKey()))
	assert.Equal(t, ed25519.KeyType, a.PubKey().Type())
}

func TestPubKeyFromBytes(t *testing.T) {
	pk := ed25519.GenPrivKey().PubKey().(ed25519.PubKey)

	got, err := ed25519.PubKeyFromBytes(pk.Bytes())
	require.NoError(t, err)
	assert.Equal(t, pk, got)
	assert.False(t, got.IsZero())

	_, err = ed25519.PubKeyFromBytes(pk.Bytes()[:31])
	require.Error(t, err)
}

func TestBatchSafe(t *testing.T) {
	v := ed25519.NewBatchVerifier()

	for i := 0; i <= len("hello world"); i++ {
		priv := ed25519.GenPrivKey()
		pub := priv.PubKey()

		var msg []byte
		if i%2 == 0 {
			msg = []byte("easter")
		} else {
			msg = []byte("egg")
		}

		sig, err := priv.Sign(msg)
		require.NoError(t, err)

		err = v.Add(pub, msg, sig)
		require.NoError(t, err)
	}

	ok, valid := v.Verify()
	require.True(t, ok)
	for _, entry := range valid {
		require.True(t, entry)
	}
}

func TestBatchReportsInvalidEntries(t *testing.T) {
	v := ed25519.NewBatchVerifier()

	good := ed25519.GenPrivKey()
	bad := ed25519.GenPrivKey()
	msg := []byte("payload")

	sig, err := good.Sign(msg)
	require.NoError(t, err)
	require.NoError(t, v.Add(good.PubKey(), msg, sig))

	forged, err := bad.Sign([]byte("other payload"))
	require.NoError(t, err)
	require.NoError(t, v.Add(bad.PubKey(), msg, forged))

	require.Error(t, v.Add(good.PubKey(), msg, sig[:32]))

	ok, valid := v.Verify()
	require.False(t, ok)
	require.Equal(t, []bool{true, false}, valid)
}
