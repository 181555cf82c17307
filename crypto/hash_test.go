package crypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tendermint/ics10-grandpa/crypto"
)

func TestBlake2b256(t *testing.T) {
	// blake2b-256 of the empty input
	const want = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"

	got := crypto.Blake2b256(nil)
	require.Equal(t, want, hex.EncodeToString(got[:]))

	other := crypto.Blake2b256([]byte("grandpa"))
	require.NotEqual(t, got, other)
}
