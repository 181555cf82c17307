package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
)

func testAuthorities(n int) []Authority {
	out := make([]Authority, n)
	for i := range out {
		out[i] = Authority{
			PubKey: ed25519.GenPrivKeyFromSecret([]byte{byte(i)}).PubKey().(ed25519.PubKey),
			Weight: uint64(i + 1),
		}
	}
	return out
}

func TestScheduledChangeDigestRoundTrip(t *testing.T) {
	next := testAuthorities(3)
	h := BlockHeader{
		Number: 4,
		Digest: []DigestItem{
			{Kind: DigestPreRuntime, Engine: ConsensusEngineID{'a', 'u', 'r', 'a'}, Data: []byte{1}},
			NewScheduledChangeDigest(next, 2),
		},
	}

	sc, err := h.ScheduledChange()
	require.NoError(t, err)
	require.NotNil(t, sc)
	assert.Equal(t, next, sc.NextAuthorities)
	assert.EqualValues(t, 2, sc.Delay)

	// scheduled change layout: index, compact length, (key, weight) tuples, delay
	data := h.Digest[1].Data
	assert.Equal(t, logScheduledChange, data[0])
	assert.Equal(t, byte(3<<2), data[1])
	assert.Len(t, data, 1+1+3*(32+8)+4)
}

func TestConsensusLogs(t *testing.T) {
	next := testAuthorities(1)
	h := BlockHeader{
		Digest: []DigestItem{
			NewForcedChangeDigest(10, next, 0),
			{Kind: DigestConsensus, Engine: GrandpaEngineID, Data: []byte{logPause, 5, 0, 0, 0}},
			{Kind: DigestConsensus, Engine: GrandpaEngineID, Data: []byte{logResume, 6, 0, 0, 0}},
			{Kind: DigestConsensus, Engine: GrandpaEngineID, Data: []byte{logOnDisabled, 1, 0, 0, 0, 0, 0, 0, 0}},
			{Kind: DigestConsensus, Engine: ConsensusEngineID{'B', 'A', 'B', 'E'}, Data: []byte{0xff}},
		},
	}

	logs, err := h.ConsensusLogs()
	require.NoError(t, err)
	require.Len(t, logs, 4)

	fc, ok := logs[0].(ForcedChange)
	require.True(t, ok)
	assert.EqualValues(t, 10, fc.Median)
	assert.Equal(t, next, fc.Change.NextAuthorities)

	assert.Equal(t, Pause{Delay: 5}, logs[1])
	assert.Equal(t, Resume{Delay: 6}, logs[2])
	assert.Equal(t, OnDisabled{AuthorityIndex: 1}, logs[3])

	sc, err := h.ScheduledChange()
	require.NoError(t, err)
	assert.Nil(t, sc)
}

func TestConsensusLogErrors(t *testing.T) {
	_, err := DecodeConsensusLog(nil)
	require.Error(t, err)

	_, err = DecodeConsensusLog([]byte{9})
	require.Error(t, err)

	h := BlockHeader{
		Digest: []DigestItem{
			NewScheduledChangeDigest(testAuthorities(1), 0),
			NewScheduledChangeDigest(testAuthorities(2), 0),
		},
	}
	_, err = h.ScheduledChange()
	require.Error(t, err)
}
