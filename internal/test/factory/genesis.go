package factory

import (
	"time"

	"github.com/tendermint/ics10-grandpa/types"
)

const (
	DefaultTestChainID    = "test-grandpa"
	DefaultTrustingPeriod = 14 * 24 * time.Hour
)

// GenesisTime is the timestamp of the genesis block used across tests.
var GenesisTime = time.Date(2022, 3, 16, 12, 0, 0, 0, time.UTC)

// MakeGenesis returns a genesis trusting block under the voters' set.
func MakeGenesis(block types.BlockHeader, timestamp time.Time, setID uint64, voters []*Voter,
	trustingPeriod time.Duration) *types.Genesis {
	return &types.Genesis{
		ClientState: &types.ClientState{
			ChainID:        DefaultTestChainID,
			LatestHeight:   uint64(block.Number),
			TrustingPeriod: trustingPeriod,
			MaxClockDrift:  10 * time.Second,
			CurrentSetID:   setID,
		},
		ConsensusState: &types.ConsensusState{
			Timestamp: timestamp,
			StateRoot: block.StateRoot,
			BlockHash: block.Hash(),
		},
		AuthoritySet: AuthoritySet(setID, voters),
	}
}
