package factory

import (
	"fmt"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
	"github.com/tendermint/ics10-grandpa/types"
)

// Voter is a GRANDPA authority able to sign precommits.
type Voter struct {
	PrivKey ed25519.PrivKey
	Weight  uint64
}

func (v *Voter) PubKey() ed25519.PubKey {
	return v.PrivKey.PubKey().(ed25519.PubKey)
}

func (v *Voter) Authority() types.Authority {
	return types.Authority{PubKey: v.PubKey(), Weight: v.Weight}
}

// Voters returns n deterministic voters of equal weight. Voters generated
// with the same seed have the same keys.
func Voters(seed string, n int, weight uint64) []*Voter {
	weights := make([]uint64, n)
	for i := range weights {
		weights[i] = weight
	}
	return WeightedVoters(seed, weights...)
}

// WeightedVoters returns one deterministic voter per weight.
func WeightedVoters(seed string, weights ...uint64) []*Voter {
	voters := make([]*Voter, len(weights))
	for i, w := range weights {
		voters[i] = &Voter{
			PrivKey: ed25519.GenPrivKeyFromSecret([]byte(fmt.Sprintf("%s/%d", seed, i))),
			Weight:  w,
		}
	}
	return voters
}

// Authorities returns the on-chain authority list of the voters.
func Authorities(voters []*Voter) []types.Authority {
	out := make([]types.Authority, len(voters))
	for i, v := range voters {
		out[i] = v.Authority()
	}
	return out
}

// AuthoritySet returns the authority set of voters under setID.
func AuthoritySet(setID uint64, voters []*Voter) *types.AuthoritySet {
	return types.NewAuthoritySet(setID, Authorities(voters))
}
