package types

import (
	"fmt"

	"github.com/ChainSafe/gossamer/pkg/scale"
)

// encodeCompact returns the SCALE compact encoding of n.
func encodeCompact(n uint) []byte {
	return scale.MustMarshal(n)
}

// Precommit is the vote message of the GRANDPA precommit phase.
type Precommit struct {
	TargetHash   Hash
	TargetNumber uint32
}

// precommitTag is the position of Precommit in the GRANDPA Message enum
// (Prevote = 0, Precommit = 1, PrimaryPropose = 2).
const precommitTag byte = 1

// LocalizedPayload returns the bytes signed by an authority for a
// precommit: SCALE(Message::Precommit) ‖ u64 round ‖ u64 set_id.
func LocalizedPayload(round, setID uint64, vote Precommit) []byte {
	return scale.MustMarshal(struct {
		Tag          byte
		TargetHash   [32]byte
		TargetNumber uint32
		Round        uint64
		SetID        uint64
	}{precommitTag, vote.TargetHash, vote.TargetNumber, round, setID})
}

// scaleAuthority is an (AuthorityId, AuthorityWeight) tuple.
type scaleAuthority struct {
	Key    [32]byte
	Weight uint64
}

func toScaleAuthorities(as []Authority) []scaleAuthority {
	out := make([]scaleAuthority, len(as))
	for i, a := range as {
		out[i] = scaleAuthority{Key: a.PubKey, Weight: a.Weight}
	}
	return out
}

func fromScaleAuthorities(l []scaleAuthority) []Authority {
	out := make([]Authority, len(l))
	for i, a := range l {
		out[i] = Authority{PubKey: a.Key, Weight: a.Weight}
	}
	return out
}

func unmarshalScale(bz []byte, dst interface{}, what string) error {
	if err := scale.Unmarshal(bz, dst); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}
