package factory

import (
	"time"

	"github.com/tendermint/ics10-grandpa/types"
)

// SignPrecommit signs a precommit for target in the given round and set.
func SignPrecommit(v *Voter, round, setID uint64, target types.BlockHeader) types.SignedPrecommit {
	return SignVote(v, round, setID, types.Precommit{TargetHash: target.Hash(), TargetNumber: target.Number})
}

// SignVote signs an arbitrary precommit vote.
func SignVote(v *Voter, round, setID uint64, vote types.Precommit) types.SignedPrecommit {
	sig, err := v.PrivKey.Sign(types.LocalizedPayload(round, setID, vote))
	if err != nil {
		panic(err)
	}
	return types.SignedPrecommit{
		TargetHash:   vote.TargetHash,
		TargetNumber: vote.TargetNumber,
		Signature:    sig,
		ID:           v.PubKey(),
	}
}

// MakeJustification returns a justification for target with a precommit
// from every voter voting for target itself.
func MakeJustification(round, setID uint64, target types.BlockHeader, voters []*Voter) types.Justification {
	precommits := make([]types.SignedPrecommit, len(voters))
	for i, v := range voters {
		precommits[i] = SignPrecommit(v, round, setID, target)
	}
	return types.Justification{
		Round: round,
		Commit: types.Commit{
			TargetHash:   target.Hash(),
			TargetNumber: target.Number,
			Precommits:   precommits,
		},
	}
}

// MakeJustificationOnDescendants returns a justification for target where
// voter i votes for descendants[i], a block built on top of target. The
// ancestry between target and every voted block is included.
func MakeJustificationOnDescendants(round, setID uint64, target types.BlockHeader, descendants []types.BlockHeader,
	ancestry []types.BlockHeader, voters []*Voter) types.Justification {
	j := MakeJustification(round, setID, target, nil)
	for i, v := range voters {
		j.Commit.Precommits = append(j.Commit.Precommits, SignPrecommit(v, round, setID, descendants[i]))
	}
	j.VotesAncestries = ancestry
	return j
}

// MakeHeader wraps block and its justification into a client message.
func MakeHeader(block types.BlockHeader, timestamp time.Time, j types.Justification) *types.Header {
	return &types.Header{
		Block:         block,
		Timestamp:     timestamp,
		Justification: j,
	}
}
