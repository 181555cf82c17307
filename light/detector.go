package light

import (
	"errors"
	"fmt"

	"github.com/tendermint/ics10-grandpa/types"
)

// CheckMisbehaviour decides whether the evidence proves a GRANDPA safety
// violation by authorities of set. It returns (true, nil) for conclusive
// evidence, (false, nil) for valid evidence that does not conflict, and
// ErrInconclusiveMisbehaviour when any part of the evidence fails to verify.
func CheckMisbehaviour(ev types.Evidence, set *types.AuthoritySet) (bool, error) {
	if ev == nil {
		return false, ErrInconclusiveMisbehaviour{Reason: errors.New("nil evidence")}
	}
	if ev.AuthoritySetID() != set.SetID {
		return false, ErrInconclusiveMisbehaviour{
			Reason: fmt.Errorf("evidence is for set %d, verifying against set %d", ev.AuthoritySetID(), set.SetID),
		}
	}
	if err := ev.ValidateBasic(); err != nil {
		return false, ErrInconclusiveMisbehaviour{Reason: err}
	}

	switch e := ev.(type) {
	case *types.ConflictingCommits:
		return checkConflictingCommits(e, set)
	case *types.DoubleVote:
		return checkDoubleVote(e, set)
	default:
		return false, ErrInconclusiveMisbehaviour{Reason: fmt.Errorf("unknown evidence type %T", ev)}
	}
}

// checkConflictingCommits verifies both justifications and reports whether
// their targets sit on different forks. The higher target is walked back to
// the height of the lower one through both ancestries.
func checkConflictingCommits(e *types.ConflictingCommits, set *types.AuthoritySet) (bool, error) {
	for _, j := range []*types.Justification{&e.First, &e.Second} {
		_, err := VerifyJustification(j, set)
		if err == nil {
			continue
		}
		// an equivocating authority is misbehaviour on its own
		var dup ErrDuplicateVote
		if errors.As(err, &dup) && dup.Evidence() != nil {
			return true, nil
		}
		return false, ErrInconclusiveMisbehaviour{Reason: err}
	}

	low, high := e.First.Target(), e.Second.Target()
	if low.TargetNumber > high.TargetNumber {
		low, high = high, low
	}
	if low.TargetNumber == high.TargetNumber {
		return low.TargetHash != high.TargetHash, nil
	}

	chain := newAncestry(e.First.VotesAncestries, e.Second.VotesAncestries)
	hash, ok := chain.ancestorAt(high, low.TargetNumber)
	if !ok {
		return false, ErrInconclusiveMisbehaviour{
			Reason: fmt.Errorf("no ancestry from #%d down to #%d", high.TargetNumber, low.TargetNumber),
		}
	}
	return hash != low.TargetHash, nil
}

func checkDoubleVote(e *types.DoubleVote, set *types.AuthoritySet) (bool, error) {
	if !set.HasPubKey(e.First.ID) {
		return false, ErrInconclusiveMisbehaviour{Reason: ErrUnknownAuthority{ID: e.First.ID}}
	}
	for _, pc := range []types.SignedPrecommit{e.First, e.Second} {
		if !pc.ID.VerifySignature(pc.SignBytes(e.Round, e.SetID), pc.Signature) {
			return false, ErrInconclusiveMisbehaviour{Reason: ErrInvalidSignature{ID: pc.ID}}
		}
	}
	return true, nil
}
