package light

import (
	"github.com/holiman/uint256"

	"github.com/tendermint/ics10-grandpa/crypto/batch"
	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
	tmmath "github.com/tendermint/ics10-grandpa/libs/math"
	"github.com/tendermint/ics10-grandpa/types"
)

var (
	// SupermajorityThreshold is the GRANDPA safety threshold: a commit is
	// final once strictly more than 2/3 of the total weight precommits.
	SupermajorityThreshold = tmmath.Fraction{Numerator: 2, Denominator: 3}
)

// VerifiedCommit is the conclusion of a successful justification
// verification.
type VerifiedCommit struct {
	TargetHash   types.Hash
	TargetNumber uint32
	Round        uint64
	SetID        uint64

	Tally *uint256.Int
	Total *uint256.Int

	// Skipped holds the reason each discarded precommit was skipped.
	Skipped []error
}

// VerifyJustification verifies a GRANDPA justification against the given
// authority set. It has no side effects.
//
// A precommit is skipped, and its reason recorded, when:
//
//	a) it is signed by a key outside the set (ErrUnknownAuthority)
//	b) its signature does not verify (ErrInvalidSignature)
//	c) it repeats a vote already seen from the same key (ErrDuplicateVote)
//	d) the commit target is neither the voted block nor one of its ancestors
//	   according to the votes ancestries (ErrUnlinkedVote)
//
// Two validly signed precommits from the same key for different blocks abort
// verification with an ErrDuplicateVote carrying the double vote.
//
// The weights of the remaining precommits must exceed
// SupermajorityThreshold of the total weight, otherwise
// ErrInsufficientVotingPower is returned.
func VerifyJustification(j *types.Justification, set *types.AuthoritySet) (*VerifiedCommit, error) {
	var (
		target  = j.Target()
		chain   = newAncestry(j.VotesAncestries)
		skipped []error

		candidates []int
		weights    = make(map[int]uint64)
	)

	for idx, pc := range j.Commit.Precommits {
		_, auth := set.GetByPubKey(pc.ID)
		if auth == nil {
			skipped = append(skipped, ErrUnknownAuthority{ID: pc.ID})
			continue
		}
		candidates = append(candidates, idx)
		weights[idx] = auth.Weight
	}

	valid := verifySignatures(j, set.SetID, candidates)

	var (
		tally = uint256.NewInt(0)
		seen  = make(map[ed25519.PubKey]types.SignedPrecommit)
	)
	for i, idx := range candidates {
		pc := j.Commit.Precommits[idx]

		if !valid[i] {
			skipped = append(skipped, ErrInvalidSignature{ID: pc.ID})
			continue
		}

		if prev, ok := seen[pc.ID]; ok {
			if prev.SameVote(pc) {
				skipped = append(skipped, ErrDuplicateVote{ID: pc.ID, First: prev, Second: pc})
				continue
			}
			return nil, ErrDuplicateVote{
				ID:           pc.ID,
				First:        prev.Copy(),
				Second:       pc.Copy(),
				round:        j.Round,
				setID:        set.SetID,
				equivocation: true,
			}
		}
		seen[pc.ID] = pc

		if !chain.isDescendantOf(pc.Precommit(), target) {
			skipped = append(skipped, ErrUnlinkedVote{ID: pc.ID, VoteNumber: pc.TargetNumber, VoteHash: pc.TargetHash})
			continue
		}

		tally.Add(tally, uint256.NewInt(weights[idx]))
	}

	total := set.TotalWeight()
	if !exceedsThreshold(tally, total, SupermajorityThreshold) {
		return nil, ErrInsufficientVotingPower{Got: tally, Total: total, Skipped: skipped}
	}

	return &VerifiedCommit{
		TargetHash:   target.TargetHash,
		TargetNumber: target.TargetNumber,
		Round:        j.Round,
		SetID:        set.SetID,
		Tally:        tally,
		Total:        total,
		Skipped:      skipped,
	}, nil
}

// verifySignatures returns, for each candidate precommit, whether its
// signature is valid. More than one candidate goes through a batch
// verifier, whose per-entry results are used when the batch fails.
func verifySignatures(j *types.Justification, setID uint64, candidates []int) []bool {
	valid := make([]bool, len(candidates))
	if len(candidates) == 0 {
		return valid
	}

	verifyOne := func(i int) {
		pc := j.Commit.Precommits[candidates[i]]
		valid[i] = pc.ID.VerifySignature(pc.SignBytes(j.Round, setID), pc.Signature)
	}

	first := j.Commit.Precommits[candidates[0]].ID
	bv, ok := batch.CreateBatchVerifier(first)
	if !ok || len(candidates) == 1 {
		for i := range candidates {
			verifyOne(i)
		}
		return valid
	}

	// entries rejected by Add never enter the batch
	added := make([]int, 0, len(candidates))
	for i, idx := range candidates {
		pc := j.Commit.Precommits[idx]
		if err := bv.Add(pc.ID, pc.SignBytes(j.Round, setID), pc.Signature); err != nil {
			continue
		}
		added = append(added, i)
	}
	if len(added) == 0 {
		return valid
	}

	ok, results := bv.Verify()
	for k, i := range added {
		valid[i] = ok || results[k]
	}
	return valid
}

// exceedsThreshold returns tally * Denominator > total * Numerator.
func exceedsThreshold(tally, total *uint256.Int, threshold tmmath.Fraction) bool {
	lhs := new(uint256.Int).Mul(tally, uint256.NewInt(threshold.Denominator))
	rhs := new(uint256.Int).Mul(total, uint256.NewInt(threshold.Numerator))
	return lhs.Gt(rhs)
}
