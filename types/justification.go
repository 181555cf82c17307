package types

import (
	"errors"
	"fmt"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
)

// SignedPrecommit is a precommit vote signed by an authority.
type SignedPrecommit struct {
	TargetHash   Hash
	TargetNumber uint32
	Signature    []byte
	ID           ed25519.PubKey
}

// Precommit returns the unsigned vote.
func (sp SignedPrecommit) Precommit() Precommit {
	return Precommit{TargetHash: sp.TargetHash, TargetNumber: sp.TargetNumber}
}

// SignBytes returns the localized payload the signature covers.
func (sp SignedPrecommit) SignBytes(round, setID uint64) []byte {
	return LocalizedPayload(round, setID, sp.Precommit())
}

// SameVote reports whether both precommits vote for the same block.
func (sp SignedPrecommit) SameVote(other SignedPrecommit) bool {
	return sp.TargetHash == other.TargetHash && sp.TargetNumber == other.TargetNumber
}

func (sp SignedPrecommit) ValidateBasic() error {
	if len(sp.Signature) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature size %d", len(sp.Signature))
	}
	if sp.ID.IsZero() {
		return errors.New("empty authority id")
	}
	return nil
}

func (sp SignedPrecommit) String() string {
	return fmt.Sprintf("Precommit{#%d %v by %v}", sp.TargetNumber, sp.TargetHash, sp.ID)
}

// Copy returns a deep copy of the precommit.
func (sp SignedPrecommit) Copy() SignedPrecommit {
	cp := sp
	cp.Signature = append([]byte(nil), sp.Signature...)
	return cp
}

// Commit is a set of precommits for a common target.
type Commit struct {
	TargetHash   Hash
	TargetNumber uint32
	Precommits   []SignedPrecommit
}

// Justification is a GRANDPA finality proof.
type Justification struct {
	Round           uint64
	Commit          Commit
	VotesAncestries []BlockHeader
}

// ValidateBasic performs stateless validation. It does not reject individual
// malformed precommits; those are skipped during verification.
func (j *Justification) ValidateBasic() error {
	if j == nil {
		return errors.New("nil justification")
	}
	if len(j.Commit.Precommits) == 0 {
		return errors.New("justification has no precommits")
	}
	for i := range j.VotesAncestries {
		if err := j.VotesAncestries[i].ValidateBasic(); err != nil {
			return fmt.Errorf("votes ancestry #%d: %w", i, err)
		}
	}
	return nil
}

// Target returns the block the commit finalizes.
func (j *Justification) Target() Precommit {
	return Precommit{TargetHash: j.Commit.TargetHash, TargetNumber: j.Commit.TargetNumber}
}

// Copy returns a deep copy of the justification.
func (j *Justification) Copy() Justification {
	cp := Justification{
		Round: j.Round,
		Commit: Commit{
			TargetHash:   j.Commit.TargetHash,
			TargetNumber: j.Commit.TargetNumber,
			Precommits:   make([]SignedPrecommit, len(j.Commit.Precommits)),
		},
		VotesAncestries: make([]BlockHeader, len(j.VotesAncestries)),
	}
	for i, p := range j.Commit.Precommits {
		cp.Commit.Precommits[i] = p.Copy()
	}
	for i := range j.VotesAncestries {
		cp.VotesAncestries[i] = j.VotesAncestries[i].Copy()
	}
	return cp
}

func (j *Justification) String() string {
	return fmt.Sprintf("Justification{round:%d target:#%d %v precommits:%d ancestries:%d}",
		j.Round, j.Commit.TargetNumber, j.Commit.TargetHash, len(j.Commit.Precommits), len(j.VotesAncestries))
}
