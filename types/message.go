package types

import (
	"errors"
	"fmt"
	"time"
)

// ClientMessage is the closed set of messages the host delivers to the
// client: *Header and *Misbehaviour.
type ClientMessage interface {
	ClientType() string
	ValidateBasic() error

	isClientMessage()
}

var (
	_ ClientMessage = (*Header)(nil)
	_ ClientMessage = (*Misbehaviour)(nil)
)

// Header is a finalized block together with its finality proof. Timestamp
// is the value of the block's timestamp inherent.
type Header struct {
	Block         BlockHeader
	Timestamp     time.Time
	Justification Justification
}

func (*Header) isClientMessage()    {}
func (*Header) ClientType() string { return ClientType }

// GetHeight returns the block number as a client height.
func (h *Header) GetHeight() uint64 {
	return uint64(h.Block.Number)
}

// Hash returns the block hash.
func (h *Header) Hash() Hash {
	return h.Block.Hash()
}

func (h *Header) ValidateBasic() error {
	if h == nil {
		return errors.New("nil header")
	}
	if h.Block.Number == 0 {
		return errors.New("header number cannot be zero")
	}
	if h.Timestamp.IsZero() {
		return errors.New("header timestamp cannot be zero")
	}
	if err := h.Block.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	if err := h.Justification.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid justification: %w", err)
	}
	return nil
}

func (h *Header) String() string {
	return fmt.Sprintf("Header{#%d %v %v}", h.Block.Number, h.Timestamp, h.Justification.String())
}

// Misbehaviour is evidence of a GRANDPA safety violation.
type Misbehaviour struct {
	ClientID string
	Evidence Evidence
}

func (*Misbehaviour) isClientMessage()    {}
func (*Misbehaviour) ClientType() string { return ClientType }

func (m *Misbehaviour) ValidateBasic() error {
	if m == nil {
		return errors.New("nil misbehaviour")
	}
	if m.ClientID == "" {
		return errors.New("client id cannot be empty")
	}
	if m.Evidence == nil {
		return errors.New("misbehaviour carries no evidence")
	}
	return m.Evidence.ValidateBasic()
}

// Evidence is the closed set of misbehaviour proofs: *ConflictingCommits and
// *DoubleVote.
type Evidence interface {
	// AuthoritySetID returns the set the evidence must verify against.
	AuthoritySetID() uint64
	// Height returns the lowest block number implicated by the evidence.
	Height() uint64
	ValidateBasic() error

	isEvidence()
}

var (
	_ Evidence = (*ConflictingCommits)(nil)
	_ Evidence = (*DoubleVote)(nil)
)

// ConflictingCommits are two justifications of the same round finalizing
// blocks on different forks.
type ConflictingCommits struct {
	SetID  uint64
	First  Justification
	Second Justification
}

func (*ConflictingCommits) isEvidence()             {}
func (e *ConflictingCommits) AuthoritySetID() uint64 { return e.SetID }

func (e *ConflictingCommits) Height() uint64 {
	return uint64(minUint32(e.First.Commit.TargetNumber, e.Second.Commit.TargetNumber))
}

func (e *ConflictingCommits) ValidateBasic() error {
	if err := e.First.ValidateBasic(); err != nil {
		return fmt.Errorf("first justification: %w", err)
	}
	if err := e.Second.ValidateBasic(); err != nil {
		return fmt.Errorf("second justification: %w", err)
	}
	if e.First.Round != e.Second.Round {
		return fmt.Errorf("justifications are for different rounds (%d and %d)",
			e.First.Round, e.Second.Round)
	}
	if e.First.Target() == e.Second.Target() {
		return errors.New("justifications commit to the same block")
	}
	return nil
}

// DoubleVote is a pair of precommits from one authority in one round for
// different blocks.
type DoubleVote struct {
	SetID  uint64
	Round  uint64
	First  SignedPrecommit
	Second SignedPrecommit
}

func (*DoubleVote) isEvidence()             {}
func (e *DoubleVote) AuthoritySetID() uint64 { return e.SetID }

func (e *DoubleVote) Height() uint64 {
	return uint64(minUint32(e.First.TargetNumber, e.Second.TargetNumber))
}

func (e *DoubleVote) ValidateBasic() error {
	if err := e.First.ValidateBasic(); err != nil {
		return fmt.Errorf("first vote: %w", err)
	}
	if err := e.Second.ValidateBasic(); err != nil {
		return fmt.Errorf("second vote: %w", err)
	}
	if e.First.ID != e.Second.ID {
		return errors.New("votes are signed by different authorities")
	}
	if e.First.SameVote(e.Second) {
		return errors.New("votes are for the same block")
	}
	return nil
}

func (e *DoubleVote) String() string {
	return fmt.Sprintf("DoubleVote{set:%d round:%d %v / %v}", e.SetID, e.Round, e.First, e.Second)
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
