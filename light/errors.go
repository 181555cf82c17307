package light

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"

	"github.com/tendermint/ics10-grandpa/crypto/ed25519"
	"github.com/tendermint/ics10-grandpa/types"
)

var (
	// ErrNotInitialized is returned when the client has no client state yet.
	ErrNotInitialized = errors.New("light client is not initialized")

	// ErrAlreadyInitialized is returned by Initialize for an existing client.
	ErrAlreadyInitialized = errors.New("light client is already initialized")
)

// ErrUnknownAuthority means a precommit is signed by a key outside the
// authority set.
type ErrUnknownAuthority struct {
	ID ed25519.PubKey
}

func (e ErrUnknownAuthority) Error() string {
	return fmt.Sprintf("precommit signed by unknown authority %v", e.ID)
}

// ErrInvalidSignature means a precommit signature does not verify over the
// localized payload.
type ErrInvalidSignature struct {
	ID ed25519.PubKey
}

func (e ErrInvalidSignature) Error() string {
	return fmt.Sprintf("invalid precommit signature from %v", e.ID)
}

// ErrDuplicateVote means an authority voted more than once in a
// justification. When the votes differ and both signatures verify, Evidence
// returns the equivocation.
type ErrDuplicateVote struct {
	ID     ed25519.PubKey
	First  types.SignedPrecommit
	Second types.SignedPrecommit

	round, setID uint64
	equivocation bool
}

func (e ErrDuplicateVote) Error() string {
	if e.equivocation {
		return fmt.Sprintf("authority %v voted for #%d %v and #%d %v in round %d",
			e.ID, e.First.TargetNumber, e.First.TargetHash, e.Second.TargetNumber, e.Second.TargetHash, e.round)
	}
	return fmt.Sprintf("duplicate vote from %v", e.ID)
}

// Evidence returns the double vote, or nil if the votes are identical.
func (e ErrDuplicateVote) Evidence() *types.DoubleVote {
	if !e.equivocation {
		return nil
	}
	return &types.DoubleVote{
		SetID:  e.setID,
		Round:  e.round,
		First:  e.First,
		Second: e.Second,
	}
}

// ErrUnlinkedVote means the commit target cannot be shown to be the voted
// block or one of its ancestors.
type ErrUnlinkedVote struct {
	ID         ed25519.PubKey
	VoteNumber uint32
	VoteHash   types.Hash
}

func (e ErrUnlinkedVote) Error() string {
	return fmt.Sprintf("vote of %v for #%d %v does not descend from the commit target",
		e.ID, e.VoteNumber, e.VoteHash)
}

// ErrInsufficientVotingPower means the valid precommits do not reach the
// supermajority of the authority set.
type ErrInsufficientVotingPower struct {
	Got   *uint256.Int
	Total *uint256.Int
	// Skipped holds the reason each discarded precommit was skipped.
	Skipped []error
}

func (e ErrInsufficientVotingPower) Error() string {
	msg := fmt.Sprintf("insufficient voting power: got %v, total %v, need more than 2/3", e.Got, e.Total)
	if len(e.Skipped) == 0 {
		return msg
	}
	reasons := make([]string, len(e.Skipped))
	for i, err := range e.Skipped {
		reasons[i] = err.Error()
	}
	return fmt.Sprintf("%s (skipped %d precommits: %s)", msg, len(e.Skipped), strings.Join(reasons, "; "))
}

// ErrSetIDSkipped means an authority set change would skip set ids.
type ErrSetIDSkipped struct {
	Current uint64
	New     uint64
}

func (e ErrSetIDSkipped) Error() string {
	return fmt.Sprintf("authority set id %d skips ahead of current %d", e.New, e.Current)
}

// ErrSetIDRegression means an authority set change would not increase the
// set id.
type ErrSetIDRegression struct {
	Current uint64
	New     uint64
}

func (e ErrSetIDRegression) Error() string {
	return fmt.Sprintf("authority set id %d does not follow current %d", e.New, e.Current)
}

// ErrHeaderTooOld means the header is not above the latest trusted height.
type ErrHeaderTooOld struct {
	Height       uint64
	LatestHeight uint64
}

func (e ErrHeaderTooOld) Error() string {
	return fmt.Sprintf("header height %d is not above latest height %d", e.Height, e.LatestHeight)
}

// ErrClockDrift means the header timestamp is too far in the future.
type ErrClockDrift struct {
	Timestamp time.Time
	Now       time.Time
	MaxDrift  time.Duration
}

func (e ErrClockDrift) Error() string {
	return fmt.Sprintf("header timestamp %v is more than %v ahead of now %v", e.Timestamp, e.MaxDrift, e.Now)
}

// ErrClientFrozen means misbehaviour has been proven and the client accepts
// no further messages.
type ErrClientFrozen struct {
	FrozenHeight uint64
}

func (e ErrClientFrozen) Error() string {
	return fmt.Sprintf("client is frozen at height %d", e.FrozenHeight)
}

// ErrInconclusiveMisbehaviour means the submitted evidence does not prove
// misbehaviour.
type ErrInconclusiveMisbehaviour struct {
	Reason error
}

func (e ErrInconclusiveMisbehaviour) Error() string {
	if e.Reason == nil {
		return "inconclusive misbehaviour"
	}
	return fmt.Sprintf("inconclusive misbehaviour: %v", e.Reason)
}

func (e ErrInconclusiveMisbehaviour) Unwrap() error {
	return e.Reason
}

// ErrClientExpired means the latest consensus state is older than the
// trusting period. If so, the light client must be reset subjectively.
type ErrClientExpired struct {
	At  time.Time
	Now time.Time
}

func (e ErrClientExpired) Error() string {
	return fmt.Sprintf("latest consensus state has expired at %v (now: %v)", e.At, e.Now)
}

// ErrNonIncreasingTimestamp means the header is not later than the latest
// consensus state.
type ErrNonIncreasingTimestamp struct {
	Timestamp time.Time
	Latest    time.Time
}

func (e ErrNonIncreasingTimestamp) Error() string {
	return fmt.Sprintf("header timestamp %v is not after latest timestamp %v", e.Timestamp, e.Latest)
}

// ErrHeaderMismatch means the justification finalizes a block other than the
// header it came with.
type ErrHeaderMismatch struct {
	Header types.Precommit
	Target types.Precommit
}

func (e ErrHeaderMismatch) Error() string {
	return fmt.Sprintf("justification targets #%d %v, header is #%d %v",
		e.Target.TargetNumber, e.Target.TargetHash, e.Header.TargetNumber, e.Header.TargetHash)
}

// ErrPendingChangeSkipped means a header was submitted past the effective
// height of a pending authority set change without first submitting the
// header that enacts it.
type ErrPendingChangeSkipped struct {
	Height          uint64
	EffectiveHeight uint64
}

func (e ErrPendingChangeSkipped) Error() string {
	return fmt.Sprintf("header %d skips the authority set change effective at %d", e.Height, e.EffectiveHeight)
}

// ErrPendingChangeExists means a header scheduled an authority set change
// while another one was still pending.
type ErrPendingChangeExists struct {
	EffectiveHeight uint64
}

func (e ErrPendingChangeExists) Error() string {
	return fmt.Sprintf("an authority set change is already pending until %d", e.EffectiveHeight)
}
