package types

import (
	"errors"
	"fmt"
	"time"
)

// ClientType is the ICS-02 client type of the GRANDPA light client.
const ClientType = "10-grandpa"

// PendingChange is an authority set change signaled by a verified header
// and enacted once the header at EffectiveHeight is verified.
type PendingChange struct {
	NextAuthorities []Authority
	ScheduledHeight uint64
	EffectiveHeight uint64
}

// NextSetHash commits to the set the change installs after currentSetID.
func (pc *PendingChange) NextSetHash(currentSetID uint64) Hash {
	return AuthoritySetHash(currentSetID+1, pc.NextAuthorities)
}

func (pc *PendingChange) ValidateBasic() error {
	if err := validateAuthorities(pc.NextAuthorities); err != nil {
		return fmt.Errorf("next authorities: %w", err)
	}
	if pc.EffectiveHeight < pc.ScheduledHeight {
		return fmt.Errorf("effective height %d is below scheduled height %d",
			pc.EffectiveHeight, pc.ScheduledHeight)
	}
	return nil
}

// ClientState is the per-client configuration and head pointer.
type ClientState struct {
	ChainID        string
	LatestHeight   uint64
	FrozenHeight   uint64 // 0 while active
	TrustingPeriod time.Duration
	MaxClockDrift  time.Duration
	CurrentSetID   uint64
	PendingChange  *PendingChange
}

func (cs *ClientState) ClientType() string { return ClientType }

// IsFrozen returns true once misbehaviour has been proven.
func (cs *ClientState) IsFrozen() bool {
	return cs.FrozenHeight != 0
}

func (cs *ClientState) ValidateBasic() error {
	if cs == nil {
		return errors.New("nil client state")
	}
	if cs.ChainID == "" {
		return errors.New("chain id cannot be empty")
	}
	if cs.TrustingPeriod <= 0 {
		return fmt.Errorf("trusting period must be positive, got %v", cs.TrustingPeriod)
	}
	if cs.MaxClockDrift < 0 {
		return fmt.Errorf("max clock drift cannot be negative, got %v", cs.MaxClockDrift)
	}
	if cs.LatestHeight == 0 {
		return errors.New("latest height cannot be zero")
	}
	if cs.PendingChange != nil {
		if err := cs.PendingChange.ValidateBasic(); err != nil {
			return fmt.Errorf("pending change: %w", err)
		}
	}
	return nil
}

// Copy returns a deep copy of the client state.
func (cs *ClientState) Copy() *ClientState {
	cp := *cs
	if cs.PendingChange != nil {
		pc := *cs.PendingChange
		pc.NextAuthorities = copyAuthorities(cs.PendingChange.NextAuthorities)
		cp.PendingChange = &pc
	}
	return &cp
}

func (cs *ClientState) String() string {
	return fmt.Sprintf("ClientState{%s latest:%d frozen:%d set:%d}",
		cs.ChainID, cs.LatestHeight, cs.FrozenHeight, cs.CurrentSetID)
}
