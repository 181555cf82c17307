package types

import (
	"errors"
	"fmt"
	"time"
)

// ConsensusState commits to one verified header.
type ConsensusState struct {
	Timestamp time.Time
	StateRoot Hash
	BlockHash Hash
	// NextAuthoritySetHint is set when the header signals an authority set
	// change.
	NextAuthoritySetHint *Hash
}

func (cs *ConsensusState) ClientType() string { return ClientType }

func (cs *ConsensusState) ValidateBasic() error {
	if cs == nil {
		return errors.New("nil consensus state")
	}
	if cs.Timestamp.IsZero() {
		return errors.New("timestamp cannot be zero")
	}
	if cs.BlockHash.IsZero() {
		return errors.New("block hash cannot be empty")
	}
	return nil
}

func (cs *ConsensusState) String() string {
	return fmt.Sprintf("ConsensusState{%v hash:%v root:%v}", cs.Timestamp, cs.BlockHash, cs.StateRoot)
}
