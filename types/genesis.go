package types

import (
	"fmt"
)

// Genesis holds everything required to create a client.
type Genesis struct {
	ClientState    *ClientState
	ConsensusState *ConsensusState
	AuthoritySet   *AuthoritySet
}

// ValidateBasic checks each part and that the client trusts the set.
func (g *Genesis) ValidateBasic() error {
	if err := g.ClientState.ValidateBasic(); err != nil {
		return fmt.Errorf("client state: %w", err)
	}
	if err := g.ConsensusState.ValidateBasic(); err != nil {
		return fmt.Errorf("consensus state: %w", err)
	}
	if err := g.AuthoritySet.ValidateBasic(); err != nil {
		return fmt.Errorf("authority set: %w", err)
	}
	if g.ClientState.CurrentSetID != g.AuthoritySet.SetID {
		return fmt.Errorf("client state trusts set %d, authority set is %d",
			g.ClientState.CurrentSetID, g.AuthoritySet.SetID)
	}
	if pc := g.ClientState.PendingChange; pc != nil && pc.EffectiveHeight <= g.ClientState.LatestHeight {
		return fmt.Errorf("pending change effective at %d is not above latest height %d",
			pc.EffectiveHeight, g.ClientState.LatestHeight)
	}
	return nil
}
