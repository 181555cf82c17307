package grandpa

import (
	"errors"
	"fmt"

	proto "github.com/gogo/protobuf/proto"
)

// Wrap wraps the evidence into a Misbehaviour for the given client.
func (m *ConflictingCommits) Wrap(clientID string) *Misbehaviour {
	return &Misbehaviour{ClientId: clientID, ConflictingCommits: m}
}

// Wrap wraps the evidence into a Misbehaviour for the given client.
func (m *DoubleVote) Wrap(clientID string) *Misbehaviour {
	return &Misbehaviour{ClientId: clientID, DoubleVote: m}
}

// Unwrap returns the single evidence message carried by the Misbehaviour.
func (m *Misbehaviour) Unwrap() (proto.Message, error) {
	switch {
	case m.ConflictingCommits != nil && m.DoubleVote != nil:
		return nil, errors.New("misbehaviour carries more than one evidence")

	case m.ConflictingCommits != nil:
		return m.ConflictingCommits, nil

	case m.DoubleVote != nil:
		return m.DoubleVote, nil

	default:
		return nil, fmt.Errorf("misbehaviour for client %q carries no evidence", m.ClientId)
	}
}
