package store

import "github.com/tendermint/ics10-grandpa/types"

// Changeset is everything a single client call writes. It is applied
// atomically by Commit.
type Changeset struct {
	// ClientState replaces the stored client state. Required.
	ClientState *types.ClientState

	// ConsensusState, when set, is stored at Height. Its height must not be
	// present in the store yet.
	ConsensusState *types.ConsensusState
	Height         uint64

	// AuthoritySets are added to the authority set arena, keyed by set id.
	AuthoritySets []*types.AuthoritySet
}

// Store persists the state of one light client.
type Store interface {
	// ClientState returns the client state.
	//
	// If the client has not been initialized, ErrClientStateNotFound is
	// returned.
	ClientState() (*types.ClientState, error)

	// ConsensusState returns the ConsensusState stored at the given height.
	//
	// height must be > 0.
	//
	// If ConsensusState is not found, ErrConsensusStateNotFound is returned.
	ConsensusState(height uint64) (*types.ConsensusState, error)

	// ConsensusHeights returns the heights of all stored consensus states in
	// ascending order.
	ConsensusHeights() ([]uint64, error)

	// AuthoritySet returns the authority set with the given id.
	//
	// If the set is not found, ErrAuthoritySetNotFound is returned.
	AuthoritySet(setID uint64) (*types.AuthoritySet, error)

	// Commit applies the changeset in one atomic write. Either every part of
	// the changeset is persisted or none is.
	Commit(cs *Changeset) error

	// Prune removes the oldest consensus states until at most size remain.
	// The latest consensus state is never pruned.
	Prune(size uint16) error

	// Size returns the number of stored consensus states.
	Size() uint64
}
