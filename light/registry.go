package light

import (
	"fmt"

	"github.com/tendermint/ics10-grandpa/light/store"
	"github.com/tendermint/ics10-grandpa/types"
)

// Registry is the authority set registry of one client. Authority sets live
// in the store, keyed by set id; the registry only tracks the id of the
// current one. Sets added with Advance are staged until the caller commits
// them with Staged.
type Registry struct {
	store   store.Store
	current uint64
	staged  []*types.AuthoritySet
}

// NewRegistry returns a registry over the authority sets of s whose current
// set is currentSetID.
func NewRegistry(s store.Store, currentSetID uint64) *Registry {
	return &Registry{store: s, current: currentSetID}
}

// CurrentSetID returns the id of the current set.
func (r *Registry) CurrentSetID() uint64 {
	return r.current
}

// Current returns the authority set currently trusted.
func (r *Registry) Current() (*types.AuthoritySet, error) {
	return r.SetAt(r.current)
}

// SetAt returns the authority set with the given id, staged or stored.
func (r *Registry) SetAt(setID uint64) (*types.AuthoritySet, error) {
	for _, set := range r.staged {
		if set.SetID == setID {
			return set.Copy(), nil
		}
	}
	set, err := r.store.AuthoritySet(setID)
	if err != nil {
		return nil, fmt.Errorf("authority set %d: %w", setID, err)
	}
	return set, nil
}

// Advance makes authorities the current set under newSetID, which must
// directly follow the current id. The new set is staged.
func (r *Registry) Advance(authorities []types.Authority, newSetID uint64) (*types.AuthoritySet, error) {
	switch {
	case newSetID <= r.current:
		return nil, ErrSetIDRegression{Current: r.current, New: newSetID}
	case newSetID > r.current+1:
		return nil, ErrSetIDSkipped{Current: r.current, New: newSetID}
	}

	set := types.NewAuthoritySet(newSetID, authorities)
	if err := set.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid authority set %d: %w", newSetID, err)
	}

	r.staged = append(r.staged, set)
	r.current = newSetID
	return set.Copy(), nil
}

// Staged returns the sets added since the registry was created.
func (r *Registry) Staged() []*types.AuthoritySet {
	return r.staged
}
