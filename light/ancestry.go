package light

import (
	"github.com/tendermint/ics10-grandpa/types"
)

// ancestry indexes the headers of one or more votes_ancestries by hash.
type ancestry struct {
	headers map[types.Hash]*types.BlockHeader
}

func newAncestry(chains ...[]types.BlockHeader) ancestry {
	a := ancestry{headers: make(map[types.Hash]*types.BlockHeader)}
	for _, chain := range chains {
		for i := range chain {
			a.headers[chain[i].Hash()] = &chain[i]
		}
	}
	return a
}

// ancestorAt walks parent links from block down to number and returns the
// hash found there. Every header on the way must be in the ancestry and
// carry the number its child expects.
func (a ancestry) ancestorAt(block types.Precommit, number uint32) (types.Hash, bool) {
	if block.TargetNumber < number {
		return types.Hash{}, false
	}

	hash, n := block.TargetHash, block.TargetNumber
	for n > number {
		h, ok := a.headers[hash]
		if !ok || h.Number != n {
			return types.Hash{}, false
		}
		hash, n = h.ParentHash, n-1
	}
	return hash, true
}

// isDescendantOf reports whether block equals base or provably descends
// from it.
func (a ancestry) isDescendantOf(block, base types.Precommit) bool {
	hash, ok := a.ancestorAt(block, base.TargetNumber)
	return ok && hash == base.TargetHash
}
