package light

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendermint/ics10-grandpa/internal/test/factory"
	"github.com/tendermint/ics10-grandpa/types"
)

func precommitFor(h types.BlockHeader) types.Precommit {
	return types.Precommit{TargetHash: h.Hash(), TargetNumber: h.Number}
}

func TestAncestryIsDescendantOf(t *testing.T) {
	var (
		base  = factory.GenesisBlock(20)
		main  = factory.Chain(base, 0, 4)
		fork  = factory.Chain(base, 1, 4)
		chain = newAncestry(main, fork)
	)

	testCases := []struct {
		name  string
		block types.BlockHeader
		base  types.BlockHeader
		exp   bool
	}{
		{"block is its own descendant", main[2], main[2], true},
		{"direct child", main[0], base, true},
		{"several generations", main[3], base, true},
		{"fork descends from common base", fork[3], base, true},
		{"ancestor is not a descendant", main[0], main[3], false},
		{"other fork", fork[3], main[1], false},
		{"same height other fork", fork[1], main[1], false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, chain.isDescendantOf(precommitFor(tc.block), precommitFor(tc.base)))
		})
	}
}

func TestAncestryRequiresConsistentNumbers(t *testing.T) {
	base := factory.GenesisBlock(20)
	child := factory.NextBlock(base)

	// a header claiming to be two blocks above its parent breaks the walk
	skipping := child
	skipping.Number = base.Number + 2
	chain := newAncestry([]types.BlockHeader{skipping})

	_, ok := chain.ancestorAt(precommitFor(skipping), base.Number)
	assert.False(t, ok)

	// a vote whose number does not match the header it names
	chain = newAncestry([]types.BlockHeader{child})
	vote := types.Precommit{TargetHash: child.Hash(), TargetNumber: child.Number + 1}
	assert.False(t, chain.isDescendantOf(vote, precommitFor(base)))
}

func TestAncestryMissingLink(t *testing.T) {
	base := factory.GenesisBlock(5)
	blocks := factory.Chain(base, 0, 3)
	chain := newAncestry([]types.BlockHeader{blocks[0], blocks[2]})

	hash, ok := chain.ancestorAt(precommitFor(blocks[2]), blocks[1].Number)
	assert.True(t, ok)
	assert.Equal(t, blocks[1].Hash(), hash)

	_, ok = chain.ancestorAt(precommitFor(blocks[2]), base.Number)
	assert.False(t, ok)
}
