package factory

import (
	"encoding/binary"

	"github.com/tendermint/ics10-grandpa/crypto"
	"github.com/tendermint/ics10-grandpa/types"
)

// Fork distinguishes blocks at the same height built on different forks.
type Fork byte

// GenesisBlock returns a block at number with a deterministic parent.
func GenesisBlock(number uint32) types.BlockHeader {
	return types.BlockHeader{
		ParentHash:     rootFor("parent", number, 0),
		Number:         number,
		StateRoot:      rootFor("state", number, 0),
		ExtrinsicsRoot: rootFor("extrinsics", number, 0),
	}
}

// NextBlock returns the child of parent on fork 0.
func NextBlock(parent types.BlockHeader, digest ...types.DigestItem) types.BlockHeader {
	return NextBlockOnFork(parent, 0, digest...)
}

// NextBlockOnFork returns a child of parent whose roots depend on fork, so
// siblings on different forks hash differently.
func NextBlockOnFork(parent types.BlockHeader, fork Fork, digest ...types.DigestItem) types.BlockHeader {
	number := parent.Number + 1
	return types.BlockHeader{
		ParentHash:     parent.Hash(),
		Number:         number,
		StateRoot:      rootFor("state", number, fork),
		ExtrinsicsRoot: rootFor("extrinsics", number, fork),
		Digest:         digest,
	}
}

// Chain returns n blocks descending from parent on the given fork, oldest
// first.
func Chain(parent types.BlockHeader, fork Fork, n int) []types.BlockHeader {
	blocks := make([]types.BlockHeader, n)
	for i := range blocks {
		parent = NextBlockOnFork(parent, fork)
		blocks[i] = parent
	}
	return blocks
}

func rootFor(kind string, number uint32, fork Fork) types.Hash {
	bz := make([]byte, 0, len(kind)+5)
	bz = append(bz, kind...)
	bz = binary.LittleEndian.AppendUint32(bz, number)
	bz = append(bz, byte(fork))
	return crypto.Blake2b256(bz)
}
